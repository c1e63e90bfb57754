package requests

// CalculateSalaryRequest is the body of POST /api/v1/calculations. Amount is
// the gross monthly salary for gross_to_net, or the target net for
// net_to_gross.
type CalculateSalaryRequest struct {
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Direction string  `json:"direction" binding:"required,oneof=gross_to_net net_to_gross"`
}
