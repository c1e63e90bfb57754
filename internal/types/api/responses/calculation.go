package responses

import (
	"time"

	"github.com/hirepath/payroll-api/internal/types/business"
)

// SalaryCalculation contains one resolved gross/net calculation.
// Approximate is set when the inverse resolver ran out of iterations before
// reaching tolerance and the gross figure is a best-effort midpoint.
type SalaryCalculation struct {
	Direction    string                      `json:"direction"`
	Gross        float64                     `json:"gross"`
	Net          float64                     `json:"net"`
	Deductions   business.DeductionBreakdown `json:"deductions"`
	Approximate  bool                        `json:"approximate"`
	CalculatedAt time.Time                   `json:"calculated_at"`
}

// CalculateSalaryResponse wraps a calculation with the history record ID
// assigned to it.
type CalculateSalaryResponse struct {
	RecordID    string            `json:"record_id"`
	Calculation SalaryCalculation `json:"calculation"`
}

// TaxTableResponse returns the active rate table for UI rendering.
type TaxTableResponse struct {
	Table business.TaxTable `json:"table"`
}

// HistoryResponse lists session calculation records, newest first.
type HistoryResponse struct {
	Object string                       `json:"object"`
	Data   []business.CalculationRecord `json:"data"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status string `json:"status"`
}
