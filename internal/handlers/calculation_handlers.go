package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hirepath/payroll-api/internal/constants"
	"github.com/hirepath/payroll-api/internal/services"
	"github.com/hirepath/payroll-api/internal/types/api/requests"
	"github.com/hirepath/payroll-api/internal/types/api/responses"
	"github.com/hirepath/payroll-api/internal/types/business"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CalculationHandler resolves salary calculations and records them in the
// session history.
type CalculationHandler struct {
	common   *CommonServices
	taxTable business.TaxTable
}

// NewCalculationHandler creates a handler with interface dependencies
func NewCalculationHandler(common *CommonServices, taxTable business.TaxTable) *CalculationHandler {
	return &CalculationHandler{
		common:   common,
		taxTable: taxTable,
	}
}

// CalculateSalary resolves a salary calculation in either direction
// @Summary Calculate salary
// @Description Computes net from gross or gross from a target net, with the full deduction breakdown
// @Tags calculations
// @Accept json
// @Produce json
// @Param request body requests.CalculateSalaryRequest true "Amount and direction"
// @Success 200 {object} responses.CalculateSalaryResponse
// @Failure 400 {object} ErrorResponse
// @Router /calculations [post]
func (h *CalculationHandler) CalculateSalary(c *gin.Context) {
	var req requests.CalculateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Please enter a positive amount and a calculation direction", err)
		return
	}

	var (
		calc *responses.SalaryCalculation
		err  error
	)
	switch req.Direction {
	case constants.DirectionGrossToNet:
		calc, err = h.common.SalaryResolver.NetFromGross(req.Amount)
	case constants.DirectionNetToGross:
		calc, err = h.common.SalaryResolver.GrossFromNet(req.Amount)
	default:
		sendError(c, http.StatusBadRequest, "Unknown calculation direction", nil)
		return
	}

	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			sendError(c, http.StatusBadRequest, "Please enter a positive amount", err)
			return
		}
		sendError(c, http.StatusInternalServerError, "Failed to calculate salary", err)
		return
	}

	// Only resolved calculations reach the history; rejected input never does.
	record := h.common.HistoryService.Record(*calc)

	h.common.logger.Info("Resolved salary calculation",
		zap.String("record_id", record.ID.String()),
		zap.String("direction", calc.Direction),
		zap.Float64("gross", calc.Gross),
		zap.Float64("net", calc.Net),
		zap.Bool("approximate", calc.Approximate))

	sendSuccess(c, http.StatusOK, responses.CalculateSalaryResponse{
		RecordID:    record.ID.String(),
		Calculation: *calc,
	})
}

// GetTaxTable returns the active rate table
// @Summary Get the active tax table
// @Description Returns the bracket, subsidy and contribution configuration used by the calculator
// @Tags calculations
// @Produce json
// @Success 200 {object} responses.TaxTableResponse
// @Router /calculations/tax-table [get]
func (h *CalculationHandler) GetTaxTable(c *gin.Context) {
	sendSuccess(c, http.StatusOK, responses.TaxTableResponse{Table: h.taxTable})
}
