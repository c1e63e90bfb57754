package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hirepath/payroll-api/internal/constants"
	"github.com/hirepath/payroll-api/internal/types/api/responses"
	"github.com/hirepath/payroll-api/internal/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListHistory(t *testing.T) {
	router, history := newTestRouter(t)

	history.Record(responses.SalaryCalculation{
		Direction: constants.DirectionGrossToNet,
		Gross:     10000,
		Net:       8500,
	})
	history.Record(responses.SalaryCalculation{
		Direction: constants.DirectionGrossToNet,
		Gross:     20000,
		Net:       16500,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Object string                       `json:"object"`
		Data   []business.CalculationRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "list", resp.Object)
	require.Len(t, resp.Data, 2)
	assert.InDelta(t, 20000, resp.Data[0].Gross, 0.001) // newest first
	assert.InDelta(t, 10000, resp.Data[1].Gross, 0.001)
}

func TestListHistory_Empty(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Object string                       `json:"object"`
		Data   []business.CalculationRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "list", resp.Object)
	assert.Empty(t, resp.Data)
}

func TestExportHistory(t *testing.T) {
	router, history := newTestRouter(t)

	history.Record(responses.SalaryCalculation{
		Direction: constants.DirectionGrossToNet,
		Gross:     30000,
		Net:       22930,
		Deductions: business.DeductionBreakdown{
			IncomeTax:           3725,
			PensionContribution: 3030,
			HealthContribution:  315,
			Total:               7070,
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history/export", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "salary-calculations-")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "timestamp,direction,gross,net,income_tax,pension_contribution,health_contribution", lines[0])
	assert.Contains(t, lines[1], "30000.00")
	assert.Contains(t, lines[1], "22930.00")
}

func TestClearHistory(t *testing.T) {
	router, history := newTestRouter(t)

	history.Record(responses.SalaryCalculation{
		Direction: constants.DirectionGrossToNet,
		Gross:     10000,
		Net:       8500,
	})
	require.Equal(t, 1, history.Size())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "History cleared", resp.Message)

	assert.Equal(t, 0, history.Size())
}
