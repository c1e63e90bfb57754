// Package interfaces defines service contracts consumed by HTTP handlers,
// so handlers can be exercised against lightweight implementations in tests.
package interfaces

import (
	"github.com/hirepath/payroll-api/internal/types/api/responses"
	"github.com/hirepath/payroll-api/internal/types/business"
)

// SalaryResolver converts between gross and net monthly salaries.
type SalaryResolver interface {
	NetFromGross(gross float64) (*responses.SalaryCalculation, error)
	GrossFromNet(targetNet float64) (*responses.SalaryCalculation, error)
}

// HistoryService keeps the session log of calculation records.
type HistoryService interface {
	Record(calc responses.SalaryCalculation) business.CalculationRecord
	List() []business.CalculationRecord
	Size() int
	Clear()
	ExportCSV() ([]byte, error)
}
