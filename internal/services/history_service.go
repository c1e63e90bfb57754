package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hirepath/payroll-api/internal/constants"
	"github.com/hirepath/payroll-api/internal/logger"
	"github.com/hirepath/payroll-api/internal/types/api/responses"
	"github.com/hirepath/payroll-api/internal/types/business"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// DefaultHistoryCapacity is the number of calculation records retained when
// no explicit limit is configured.
const DefaultHistoryCapacity = 50

// csvTimestampLayout matches the display format of the calculator UI.
const csvTimestampLayout = "2006-01-02 15:04:05"

// directionLabels maps wire direction values to the labels used in exports.
var directionLabels = map[string]string{
	constants.DirectionGrossToNet: "Gross→Net",
	constants.DirectionNetToGross: "Net→Gross",
}

// HistoryService keeps an append-only, capacity-bounded log of calculation
// records for the current session. Oldest entries are evicted first once the
// capacity is reached. Appends are mutex-serialized so the service stays
// correct when hosted behind a multi-threaded HTTP server.
type HistoryService struct {
	mu       sync.Mutex
	capacity int
	records  []business.CalculationRecord
	logger   *zap.Logger
}

// NewHistoryService creates a history log with the given capacity; values
// below one fall back to DefaultHistoryCapacity.
func NewHistoryService(capacity int) *HistoryService {
	if capacity < 1 {
		capacity = DefaultHistoryCapacity
	}

	return &HistoryService{
		capacity: capacity,
		records:  make([]business.CalculationRecord, 0, capacity),
		logger:   logger.Log,
	}
}

// Record appends a calculation to the history, assigning it an ID and
// timestamp, and returns the stored record. The oldest record is evicted
// when the log is at capacity.
func (s *HistoryService) Record(calc responses.SalaryCalculation) business.CalculationRecord {
	record := business.CalculationRecord{
		ID:          uuid.New(),
		Direction:   calc.Direction,
		Gross:       calc.Gross,
		Net:         calc.Net,
		Deductions:  calc.Deductions,
		Approximate: calc.Approximate,
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) == s.capacity {
		s.records = s.records[1:]
	}
	s.records = append(s.records, record)

	s.logger.Debug("Recorded calculation",
		zap.String("record_id", record.ID.String()),
		zap.String("direction", record.Direction),
		zap.Int("history_size", len(s.records)))

	return record
}

// List returns the retained records, newest first.
func (s *HistoryService) List() []business.CalculationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return lo.Reverse(append([]business.CalculationRecord(nil), s.records...))
}

// Size returns the number of retained records.
func (s *HistoryService) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// Clear drops every retained record.
func (s *HistoryService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}

// ExportCSV serializes the history, newest first, with a fixed column order:
// timestamp, direction label, gross, net, income tax, pension contribution,
// health contribution. Numeric fields carry two decimals and are not quoted.
func (s *HistoryService) ExportCSV() ([]byte, error) {
	records := s.List()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"timestamp", "direction", "gross", "net", "income_tax", "pension_contribution", "health_contribution"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	rows := lo.Map(records, func(r business.CalculationRecord, _ int) []string {
		return []string{
			r.CreatedAt.Format(csvTimestampLayout),
			directionLabel(r.Direction),
			formatAmount(r.Gross),
			formatAmount(r.Net),
			formatAmount(r.Deductions.IncomeTax),
			formatAmount(r.Deductions.PensionContribution),
			formatAmount(r.Deductions.HealthContribution),
		}
	})
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write CSV rows: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}

// directionLabel translates a wire direction into its export label.
func directionLabel(direction string) string {
	if label, ok := directionLabels[direction]; ok {
		return label
	}
	return direction
}

// formatAmount renders a currency amount with two decimals.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
