package services

import (
	"fmt"
	"math"

	"github.com/hirepath/payroll-api/internal/logger"
	"github.com/hirepath/payroll-api/internal/types/business"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrInvalidInput is returned when an amount is negative, zero where a
// positive value is mandatory, or otherwise unusable. Handlers map it to a
// 400 with a user-facing message.
var ErrInvalidInput = errors.New("invalid input")

// DeductionEngine computes the statutory withholdings for a monthly gross
// amount under a fixed tax table. All methods are pure and safe for
// concurrent use.
type DeductionEngine struct {
	table  business.TaxTable
	logger *zap.Logger
}

// NewDeductionEngine creates an engine for the given table. The table is
// validated once here so the calculation paths can assume its invariants.
func NewDeductionEngine(table business.TaxTable) (*DeductionEngine, error) {
	if err := ValidateTaxTable(table); err != nil {
		return nil, fmt.Errorf("failed to create deduction engine: %w", err)
	}

	return &DeductionEngine{
		table:  table,
		logger: logger.Log,
	}, nil
}

// Table returns the engine's rate table.
func (e *DeductionEngine) Table() business.TaxTable {
	return e.table
}

// IncomeTax computes the progressive tax on a monthly income: the bracket
// fixed amount plus the marginal rate on income above the bracket's lower
// edge, less any subsidy tier offset, never below zero.
func (e *DeductionEngine) IncomeTax(income float64) (float64, error) {
	if income < 0 {
		return 0, errors.Wrapf(ErrInvalidInput, "income must not be negative, got %.2f", income)
	}

	bracket, err := e.bracketFor(income)
	if err != nil {
		return 0, err
	}

	tax := bracket.FixedAmount + (income-bracket.Lower)*bracket.Rate/100
	tax -= e.subsidyFor(income)
	if tax < 0 {
		tax = 0
	}

	return roundCurrency(tax), nil
}

// PensionContribution computes the capped pension withholding for a monthly
// gross amount.
func (e *DeductionEngine) PensionContribution(gross float64) (float64, error) {
	return e.contribution(gross, e.table.Pension)
}

// HealthContribution computes the capped health withholding for a monthly
// gross amount.
func (e *DeductionEngine) HealthContribution(gross float64) (float64, error) {
	return e.contribution(gross, e.table.Health)
}

// AllDeductions computes every withholding for a monthly gross amount. The
// breakdown total is the exact sum of the rounded components.
func (e *DeductionEngine) AllDeductions(gross float64) (*business.DeductionBreakdown, error) {
	if gross < 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "gross must not be negative, got %.2f", gross)
	}

	tax, err := e.IncomeTax(gross)
	if err != nil {
		return nil, err
	}
	pension, err := e.PensionContribution(gross)
	if err != nil {
		return nil, err
	}
	health, err := e.HealthContribution(gross)
	if err != nil {
		return nil, err
	}

	return &business.DeductionBreakdown{
		IncomeTax:           tax,
		PensionContribution: pension,
		HealthContribution:  health,
		Total:               roundCurrency(tax + pension + health),
	}, nil
}

// bracketFor locates the unique bracket containing income. Upper bounds are
// inclusive, so an income exactly at a band edge stays in the lower band.
func (e *DeductionEngine) bracketFor(income float64) (business.TaxBracket, error) {
	for _, b := range e.table.Brackets {
		if b.Contains(income) {
			return b, nil
		}
	}

	// Unreachable with a validated table; guard anyway.
	e.logger.Error("No bracket matched income", zap.Float64("income", income))
	return business.TaxBracket{}, fmt.Errorf("no tax bracket matches income %.2f", income)
}

// subsidyFor returns the flat offset of the lowest tier whose ceiling
// covers the income, or zero above all tiers.
func (e *DeductionEngine) subsidyFor(income float64) float64 {
	for _, tier := range e.table.SubsidyTiers {
		if income <= tier.IncomeCeiling {
			return tier.Amount
		}
	}
	return 0
}

// contribution converts gross to a daily-equivalent base, caps it at the
// table's multiple of the reference daily wage, applies the rule's base and
// excess-over-threshold tiers, and scales back to a monthly figure.
func (e *DeductionEngine) contribution(gross float64, rule business.ContributionRule) (float64, error) {
	if gross < 0 {
		return 0, errors.Wrapf(ErrInvalidInput, "gross must not be negative, got %.2f", gross)
	}

	daily := gross / e.table.DaysPerMonth
	if limit := e.table.DailyBaseCap(); daily > limit {
		daily = limit
	}

	perDay := daily * rule.BaseRate / 100
	if excess := daily - rule.ExcessThreshold; excess > 0 {
		perDay += excess * rule.ExcessRate / 100
	}

	return roundCurrency(perDay * e.table.DaysPerMonth), nil
}

// roundCurrency rounds to two decimals (currency-scale precision).
func roundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}
