package business

import (
	"time"

	"github.com/google/uuid"
)

// TaxBracket is one band of the progressive income tax table. FixedAmount
// is the tax owed at exactly Lower; Rate is the marginal percentage applied
// to income above Lower within the band. Upper is inclusive; a zero Upper
// marks the final, unbounded band.
type TaxBracket struct {
	Lower       float64 `json:"lower" yaml:"lower"`
	Upper       float64 `json:"upper" yaml:"upper"`
	FixedAmount float64 `json:"fixed_amount" yaml:"fixed_amount"`
	Rate        float64 `json:"rate" yaml:"rate"` // percent, e.g. 15 for 15%
}

// Unbounded reports whether the bracket has no upper limit.
func (b TaxBracket) Unbounded() bool {
	return b.Upper == 0
}

// Contains reports whether income falls inside the bracket. Upper bounds
// are inclusive: an income exactly at a band edge belongs to the lower band.
func (b TaxBracket) Contains(income float64) bool {
	return income >= b.Lower && (b.Unbounded() || income <= b.Upper)
}

// SubsidyTier grants a flat tax offset to incomes at or below its ceiling.
// Tiers are ordered ascending by ceiling; the first matching tier wins.
type SubsidyTier struct {
	IncomeCeiling float64 `json:"income_ceiling" yaml:"income_ceiling"`
	Amount        float64 `json:"amount" yaml:"amount"`
}

// ContributionRule describes one capped social contribution. Rates apply to
// the daily-equivalent base (monthly gross divided by DaysPerMonth, capped
// at CapMultiple times the reference daily wage): BaseRate on the whole
// capped base, ExcessRate on the part of it above ExcessThreshold.
type ContributionRule struct {
	Name            string  `json:"name" yaml:"name"`
	BaseRate        float64 `json:"base_rate" yaml:"base_rate"`               // percent
	ExcessRate      float64 `json:"excess_rate" yaml:"excess_rate"`           // percent
	ExcessThreshold float64 `json:"excess_threshold" yaml:"excess_threshold"` // daily amount
}

// TaxTable is the immutable rate configuration for one tax year. It is
// passed into the deduction engine at construction so alternate tables can
// be substituted without touching engine code.
type TaxTable struct {
	Year               int              `json:"year" yaml:"year"`
	Brackets           []TaxBracket     `json:"brackets" yaml:"brackets"`
	SubsidyTiers       []SubsidyTier    `json:"subsidy_tiers" yaml:"subsidy_tiers"`
	ReferenceDailyWage float64          `json:"reference_daily_wage" yaml:"reference_daily_wage"`
	CapMultiple        float64          `json:"cap_multiple" yaml:"cap_multiple"`
	DaysPerMonth       float64          `json:"days_per_month" yaml:"days_per_month"`
	Pension            ContributionRule `json:"pension" yaml:"pension"`
	Health             ContributionRule `json:"health" yaml:"health"`
}

// DailyBaseCap returns the maximum daily-equivalent base used for
// contribution calculations.
func (t TaxTable) DailyBaseCap() float64 {
	return t.CapMultiple * t.ReferenceDailyWage
}

// DeductionBreakdown holds the three statutory withholdings computed from a
// monthly gross amount. Total is always the exact sum of the components.
type DeductionBreakdown struct {
	IncomeTax           float64 `json:"income_tax"`
	PensionContribution float64 `json:"pension_contribution"`
	HealthContribution  float64 `json:"health_contribution"`
	Total               float64 `json:"total"`
}

// CalculationRecord is an immutable snapshot of one resolved calculation
// kept in the session history.
type CalculationRecord struct {
	ID          uuid.UUID          `json:"id"`
	Direction   string             `json:"direction"` // gross_to_net or net_to_gross
	Gross       float64            `json:"gross"`
	Net         float64            `json:"net"`
	Deductions  DeductionBreakdown `json:"deductions"`
	Approximate bool               `json:"approximate"`
	CreatedAt   time.Time          `json:"created_at"`
}
