package services

import (
	"fmt"
	"math"
	"os"

	"github.com/hirepath/payroll-api/internal/types/business"
	"gopkg.in/yaml.v2"
)

// DefaultTaxTable returns the hardcoded rate table the calculator ships
// with. The bracket fixed amounts are the cumulative tax at each band's
// lower edge, so the forward function is continuous across band boundaries.
func DefaultTaxTable() business.TaxTable {
	return business.TaxTable{
		Year: 2025,
		Brackets: []business.TaxBracket{
			{Lower: 0, Upper: 12500, FixedAmount: 0, Rate: 10},
			{Lower: 12500, Upper: 27000, FixedAmount: 1250, Rate: 15},
			{Lower: 27000, Upper: 60000, FixedAmount: 3425, Rate: 20},
			{Lower: 60000, Upper: 110000, FixedAmount: 10025, Rate: 27},
			{Lower: 110000, Upper: 0, FixedAmount: 23525, Rate: 35},
		},
		SubsidyTiers: []business.SubsidyTier{
			{IncomeCeiling: 18000, Amount: 600},
			{IncomeCeiling: 32000, Amount: 300},
		},
		ReferenceDailyWage: 450,
		CapMultiple:        7.5,
		DaysPerMonth:       30,
		Pension: business.ContributionRule{
			Name:            "pension",
			BaseRate:        9,
			ExcessRate:      2,
			ExcessThreshold: 450,
		},
		Health: business.ContributionRule{
			Name:            "health",
			BaseRate:        1,
			ExcessRate:      0.5,
			ExcessThreshold: 900,
		},
	}
}

// LoadTaxTable reads an alternate tax-year table from a YAML file and
// validates it before use. Unknown keys are rejected so a typo in a rate
// name cannot silently zero a deduction.
func LoadTaxTable(path string) (business.TaxTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return business.TaxTable{}, fmt.Errorf("failed to read tax table file: %w", err)
	}

	var table business.TaxTable
	if err := yaml.UnmarshalStrict(data, &table); err != nil {
		return business.TaxTable{}, fmt.Errorf("failed to parse tax table file: %w", err)
	}

	if err := ValidateTaxTable(table); err != nil {
		return business.TaxTable{}, fmt.Errorf("invalid tax table in %s: %w", path, err)
	}

	return table, nil
}

// ValidateTaxTable checks the structural invariants the deduction engine
// relies on: brackets ascending, contiguous and exhaustive over [0, inf),
// fixed amounts continuous at band edges, subsidy tiers ascending, and
// positive contribution base parameters.
func ValidateTaxTable(table business.TaxTable) error {
	if len(table.Brackets) == 0 {
		return fmt.Errorf("tax table has no brackets")
	}

	if table.Brackets[0].Lower != 0 {
		return fmt.Errorf("first bracket must start at 0, got %.2f", table.Brackets[0].Lower)
	}

	for i, b := range table.Brackets {
		last := i == len(table.Brackets)-1

		if b.Rate < 0 || b.FixedAmount < 0 {
			return fmt.Errorf("bracket %d has negative rate or fixed amount", i)
		}
		if !last && b.Unbounded() {
			return fmt.Errorf("bracket %d is unbounded but is not the last bracket", i)
		}
		if last && !b.Unbounded() {
			return fmt.Errorf("last bracket must be unbounded")
		}
		if !b.Unbounded() && b.Upper <= b.Lower {
			return fmt.Errorf("bracket %d upper bound %.2f not above lower bound %.2f", i, b.Upper, b.Lower)
		}

		if i == 0 {
			continue
		}
		prev := table.Brackets[i-1]
		if b.Lower != prev.Upper {
			return fmt.Errorf("bracket %d lower bound %.2f does not continue previous upper bound %.2f", i, b.Lower, prev.Upper)
		}
		// The fixed amount must equal the cumulative tax at the band edge,
		// otherwise the forward function jumps at the boundary.
		expected := prev.FixedAmount + (prev.Upper-prev.Lower)*prev.Rate/100
		if math.Abs(b.FixedAmount-expected) > 0.01 {
			return fmt.Errorf("bracket %d fixed amount %.2f breaks continuity, expected %.2f", i, b.FixedAmount, expected)
		}
	}

	for i, tier := range table.SubsidyTiers {
		if tier.IncomeCeiling <= 0 || tier.Amount < 0 {
			return fmt.Errorf("subsidy tier %d has non-positive ceiling or negative amount", i)
		}
		if i > 0 && tier.IncomeCeiling <= table.SubsidyTiers[i-1].IncomeCeiling {
			return fmt.Errorf("subsidy tiers must be ordered by ascending ceiling")
		}
	}

	if table.ReferenceDailyWage <= 0 {
		return fmt.Errorf("reference daily wage must be positive")
	}
	if table.CapMultiple <= 0 {
		return fmt.Errorf("contribution cap multiple must be positive")
	}
	if table.DaysPerMonth <= 0 {
		return fmt.Errorf("days per month must be positive")
	}

	for _, rule := range []business.ContributionRule{table.Pension, table.Health} {
		if rule.BaseRate < 0 || rule.ExcessRate < 0 || rule.ExcessThreshold < 0 {
			return fmt.Errorf("contribution rule %q has negative parameters", rule.Name)
		}
	}

	return nil
}
