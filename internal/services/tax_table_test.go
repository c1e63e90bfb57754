package services_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hirepath/payroll-api/internal/services"
	"github.com/hirepath/payroll-api/internal/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTaxTable(t *testing.T) {
	table := services.DefaultTaxTable()

	assert.NoError(t, services.ValidateTaxTable(table))
	assert.Len(t, table.Brackets, 5)
	assert.Len(t, table.SubsidyTiers, 2)
	assert.InDelta(t, 3375, table.DailyBaseCap(), 0.001)
}

func TestValidateTaxTable(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(table *business.TaxTable)
	}{
		{
			name: "no brackets",
			mutate: func(table *business.TaxTable) {
				table.Brackets = nil
			},
		},
		{
			name: "first bracket does not start at zero",
			mutate: func(table *business.TaxTable) {
				table.Brackets[0].Lower = 100
			},
		},
		{
			name: "gap between brackets",
			mutate: func(table *business.TaxTable) {
				table.Brackets[2].Lower = 28000
			},
		},
		{
			name: "overlapping brackets",
			mutate: func(table *business.TaxTable) {
				table.Brackets[2].Lower = 26000
			},
		},
		{
			name: "upper bound below lower bound",
			mutate: func(table *business.TaxTable) {
				table.Brackets[1].Upper = 12000
			},
		},
		{
			name: "last bracket is bounded",
			mutate: func(table *business.TaxTable) {
				table.Brackets[4].Upper = 500000
			},
		},
		{
			name: "unbounded bracket in the middle",
			mutate: func(table *business.TaxTable) {
				table.Brackets[2].Upper = 0
			},
		},
		{
			name: "fixed amount breaks continuity at a band edge",
			mutate: func(table *business.TaxTable) {
				table.Brackets[2].FixedAmount = 4000
			},
		},
		{
			name: "negative rate",
			mutate: func(table *business.TaxTable) {
				table.Brackets[1].Rate = -5
			},
		},
		{
			name: "subsidy tiers out of order",
			mutate: func(table *business.TaxTable) {
				table.SubsidyTiers[1].IncomeCeiling = 17000
			},
		},
		{
			name: "subsidy tier with negative amount",
			mutate: func(table *business.TaxTable) {
				table.SubsidyTiers[0].Amount = -50
			},
		},
		{
			name: "non-positive reference daily wage",
			mutate: func(table *business.TaxTable) {
				table.ReferenceDailyWage = 0
			},
		},
		{
			name: "non-positive cap multiple",
			mutate: func(table *business.TaxTable) {
				table.CapMultiple = -1
			},
		},
		{
			name: "non-positive days per month",
			mutate: func(table *business.TaxTable) {
				table.DaysPerMonth = 0
			},
		},
		{
			name: "contribution rule with negative rate",
			mutate: func(table *business.TaxTable) {
				table.Health.ExcessRate = -0.5
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := services.DefaultTaxTable()
			tt.mutate(&table)

			assert.Error(t, services.ValidateTaxTable(table))
		})
	}
}

func TestLoadTaxTable(t *testing.T) {
	t.Run("loads the shipped config", func(t *testing.T) {
		table, err := services.LoadTaxTable(filepath.Join("..", "..", "configs", "taxtable.yaml"))
		require.NoError(t, err)

		assert.Equal(t, 2026, table.Year)
		assert.Len(t, table.Brackets, 5)
		assert.InDelta(t, 450, table.ReferenceDailyWage, 0.001)
		assert.Equal(t, "pension", table.Pension.Name)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := services.LoadTaxTable(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		path := writeTempTable(t, `
year: 2025
bracketz:
  - lower: 0
`)
		_, err := services.LoadTaxTable(path)
		assert.Error(t, err)
	})

	t.Run("structurally invalid table is rejected", func(t *testing.T) {
		path := writeTempTable(t, `
year: 2025
brackets:
  - lower: 0
    upper: 10000
    fixed_amount: 0
    rate: 10
reference_daily_wage: 450
cap_multiple: 7.5
days_per_month: 30
`)
		// Last bracket must be unbounded.
		_, err := services.LoadTaxTable(path)
		assert.Error(t, err)
	})
}

func writeTempTable(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "taxtable.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
