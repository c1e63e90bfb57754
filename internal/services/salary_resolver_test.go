package services_test

import (
	"testing"

	"github.com/hirepath/payroll-api/internal/constants"
	"github.com/hirepath/payroll-api/internal/services"
	"github.com/hirepath/payroll-api/internal/types/business"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T) *services.SalaryResolver {
	t.Helper()

	return services.NewSalaryResolver(newTestEngine(t))
}

func TestSalaryResolver_NetFromGross(t *testing.T) {
	resolver := newTestResolver(t)

	t.Run("reference calculation", func(t *testing.T) {
		calc, err := resolver.NetFromGross(30000)
		require.NoError(t, err)

		assert.Equal(t, constants.DirectionGrossToNet, calc.Direction)
		assert.InDelta(t, 30000, calc.Gross, 0.001)
		assert.InDelta(t, 22930, calc.Net, 0.001)
		assert.InDelta(t, 7070, calc.Deductions.Total, 0.001)
		assert.False(t, calc.Approximate)
		assert.False(t, calc.CalculatedAt.IsZero())
	})

	t.Run("net plus deductions reconstructs gross", func(t *testing.T) {
		for _, gross := range []float64{4500, 19999.99, 64000, 180000} {
			calc, err := resolver.NetFromGross(gross)
			require.NoError(t, err)
			assert.InDelta(t, gross, calc.Net+calc.Deductions.Total, 0.011, "gross %.2f", gross)
		}
	})

	t.Run("non-positive gross is rejected", func(t *testing.T) {
		for _, gross := range []float64{0, -1, -30000} {
			calc, err := resolver.NetFromGross(gross)
			assert.True(t, errors.Is(err, services.ErrInvalidInput), "gross %.2f", gross)
			assert.Nil(t, calc)
		}
	})
}

func TestSalaryResolver_GrossFromNet(t *testing.T) {
	resolver := newTestResolver(t)

	t.Run("reference inverse calculation", func(t *testing.T) {
		calc, err := resolver.GrossFromNet(22930)
		require.NoError(t, err)

		assert.Equal(t, constants.DirectionNetToGross, calc.Direction)
		assert.InDelta(t, 30000, calc.Gross, 0.05)
		assert.InDelta(t, 22930, calc.Net, 0.05)
		assert.False(t, calc.Approximate)
	})

	t.Run("non-positive target is rejected", func(t *testing.T) {
		for _, target := range []float64{0, -1, -22930} {
			calc, err := resolver.GrossFromNet(target)
			assert.True(t, errors.Is(err, services.ErrInvalidInput), "target %.2f", target)
			assert.Nil(t, calc)
		}
	})
}

func TestSalaryResolver_RoundTrip(t *testing.T) {
	resolver := newTestResolver(t)

	// Grosses chosen away from the subsidy cliffs, where the forward
	// function is locally monotone and the inverse is exact.
	grosses := []float64{5000, 9000, 25000, 30000, 50000, 101250, 150000}

	for _, gross := range grosses {
		forward, err := resolver.NetFromGross(gross)
		require.NoError(t, err)

		inverse, err := resolver.GrossFromNet(forward.Net)
		require.NoError(t, err)

		assert.InDelta(t, forward.Net, inverse.Net, 0.05, "gross %.2f", gross)
		assert.False(t, inverse.Approximate, "gross %.2f", gross)
	}
}

func TestSalaryResolver_NetIsMonotoneBetweenCliffs(t *testing.T) {
	resolver := newTestResolver(t)

	// Above the last subsidy ceiling there are no cliffs, so net must never
	// decrease as gross grows.
	prev := 0.0
	for gross := 33000.0; gross <= 200000; gross += 1000 {
		calc, err := resolver.NetFromGross(gross)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, calc.Net, prev, "gross %.2f", gross)
		prev = calc.Net
	}
}

func TestSalaryResolver_GrossFromNet_ExpandsSearchWindow(t *testing.T) {
	// A 60% flat tax makes net less than half of gross, so the initial
	// [target, 2*target] window cannot bracket the root and must widen.
	table := business.TaxTable{
		Year: 2025,
		Brackets: []business.TaxBracket{
			{Lower: 0, Upper: 0, FixedAmount: 0, Rate: 60},
		},
		ReferenceDailyWage: 450,
		CapMultiple:        7.5,
		DaysPerMonth:       30,
		Pension:            business.ContributionRule{Name: "pension"},
		Health:             business.ContributionRule{Name: "health"},
	}

	engine, err := services.NewDeductionEngine(table)
	require.NoError(t, err)
	resolver := services.NewSalaryResolver(engine)

	calc, err := resolver.GrossFromNet(1000)
	require.NoError(t, err)

	assert.InDelta(t, 2500, calc.Gross, 0.05)
	assert.InDelta(t, 1000, calc.Net, 0.05)
	assert.False(t, calc.Approximate)
}
