package services

import (
	"math"
	"time"

	"github.com/hirepath/payroll-api/internal/constants"
	"github.com/hirepath/payroll-api/internal/logger"
	"github.com/hirepath/payroll-api/internal/types/api/responses"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// DefaultTolerance is the absolute currency-scale error at which the
	// inverse search stops early.
	DefaultTolerance = 0.01

	// DefaultMaxIterations bounds the bisection loop so worst-case latency
	// stays a small constant number of arithmetic steps.
	DefaultMaxIterations = 30

	// maxWindowExpansions bounds how often the initial search window may be
	// doubled before giving up on bracketing the root.
	maxWindowExpansions = 8
)

// SalaryResolver converts between gross and net monthly salaries. The
// forward direction is a direct computation; the inverse direction inverts
// the piecewise forward function numerically.
type SalaryResolver struct {
	engine        *DeductionEngine
	tolerance     float64
	maxIterations int
	logger        *zap.Logger
}

// NewSalaryResolver creates a resolver with the default tolerance and
// iteration cap.
func NewSalaryResolver(engine *DeductionEngine) *SalaryResolver {
	return &SalaryResolver{
		engine:        engine,
		tolerance:     DefaultTolerance,
		maxIterations: DefaultMaxIterations,
		logger:        logger.Log,
	}
}

// NetFromGross computes the net salary and deduction breakdown for a gross
// monthly amount. Pure and idempotent; the caller decides whether to record
// the result in the history.
func (r *SalaryResolver) NetFromGross(gross float64) (*responses.SalaryCalculation, error) {
	if gross <= 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "gross must be positive, got %.2f", gross)
	}

	deductions, err := r.engine.AllDeductions(gross)
	if err != nil {
		return nil, err
	}

	return &responses.SalaryCalculation{
		Direction:    constants.DirectionGrossToNet,
		Gross:        gross,
		Net:          roundCurrency(gross - deductions.Total),
		Deductions:   *deductions,
		CalculatedAt: time.Now(),
	}, nil
}

// GrossFromNet finds a gross monthly amount whose net equals targetNet, by
// bisecting the forward function f(g) = g - deductions(g). f increases
// everywhere except for small downward jumps where a subsidy tier ends, so
// targets right at a subsidy cliff may resolve to the nearest attainable
// gross. If the iteration cap is hit before tolerance is reached the best
// midpoint is still returned, flagged Approximate rather than failing hard.
func (r *SalaryResolver) GrossFromNet(targetNet float64) (*responses.SalaryCalculation, error) {
	if targetNet <= 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "target net must be positive, got %.2f", targetNet)
	}

	// Net never exceeds gross, so the target itself is a valid lower bound.
	// Doubling it covers every table whose combined marginal rates stay
	// under 50%; the window is verified and widened rather than trusted.
	low := targetNet
	high := targetNet * 2
	for i := 0; i < maxWindowExpansions; i++ {
		net, err := r.netAt(high)
		if err != nil {
			return nil, err
		}
		if net >= targetNet {
			break
		}
		high *= 2
	}

	var (
		mid         float64
		net         float64
		err         error
		approximate = true
	)
	for i := 0; i < r.maxIterations; i++ {
		mid = (low + high) / 2
		net, err = r.netAt(mid)
		if err != nil {
			return nil, err
		}

		if math.Abs(net-targetNet) <= r.tolerance {
			approximate = false
			break
		}
		if net < targetNet {
			low = mid
		} else {
			high = mid
		}
	}

	if approximate {
		r.logger.Warn("Inverse salary resolution did not reach tolerance",
			zap.Float64("target_net", targetNet),
			zap.Float64("best_net", net),
			zap.Int("iterations", r.maxIterations))
	}

	gross := roundCurrency(mid)
	deductions, err := r.engine.AllDeductions(gross)
	if err != nil {
		return nil, err
	}

	return &responses.SalaryCalculation{
		Direction:    constants.DirectionNetToGross,
		Gross:        gross,
		Net:          roundCurrency(gross - deductions.Total),
		Deductions:   *deductions,
		Approximate:  approximate,
		CalculatedAt: time.Now(),
	}, nil
}

// netAt evaluates the forward function without rounding the search variable.
func (r *SalaryResolver) netAt(gross float64) (float64, error) {
	deductions, err := r.engine.AllDeductions(gross)
	if err != nil {
		return 0, err
	}
	return gross - deductions.Total, nil
}
