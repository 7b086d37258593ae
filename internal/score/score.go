// Package score converts raw consultant match scores into display
// percentages. The raw scoring function's useful output lives in a
// narrow band, so the primary strategy remaps it onto a wider,
// human-friendly range before rounding.
package score

import (
	"fmt"
	"math"
	"strings"
)

// Severity is a coarse classification of a displayed percentage,
// used to pick a presentation color.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Strategy names. Both exist in the product today and call sites
// differ in which they expect, so they stay separate instead of
// being merged into one behavior.
const (
	StrategyRemapped = "remapped"
	StrategyLinear   = "linear"
)

// Normalizer maps a raw match score to an integer percentage and a
// severity for display.
type Normalizer interface {
	Name() string
	Percentage(rawScore float64) int
	Classify(percentage int) Severity
}

// ByName returns the normalizer registered under the given strategy
// name.
func ByName(name string) (Normalizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case StrategyRemapped, "":
		return NewRemapped(remapMinInput, remapMaxInput, remapMinOutput, remapMaxOutput)
	case StrategyLinear:
		return Linear{}, nil
	default:
		return nil, fmt.Errorf("unknown score strategy: %s", name)
	}
}

// Remapped observed input band and target display band.
const (
	remapMinInput  = 0.40
	remapMaxInput  = 0.67
	remapMinOutput = 60
	remapMaxOutput = 90
)

// Remapped performs a linear interpolation from an observed raw
// score band onto a fixed display band, clamping at both ends.
type Remapped struct {
	minInput  float64
	maxInput  float64
	minOutput int
	maxOutput int
}

// NewRemapped builds a remapping normalizer. The input band must be
// non-degenerate: equal bounds would divide by zero inside
// Percentage and produce NaN, so they are rejected here.
func NewRemapped(minInput, maxInput float64, minOutput, maxOutput int) (Remapped, error) {
	if maxInput == minInput {
		return Remapped{}, fmt.Errorf("degenerate score band: minInput == maxInput == %v", minInput)
	}

	return Remapped{
		minInput:  minInput,
		maxInput:  maxInput,
		minOutput: minOutput,
		maxOutput: maxOutput,
	}, nil
}

// DefaultRemapped returns the remapping normalizer with the fixed
// production constants. The constants never trigger the degenerate
// band guard.
func DefaultRemapped() Remapped {
	n, err := NewRemapped(remapMinInput, remapMaxInput, remapMinOutput, remapMaxOutput)
	if err != nil {
		// Unreachable with the fixed constants above.
		panic(err)
	}
	return n
}

func (r Remapped) Name() string { return StrategyRemapped }

func (r Remapped) Percentage(rawScore float64) int {
	span := float64(r.maxOutput - r.minOutput)
	p := (rawScore-r.minInput)/(r.maxInput-r.minInput)*span + float64(r.minOutput)

	percentage := int(math.Round(p))
	if percentage < r.minOutput {
		percentage = r.minOutput
	}
	if percentage > r.maxOutput {
		percentage = r.maxOutput
	}

	return percentage
}

// Classify buckets the displayed percentage. The error bucket is
// unreachable while the clamp holds but stays defined for boundary
// testing.
func (r Remapped) Classify(percentage int) Severity {
	switch {
	case percentage >= 80:
		return SeveritySuccess
	case percentage >= 70:
		return SeverityInfo
	case percentage >= 60:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// Linear is the plain variant used by call sites that render the raw
// score directly: round(score*100), no remapping and no clamp.
type Linear struct{}

func (Linear) Name() string { return StrategyLinear }

func (Linear) Percentage(rawScore float64) int {
	return int(math.Round(rawScore * 100))
}

func (Linear) Classify(percentage int) Severity {
	switch {
	case percentage >= 80:
		return SeveritySuccess
	case percentage >= 60:
		return SeverityInfo
	case percentage >= 40:
		return SeverityWarning
	default:
		return SeverityError
	}
}
