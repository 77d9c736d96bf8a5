package pricing

import "math"

// RawInputs holds the four calculator fields exactly as they were submitted.
// Any of them may be empty or malformed.
type RawInputs struct {
	PricePerUnitArea string
	TotalArea        string
	NumPeople        string
	AdvancePercent   string
}

// Inputs holds sanitized calculator fields. People is never below 1 when
// produced by Sanitize.
type Inputs struct {
	PricePerUnitArea float64
	TotalArea        float64
	People           int64
	AdvancePercent   float64
}

// Totals contains the project-level amounts.
type Totals struct {
	TotalPrice    float64
	AdvanceAmount float64
	BalanceAmount float64
}

// Share contains one investor's equal part of each project-level amount.
type Share struct {
	Total   float64
	Advance float64
	Balance float64
}

// Result groups the full calculation output.
type Result struct {
	Inputs          Inputs
	EffectivePeople int64
	Totals          Totals
	PerPerson       Share
}

// BalancePercent is the share of the price left after the advance. It is not
// clamped, so an advance above 100 yields a negative balance percent.
func (r Result) BalancePercent() float64 {
	return 100 - r.Inputs.AdvancePercent
}

// Compute sanitizes raw field values and calculates the cost breakdown.
// It never fails.
func Compute(raw RawInputs) Result {
	return Calculate(Sanitize(raw))
}

// Calculate derives totals and per-person shares from sanitized inputs.
func Calculate(in Inputs) Result {
	people := max(in.People, 1)

	total := saturate(in.PricePerUnitArea * in.TotalArea)
	advance := saturate(total * (in.AdvancePercent / 100.0))
	balance := saturate(total - advance)

	n := float64(people)
	return Result{
		Inputs:          in,
		EffectivePeople: people,
		Totals: Totals{
			TotalPrice:    total,
			AdvanceAmount: advance,
			BalanceAmount: balance,
		},
		PerPerson: Share{
			Total:   total / n,
			Advance: advance / n,
			Balance: balance / n,
		},
	}
}

// saturate clamps an overflowed amount to the largest finite float64 of the
// same sign. Finite operands never produce NaN here, so only ±Inf is handled.
func saturate(v float64) float64 {
	switch {
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	}
	return v
}
