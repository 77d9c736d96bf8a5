package main

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Simplici0/plotshare/internal/money"
	"github.com/Simplici0/plotshare/internal/presets"
	"github.com/Simplici0/plotshare/internal/pricing"
)

// formValues echoes the raw calculator fields back into the form.
type formValues struct {
	Price   string
	Area    string
	People  string
	Advance string
}

func (f formValues) raw() pricing.RawInputs {
	return pricing.RawInputs{
		PricePerUnitArea: f.Price,
		TotalArea:        f.Area,
		NumPeople:        f.People,
		AdvancePercent:   f.Advance,
	}
}

type formattedBreakdown struct {
	PricePerUnitArea string `json:"pricePerUnitArea"`
	TotalArea        string `json:"totalArea"`
	People           string `json:"people"`
	AdvancePercent   string `json:"advancePercent"`
	BalancePercent   string `json:"balancePercent"`
	TotalPrice       string `json:"totalPrice"`
	AdvanceAmount    string `json:"advanceAmount"`
	BalanceAmount    string `json:"balanceAmount"`
	PerPersonTotal   string `json:"perPersonTotal"`
	PerPersonAdvance string `json:"perPersonAdvance"`
	PerPersonBalance string `json:"perPersonBalance"`
	ShareBadge       string `json:"shareBadge"`
}

// breakdownView is a calculation result prepared for the page and the API.
type breakdownView struct {
	PricePerUnitArea float64            `json:"pricePerUnitArea"`
	TotalArea        float64            `json:"totalArea"`
	EffectivePeople  int64              `json:"effectivePeople"`
	AdvancePercent   float64            `json:"advancePercent"`
	BalancePercent   float64            `json:"balancePercent"`
	TotalPrice       float64            `json:"totalPrice"`
	AdvanceAmount    float64            `json:"advanceAmount"`
	BalanceAmount    float64            `json:"balanceAmount"`
	PerPersonTotal   float64            `json:"perPersonTotal"`
	PerPersonAdvance float64            `json:"perPersonAdvance"`
	PerPersonBalance float64            `json:"perPersonBalance"`
	AdvanceBarWidth  float64            `json:"advanceBarWidth"`
	BalanceBarWidth  float64            `json:"balanceBarWidth"`
	Formatted        formattedBreakdown `json:"formatted"`
}

func newBreakdownView(result pricing.Result) breakdownView {
	in := result.Inputs
	balancePercent := result.BalancePercent()
	people := strconv.FormatInt(result.EffectivePeople, 10)

	return breakdownView{
		PricePerUnitArea: in.PricePerUnitArea,
		TotalArea:        in.TotalArea,
		EffectivePeople:  result.EffectivePeople,
		AdvancePercent:   in.AdvancePercent,
		BalancePercent:   balancePercent,
		TotalPrice:       result.Totals.TotalPrice,
		AdvanceAmount:    result.Totals.AdvanceAmount,
		BalanceAmount:    result.Totals.BalanceAmount,
		PerPersonTotal:   result.PerPerson.Total,
		PerPersonAdvance: result.PerPerson.Advance,
		PerPersonBalance: result.PerPerson.Balance,
		AdvanceBarWidth:  barWidth(in.AdvancePercent),
		BalanceBarWidth:  barWidth(balancePercent),
		Formatted: formattedBreakdown{
			PricePerUnitArea: money.FormatINR(in.PricePerUnitArea),
			TotalArea:        money.FormatNumber(in.TotalArea),
			People:           people,
			AdvancePercent:   money.FormatNumber(in.AdvancePercent),
			BalancePercent:   money.FormatNumber(balancePercent),
			TotalPrice:       money.FormatINR(result.Totals.TotalPrice),
			AdvanceAmount:    money.FormatINR(result.Totals.AdvanceAmount),
			BalanceAmount:    money.FormatINR(result.Totals.BalanceAmount),
			PerPersonTotal:   money.FormatINR(result.PerPerson.Total),
			PerPersonAdvance: money.FormatINR(result.PerPerson.Advance),
			PerPersonBalance: money.FormatINR(result.PerPerson.Balance),
			ShareBadge:       "1/" + people,
		},
	}
}

// barWidth keeps a percentage inside the progress bar; labels stay unclamped.
func barWidth(percent float64) float64 {
	return math.Min(100, math.Max(0, percent))
}

type calculatorViewData struct {
	baseViewData
	Form      formValues
	Breakdown breakdownView
	Presets   []presets.Preset
}

func (s *server) handleCalculator(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	form := s.formFromQuery(query)
	data := calculatorViewData{}

	if rawID := query.Get("preset"); rawID != "" {
		if err := s.applyPreset(r.Context(), rawID, query, &form); err != nil {
			data.ErrorMessage = err.Error()
		}
	}

	data.Form = form
	data.Breakdown = newBreakdownView(pricing.Compute(form.raw()))
	data.Presets = s.activePresets(r.Context())

	s.renderTemplate(w, "calculator.html", data)
}

// formFromQuery takes raw field values from the query string. Absent fields
// start from the configured defaults; present but empty fields stay empty.
func (s *server) formFromQuery(query url.Values) formValues {
	form := formValues{
		Price:   money.FormatNumber(s.defaults.PricePerUnitArea),
		Area:    money.FormatNumber(s.defaults.TotalArea),
		People:  strconv.FormatInt(s.defaults.NumPeople, 10),
		Advance: money.FormatNumber(s.defaults.AdvancePercent),
	}
	if query.Has("price") {
		form.Price = query.Get("price")
	}
	if query.Has("area") {
		form.Area = query.Get("area")
	}
	if query.Has("people") {
		form.People = query.Get("people")
	}
	if query.Has("advance") {
		form.Advance = query.Get("advance")
	}
	return form
}

var errPresetUnavailable = errors.New("preset is not available")

// applyPreset fills price and area from an active preset unless the query
// already carries them.
func (s *server) applyPreset(ctx context.Context, rawID string, query url.Values, form *formValues) error {
	if s.presets == nil {
		return errPresetUnavailable
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return errPresetUnavailable
	}

	preset, err := s.presets.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, presets.ErrNotFound) {
			log.Printf("load preset %d: %v", id, err)
		}
		return errPresetUnavailable
	}
	if !preset.Active {
		return errPresetUnavailable
	}

	if !query.Has("price") {
		form.Price = money.FormatNumber(preset.PricePerUnitArea)
	}
	if !query.Has("area") {
		form.Area = money.FormatNumber(preset.TotalArea)
	}
	return nil
}

func (s *server) activePresets(ctx context.Context) []presets.Preset {
	if s.presets == nil {
		return nil
	}

	list, err := s.presets.List(ctx, true)
	if err != nil {
		// Presets are a convenience; the calculator still works without them.
		log.Printf("warning: list presets: %v", err)
		return nil
	}
	return list
}
