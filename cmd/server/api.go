package main

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"github.com/Simplici0/plotshare/internal/pricing"
)

const maxBreakdownBody = 1 << 16

// rawField accepts a JSON number or string and keeps its literal text.
// Anything else (null, bool, object, array) is kept as an empty field.
type rawField string

func (f *rawField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = rawField(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		*f = ""
		return nil
	}
	*f = rawField(n.String())
	return nil
}

type breakdownRequest struct {
	PricePerUnitArea rawField `json:"pricePerUnitArea"`
	TotalArea        rawField `json:"totalArea"`
	NumPeople        rawField `json:"numPeople"`
	AdvancePercent   rawField `json:"advancePercent"`
}

func (s *server) handleBreakdownQuery(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	raw := pricing.RawInputs{
		PricePerUnitArea: query.Get("price"),
		TotalArea:        query.Get("area"),
		NumPeople:        query.Get("people"),
		AdvancePercent:   query.Get("advance"),
	}
	writeJSON(w, http.StatusOK, newBreakdownView(pricing.Compute(raw)))
}

func (s *server) handleBreakdownJSON(w http.ResponseWriter, r *http.Request) {
	var req breakdownRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBreakdownBody))
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	raw := pricing.RawInputs{
		PricePerUnitArea: string(req.PricePerUnitArea),
		TotalArea:        string(req.TotalArea),
		NumPeople:        string(req.NumPeople),
		AdvancePercent:   string(req.AdvancePercent),
	}
	writeJSON(w, http.StatusOK, newBreakdownView(pricing.Compute(raw)))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Printf("encode json response: %v", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
