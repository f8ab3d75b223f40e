package model

import "time"

// MetroArea is a canonical U.S. metro region. Immutable once loaded.
type MetroArea struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	State       string   `json:"state"`
	Aliases     []string `json:"aliases,omitempty"`
}

// Aggregate reports whether this is the national "United States" roll-up
// row rather than a real metro. Rankings exclude it unless asked.
func (m MetroArea) Aggregate() bool {
	return m.State == "" && m.DisplayName == "United States"
}

// PricePoint is one observation of the home-value index.
type PricePoint struct {
	Period time.Time `json:"period"`
	Value  float64   `json:"value"`
}

// PriceSeries is the chronological index history for one metro.
// Periods are ascending and unique; every series has at least one point.
type PriceSeries struct {
	MetroID string       `json:"metro_id"`
	Points  []PricePoint `json:"points"`
}

// Latest returns the most recent point. Callers rely on the ≥1 point
// invariant held by the store.
func (s PriceSeries) Latest() PricePoint {
	return s.Points[len(s.Points)-1]
}

// Row is one already-parsed dataset row handed to the store.
type Row struct {
	MetroName string    `json:"metro_name"`
	State     string    `json:"state"`
	Period    time.Time `json:"period"`
	Value     float64   `json:"value"`
}
