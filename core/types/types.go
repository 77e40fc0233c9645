// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

import "strings"

// Pollutant represents a measured pollutant species
type Pollutant string

const (
	PollutantPM25 Pollutant = "pm25"
	PollutantPM10 Pollutant = "pm10"
	PollutantO3   Pollutant = "o3"
	PollutantNO2  Pollutant = "no2"
	PollutantSO2  Pollutant = "so2"
	PollutantCO   Pollutant = "co"
)

// String returns the string representation of the pollutant
func (p Pollutant) String() string {
	return string(p)
}

// IsValid checks if the pollutant is a known species
func (p Pollutant) IsValid() bool {
	switch p {
	case PollutantPM25, PollutantPM10, PollutantO3, PollutantNO2, PollutantSO2, PollutantCO:
		return true
	default:
		return false
	}
}

// ParsePollutant canonicalizes a pollutant code. Case and the
// separators ".", "-", "_" are ignored, so "PM2.5" and "pm2_5" both
// parse as pm25. Unrecognized codes are returned lowercased with
// ok=false so permissive callers can still skip them by name.
func ParsePollutant(s string) (Pollutant, bool) {
	canon := strings.ToLower(strings.TrimSpace(s))
	canon = strings.NewReplacer(".", "", "-", "", "_", "").Replace(canon)
	p := Pollutant(canon)
	return p, p.IsValid()
}

// PollutantInfo describes a pollutant's static metadata
type PollutantInfo struct {
	// DisplayName is the human-readable species name
	DisplayName string `json:"display_name"`

	// Unit is the measurement unit expected by the breakpoint tables
	Unit string `json:"unit"`

	// Description is a one-line species description
	Description string `json:"description"`
}

// pollutantInfo holds the static metadata per species. Concentrations
// are μg/m³ for everything except CO, which is mg/m³.
var pollutantInfo = map[Pollutant]PollutantInfo{
	PollutantPM25: {DisplayName: "PM2.5", Unit: "μg/m³", Description: "Fine Particulate Matter"},
	PollutantPM10: {DisplayName: "PM10", Unit: "μg/m³", Description: "Coarse Particulate Matter"},
	PollutantO3:   {DisplayName: "O₃", Unit: "μg/m³", Description: "Ozone"},
	PollutantNO2:  {DisplayName: "NO₂", Unit: "μg/m³", Description: "Nitrogen Dioxide"},
	PollutantSO2:  {DisplayName: "SO₂", Unit: "μg/m³", Description: "Sulfur Dioxide"},
	PollutantCO:   {DisplayName: "CO", Unit: "mg/m³", Description: "Carbon Monoxide"},
}

// Info returns the pollutant's static metadata
func (p Pollutant) Info() PollutantInfo {
	return pollutantInfo[p]
}

// AllPollutants returns the known species in a fixed order
func AllPollutants() []Pollutant {
	return []Pollutant{
		PollutantPM25,
		PollutantPM10,
		PollutantO3,
		PollutantNO2,
		PollutantSO2,
		PollutantCO,
	}
}

// PollutantReading is a single concentration measurement supplied to
// the engine. Readings are ephemeral; nothing in the core retains them
// past the computation that consumed them.
type PollutantReading struct {
	// Pollutant is the measured species
	Pollutant Pollutant `json:"pollutant"`

	// Concentration is the measured value, never negative
	Concentration float64 `json:"concentration"`

	// Unit is the concentration unit as reported by the source
	Unit string `json:"unit,omitempty"`
}
