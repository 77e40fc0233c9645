package types

// Category represents an AQI health-impact category
type Category string

const (
	CategoryGood          Category = "Good"
	CategoryModerate      Category = "Moderate"
	CategorySensitive     Category = "Unhealthy for Sensitive Groups"
	CategoryUnhealthy     Category = "Unhealthy"
	CategoryVeryUnhealthy Category = "Very Unhealthy"
	CategoryHazardous     Category = "Hazardous"
)

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is a known level
func (c Category) IsValid() bool {
	switch c {
	case CategoryGood, CategoryModerate, CategorySensitive,
		CategoryUnhealthy, CategoryVeryUnhealthy, CategoryHazardous:
		return true
	default:
		return false
	}
}

// CategoryInfo is a classified index band with its display metadata
type CategoryInfo struct {
	// Level is the category name
	Level Category `json:"level"`

	// Color is the conventional hex display color for the band
	Color string `json:"color"`

	// Description is the health guidance for the band
	Description string `json:"description"`
}

// AlertSeverity grades an air quality alert
type AlertSeverity string

const (
	// SeverityWarning is raised above index 150
	SeverityWarning AlertSeverity = "warning"

	// SeverityDanger is raised above index 200, in addition to warning
	SeverityDanger AlertSeverity = "danger"
)

// String returns the string representation of the severity
func (s AlertSeverity) String() string {
	return string(s)
}

// Alert is a health alert derived from the overall index
type Alert struct {
	// Severity is the alert grade
	Severity AlertSeverity `json:"severity"`

	// Title is the alert headline
	Title string `json:"title"`

	// Message is the alert guidance text
	Message string `json:"message"`
}

// AqiResult is the outcome of one AQI computation. A fresh value is
// produced per call; there is no shared mutable state behind it.
type AqiResult struct {
	// OverallIndex is the aggregate index in [0, 500]
	OverallIndex int `json:"overall_index"`

	// Dominant is the pollutant that produced the overall index, empty
	// when the default index was used
	Dominant Pollutant `json:"dominant,omitempty"`

	// PerPollutant maps each usable reading's species to its index
	PerPollutant map[Pollutant]int `json:"per_pollutant"`

	// Category classifies the overall index
	Category CategoryInfo `json:"category"`

	// Alerts are the cumulative alerts for the overall index
	Alerts []Alert `json:"alerts"`

	// Defaulted is true when no reading produced a usable index and
	// the configured default was reported instead
	Defaulted bool `json:"defaulted,omitempty"`

	// Skipped lists pollutant codes that were ignored (unknown species
	// or species absent from the active scheme)
	Skipped []string `json:"skipped,omitempty"`
}
