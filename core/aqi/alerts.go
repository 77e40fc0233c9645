package aqi

import (
	"fmt"

	"airaware/core/types"
)

// Alert thresholds. Tiers are cumulative: an index above the danger
// threshold carries both the warning and the danger alert.
const (
	warningThreshold = 150
	dangerThreshold  = 200
)

// GenerateAlerts derives the health alerts for an overall index. The
// optional location is woven into the message text; an empty location
// produces the generic phrasing. Indices at or below the warning
// threshold yield no alerts.
func GenerateAlerts(index int, location string) []types.Alert {
	var alerts []types.Alert

	if index > warningThreshold {
		alerts = append(alerts, types.Alert{
			Severity: types.SeverityWarning,
			Title:    "High Air Pollution Alert",
			Message:  alertMessage(location, "unhealthy. Consider limiting outdoor activities."),
		})
	}

	if index > dangerThreshold {
		alerts = append(alerts, types.Alert{
			Severity: types.SeverityDanger,
			Title:    "Very Unhealthy Air Quality",
			Message:  alertMessage(location, "very unhealthy. Avoid outdoor activities."),
		})
	}

	return alerts
}

func alertMessage(location, condition string) string {
	if location == "" {
		return fmt.Sprintf("Air quality is %s", condition)
	}
	return fmt.Sprintf("Air quality in %s is %s", location, condition)
}
