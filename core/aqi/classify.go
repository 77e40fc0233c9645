// Package aqi aggregates per-pollutant indices into an overall Air
// Quality Index and classifies it into a health-impact category.
package aqi

import "airaware/core/types"

// band is one inclusive index range with its category metadata.
type band struct {
	low, high int
	info      types.CategoryInfo
}

// bands is the category table: conventional colors and health guidance
// per index range. Ordered ascending; ranges are inclusive on both
// ends.
var bands = []band{
	{0, 50, types.CategoryInfo{
		Level:       types.CategoryGood,
		Color:       "#00e400",
		Description: "Air quality is satisfactory, and air pollution poses little or no risk.",
	}},
	{51, 100, types.CategoryInfo{
		Level:       types.CategoryModerate,
		Color:       "#ffff00",
		Description: "Air quality is acceptable for most people. However, sensitive groups may experience minor symptoms.",
	}},
	{101, 150, types.CategoryInfo{
		Level:       types.CategorySensitive,
		Color:       "#ff7e00",
		Description: "Members of sensitive groups may experience health effects. The general public is not likely to be affected.",
	}},
	{151, 200, types.CategoryInfo{
		Level:       types.CategoryUnhealthy,
		Color:       "#ff0000",
		Description: "Everyone may begin to experience health effects; members of sensitive groups may experience more serious effects.",
	}},
	{201, 300, types.CategoryInfo{
		Level:       types.CategoryVeryUnhealthy,
		Color:       "#8f3f97",
		Description: "Health warnings of emergency conditions. The entire population is more likely to be affected.",
	}},
	{301, 500, types.CategoryInfo{
		Level:       types.CategoryHazardous,
		Color:       "#7e0023",
		Description: "Health alert: everyone may experience more serious health effects.",
	}},
}

// Band is one inclusive index range with its category metadata.
type Band struct {
	Low  int
	High int
	Info types.CategoryInfo
}

// Bands returns the category table in ascending index order.
func Bands() []Band {
	out := make([]Band, len(bands))
	for i, b := range bands {
		out[i] = Band{Low: b.low, High: b.high, Info: b.info}
	}
	return out
}

// Classify maps an index to its health category. The lookup is total:
// indices below 0 clamp to Good, indices above 500 clamp to Hazardous.
func Classify(index int) types.CategoryInfo {
	if index < 0 {
		return bands[0].info
	}
	for _, b := range bands {
		if index >= b.low && index <= b.high {
			return b.info
		}
	}
	return bands[len(bands)-1].info
}
