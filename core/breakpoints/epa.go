package breakpoints

import "airaware/core/types"

// epaRows is the EPA breakpoint set. Concentrations are μg/m³ except
// CO in mg/m³. Rows are (ConcLow, ConcHigh, IndexLow, IndexHigh).
var epaRows = map[types.Pollutant][]Row{
	types.PollutantPM25: {
		{0, 12.0, 0, 50},
		{12.1, 35.4, 51, 100},
		{35.5, 55.4, 101, 150},
		{55.5, 150.4, 151, 200},
		{150.5, 250.4, 201, 300},
		{250.5, 350.4, 301, 400},
		{350.5, 500.4, 401, 500},
	},
	types.PollutantPM10: {
		{0, 54, 0, 50},
		{55, 154, 51, 100},
		{155, 254, 101, 150},
		{255, 354, 151, 200},
		{355, 424, 201, 300},
		{425, 504, 301, 400},
		{505, 604, 401, 500},
	},
	types.PollutantO3: {
		{0, 54, 0, 50},
		{55, 70, 51, 100},
		{71, 85, 101, 150},
		{86, 105, 151, 200},
		{106, 200, 201, 300},
	},
	types.PollutantNO2: {
		{0, 53, 0, 50},
		{54, 100, 51, 100},
		{101, 360, 101, 150},
		{361, 649, 151, 200},
		{650, 1249, 201, 300},
		{1250, 1649, 301, 400},
		{1650, 2049, 401, 500},
	},
	types.PollutantSO2: {
		{0, 35, 0, 50},
		{36, 75, 51, 100},
		{76, 185, 101, 150},
		{186, 304, 151, 200},
		{305, 604, 201, 300},
		{605, 804, 301, 400},
		{805, 1004, 401, 500},
	},
	types.PollutantCO: {
		{0, 4.4, 0, 50},
		{4.5, 9.4, 51, 100},
		{9.5, 12.4, 101, 150},
		{12.5, 15.4, 151, 200},
		{15.5, 30.4, 201, 300},
		{30.5, 40.4, 301, 400},
		{40.5, 50.4, 401, 500},
	},
}

var epaScheme = mustScheme("epa", 500, epaRows)

// EPA returns the built-in EPA scheme.
func EPA() *Scheme {
	return epaScheme
}

func mustScheme(name string, maxIndex int, rows map[types.Pollutant][]Row) *Scheme {
	s, err := NewScheme(name, maxIndex, rows)
	if err != nil {
		panic(err)
	}
	return s
}

func init() {
	_ = Register(epaScheme)
}
