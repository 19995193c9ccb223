package advisory

// RawDaily mirrors the parallel-array daily block returned by the
// Open-Meteo forecast API. Arrays other than Time may be shorter than
// Time when the upstream omits trailing values.
type RawDaily struct {
	Time        []string   `json:"time"`
	TempMax     []float64  `json:"temperature_2m_max"`
	TempMin     []float64  `json:"temperature_2m_min"`
	PrecipSum   []float64  `json:"precipitation_sum"`
	PrecipProb  []float64  `json:"precipitation_probability_max"`
	Weathercode []int      `json:"weathercode"`
	WindMax     []float64  `json:"windspeed_10m_max"`
	UVIndexMax  []*float64 `json:"uv_index_max"`
}

// Normalize reshapes the parallel arrays into one DailyForecast per date.
// The output length always equals len(raw.Time); indices beyond the end of
// a shorter source array yield an absent value for that field rather than
// an error. Absent uv_index_max stays null; absent pop and windspeed_max
// default to zero at rule-evaluation time, not here.
func Normalize(raw RawDaily) []DailyForecast {
	days := make([]DailyForecast, 0, len(raw.Time))
	for i, date := range raw.Time {
		d := DailyForecast{Date: date}

		if i < len(raw.TempMax) {
			d.TempMax = raw.TempMax[i]
		}
		if i < len(raw.TempMin) {
			d.TempMin = raw.TempMin[i]
		}
		if i < len(raw.PrecipSum) {
			d.PrecipMM = raw.PrecipSum[i]
		}
		if i < len(raw.PrecipProb) {
			pop := raw.PrecipProb[i]
			d.Pop = &pop
		}
		if i < len(raw.WindMax) {
			wind := raw.WindMax[i]
			d.WindspeedMax = &wind
		}
		if i < len(raw.Weathercode) {
			d.Weathercode = raw.Weathercode[i]
		}
		if i < len(raw.UVIndexMax) {
			d.UVIndexMax = raw.UVIndexMax[i]
		}

		days = append(days, d)
	}
	return days
}
