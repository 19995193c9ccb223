package advisory

// Severity classifies how urgent an advisory is.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityInfo   Severity = "info"
)

// Urgency returns a comparable rank for presentation ordering.
// Higher means more urgent. Output ordering of the engine is NOT
// severity-ordered; this is for clients that want to re-sort.
func (s Severity) Urgency() int {
	switch s {
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

// DailyForecast is the normalized per-day weather summary the engine
// evaluates. Pop and WindspeedMax may be absent upstream; absent values
// evaluate as zero. UVIndexMax is passed through and never used by rules.
type DailyForecast struct {
	Date         string   `json:"date"`
	TempMax      float64  `json:"temp_max"`
	TempMin      float64  `json:"temp_min"`
	PrecipMM     float64  `json:"precip_mm"`
	Pop          *float64 `json:"pop,omitempty"`
	WindspeedMax *float64 `json:"windspeed_max,omitempty"`
	Weathercode  int      `json:"weathercode"`
	UVIndexMax   *float64 `json:"uv_index_max"`
}

// Advisory is a single actionable, severity-tagged recommendation for a
// specific date or for the whole forecast period. IDs are deterministic:
// the same rule firing for the same date always yields the same id.
type Advisory struct {
	ID       string   `json:"id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message_en"`
}
