package advisory

import "fmt"

// Thresholds holds the numeric cutoffs the rule set compares against.
// All comparisons are inclusive (>=).
type Thresholds struct {
	HighRainPop float64 // probability of precipitation, percent
	MedRainPop  float64
	HeavyRainMM float64 // daily precipitation sum, mm
	HeatC       float64 // daily max temperature, Celsius
	WindKmh     float64 // daily max wind speed, km/h
	DryWeekMM   float64 // total precipitation across the whole set, mm
}

// DefaultThresholds returns the cutoffs the advisory rules shipped with.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighRainPop: 70,
		MedRainPop:  40,
		HeavyRainMM: 20,
		HeatC:       35,
		WindKmh:     40,
		DryWeekMM:   5,
	}
}

// Engine derives farming advisories from a normalized multi-day forecast.
// It is a pure function of its input: no I/O, no state beyond the
// configured thresholds, safe for concurrent use.
type Engine struct {
	t Thresholds
}

// NewEngine creates an Engine with the given thresholds.
func NewEngine(t Thresholds) *Engine {
	return &Engine{t: t}
}

// categoryPass evaluates one rule category over the entire forecast set.
// Passes run in a fixed order and each iterates days in forecast order,
// so the output is ordered by rule category first, then by date within
// a category. This ordering is part of the contract.
type categoryPass func(e *Engine, days []DailyForecast) []Advisory

var passes = []categoryPass{
	(*Engine).rainPass,
	(*Engine).heatPass,
	(*Engine).windPass,
	(*Engine).dryWeekPass,
}

// Generate evaluates every rule category against the forecast and returns
// the resulting advisories. It never fails: if no rule fires it emits a
// single "general" advisory instead. Malformed day values are evaluated
// as-is; the engine does not validate its input.
func (e *Engine) Generate(locationLabel string, days []DailyForecast) []Advisory {
	var out []Advisory
	for _, pass := range passes {
		out = append(out, pass(e, days)...)
	}

	if len(out) == 0 {
		out = append(out, Advisory{
			ID:       "general",
			Severity: SeverityInfo,
			Message:  "No major weather warnings for the next 7 days. Continue regular farm care.",
		})
	}
	return out
}

// rainTier is one tier of the rain category. Tiers are evaluated in order
// per day and the first match wins, so a heavy-rain day never also gets
// the moderate-rain advisory.
type rainTier struct {
	match func(e *Engine, d DailyForecast) bool
	emit  func(d DailyForecast) Advisory
}

var rainTiers = []rainTier{
	{
		match: func(e *Engine, d DailyForecast) bool {
			return orZero(d.Pop) >= e.t.HighRainPop || d.PrecipMM >= e.t.HeavyRainMM
		},
		emit: func(d DailyForecast) Advisory {
			return Advisory{
				ID:       "rain-" + d.Date,
				Severity: SeverityHigh,
				Message:  fmt.Sprintf("Heavy rain likely on %s. Avoid pesticide/fertilizer spray and secure stored produce.", d.Date),
			}
		},
	},
	{
		match: func(e *Engine, d DailyForecast) bool {
			return orZero(d.Pop) >= e.t.MedRainPop
		},
		emit: func(d DailyForecast) Advisory {
			return Advisory{
				ID:       "rain-med-" + d.Date,
				Severity: SeverityMedium,
				Message:  fmt.Sprintf("Moderate chance of rain on %s. Plan field activities accordingly.", d.Date),
			}
		},
	},
}

func (e *Engine) rainPass(days []DailyForecast) []Advisory {
	var out []Advisory
	for _, d := range days {
		for _, tier := range rainTiers {
			if tier.match(e, d) {
				out = append(out, tier.emit(d))
				break
			}
		}
	}
	return out
}

func (e *Engine) heatPass(days []DailyForecast) []Advisory {
	var out []Advisory
	for _, d := range days {
		if d.TempMax >= e.t.HeatC {
			out = append(out, Advisory{
				ID:       "heat-" + d.Date,
				Severity: SeverityMedium,
				Message:  fmt.Sprintf("High temperature (≈ %g°C) on %s. Consider irrigation and shade for sensitive crops.", d.TempMax, d.Date),
			})
		}
	}
	return out
}

func (e *Engine) windPass(days []DailyForecast) []Advisory {
	var out []Advisory
	for _, d := range days {
		if orZero(d.WindspeedMax) >= e.t.WindKmh {
			out = append(out, Advisory{
				ID:       "wind-" + d.Date,
				Severity: SeverityMedium,
				Message:  fmt.Sprintf("Strong winds (~%g km/h) expected on %s. Avoid spraying pesticides that day.", orZero(d.WindspeedMax), d.Date),
			})
		}
	}
	return out
}

// dryWeekPass sums precipitation across the whole set, including an empty
// one: zero days sum to 0, which is below the threshold, so an empty
// forecast produces the dry-week advisory rather than the fallback.
func (e *Engine) dryWeekPass(days []DailyForecast) []Advisory {
	var total float64
	for _, d := range days {
		total += d.PrecipMM
	}
	if total >= e.t.DryWeekMM {
		return nil
	}
	return []Advisory{{
		ID:       "dry-week",
		Severity: SeverityInfo,
		Message:  fmt.Sprintf("Low rainfall expected this week (~%.1f mm). Plan irrigation for water-sensitive crops.", total),
	}}
}

// orZero treats an absent optional field as zero for rule evaluation.
func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
