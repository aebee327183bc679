// Package outlook builds multi-day hunting outlooks by scoring every known
// species against the daily forecast for a location.
package outlook

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"huntcast/internal/engine"
	"huntcast/internal/types"
	"huntcast/internal/weather"
)

// MaxDays is the longest outlook horizon the service will compute, bounded
// by the forecast range of the upstream provider.
const (
	MinDays     = 1
	MaxDays     = 7
	DefaultDays = 7
)

// DayRating is the qualitative label for a whole day, derived from the best
// species result on that day.
type DayRating string

const (
	RatingExcellent DayRating = "Excellent"
	RatingGood      DayRating = "Good"
	RatingFair      DayRating = "Fair"
	RatingPoor      DayRating = "Poor"
)

// SpeciesDayScore is one species' result for one outlook day.
type SpeciesDayScore struct {
	Species            string                `json:"species"`
	SuccessProbability float64               `json:"success_probability"`
	Confidence         types.ConfidenceLabel `json:"confidence"`
}

// DaySummary condenses the daily forecast for presentation.
type DaySummary struct {
	TempMinF float64            `json:"temp_min_f"`
	TempMaxF float64            `json:"temp_max_f"`
	WindMPH  float64            `json:"wind_mph"`
	Sky      types.SkyCondition `json:"sky"`
}

// DayOutlook is the scored outlook for a single day.
type DayOutlook struct {
	Date    string            `json:"date"`
	Weather DaySummary        `json:"weather"`
	Species []SpeciesDayScore `json:"species"`
	Rating  DayRating         `json:"rating"`
}

// Outlook is the full multi-day response.
type Outlook struct {
	Location    string       `json:"location"`
	GeneratedAt time.Time    `json:"generated_at"`
	Days        []DayOutlook `json:"days"`
	BestDays    []string     `json:"best_days"`
}

// Service scores multi-day outlooks. It fans out across day/species cells
// with an errgroup; each cell is an independent engine evaluation.
type Service struct {
	engine   *engine.Engine
	source   weather.Source
	lat      float64
	lon      float64
	onScored func()
}

// Option configures a Service.
type Option func(*Service)

// WithCellCounter installs a callback invoked once per scored species-day
// cell, used for metrics.
func WithCellCounter(fn func()) Option {
	return func(s *Service) {
		s.onScored = fn
	}
}

// NewService creates an outlook service for the given coordinates.
func NewService(eng *engine.Engine, source weather.Source, lat, lon float64, opts ...Option) *Service {
	s := &Service{
		engine:   eng,
		source:   source,
		lat:      lat,
		lon:      lon,
		onScored: func() {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build fetches the daily forecast and scores every species for each day.
// days is clamped to [MinDays, MaxDays]. Each day is scored at the start of
// the species' first peak activity window so the temporal component reflects
// the hunter's realistic start time rather than an arbitrary hour.
func (s *Service) Build(ctx context.Context, location string, days int) (*Outlook, error) {
	if days < MinDays {
		days = MinDays
	}
	if days > MaxDays {
		days = MaxDays
	}

	forecast, err := s.source.Forecast(ctx, s.lat, s.lon, days)
	if err != nil {
		return nil, err
	}

	species := s.engine.Catalog().Species()
	dayOutlooks := make([]DayOutlook, len(forecast))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, day := range forecast {
		g.Go(func() error {
			scores := make([]SpeciesDayScore, 0, len(species))
			snapshot := day.Snapshot()

			for _, sp := range species {
				if err := gctx.Err(); err != nil {
					return err
				}
				breakdown, err := s.engine.Evaluate(types.ScoringContext{
					Species:  sp.Name,
					Location: location,
					Weather:  snapshot,
					At:       scoringTime(day.Date, sp),
				})
				if err != nil {
					return err
				}
				s.onScored()
				scores = append(scores, SpeciesDayScore{
					Species:            sp.Name,
					SuccessProbability: breakdown.SuccessProbability,
					Confidence:         breakdown.Confidence,
				})
			}

			sort.Slice(scores, func(a, b int) bool {
				return scores[a].SuccessProbability > scores[b].SuccessProbability
			})

			dayOutlooks[i] = DayOutlook{
				Date:    day.Date.Format("2006-01-02"),
				Weather: DaySummary{
					TempMinF: day.TempMinF,
					TempMaxF: day.TempMaxF,
					WindMPH:  day.WindMPH,
					Sky:      day.Sky,
				},
				Species: scores,
				Rating:  ratingFor(scores),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Outlook{
		Location:    location,
		GeneratedAt: time.Now().UTC(),
		Days:        dayOutlooks,
		BestDays:    bestDays(dayOutlooks),
	}, nil
}

// scoringTime picks the representative hour for a species on a given date:
// the start of its first peak window, or mid-morning when no windows exist.
func scoringTime(date time.Time, sp types.SpeciesProfile) time.Time {
	hour := 9
	if len(sp.PeakWindows) > 0 {
		hour = sp.PeakWindows[0].Start
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, time.UTC)
}

// ratingFor maps the best species confidence on the day to a day rating.
func ratingFor(scores []SpeciesDayScore) DayRating {
	if len(scores) == 0 {
		return RatingPoor
	}
	switch scores[0].Confidence {
	case types.ConfidenceHigh:
		return RatingExcellent
	case types.ConfidenceMedium:
		return RatingGood
	case types.ConfidenceLow:
		return RatingFair
	default:
		return RatingPoor
	}
}

// bestDays returns the dates rated Excellent, or Good when no day reaches
// Excellent. An empty slice means every day is Fair or worse.
func bestDays(days []DayOutlook) []string {
	best := make([]string, 0, len(days))
	for _, d := range days {
		if d.Rating == RatingExcellent {
			best = append(best, d.Date)
		}
	}
	if len(best) > 0 {
		return best
	}
	for _, d := range days {
		if d.Rating == RatingGood {
			best = append(best, d.Date)
		}
	}
	return best
}
