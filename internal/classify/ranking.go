package classify

import (
	"fmt"
	"sort"
)

// Entry is one labelled probability, expressed as a percentage.
type Entry struct {
	Label   string
	Percent float64
}

// Ranking is the per-category result table, sorted descending by Percent.
// Entries with equal percentages keep their vector-index order.
type Ranking []Entry

// Rank pairs each probability with its label and sorts descending.
// The input must be exactly NumLabels long; anything else is rejected as a
// service-contract violation, never padded or truncated.
func Rank(predictions []float64) (Ranking, error) {
	if len(predictions) != NumLabels {
		return nil, fmt.Errorf("invalid service response: expected %d predictions, got %d", NumLabels, len(predictions))
	}
	r := make(Ranking, NumLabels)
	for i, p := range predictions {
		r[i] = Entry{Label: LabelFor(i), Percent: p * 100}
	}
	sort.SliceStable(r, func(i, j int) bool { return r[i].Percent > r[j].Percent })
	return r, nil
}

// Top returns the highest-ranked entry.
func (r Ranking) Top() Entry {
	return r[0]
}

// Tier is the alert level derived from the top prediction.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Thresholds are the two static percentage cut-offs for alert tiers.
type Thresholds struct {
	High   float64 // above this: TierHigh
	Medium float64 // above this: TierMedium
}

// DefaultThresholds matches the service deployment defaults.
var DefaultThresholds = Thresholds{High: 70, Medium: 40}

// TierFor classifies a top percentage into an alert tier.
// Comparisons are strict: exactly High is medium, exactly Medium is low.
func TierFor(topPercent float64, t Thresholds) Tier {
	switch {
	case topPercent > t.High:
		return TierHigh
	case topPercent > t.Medium:
		return TierMedium
	default:
		return TierLow
	}
}

// Stats summarizes a ranking for the report's summary section.
type Stats struct {
	Highest  float64
	Lowest   float64
	Mean     float64
	AboveTen int // entries above 10%
}

// Summary computes summary statistics over a ranking.
func Summary(r Ranking) Stats {
	if len(r) == 0 {
		return Stats{}
	}
	var s Stats
	s.Highest = r[0].Percent
	s.Lowest = r[len(r)-1].Percent
	var sum float64
	for _, e := range r {
		sum += e.Percent
		if e.Percent > 10 {
			s.AboveTen++
		}
	}
	s.Mean = sum / float64(len(r))
	return s
}
