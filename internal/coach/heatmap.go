package coach

import (
	"fmt"
	"math/rand"

	"ea-coach-service/internal/domain"
)

// HeatmapSize is the number of tax sub-topics on the heatmap.
const HeatmapSize = 100

// DefaultHeatmapSeed keeps the demo heatmap stable between requests.
const DefaultHeatmapSeed = 2024

// masteryWeights are cumulative: 25% high, 35% medium, 25% low, 15% none.
var masteryWeights = []struct {
	upTo    float64
	mastery domain.Mastery
}{
	{0.25, domain.MasteryHigh},
	{0.60, domain.MasteryMedium},
	{0.85, domain.MasteryLow},
	{1.00, domain.MasteryNone},
}

// Heatmap is the sub-topic grid and the count per band.
type Heatmap struct {
	Tiles  []domain.HeatmapTile   `json:"tiles"`
	Counts map[domain.Mastery]int `json:"counts"`
}

// BuildHeatmap draws a mastery band for every sub-topic. The same seed
// always yields the same grid.
func BuildHeatmap(seed int64) Heatmap {
	rnd := rand.New(rand.NewSource(seed))
	h := Heatmap{
		Tiles: make([]domain.HeatmapTile, HeatmapSize),
		Counts: map[domain.Mastery]int{
			domain.MasteryHigh:   0,
			domain.MasteryMedium: 0,
			domain.MasteryLow:    0,
			domain.MasteryNone:   0,
		},
	}
	for i := range h.Tiles {
		m := masteryFor(rnd.Float64())
		h.Tiles[i] = domain.HeatmapTile{ID: i, Topic: fmt.Sprintf("Topic %d", i+1), Mastery: m}
		h.Counts[m]++
	}
	return h
}

func masteryFor(x float64) domain.Mastery {
	for _, w := range masteryWeights {
		if x < w.upTo {
			return w.mastery
		}
	}
	return domain.MasteryNone
}
