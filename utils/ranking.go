package utils

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DishScore is the per-dish vote aggregate: mean score and number of voters
type DishScore struct {
	Avg   float64 `json:"avg"`
	Count int     `json:"count"`
}

// RankedDish is one row of a computed ranking
type RankedDish struct {
	DishID string  `json:"dish_id"`
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Avg    float64 `json:"avg"`
	Count  int     `json:"count"`
}

// fallbackGlobalMean is the midpoint of the 1-10 scale, used when no votes
// exist anywhere
const fallbackGlobalMean = 5.0

// minConfidence is the floor for the bayesian confidence threshold
const minConfidence = 2

// bayesianScore pulls a dish toward the global mean in proportion to how few
// raters it has: (C*m + n*avg) / (C + n)
func bayesianScore(avg float64, count int, globalMean float64, threshold int) float64 {
	n := float64(count)
	c := float64(threshold)
	return (c*globalMean + n*avg) / (c + n)
}

// ComputeRankingScores maps each dish to its score under the given mode.
// Simple mode is the raw average; bayesian mode shrinks low-sample dishes
// toward the competition-wide mean.
func ComputeRankingScores(dishScores map[string]DishScore, mode string) map[string]float64 {
	result := make(map[string]float64, len(dishScores))

	if mode != "bayesian" {
		for dishID, score := range dishScores {
			result[dishID] = score.Avg
		}
		return result
	}

	if len(dishScores) == 0 {
		return result
	}

	// Global mean: vote-weighted average over all dishes
	var totalScore float64
	var totalCount int
	counts := make([]int, 0, len(dishScores))
	for _, score := range dishScores {
		totalScore += score.Avg * float64(score.Count)
		totalCount += score.Count
		counts = append(counts, score.Count)
	}
	globalMean := fallbackGlobalMean
	if totalCount > 0 {
		globalMean = totalScore / float64(totalCount)
	}

	// Confidence threshold C: median vote count, never below 2
	sort.Ints(counts)
	threshold := counts[len(counts)/2]
	if threshold < minConfidence {
		threshold = minConfidence
	}

	for dishID, score := range dishScores {
		result[dishID] = bayesianScore(score.Avg, score.Count, globalMean, threshold)
	}
	return result
}

// SortRanking orders ranked dishes by score descending, breaking ties by dish
// name ascending under an Italian collator
func SortRanking(ranking []RankedDish) {
	collator := collate.New(language.Italian)
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Score != ranking[j].Score {
			return ranking[i].Score > ranking[j].Score
		}
		return collator.CompareString(ranking[i].Name, ranking[j].Name) < 0
	})
}
