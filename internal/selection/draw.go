package selection

import (
	"math/rand/v2"
	"sort"

	"github.com/abhisek/tickerquiz/internal/questionbank"
)

// Draw picks questions from pool to match targets. Each difficulty bucket is
// shuffled and taken up to its target; shortfalls are backfilled from the
// shuffled remainder of any difficulty. If the pool is smaller than the total
// target, every question is returned. The result is sorted by difficulty.
func Draw(pool []questionbank.Question, targets Targets, rng *rand.Rand) []questionbank.Question {
	want := targets.Total()
	if want <= 0 || len(pool) == 0 {
		return nil
	}

	buckets := make(map[int][]questionbank.Question)
	for _, q := range pool {
		buckets[q.Difficulty] = append(buckets[q.Difficulty], q)
	}

	selected := make([]questionbank.Question, 0, want)
	var remainder []questionbank.Question

	// Iterate difficulties in a fixed order so seeded draws are reproducible.
	for _, d := range sortedKeys(buckets) {
		bucket := buckets[d]
		shuffle(bucket, rng)

		n := min(targets.For(d), len(bucket))
		selected = append(selected, bucket[:n]...)
		remainder = append(remainder, bucket[n:]...)
	}

	if short := want - len(selected); short > 0 && len(remainder) > 0 {
		shuffle(remainder, rng)
		selected = append(selected, remainder[:min(short, len(remainder))]...)
	}

	SortByDifficulty(selected)
	return selected
}

// SortByDifficulty stably orders questions from easiest to hardest.
func SortByDifficulty(qs []questionbank.Question) {
	sort.SliceStable(qs, func(i, j int) bool {
		return qs[i].Difficulty < qs[j].Difficulty
	})
}

func shuffle(qs []questionbank.Question, rng *rand.Rand) {
	rng.Shuffle(len(qs), func(i, j int) {
		qs[i], qs[j] = qs[j], qs[i]
	})
}

func sortedKeys(m map[int][]questionbank.Question) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
