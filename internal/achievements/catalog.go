package achievements

import (
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/tickerquiz/internal/questionbank"
)

// Definition is one entry of the static achievement catalog.
type Definition struct {
	ID          string
	Name        string
	Description string
	Rarity      Rarity
	Condition   Condition
}

// Record is the persisted lock state of one achievement. UnlockedAt is nil
// while the achievement is locked.
type Record struct {
	ID         string     `json:"id"`
	UnlockedAt *time.Time `json:"unlocked_at"`
}

// Unlocked reports whether the record has been unlocked.
func (r Record) Unlocked() bool { return r.UnlockedAt != nil }

var catalog = []Definition{
	{ID: "first-steps", Name: "First Steps", Description: "Answer your first quiz question",
		Rarity: RarityCommon, Condition: ByStat{StatQuizAnswered, 1}},
	{ID: "hot-hand", Name: "Hot Hand", Description: "Five correct answers in a row",
		Rarity: RarityCommon, Condition: ByStat{StatQuizStreak, 5}},
	{ID: "on-a-tear", Name: "On a Tear", Description: "Fifteen correct answers in a row",
		Rarity: RarityEpic, Condition: ByStat{StatQuizStreak, 15}},
	{ID: "regular", Name: "Regular", Description: "Finish ten quiz sessions",
		Rarity: RarityRare, Condition: ByStat{StatQuizSeries, 10}},
	{ID: "sharp-mind", Name: "Sharp Mind", Description: "Answer 100 questions correctly",
		Rarity: RarityEpic, Condition: ByStat{StatQuizCorrect, 100}},
	{ID: "chart-watcher", Name: "Chart Watcher", Description: "View 10 market data points",
		Rarity: RarityCommon, Condition: ByStat{StatDataViewed, 10}},
	{ID: "data-hound", Name: "Data Hound", Description: "View 100 market data points",
		Rarity: RarityRare, Condition: ByStat{StatDataViewed, 100}},
	{ID: "hour-of-power", Name: "Hour of Power", Description: "Spend an hour with the markets",
		Rarity: RarityCommon, Condition: ByStat{StatTime, 60}},
	{ID: "market-hours", Name: "Market Hours", Description: "Spend ten hours with the markets",
		Rarity: RarityRare, Condition: ByStat{StatTime, 600}},
	{ID: "rising-analyst", Name: "Rising Analyst", Description: "Reach level 5",
		Rarity: RarityRare, Condition: ByLevel{5}},
	{ID: "market-veteran", Name: "Market Veteran", Description: "Reach level 10",
		Rarity: RarityEpic, Condition: ByLevel{10}},
	{ID: "wall-street-legend", Name: "Wall Street Legend", Description: "Reach level 20",
		Rarity: RarityLegendary, Condition: ByLevel{20}},
	{ID: "thousand-club", Name: "Thousand Club", Description: "Earn 1,000 total XP",
		Rarity: RarityCommon, Condition: ByTotalXP{1000}},
	{ID: "ten-bagger", Name: "Ten-Bagger", Description: "Earn 10,000 total XP",
		Rarity: RarityEpic, Condition: ByTotalXP{10000}},
	{ID: "curious", Name: "Curious", Description: "Find your first secret",
		Rarity: RarityRare, Condition: BySecretsFound{1}},
	{ID: "keeper-of-secrets", Name: "Keeper of Secrets", Description: "Find every secret",
		Rarity: RarityLegendary, Condition: BySecretsFound{SecretCount}},
	{ID: "crypto-curious", Name: "Crypto Curious", Description: "Ten correct crypto answers",
		Rarity: RarityRare, Condition: ByCategoryCorrect{questionbank.CategoryCrypto, 10}},
	{ID: "economist", Name: "Economist", Description: "Ten correct economics answers",
		Rarity: RarityRare, Condition: ByCategoryCorrect{questionbank.CategoryEconomics, 10}},
	{ID: "historian", Name: "Historian", Description: "Ten correct market history answers",
		Rarity: RarityRare, Condition: ByCategoryCorrect{questionbank.CategoryMarketHistory, 10}},
}

// SecretCount is the number of discoverable secrets the catalog expects.
const SecretCount = 4

var (
	byID     map[string]int
	initOnce sync.Once
)

func index() {
	initOnce.Do(func() {
		byID = make(map[string]int, len(catalog))
		for i, d := range catalog {
			if _, dup := byID[d.ID]; dup {
				panic(fmt.Sprintf("achievements: duplicate id %q", d.ID))
			}
			byID[d.ID] = i
		}
	})
}

// Catalog returns all achievement definitions in display order.
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Get returns the definition with the given ID.
func Get(id string) (Definition, bool) {
	index()
	i, ok := byID[id]
	if !ok {
		return Definition{}, false
	}
	return catalog[i], true
}

// InitialRecords returns one locked record per catalog entry.
func InitialRecords() []Record {
	out := make([]Record, len(catalog))
	for i, d := range catalog {
		out[i] = Record{ID: d.ID}
	}
	return out
}
