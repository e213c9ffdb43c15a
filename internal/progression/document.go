package progression

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/tickerquiz/internal/achievements"
	"github.com/abhisek/tickerquiz/internal/adaptive"
	"github.com/abhisek/tickerquiz/internal/questionbank"
	"github.com/abhisek/tickerquiz/internal/unlocks"
)

// Marshal encodes the ledger as indented JSON. The same document is used
// for storage and export.
func Marshal(l Ledger) ([]byte, error) {
	l.Version = CurrentVersion
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode ledger: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a ledger document. Missing fields take their initial
// values, catalog entries missing from the document appear locked, and
// entries no longer in the catalog are dropped. Only malformed JSON is an
// error.
func Unmarshal(data []byte) (Ledger, error) {
	l := NewLedger()
	// Slices are replaced wholesale by the decoder; nil them so a document
	// without the key leaves them empty for normalize to rebuild.
	l.Achievements = nil
	l.UnlockedFeatures = nil
	l.Version = 0
	if err := json.Unmarshal(data, &l); err != nil {
		return Ledger{}, fmt.Errorf("decode ledger: %w", err)
	}
	return normalize(l, time.Now().UTC()), nil
}

// normalize repairs a decoded or hand-built ledger so that every invariant
// holds. Features and achievements the ledger already qualifies for are
// unlocked at now. It never emits events.
func normalize(l Ledger, now time.Time) Ledger {
	if l.Version <= 0 {
		l.Version = CurrentVersion
	}
	l.Level = max(l.Level, 1)
	l.XP = max(l.XP, 0)
	l.TotalXP = max(l.TotalXP, l.XP)
	l.AdaptiveLevel = adaptive.Clamp(l.AdaptiveLevel)

	l.XPToNextLevel = XPToNextLevel(l.Level)
	for l.XP >= l.XPToNextLevel {
		l.XP -= l.XPToNextLevel
		l.Level++
		l.XPToNextLevel = XPToNextLevel(l.Level)
	}

	l.Achievements = achievements.MergeRecords(l.Achievements)
	l.DiscoveredSecrets = knownSecrets(l.DiscoveredSecrets)
	l.UnlockedFeatures = mergeFeatures(l.UnlockedFeatures)

	for i := range l.UnlockedFeatures {
		r := &l.UnlockedFeatures[i]
		if r.Unlocked() {
			continue
		}
		f, _ := unlocks.Get(r.ID)
		if (f.LevelGated() && f.LevelRequired <= l.Level) || (f.SecretGated() && l.SecretDiscovered(f.SecretID)) {
			t := now
			r.UnlockedAt = &t
		}
	}

	l.Stats = normalizeStats(l.Stats)
	l.stampAchievements(now)
	l.Customizations = normalizeCustomizations(l.Customizations)
	return l
}

func knownSecrets(ids []string) []string {
	out := []string{}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		if _, ok := unlocks.GetSecret(id); !ok {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func mergeFeatures(records []FeatureRecord) []FeatureRecord {
	unlockedAt := make(map[string]time.Time, len(records))
	for _, r := range records {
		if r.Unlocked() {
			if _, dup := unlockedAt[r.ID]; !dup {
				unlockedAt[r.ID] = *r.UnlockedAt
			}
		}
	}
	catalog := unlocks.Catalog()
	out := make([]FeatureRecord, len(catalog))
	for i, f := range catalog {
		out[i] = FeatureRecord{ID: f.ID}
		if t, ok := unlockedAt[f.ID]; ok {
			out[i].UnlockedAt = &t
		}
	}
	return out
}

func normalizeStats(s Stats) Stats {
	for _, v := range []*int{
		&s.DataPointsViewed, &s.QuizAnswered, &s.QuizCorrect, &s.CurrentStreak,
		&s.BestStreak, &s.QuizSessions, &s.PerfectSessions, &s.TimeSpentMinutes,
	} {
		*v = max(*v, 0)
	}
	s.BestStreak = max(s.BestStreak, s.CurrentStreak)

	cc := make(map[questionbank.Category]int, len(s.CategoryCorrect))
	for c, n := range s.CategoryCorrect {
		if c.Valid() && n > 0 {
			cc[c] = n
		}
	}
	s.CategoryCorrect = cc
	return s
}

// normalizeCustomizations clears selections that do not name a
// customization feature for their slot.
func normalizeCustomizations(c Customizations) Customizations {
	for _, slot := range unlocks.AllSlots() {
		id := c.Get(slot)
		if id == "" {
			continue
		}
		f, ok := unlocks.Get(id)
		if !ok || f.Slot != slot {
			c.set(slot, "")
		}
	}
	return c
}

const ledgerSchemaURL = "schema://progression-ledger.json"

var (
	intType    = map[string]any{"type": "integer"}
	numberType = map[string]any{"type": "number"}
	stringType = map[string]any{"type": "string"}
	recordList = map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":     "object",
			"required": []any{"id"},
			"properties": map[string]any{
				"id":          stringType,
				"unlocked_at": map[string]any{"type": []any{"string", "null"}},
			},
		},
	}
)

// ledgerSchema only checks types; missing and unknown keys are accepted so
// older exports still import.
var ledgerSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version":           intType,
		"level":             intType,
		"xp":                intType,
		"totalXp":           intType,
		"xpToNextLevel":     intType,
		"adaptiveLevel":     numberType,
		"achievements":      recordList,
		"unlockedFeatures":  recordList,
		"discoveredSecrets": map[string]any{"type": "array", "items": stringType},
		"stats": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"dataPointsViewed": intType,
				"quizAnswered":     intType,
				"quizCorrect":      intType,
				"currentStreak":    intType,
				"bestStreak":       intType,
				"quizSessions":     intType,
				"perfectSessions":  intType,
				"timeSpentMinutes": intType,
				"categoryCorrect": map[string]any{
					"type":                 "object",
					"additionalProperties": intType,
				},
				"lastActivity": stringType,
				"lastQuizAt":   stringType,
			},
		},
		"customizations": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"theme":       stringType,
				"accent":      stringType,
				"avatarFrame": stringType,
			},
		},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		raw, err := json.Marshal(ledgerSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(ledgerSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(ledgerSchemaURL)
	})
	return compiledSchema, compileErr
}

// ValidateDocument checks that data is a JSON object whose known fields have
// the expected types. It is stricter than Unmarshal and is used before
// importing a document from outside the store.
func ValidateDocument(data []byte) error {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	sch, err := schema()
	if err != nil {
		return fmt.Errorf("compile ledger schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
