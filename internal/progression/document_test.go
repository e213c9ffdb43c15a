package progression

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tickerquiz/internal/achievements"
	"github.com/abhisek/tickerquiz/internal/adaptive"
	"github.com/abhisek/tickerquiz/internal/questionbank"
	"github.com/abhisek/tickerquiz/internal/unlocks"
)

func TestMarshal_RoundTripsProgress(t *testing.T) {
	e, _ := newTestEngine(t)
	e.AddXP(700, SourceManual)
	e.DiscoverSecret("konami")
	e.RecordAnswer(question(3, questionbank.CategoryMarketHistory), true)
	e.ApplyCustomization(unlocks.SlotAvatarFrame, "avatar-frame-pixel", Entitlements{})

	want := e.Snapshot()
	data, err := Marshal(want)
	require.NoError(t, err)
	require.NoError(t, ValidateDocument(data))

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMarshal_UsesDocumentKeys(t *testing.T) {
	data, err := Marshal(NewLedger())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{
		"version", "level", "xp", "totalXp", "xpToNextLevel", "adaptiveLevel",
		"achievements", "unlockedFeatures", "discoveredSecrets", "stats", "customizations",
	} {
		assert.Contains(t, raw, key)
	}
	assert.EqualValues(t, CurrentVersion, raw["version"])
}

func TestUnmarshal_EmptyDocument(t *testing.T) {
	l, err := Unmarshal([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, NewLedger(), l)
}

func TestUnmarshal_Malformed(t *testing.T) {
	_, err := Unmarshal([]byte(`{"level":`))
	assert.Error(t, err)
}

func TestUnmarshal_ResolvesOverflow(t *testing.T) {
	l, err := Unmarshal([]byte(`{"level": 1, "xp": 250, "xpToNextLevel": 9999}`))
	require.NoError(t, err)
	assert.Equal(t, 3, l.Level)
	assert.Equal(t, 0, l.XP)
	assert.Equal(t, 225, l.XPToNextLevel)
	assert.Equal(t, 250, l.TotalXP)
	assert.True(t, l.FeatureUnlocked("widget-sector-heatmap"))
	assert.True(t, l.FeatureUnlocked("theme-midnight"))
}

func TestUnmarshal_MergesCatalogs(t *testing.T) {
	doc := `{
		"level": 2,
		"adaptiveLevel": 7.5,
		"achievements": [
			{"id": "curious", "unlocked_at": "2025-01-02T03:04:05Z"},
			{"id": "retired", "unlocked_at": "2025-01-02T03:04:05Z"}
		],
		"unlockedFeatures": [
			{"id": "widget-sector-heatmap", "unlocked_at": "2025-01-02T03:04:05Z"},
			{"id": "widget-removed", "unlocked_at": "2025-01-02T03:04:05Z"}
		],
		"discoveredSecrets": ["bull", "bull", "ghost"],
		"stats": {"quizAnswered": 4, "currentStreak": 3, "bestStreak": 1, "categoryCorrect": {"crypto": 2, "astrology": 5}},
		"customizations": {"theme": "accent-emerald", "accent": "accent-emerald"}
	}`
	l, err := Unmarshal([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, adaptive.Max, l.AdaptiveLevel)
	assert.Len(t, l.Achievements, len(achievements.Catalog()))
	assert.True(t, l.AchievementUnlocked("curious"))
	assert.False(t, l.AchievementUnlocked("retired"))

	assert.Len(t, l.UnlockedFeatures, len(unlocks.Catalog()))
	assert.Equal(t, 2025, l.UnlockedFeatures[0].UnlockedAt.Year())
	assert.True(t, l.FeatureUnlocked("widget-bull-run"), "secret feature follows discovered secret")
	assert.False(t, l.FeatureUnlocked("widget-removed"))

	assert.Equal(t, []string{"bull"}, l.DiscoveredSecrets)
	assert.Equal(t, 3, l.Stats.BestStreak)
	assert.Equal(t, map[questionbank.Category]int{questionbank.CategoryCrypto: 2}, l.Stats.CategoryCorrect)

	assert.Empty(t, l.Customizations.Theme)
	assert.Equal(t, "accent-emerald", l.Customizations.Accent)
}

func TestUnmarshal_UnlocksEarnedAchievements(t *testing.T) {
	l, err := Unmarshal([]byte(`{"level": 10, "totalXp": 9000, "stats": {"dataPointsViewed": 12}}`))
	require.NoError(t, err)

	for _, id := range []string{"rising-analyst", "market-veteran", "thousand-club", "chart-watcher"} {
		require.True(t, l.AchievementUnlocked(id), id)
	}
	assert.False(t, l.AchievementUnlocked("wall-street-legend"))
	assert.False(t, l.AchievementUnlocked("first-steps"))
}

func TestUnmarshal_NegativeValuesRepaired(t *testing.T) {
	l, err := Unmarshal([]byte(`{"level": -3, "xp": -10, "stats": {"quizAnswered": -1}}`))
	require.NoError(t, err)
	assert.Equal(t, 1, l.Level)
	assert.Equal(t, 0, l.XP)
	assert.Equal(t, 0, l.Stats.QuizAnswered)
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"empty object", `{}`, false},
		{"unknown keys", `{"level": 2, "legacy": true}`, false},
		{"null unlock", `{"achievements": [{"id": "curious", "unlocked_at": null}]}`, false},
		{"string level", `{"level": "five"}`, true},
		{"array root", `[]`, true},
		{"record without id", `{"unlockedFeatures": [{"unlocked_at": null}]}`, true},
		{"malformed", `{`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
