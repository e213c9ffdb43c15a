package unlocks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tickerquiz/internal/achievements"
)

func TestCatalog_Valid(t *testing.T) {
	require.NoError(t, validateCatalog(features, secrets))
}

func TestValidateCatalog_ReportsProblems(t *testing.T) {
	fs := []Feature{
		{ID: "a", Category: CategoryData},
		{ID: "a", Category: CategoryData, LevelRequired: 2, SecretID: "matrix"},
		{ID: "b", Category: CategoryData, SecretID: "nope"},
		{ID: "c", Category: CategoryCustomization, LevelRequired: 3},
	}
	err := validateCatalog(fs, []Secret{{ID: "matrix"}})
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `duplicate feature ID: "a"`)
	assert.Contains(t, msg, `"a" must set exactly one`)
	assert.Contains(t, msg, `unknown secret "nope"`)
	assert.Contains(t, msg, `"c" has no slot`)
}

func TestSecretCountMatchesAchievements(t *testing.T) {
	assert.Len(t, Secrets(), achievements.SecretCount)
}

func TestEverySecretUnlocksAFeature(t *testing.T) {
	for _, s := range Secrets() {
		assert.NotEmpty(t, BySecret(s.ID), s.ID)
	}
	assert.Empty(t, BySecret("unknown"))
}

func TestGet(t *testing.T) {
	f, ok := Get("widget-sector-heatmap")
	require.True(t, ok)
	assert.Equal(t, 2, f.LevelRequired)

	_, ok = Get("missing")
	assert.False(t, ok)

	s, ok := GetSecret("konami")
	require.True(t, ok)
	assert.Equal(t, "konami", s.ID)
}

func TestLevelGatedUpTo(t *testing.T) {
	assert.Empty(t, LevelGatedUpTo(1))
	got := LevelGatedUpTo(3)
	require.Len(t, got, 2)
	assert.Equal(t, "widget-sector-heatmap", got[0].ID)
	assert.Equal(t, "theme-midnight", got[1].ID)
	for _, f := range LevelGatedUpTo(100) {
		assert.False(t, f.SecretGated())
	}
}

func TestDisplayName(t *testing.T) {
	hidden, _ := Get("theme-matrix")
	assert.Equal(t, HiddenName, DisplayName(hidden, false))
	assert.Equal(t, "Matrix Theme", DisplayName(hidden, true))
	assert.NotEqual(t, hidden.Description, DisplayDescription(hidden, false))

	visible, _ := Get("theme-midnight")
	assert.Equal(t, "Midnight Theme", DisplayName(visible, false))
}

func TestResolveCode(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"THEREISNOSPOON", "matrix", true},
		{"  thereisnospoon\n", "matrix", true},
		{"ToTheMoon", "bull", true},
		{"hodl", "diamond-hands", true},
		{"hold", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ResolveCode(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSequenceMatcher(t *testing.T) {
	var m SequenceMatcher
	keys := strings.Fields("up up down down left right left right b")
	for _, k := range keys {
		_, ok := m.Push(k)
		assert.False(t, ok)
	}
	id, ok := m.Push("A")
	require.True(t, ok)
	assert.Equal(t, "konami", id)

	// Buffer cleared after a match.
	_, ok = m.Push("a")
	assert.False(t, ok)
}

func TestSequenceMatcher_NoiseBeforeSequence(t *testing.T) {
	var m SequenceMatcher
	for _, k := range strings.Fields("x up q ArrowUp ArrowUp ArrowDown ArrowDown ArrowLeft ArrowRight ArrowLeft ArrowRight b") {
		_, ok := m.Push(k)
		assert.False(t, ok)
	}
	_, ok := m.Push("a")
	assert.True(t, ok)
}

func TestSequenceMatcher_WrongKeyBreaks(t *testing.T) {
	var m SequenceMatcher
	for _, k := range strings.Fields("up up down down left right left left b") {
		m.Push(k)
	}
	_, ok := m.Push("a")
	assert.False(t, ok)
}
