package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command against a throwaway database in dir.
func execute(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TICKERQUIZ_BACKEND", "")
	t.Setenv("TICKERQUIZ_DB", "")

	full := append([]string{
		"--db", filepath.Join(dir, "tickerquiz.db"),
		"--config", filepath.Join(dir, "config.yaml"),
	}, args...)

	var out bytes.Buffer
	rootCmd.SetArgs(full)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSecretThenFeatures(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "", "secret", "hodl")
	require.NoError(t, err)
	assert.Contains(t, out, "Secret found: Diamond Hands")
	assert.Contains(t, out, "+100 XP")
	assert.Contains(t, out, "Diamond Accent")

	out, err = execute(t, dir, "", "secret", "HODL")
	require.NoError(t, err)
	assert.Contains(t, out, "already found")

	out, err = execute(t, dir, "", "features")
	require.NoError(t, err)
	assert.Contains(t, out, "accent-diamond")
	assert.Contains(t, out, "???")

	_, err = execute(t, dir, "", "secret", "nope")
	assert.Error(t, err)
}

func TestQuizCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "x\na\n2\nq\n", "quiz")
	require.NoError(t, err)
	assert.Contains(t, out, "Question 1/5")
	assert.Contains(t, out, "Pick a-d or 1-4.")
	assert.Contains(t, out, "(stopped)")
	assert.Contains(t, out, "Summary:")

	out, err = execute(t, dir, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "2 answered")
	assert.Contains(t, out, "Sessions:        1")
}

func TestTickViewHistory(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "", "tick", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "+100 XP")
	assert.Contains(t, out, "Level up! You are now level 2.")
	assert.Contains(t, out, "Sector Heatmap")

	_, err = execute(t, dir, "", "view", "widget-sector-heatmap")
	require.NoError(t, err)

	_, err = execute(t, dir, "", "view", "widget-yield-curve")
	assert.Error(t, err)

	_, err = execute(t, dir, "", "tick", "soon")
	assert.Error(t, err)

	out, err = execute(t, dir, "", "history", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "data_view")
	assert.Contains(t, out, "time")

	out, err = execute(t, dir, "", "stats", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "Total XP:        105")
	assert.Contains(t, out, "tickerquiz_adaptive_level")
}

func TestAwardCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "", "award", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "+1000 XP")
	assert.Contains(t, out, "Level up! You are now level 5.")
	assert.Contains(t, out, "Thousand Club")

	_, err = execute(t, dir, "", "award", "0")
	assert.Error(t, err)
	_, err = execute(t, dir, "", "award", "lots")
	assert.Error(t, err)

	out, err = execute(t, dir, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "manual")
}

func TestCustomizeCommand(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, dir, "", "customize", "theme", "theme-matrix")
	assert.Error(t, err)

	_, err = execute(t, dir, "", "keys", "up", "up", "down", "down", "left", "right", "left", "right", "b", "a")
	require.NoError(t, err)

	out, err := execute(t, dir, "", "customize", "avatar_frame", "avatar-frame-pixel")
	require.NoError(t, err)
	assert.Contains(t, out, "Pixel Frame")
}

func TestExportImportReset(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "export.json")

	_, err := execute(t, dir, "", "tick", "5")
	require.NoError(t, err)
	_, err = execute(t, dir, "", "export", file)
	require.NoError(t, err)

	_, err = execute(t, dir, "", "reset")
	assert.Error(t, err)
	out, err := execute(t, dir, "", "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Progress reset.")

	out, err = execute(t, dir, "", "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "level 1, 10 total XP")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"xp": "lots"}`), 0o644))
	_, err = execute(t, dir, "", "import", bad)
	assert.Error(t, err)
}

func TestBankCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "", "bank", "list", "--category", "crypto")
	require.NoError(t, err)
	assert.Contains(t, out, "Crypto")

	_, err = execute(t, dir, "", "bank", "list", "--category", "nft")
	assert.Error(t, err)

	file := filepath.Join(dir, "bank.json")
	out, err = execute(t, dir, "", "bank", "dump")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, []byte(out), 0o644))

	out, err = execute(t, dir, "", "bank", "check", file)
	require.NoError(t, err)
	assert.Contains(t, out, "questions OK")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, t.TempDir(), "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tickerquiz ")
}
