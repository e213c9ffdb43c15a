package questionbank

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTripsSeed(t *testing.T) {
	data, err := Encode(Default().All())
	require.NoError(t, err)

	b, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), b.Len())

	q, err := b.Get("ce-303")
	require.NoError(t, err)
	assert.True(t, q.CurrentEvents)
	assert.Equal(t, "MiCA", q.CorrectOption())
}

func TestParse_SchemaRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"missing questions", `{"version": 1}`},
		{"three options", `{"questions":[{"id":"a","category":"stocks","text":"?","options":["1","2","3"],"correct_index":0,"difficulty":1}]}`},
		{"five options", `{"questions":[{"id":"a","category":"stocks","text":"?","options":["1","2","3","4","5"],"correct_index":0,"difficulty":1}]}`},
		{"difficulty out of range", `{"questions":[{"id":"a","category":"stocks","text":"?","options":["1","2","3","4"],"correct_index":0,"difficulty":5}]}`},
		{"unknown category", `{"questions":[{"id":"a","category":"sports","text":"?","options":["1","2","3","4"],"correct_index":0,"difficulty":1}]}`},
		{"unknown field", `{"questions":[{"id":"a","category":"stocks","text":"?","options":["1","2","3","4"],"correct_index":0,"difficulty":1,"bonus":true}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParse_DuplicateIDs(t *testing.T) {
	doc := `{"questions":[
		{"id":"a","category":"stocks","text":"?","options":["1","2","3","4"],"correct_index":0,"difficulty":1},
		{"id":"a","category":"crypto","text":"?","options":["1","2","3","4"],"correct_index":1,"difficulty":2}
	]}`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate question ID")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	doc := `{"version":1,"questions":[
		{"id":"a","category":"stocks","text":"?","options":["1","2","3","4"],"correct_index":3,"difficulty":1,"current_events":true}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	b, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())
	assert.Len(t, b.CurrentEvents(), 1)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
