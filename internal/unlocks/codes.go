package unlocks

import "strings"

var codes = map[string]string{
	"THEREISNOSPOON": "matrix",
	"TOTHEMOON":      "bull",
	"HODL":           "diamond-hands",
}

// ResolveCode maps a typed secret code to its secret ID. Matching ignores
// case and surrounding whitespace.
func ResolveCode(text string) (string, bool) {
	id, ok := codes[strings.ToUpper(strings.TrimSpace(text))]
	return id, ok
}

var konami = []string{"up", "up", "down", "down", "left", "right", "left", "right", "b", "a"}

var keyAliases = map[string]string{
	"arrowup":    "up",
	"arrowdown":  "down",
	"arrowleft":  "left",
	"arrowright": "right",
}

// SequenceMatcher watches a stream of key presses for the Konami sequence.
// The zero value is ready to use.
type SequenceMatcher struct {
	buf []string
}

// Push records key and reports the secret ID when the most recent keys
// complete the sequence. The buffer is cleared after a match.
func (m *SequenceMatcher) Push(key string) (string, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	if alias, ok := keyAliases[k]; ok {
		k = alias
	}

	m.buf = append(m.buf, k)
	if len(m.buf) > len(konami) {
		m.buf = m.buf[len(m.buf)-len(konami):]
	}
	if len(m.buf) < len(konami) {
		return "", false
	}
	for i, want := range konami {
		if m.buf[i] != want {
			return "", false
		}
	}
	m.buf = m.buf[:0]
	return "konami", true
}

// Reset clears the buffered keys.
func (m *SequenceMatcher) Reset() { m.buf = m.buf[:0] }
