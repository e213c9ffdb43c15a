package achievements

// Evaluate returns the catalog entries that are still locked in records and
// whose condition now holds for s, in catalog order. Records that are already
// unlocked are never reported again; entries missing from records count as
// locked.
func Evaluate(s State, records []Record) []Definition {
	unlocked := make(map[string]bool, len(records))
	for _, r := range records {
		if r.Unlocked() {
			unlocked[r.ID] = true
		}
	}

	var earned []Definition
	for _, d := range catalog {
		if unlocked[d.ID] {
			continue
		}
		if d.Condition.Met(s) {
			earned = append(earned, d)
		}
	}
	return earned
}

// MergeRecords aligns records with the catalog: every catalog entry appears
// once in catalog order, unlock timestamps are carried over, and records for
// IDs no longer in the catalog are dropped.
func MergeRecords(records []Record) []Record {
	known := make(map[string]Record, len(records))
	for _, r := range records {
		if prev, ok := known[r.ID]; ok && prev.Unlocked() {
			continue
		}
		known[r.ID] = r
	}

	out := InitialRecords()
	for i := range out {
		if r, ok := known[out[i].ID]; ok && r.Unlocked() {
			t := *r.UnlockedAt
			out[i].UnlockedAt = &t
		}
	}
	return out
}
