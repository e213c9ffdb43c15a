package unlocks

import (
	"fmt"
	"strings"
)

var secrets = []Secret{
	{ID: "matrix", Name: "Follow the White Rabbit", Hint: "There is something about spoons."},
	{ID: "bull", Name: "Raging Bull", Hint: "Where do the optimists say prices are going?"},
	{ID: "diamond-hands", Name: "Diamond Hands", Hint: "Never sell. Misspell it if you must."},
	{ID: "konami", Name: "Thirty Lives", Hint: "Old consoles remember a certain sequence."},
}

var features = []Feature{
	{ID: "widget-sector-heatmap", Name: "Sector Heatmap", Description: "Daily performance by sector",
		Category: CategoryData, LevelRequired: 2},
	{ID: "theme-midnight", Name: "Midnight Theme", Description: "A dark theme for late sessions",
		Category: CategoryCustomization, LevelRequired: 3, Slot: SlotTheme},
	{ID: "widget-volatility-gauge", Name: "Volatility Gauge", Description: "Implied volatility at a glance",
		Category: CategoryData, LevelRequired: 4},
	{ID: "accent-emerald", Name: "Emerald Accent", Description: "Green accent color",
		Category: CategoryCustomization, LevelRequired: 5, Slot: SlotAccent},
	{ID: "avatar-frame-gold", Name: "Gold Frame", Description: "A gold frame for your avatar",
		Category: CategoryCustomization, LevelRequired: 7, Slot: SlotAvatarFrame},
	{ID: "quiz-expert-mode", Name: "Expert Mode", Description: "Longer quiz sessions",
		Category: CategoryQuiz, LevelRequired: 8},
	{ID: "widget-yield-curve", Name: "Yield Curve", Description: "Treasury yields across maturities",
		Category: CategoryData, LevelRequired: 10},
	{ID: "theme-aurora", Name: "Aurora Theme", Description: "Shifting northern-lights palette",
		Category: CategoryCustomization, LevelRequired: 15, Slot: SlotTheme},
	{ID: "avatar-frame-veteran", Name: "Veteran Frame", Description: "For those who stayed the course",
		Category: CategoryCustomization, LevelRequired: 20, Slot: SlotAvatarFrame},

	{ID: "theme-matrix", Name: "Matrix Theme", Description: "Green rain on black",
		Category: CategoryCustomization, SecretID: "matrix", Hidden: true, Slot: SlotTheme},
	{ID: "widget-bull-run", Name: "Bull Run Tracker", Description: "Longest rallies in market history",
		Category: CategorySecret, SecretID: "bull", Hidden: true},
	{ID: "accent-diamond", Name: "Diamond Accent", Description: "An accent that never sells",
		Category: CategoryCustomization, SecretID: "diamond-hands", Hidden: true, Slot: SlotAccent},
	{ID: "avatar-frame-pixel", Name: "Pixel Frame", Description: "An eight-bit frame",
		Category: CategoryCustomization, SecretID: "konami", Hidden: true, Slot: SlotAvatarFrame},
}

var (
	featureByID map[string]int
	secretByID  map[string]int
	bySecret    map[string][]int
)

func init() {
	if err := validateCatalog(features, secrets); err != nil {
		panic(err)
	}
	featureByID = make(map[string]int, len(features))
	bySecret = make(map[string][]int)
	for i, f := range features {
		featureByID[f.ID] = i
		if f.SecretGated() {
			bySecret[f.SecretID] = append(bySecret[f.SecretID], i)
		}
	}
	secretByID = make(map[string]int, len(secrets))
	for i, s := range secrets {
		secretByID[s.ID] = i
	}
}

// validateCatalog performs all structural checks on the catalogs.
// Returns a combined error describing all problems found, or nil if valid.
func validateCatalog(fs []Feature, ss []Secret) error {
	var errs []string

	secretIDs := make(map[string]bool, len(ss))
	for _, s := range ss {
		if secretIDs[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate secret ID: %q", s.ID))
		}
		secretIDs[s.ID] = true
	}

	ids := make(map[string]bool, len(fs))
	for _, f := range fs {
		if f.ID == "" {
			errs = append(errs, "feature with empty ID")
		}
		if ids[f.ID] {
			errs = append(errs, fmt.Sprintf("duplicate feature ID: %q", f.ID))
		}
		ids[f.ID] = true

		if f.LevelGated() == f.SecretGated() {
			errs = append(errs, fmt.Sprintf("feature %q must set exactly one of LevelRequired and SecretID", f.ID))
		}
		if f.LevelRequired < 0 {
			errs = append(errs, fmt.Sprintf("feature %q: LevelRequired must be >= 0, got %d", f.ID, f.LevelRequired))
		}
		if f.SecretGated() && !secretIDs[f.SecretID] {
			errs = append(errs, fmt.Sprintf("feature %q references unknown secret %q", f.ID, f.SecretID))
		}
		if f.Category == CategoryCustomization && !f.Slot.Valid() {
			errs = append(errs, fmt.Sprintf("customization feature %q has no slot", f.ID))
		}
		if f.Category != CategoryCustomization && f.Slot != SlotNone {
			errs = append(errs, fmt.Sprintf("feature %q has slot %q but is not a customization", f.ID, f.Slot))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("unlock catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Catalog returns every feature in display order.
func Catalog() []Feature {
	out := make([]Feature, len(features))
	copy(out, features)
	return out
}

// Get returns the feature with the given ID.
func Get(id string) (Feature, bool) {
	i, ok := featureByID[id]
	if !ok {
		return Feature{}, false
	}
	return features[i], true
}

// BySecret returns the features unlocked by the given secret.
func BySecret(secretID string) []Feature {
	idx := bySecret[secretID]
	out := make([]Feature, len(idx))
	for i, j := range idx {
		out[i] = features[j]
	}
	return out
}

// LevelGatedUpTo returns the level-gated features whose requirement is at
// most level.
func LevelGatedUpTo(level int) []Feature {
	var out []Feature
	for _, f := range features {
		if f.LevelGated() && f.LevelRequired <= level {
			out = append(out, f)
		}
	}
	return out
}

// Secrets returns every discoverable secret.
func Secrets() []Secret {
	out := make([]Secret, len(secrets))
	copy(out, secrets)
	return out
}

// GetSecret returns the secret with the given ID.
func GetSecret(id string) (Secret, bool) {
	i, ok := secretByID[id]
	if !ok {
		return Secret{}, false
	}
	return secrets[i], true
}
