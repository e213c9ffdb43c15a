package unlocks

// Category groups features by what they unlock.
type Category string

const (
	CategoryData          Category = "data"
	CategoryCustomization Category = "customization"
	CategorySecret        Category = "secret"
	CategoryQuiz          Category = "quiz"
)

// Slot is the customization slot a feature can fill.
type Slot string

const (
	SlotNone        Slot = ""
	SlotTheme       Slot = "theme"
	SlotAccent      Slot = "accent"
	SlotAvatarFrame Slot = "avatar_frame"
)

// AllSlots returns the customization slots in display order.
func AllSlots() []Slot {
	return []Slot{SlotTheme, SlotAccent, SlotAvatarFrame}
}

// Valid reports whether s names a known customization slot.
func (s Slot) Valid() bool {
	switch s {
	case SlotTheme, SlotAccent, SlotAvatarFrame:
		return true
	}
	return false
}

// HiddenName is shown in place of a hidden feature's name until it unlocks.
const HiddenName = "???"

// Feature is one unlockable capability. Exactly one of LevelRequired and
// SecretID is set.
type Feature struct {
	ID            string
	Name          string
	Description   string
	Category      Category
	LevelRequired int
	SecretID      string
	Hidden        bool
	Slot          Slot
}

// LevelGated reports whether the feature unlocks by reaching a level.
func (f Feature) LevelGated() bool { return f.LevelRequired > 0 }

// SecretGated reports whether the feature unlocks by discovering a secret.
func (f Feature) SecretGated() bool { return f.SecretID != "" }

// DisplayName returns the name to show for f given its lock state.
func DisplayName(f Feature, unlocked bool) string {
	if f.Hidden && !unlocked {
		return HiddenName
	}
	return f.Name
}

// DisplayDescription is DisplayName for the description.
func DisplayDescription(f Feature, unlocked bool) string {
	if f.Hidden && !unlocked {
		return "A secret waits to be found."
	}
	return f.Description
}

// Secret is a discoverable easter egg.
type Secret struct {
	ID   string
	Name string
	Hint string
}
