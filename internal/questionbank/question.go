package questionbank

// Category is the subject area a question belongs to.
type Category string

const (
	CategoryStocks          Category = "stocks"
	CategoryEconomics       Category = "economics"
	CategoryCrypto          Category = "crypto"
	CategoryPersonalFinance Category = "personal-finance"
	CategoryMarketHistory   Category = "market-history"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryStocks,
		CategoryEconomics,
		CategoryCrypto,
		CategoryPersonalFinance,
		CategoryMarketHistory,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// DisplayName returns a human-readable name for a category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryStocks:
		return "Stocks"
	case CategoryEconomics:
		return "Economics"
	case CategoryCrypto:
		return "Crypto"
	case CategoryPersonalFinance:
		return "Personal Finance"
	case CategoryMarketHistory:
		return "Market History"
	default:
		return string(c)
	}
}

// Difficulty bounds for questions.
const (
	MinDifficulty = 1
	MaxDifficulty = 3
)

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// Question is an immutable multiple-choice quiz question.
type Question struct {
	ID            string              `json:"id"`
	Category      Category            `json:"category"`
	Text          string              `json:"text"`
	Options       [OptionCount]string `json:"options"`
	CorrectIndex  int                 `json:"correct_index"`
	Difficulty    int                 `json:"difficulty"`
	Explanation   string              `json:"explanation,omitempty"`
	CurrentEvents bool                `json:"current_events,omitempty"`
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= OptionCount {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// IsCorrect reports whether choice is the correct option index.
func (q Question) IsCorrect(choice int) bool {
	return choice == q.CorrectIndex
}
