package content

import "strings"

// IdiomEntry is one hand-authored library idiom.
type IdiomEntry struct {
	Idiom      string `json:"idiom"`
	Meaning    string `json:"meaning"`
	Example    string `json:"example"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Origin     string `json:"origin"`
}

var idiomLibrary = []IdiomEntry{
	{
		Idiom:      "Break the ice",
		Meaning:    "To start a conversation or make people feel more comfortable",
		Example:    "She told a joke to break the ice at the meeting.",
		Category:   "social",
		Difficulty: "beginner",
		Origin:     "Dating back to the 16th century, referring to breaking through frozen waterways",
	},
	{
		Idiom:      "Spill the beans",
		Meaning:    "To reveal a secret or tell something you weren't supposed to",
		Example:    "Don't spill the beans about the surprise party!",
		Category:   "communication",
		Difficulty: "beginner",
		Origin:     "From ancient Greece where people voted by placing beans in jars",
	},
	{
		Idiom:      "Bite the bullet",
		Meaning:    "To face a difficult situation with courage",
		Example:    "I need to bite the bullet and tell my boss about the mistake.",
		Category:   "courage",
		Difficulty: "intermediate",
		Origin:     "From battlefield medicine when patients bit bullets during surgery",
	},
	{
		Idiom:      "Burn the midnight oil",
		Meaning:    "To work or study late into the night",
		Example:    "I've been burning the midnight oil to finish this project.",
		Category:   "work",
		Difficulty: "intermediate",
		Origin:     "Before electric lighting, people used oil lamps to work at night",
	},
	{
		Idiom:      "Hit the nail on the head",
		Meaning:    "To be exactly right about something",
		Example:    "You hit the nail on the head with that analysis.",
		Category:   "accuracy",
		Difficulty: "advanced",
		Origin:     "From carpentry - hitting a nail precisely on its head",
	},
}

// Idioms returns the full library.
func Idioms() []IdiomEntry {
	out := make([]IdiomEntry, len(idiomLibrary))
	copy(out, idiomLibrary)
	return out
}

// FilterIdioms applies the library's search semantics: a case-insensitive
// substring match against idiom text or meaning, and an exact category match.
// Empty query and "all" (or empty) category match everything.
func FilterIdioms(query, category string) []IdiomEntry {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []IdiomEntry
	for _, entry := range idiomLibrary {
		if query != "" &&
			!strings.Contains(strings.ToLower(entry.Idiom), query) &&
			!strings.Contains(strings.ToLower(entry.Meaning), query) {
			continue
		}
		if category != "" && category != "all" && entry.Category != category {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// IdiomCategories returns the distinct category tags in library order.
func IdiomCategories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, entry := range idiomLibrary {
		if _, ok := seen[entry.Category]; ok {
			continue
		}
		seen[entry.Category] = struct{}{}
		out = append(out, entry.Category)
	}
	return out
}

// IdiomByText looks up a library entry by its idiom text.
func IdiomByText(text string) (IdiomEntry, bool) {
	for _, entry := range idiomLibrary {
		if strings.EqualFold(entry.Idiom, strings.TrimSpace(text)) {
			return entry, true
		}
	}
	return IdiomEntry{}, false
}
