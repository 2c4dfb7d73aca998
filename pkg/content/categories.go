package content

// Lesson categories. Every quiz session and LessonProgress row is scoped by
// one of these.
const (
	CategoryGrammar    = "grammar"
	CategoryVocabulary = "vocabulary"
	CategoryWriting    = "writing"
	CategoryIdioms     = "idioms"
)

// DefaultCategory is used when a requested category is unrecognized.
const DefaultCategory = CategoryGrammar

type LessonCategory struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Lessons     int    `json:"lessons"`
}

var lessonCategories = []LessonCategory{
	{
		ID:          CategoryGrammar,
		Title:       "Grammar Fundamentals",
		Description: "Master English grammar from basics to advanced",
		Lessons:     24,
	},
	{
		ID:          CategoryVocabulary,
		Title:       "Vocabulary Builder",
		Description: "Expand your word power with interactive exercises",
		Lessons:     18,
	},
	{
		ID:          CategoryWriting,
		Title:       "Writing Skills",
		Description: "Improve sentence structure and style",
		Lessons:     15,
	},
	{
		ID:          CategoryIdioms,
		Title:       "Idioms & Expressions",
		Description: "Learn common phrases and their meanings",
		Lessons:     12,
	},
}

// Categories returns the full lesson catalog in display order.
func Categories() []LessonCategory {
	out := make([]LessonCategory, len(lessonCategories))
	copy(out, lessonCategories)
	return out
}

// CategoryByID looks up a catalog entry, reporting whether it exists.
func CategoryByID(id string) (LessonCategory, bool) {
	for _, c := range lessonCategories {
		if c.ID == id {
			return c, true
		}
	}
	return LessonCategory{}, false
}

// NormalizeCategory maps unknown category IDs to the default.
func NormalizeCategory(id string) string {
	if _, ok := CategoryByID(id); ok {
		return id
	}
	return DefaultCategory
}
