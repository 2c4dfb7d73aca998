package content

import "time"

// WritingPrompt is one daily writing challenge.
type WritingPrompt struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Type       string   `json:"type"`
	Difficulty string   `json:"difficulty"`
	Text       string   `json:"prompt"`
	WordTarget int      `json:"wordTarget"`
	Tips       []string `json:"tips"`
}

var writingPrompts = []WritingPrompt{
	{
		ID:         1,
		Title:      "Creative Writing",
		Type:       "creative",
		Difficulty: "beginner",
		Text:       "Describe your perfect day from morning to night. What would you do, where would you go, and who would you spend it with?",
		WordTarget: 150,
		Tips:       []string{"Use descriptive adjectives", "Include your emotions", "Think about the five senses"},
	},
	{
		ID:         2,
		Title:      "Storytelling",
		Type:       "storytelling",
		Difficulty: "intermediate",
		Text:       "Write a story that begins with: 'The old bookstore had been closed for years, but today the door was wide open...'",
		WordTarget: 300,
		Tips:       []string{"Create suspense", "Develop interesting characters", "Use dialogue effectively"},
	},
	{
		ID:         3,
		Title:      "Opinion",
		Type:       "opinion",
		Difficulty: "advanced",
		Text:       "Technology has changed how we communicate. Is this change positive or negative? Support your opinion with specific examples.",
		WordTarget: 400,
		Tips:       []string{"Present clear arguments", "Use specific examples", "Consider counterarguments"},
	},
	{
		ID:         4,
		Title:      "Metaphor Practice",
		Type:       "metaphor",
		Difficulty: "intermediate",
		Text:       "Life is like a journey. Write about a time when you felt like you were 'at a crossroads' or 'climbing a mountain.'",
		WordTarget: 250,
		Tips:       []string{"Extend the metaphor throughout", "Make connections between literal and figurative", "Use vivid imagery"},
	},
}

// Prompts returns every authored prompt.
func Prompts() []WritingPrompt {
	out := make([]WritingPrompt, len(writingPrompts))
	copy(out, writingPrompts)
	return out
}

// PromptForDate rotates through the prompt catalog one per day.
func PromptForDate(date time.Time) WritingPrompt {
	index := date.YearDay() % len(writingPrompts)
	return writingPrompts[index]
}

// PromptByID looks up a prompt, reporting whether it exists.
func PromptByID(id int) (WritingPrompt, bool) {
	for _, p := range writingPrompts {
		if p.ID == id {
			return p, true
		}
	}
	return WritingPrompt{}, false
}
