package content

// Question is one multiple-choice quiz item. CorrectAnswer indexes Options.
type Question struct {
	ID            int      `json:"id"`
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

var questionSets = map[string][]Question{
	CategoryGrammar: {
		{
			ID:     1,
			Prompt: "Which sentence is grammatically correct?",
			Options: []string{
				"She don't like coffee",
				"She doesn't like coffee",
				"She not like coffee",
				"She no like coffee",
			},
			CorrectAnswer: 1,
			Explanation:   "Use 'doesn't' (does not) with third person singular subjects like 'she'.",
		},
		{
			ID:     2,
			Prompt: "Choose the correct past tense form:",
			Options: []string{
				"I goed to the store",
				"I went to the store",
				"I go to the store",
				"I going to the store",
			},
			CorrectAnswer: 1,
			Explanation:   "'Went' is the irregular past tense form of 'go'.",
		},
		{
			ID:     3,
			Prompt: "Which is the correct use of articles?",
			Options: []string{
				"I saw a elephant",
				"I saw an elephant",
				"I saw the elephant",
				"I saw elephant",
			},
			CorrectAnswer: 1,
			Explanation:   "Use 'an' before words that start with a vowel sound.",
		},
	},
	CategoryVocabulary: {
		{
			ID:     1,
			Prompt: "What does 'abundant' mean?",
			Options: []string{
				"Scarce",
				"Plentiful",
				"Expensive",
				"Difficult",
			},
			CorrectAnswer: 1,
			Explanation:   "'Abundant' means existing in large quantities; plentiful.",
		},
		{
			ID:     2,
			Prompt: "Choose the synonym for 'enormous':",
			Options: []string{
				"Tiny",
				"Average",
				"Huge",
				"Narrow",
			},
			CorrectAnswer: 2,
			Explanation:   "'Enormous' and 'huge' both mean extremely large.",
		},
	},
	CategoryWriting: {
		{
			ID:     1,
			Prompt: "Which sentence has better flow?",
			Options: []string{
				"The cat sat. The cat was on the mat. The cat was sleeping.",
				"The cat sat on the mat, sleeping peacefully.",
				"Cat on mat sleeping was.",
				"On the mat, cat sleeping, sat.",
			},
			CorrectAnswer: 1,
			Explanation:   "Combining related ideas into one sentence creates better flow and reduces repetition.",
		},
	},
	CategoryIdioms: {
		{
			ID:     1,
			Prompt: "What does 'break the ice' mean?",
			Options: []string{
				"To destroy something frozen",
				"To start a conversation",
				"To be very cold",
				"To make someone angry",
			},
			CorrectAnswer: 1,
			Explanation:   "'Break the ice' means to initiate conversation or reduce tension in a social situation.",
		},
	},
}

// QuestionsForCategory returns the ordered question set for a category,
// falling back to the default set when the category is unknown.
func QuestionsForCategory(category string) []Question {
	questions, ok := questionSets[category]
	if !ok {
		questions = questionSets[DefaultCategory]
	}
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

// QuestionByID finds a question within a category's set.
func QuestionByID(category string, id int) (Question, bool) {
	for _, q := range QuestionsForCategory(category) {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
