package bulkimport

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
)

type OptionDTO struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type CategoryPreview struct {
	SourceRow   *int     `json:"source_row"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Icon        *string  `json:"icon,omitempty"`
	Slug        string   `json:"slug"`
	Action      Action   `json:"action"`
	Errors      []string `json:"errors"`
}

type QuizPreview struct {
	SourceRow       *int     `json:"source_row"`
	Title           string   `json:"title"`
	Description     *string  `json:"description,omitempty"`
	IsActive        bool     `json:"is_active"`
	QuestionPrompts []string `json:"question_prompts"`
	Action          Action   `json:"action"`
	Errors          []string `json:"errors"`
}

type QuestionPreview struct {
	SourceRow    *int        `json:"source_row"`
	Prompt       string      `json:"prompt"`
	Explanation  *string     `json:"explanation,omitempty"`
	Subject      *string     `json:"subject,omitempty"`
	Difficulty   *string     `json:"difficulty,omitempty"`
	IsActive     bool        `json:"is_active"`
	CategoryName string      `json:"category_name"`
	QuizTitles   []string    `json:"quiz_titles"`
	Options      []OptionDTO `json:"options"`
	Action       Action      `json:"action"`
	Errors       []string    `json:"errors"`
}

type PreviewResponse struct {
	Categories []CategoryPreview `json:"categories"`
	Quizzes    []QuizPreview     `json:"quizzes"`
	Questions  []QuestionPreview `json:"questions"`
	Warnings   []string          `json:"warnings"`
}

// Commit payload rows carry only editable entity fields; row metadata and
// error lists from the preview are UI-only and never trusted here.

type CategoryPayload struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}

type QuizPayload struct {
	Title           string   `json:"title"`
	Description     *string  `json:"description,omitempty"`
	IsActive        bool     `json:"is_active"`
	QuestionPrompts []string `json:"question_prompts"`
}

type QuestionPayload struct {
	Prompt       string      `json:"prompt"`
	Explanation  *string     `json:"explanation,omitempty"`
	Subject      *string     `json:"subject,omitempty"`
	Difficulty   *string     `json:"difficulty,omitempty"`
	IsActive     bool        `json:"is_active"`
	CategoryName string      `json:"category_name"`
	QuizTitles   []string    `json:"quiz_titles"`
	Options      []OptionDTO `json:"options"`
}

type CommitPayload struct {
	Categories []CategoryPayload `json:"categories"`
	Quizzes    []QuizPayload     `json:"quizzes"`
	Questions  []QuestionPayload `json:"questions"`
}

type Result struct {
	CategoriesCreated int `json:"categories_created"`
	CategoriesUpdated int `json:"categories_updated"`
	QuizzesCreated    int `json:"quizzes_created"`
	QuizzesUpdated    int `json:"quizzes_updated"`
	QuestionsCreated  int `json:"questions_created"`
	QuestionsUpdated  int `json:"questions_updated"`
}
