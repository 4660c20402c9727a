package bulkimport

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shekhar1luitel/quizHub-sub001/internal/category"
	"github.com/shekhar1luitel/quizHub-sub001/internal/question"
	"github.com/shekhar1luitel/quizHub-sub001/internal/quiz"
)

// validatePayload re-checks the hard invariants on an edited commit payload.
// The preview's row errors are UI-only; nothing from the upload is trusted
// once the user has had a chance to edit it.
func validatePayload(payload *CommitPayload) error {
	seenSlugs := make(map[string]bool)
	for _, c := range payload.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return badRequest("Category name cannot be empty.")
		}
		slug := Slugify(name)
		if seenSlugs[slug] {
			return badRequest(fmt.Sprintf("Duplicate category name %q in payload.", c.Name))
		}
		seenSlugs[slug] = true
	}

	seenPrompts := make(map[string]bool)
	for _, q := range payload.Questions {
		prompt := strings.TrimSpace(q.Prompt)
		if prompt == "" {
			return badRequest("Question prompt cannot be empty.")
		}
		key := question.PromptKey(prompt)
		if seenPrompts[key] {
			return badRequest(fmt.Sprintf("Duplicate question prompt %q in payload.", q.Prompt))
		}
		seenPrompts[key] = true

		options := nonEmptyOptions(q.Options)
		if len(options) < 2 {
			return badRequest(fmt.Sprintf("Question %q requires at least two options.", q.Prompt))
		}
		correct := 0
		for _, option := range options {
			if option.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return badRequest(fmt.Sprintf("Question %q requires exactly one correct option.", q.Prompt))
		}
	}

	seenTitles := make(map[string]bool)
	for _, q := range payload.Quizzes {
		title := strings.TrimSpace(q.Title)
		if title == "" {
			return badRequest("Quiz title cannot be empty.")
		}
		key := quiz.TitleKey(title)
		if seenTitles[key] {
			return badRequest(fmt.Sprintf("Duplicate quiz title %q in payload.", q.Title))
		}
		seenTitles[key] = true
	}

	return nil
}

// collectQuizPrompts gathers the question-declared side of the quiz↔question
// association: prompts grouped by the quiz title key each question claims.
func collectQuizPrompts(payload *CommitPayload) map[string][]string {
	mapping := make(map[string][]string)
	for _, q := range payload.Questions {
		for _, title := range q.QuizTitles {
			key := quiz.TitleKey(title)
			if key == "" {
				continue
			}
			mapping[key] = append(mapping[key], q.Prompt)
		}
	}
	return mapping
}

func dedupePreserveOrder(items []string) []string {
	seen := make(map[string]bool, len(items))
	var result []string
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		key := strings.ToLower(trimmed)
		if trimmed == "" || seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, trimmed)
	}
	return result
}

func nonEmptyOptions(options []OptionDTO) []OptionDTO {
	result := make([]OptionDTO, 0, len(options))
	for _, option := range options {
		if strings.TrimSpace(option.Text) != "" {
			result = append(result, option)
		}
	}
	return result
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// apply writes the whole payload inside the supplied transaction: categories
// by slug, then questions by prompt, then quizzes by title, then the
// association table reconciled to the resolved edge set. Any returned error
// rolls the transaction back.
func apply(tx *gorm.DB, payload *CommitPayload, result *Result) error {
	catLookup, err := category.NewRepository(tx).MapBySlug()
	if err != nil {
		return err
	}
	questionLookup, err := question.NewRepository(tx).MapByPrompt()
	if err != nil {
		return err
	}
	quizLookup, err := quiz.NewRepository(tx).MapByTitle()
	if err != nil {
		return err
	}

	payloadTitles := make(map[string]bool, len(payload.Quizzes))
	for _, q := range payload.Quizzes {
		payloadTitles[quiz.TitleKey(q.Title)] = true
	}
	for _, q := range payload.Questions {
		for _, title := range q.QuizTitles {
			key := quiz.TitleKey(title)
			if key != "" && !payloadTitles[key] && quizLookup[key] == nil {
				return badRequest(fmt.Sprintf("Question %q references quiz %q that is not defined.", q.Prompt, title))
			}
		}
	}

	for _, c := range payload.Categories {
		name := strings.TrimSpace(c.Name)
		slug := Slugify(name)
		if existing := catLookup[slug]; existing != nil {
			existing.Name = name
			existing.Description = normalizeOptional(c.Description)
			existing.Icon = normalizeOptional(c.Icon)
			if err := tx.Save(existing).Error; err != nil {
				return err
			}
			result.CategoriesUpdated++
		} else {
			created := &category.Category{
				ID:          uuid.New(),
				Name:        name,
				Slug:        slug,
				Description: normalizeOptional(c.Description),
				Icon:        normalizeOptional(c.Icon),
			}
			if err := tx.Create(created).Error; err != nil {
				return err
			}
			catLookup[slug] = created
			result.CategoriesCreated++
		}
	}

	for _, q := range payload.Questions {
		prompt := strings.TrimSpace(q.Prompt)
		key := question.PromptKey(prompt)

		cat := catLookup[Slugify(q.CategoryName)]
		if cat == nil {
			return badRequest(fmt.Sprintf("Category %q is not available.", q.CategoryName))
		}

		target := questionLookup[key]
		if target != nil {
			target.Prompt = prompt
			target.Explanation = normalizeOptional(q.Explanation)
			target.Subject = normalizeOptional(q.Subject)
			target.Difficulty = normalizeOptional(q.Difficulty)
			target.IsActive = q.IsActive
			target.CategoryID = cat.ID
			if err := tx.Save(target).Error; err != nil {
				return err
			}
			if err := tx.Where("question_id = ?", target.ID).Delete(&question.Option{}).Error; err != nil {
				return err
			}
			result.QuestionsUpdated++
		} else {
			target = &question.Question{
				ID:          uuid.New(),
				Prompt:      prompt,
				Explanation: normalizeOptional(q.Explanation),
				Subject:     normalizeOptional(q.Subject),
				Difficulty:  normalizeOptional(q.Difficulty),
				IsActive:    q.IsActive,
				CategoryID:  cat.ID,
			}
			if err := tx.Create(target).Error; err != nil {
				return err
			}
			questionLookup[key] = target
			result.QuestionsCreated++
		}

		options := nonEmptyOptions(q.Options)
		rows := make([]question.Option, 0, len(options))
		for idx, option := range options {
			rows = append(rows, question.Option{
				ID:         uuid.New(),
				QuestionID: target.ID,
				Text:       strings.TrimSpace(option.Text),
				IsCorrect:  option.IsCorrect,
				Position:   idx + 1,
			})
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
	}

	questionSidePrompts := collectQuizPrompts(payload)

	for _, q := range payload.Quizzes {
		title := strings.TrimSpace(q.Title)
		key := quiz.TitleKey(title)

		target := quizLookup[key]
		if target != nil {
			target.Title = title
			target.Description = normalizeOptional(q.Description)
			target.IsActive = q.IsActive
			if err := tx.Save(target).Error; err != nil {
				return err
			}
			result.QuizzesUpdated++
		} else {
			target = &quiz.Quiz{
				ID:          uuid.New(),
				Title:       title,
				Description: normalizeOptional(q.Description),
				IsActive:    q.IsActive,
			}
			if err := tx.Create(target).Error; err != nil {
				return err
			}
			quizLookup[key] = target
			result.QuizzesCreated++
		}

		// Quiz-declared order wins; question-declared memberships follow.
		prompts := dedupePreserveOrder(append(append([]string{}, q.QuestionPrompts...), questionSidePrompts[key]...))
		if err := tx.Where("quiz_id = ?", target.ID).Delete(&quiz.QuizQuestion{}).Error; err != nil {
			return err
		}
		links := make([]quiz.QuizQuestion, 0, len(prompts))
		for idx, prompt := range prompts {
			resolved := questionLookup[question.PromptKey(prompt)]
			if resolved == nil {
				return badRequest(fmt.Sprintf("Quiz %q references question %q that was not found.", q.Title, prompt))
			}
			links = append(links, quiz.QuizQuestion{
				QuizID:     target.ID,
				QuestionID: resolved.ID,
				Position:   idx + 1,
			})
		}
		if len(links) > 0 {
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}
	}

	// Questions may claim membership in a stored quiz that is absent from the
	// payload; those edges are appended after the quiz's existing links.
	for key, prompts := range questionSidePrompts {
		if payloadTitles[key] {
			continue
		}
		target := quizLookup[key]
		if target == nil {
			continue // already rejected above
		}

		var existing []quiz.QuizQuestion
		if err := tx.Where("quiz_id = ?", target.ID).Order("position ASC").Find(&existing).Error; err != nil {
			return err
		}
		linked := make(map[uuid.UUID]bool, len(existing))
		position := 0
		for _, link := range existing {
			linked[link.QuestionID] = true
			if link.Position > position {
				position = link.Position
			}
		}

		for _, prompt := range dedupePreserveOrder(prompts) {
			resolved := questionLookup[question.PromptKey(prompt)]
			if resolved == nil || linked[resolved.ID] {
				continue
			}
			position++
			if err := tx.Create(&quiz.QuizQuestion{
				QuizID:     target.ID,
				QuestionID: resolved.ID,
				Position:   position,
			}).Error; err != nil {
				return err
			}
			linked[resolved.ID] = true
		}
	}

	return nil
}
