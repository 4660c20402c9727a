package bulkimport

import (
	"fmt"

	"github.com/shekhar1luitel/quizHub-sub001/internal/category"
	"github.com/shekhar1luitel/quizHub-sub001/internal/question"
	"github.com/shekhar1luitel/quizHub-sub001/internal/quiz"
)

// storeState is the read-only snapshot of the persisted store the batch is
// reconciled against, keyed by natural key.
type storeState struct {
	categories map[string]*category.Category
	quizzes    map[string]*quiz.Quiz
	questions  map[string]*question.Question
}

// buildPreview classifies every raw row as create or update, resolves
// cross-sheet references against the batch and the store, and accumulates
// row errors and batch warnings. It is a pure projection: no writes, and
// rows are never dropped no matter how broken they are.
func buildPreview(parsed *ParsedWorkbook, store storeState) *PreviewResponse {
	response := &PreviewResponse{
		Categories: []CategoryPreview{},
		Quizzes:    []QuizPreview{},
		Questions:  []QuestionPreview{},
		Warnings:   []string{},
	}

	// Pass 1: categories, which reference nothing else.
	slugCounts := make(map[string]int)
	for _, row := range parsed.Categories {
		slug := Slugify(row.Name)
		errs := append([]string{}, row.Errors...)

		if slug != "" {
			slugCounts[slug]++
			if slugCounts[slug] > 1 {
				errs = append(errs, "Duplicate category name in the workbook.")
				response.Warnings = append(response.Warnings,
					fmt.Sprintf("Duplicate category name %q in the workbook.", row.Name))
			}
		} else if len(errs) == 0 {
			errs = append(errs, "Category name is required.")
		}

		action := ActionCreate
		if slug != "" && store.categories[slug] != nil {
			action = ActionUpdate
		}

		sourceRow := row.SourceRow
		response.Categories = append(response.Categories, CategoryPreview{
			SourceRow:   &sourceRow,
			Name:        row.Name,
			Description: row.Description,
			Icon:        row.Icon,
			Slug:        slug,
			Action:      action,
			Errors:      errs,
		})
	}

	resolvedSlugs := make(map[string]bool, len(store.categories))
	for slug := range store.categories {
		resolvedSlugs[slug] = true
	}
	for _, item := range response.Categories {
		if item.Slug != "" && len(item.Errors) == 0 {
			resolvedSlugs[item.Slug] = true
		}
	}

	// Prompts resolvable by a quiz row: defined in this batch or persisted.
	availablePrompts := make(map[string]bool, len(store.questions))
	for key := range store.questions {
		availablePrompts[key] = true
	}
	for _, row := range parsed.Questions {
		if key := question.PromptKey(row.Prompt); key != "" {
			availablePrompts[key] = true
		}
	}

	// Pass 2: quizzes, whose question references must land in the batch or
	// the store. Unresolvable references flag the row; the quiz survives.
	titleCounts := make(map[string]int)
	for _, row := range parsed.Quizzes {
		key := quiz.TitleKey(row.Title)
		errs := append([]string{}, row.Errors...)

		if key != "" {
			titleCounts[key]++
			if titleCounts[key] > 1 {
				errs = append(errs, "Duplicate quiz title in the workbook.")
				response.Warnings = append(response.Warnings,
					fmt.Sprintf("Duplicate quiz title %q in the workbook.", row.Title))
			}
		} else if len(errs) == 0 {
			errs = append(errs, "Quiz title is required.")
		}

		for _, prompt := range row.QuestionPrompts {
			if promptKey := question.PromptKey(prompt); promptKey != "" && !availablePrompts[promptKey] {
				errs = append(errs, fmt.Sprintf("Question %q is not defined in this import or library.", prompt))
			}
		}

		action := ActionCreate
		if key != "" && store.quizzes[key] != nil {
			action = ActionUpdate
		}

		sourceRow := row.SourceRow
		response.Quizzes = append(response.Quizzes, QuizPreview{
			SourceRow:       &sourceRow,
			Title:           row.Title,
			Description:     row.Description,
			IsActive:        row.IsActive,
			QuestionPrompts: nonNilStrings(row.QuestionPrompts),
			Action:          action,
			Errors:          errs,
		})
	}

	availableTitles := make(map[string]bool, len(store.quizzes))
	for key := range store.quizzes {
		availableTitles[key] = true
	}
	for _, row := range parsed.Quizzes {
		if key := quiz.TitleKey(row.Title); key != "" {
			availableTitles[key] = true
		}
	}

	// Pass 3: questions, referencing resolved categories and quizzes.
	promptCounts := make(map[string]int)
	for _, row := range parsed.Questions {
		key := question.PromptKey(row.Prompt)
		errs := append([]string{}, row.Errors...)

		if key != "" {
			promptCounts[key]++
			if promptCounts[key] > 1 {
				errs = append(errs, "Duplicate question prompt in the workbook.")
				response.Warnings = append(response.Warnings,
					fmt.Sprintf("Duplicate question prompt %q in the workbook.", row.Prompt))
			}
		}

		if row.CategoryName != "" && !resolvedSlugs[Slugify(row.CategoryName)] {
			errs = append(errs, fmt.Sprintf(
				"Category %q is not defined in the Categories sheet or existing library.", row.CategoryName))
		}

		for _, title := range row.QuizTitles {
			if titleKey := quiz.TitleKey(title); titleKey != "" && !availableTitles[titleKey] {
				errs = append(errs, fmt.Sprintf("Quiz %q is not defined in the Quizzes sheet or existing library.", title))
			}
		}

		action := ActionCreate
		if key != "" && store.questions[key] != nil {
			action = ActionUpdate
		}

		options := make([]OptionDTO, 0, len(row.Options))
		for _, option := range row.Options {
			options = append(options, OptionDTO{Text: option.Text, IsCorrect: option.IsCorrect})
		}

		sourceRow := row.SourceRow
		response.Questions = append(response.Questions, QuestionPreview{
			SourceRow:    &sourceRow,
			Prompt:       row.Prompt,
			Explanation:  row.Explanation,
			Subject:      row.Subject,
			Difficulty:   row.Difficulty,
			IsActive:     row.IsActive,
			CategoryName: row.CategoryName,
			QuizTitles:   nonNilStrings(row.QuizTitles),
			Options:      options,
			Action:       action,
			Errors:       errs,
		})
	}

	return response
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
