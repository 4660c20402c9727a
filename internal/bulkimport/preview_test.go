package bulkimport

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shekhar1luitel/quizHub-sub001/internal/category"
	"github.com/shekhar1luitel/quizHub-sub001/internal/question"
	"github.com/shekhar1luitel/quizHub-sub001/internal/quiz"
)

func emptyStore() storeState {
	return storeState{
		categories: map[string]*category.Category{},
		quizzes:    map[string]*quiz.Quiz{},
		questions:  map[string]*question.Question{},
	}
}

func twoOptions() []ParsedOption {
	return []ParsedOption{
		{Text: "Yes", IsCorrect: true},
		{Text: "No"},
	}
}

func TestBuildPreviewNewBatch(t *testing.T) {
	parsed := &ParsedWorkbook{
		Categories: []ParsedCategory{
			{SourceRow: 2, Name: "Science"},
		},
		Questions: []ParsedQuestion{
			{SourceRow: 2, Prompt: "Is water wet?", CategoryName: "Science", IsActive: true, Options: twoOptions()},
			{SourceRow: 3, Prompt: "Is fire hot?", CategoryName: "Science", IsActive: true, Options: twoOptions()},
		},
	}

	preview := buildPreview(parsed, emptyStore())

	require.Len(t, preview.Categories, 1)
	assert.Equal(t, "Science", preview.Categories[0].Name)
	assert.Equal(t, "science", preview.Categories[0].Slug)
	assert.Equal(t, ActionCreate, preview.Categories[0].Action)
	assert.Empty(t, preview.Categories[0].Errors)

	require.Len(t, preview.Questions, 2)
	for _, q := range preview.Questions {
		assert.Equal(t, ActionCreate, q.Action)
		assert.Empty(t, q.Errors)
	}
	assert.Empty(t, preview.Warnings)
}

func TestBuildPreviewMatchesStore(t *testing.T) {
	catID := uuid.New()
	store := storeState{
		categories: map[string]*category.Category{
			"science": {ID: catID, Name: "Science", Slug: "science"},
		},
		quizzes: map[string]*quiz.Quiz{
			"weekly round": {ID: uuid.New(), Title: "Weekly Round"},
		},
		questions: map[string]*question.Question{
			"is water wet?": {ID: uuid.New(), Prompt: "Is water wet?", CategoryID: catID},
		},
	}

	parsed := &ParsedWorkbook{
		Categories: []ParsedCategory{
			{SourceRow: 2, Name: "Science"},
		},
		Quizzes: []ParsedQuiz{
			// Title matching is case-insensitive.
			{SourceRow: 2, Title: "weekly ROUND", IsActive: true, QuestionPrompts: []string{"Is water wet?"}},
		},
		Questions: []ParsedQuestion{
			{SourceRow: 2, Prompt: "Is water wet?", CategoryName: "Science", IsActive: true, Options: twoOptions()},
		},
	}

	preview := buildPreview(parsed, store)

	assert.Equal(t, ActionUpdate, preview.Categories[0].Action)
	assert.Equal(t, ActionUpdate, preview.Quizzes[0].Action)
	assert.Equal(t, ActionUpdate, preview.Questions[0].Action)
	assert.Empty(t, preview.Quizzes[0].Errors)
	assert.Empty(t, preview.Questions[0].Errors)
}

func TestBuildPreviewDuplicateKeys(t *testing.T) {
	parsed := &ParsedWorkbook{
		Categories: []ParsedCategory{
			{SourceRow: 2, Name: "Science"},
			// Different display text, same slug.
			{SourceRow: 3, Name: "  Science!  "},
		},
	}

	preview := buildPreview(parsed, emptyStore())

	require.Len(t, preview.Categories, 2)
	assert.Empty(t, preview.Categories[0].Errors)
	assert.Contains(t, preview.Categories[1].Errors, "Duplicate category name in the workbook.")
	require.Len(t, preview.Warnings, 1)
	assert.Contains(t, preview.Warnings[0], "Duplicate category name")
}

func TestBuildPreviewUnresolvedReferences(t *testing.T) {
	parsed := &ParsedWorkbook{
		Quizzes: []ParsedQuiz{
			{SourceRow: 2, Title: "Ghost Hunt", IsActive: true, QuestionPrompts: []string{"Who goes there?"}},
		},
		Questions: []ParsedQuestion{
			{
				SourceRow:    2,
				Prompt:       "Is water wet?",
				CategoryName: "Missing Category",
				IsActive:     true,
				QuizTitles:   []string{"No Such Quiz"},
				Options:      twoOptions(),
			},
		},
	}

	preview := buildPreview(parsed, emptyStore())

	require.Len(t, preview.Quizzes, 1)
	require.Len(t, preview.Quizzes[0].Errors, 1)
	assert.Contains(t, preview.Quizzes[0].Errors[0], `Question "Who goes there?" is not defined`)
	// The quiz row itself survives as a create.
	assert.Equal(t, ActionCreate, preview.Quizzes[0].Action)

	q := preview.Questions[0]
	assert.Contains(t, q.Errors[0], `Category "Missing Category" is not defined`)
	assert.Contains(t, q.Errors[1], `Quiz "No Such Quiz" is not defined`)
}

func TestBuildPreviewBatchResolvesOwnReferences(t *testing.T) {
	parsed := &ParsedWorkbook{
		Categories: []ParsedCategory{
			{SourceRow: 2, Name: "Science"},
		},
		Quizzes: []ParsedQuiz{
			{SourceRow: 2, Title: "Starter", IsActive: true, QuestionPrompts: []string{"Is water wet?"}},
		},
		Questions: []ParsedQuestion{
			{
				SourceRow:    2,
				Prompt:       "Is water wet?",
				CategoryName: "Science",
				IsActive:     true,
				QuizTitles:   []string{"Starter"},
				Options:      twoOptions(),
			},
		},
	}

	preview := buildPreview(parsed, emptyStore())

	assert.Empty(t, preview.Quizzes[0].Errors)
	assert.Empty(t, preview.Questions[0].Errors)
	assert.Empty(t, preview.Warnings)
}

func TestBuildPreviewKeepsRowErrorsFromParse(t *testing.T) {
	parsed := &ParsedWorkbook{
		Questions: []ParsedQuestion{
			{
				SourceRow:    2,
				Prompt:       "Half done?",
				CategoryName: "Science",
				IsActive:     true,
				Options:      []ParsedOption{{Text: "Only one", IsCorrect: true}},
				Errors:       []string{"Provide at least two options."},
			},
		},
	}

	store := emptyStore()
	store.categories["science"] = &category.Category{ID: uuid.New(), Name: "Science", Slug: "science"}

	preview := buildPreview(parsed, store)

	require.Len(t, preview.Questions, 1)
	assert.Equal(t, []string{"Provide at least two options."}, preview.Questions[0].Errors)
}

func TestBuildPreviewEmptyWorkbookShape(t *testing.T) {
	preview := buildPreview(&ParsedWorkbook{}, emptyStore())

	// JSON shape stability: empty lists, never null.
	assert.NotNil(t, preview.Categories)
	assert.NotNil(t, preview.Quizzes)
	assert.NotNil(t, preview.Questions)
	assert.NotNil(t, preview.Warnings)
}
