package bulkimport

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shekhar1luitel/quizHub-sub001/internal/category"
	"github.com/shekhar1luitel/quizHub-sub001/internal/config"
	"github.com/shekhar1luitel/quizHub-sub001/internal/question"
	"github.com/shekhar1luitel/quizHub-sub001/internal/quiz"
)

type Service interface {
	Preview(ctx context.Context, fileBytes []byte) (*PreviewResponse, error)
	Commit(ctx context.Context, payload *CommitPayload) (*Result, error)
	Template(ctx context.Context) ([]byte, error)
	Export(ctx context.Context) ([]byte, error)
}

type service struct {
	db         *gorm.DB
	categories category.Repository
	questions  question.Repository
	quizzes    quiz.Repository
}

func NewService(db *gorm.DB, categories category.Repository, questions question.Repository, quizzes quiz.Repository) Service {
	return &service{
		db:         db,
		categories: categories,
		questions:  questions,
		quizzes:    quizzes,
	}
}

// Preview parses the uploaded workbook and reconciles it against a read-only
// snapshot of the store. It performs no writes.
func (s *service) Preview(ctx context.Context, fileBytes []byte) (*PreviewResponse, error) {
	log := config.WithContext(ctx)

	parsed, err := ParseWorkbook(fileBytes)
	if err != nil {
		log.WithError(err).Warn("Rejected workbook upload")
		return nil, err
	}

	store, err := s.loadStoreState()
	if err != nil {
		log.WithError(err).Error("Failed to load store snapshot for preview")
		return nil, err
	}

	response := buildPreview(parsed, store)
	log.WithFields(logrus.Fields{
		"categories": len(response.Categories),
		"quizzes":    len(response.Quizzes),
		"questions":  len(response.Questions),
		"warnings":   len(response.Warnings),
	}).Info("Built bulk import preview")
	return response, nil
}

// Commit re-validates and re-resolves the payload against the current store
// state and applies it as one transaction. Either every row lands or none do.
func (s *service) Commit(ctx context.Context, payload *CommitPayload) (*Result, error) {
	log := config.WithContext(ctx)

	if len(payload.Categories) == 0 && len(payload.Quizzes) == 0 && len(payload.Questions) == 0 {
		return nil, badRequest("No records to import.")
	}
	if err := validatePayload(payload); err != nil {
		log.WithError(err).Warn("Rejected bulk import payload")
		return nil, err
	}

	result := &Result{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return apply(tx, payload, result)
	})
	if err != nil {
		var commitErr *CommitError
		if errors.As(err, &commitErr) {
			log.WithError(err).Warn("Bulk import rolled back")
			return nil, commitErr
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.WithError(err).Warn("Bulk import hit a concurrent uniqueness conflict")
			return nil, conflict("A conflicting record was written concurrently. The import was rolled back; preview and retry.")
		}
		log.WithError(err).Error("Bulk import failed")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"categories_created": result.CategoriesCreated,
		"categories_updated": result.CategoriesUpdated,
		"quizzes_created":    result.QuizzesCreated,
		"quizzes_updated":    result.QuizzesUpdated,
		"questions_created":  result.QuestionsCreated,
		"questions_updated":  result.QuestionsUpdated,
	}).Info("Bulk import committed")
	return result, nil
}

func (s *service) Template(ctx context.Context) ([]byte, error) {
	return SampleWorkbook()
}

// Export emits the full store content in the upload schema, so an unedited
// re-upload previews as all-update with no hard errors.
func (s *service) Export(ctx context.Context) ([]byte, error) {
	log := config.WithContext(ctx)

	categories, err := s.categories.ListOrderedByName()
	if err != nil {
		return nil, err
	}
	quizzes, err := s.quizzes.ListOrderedByTitle()
	if err != nil {
		return nil, err
	}
	questions, err := s.questions.ListOrderedWithOptions()
	if err != nil {
		return nil, err
	}
	links, err := s.quizzes.ListLinksOrdered()
	if err != nil {
		return nil, err
	}

	categoryNames := make(map[uuid.UUID]string, len(categories))
	exportCategories := make([]ExportCategory, 0, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
		exportCategories = append(exportCategories, ExportCategory{
			Name:        c.Name,
			Description: c.Description,
			Icon:        c.Icon,
		})
	}

	promptsByID := make(map[uuid.UUID]string, len(questions))
	for _, q := range questions {
		promptsByID[q.ID] = q.Prompt
	}
	titlesByID := make(map[uuid.UUID]string, len(quizzes))
	for _, q := range quizzes {
		titlesByID[q.ID] = q.Title
	}

	quizPrompts := make(map[uuid.UUID][]string)
	questionTitles := make(map[uuid.UUID][]string)
	for _, link := range links {
		if prompt, ok := promptsByID[link.QuestionID]; ok {
			quizPrompts[link.QuizID] = append(quizPrompts[link.QuizID], prompt)
		}
		if title, ok := titlesByID[link.QuizID]; ok {
			questionTitles[link.QuestionID] = append(questionTitles[link.QuestionID], title)
		}
	}

	exportQuizzes := make([]ExportQuiz, 0, len(quizzes))
	for _, q := range quizzes {
		exportQuizzes = append(exportQuizzes, ExportQuiz{
			Title:           q.Title,
			Description:     q.Description,
			IsActive:        q.IsActive,
			QuestionPrompts: quizPrompts[q.ID],
		})
	}

	exportQuestions := make([]ExportQuestion, 0, len(questions))
	for _, q := range questions {
		options := make([]ExportOption, 0, len(q.Options))
		for _, option := range q.Options {
			options = append(options, ExportOption{Text: option.Text, IsCorrect: option.IsCorrect})
		}
		exportQuestions = append(exportQuestions, ExportQuestion{
			Prompt:       q.Prompt,
			Explanation:  q.Explanation,
			Subject:      q.Subject,
			Difficulty:   q.Difficulty,
			IsActive:     q.IsActive,
			CategoryName: categoryNames[q.CategoryID],
			QuizTitles:   questionTitles[q.ID],
			Options:      options,
		})
	}

	log.WithFields(logrus.Fields{
		"categories": len(exportCategories),
		"quizzes":    len(exportQuizzes),
		"questions":  len(exportQuestions),
	}).Info("Exporting content workbook")
	return BuildWorkbook(exportCategories, exportQuizzes, exportQuestions)
}

func (s *service) loadStoreState() (storeState, error) {
	categories, err := s.categories.MapBySlug()
	if err != nil {
		return storeState{}, err
	}
	quizzes, err := s.quizzes.MapByTitle()
	if err != nil {
		return storeState{}, err
	}
	questions, err := s.questions.MapByPrompt()
	if err != nil {
		return storeState{}, err
	}
	return storeState{
		categories: categories,
		quizzes:    quizzes,
		questions:  questions,
	}, nil
}
