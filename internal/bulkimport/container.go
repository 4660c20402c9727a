package bulkimport

import (
	"gorm.io/gorm"

	"github.com/shekhar1luitel/quizHub-sub001/internal/category"
	"github.com/shekhar1luitel/quizHub-sub001/internal/question"
	"github.com/shekhar1luitel/quizHub-sub001/internal/quiz"
)

type BulkImportContainer struct {
	Handler *Handler
	Service Service
}

func NewBulkImportContainer(db *gorm.DB) *BulkImportContainer {
	categories := category.NewRepository(db)
	questions := question.NewRepository(db)
	quizzes := quiz.NewRepository(db)
	service := NewService(db, categories, questions, quizzes)
	handler := NewHandler(service)

	return &BulkImportContainer{
		Handler: handler,
		Service: service,
	}
}
