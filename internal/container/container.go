package container

import (
	"context"
	"log"
	"os"

	"github.com/shekhar1luitel/quizHub-sub001/internal/auth"
	"github.com/shekhar1luitel/quizHub-sub001/internal/bulkimport"
	"github.com/shekhar1luitel/quizHub-sub001/internal/category"
	"github.com/shekhar1luitel/quizHub-sub001/internal/config"
	"github.com/shekhar1luitel/quizHub-sub001/internal/question"
	"github.com/shekhar1luitel/quizHub-sub001/internal/quiz"
)

type Container struct {
	BulkImportContainer *bulkimport.BulkImportContainer
}

func New() *Container {
	config.Init()
	auth.Init()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if err := config.DB.AutoMigrate(
		&category.Category{},
		&question.Question{},
		&question.Option{},
		&quiz.Quiz{},
		&quiz.QuizQuestion{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	return &Container{
		BulkImportContainer: bulkimport.NewBulkImportContainer(config.DB),
	}
}
