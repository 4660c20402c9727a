package quiz

import (
	"strings"

	"gorm.io/gorm"
)

type Repository interface {
	MapByTitle() (map[string]*Quiz, error)
	ListOrderedByTitle() ([]Quiz, error)
	ListLinksOrdered() ([]QuizQuestion, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// MapByTitle loads every quiz keyed by its case-folded title, the natural key
// used to match uploaded rows against the store.
func (r *repository) MapByTitle() (map[string]*Quiz, error) {
	var quizzes []*Quiz
	if err := r.db.Find(&quizzes).Error; err != nil {
		return nil, err
	}

	result := make(map[string]*Quiz, len(quizzes))
	for _, q := range quizzes {
		result[TitleKey(q.Title)] = q
	}
	return result, nil
}

func (r *repository) ListOrderedByTitle() ([]Quiz, error) {
	var quizzes []Quiz
	if err := r.db.Order("title ASC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *repository) ListLinksOrdered() ([]QuizQuestion, error) {
	var links []QuizQuestion
	if err := r.db.Order("quiz_id, position ASC").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// TitleKey folds a title into the form used for natural-key lookups.
func TitleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
