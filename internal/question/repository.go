package question

import (
	"strings"

	"gorm.io/gorm"
)

type Repository interface {
	MapByPrompt() (map[string]*Question, error)
	ListOrderedWithOptions() ([]Question, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// MapByPrompt loads every question keyed by its case-folded prompt, the
// natural key used to match uploaded rows against the store.
func (r *repository) MapByPrompt() (map[string]*Question, error) {
	var questions []*Question
	if err := r.db.Find(&questions).Error; err != nil {
		return nil, err
	}

	result := make(map[string]*Question, len(questions))
	for _, q := range questions {
		result[PromptKey(q.Prompt)] = q
	}
	return result, nil
}

func (r *repository) ListOrderedWithOptions() ([]Question, error) {
	var questions []Question
	if err := r.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("prompt ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// PromptKey folds a prompt into the form used for natural-key lookups.
func PromptKey(prompt string) string {
	return strings.ToLower(strings.TrimSpace(prompt))
}
