package quiz

import (
	"time"

	"github.com/google/uuid"
)

type Quiz struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"title"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

// QuizQuestion is the ordered association between a quiz and a question.
type QuizQuestion struct {
	QuizID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"quiz_id"`
	QuestionID uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"question_id"`
	Position   int       `gorm:"not null" json:"position"`
}
