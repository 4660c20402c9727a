package question

import (
	"time"

	"github.com/google/uuid"
)

type Question struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Prompt      string    `gorm:"type:text;not null;uniqueIndex" json:"prompt"`
	Explanation *string   `gorm:"type:text" json:"explanation,omitempty"`
	Subject     *string   `gorm:"type:varchar(100)" json:"subject,omitempty"`
	Difficulty  *string   `gorm:"type:varchar(50)" json:"difficulty,omitempty"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Options []Option `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

type Option struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool      `gorm:"not null;default:false" json:"is_correct"`
	Position   int       `gorm:"not null" json:"position"`
}
