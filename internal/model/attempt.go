package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attempt 一次测验作答记录，completed 置位后 score/passed 永久冻结
// swagger:model Attempt
type Attempt struct {
	BaseModel
	Reference string     `gorm:"size:36;uniqueIndex" json:"reference"` // 对外展示的作答凭据号
	QuizID    uint       `gorm:"index:idx_attempt_user_quiz;type:bigint unsigned;not null" json:"quizId"`
	UserID    uint       `gorm:"index:idx_attempt_user_quiz;type:bigint unsigned;not null" json:"userId"`
	StartedAt time.Time  `gorm:"not null" json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
	Completed bool       `gorm:"default:false" json:"completed"`
	Score     *int       `json:"score,omitempty"`  // 百分比 0-100，结束前为 null
	Passed    *bool      `json:"passed,omitempty"` // 结束前为 null
	TimedOut  bool       `gorm:"default:false" json:"timedOut"`
}

func (a *Attempt) BeforeCreate(tx *gorm.DB) (err error) {
	if a.Reference == "" {
		a.Reference = uuid.New().String()
	}
	return
}

func (Attempt) TableName() string {
	return "attempts"
}

// Response 每题一行，仅在提交时批量写入一次
// swagger:model Response
type Response struct {
	BaseModel
	AttemptID         uint    `gorm:"index;type:bigint unsigned;not null" json:"attemptId"`
	QuestionID        uint    `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	SelectedOptionIDs string  `gorm:"type:json" json:"selectedOptionIds"` // JSON array of option ids
	IsCorrect         bool    `gorm:"default:false" json:"isCorrect"`
	PointsEarned      float64 `gorm:"default:0" json:"pointsEarned"`
}

func (Response) TableName() string {
	return "responses"
}
