package model

// QuestionType 是封闭的题型枚举，评分规则按类型穷举分派
type QuestionType string

const (
	SingleChoice   QuestionType = "single_choice"
	TrueFalse      QuestionType = "true_false"
	MultipleAnswer QuestionType = "multiple_answer"
)

// Quiz 测验定义，尝试期间不可变；由内容创作端维护，本引擎只读
// swagger:model Quiz
type Quiz struct {
	BaseModel
	CourseID         uint       `gorm:"index;type:bigint unsigned;not null" json:"courseId"`
	LessonID         *uint      `gorm:"index;type:bigint unsigned" json:"lessonId,omitempty"`
	Title            string     `gorm:"size:255;not null" json:"title"`
	PassingScore     int        `gorm:"default:70" json:"passingScore"` // 0-100
	TimeLimitMinutes *int       `json:"timeLimitMinutes,omitempty"`     // null 表示不限时
	Questions        []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model Question
type Question struct {
	BaseModel
	QuizID  uint         `gorm:"index;type:bigint unsigned;not null" json:"quizId"`
	Text    string       `gorm:"type:text;not null" json:"text"`
	Type    QuestionType `gorm:"size:20;not null" json:"type"`
	Points  float64      `gorm:"not null" json:"points"`
	Order   int          `gorm:"default:0" json:"order"`
	Options []Option     `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model Option
type Option struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"-"` // 不下发给作答端
	Order      int    `gorm:"default:0" json:"order"`
}

func (Option) TableName() string {
	return "options"
}
