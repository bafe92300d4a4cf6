package model

import "time"

// LessonProgress 按 (user, lesson) 维护，由学习者自报或完成事件推进
// swagger:model LessonProgress
type LessonProgress struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_lesson_progress_user_lesson;type:bigint unsigned;not null" json:"userId"`
	LessonID    uint       `gorm:"uniqueIndex:idx_lesson_progress_user_lesson;type:bigint unsigned;not null" json:"lessonId"`
	CourseID    uint       `gorm:"index;type:bigint unsigned;not null" json:"courseId"`
	Percentage  int        `gorm:"default:0" json:"percentage"` // 0-100
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}

// CourseProgress 课程聚合行，百分比永远由 LessonProgress 全量重算得出，
// 不允许单独修改（完成课时数 / 课程总课时数）
// swagger:model CourseProgress
type CourseProgress struct {
	BaseModel
	UserID       uint       `gorm:"uniqueIndex:idx_course_progress_user_course;type:bigint unsigned;not null" json:"userId"`
	CourseID     uint       `gorm:"uniqueIndex:idx_course_progress_user_course;type:bigint unsigned;not null" json:"courseId"`
	Percentage   int        `gorm:"default:0" json:"percentage"` // 0-100，派生值
	Completed    bool       `gorm:"default:false" json:"completed"`
	StartedAt    time.Time  `json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	LastAccessed time.Time  `json:"lastAccessed"`
}

func (CourseProgress) TableName() string {
	return "course_progress"
}
