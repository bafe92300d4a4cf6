package model

import "time"

// AchievementEvent 成就推进事件种类，解锁只认状态跃迁（刚完成/刚通过），
// 不认原始事件重放
type AchievementEvent string

const (
	EventLessonCompleted AchievementEvent = "lesson_completed"
	EventCourseCompleted AchievementEvent = "course_completed"
	EventQuizPassed      AchievementEvent = "quiz_passed"
	EventPerfectScore    AchievementEvent = "perfect_score"
	EventLoginStreak     AchievementEvent = "login_streak"
)

// Achievement 成就定义（种子数据），Required 为达成所需计数
// swagger:model Achievement
type Achievement struct {
	BaseModel
	Code     string           `gorm:"size:50;unique;not null" json:"code"`
	Name     string           `gorm:"size:100;not null" json:"name"`
	Icon     string           `gorm:"size:255" json:"icon"`
	Event    AchievementEvent `gorm:"size:50;index;not null" json:"event"`
	Required int              `gorm:"not null" json:"required"`
	XPReward int              `gorm:"default:0" json:"xpReward"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// UserAchievement 用户成就进度，Progress 单调递增且不超过 Required
// swagger:model UserAchievement
type UserAchievement struct {
	BaseModel
	UserID        uint       `gorm:"uniqueIndex:idx_user_achievement;type:bigint unsigned;not null" json:"userId"`
	AchievementID uint       `gorm:"uniqueIndex:idx_user_achievement;type:bigint unsigned;not null" json:"achievementId"`
	Progress      int        `gorm:"default:0" json:"progress"`
	Completed     bool       `gorm:"default:false" json:"completed"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
