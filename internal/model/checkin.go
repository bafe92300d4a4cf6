package model

import (
	"time"
)

// Checkin 记录用户的学习签到信息，连续签到天数作为成就系统的登录 streak 输入
// swagger:model Checkin
type Checkin struct {
	BaseModel
	UserID     uint      `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	CheckinAt  time.Time `gorm:"not null;index:idx_user_checkin_date" json:"checkinAt"`
	StreakDays int       `gorm:"default:1" json:"streakDays"` // 连续签到天数
}

func (Checkin) TableName() string {
	return "checkins"
}
