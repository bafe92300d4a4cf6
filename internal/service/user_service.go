package service

import (
	"errors"
	"time"

	"learnsphere_backend/internal/model"
	"learnsphere_backend/internal/repository"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo    *repository.UserRepository
	CheckinRepo *repository.CheckinRepository
	Achievement *AchievementService
}

func NewUserService(
	userRepo *repository.UserRepository,
	checkinRepo *repository.CheckinRepository,
	achievement *AchievementService,
) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		CheckinRepo: checkinRepo,
		Achievement: achievement,
	}
}

// Checkin 每日签到，同一天重复签到幂等返回已有记录。
// 连续签到天数作为登录 streak 输入同步给成就系统。
func (s *UserService) Checkin(userID uint) (*model.Checkin, error) {
	now := time.Now()

	if existing, err := s.CheckinRepo.FindByUserAndDate(userID, now); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	streak := 1
	latest, err := s.CheckinRepo.FindLatestByUser(userID)
	if err == nil {
		yesterday := now.AddDate(0, 0, -1)
		if sameDay(latest.CheckinAt, yesterday) {
			streak = latest.StreakDays + 1
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	checkin := &model.Checkin{
		UserID:     userID,
		CheckinAt:  now,
		StreakDays: streak,
	}
	if err := s.CheckinRepo.Create(checkin); err != nil {
		return nil, err
	}

	if err := s.Achievement.SyncStreak(userID, streak); err != nil {
		return nil, err
	}

	return checkin, nil
}

// Profile 个人档案视图，附带累计签到天数
type Profile struct {
	User          *model.User `json:"user"`
	TotalCheckins int64       `json:"totalCheckins"`
}

func (s *UserService) GetProfile(userID uint) (*Profile, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	total, err := s.CheckinRepo.GetCheckinCountByUser(userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, TotalCheckins: total}, nil
}

// GetLeaderboard 按经验值排序的榜单
func (s *UserService) GetLeaderboard(limit int) ([]model.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.UserRepo.FindTopByXP(limit)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
