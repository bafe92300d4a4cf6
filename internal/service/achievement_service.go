package service

import (
	"time"

	"learnsphere_backend/internal/model"
	"learnsphere_backend/internal/repository"
	"learnsphere_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// AchievementService 消费进度状态跃迁并推进成就计数。
// 调用方只在“刚刚发生跃迁”时触发事件（课时刚完成、课程刚完成、测验刚通过），
// 已完成的成就直接跳过，因此同一跃迁重复投递不会重复计数。
type AchievementService struct {
	AchievementRepo *repository.AchievementRepository
	UserRepo        *repository.UserRepository
}

func NewAchievementService(
	achievementRepo *repository.AchievementRepository,
	userRepo *repository.UserRepository,
) *AchievementService {
	return &AchievementService{
		AchievementRepo: achievementRepo,
		UserRepo:        userRepo,
	}
}

// AchievementStatus 成就定义与用户进度的合并视图
type AchievementStatus struct {
	model.Achievement
	Progress    int        `json:"progress"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// HandleEvent 将事件计数推进 delta，progress 单调递增且封顶于 Required，
// 首次达标时置位 completed 并发放 XP 奖励
func (s *AchievementService) HandleEvent(userID uint, event model.AchievementEvent, delta int) error {
	if delta <= 0 {
		return nil
	}

	achievements, err := s.AchievementRepo.ListByEvent(event)
	if err != nil {
		return err
	}

	for i := range achievements {
		if err := s.advance(userID, &achievements[i], func(progress int) int {
			return progress + delta
		}); err != nil {
			return err
		}
	}
	return nil
}

// SyncStreak 用外部输入的连续签到天数对齐 streak 类成就。
// 取历史最大值，streak 中断不回退进度。
func (s *AchievementService) SyncStreak(userID uint, streakDays int) error {
	if streakDays <= 0 {
		return nil
	}

	achievements, err := s.AchievementRepo.ListByEvent(model.EventLoginStreak)
	if err != nil {
		return err
	}

	for i := range achievements {
		if err := s.advance(userID, &achievements[i], func(progress int) int {
			if streakDays > progress {
				return streakDays
			}
			return progress
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *AchievementService) advance(userID uint, a *model.Achievement, next func(int) int) error {
	ua, err := s.AchievementRepo.FindUserAchievement(userID, a.ID)
	if err == gorm.ErrRecordNotFound {
		ua = &model.UserAchievement{UserID: userID, AchievementID: a.ID}
		if err := s.AchievementRepo.CreateUserAchievement(ua); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if ua.Completed {
		return nil
	}

	progress := next(ua.Progress)
	if progress > a.Required {
		progress = a.Required
	}
	if progress == ua.Progress {
		return nil
	}
	ua.Progress = progress

	if ua.Progress >= a.Required {
		now := time.Now()
		ua.Completed = true
		ua.CompletedAt = &now
		monitoring.AchievementsUnlocked.Inc()
		if a.XPReward > 0 {
			if err := s.UserRepo.UpdateXP(userID, a.XPReward); err != nil {
				return err
			}
		}
	}

	return s.AchievementRepo.SaveUserAchievement(ua)
}

// GetUserAchievements 返回全部成就定义及该用户的进度
func (s *AchievementService) GetUserAchievements(userID uint) ([]AchievementStatus, error) {
	achievements, err := s.AchievementRepo.ListAll()
	if err != nil {
		return nil, err
	}

	rows, err := s.AchievementRepo.ListUserAchievements(userID)
	if err != nil {
		return nil, err
	}
	byAchievement := make(map[uint]*model.UserAchievement, len(rows))
	for i := range rows {
		byAchievement[rows[i].AchievementID] = &rows[i]
	}

	statuses := make([]AchievementStatus, 0, len(achievements))
	for _, a := range achievements {
		status := AchievementStatus{Achievement: a}
		if ua, ok := byAchievement[a.ID]; ok {
			status.Progress = ua.Progress
			status.Completed = ua.Completed
			status.CompletedAt = ua.CompletedAt
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
