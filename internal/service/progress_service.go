package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"learnsphere_backend/internal/model"
	"learnsphere_backend/internal/repository"
	"learnsphere_backend/internal/util"
	"learnsphere_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ProgressService 负责课时进度写入和课程层的全量重算。
// 重算读整个课时集合再覆写一行聚合；同一 (user, course) 的并发更新
// 后写者胜出，这是已接受的弱一致窗口，不做事务隔离。
type ProgressService struct {
	CourseRepo   *repository.CourseRepository
	ProgressRepo *repository.ProgressRepository
	AttemptRepo  *repository.AttemptRepository
	UserRepo     *repository.UserRepository
	Achievement  *AchievementService
	Redis        *redis.Client
	CacheTTL     time.Duration
}

func NewProgressService(
	courseRepo *repository.CourseRepository,
	progressRepo *repository.ProgressRepository,
	attemptRepo *repository.AttemptRepository,
	userRepo *repository.UserRepository,
	achievement *AchievementService,
	rdb *redis.Client,
	cacheTTL time.Duration,
) *ProgressService {
	return &ProgressService{
		CourseRepo:   courseRepo,
		ProgressRepo: progressRepo,
		AttemptRepo:  attemptRepo,
		UserRepo:     userRepo,
		Achievement:  achievement,
		Redis:        rdb,
		CacheTTL:     cacheTTL,
	}
}

// SetLessonProgress 更新课时进度并全量重算课程聚合。percent 截断到 [0,100]，
// 课程百分比只统计完全完成的课时，半成品课时贡献 0。
func (s *ProgressService) SetLessonProgress(userID, lessonID, courseID uint, percent int) (*model.CourseProgress, error) {
	lesson, err := s.CourseRepo.FindLessonByID(lessonID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrLessonNotFound
	} else if err != nil {
		return nil, err
	}
	if lesson.CourseID != courseID {
		return nil, util.ErrLessonNotFound
	}

	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	completed := percent == 100

	lessonBecameCompleted := false
	lp, err := s.ProgressRepo.FindLessonProgress(userID, lessonID)
	if err == gorm.ErrRecordNotFound {
		lp = &model.LessonProgress{
			UserID:     userID,
			LessonID:   lessonID,
			CourseID:   courseID,
			Percentage: percent,
			Completed:  completed,
		}
		if completed {
			now := time.Now()
			lp.CompletedAt = &now
			lessonBecameCompleted = true
		}
		if err := s.ProgressRepo.CreateLessonProgress(lp); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	} else {
		lessonBecameCompleted = completed && !lp.Completed
		lp.Percentage = percent
		lp.Completed = completed
		if lessonBecameCompleted {
			now := time.Now()
			lp.CompletedAt = &now
		}
		if err := s.ProgressRepo.SaveLessonProgress(lp); err != nil {
			return nil, err
		}
	}

	monitoring.LessonProgressUpdates.Inc()

	cp, courseBecameCompleted, err := s.recomputeCourseProgress(userID, courseID)
	if err != nil {
		return nil, err
	}

	s.invalidateSummary(userID)

	if lessonBecameCompleted {
		if err := s.Achievement.HandleEvent(userID, model.EventLessonCompleted, 1); err != nil {
			return nil, err
		}
	}
	if courseBecameCompleted {
		if err := s.Achievement.HandleEvent(userID, model.EventCourseCompleted, 1); err != nil {
			return nil, err
		}
	}

	return cp, nil
}

// recomputeCourseProgress 从当前 LessonProgress 集合全量重算，不做增量，
// 避免聚合值与来源记录漂移
func (s *ProgressService) recomputeCourseProgress(userID, courseID uint) (*model.CourseProgress, bool, error) {
	totalLessons, err := s.CourseRepo.CountLessons(courseID)
	if err != nil {
		return nil, false, err
	}
	completedLessons, err := s.ProgressRepo.CountCompletedLessons(userID, courseID)
	if err != nil {
		return nil, false, err
	}

	percentage := 0
	if totalLessons > 0 {
		percentage = int(math.Round(100 * float64(completedLessons) / float64(totalLessons)))
	}
	completed := percentage == 100

	now := time.Now()
	becameCompleted := false

	cp, err := s.ProgressRepo.FindCourseProgress(userID, courseID)
	if err == gorm.ErrRecordNotFound {
		cp = &model.CourseProgress{
			UserID:       userID,
			CourseID:     courseID,
			Percentage:   percentage,
			Completed:    completed,
			StartedAt:    now,
			LastAccessed: now,
		}
		if completed {
			cp.CompletedAt = &now
			becameCompleted = true
		}
		if err := s.ProgressRepo.CreateCourseProgress(cp); err != nil {
			return nil, false, err
		}
		return cp, becameCompleted, nil
	} else if err != nil {
		return nil, false, err
	}

	becameCompleted = completed && !cp.Completed
	cp.Percentage = percentage
	cp.Completed = completed
	cp.LastAccessed = now
	if becameCompleted && cp.CompletedAt == nil {
		cp.CompletedAt = &now
	}
	if err := s.ProgressRepo.SaveCourseProgress(cp); err != nil {
		return nil, false, err
	}
	return cp, becameCompleted, nil
}

// ProgressSummary 面向展示端的聚合视图
type ProgressSummary struct {
	Courses      []model.CourseProgress `json:"courses"`
	QuizStats    repository.QuizStats   `json:"quizStats"`
	Achievements []AchievementStatus    `json:"achievements"`
	TotalXP      int                    `json:"totalXp"`
}

// GetProgressSummary 汇总课程进度、测验统计和成就，带短 TTL 的 Redis 缓存
func (s *ProgressService) GetProgressSummary(userID uint) (*ProgressSummary, error) {
	cacheKey := fmt.Sprintf("progress:summary:%d", userID)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(context.Background(), cacheKey).Result(); err == nil {
			var summary ProgressSummary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				return &summary, nil
			}
		}
	}

	courses, err := s.ProgressRepo.ListCourseProgress(userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.AttemptRepo.GetUserQuizStats(userID)
	if err != nil {
		return nil, err
	}

	achievements, err := s.Achievement.GetUserAchievements(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	summary := &ProgressSummary{
		Courses:      courses,
		QuizStats:    *stats,
		Achievements: achievements,
		TotalXP:      user.XP,
	}

	if s.Redis != nil {
		if data, err := json.Marshal(summary); err == nil {
			s.Redis.Set(context.Background(), cacheKey, data, s.CacheTTL)
		}
	}

	return summary, nil
}

func (s *ProgressService) invalidateSummary(userID uint) {
	if s.Redis != nil {
		s.Redis.Del(context.Background(), fmt.Sprintf("progress:summary:%d", userID))
	}
}
