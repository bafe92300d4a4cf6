package repository

import (
	"learnsphere_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.Attempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var a model.Attempt
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// HasCompleted 判断用户是否已完成过该测验（单次作答约束）
func (r *AttemptRepository) HasCompleted(userID, quizID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Attempt{}).
		Where("user_id = ? AND quiz_id = ? AND completed = ?", userID, quizID, true).
		Count(&count).Error
	return count > 0, err
}

// FindOpen 返回用户在该测验上未完成的作答记录
func (r *AttemptRepository) FindOpen(userID, quizID uint) (*model.Attempt, error) {
	var a model.Attempt
	err := r.DB.
		Where("user_id = ? AND quiz_id = ? AND completed = ?", userID, quizID, false).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByQuiz 返回某测验的全部作答记录，供教学端查看
func (r *AttemptRepository) ListByQuiz(quizID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("quiz_id = ?", quizID).Order("started_at DESC").Find(&attempts).Error
	return attempts, err
}

// Finalize 在单个事务里关闭作答记录并批量写入每题 Response，
// 两者要么都落库要么都不落库
func (r *AttemptRepository) Finalize(attempt *model.Attempt, responses []model.Response) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(attempt).Error; err != nil {
			return err
		}
		if len(responses) > 0 {
			if err := tx.Create(&responses).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AttemptRepository) GetResponses(attemptID uint) ([]model.Response, error) {
	var responses []model.Response
	err := r.DB.Where("attempt_id = ?", attemptID).Find(&responses).Error
	return responses, err
}

// QuizStats 用户测验统计，供进度汇总展示
type QuizStats struct {
	TotalAttempts int64   `json:"totalAttempts"`
	Passed        int64   `json:"passed"`
	AverageScore  float64 `json:"averageScore"`
}

func (r *AttemptRepository) GetUserQuizStats(userID uint) (*QuizStats, error) {
	base := r.DB.Model(&model.Attempt{}).Where("user_id = ? AND completed = ?", userID, true)

	var stats QuizStats
	if err := base.Session(&gorm.Session{}).Count(&stats.TotalAttempts).Error; err != nil {
		return nil, err
	}
	if stats.TotalAttempts == 0 {
		return &stats, nil
	}
	if err := base.Session(&gorm.Session{}).Where("passed = ?", true).Count(&stats.Passed).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.Attempt{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Select("AVG(score)").Scan(&stats.AverageScore).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
