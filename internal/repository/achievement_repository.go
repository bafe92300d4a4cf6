package repository

import (
	"learnsphere_backend/internal/model"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) ListByEvent(event model.AchievementEvent) ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.Where("event = ?", event).Find(&achievements).Error
	return achievements, err
}

func (r *AchievementRepository) ListAll() ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.Order("id").Find(&achievements).Error
	return achievements, err
}

func (r *AchievementRepository) FindUserAchievement(userID, achievementID uint) (*model.UserAchievement, error) {
	var ua model.UserAchievement
	err := r.DB.Where("user_id = ? AND achievement_id = ?", userID, achievementID).First(&ua).Error
	if err != nil {
		return nil, err
	}
	return &ua, nil
}

func (r *AchievementRepository) CreateUserAchievement(ua *model.UserAchievement) error {
	return r.DB.Create(ua).Error
}

func (r *AchievementRepository) SaveUserAchievement(ua *model.UserAchievement) error {
	return r.DB.Save(ua).Error
}

func (r *AchievementRepository) ListUserAchievements(userID uint) ([]model.UserAchievement, error) {
	var rows []model.UserAchievement
	err := r.DB.Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}
