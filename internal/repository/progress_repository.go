package repository

import (
	"learnsphere_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindLessonProgress(userID, lessonID uint) (*model.LessonProgress, error) {
	var lp model.LessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&lp).Error
	if err != nil {
		return nil, err
	}
	return &lp, nil
}

func (r *ProgressRepository) SaveLessonProgress(lp *model.LessonProgress) error {
	return r.DB.Save(lp).Error
}

func (r *ProgressRepository) CreateLessonProgress(lp *model.LessonProgress) error {
	return r.DB.Create(lp).Error
}

func (r *ProgressRepository) ListLessonProgress(userID, courseID uint) ([]model.LessonProgress, error) {
	var rows []model.LessonProgress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).Find(&rows).Error
	return rows, err
}

// CountCompletedLessons 统计该课程下用户已全部完成的课时数（半成品不计入）
func (r *ProgressRepository) CountCompletedLessons(userID, courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND course_id = ? AND completed = ?", userID, courseID, true).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) FindCourseProgress(userID, courseID uint) (*model.CourseProgress, error) {
	var cp model.CourseProgress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&cp).Error
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *ProgressRepository) SaveCourseProgress(cp *model.CourseProgress) error {
	return r.DB.Save(cp).Error
}

func (r *ProgressRepository) CreateCourseProgress(cp *model.CourseProgress) error {
	return r.DB.Create(cp).Error
}

func (r *ProgressRepository) ListCourseProgress(userID uint) ([]model.CourseProgress, error) {
	var rows []model.CourseProgress
	err := r.DB.Where("user_id = ?", userID).Order("last_accessed DESC").Find(&rows).Error
	return rows, err
}
