package service

import (
	"errors"

	"learnsphere_backend/internal/model"
	"learnsphere_backend/internal/repository"
	"learnsphere_backend/internal/util"

	"gorm.io/gorm"
)

// ContentService 只读内容查询，课程/课时/测验由内容创作端维护
type ContentService struct {
	CourseRepo *repository.CourseRepository
	QuizRepo   *repository.QuizRepository
}

func NewContentService(courseRepo *repository.CourseRepository, quizRepo *repository.QuizRepository) *ContentService {
	return &ContentService{
		CourseRepo: courseRepo,
		QuizRepo:   quizRepo,
	}
}

func (s *ContentService) ListCourses() ([]model.Course, error) {
	return s.CourseRepo.ListPublished()
}

func (s *ContentService) GetCourse(courseID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	} else if err != nil {
		return nil, err
	}

	lessons, err := s.CourseRepo.ListLessons(courseID)
	if err != nil {
		return nil, err
	}
	course.Lessons = lessons
	return course, nil
}

func (s *ContentService) ListCourseQuizzes(courseID uint) ([]model.Quiz, error) {
	return s.QuizRepo.FindByCourse(courseID)
}
