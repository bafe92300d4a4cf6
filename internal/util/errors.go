package util

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailRegistered         = errors.New("email already registered")
	ErrPermissionDenied        = errors.New("permission denied")
	ErrQuizNotFound            = errors.New("quiz not found")
	ErrQuestionNotFound        = errors.New("question not found in quiz")
	ErrLessonNotFound          = errors.New("lesson not found")
	ErrCourseNotFound          = errors.New("course not found")
	ErrAttemptNotFound         = errors.New("attempt not found")
	ErrAttemptAlreadyCompleted = errors.New("quiz already completed, retakes are not allowed")
	ErrAttemptInProgress       = errors.New("an open attempt already exists for this quiz")
	ErrInvalidAttemptState     = errors.New("operation not allowed in current attempt state")
	ErrInvalidSelection        = errors.New("invalid option selection for question type")
	ErrPersistence             = errors.New("persistence failure")
)
