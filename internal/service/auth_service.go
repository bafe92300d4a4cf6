package service

import (
	"errors"
	"time"

	"learnsphere_backend/internal/config"
	"learnsphere_backend/internal/model"
	"learnsphere_backend/internal/repository"
	"learnsphere_backend/internal/util"
	"learnsphere_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// createState 档案创建的重试状态机：有限次尝试，明确的终止兜底，
// 不做嵌套的逐层 fallback
type createState int

const (
	createPending createState = iota
	createSucceeded
	createConflict
	createFailed
)

const maxCreateAttempts = 3

func (s *AuthService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)

	state := createPending
	var lastErr error
	for attempt := 1; attempt <= maxCreateAttempts && state == createPending; attempt++ {
		switch err := s.UserRepo.Create(user); {
		case err == nil:
			state = createSucceeded
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// 并发注册撞上同一邮箱，直接终止
			state = createConflict
		default:
			lastErr = err
			logger.Log.Warn("profile create attempt failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
			time.Sleep(time.Duration(attempt) * 100 * time.Millisecond)
		}
	}

	switch state {
	case createSucceeded:
		return nil
	case createConflict:
		return util.ErrEmailRegistered
	default:
		return lastErr
	}
}

func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	user.LastLogin = time.Now()
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}
