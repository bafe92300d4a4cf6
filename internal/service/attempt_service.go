package service

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"learnsphere_backend/internal/model"
	"learnsphere_backend/internal/repository"
	"learnsphere_backend/internal/util"
	"learnsphere_backend/pkg/logger"
	"learnsphere_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AttemptState 作答会话状态机：
// in_progress -> submitted | timed_out，两个终态都触发一次评分落库
type AttemptState string

const (
	StateInProgress AttemptState = "in_progress"
	StateSubmitted  AttemptState = "submitted"
	StateTimedOut   AttemptState = "timed_out"
)

// QuizPassXP 通过测验的固定经验奖励
const QuizPassXP = 25

// attemptSession 内存中的作答会话。答案在提交前只存内存，
// 进程退出即丢失（开放的 Attempt 行会在下次 StartAttempt 时被重新挂接）。
type attemptSession struct {
	attempt   *model.Attempt
	userID    uint
	set       QuestionSet
	answers   map[uint][]uint
	remaining *int // 剩余秒数，nil 表示不限时
	state     AttemptState
}

// AttemptService 管理作答会话的启动、作答、倒计时与提交。
// 每个 Attempt 只有发起它的用户会话会修改它，倒计时由单一协作时钟驱动。
type AttemptService struct {
	QuizRepo    *repository.QuizRepository
	AttemptRepo *repository.AttemptRepository
	UserRepo    *repository.UserRepository
	Progress    *ProgressService
	Achievement *AchievementService

	mu       sync.Mutex
	sessions map[uint]*attemptSession // attemptID -> session
}

func NewAttemptService(
	quizRepo *repository.QuizRepository,
	attemptRepo *repository.AttemptRepository,
	userRepo *repository.UserRepository,
	progress *ProgressService,
	achievement *AchievementService,
) *AttemptService {
	return &AttemptService{
		QuizRepo:    quizRepo,
		AttemptRepo: attemptRepo,
		UserRepo:    userRepo,
		Progress:    progress,
		Achievement: achievement,
		sessions:    make(map[uint]*attemptSession),
	}
}

// StartAttemptResult 返回给作答端的启动结果
type StartAttemptResult struct {
	Attempt          *model.Attempt     `json:"attempt"`
	Questions        []QuestionSnapshot `json:"questions"`
	CountdownSeconds *int               `json:"countdownSeconds,omitempty"`
}

// StartAttempt 开始一次作答。测验为单次作答：已完成过的 (user, quiz) 直接拒绝。
// 若存在进程重启遗留的未完成 Attempt 行，则挂接到该行并按原 started_at 扣减倒计时。
func (s *AttemptService) StartAttempt(userID, quizID uint) (*StartAttemptResult, error) {
	quiz, err := s.QuizRepo.FindWithQuestions(quizID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuizNotFound
	} else if err != nil {
		return nil, err
	}

	done, err := s.AttemptRepo.HasCompleted(userID, quizID)
	if err != nil {
		return nil, err
	}
	if done {
		return nil, util.ErrAttemptAlreadyCompleted
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sess := range s.sessions {
		if sess.userID == userID && sess.set.QuizID == quizID && sess.state == StateInProgress {
			return nil, util.ErrAttemptInProgress
		}
	}

	set := NewQuestionSet(quiz)

	attempt, err := s.AttemptRepo.FindOpen(userID, quizID)
	if err == gorm.ErrRecordNotFound {
		attempt = &model.Attempt{
			QuizID:    quizID,
			UserID:    userID,
			StartedAt: time.Now(),
		}
		if err := s.AttemptRepo.Create(attempt); err != nil {
			return nil, fmt.Errorf("%w: %v", util.ErrPersistence, err)
		}
	} else if err != nil {
		return nil, err
	}

	var remaining *int
	if quiz.TimeLimitMinutes != nil {
		elapsed := int(time.Since(attempt.StartedAt).Seconds())
		left := *quiz.TimeLimitMinutes*60 - elapsed
		if left < 0 {
			left = 0
		}
		remaining = &left
	}

	sess := &attemptSession{
		attempt:   attempt,
		userID:    userID,
		set:       set,
		answers:   make(map[uint][]uint),
		remaining: remaining,
		state:     StateInProgress,
	}
	s.sessions[attempt.ID] = sess

	monitoring.AttemptsStarted.Inc()

	return &StartAttemptResult{
		Attempt:          attempt,
		Questions:        set.Questions,
		CountdownSeconds: remaining,
	}, nil
}

// RecordAnswer 记录某题的选择，同题后写覆盖先写，提交前不落库。
// 单选/判断必须恰好一个选项，多选接受任意大小的集合（含空集）。
func (s *AttemptService) RecordAnswer(userID, attemptID, questionID uint, optionIDs []uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[attemptID]
	if !ok {
		return s.missingSessionErr(userID, attemptID)
	}
	if sess.userID != userID {
		return util.ErrPermissionDenied
	}
	if sess.state != StateInProgress {
		return util.ErrInvalidAttemptState
	}

	q := sess.set.findQuestion(questionID)
	if q == nil {
		return util.ErrQuestionNotFound
	}

	selected := dedupe(optionIDs)
	for _, id := range selected {
		if !q.hasOption(id) {
			return util.ErrInvalidSelection
		}
	}

	switch q.Type {
	case model.SingleChoice, model.TrueFalse:
		if len(selected) != 1 {
			return util.ErrInvalidSelection
		}
	case model.MultipleAnswer:
		// 任意集合都合法
	default:
		return util.ErrInvalidSelection
	}

	sess.answers[questionID] = selected
	return nil
}

// Submit 学习者主动交卷，只允许从 in_progress 转出
func (s *AttemptService) Submit(userID, attemptID uint) (*AttemptResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[attemptID]
	if !ok {
		return nil, s.missingSessionErr(userID, attemptID)
	}
	if sess.userID != userID {
		return nil, util.ErrPermissionDenied
	}
	if sess.state != StateInProgress {
		return nil, util.ErrInvalidAttemptState
	}

	return s.finalize(sess, StateSubmitted)
}

// Tick 协作时钟步进一秒。倒计时归零的会话转入 timed_out 并按已记录的答案评分；
// 非 in_progress 的会话忽略时钟，超时与手动提交互斥。
func (s *AttemptService) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sess := range s.sessions {
		if sess.state != StateInProgress || sess.remaining == nil {
			continue
		}
		*sess.remaining--
		if *sess.remaining > 0 {
			continue
		}
		if _, err := s.finalize(sess, StateTimedOut); err != nil {
			logger.Log.Error("timeout submission failed",
				zap.Uint("attemptId", sess.attempt.ID),
				zap.Error(err))
		}
	}
}

// AttemptResult 终态评分结果
type AttemptResult struct {
	Attempt *model.Attempt `json:"attempt"`
	Score   *AttemptScore  `json:"score"`
}

// finalize 执行唯一一次评分与落库：Attempt 关闭与 Response 批量写入在同一事务内，
// 进度聚合与成就推进只在事务提交成功后运行。调用方必须持有 s.mu。
func (s *AttemptService) finalize(sess *attemptSession, terminal AttemptState) (*AttemptResult, error) {
	// 先转入终态，之后的 tick 与重复提交都会被状态检查挡掉
	sess.state = terminal

	score, err := ScoreAttempt(sess.set, sess.answers)
	if err != nil {
		return nil, err
	}

	responses := make([]model.Response, 0, len(score.PerQuestion))
	for _, qs := range score.PerQuestion {
		ids, _ := json.Marshal(qs.SelectedIDs)
		responses = append(responses, model.Response{
			AttemptID:         sess.attempt.ID,
			QuestionID:        qs.QuestionID,
			SelectedOptionIDs: string(ids),
			IsCorrect:         qs.IsCorrect,
			PointsEarned:      qs.PointsEarned,
		})
	}

	now := time.Now()
	pct := score.Percentage
	passed := score.Passed
	sess.attempt.Completed = true
	sess.attempt.EndedAt = &now
	sess.attempt.Score = &pct
	sess.attempt.Passed = &passed
	sess.attempt.TimedOut = terminal == StateTimedOut

	if err := s.AttemptRepo.Finalize(sess.attempt, responses); err != nil {
		// 单次写入，不自动重试；会话保持终态，遗留的开放行可被重新挂接
		return nil, fmt.Errorf("%w: %v", util.ErrPersistence, err)
	}

	delete(s.sessions, sess.attempt.ID)

	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	trigger := "submit"
	if terminal == StateTimedOut {
		trigger = "timeout"
	}
	monitoring.AttemptsCompleted.WithLabelValues(outcome, trigger).Inc()

	// Attempt 已确认落库，才允许触发下游聚合
	s.Progress.invalidateSummary(sess.userID)

	if passed {
		if err := s.UserRepo.UpdateXP(sess.userID, QuizPassXP); err != nil {
			return nil, err
		}
		if err := s.Achievement.HandleEvent(sess.userID, model.EventQuizPassed, 1); err != nil {
			return nil, err
		}
	}
	if pct == 100 {
		if err := s.Achievement.HandleEvent(sess.userID, model.EventPerfectScore, 1); err != nil {
			return nil, err
		}
	}

	return &AttemptResult{Attempt: sess.attempt, Score: score}, nil
}

// ListQuizAttempts 教学端按测验查看全部作答记录
func (s *AttemptService) ListQuizAttempts(quizID uint) ([]model.Attempt, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuizNotFound
	} else if err != nil {
		return nil, err
	}
	return s.AttemptRepo.ListByQuiz(quizID)
}

// GetAttempt 查询作答记录及其每题 Response（仅本人可见）
func (s *AttemptService) GetAttempt(userID, attemptID uint) (*model.Attempt, []model.Response, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err == gorm.ErrRecordNotFound {
		return nil, nil, util.ErrAttemptNotFound
	} else if err != nil {
		return nil, nil, err
	}
	if attempt.UserID != userID {
		return nil, nil, util.ErrPermissionDenied
	}

	responses, err := s.AttemptRepo.GetResponses(attemptID)
	if err != nil {
		return nil, nil, err
	}
	return attempt, responses, nil
}

// RemainingSeconds 查询某会话的剩余秒数，供作答端展示倒计时
func (s *AttemptService) RemainingSeconds(userID, attemptID uint) (*int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[attemptID]
	if !ok {
		return nil, s.missingSessionErr(userID, attemptID)
	}
	if sess.userID != userID {
		return nil, util.ErrPermissionDenied
	}
	if sess.remaining == nil {
		return nil, nil
	}
	left := *sess.remaining
	return &left, nil
}

// missingSessionErr 会话不在内存时查落库记录，区分"从未存在"与"已终结"。
// 已终结的作答继续操作属于状态错误，而不是找不到资源。调用方必须持有 s.mu。
func (s *AttemptService) missingSessionErr(userID, attemptID uint) error {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrAttemptNotFound
	} else if err != nil {
		return err
	}
	if attempt.UserID != userID {
		return util.ErrPermissionDenied
	}
	if attempt.Completed {
		return util.ErrInvalidAttemptState
	}
	return util.ErrAttemptNotFound
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
