package service

import (
	"errors"
	"testing"
	"time"

	"learnsphere_backend/internal/model"
	"learnsphere_backend/internal/util"

	"github.com/google/uuid"
)

func TestStartAttemptUnknownQuiz(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	if _, err := env.attempt.StartAttempt(user.ID, 9999); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("err = %v, want ErrQuizNotFound", err)
	}
}

func TestAttemptLifecycle(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	course := env.createCourse(t, 1)
	quiz := env.createQuiz(t, course.ID, nil)

	start, err := env.attempt.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	if start.CountdownSeconds != nil {
		t.Errorf("CountdownSeconds = %v, want nil for untimed quiz", *start.CountdownSeconds)
	}
	if len(start.Questions) != 3 {
		t.Fatalf("questions = %d, want 3", len(start.Questions))
	}
	attemptID := start.Attempt.ID

	// 全部答对
	answers := map[uint][]uint{
		quiz.Questions[0].ID: {optionID(quiz, 0, 0)},
		quiz.Questions[1].ID: {optionID(quiz, 1, 0)},
		quiz.Questions[2].ID: {optionID(quiz, 2, 0), optionID(quiz, 2, 1)},
	}
	for qid, ids := range answers {
		if err := env.attempt.RecordAnswer(user.ID, attemptID, qid, ids); err != nil {
			t.Fatalf("RecordAnswer(%d): %v", qid, err)
		}
	}

	result, err := env.attempt.Submit(user.ID, attemptID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Score.Percentage != 100 || !result.Score.Passed {
		t.Fatalf("score = %d%%, passed = %v, want 100%%/true", result.Score.Percentage, result.Score.Passed)
	}

	// 落库校验
	stored, responses, err := env.attempt.GetAttempt(user.ID, attemptID)
	if err != nil {
		t.Fatalf("GetAttempt: %v", err)
	}
	if !stored.Completed || stored.Score == nil || *stored.Score != 100 {
		t.Errorf("stored attempt = %+v, want completed with score 100", stored)
	}
	if stored.Passed == nil || !*stored.Passed {
		t.Error("stored attempt not marked passed")
	}
	if stored.TimedOut {
		t.Error("manual submit must not be marked timed out")
	}
	if len(responses) != 3 {
		t.Errorf("responses = %d, want 3", len(responses))
	}

	// 通过 + 满分：XP = 25（通过奖励）+ 30（首次通过成就）+ 80（满分成就）
	profile, err := env.users.FindByID(user.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if profile.XP != 25+30+80 {
		t.Errorf("XP = %d, want %d", profile.XP, 25+30+80)
	}
}

func TestSubmitTwice(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	course := env.createCourse(t, 1)
	quiz := env.createQuiz(t, course.ID, nil)

	start, err := env.attempt.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	if _, err := env.attempt.Submit(user.ID, start.Attempt.ID); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// 已终结的作答继续提交是状态错误
	if _, err := env.attempt.Submit(user.ID, start.Attempt.ID); !errors.Is(err, util.ErrInvalidAttemptState) {
		t.Fatalf("second submit err = %v, want ErrInvalidAttemptState", err)
	}

	// 提交后继续作答同理
	qid := quiz.Questions[0].ID
	if err := env.attempt.RecordAnswer(user.ID, start.Attempt.ID, qid, []uint{optionID(quiz, 0, 0)}); !errors.Is(err, util.ErrInvalidAttemptState) {
		t.Fatalf("answer after submit err = %v, want ErrInvalidAttemptState", err)
	}

	// 完全不存在的作答仍然是 404 语义
	if _, err := env.attempt.Submit(user.ID, 9999); !errors.Is(err, util.ErrAttemptNotFound) {
		t.Fatalf("unknown attempt err = %v, want ErrAttemptNotFound", err)
	}

	// 单次作答策略：完成后不允许再开
	if _, err := env.attempt.StartAttempt(user.ID, quiz.ID); !errors.Is(err, util.ErrAttemptAlreadyCompleted) {
		t.Fatalf("restart err = %v, want ErrAttemptAlreadyCompleted", err)
	}
}

func TestStartAttemptWhileInProgress(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	course := env.createCourse(t, 1)
	quiz := env.createQuiz(t, course.ID, nil)

	if _, err := env.attempt.StartAttempt(user.ID, quiz.ID); err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	if _, err := env.attempt.StartAttempt(user.ID, quiz.ID); !errors.Is(err, util.ErrAttemptInProgress) {
		t.Fatalf("err = %v, want ErrAttemptInProgress", err)
	}
}

func TestRecordAnswerValidation(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	stranger := env.createUser(t)
	course := env.createCourse(t, 1)
	quiz := env.createQuiz(t, course.ID, nil)

	start, err := env.attempt.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	attemptID := start.Attempt.ID
	singleQ := quiz.Questions[0].ID
	multiQ := quiz.Questions[2].ID

	if err := env.attempt.RecordAnswer(user.ID, attemptID, 9999, []uint{1}); !errors.Is(err, util.ErrQuestionNotFound) {
		t.Errorf("unknown question: err = %v, want ErrQuestionNotFound", err)
	}
	if err := env.attempt.RecordAnswer(user.ID, attemptID, singleQ, []uint{9999}); !errors.Is(err, util.ErrInvalidSelection) {
		t.Errorf("foreign option: err = %v, want ErrInvalidSelection", err)
	}
	two := []uint{optionID(quiz, 0, 0), optionID(quiz, 0, 1)}
	if err := env.attempt.RecordAnswer(user.ID, attemptID, singleQ, two); !errors.Is(err, util.ErrInvalidSelection) {
		t.Errorf("two options on single choice: err = %v, want ErrInvalidSelection", err)
	}
	if err := env.attempt.RecordAnswer(stranger.ID, attemptID, singleQ, []uint{optionID(quiz, 0, 0)}); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("stranger: err = %v, want ErrPermissionDenied", err)
	}

	// 多选接受空集，重复选项会被去重
	if err := env.attempt.RecordAnswer(user.ID, attemptID, multiQ, []uint{}); err != nil {
		t.Errorf("empty multi selection: %v", err)
	}
	dup := []uint{optionID(quiz, 2, 0), optionID(quiz, 2, 0)}
	if err := env.attempt.RecordAnswer(user.ID, attemptID, multiQ, dup); err != nil {
		t.Errorf("duplicate selection: %v", err)
	}

	// 后写覆盖先写
	if err := env.attempt.RecordAnswer(user.ID, attemptID, singleQ, []uint{optionID(quiz, 0, 1)}); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if err := env.attempt.RecordAnswer(user.ID, attemptID, singleQ, []uint{optionID(quiz, 0, 0)}); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	result, err := env.attempt.Submit(user.ID, attemptID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got := result.Score.PerQuestion[0].PointsEarned; got != 10 {
		t.Errorf("last write should win: PointsEarned = %v, want 10", got)
	}
}

func TestTimeoutFinalizesAttempt(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	course := env.createCourse(t, 1)
	limit := 1
	quiz := env.createQuiz(t, course.ID, &limit)

	start, err := env.attempt.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	if start.CountdownSeconds == nil || *start.CountdownSeconds != 60 {
		t.Fatalf("CountdownSeconds = %v, want 60", start.CountdownSeconds)
	}
	attemptID := start.Attempt.ID

	// 答对第一题后让时钟走完
	if err := env.attempt.RecordAnswer(user.ID, attemptID, quiz.Questions[0].ID, []uint{optionID(quiz, 0, 0)}); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	env.attempt.mu.Lock()
	*env.attempt.sessions[attemptID].remaining = 1
	env.attempt.mu.Unlock()

	env.attempt.Tick()

	stored, _, err := env.attempt.GetAttempt(user.ID, attemptID)
	if err != nil {
		t.Fatalf("GetAttempt: %v", err)
	}
	if !stored.Completed || !stored.TimedOut {
		t.Fatalf("attempt = %+v, want completed and timed out", stored)
	}
	// 10/30 = 33%
	if stored.Score == nil || *stored.Score != 33 {
		t.Errorf("score = %v, want 33", stored.Score)
	}

	// 超时后交卷必须被拒绝
	if _, err := env.attempt.Submit(user.ID, attemptID); !errors.Is(err, util.ErrInvalidAttemptState) {
		t.Errorf("submit after timeout: err = %v, want ErrInvalidAttemptState", err)
	}

	// 后续 tick 对已终结的作答无影响
	env.attempt.Tick()
	again, _, err := env.attempt.GetAttempt(user.ID, attemptID)
	if err != nil {
		t.Fatalf("GetAttempt: %v", err)
	}
	if *again.Score != *stored.Score {
		t.Errorf("score changed after extra tick: %d -> %d", *stored.Score, *again.Score)
	}
}

func TestTickIgnoresUntimedSessions(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	course := env.createCourse(t, 1)
	quiz := env.createQuiz(t, course.ID, nil)

	start, err := env.attempt.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}

	for i := 0; i < 100; i++ {
		env.attempt.Tick()
	}

	remaining, err := env.attempt.RemainingSeconds(user.ID, start.Attempt.ID)
	if err != nil {
		t.Fatalf("RemainingSeconds: %v", err)
	}
	if remaining != nil {
		t.Errorf("remaining = %v, want nil", *remaining)
	}
	if _, err := env.attempt.Submit(user.ID, start.Attempt.ID); err != nil {
		t.Errorf("untimed session must stay open: %v", err)
	}
}

func TestReattachOrphanedAttempt(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	course := env.createCourse(t, 1)
	limit := 10
	quiz := env.createQuiz(t, course.ID, &limit)

	// 模拟进程重启遗留的开放行：3 分钟前开始
	orphan := &model.Attempt{
		QuizID:    quiz.ID,
		UserID:    user.ID,
		StartedAt: time.Now().Add(-3 * time.Minute),
	}
	if err := env.attempts.Create(orphan); err != nil {
		t.Fatalf("create orphan: %v", err)
	}

	start, err := env.attempt.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	if start.Attempt.ID != orphan.ID {
		t.Fatalf("attempt ID = %d, want reattached %d", start.Attempt.ID, orphan.ID)
	}
	if start.CountdownSeconds == nil {
		t.Fatal("CountdownSeconds = nil, want deducted remainder")
	}
	// 10 分钟限时扣掉约 3 分钟
	if *start.CountdownSeconds > 7*60 || *start.CountdownSeconds < 7*60-5 {
		t.Errorf("CountdownSeconds = %d, want ~%d", *start.CountdownSeconds, 7*60)
	}
}

func TestAttemptReference(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	course := env.createCourse(t, 1)
	quiz := env.createQuiz(t, course.ID, nil)

	start, err := env.attempt.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	if _, err := uuid.Parse(start.Attempt.Reference); err != nil {
		t.Fatalf("reference %q is not a UUID: %v", start.Attempt.Reference, err)
	}

	// 凭据号落库且终结后不变
	if _, err := env.attempt.Submit(user.ID, start.Attempt.ID); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	stored, _, err := env.attempt.GetAttempt(user.ID, start.Attempt.ID)
	if err != nil {
		t.Fatalf("GetAttempt: %v", err)
	}
	if stored.Reference != start.Attempt.Reference {
		t.Errorf("reference changed: %q -> %q", start.Attempt.Reference, stored.Reference)
	}
}

func TestListQuizAttempts(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	course := env.createCourse(t, 1)
	quiz := env.createQuiz(t, course.ID, nil)

	start, err := env.attempt.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	if _, err := env.attempt.Submit(user.ID, start.Attempt.ID); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	attempts, err := env.attempt.ListQuizAttempts(quiz.ID)
	if err != nil {
		t.Fatalf("ListQuizAttempts: %v", err)
	}
	if len(attempts) != 1 || attempts[0].UserID != user.ID {
		t.Errorf("attempts = %+v, want single attempt by user %d", attempts, user.ID)
	}

	if _, err := env.attempt.ListQuizAttempts(9999); !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("err = %v, want ErrQuizNotFound", err)
	}
}

func TestGetAttemptOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t)
	stranger := env.createUser(t)
	course := env.createCourse(t, 1)
	quiz := env.createQuiz(t, course.ID, nil)

	start, err := env.attempt.StartAttempt(owner.ID, quiz.ID)
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	if _, err := env.attempt.Submit(owner.ID, start.Attempt.ID); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, _, err := env.attempt.GetAttempt(stranger.ID, start.Attempt.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
}
