package service

import (
	"testing"
	"time"

	"learnsphere_backend/internal/model"
)

func findStatus(t *testing.T, statuses []AchievementStatus, code string) AchievementStatus {
	t.Helper()
	for _, s := range statuses {
		if s.Code == code {
			return s
		}
	}
	t.Fatalf("achievement %q not found", code)
	return AchievementStatus{}
}

func TestHandleEventProgression(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	for i := 0; i < 3; i++ {
		if err := env.achievement.HandleEvent(user.ID, model.EventLessonCompleted, 1); err != nil {
			t.Fatalf("HandleEvent: %v", err)
		}
	}

	statuses, err := env.achievement.GetUserAchievements(user.ID)
	if err != nil {
		t.Fatalf("GetUserAchievements: %v", err)
	}

	first := findStatus(t, statuses, "first_lesson")
	if !first.Completed || first.Progress != 1 {
		t.Errorf("first_lesson = %+v, want completed with progress 1", first)
	}

	ten := findStatus(t, statuses, "ten_lessons")
	if ten.Completed || ten.Progress != 3 {
		t.Errorf("ten_lessons = %+v, want progress 3, not completed", ten)
	}

	// 不相关事件不受影响
	quizRookie := findStatus(t, statuses, "first_quiz_pass")
	if quizRookie.Progress != 0 {
		t.Errorf("first_quiz_pass progress = %d, want 0", quizRookie.Progress)
	}
}

func TestHandleEventCapsAndFreezesCompletion(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	for i := 0; i < 12; i++ {
		if err := env.achievement.HandleEvent(user.ID, model.EventLessonCompleted, 1); err != nil {
			t.Fatalf("HandleEvent: %v", err)
		}
	}

	statuses, err := env.achievement.GetUserAchievements(user.ID)
	if err != nil {
		t.Fatalf("GetUserAchievements: %v", err)
	}
	ten := findStatus(t, statuses, "ten_lessons")
	if ten.Progress != 10 {
		t.Errorf("progress = %d, want capped at 10", ten.Progress)
	}
	if !ten.Completed || ten.CompletedAt == nil {
		t.Fatalf("ten_lessons = %+v, want completed with timestamp", ten)
	}
	unlockedAt := *ten.CompletedAt

	// 完成后的事件完全是 no-op，时间戳不被改写
	time.Sleep(5 * time.Millisecond)
	if err := env.achievement.HandleEvent(user.ID, model.EventLessonCompleted, 1); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	statuses, err = env.achievement.GetUserAchievements(user.ID)
	if err != nil {
		t.Fatalf("GetUserAchievements: %v", err)
	}
	ten = findStatus(t, statuses, "ten_lessons")
	if !ten.CompletedAt.Equal(unlockedAt) {
		t.Errorf("CompletedAt changed: %v -> %v", unlockedAt, ten.CompletedAt)
	}
}

func TestHandleEventAwardsXPOnce(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	for i := 0; i < 3; i++ {
		if err := env.achievement.HandleEvent(user.ID, model.EventPerfectScore, 1); err != nil {
			t.Fatalf("HandleEvent: %v", err)
		}
	}

	profile, err := env.users.FindByID(user.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	// perfect_score 奖励 80，只应发放一次
	if profile.XP != 80 {
		t.Errorf("XP = %d, want 80", profile.XP)
	}
}

func TestHandleEventIgnoresNonPositiveDelta(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	if err := env.achievement.HandleEvent(user.ID, model.EventLessonCompleted, 0); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if err := env.achievement.HandleEvent(user.ID, model.EventLessonCompleted, -3); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	statuses, err := env.achievement.GetUserAchievements(user.ID)
	if err != nil {
		t.Fatalf("GetUserAchievements: %v", err)
	}
	if got := findStatus(t, statuses, "first_lesson").Progress; got != 0 {
		t.Errorf("progress = %d, want 0", got)
	}
}

func TestSyncStreakIsMonotonic(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	check := func(want int) {
		t.Helper()
		statuses, err := env.achievement.GetUserAchievements(user.ID)
		if err != nil {
			t.Fatalf("GetUserAchievements: %v", err)
		}
		if got := findStatus(t, statuses, "week_streak").Progress; got != want {
			t.Errorf("week_streak progress = %d, want %d", got, want)
		}
	}

	if err := env.achievement.SyncStreak(user.ID, 5); err != nil {
		t.Fatalf("SyncStreak: %v", err)
	}
	check(5)

	// streak 中断不回退已记录的最大值
	if err := env.achievement.SyncStreak(user.ID, 2); err != nil {
		t.Fatalf("SyncStreak: %v", err)
	}
	check(5)

	if err := env.achievement.SyncStreak(user.ID, 7); err != nil {
		t.Fatalf("SyncStreak: %v", err)
	}
	statuses, err := env.achievement.GetUserAchievements(user.ID)
	if err != nil {
		t.Fatalf("GetUserAchievements: %v", err)
	}
	week := findStatus(t, statuses, "week_streak")
	if !week.Completed || week.Progress != 7 {
		t.Errorf("week_streak = %+v, want completed at 7", week)
	}
}
