package service

import (
	"errors"
	"testing"

	"learnsphere_backend/internal/util"
)

func TestLessonProgressAggregation(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	course := env.createCourse(t, 4)
	lessons := course.Lessons

	// 第一课完成：1/4 = 25%
	cp, err := env.progress.SetLessonProgress(user.ID, lessons[0].ID, course.ID, 100)
	if err != nil {
		t.Fatalf("SetLessonProgress: %v", err)
	}
	if cp.Percentage != 25 {
		t.Errorf("Percentage = %d, want 25", cp.Percentage)
	}
	if cp.Completed {
		t.Error("course marked completed at 25%")
	}

	// 第三课只看了一半：不计入课程百分比
	cp, err = env.progress.SetLessonProgress(user.ID, lessons[2].ID, course.ID, 50)
	if err != nil {
		t.Fatalf("SetLessonProgress: %v", err)
	}
	if cp.Percentage != 25 {
		t.Errorf("half-done lesson must contribute 0: Percentage = %d, want 25", cp.Percentage)
	}

	// 全部完成：100%，课程置位 completed
	for _, lesson := range lessons {
		cp, err = env.progress.SetLessonProgress(user.ID, lesson.ID, course.ID, 100)
		if err != nil {
			t.Fatalf("SetLessonProgress: %v", err)
		}
	}
	if cp.Percentage != 100 || !cp.Completed {
		t.Fatalf("Percentage = %d, Completed = %v, want 100/true", cp.Percentage, cp.Completed)
	}
	if cp.CompletedAt == nil {
		t.Fatal("CompletedAt not set on completion")
	}

	// 重复完成同一课：聚合不变，完成时间不被改写
	completedAt := *cp.CompletedAt
	cp, err = env.progress.SetLessonProgress(user.ID, lessons[0].ID, course.ID, 100)
	if err != nil {
		t.Fatalf("SetLessonProgress: %v", err)
	}
	if cp.Percentage != 100 || !cp.Completed {
		t.Errorf("repeat completion changed aggregate: %+v", cp)
	}
	if cp.CompletedAt == nil || !cp.CompletedAt.Equal(completedAt) {
		t.Errorf("CompletedAt changed: %v -> %v", completedAt, cp.CompletedAt)
	}
}

func TestLessonProgressClamp(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	course := env.createCourse(t, 2)
	lessonID := course.Lessons[0].ID

	if _, err := env.progress.SetLessonProgress(user.ID, lessonID, course.ID, 150); err != nil {
		t.Fatalf("SetLessonProgress: %v", err)
	}
	lp, err := env.progressDB.FindLessonProgress(user.ID, lessonID)
	if err != nil {
		t.Fatalf("FindLessonProgress: %v", err)
	}
	if lp.Percentage != 100 || !lp.Completed {
		t.Errorf("overshoot not clamped: %+v", lp)
	}

	if _, err := env.progress.SetLessonProgress(user.ID, course.Lessons[1].ID, course.ID, -5); err != nil {
		t.Fatalf("SetLessonProgress: %v", err)
	}
	lp, err = env.progressDB.FindLessonProgress(user.ID, course.Lessons[1].ID)
	if err != nil {
		t.Fatalf("FindLessonProgress: %v", err)
	}
	if lp.Percentage != 0 || lp.Completed {
		t.Errorf("undershoot not clamped: %+v", lp)
	}
}

func TestLessonProgressUnknownLesson(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	course := env.createCourse(t, 1)
	other := env.createCourse(t, 1)

	if _, err := env.progress.SetLessonProgress(user.ID, 9999, course.ID, 50); !errors.Is(err, util.ErrLessonNotFound) {
		t.Errorf("err = %v, want ErrLessonNotFound", err)
	}

	// 课时属于别的课程也按未找到处理
	if _, err := env.progress.SetLessonProgress(user.ID, other.Lessons[0].ID, course.ID, 50); !errors.Is(err, util.ErrLessonNotFound) {
		t.Errorf("err = %v, want ErrLessonNotFound", err)
	}
}

func TestLessonCompletionFiresAchievementOnce(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	course := env.createCourse(t, 3)
	lessonID := course.Lessons[0].ID

	// 同一课时重复上报完成：完成事件只在首次跃迁时触发一次
	if _, err := env.progress.SetLessonProgress(user.ID, lessonID, course.ID, 100); err != nil {
		t.Fatalf("SetLessonProgress: %v", err)
	}
	if _, err := env.progress.SetLessonProgress(user.ID, lessonID, course.ID, 100); err != nil {
		t.Fatalf("SetLessonProgress: %v", err)
	}

	statuses, err := env.achievement.GetUserAchievements(user.ID)
	if err != nil {
		t.Fatalf("GetUserAchievements: %v", err)
	}
	for _, s := range statuses {
		if s.Code == "ten_lessons" && s.Progress != 1 {
			t.Errorf("ten_lessons progress = %d, want 1 (no double count)", s.Progress)
		}
		if s.Code == "first_lesson" && !s.Completed {
			t.Error("first_lesson should be unlocked")
		}
	}
}

func TestGetProgressSummary(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	course := env.createCourse(t, 2)
	quiz := env.createQuiz(t, course.ID, nil)

	if _, err := env.progress.SetLessonProgress(user.ID, course.Lessons[0].ID, course.ID, 100); err != nil {
		t.Fatalf("SetLessonProgress: %v", err)
	}

	start, err := env.attempt.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	answers := map[uint][]uint{
		quiz.Questions[0].ID: {optionID(quiz, 0, 0)},
		quiz.Questions[1].ID: {optionID(quiz, 1, 0)},
		quiz.Questions[2].ID: {optionID(quiz, 2, 0), optionID(quiz, 2, 1)},
	}
	for qid, ids := range answers {
		if err := env.attempt.RecordAnswer(user.ID, start.Attempt.ID, qid, ids); err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
	}
	if _, err := env.attempt.Submit(user.ID, start.Attempt.ID); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	summary, err := env.progress.GetProgressSummary(user.ID)
	if err != nil {
		t.Fatalf("GetProgressSummary: %v", err)
	}
	if len(summary.Courses) != 1 || summary.Courses[0].Percentage != 50 {
		t.Errorf("courses = %+v, want one course at 50%%", summary.Courses)
	}
	if summary.QuizStats.TotalAttempts != 1 || summary.QuizStats.Passed != 1 {
		t.Errorf("quiz stats = %+v, want 1 attempt, 1 passed", summary.QuizStats)
	}
	if summary.QuizStats.AverageScore != 100 {
		t.Errorf("average score = %v, want 100", summary.QuizStats.AverageScore)
	}
	if summary.TotalXP == 0 {
		t.Error("TotalXP = 0, want XP from pass and achievements")
	}
	if len(summary.Achievements) == 0 {
		t.Error("achievements missing from summary")
	}
}
