package database

import (
	"fmt"
	"learnsphere_backend/internal/config"
	"learnsphere_backend/internal/model"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true, // 唯一索引冲突统一翻译为 gorm.ErrDuplicatedKey
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate 执行表结构迁移并插入默认成就定义
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Lesson{},
		&model.Quiz{},
		&model.Question{},
		&model.Option{},
		&model.Attempt{},
		&model.Response{},
		&model.LessonProgress{},
		&model.CourseProgress{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.Checkin{},
	)
	if err != nil {
		return err
	}

	// 默认成就定义（为空时插入）
	var count int64
	db.Model(&model.Achievement{}).Count(&count)
	if count == 0 {
		defaults := []model.Achievement{
			{Code: "first_lesson", Name: "First Steps", Icon: "footprints", Event: model.EventLessonCompleted, Required: 1, XPReward: 20},
			{Code: "ten_lessons", Name: "Dedicated Learner", Icon: "books", Event: model.EventLessonCompleted, Required: 10, XPReward: 100},
			{Code: "first_course", Name: "Course Conqueror", Icon: "trophy", Event: model.EventCourseCompleted, Required: 1, XPReward: 200},
			{Code: "first_quiz_pass", Name: "Quiz Rookie", Icon: "check", Event: model.EventQuizPassed, Required: 1, XPReward: 30},
			{Code: "five_quiz_passes", Name: "Quiz Veteran", Icon: "medal", Event: model.EventQuizPassed, Required: 5, XPReward: 150},
			{Code: "perfect_score", Name: "Perfectionist", Icon: "star", Event: model.EventPerfectScore, Required: 1, XPReward: 80},
			{Code: "week_streak", Name: "Consistency", Icon: "flame", Event: model.EventLoginStreak, Required: 7, XPReward: 70},
		}
		for _, a := range defaults {
			db.Create(&a)
		}
	}

	return nil
}
