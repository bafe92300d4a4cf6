package database

import (
	"testing"

	"learnsphere_backend/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// 测试套件跑在 sqlite 上，迁移必须不依赖 MySQL 方言
func TestMigrateOnSQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:migrate_test?mode=memory&cache=shared"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// 建表后立即可写，时间戳字段由 gorm 填充
	u := &model.User{Name: "Migration Check", Email: "migrate@example.com", Password: "x"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user after migrate: %v", err)
	}
	if u.LastSeen.IsZero() || u.LastLogin.IsZero() {
		t.Errorf("lastLogin/lastSeen not set on create: %v / %v", u.LastLogin, u.LastSeen)
	}

	// 默认成就定义已播种
	var count int64
	if err := db.Model(&model.Achievement{}).Count(&count).Error; err != nil {
		t.Fatalf("count achievements: %v", err)
	}
	if count != 7 {
		t.Errorf("seeded achievements = %d, want 7", count)
	}

	// 迁移可重入，且不会重复播种
	if err := Migrate(db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	db.Model(&model.Achievement{}).Count(&count)
	if count != 7 {
		t.Errorf("achievements after second migrate = %d, want 7", count)
	}
}
