package db

import (
	"fmt"
	"log"

	"github.com/jossyfresh/EduAssist/internal/model"
	"github.com/jossyfresh/EduAssist/pkg/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB opens the configured database and runs auto-migration.
// SQLite is the default (and what tests use); MySQL is selectable for
// deployments that outgrow a single file.
func InitDB(cfg config.DatabaseConfig) error {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(DB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

// Migrate runs auto-migration for every persisted model.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Content{},
		&model.LearningPath{},
		&model.LearningPathStep{},
		&model.UserProgress{},
		&model.Quiz{},
		&model.QuizAttempt{},
		&model.Flashcard{},
		&model.Exam{},
		&model.ExamAttempt{},
		&model.ChatGroup{},
		&model.GroupMember{},
		&model.Message{},
		&model.MessageRead{},
		&model.YouTubeContent{},
		&model.YouTubeChatMessage{},
	)
}
