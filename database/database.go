package database

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"codecrew/models"
)

// Open connects to Postgres. SQL statements are traced through l at debug
// level; slow queries and errors are reported at warn level.
func Open(ctx context.Context, dsn string, l *log.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: NewLogger(l),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	// Order matters: teams and projects reference users.
	return db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Project{},
	)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewLogger adapts l to gorm's logger interface.
func NewLogger(l *log.Logger) logger.Interface {
	level := logger.Warn
	if l.GetLevel() <= log.DebugLevel {
		level = logger.Info
	}
	writer := l.WithPrefix("gorm").StandardLog(log.StandardLogOptions{ForceLevel: log.DebugLevel})
	if level == logger.Warn {
		writer = l.WithPrefix("gorm").StandardLog(log.StandardLogOptions{ForceLevel: log.WarnLevel})
	}
	return logger.New(writer, logger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
