package testutil

import (
	"context"
	"time"

	"github.com/questx-lab/questboard/config"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/migration"
	"github.com/questx-lab/questboard/pkg/logger"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MockContext returns a context holding test configs, a no-op logger and a migrated in-memory
// sqlite database.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	// Every connection to :memory: opens a distinct database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := config.Default()
	cfg.Auth.TokenSecret = "secret"
	cfg.Auth.TokenExpiration = time.Minute
	cfg.Quest.CreatorRoleIDs = []string{"creator"}
	cfg.Quest.ManagerRoleIDs = []string{"manager"}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewNopLogger())
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithAccessToken(token model.AccessToken) context.Context {
	return xcontext.WithAccessToken(MockContext(), token)
}
