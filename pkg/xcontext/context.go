package xcontext

import (
	"context"

	"github.com/questx-lab/questboard/config"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey     struct{}
	loggerKey      struct{}
	dbKey          struct{}
	accessTokenKey struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		return config.Default()
	}

	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// Logger returns the logger of ctx, or a no-op logger if none was attached.
func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.NewNopLogger()
	}

	return l
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the database handle of ctx. Inside Transaction this is the transaction.
func DB(ctx context.Context) *gorm.DB {
	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		return nil
	}

	return db.WithContext(ctx)
}

// Transaction runs fn with a context whose DB is a transaction. The transaction commits when
// fn returns nil and rolls back otherwise.
func Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		return gorm.ErrInvalidDB
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithDB(ctx, tx))
	})
}

func WithAccessToken(ctx context.Context, token model.AccessToken) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

func AccessToken(ctx context.Context) (model.AccessToken, bool) {
	token, ok := ctx.Value(accessTokenKey{}).(model.AccessToken)
	return token, ok
}
