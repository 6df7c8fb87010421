package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/questx-lab/questboard/config"
	"github.com/questx-lab/questboard/internal/common"
	"github.com/questx-lab/questboard/internal/domain"
	"github.com/questx-lab/questboard/internal/domain/lifecycle"
	"github.com/questx-lab/questboard/internal/domain/statistic"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/internal/repository"
	"github.com/questx-lab/questboard/pkg/authenticator"
	"github.com/questx-lab/questboard/pkg/dateutil"
	"github.com/questx-lab/questboard/pkg/idutil"
	"github.com/questx-lab/questboard/pkg/kafka"
	"github.com/questx-lab/questboard/pkg/logger"
	"github.com/questx-lab/questboard/pkg/pubsub"
	"github.com/questx-lab/questboard/pkg/router"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"github.com/questx-lab/questboard/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	ctx     context.Context
	app     *cli.App
	configs config.Configs
	logger  interface {
		logger.Logger
		Sync() error
	}

	questRepo         repository.QuestRepository
	questProgressRepo repository.QuestProgressRepository
	userStatsRepo     repository.UserStatsRepository

	redisClient xredis.Client
	publisher   pubsub.Publisher
	closers     []func() error

	tokenEngine authenticator.TokenEngine[model.AccessToken]

	ledger statistic.Ledger
	ranker statistic.Ranker
	engine lifecycle.Engine

	questDomain     domain.QuestDomain
	statisticDomain domain.StatisticDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(ct *cli.Context) error {
	cfg, err := config.Load(ct.String("config"))
	if err != nil {
		return err
	}

	s.configs = cfg
	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
	return nil
}

func (s *srv) loadLogger() error {
	l, err := logger.NewLogger(s.configs.Log.Level)
	if err != nil {
		return err
	}

	s.logger = l
	s.ctx = xcontext.WithLogger(s.ctx, l)
	return nil
}

func (s *srv) newDatabase() (*gorm.DB, error) {
	gormConfig := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	switch s.configs.Database.Driver {
	case "mysql":
		return gorm.Open(mysql.New(mysql.Config{
			DSN:                       s.configs.Database.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		}), gormConfig)

	case "sqlite":
		db, err := gorm.Open(sqlite.Open(s.configs.Database.File), gormConfig)
		if err != nil {
			return nil, err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}

		// sqlite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %s", s.configs.Database.Driver)
	}
}

func (s *srv) loadDatabase() error {
	db, err := s.newDatabase()
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	return nil
}

func (s *srv) loadRedis() error {
	client, err := xredis.NewClient(s.ctx, s.configs.Redis.Addr)
	if err != nil {
		return fmt.Errorf("cannot connect to redis: %w", err)
	}

	s.redisClient = client
	s.closers = append(s.closers, client.Close)
	return nil
}

func (s *srv) loadPublisher() error {
	if !s.configs.Kafka.Enable {
		s.publisher = pubsub.NewNopPublisher()
		return nil
	}

	publisher, err := kafka.NewPublisher(s.configs.Kafka.ClientID, s.configs.Kafka.Addrs)
	if err != nil {
		return fmt.Errorf("cannot create kafka publisher: %w", err)
	}

	s.publisher = publisher
	s.closers = append(s.closers, func() error { return publisher.Stop(s.ctx) })
	return nil
}

func (s *srv) loadRepos() {
	s.questRepo = repository.NewQuestRepository()
	s.questProgressRepo = repository.NewQuestProgressRepository()
	s.userStatsRepo = repository.NewUserStatsRepository()
}

func (s *srv) loadDomains() error {
	idGenerator, err := idutil.NewSnowflakeGenerator(s.configs.Quest.NodeID)
	if err != nil {
		return err
	}

	s.tokenEngine = authenticator.NewTokenEngine[model.AccessToken](s.configs.Auth)
	s.ledger = statistic.NewLedger(s.questRepo, s.userStatsRepo, s.redisClient)
	s.ranker = statistic.NewRanker(s.userStatsRepo, s.redisClient, s.configs.Redis.LeaderboardTTL)
	s.engine = lifecycle.NewEngine(
		s.questRepo,
		s.questProgressRepo,
		s.ledger,
		common.NewRolePermissionOracle(s.configs.Quest),
		s.publisher,
		idGenerator,
		dateutil.NewRealClock(),
		lifecycle.CooldownPolicy{Cooldown: s.configs.Quest.RetryCooldown},
	)

	s.questDomain = domain.NewQuestDomain(s.engine)
	s.statisticDomain = domain.NewStatisticDomain(s.ledger, s.ranker)
	return nil
}

func (s *srv) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot close resource: %v", err)
		}
	}

	if s.logger != nil {
		_ = s.logger.Sync()
	}
}
