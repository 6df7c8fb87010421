package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/questx-lab/questboard/internal/middleware"
	"github.com/questx-lab/questboard/pkg/router"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"
)

func (s *srv) startApi(ct *cli.Context) error {
	if err := s.loadConfig(ct); err != nil {
		return err
	}

	if err := s.loadLogger(); err != nil {
		return err
	}
	defer s.close()

	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.loadRedis(); err != nil {
		return err
	}

	if err := s.loadPublisher(); err != nil {
		return err
	}

	s.loadRepos()
	if err := s.loadDomains(); err != nil {
		return err
	}

	s.loadRouter()

	cfg := s.configs.ApiServer
	s.server = &http.Server{
		Addr:              cfg.Address(),
		Handler:           middleware.Cors(cfg.AllowedOrigins, s.router.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ct.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(s.ctx, 10*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot shutdown server: %v", err)
		}
	}()

	xcontext.Logger(s.ctx).Infof("Starting server on %s", cfg.Address())
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter() {
	cfg := s.configs.ApiServer

	s.router = router.New(s.ctx)
	s.router.Use(
		middleware.Logger(s.ctx),
		middleware.RateLimit(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	)

	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate(s.tokenEngine))
	{
		// Quest API
		router.GET(authRouter, "/getQuest", s.questDomain.Get)
		router.GET(authRouter, "/getListQuest", s.questDomain.GetList)
		router.GET(authRouter, "/getMyQuests", s.questDomain.GetMyQuests)
		router.POST(authRouter, "/createQuest", s.questDomain.Create)
		router.POST(authRouter, "/acceptQuest", s.questDomain.Accept)
		router.POST(authRouter, "/completeQuest", s.questDomain.Complete)
		router.POST(authRouter, "/reviewQuest", s.questDomain.Review)
		router.POST(authRouter, "/cancelQuest", s.questDomain.Cancel)
		router.POST(authRouter, "/deleteQuest", s.questDomain.Delete)

		// Statistic API
		router.GET(authRouter, "/getUserStats", s.statisticDomain.GetUserStats)
		router.GET(authRouter, "/getLeaderboard", s.statisticDomain.GetLeaderboard)
		router.GET(authRouter, "/getGuildStats", s.statisticDomain.GetGuildStats)
	}
}
