package main

import (
	"github.com/questx-lab/questboard/migration"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(ct *cli.Context) error {
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

	if err := migration.AutoMigrate(s.ctx); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Migrated database %s", s.configs.Database.Driver)
	return nil
}
