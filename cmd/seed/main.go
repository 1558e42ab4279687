package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"librarymanager/internal/apperr"
	"librarymanager/internal/authn"
	"librarymanager/internal/config"
	"librarymanager/internal/platform/database"
	"librarymanager/internal/platform/logging"
	"librarymanager/internal/savedbook"
)

var demoBooks = []savedbook.CreateInput{
	{ExternalID: "B1hSG45JCX4C", Title: "Dune", Authors: []string{"Frank Herbert"}, Description: "Desert planet politics and prophecy."},
	{ExternalID: "s1gVAAAAYAAJ", Title: "Pride and Prejudice", Authors: []string{"Jane Austen"}},
	{ExternalID: "wrOQLV6xB-wC", Title: "Middlemarch", Authors: []string{"George Eliot"}},
	{ExternalID: "kotPYEqx7kMC", Title: "1984", Authors: []string{"George Orwell"}},
	{ExternalID: "yl4dILkcqm4C", Title: "The Left Hand of Darkness", Authors: []string{"Ursula K. Le Guin"}},
}

func main() {
	config.LoadEnvFiles()
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var owner string
	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Save a handful of demo books for one owner",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load("")
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.LogLevel, cfg.IsDevelopment())
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			store, closeStore, err := openBookStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			created, skipped, err := seed(cmd.Context(), savedbook.NewService(store), owner, demoBooks)
			if err != nil {
				return err
			}
			log.Info("seed complete", zap.String("owner", owner), zap.Int("created", created), zap.Int("skipped", skipped))
			fmt.Fprintf(cmd.OutOrStdout(), "created %d, skipped %d\n", created, skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "owner id to seed books for")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

// seed saves books for owner. Books the owner already has are skipped.
func seed(ctx context.Context, svc *savedbook.Service, owner string, books []savedbook.CreateInput) (created, skipped int, err error) {
	caller := authn.Identity{OwnerID: owner}
	for _, in := range books {
		_, err := svc.Create(ctx, caller, in)
		switch {
		case err == nil:
			created++
		case apperr.KindOf(err) == apperr.KindConflict:
			skipped++
		default:
			return created, skipped, errors.Wrapf(err, "seed %q", in.Title)
		}
	}
	return created, skipped, nil
}

func openBookStore(ctx context.Context, cfg *config.Config) (savedbook.Store, func(), error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath, nil)
		if err != nil {
			return nil, nil, err
		}
		repo := savedbook.NewSQLiteRepo(db, cfg.DBTimeout)
		if err := repo.CreateSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repo, func() { _ = db.Close() }, nil
	case config.DriverPostgres:
		pool, err := database.OpenPostgres(ctx, cfg.DBDSN, cfg.DBTimeout)
		if err != nil {
			return nil, nil, err
		}
		return savedbook.NewPostgresRepo(pool, cfg.DBTimeout), pool.Close, nil
	default:
		return nil, nil, errors.Wrapf(config.ErrUnknownDriver, "got %q", cfg.DBDriver)
	}
}
