package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/andresuchdata/agarbatti/backend-go/internal/bootstrap"
	"github.com/andresuchdata/agarbatti/backend-go/internal/config"
	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
	"github.com/andresuchdata/agarbatti/backend-go/internal/repository"
	"github.com/andresuchdata/agarbatti/backend-go/internal/repository/local"
	"github.com/andresuchdata/agarbatti/backend-go/internal/repository/sqlstore"
	"github.com/andresuchdata/agarbatti/backend-go/internal/service"
	"github.com/andresuchdata/agarbatti/backend-go/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

type storeKey struct{}

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db-url",
		Usage:   "Postgres connection string; falls back to the DB_* settings",
		EnvVars: []string{"DATABASE_URL"},
	}
}

func openStore(c *cli.Context) error {
	store, err := bootstrap.OpenStore(c.Context, config.Load())
	if err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}
	c.Context = context.WithValue(c.Context, storeKey{}, store)
	return nil
}

func closeStore(c *cli.Context) error {
	if store, ok := c.Context.Value(storeKey{}).(repository.Store); ok && store != nil {
		return store.Close(c.Context)
	}
	return nil
}

func storeFrom(c *cli.Context) repository.Store {
	return c.Context.Value(storeKey{}).(repository.Store)
}

func main() {
	cfg := config.Load()
	logger.SetFormat(cfg.Log.Format)
	logger.SetLevel(cfg.Log.Level)

	app := &cli.App{
		Name:  "seed",
		Usage: "Manage the agarbatti record store",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Apply the SQL schema",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runMigrate,
			},
			{
				Name:   "seed",
				Usage:  "Load the default dataset into an empty store",
				Before: openStore,
				After:  closeStore,
				Action: runSeed,
			},
			{
				Name:  "export",
				Usage: "Write the full dataset as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Usage: "Output file, - for stdout", Value: "-"},
				},
				Before: openStore,
				After:  closeStore,
				Action: runExport,
			},
			{
				Name:  "import",
				Usage: "Replace the dataset with a JSON export",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "in", Usage: "Input file", Required: true},
				},
				Before: openStore,
				After:  closeStore,
				Action: runImport,
			},
			{
				Name:  "reset",
				Usage: "Discard every record and load the default dataset",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "confirm", Usage: "Required; reset deletes all data"},
				},
				Before: openStore,
				After:  closeStore,
				Action: runReset,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func runMigrate(c *cli.Context) error {
	var (
		db  *sqlstore.DB
		err error
	)
	if url := c.String("db-url"); url != "" {
		sqlDB, err := sql.Open("pgx", url)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := sqlDB.PingContext(c.Context); err != nil {
			sqlDB.Close()
			return fmt.Errorf("failed to ping database: %w", err)
		}
		db = sqlstore.FromSQL(sqlDB, "pgx")
	} else {
		cfg := config.Load()
		db, err = sqlstore.NewDB(&cfg.Database)
		if err != nil {
			return err
		}
	}
	defer db.Close()

	if err := db.Migrate(c.Context); err != nil {
		return err
	}
	log.Info().Str("driver", db.Dialect()).Msg("schema is up to date")
	return nil
}

func isEmpty(snap *domain.Snapshot) bool {
	return len(snap.Products) == 0 && len(snap.Customers) == 0 && len(snap.Suppliers) == 0 &&
		len(snap.BankAccounts) == 0 && len(snap.SalesOrders) == 0 && len(snap.Invoices) == 0 &&
		len(snap.Transactions) == 0
}

func runSeed(c *cli.Context) error {
	store := storeFrom(c)
	snap, err := store.Load(c.Context)
	if err != nil {
		return err
	}
	if !isEmpty(snap) {
		log.Info().Msg("store already holds data; nothing to seed")
		return nil
	}

	defaults, err := local.DefaultSnapshot()
	if err != nil {
		return err
	}
	if err := store.Replace(c.Context, defaults); err != nil {
		return fmt.Errorf("failed to seed: %w", err)
	}
	log.Info().Int("products", len(defaults.Products)).Msg("default dataset loaded")
	return nil
}

func runExport(c *cli.Context) error {
	data, err := service.NewSnapshotService(storeFrom(c), nil).Export(c.Context)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if path := c.String("out"); path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}
	if _, err := out.Write(data); err != nil {
		return err
	}
	log.Info().Str("out", c.String("out")).Int("bytes", len(data)).Msg("dataset exported")
	return nil
}

func runImport(c *cli.Context) error {
	data, err := os.ReadFile(c.String("in"))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.String("in"), err)
	}
	_, err = service.NewSnapshotService(storeFrom(c), nil).Import(c.Context, data)
	return err
}

func runReset(c *cli.Context) error {
	if !c.Bool("confirm") {
		return fmt.Errorf("reset deletes every record; pass --confirm to proceed")
	}

	store := storeFrom(c)
	if blobStore, ok := store.(*local.Store); ok {
		return blobStore.Reset(c.Context)
	}
	defaults, err := local.DefaultSnapshot()
	if err != nil {
		return err
	}
	if err := store.Replace(c.Context, defaults); err != nil {
		return err
	}
	log.Warn().Msg("store reset to the default dataset")
	return nil
}
