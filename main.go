package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	api "github.com/rpupo63/blogicum-backend/api"
	"github.com/rpupo63/blogicum-backend/config"
	"github.com/rpupo63/blogicum-backend/database"
	"github.com/rpupo63/blogicum-backend/database/inmemory"
)

func main() {
	fmt.Println("Initializing app...")

	cfg := config.Load()

	var opts []api.Option
	var currentDB database.Database

	fmt.Printf("DB_TYPE: %s\n", cfg.DBType)
	switch cfg.DBType {
	case "memory":
		currentDB = inmemory.New()
		if cfg.JWTSecret == "" {
			// Sessions do not need to outlive an in-memory store.
			cfg.JWTSecret = uuid.NewString()
			log.Warn().Msg("JWT_SECRET not set, using a random secret for this run")
		}
	case "postgres":
		db, err := database.Open(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Error connecting to database")
		}
		if cfg.RunMigrations {
			if err := database.Migrate(db); err != nil {
				log.Fatal().Err(err).Msg("Error running migrations")
			}
		}
		if err := database.UseReplicas(db, cfg.ReplicaURLs); err != nil {
			log.Fatal().Err(err).Msg("Error registering read replicas")
		}
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal().Err(err).Msg("Error getting database handle")
		}
		defer sqlDB.Close()

		currentDB = database.New(db)
		opts = append(opts, api.WithPinger(sqlDB))
	default:
		fmt.Println("Unsupported DB_TYPE. Exiting...")
		os.Exit(1)
	}

	server, err := api.NewServer(cfg, currentDB, opts...)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	// Listen for interrupt signals to gracefully shutdown the server
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gCtx.Done()
		server.ShutdownGracefully(cfg.ShutdownTimeout)
		return nil
	})

	if err := g.Wait(); err != nil {
		fmt.Printf("Closing server: %v\n", err)
		os.Exit(1)
	}
}
