package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dailypush/dailypush/internal/config"
	"github.com/dailypush/dailypush/internal/logger"
	"github.com/dailypush/dailypush/internal/router"
	"github.com/dailypush/dailypush/internal/seed"
	"github.com/dailypush/dailypush/internal/setup"
	"github.com/dailypush/dailypush/internal/storage/pg"
)

const usage = `usage: dailypush [-config_folder dir] <command> [flags]

commands:
  serve     run the HTTP API (default)
  init-db   drop and recreate all tables
  seed      create demo users, topics and posts
`

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	command := "serve"
	args := flag.Args()
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	var err error
	switch command {
	case "serve":
		err = serve(cfg)
	case "init-db":
		err = initDB(cfg)
	case "seed":
		err = seedDB(cfg, args)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Log.Error("command failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func serve(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := setup.SetupDependencies(ctx, cfg, pg.DefaultConnectionConfig())
	if err != nil {
		return err
	}
	defer deps.Cleanup()

	if err := deps.Storage.CreateSchema(ctx); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Public.HttpPort),
		Handler:           router.New(deps.Handler, deps.AuthMiddleware, cfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Log.Info("server started", "port", cfg.Public.HttpPort)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Log.Info("server stopped")
	return nil
}

func initDB(cfg *config.Config) error {
	ctx := context.Background()
	storage, err := pg.New(ctx, cfg.Pg().DSN(), pg.LightweightConnectionConfig())
	if err != nil {
		return err
	}
	defer storage.Cleanup()

	if err := storage.ResetSchema(ctx); err != nil {
		return err
	}
	logger.Log.Info("initialized the database")
	return nil
}

func seedDB(cfg *config.Config, args []string) error {
	opts := seed.DefaultOptions()
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	fs.IntVar(&opts.Users, "users", opts.Users, "number of demo users")
	fs.IntVar(&opts.TopicsPerUser, "topics", opts.TopicsPerUser, "topics per user")
	fs.IntVar(&opts.PostsPerTopic, "posts", opts.PostsPerTopic, "posts per topic")
	fs.Int64Var(&opts.Seed, "seed", 0, "random seed, 0 for a random one")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	deps, err := setup.SetupDependencies(ctx, cfg, pg.LightweightConnectionConfig())
	if err != nil {
		return err
	}
	defer deps.Cleanup()

	if err := deps.Storage.CreateSchema(ctx); err != nil {
		return err
	}

	res, err := seed.New(deps.Auth, deps.Topic, deps.Post, opts.Seed).Run(ctx, opts)
	if err != nil {
		return err
	}
	fmt.Printf("created %d users (password %q), %d topics, %d posts\n", len(res.Users), seed.DemoPassword, res.Topics, res.Posts)
	return nil
}
