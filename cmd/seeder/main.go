// Command seeder fills a development database with fake users, posts,
// threaded comments and likes. All writes go through the regular services,
// so counters and karma stay consistent with the likes table.
//
// Flags:
//
//	--phase          comma-separated list of phases to run (default: all)
//	--seeder-config  path to seeder YAML config file
//	--users          number of users to register (overrides config)
//	--seed           random seed (overrides config)
//
// The access token of every seeded user is printed to stdout.
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/comment"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/karma"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/like"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/post"
	"github.com/heartmarshall/karmafeed-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/karmafeed-backend/internal/app"
	"github.com/heartmarshall/karmafeed-backend/internal/app/seeder"
	"github.com/heartmarshall/karmafeed-backend/internal/auth"
	"github.com/heartmarshall/karmafeed-backend/internal/config"
	contentsvc "github.com/heartmarshall/karmafeed-backend/internal/service/content"
	karmasvc "github.com/heartmarshall/karmafeed-backend/internal/service/karma"
	likesvc "github.com/heartmarshall/karmafeed-backend/internal/service/like"
	usersvc "github.com/heartmarshall/karmafeed-backend/internal/service/user"
)

func main() {
	phaseFlag := flag.String("phase", "", "comma-separated phases to run (default: all)")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	usersFlag := flag.Int("users", 0, "number of users to register")
	seedFlag := flag.Uint64("seed", 0, "random seed")
	flag.Parse()

	// Load app config (for DB connection and service limits).
	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	if *usersFlag > 0 {
		seederCfg.Users = *usersFlag
	}
	if *seedFlag > 0 {
		seederCfg.Seed = *seedFlag
	}

	var phases []string
	if *phaseFlag != "" {
		phases = strings.Split(*phaseFlag, ",")
		for i := range phases {
			phases[i] = strings.TrimSpace(phases[i])
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	tx := postgres.NewTxManager(pool)
	posts := post.New(pool)
	comments := comment.New(pool)
	jwt := auth.NewJWTManager(appCfg.Auth.JWTSecret, appCfg.Auth.JWTIssuer, appCfg.Auth.AccessTokenTTL)

	karmaService := karmasvc.NewService(logger, karma.New(pool), nil, appCfg.Karma)
	users := usersvc.NewService(logger, user.New(pool), karmaService, jwt)
	content := contentsvc.NewService(logger, posts, comments, tx, appCfg.Content)
	likes := likesvc.NewService(logger, like.New(pool), posts, comments, tx, appCfg.Like)

	pipeline := seeder.NewPipeline(logger, users, content, likes, *seederCfg)
	runErr := pipeline.Run(ctx, phases)
	for phase, res := range pipeline.Results() {
		logger.Info("phase summary",
			slog.String("phase", phase),
			slog.Int("inserted", res.Inserted),
			slog.Int("errors", res.Errors),
			slog.Duration("duration", res.Duration),
		)
	}
	if runErr != nil {
		logger.Error("pipeline failed", slog.String("error", runErr.Error()))
		os.Exit(1)
	}

	for _, acc := range pipeline.Accounts() {
		fmt.Printf("%s\t%s\t%s\n", acc.ID, acc.Username, acc.AccessToken)
	}

	if pipeline.HasErrors() {
		logger.Warn("pipeline completed with errors")
		os.Exit(1)
	}

	logger.Info("pipeline completed successfully")
}
