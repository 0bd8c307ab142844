// Command duereport prints due and reviewed-today counts per deck for one
// user. It is intended to be invoked by an external cron job (for example to
// drive reminder emails), not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/flashlearn/scheduler/internal/adapter/postgres"
	"github.com/flashlearn/scheduler/internal/adapter/postgres/catalog"
	"github.com/flashlearn/scheduler/internal/adapter/postgres/reviewlog"
	"github.com/flashlearn/scheduler/internal/adapter/postgres/reviewstate"
	"github.com/flashlearn/scheduler/internal/app"
	"github.com/flashlearn/scheduler/internal/config"
	"github.com/flashlearn/scheduler/internal/domain"
	"github.com/flashlearn/scheduler/internal/service/scheduler"
	"github.com/flashlearn/scheduler/internal/service/scheduler/algorithm"
	"github.com/flashlearn/scheduler/pkg/ctxutil"
)

func main() {
	var (
		userFlag = flag.String("user", "", "user ID (required)")
		tzFlag   = flag.String("timezone", "", "IANA timezone for the day boundary (default: config)")
	)
	flag.Parse()

	userID, err := uuid.Parse(*userFlag)
	if err != nil {
		log.Fatalf("invalid -user: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	timezone := *tzFlag
	if timezone == "" {
		timezone = cfg.Scheduler.DefaultTimezone
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = ctxutil.WithRequestID(ctx, uuid.NewString())

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	catalogRepo := catalog.New(pool)
	svc := scheduler.NewService(
		logger,
		reviewstate.New(pool),
		reviewlog.New(pool),
		catalogRepo,
		postgres.NewTxManager(pool),
		newUpdater(cfg.Scheduler),
	)

	decks, err := catalogRepo.UserDecks(ctx, userID)
	if err != nil {
		logger.Error("list user decks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
		)
		os.Exit(1)
	}

	for _, deck := range decks {
		scope := domain.Scope{DeckID: &deck.ID}

		due, err := svc.SelectDue(ctx, scheduler.SelectDueInput{
			UserID: userID,
			Scope:  scope,
		})
		if err != nil {
			logger.Error("select due cards",
				slog.String("error", err.Error()),
				slog.String("deck_id", deck.ID.String()),
			)
			os.Exit(1)
		}

		reviewed, err := svc.CountToday(ctx, scheduler.CountTodayInput{
			UserID:   userID,
			Scope:    scope,
			Timezone: timezone,
		})
		if err != nil {
			logger.Error("count today",
				slog.String("error", err.Error()),
				slog.String("deck_id", deck.ID.String()),
			)
			os.Exit(1)
		}

		fmt.Printf("%s\t%s\tdue=%d\treviewed_today=%d\n",
			deck.ID, deck.Name, len(due), reviewed[deck.ID])
	}

	logger.Info("due report completed",
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("user_id", userID.String()),
		slog.Int("decks", len(decks)),
	)
}

// newUpdater builds the configured review update function.
func newUpdater(cfg config.SchedulerConfig) algorithm.Updater {
	if cfg.AlgorithmKind() == domain.AlgorithmFSRS {
		return &algorithm.FSRS{
			InitialStability:  cfg.InitialStability,
			InitialDifficulty: cfg.InitialDifficulty,
		}
	}
	return &algorithm.SM2{
		MinEase:            cfg.MinEaseFactor,
		DefaultEase:        cfg.DefaultEaseFactor,
		FirstIntervalDays:  cfg.FirstIntervalDays,
		SecondIntervalDays: cfg.SecondIntervalDays,
	}
}
