package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"election-tracker-backend/internal/bot"
	"election-tracker-backend/internal/common/config"
	"election-tracker-backend/internal/common/logger"
	rostersheets "election-tracker-backend/internal/features/roster/repository/sheets"
	"election-tracker-backend/internal/features/session"
	sessionmemory "election-tracker-backend/internal/features/session/memory"
	sessionredis "election-tracker-backend/internal/features/session/redis"
	votessheets "election-tracker-backend/internal/features/votes/repository/sheets"
	votesservice "election-tracker-backend/internal/features/votes/service"
	"election-tracker-backend/internal/platform/sheets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("bot", true)
		logger.Fatal().Err(err).Msg("loading configuration failed")
	}
	logger.Init("bot", cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := sheets.NewClient(ctx, cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetID)
	if err != nil {
		logger.Fatal().Err(err).Msg("connecting to the spreadsheet failed")
	}

	delegates := rostersheets.NewDelegateRepository(client)
	supervisors := rostersheets.NewSupervisorRepository(client)
	voters := rostersheets.NewVoterRepository(client)
	votes := votessheets.NewRepository(client)

	var store session.Store = sessionmemory.New()
	if cfg.Redis.Addr != "" {
		rs, err := sessionredis.New(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Bot.SessionTTLSec)*time.Second,
		)
		if err != nil {
			logger.Fatal().Err(err).Msg("connecting to redis failed")
		}
		store = rs
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("using redis session store")
	}

	handler := bot.New(
		store,
		delegates,
		supervisors,
		voters,
		votes,
		votesservice.ParseMode(cfg.Stats.Mode),
		cfg.Bot.PageSize,
	)

	b, err := tgbot.New(cfg.Telegram.BotToken, tgbot.WithDefaultHandler(handler.Handle))
	if err != nil {
		logger.Fatal().Err(err).Msg("creating telegram bot failed")
	}
	handler.Bind(b)

	refresher := bot.NewRefresher(handler, time.Duration(cfg.Bot.SummaryRefreshSec)*time.Second)
	refresher.Start()
	defer refresher.Stop()

	logger.Info().Str("mode", cfg.Stats.Mode).Msg("bot started")
	b.Start(ctx)
	logger.Info().Msg("bot stopped")
}
