package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/vendoro/vendoro/internal/access"
	"github.com/vendoro/vendoro/internal/app"
	"github.com/vendoro/vendoro/internal/auth"
	"github.com/vendoro/vendoro/internal/company"
	"github.com/vendoro/vendoro/internal/i18n"
	"github.com/vendoro/vendoro/internal/invitation"
	"github.com/vendoro/vendoro/internal/mail"
	"github.com/vendoro/vendoro/internal/member"
	"github.com/vendoro/vendoro/internal/platform/cache"
	"github.com/vendoro/vendoro/internal/platform/db"
	"github.com/vendoro/vendoro/internal/pricetype"
	"github.com/vendoro/vendoro/internal/role"
	"github.com/vendoro/vendoro/internal/shared"
	"github.com/vendoro/vendoro/internal/stock"
	"github.com/vendoro/vendoro/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "vendoro_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	bundle := i18n.NewBundle()
	resolver := access.NewResolver(dbpool)

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	taskClient := asynq.NewClient(redisOpts)
	defer func() {
		if err := taskClient.Close(); err != nil {
			logger.Warn("task client close", slog.Any("error", err))
		}
	}()

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, sessionManager, bundle)

	companyRepo := company.NewRepository(dbpool)
	companyService := company.NewService(companyRepo)
	companyHandler := company.NewHandler(logger, companyService, resolver, bundle)

	stockRepo := stock.NewRepository(dbpool)
	stockService := stock.NewService(stockRepo)
	stockHandler := stock.NewHandler(logger, stockService, resolver, bundle)

	priceTypeRepo := pricetype.NewRepository(dbpool)
	priceTypeService := pricetype.NewService(priceTypeRepo)
	priceTypeHandler := pricetype.NewHandler(logger, priceTypeService, resolver, bundle)

	roleRepo := role.NewRepository(dbpool)
	roleService := role.NewService(roleRepo)
	roleHandler := role.NewHandler(logger, roleService, resolver, bundle)

	memberRepo := member.NewRepository(dbpool)
	memberService := member.NewService(memberRepo)
	memberHandler := member.NewHandler(logger, memberService, resolver, bundle)

	invitationRepo := invitation.NewRepository(dbpool)
	invitationService := invitation.NewService(invitationRepo, taskClient, logger)
	invitationHandler := invitation.NewHandler(logger, invitationService, resolver, bundle)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		SessionManager:    sessionManager,
		AuthHandler:       authHandler,
		CompanyHandler:    companyHandler,
		StockHandler:      stockHandler,
		PriceTypeHandler:  priceTypeHandler,
		RoleHandler:       roleHandler,
		MemberHandler:     memberHandler,
		InvitationHandler: invitationHandler,
	})

	mailer := mail.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	worker := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: redisOpts,
		Logger:    logger,
		Email:     jobs.NewEmailHandler(mailer, bundle, logger),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("job worker starting")
		return worker.Run()
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		worker.Shutdown()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("shutdown", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("bye")
}
