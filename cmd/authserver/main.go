package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rackleet/authserver/internal/apiserver/handler"
	"github.com/rackleet/authserver/internal/auth"
	"github.com/rackleet/authserver/internal/auth/jwt"
	"github.com/rackleet/authserver/internal/auth/storage"
	"github.com/rackleet/authserver/internal/common/config"
	"github.com/rackleet/authserver/pkg/logger"
	"github.com/rackleet/authserver/pkg/metrics"
	"github.com/rackleet/authserver/pkg/version"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of authserver",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("authserver version %s\n", version.Get())
		},
	}

	rootCmd = &cobra.Command{
		Use:   "authserver",
		Short: "OAuth2 Authorization Server",
		Long:  `OAuth2 authorization server providing client registration and credential verification`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "conf", "", "path to configuration file")
	rootCmd.AddCommand(versionCmd)
}

func run() {
	cfgName := configPath
	if cfgName == "" {
		cfgName = "authserver.yaml"
	}
	cfg, cfgPath, err := config.LoadConfig(cfgName)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	zapLogger.Info("starting authserver",
		zap.String("version", version.Get()),
		zap.String("config", cfgPath))

	store, err := storage.NewStore(zapLogger, &cfg.Storage, &cfg.Database)
	if err != nil {
		zapLogger.Fatal("failed to initialize store", zap.Error(err))
	}

	jwtService, err := jwt.NewService(jwt.Config{
		SecretKey: cfg.JWT.SecretKey,
		Duration:  time.Duration(cfg.JWT.Duration),
	})
	if err != nil {
		zapLogger.Fatal("failed to initialize jwt service", zap.Error(err))
	}

	m := metrics.New(cfg.Metrics)

	router := gin.New()
	router.Use(gin.Recovery(), m.Middleware())

	handler.NewClientHandler(zapLogger, auth.NewClientService(zapLogger, store)).Register(router)
	handler.NewUserHandler(zapLogger, auth.NewUserService(zapLogger, store), jwtService).Register(router)
	handler.NewTokenHandler(zapLogger, auth.NewAuthenticator(zapLogger, store)).Register(router)
	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		zapLogger.Info("listening", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("forced shutdown", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
