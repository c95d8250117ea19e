package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go_5_vocab_kids/internal/ai"
	"go_5_vocab_kids/internal/config"
	"go_5_vocab_kids/internal/handlers"
	custommiddleware "go_5_vocab_kids/internal/middleware"
	"go_5_vocab_kids/internal/repository"
	"go_5_vocab_kids/internal/service"
	"go_5_vocab_kids/internal/webutil"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

func main() {
	// .env ファイルの読み込み (ローカル開発用。存在しなくてもエラーにしない)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// 設定の読み込み (署名キー未設定なら起動しない)
	if err := config.LoadConfig("./configs"); err != nil {
		if err := config.LoadConfig("../configs"); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	cfg := &config.Cfg

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// DB接続 (マイグレーションもここで実行される)
	db, err := repository.NewDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	// --- 依存関係の組み立て (リポジトリ → サービス → ハンドラ) ---
	userRepo := repository.NewGormUserRepository()
	wordRepo := repository.NewGormWordRepository()
	progRepo := repository.NewGormProgressRepository()

	sentenceGen := ai.NewOpenAIClient(cfg)
	imageSearcher := ai.NewPixabayClient(cfg)
	wordSource := ai.NewRandomWordClient(cfg)

	authService := service.NewAuthService(db, userRepo, cfg)
	wordService := service.NewWordService(db, wordRepo, sentenceGen, cfg)
	quizService := service.NewQuizService(wordSource)
	imageService := service.NewImageService(imageSearcher, cfg)
	progressService := service.NewProgressService(db, progRepo)

	userHandler := handlers.NewUserHandler(authService)
	authHandler := handlers.NewAuthHandler(authService)
	generateHandler := handlers.NewGenerateHandler(wordService, quizService, imageService)
	progressHandler := handlers.NewProgressHandler(progressService)

	router := newRouter(cfg, logger, db, authService,
		userHandler, authHandler, generateHandler, progressHandler)

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	go func() {
		logger.Info("Starting server", "addr", cfg.Server.Port, "app", cfg.App.Name)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Server exited")
}

// newLogger はアプリケーションロガーを構築します。
// APP_ENV=dev のときは色付きテキスト、それ以外はJSONで出力します。
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}

func newRouter(
	cfg *config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	authService service.AuthService,
	userHandler *handlers.UserHandler,
	authHandler *handlers.AuthHandler,
	generateHandler *handlers.GenerateHandler,
	progressHandler *handlers.ProgressHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.StripSlashes)
	r.Use(custommiddleware.LoggingMiddleware(logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}).Handler)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// 認証不要のエンドポイント
	r.Post("/users", userHandler.Register)
	r.Post("/token", authHandler.Token)
	r.Post("/generate_quiz", generateHandler.GenerateQuiz)
	r.Post("/generate_image", generateHandler.GenerateImage)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		l := custommiddleware.GetLogger(r.Context())
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			l.Error("Health check failed", "error", err)
			webutil.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"}, l)
			return
		}
		webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, l)
	})

	// 保存済みイラストの静的配信
	fileServer := http.FileServer(http.Dir(cfg.Image.Dir))
	r.Handle("/images/*", http.StripPrefix("/images/", fileServer))

	// 認証必須のエンドポイント
	r.Group(func(r chi.Router) {
		r.Use(custommiddleware.JWTAuthMiddleware(cfg, authService))

		r.Get("/users/me", userHandler.Me)
		r.Post("/generate_sentence", generateHandler.GenerateSentence)
		r.Get("/progress", progressHandler.List)
		r.Get("/progress/{user_id}", progressHandler.ListByID)
		r.Post("/progress", progressHandler.Submit)
	})

	return r
}
