package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/hackathon-platform/internal/config"
	"github.com/aidar/hackathon-platform/internal/domain"
	"github.com/aidar/hackathon-platform/internal/events"
	"github.com/aidar/hackathon-platform/internal/handler"
	"github.com/aidar/hackathon-platform/internal/middleware"
	"github.com/aidar/hackathon-platform/internal/repository/postgres"
	"github.com/aidar/hackathon-platform/internal/service"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config    *config.Config
	db        *pgxpool.Pool
	server    *http.Server
	logger    *slog.Logger
	autosaver *service.Autosaver
}

// New создает новый экземпляр приложения
func New(cfg *config.Config) (*App, error) {
	// Инициализируем структурированный логгер (JSON формат)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app := &App{
		config: cfg,
		logger: logger,
	}

	return app, nil
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	// Подключаемся к базе данных
	if err := a.connectDB(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Настраиваем HTTP сервер и роутинг
	a.setupServer()

	a.logger.Info("Application initialized successfully")
	return nil
}

// connectDB устанавливает подключение к PostgreSQL с connection pool
func (a *App) connectDB(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	// Настраиваем размеры connection pool
	poolConfig.MaxConns = a.config.Database.MaxConns
	poolConfig.MinConns = a.config.Database.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Проверяем подключение к БД
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	a.logger.Info("Connected to database")
	return nil
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() {
	// Инициализируем слой репозиториев (работа с БД)
	userRepo := postgres.NewUserRepository(a.db)
	teamRepo := postgres.NewTeamRepository(a.db)
	subRepo := postgres.NewSubmissionRepository(a.db)
	slotRepo := postgres.NewSlotRepository(a.db)
	scoreRepo := postgres.NewScoreRepository(a.db)

	// Хаб подписок: рассылка закоммиченного состояния
	hub := events.NewHub()

	// Инициализируем слой сервисов (бизнес-логика)
	codes := service.NewInviteCodeGenerator()
	coordinator := service.NewTeamCoordinator(teamRepo, userRepo, codes, hub)
	submissions := service.NewSubmissionService(subRepo, teamRepo, userRepo, hub,
		func(write service.DraftWriter) *service.Autosaver {
			return service.NewAutosaver(write, a.config.Autosave.GetDebounce(), a.logger)
		},
	)
	a.autosaver = submissions.Autosaver()
	allocator := service.NewSlotAllocator(slotRepo, userRepo, hub)
	judging := service.NewJudgingService(scoreRepo, teamRepo, hub)
	results := service.NewResultsService(a.db)
	authService := service.NewAuthService(
		userRepo,
		a.config.Admin,
		a.config.JWT.Secret,
		a.config.JWT.GetExpiration(),
	)

	// Инициализируем HTTP обработчики
	authHandler := handler.NewAuthHandler(authService)
	teamHandler := handler.NewTeamHandler(coordinator)
	submissionHandler := handler.NewSubmissionHandler(submissions, coordinator)
	slotHandler := handler.NewSlotHandler(allocator)
	judgingHandler := handler.NewJudgingHandler(judging, results)
	adminHandler := handler.NewAdminHandler(allocator, submissions)
	eventsHandler := handler.NewEventsHandler(hub, coordinator, allocator)

	// Инициализируем middleware для JWT авторизации
	authMiddleware := middleware.AuthMiddleware(authService)

	// Настраиваем роутер
	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Публичные эндпоинты (без авторизации)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
	})

	// Health check для мониторинга
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			a.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// Защищенные эндпоинты (требуют JWT токен в заголовке Authorization)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		// Эндпоинты пользователей
		r.Get("/users/me", authHandler.Me)
		r.Post("/users/onboarding", authHandler.CompleteOnboarding)

		// Эндпоинты команд
		r.Post("/teams", teamHandler.CreateTeam)
		r.Post("/teams/join", teamHandler.JoinTeam)
		r.Post("/teams/leave", teamHandler.LeaveTeam)
		r.Post("/teams/transfer-leader", teamHandler.TransferLeadership)
		r.Get("/teams/search", teamHandler.SearchTeams)
		r.Get("/teams/me", teamHandler.GetMyTeam)
		r.Get("/teams/{teamID}", teamHandler.GetTeam)

		// Эндпоинты заявок
		r.Put("/submission/idea/draft", submissionHandler.SaveIdeaDraft)
		r.Post("/submission/idea/submit", submissionHandler.SubmitIdea)
		r.Put("/submission/prototype/draft", submissionHandler.SavePrototypeDraft)
		r.Post("/submission/prototype/submit", submissionHandler.SubmitPrototype)
		r.Get("/submission", submissionHandler.GetSubmission)

		// Эндпоинты питч-слотов
		r.Get("/slots", slotHandler.ListSlots)
		r.Post("/slots/{slotID}/book", slotHandler.BookSlot)
		r.Post("/slots/release", slotHandler.ReleaseSlot)

		// Живые read-модели через SSE
		r.Get("/events/team/{teamID}", eventsHandler.StreamTeam)
		r.Get("/events/slots", eventsHandler.StreamSlots)

		// Эндпоинты жюри
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleJudge))
			r.Post("/judging/scores", judgingHandler.SubmitScore)
			r.Get("/judging/scores/{teamID}", judgingHandler.GetExistingScore)
			r.Get("/judging/results", judgingHandler.GetResults)
			r.Get("/judging/results/{teamID}", judgingHandler.GetTeamResult)
		})

		// Административные эндпоинты
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleAdmin))
			r.Post("/admin/slots", adminHandler.SeedSlots)
			r.Post("/admin/teams/{teamID}/shortlist", adminHandler.SetShortlisted)
		})
	})

	// Создаем HTTP сервер с настройками таймаутов
	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:        addr,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// Без WriteTimeout: SSE-стримы держат соединение открытым
		IdleTimeout: 60 * time.Second,
	}

	a.logger.Info("HTTP server configured", "addr", addr)
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)
	return a.server.ListenAndServe()
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	// Дописываем отложенные черновики автосохранения
	if a.autosaver != nil {
		a.autosaver.Flush(ctx)
	}

	// Закрываем подключения к базе данных
	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
