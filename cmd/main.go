package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	bookingSessionHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/booking_session"
	getBookingHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_booking"
	getCourtGridHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_court_grid"
	getUserBookingsHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_user_bookings"
	submitBookingHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/submit_booking"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/config"
	"github.com/m04kA/SMC-CourtBooking/internal/infra/migrator"
	bookingRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/booking"
	sessionRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/session"
	courtAPIClient "github.com/m04kA/SMC-CourtBooking/internal/integrations/courtapi"
	bookingsService "github.com/m04kA/SMC-CourtBooking/internal/service/bookings"
	sessionsService "github.com/m04kA/SMC-CourtBooking/internal/service/sessions"
	"github.com/m04kA/SMC-CourtBooking/internal/slotgrid"
	getCourtGridUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_court_grid"
	submitBookingUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-CourtBooking/migrations"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/metrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/txmanager"
)

// rateLimitIdleTTL клиенты без запросов дольше этого срока забываются
const rateLimitIdleTTL = 10 * time.Minute

// businessMetrics бизнес-счётчики, общие для сервисов и use cases
type businessMetrics interface {
	ObserveClick(outcome string)
	ObservePriceLookup(result string)
	ObserveRefresh(result string)
	ObserveSubmission(result string)
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-CourtBooking...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Booking.Timezone, err)
	}

	labels, err := slotgrid.GenerateLabels(cfg.Booking.FirstHour, cfg.Booking.LastHour)
	if err != nil {
		log.Fatal("Failed to build slot grid: %v", err)
	}
	log.Info("Slot grid %s..%s (%d slots), timezone=%s, lock horizon=%s",
		labels[0], labels[len(labels)-1], len(labels), location, cfg.Booking.LockHorizon())

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var observer businessMetrics = metrics.Noop{}
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		observer = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции журнала броней
	if cfg.Database.AutoMigrate {
		m, err := migrator.New(db, migrations.FS, log)
		if err != nil {
			log.Fatal("Failed to init migrator: %v", err)
		}
		if err := m.Run(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Обёртка БД: с метриками запросов и пула или прозрачная
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Подключаемся к Redis (сессии выбора)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	sessionRepository := sessionRepo.NewRepository(redisClient, cfg.Redis.SessionTTLDuration(), location)
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := sessionRepository.Ping(pingCtx); err != nil {
		pingCancel()
		log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
	}
	pingCancel()
	log.Info("Successfully connected to redis (addr=%s, session ttl=%s)", cfg.Redis.Addr, cfg.Redis.SessionTTLDuration())

	// Инициализируем клиент бэкенда площадок
	courtAPITimeout := time.Duration(cfg.CourtAPI.Timeout) * time.Second
	courtClient := courtAPIClient.NewClient(
		cfg.CourtAPI.URL,
		courtAPITimeout,
		location,
		log,
	)
	log.Info("Court API client initialized (url=%s timeout=%ds)", cfg.CourtAPI.URL, cfg.CourtAPI.Timeout)

	bookingRepository := bookingRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	sessionSvc := sessionsService.NewService(
		sessionRepository,
		courtClient,
		observer,
		sessionsService.Config{
			Labels:         labels,
			LockHorizon:    cfg.Booking.LockHorizon(),
			Location:       location,
			PendingTimeout: 2 * courtAPITimeout,
		},
		log,
	)
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	getCourtGridUseCase := getCourtGridUC.NewUseCase(
		courtClient,
		getCourtGridUC.Config{
			Labels:      labels,
			LockHorizon: cfg.Booking.LockHorizon(),
			Location:    location,
		},
		log,
	)
	submitBookingUseCase := submitBookingUC.NewUseCase(
		sessionSvc,
		courtClient,
		bookingRepository,
		txMgr,
		observer,
		cfg.Booking.LockHorizon(),
		log,
	)

	// Инициализируем handlers
	getCourtGrid := getCourtGridHandler.NewHandler(getCourtGridUseCase, log)
	bookingSession := bookingSessionHandler.NewHandler(sessionSvc, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		trustedProxies, err := cfg.RateLimit.TrustedProxyPrefixes()
		if err != nil {
			log.Fatal("Invalid rate_limit.trusted_proxies: %v", err)
		}
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, rateLimitIdleTTL, trustedProxies, log)
		log.Info("Rate limit enabled: %.1f rps, burst %d, trusted proxies %d",
			cfg.RateLimit.RPS, cfg.RateLimit.Burst, len(trustedProxies))
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if limiter != nil {
		public.Use(limiter.Middleware())
	}

	// Сетка статусов кортов на дату
	public.HandleFunc("/facilities/{facilityId}/grid", getCourtGrid.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	if limiter != nil {
		protected.Use(limiter.Middleware())
	}

	// --- Сессии выбора ---
	protected.HandleFunc("/sessions", bookingSession.Start).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}", bookingSession.Get).Methods(http.MethodGet)
	protected.HandleFunc("/sessions/{sessionId}/court", bookingSession.SelectCourt).Methods(http.MethodPut)
	protected.HandleFunc("/sessions/{sessionId}/date", bookingSession.ChangeDate).Methods(http.MethodPut)
	protected.HandleFunc("/sessions/{sessionId}/refresh", bookingSession.Refresh).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}/clicks", bookingSession.Click).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}/selection", bookingSession.Clear).Methods(http.MethodDelete)

	// Отправка брони из зафиксированного выбора
	protected.HandleFunc("/sessions/{sessionId}/submit", submitBooking.Handle).Methods(http.MethodPost)

	// --- Журнал броней ---
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
