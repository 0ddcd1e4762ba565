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

	cancelBookingHandler "github.com/barbersched/BarberSched-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/barbersched/BarberSched-BookingService/internal/api/handlers/create_booking"
	createHoldHandler "github.com/barbersched/BarberSched-BookingService/internal/api/handlers/create_hold"
	getAvailabilityHandler "github.com/barbersched/BarberSched-BookingService/internal/api/handlers/get_availability"
	getBarberScheduleHandler "github.com/barbersched/BarberSched-BookingService/internal/api/handlers/get_barber_schedule"
	getBookingHandler "github.com/barbersched/BarberSched-BookingService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/barbersched/BarberSched-BookingService/internal/api/handlers/get_client_bookings"
	getNextSlotHandler "github.com/barbersched/BarberSched-BookingService/internal/api/handlers/get_next_slot"
	updateWorkingHoursHandler "github.com/barbersched/BarberSched-BookingService/internal/api/handlers/update_working_hours"
	"github.com/barbersched/BarberSched-BookingService/internal/api/middleware"
	"github.com/barbersched/BarberSched-BookingService/internal/config"
	bookingRepo "github.com/barbersched/BarberSched-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/barbersched/BarberSched-BookingService/internal/infra/storage/catalog"
	holdRepo "github.com/barbersched/BarberSched-BookingService/internal/infra/storage/hold"
	scheduleRepo "github.com/barbersched/BarberSched-BookingService/internal/infra/storage/schedule"
	"github.com/barbersched/BarberSched-BookingService/internal/jobs"
	bookingsService "github.com/barbersched/BarberSched-BookingService/internal/service/bookings"
	scheduleService "github.com/barbersched/BarberSched-BookingService/internal/service/schedule"
	"github.com/barbersched/BarberSched-BookingService/internal/tenant"
	computeAvailabilityUC "github.com/barbersched/BarberSched-BookingService/internal/usecase/compute_availability"
	createBookingUC "github.com/barbersched/BarberSched-BookingService/internal/usecase/create_booking"
	createHoldUC "github.com/barbersched/BarberSched-BookingService/internal/usecase/create_hold"
	findNextSlotUC "github.com/barbersched/BarberSched-BookingService/internal/usecase/find_next_slot"
	"github.com/barbersched/BarberSched-BookingService/pkg/dbmetrics"
	"github.com/barbersched/BarberSched-BookingService/pkg/logger"
	"github.com/barbersched/BarberSched-BookingService/pkg/metrics"
	"github.com/barbersched/BarberSched-BookingService/pkg/txmanager"
)

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

	log.Info("Starting BarberSched-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Метрики создаются всегда: ими пользуются обертки БД. Флаг в
	// конфигурации управляет только HTTP endpoint-ом и middleware.
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

	// Подключаем дефолтного тенанта и дополнительные барбершопы
	registry := tenant.NewRegistry(cfg.DefaultTenant)

	openTenantDB := func(slug string, dbCfg *config.DatabaseConfig) (*dbmetrics.DB, func(), error) {
		db, err := sql.Open("postgres", dbCfg.DSN())
		if err != nil {
			return nil, nil, err
		}

		db.SetMaxOpenConns(dbCfg.MaxOpenConns)
		db.SetMaxIdleConns(dbCfg.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(dbCfg.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, err
		}

		wrapped := dbmetrics.WrapWithDefault(db, metricsCollector, slug, stopMetricsCh)
		return wrapped, func() { db.Close() }, nil
	}

	defaultDB, closeDefault, err := openTenantDB(cfg.DefaultTenant, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer closeDefault()
	registry.Register(cfg.DefaultTenant, defaultDB)
	log.Info("Connected to database for tenant=%s (host=%s, db=%s)",
		cfg.DefaultTenant, cfg.Database.Host, cfg.Database.DBName)

	for i := range cfg.Tenants {
		t := &cfg.Tenants[i]
		tenantDB, closeTenant, err := openTenantDB(t.Slug, &t.Database)
		if err != nil {
			log.Fatal("Failed to connect to tenant=%s database: %v", t.Slug, err)
		}
		defer closeTenant()
		registry.Register(t.Slug, tenantDB)
		log.Info("Connected to database for tenant=%s (host=%s, db=%s)",
			t.Slug, t.Database.Host, t.Database.DBName)
	}

	// Репозитории работают через дефолтный пул; пул тенанта и
	// транзакция приходят через контекст запроса
	bookingRepository := bookingRepo.NewRepository(defaultDB)
	scheduleRepository := scheduleRepo.NewRepository(defaultDB)
	holdRepository := holdRepo.NewRepository(defaultDB)
	catalogRepository := catalogRepo.NewRepository(defaultDB)

	txMgr := txmanager.NewTransactionManager(defaultDB)

	// Use cases
	computeAvailabilityUseCase := computeAvailabilityUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		holdRepository,
		catalogRepository,
		log,
	)

	findNextSlotUseCase := findNextSlotUC.NewUseCase(computeAvailabilityUseCase, log)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		holdRepository,
		catalogRepository,
		txMgr,
		log,
	)

	createHoldUseCase := createHoldUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		holdRepository,
		catalogRepository,
		txMgr,
		cfg.Holds.TTLMinutes,
		log,
	)

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, txMgr, log)

	// Handlers
	getAvailability := getAvailabilityHandler.NewHandler(computeAvailabilityUseCase, log)
	getNextSlot := getNextSlotHandler.NewHandler(findNextSlotUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createHold := createHoldHandler.NewHandler(createHoldUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getBarberSchedule := getBarberScheduleHandler.NewHandler(scheduleSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(scheduleSvc, log)

	// Фоновая очистка протухших holds по всем тенантам
	holdsCleanup, err := jobs.NewHoldsCleanup(cfg.Holds.CleanupSchedule, holdRepository, registry, log)
	if err != nil {
		log.Fatal("Failed to schedule holds cleanup: %v", err)
	}
	holdsCleanup.Start()
	log.Info("Holds cleanup scheduled: %s", cfg.Holds.CleanupSchedule)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix: все маршруты проходят через tenant middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Tenant(registry))

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Отчет о доступности барбера по диапазону дат
	api.HandleFunc("/barbers/{barberId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Поиск ближайшего доступного слота
	api.HandleFunc("/barbers/{barberId}/next-slot", getNextSlot.Handle).Methods(http.MethodGet)

	// Недельное расписание барбера
	api.HandleFunc("/barbers/{barberId}/schedule", getBarberSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// --- Holds ---
	protected.HandleFunc("/holds", createHold.Handle).Methods(http.MethodPost)

	// --- Управление расписанием ---
	protected.HandleFunc("/barbers/{barberId}/working-hours", updateWorkingHours.Handle).Methods(http.MethodPut)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	holdsCleanup.Stop()
	log.Info("Holds cleanup stopped")

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
