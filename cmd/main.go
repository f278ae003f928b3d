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
	"github.com/robfig/cron/v3"

	cancelBookingHandler "github.com/coworking-lounge/zone-service/internal/api/handlers/cancel_booking"
	checkoutHandler "github.com/coworking-lounge/zone-service/internal/api/handlers/checkout"
	createBookingHandler "github.com/coworking-lounge/zone-service/internal/api/handlers/create_booking"
	getBookingHandler "github.com/coworking-lounge/zone-service/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/coworking-lounge/zone-service/internal/api/handlers/get_user_bookings"
	paymentCallbackHandler "github.com/coworking-lounge/zone-service/internal/api/handlers/payment_callback"
	purchaseSubscriptionHandler "github.com/coworking-lounge/zone-service/internal/api/handlers/purchase_subscription"
	updateBookingHandler "github.com/coworking-lounge/zone-service/internal/api/handlers/update_booking"
	"github.com/coworking-lounge/zone-service/internal/api/middleware"
	"github.com/coworking-lounge/zone-service/internal/config"
	"github.com/coworking-lounge/zone-service/internal/domain"
	"github.com/coworking-lounge/zone-service/internal/infra/cache"
	"github.com/coworking-lounge/zone-service/internal/infra/mq"
	bookingRepo "github.com/coworking-lounge/zone-service/internal/infra/storage/booking"
	catalogRepo "github.com/coworking-lounge/zone-service/internal/infra/storage/catalog"
	handoffRepo "github.com/coworking-lounge/zone-service/internal/infra/storage/handoff"
	subscriptionRepo "github.com/coworking-lounge/zone-service/internal/infra/storage/subscription"
	paymentGatewayClient "github.com/coworking-lounge/zone-service/internal/integrations/paymentgateway"
	bookingsService "github.com/coworking-lounge/zone-service/internal/service/bookings"
	pricingService "github.com/coworking-lounge/zone-service/internal/service/pricing"
	subscriptionsService "github.com/coworking-lounge/zone-service/internal/service/subscriptions"
	checkoutUC "github.com/coworking-lounge/zone-service/internal/usecase/checkout"
	createBookingUC "github.com/coworking-lounge/zone-service/internal/usecase/create_booking"
	purchaseSubscriptionUC "github.com/coworking-lounge/zone-service/internal/usecase/purchase_subscription"
	updateBookingUC "github.com/coworking-lounge/zone-service/internal/usecase/update_booking"
	"github.com/coworking-lounge/zone-service/pkg/dbmetrics"
	"github.com/coworking-lounge/zone-service/pkg/logger"
	"github.com/coworking-lounge/zone-service/pkg/metrics"
	"github.com/coworking-lounge/zone-service/pkg/simpletxmanager"
	"github.com/coworking-lounge/zone-service/pkg/txmanager"
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

	log.Info("Starting zone-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
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

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		catalogRepository      *catalogRepo.Repository
		subscriptionRepository *subscriptionRepo.Repository
		handoffRepository      *handoffRepo.Repository
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		subscriptionRepository = subscriptionRepo.NewRepository(wrappedDB)
		handoffRepository = handoffRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		subscriptionRepository = subscriptionRepo.NewRepository(db)
		handoffRepository = handoffRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Каталог комнат и тарифов: напрямую из базы либо через redis кэш
	type CatalogProvider interface {
		GetRoomByID(ctx context.Context, id int64) (*domain.Room, error)
		GetTariffByRoomType(ctx context.Context, roomType domain.RoomType) (*domain.Tariff, error)
	}
	var catalog CatalogProvider = catalogRepository

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}

		catalog = cache.NewCatalogCache(
			catalogRepository,
			redisClient,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second,
			log,
		)
		log.Info("Catalog cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}

	// Издатель событий: RabbitMQ либо заглушка
	type Notifier interface {
		BookingConfirmed(ctx context.Context, booking *domain.Booking) error
		SubscriptionExpired(ctx context.Context, entry *domain.UserSubscription) error
	}
	var notifier Notifier = mq.NopPublisher{}

	if cfg.MQ.Enabled {
		notifier = mq.NewPublisher(cfg.MQ.URL, log)
		log.Info("RabbitMQ notifications enabled (url=%s)", cfg.MQ.URL)
	}

	// Клиент платёжного шлюза
	gatewayClient := paymentGatewayClient.NewClient(
		cfg.PaymentGateway.URL,
		cfg.PaymentGateway.Currency,
		time.Duration(cfg.PaymentGateway.Timeout)*time.Second,
		log,
	)
	log.Info("Payment gateway client initialized (url=%s, currency=%s, timeout=%ds)",
		cfg.PaymentGateway.URL, cfg.PaymentGateway.Currency, cfg.PaymentGateway.Timeout)

	// Инициализируем сервисы
	priceResolver := pricingService.NewResolver(catalog, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	subscriptionSvc := subscriptionsService.NewService(
		subscriptionRepository,
		notifier,
		&subscriptionsService.RealTimeProvider{},
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalog,
		subscriptionRepository,
		priceResolver,
		txMgr,
		notifier,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		catalog,
		subscriptionRepository,
		priceResolver,
		txMgr,
		log,
	)
	checkoutUseCase := checkoutUC.NewUseCase(
		bookingRepository,
		catalog,
		subscriptionRepository,
		priceResolver,
		handoffRepository,
		gatewayClient,
		txMgr,
		notifier,
		log,
	)
	purchaseSubscriptionUseCase := purchaseSubscriptionUC.NewUseCase(
		subscriptionRepository,
		txMgr,
		log,
	)

	// Фоновая рассылка уведомлений об истёкших подписках
	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.Subscriptions.SweepSchedule, func() {
		subscriptionSvc.NotifyExpired(context.Background())
	}); err != nil {
		log.Fatal("Failed to schedule subscription sweeper: %v", err)
	}
	sweeper.Start()
	log.Info("Subscription sweeper scheduled (%s)", cfg.Subscriptions.SweepSchedule)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	purchaseSubscription := purchaseSubscriptionHandler.NewHandler(purchaseSubscriptionUseCase, log)
	checkout := checkoutHandler.NewHandler(checkoutUseCase, log)
	paymentCallback := paymentCallbackHandler.NewHandler(checkoutUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Callback платёжного шлюза
	api.HandleFunc("/payments/callback", paymentCallback.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Изменение интервала бронирования
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Подписки ---
	// Покупка или продление подписки
	protected.HandleFunc("/subscriptions", purchaseSubscription.Handle).Methods(http.MethodPost)

	// --- Оплата ---
	// Оформление брони с оплатой
	protected.HandleFunc("/checkout", checkout.Handle).Methods(http.MethodPost)

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

	// Останавливаем планировщик подписок
	sweeperCtx := sweeper.Stop()
	<-sweeperCtx.Done()
	log.Info("Subscription sweeper stopped")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
