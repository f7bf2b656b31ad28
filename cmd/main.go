package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	calendarpb "github.com/Leganyst/crew-platform/internal/api/calendar/v1"
	"github.com/Leganyst/crew-platform/internal/auth"
	"github.com/Leganyst/crew-platform/internal/cache"
	"github.com/Leganyst/crew-platform/internal/config"
	"github.com/Leganyst/crew-platform/internal/db"
	"github.com/Leganyst/crew-platform/internal/httpapi"
	"github.com/Leganyst/crew-platform/internal/logging"
	"github.com/Leganyst/crew-platform/internal/model"
	"github.com/Leganyst/crew-platform/internal/notify"
	"github.com/Leganyst/crew-platform/internal/repository"
	"github.com/Leganyst/crew-platform/internal/service"
)

func main() {
	configPath := flag.String("config", os.Getenv("CREW_CONFIG"), "path to YAML config")
	flag.Parse()

	// 1. Конфиг: значения по умолчанию, YAML, окружение.
	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logging.New(cfg.Development())

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(&cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("init db")
	}

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("auto migrate")
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("sql DB")
	}
	defer sqlDB.Close()

	// 4. Репозитории (реализации на GORM).
	jobRepo := repository.NewGormJobRepository(gormDB)
	techRepo := repository.NewGormTechnicianRepository(gormDB)
	assignmentRepo := repository.NewGormAssignmentRepository(gormDB)
	locationRepo := repository.NewGormLocationRepository(gormDB)
	profileRepo := repository.NewGormProfileRepository(gormDB)
	eventRepo := repository.NewGormEventRepository(gormDB)

	// 5. Кэш выборок и рассылка инвалидаций.
	store, closeCache := newCache(cfg, log)
	defer closeCache()

	// 6. Уведомления о назначениях.
	dispatcher := notify.NewDispatcher(newNotifier(cfg, jobRepo, techRepo, log), log, cfg.SMTP.Timeout, 4)
	defer dispatcher.Close()

	// 7. Сервисы.
	audit := service.NewAuditor(eventRepo, log)
	issuer := auth.NewIssuer(cfg.JWT.Secret, cfg.JWT.Duration)

	jobSvc := service.NewJobService(jobRepo, locationRepo, assignmentRepo, store, audit, log)
	services := httpapi.Services{
		Jobs:        jobSvc,
		Assignments: service.NewAssignmentService(assignmentRepo, jobRepo, techRepo, dispatcher, store, audit, log),
		Technicians: service.NewTechnicianService(techRepo, assignmentRepo, store, audit, log),
		Locations:   service.NewLocationService(locationRepo, store),
		Identity:    service.NewIdentityService(profileRepo, issuer, store, audit, log),
	}

	// 8. HTTP API.
	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httpapi.NewRouter(httpapi.NewHandler(services, log), cfg.HTTP.AllowedOrigins),
		ReadHeaderTimeout: cfg.HTTP.Timeout,
		ReadTimeout:       cfg.HTTP.Timeout,
		WriteTimeout:      cfg.HTTP.Timeout,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr).Msg("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http serve")
		}
	}()

	// 9. gRPC-сервис календаря (только чтение, нужен токен).
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(auth.UnaryServerInterceptor(issuer, services.Identity.Profiles())),
	)
	calendarpb.RegisterCalendarServiceServer(grpcServer, service.NewCalendarService(jobSvc))
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.GRPC.Addr).Msg("listen")
	}
	go func() {
		log.Info().Str("addr", cfg.GRPC.Addr).Msg("grpc server listening")
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal().Err(err).Msg("grpc serve")
		}
	}()

	// 10. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	grpcServer.GracefulStop()
}

// newCache собирает хранилище кэша. При заданном NATS_URL инвалидации
// расходятся по остальным экземплярам сервиса.
func newCache(cfg *config.Config, log zerolog.Logger) (cache.Store, func()) {
	var store cache.Store
	closers := []func(){}

	switch cfg.Cache.Backend {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.ConnectRedis(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("connect redis")
		}
		closers = append(closers, func() { _ = client.Close() })
		store = cache.NewRedis(client, cfg.Cache.TTL)
	default:
		store = cache.NewMemory(cfg.Cache.TTL)
	}

	if cfg.NATS.URL != "" {
		conn, err := nats.Connect(cfg.NATS.URL, nats.Name("crew-platform"))
		if err != nil {
			log.Fatal().Err(err).Msg("connect nats")
		}
		b := cache.NewBroadcast(store, conn, cfg.NATS.Subject, log)
		if err := b.Subscribe(); err != nil {
			log.Fatal().Err(err).Msg("subscribe nats")
		}
		closers = append(closers, func() { _ = b.Close() }, conn.Close)
		store = b
	}

	return store, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
}

func newNotifier(cfg *config.Config, jobs notify.JobLookup, techs notify.TechnicianLookup, log zerolog.Logger) notify.Notifier {
	if cfg.SMTP.Host == "" {
		return notify.NewLogNotifier(log)
	}

	loc, err := time.LoadLocation(cfg.DB.TimeZone)
	if err != nil {
		log.Warn().Err(err).Str("tz", cfg.DB.TimeZone).Msg("unknown time zone, using UTC")
		loc = time.UTC
	}
	m, err := notify.NewMailNotifier(cfg.SMTP, jobs, techs, loc)
	if err != nil {
		log.Fatal().Err(err).Msg("init mail notifier")
	}
	return m
}
