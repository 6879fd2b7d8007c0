package internal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/multierr"

	"github.com/2beens/gymreports/internal/cache"
	"github.com/2beens/gymreports/internal/coaches"
	"github.com/2beens/gymreports/internal/config"
	"github.com/2beens/gymreports/internal/dashboard"
	"github.com/2beens/gymreports/internal/db"
	"github.com/2beens/gymreports/internal/fonts"
	"github.com/2beens/gymreports/internal/middleware"
	"github.com/2beens/gymreports/internal/misc"
	"github.com/2beens/gymreports/internal/notifier"
	"github.com/2beens/gymreports/internal/pdfreport"
	"github.com/2beens/gymreports/internal/reports"
	"github.com/2beens/gymreports/internal/telemetry/metrics"
	"github.com/2beens/gymreports/internal/telemetry/tracing"
)

const dashboardImageCacheBytes = 64 * 1024 * 1024

type reportsStore interface {
	Add(ctx context.Context, report reports.Report) (*reports.Report, error)
	Get(ctx context.Context, id int64) (*reports.Report, error)
	ListByPatient(ctx context.Context, patientID string) ([]reports.Report, error)
}

type coachesStore interface {
	Add(ctx context.Context, coach coaches.Coach) (*coaches.Coach, error)
	List(ctx context.Context) ([]coaches.Coach, error)
}

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config  *config.Config
	dbPool  *pgxpool.Pool // postgres store
	sqlDB   *sql.DB       // sqlite store
	reports reportsStore
	coaches coachesStore

	font        *fonts.Font
	imageCache  *cache.ImageCache
	redisClient *redis.Client

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	s := &Server{
		config:      params.Config,
		versionInfo: params.VersionInfo,
	}

	var extraCollectors []prometheus.Collector
	switch params.Config.StoreDriver {
	case config.StoreDriverPostgres:
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         params.Config.PostgresHost,
			DBPort:         params.Config.PostgresPort,
			DBName:         params.Config.PostgresDBName,
			TracingEnabled: params.HoneycombTracingEnabled,
			MaxConns:       params.Config.PostgresMaxConns,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}
		if err := db.EnsurePostgresSchema(ctx, dbPool); err != nil {
			dbPool.Close()
			return nil, err
		}
		s.dbPool = dbPool
		s.reports = reports.NewPsqlRepo(dbPool)
		s.coaches = coaches.NewPsqlRepo(dbPool)
		extraCollectors = append(extraCollectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": params.Config.PostgresDBName},
		))
	case config.StoreDriverMemory:
		log.Warnln("using in-memory store, reports will not survive a restart")
		s.reports = reports.NewMemRepo()
		s.coaches = coaches.NewMemRepo()
	default:
		sqlDB, err := db.OpenSQLite(ctx, params.Config.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		s.sqlDB = sqlDB
		s.reports = reports.NewSQLiteRepo(sqlDB)
		s.coaches = coaches.NewSQLiteRepo(sqlDB)
	}

	s.promRegistry = metrics.SetupPrometheus(extraCollectors...)
	s.metricsManager = metrics.NewManager("gymreports", "main", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0)

	if params.Config.RateLimitEnabled() {
		s.redisClient = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})
		rdbStatus := s.redisClient.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
	}

	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "gymreports-backend")
	if err != nil {
		return nil, err
	}
	s.otelShutdown = otelShutdown

	// a missing font is not fatal: dashboards fall back to the Go font,
	// PDF generation fails per request with a clear message
	s.font, err = fonts.Load(params.Config.FontPath)
	if err != nil {
		log.Errorf("load font [%s]: %s", params.Config.FontPath, err)
	}

	s.imageCache, err = cache.NewImageCache(dashboardImageCacheBytes)
	if err != nil {
		return nil, fmt.Errorf("new dashboard image cache: %w", err)
	}

	return s, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	miscHandler := misc.NewHandler(s.versionInfo)
	miscHandler.SetupRoutes(r)

	reportsService := reports.NewService(reports.ServiceParams{
		Repo: s.reports,
		Dashboard: dashboard.NewComposer(dashboard.ComposerParams{
			OutputDir: s.config.OutputDir,
			Font:      s.font,
		}),
		PDF: pdfreport.NewComposer(pdfreport.ComposerParams{
			OutputDir: s.config.OutputDir,
			Font:      s.font,
			FontPath:  s.config.FontPath,
		}),
		Mailer:         notifier.New(s.config.SMTPHost, s.config.SMTPPort),
		MetricsManager: s.metricsManager,
	})
	reportsHandler := reports.NewHandler(reports.HandlerParams{
		Generator: reportsService,
		Repo:      s.reports,
		Images:    reports.NewDashboardImages(s.imageCache),
		FontPath:  s.config.FontPath,
	})

	var generateHandler http.Handler = http.HandlerFunc(reportsHandler.HandleGenerate)
	if s.redisClient != nil {
		generateHandler = middleware.RateLimit(
			redis_rate.NewLimiter(s.redisClient),
			"generate-report",
			s.config.GenerateRateLimitPerMin,
			s.metricsManager,
		)(generateHandler)
	}
	r.Handle("/generate_report", generateHandler).Methods("POST", "OPTIONS").Name("generate-report")
	r.HandleFunc("/view_report/{id:[0-9]+}", reportsHandler.HandleView).Methods("GET").Name("view-report")
	r.HandleFunc("/download_report/{id:[0-9]+}", reportsHandler.HandleDownload).Methods("GET").Name("download-report")
	r.HandleFunc("/reports/{patient_id}", reportsHandler.HandleHistory).Methods("GET").Name("patient-reports")

	coachesHandler := coaches.NewHandler(s.coaches, s.metricsManager)
	r.HandleFunc("/api/coaches", coachesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-coaches")
	r.HandleFunc("/api/coaches", coachesHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-coach")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler: router,
		Addr:    ipAndPort,
		// rendering a dashboard and a pdf, plus sending two emails, can take a while
		WriteTimeout: 2 * time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// GracefulShutdown stops accepting requests first, then releases the store and clients
func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown http server: %w", shutdownErr))
		}
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		if shutdownErr := s.metricsHttpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown metrics http server: %w", shutdownErr))
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if closeErr := s.redisClient.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close redis client: %w", closeErr))
		}
	}

	if s.imageCache != nil {
		s.imageCache.Close()
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}
	if s.sqlDB != nil {
		if closeErr := s.sqlDB.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close sqlite db: %w", closeErr))
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	return err
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
