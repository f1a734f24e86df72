package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/bioprephq/bioprep/internal/api"
	"github.com/bioprephq/bioprep/internal/auth"
	"github.com/bioprephq/bioprep/internal/builder"
	"github.com/bioprephq/bioprep/internal/catalog"
	"github.com/bioprephq/bioprep/internal/event"
	"github.com/bioprephq/bioprep/internal/source"
	"github.com/bioprephq/bioprep/internal/stats"
	"github.com/bioprephq/bioprep/internal/store"
	"github.com/bioprephq/bioprep/internal/telemetry"
)

type RedisConfig struct {
	Addrs  []string
	Pass   string
	Prefix string
}

type Config struct {
	HTTP struct {
		Port int32
	}

	Auth struct {
		Email       string
		Pass        string
		TokenSecret string
		TokenTTL    time.Duration
	}

	Source struct {
		// URL points at a JSON collection endpoint; CoursesFile and
		// ExamsFile point at local fixtures. When all are empty the
		// built-in seed catalog is served.
		URL         string
		CoursesFile string
		ExamsFile   string
		CacheTTL    time.Duration
	}

	Redis struct {
		Session RedisConfig
		Stats   RedisConfig
		Pubsub  RedisConfig
	}

	Postgres struct {
		// Catalog is optional; with an empty Addr created records live in
		// process memory.
		Catalog struct {
			Addr string
			User string
			Pass string
			Name string
		}
	}
}

type Server struct {
	c Config

	eb      *event.Bus
	metrics *telemetry.Metrics

	infra struct {
		redis struct {
			session redis.UniversalClient
			stats   redis.UniversalClient
			pubsub  redis.UniversalClient
		}

		postgres struct {
			catalog *pgxpool.Pool
		}
	}

	service struct {
		auth    *auth.Service
		catalog *catalog.Service
		builder *builder.Service
		stats   *stats.Service
	}

	http *http.Server
}

func Init(c Config) (*Server, error) {
	s := &Server{c: c}

	s.eb = event.NewBus()
	s.metrics = telemetry.NewMetrics(prometheus.DefaultRegisterer)

	if err := s.initInfra(); err != nil {
		return nil, fmt.Errorf("server: init infra: %w", err)
	}

	s.initService()
	s.initAPI()
	return s, nil
}

func (s *Server) initInfra() error {
	if err := s.initRedis(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}

	if err := s.initPostgres(); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}

	return nil
}

func (s *Server) initRedis() error {
	connect := func(addrs []string, pass string) (redis.UniversalClient, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		r := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:    addrs,
			Password: pass,
		})

		if err := telemetry.MonitorRedis(r); err != nil {
			return nil, err
		}

		if err := r.Ping(ctx).Err(); err != nil {
			return nil, err
		}

		return r, nil
	}

	var err error
	s.infra.redis.session, err = connect(s.c.Redis.Session.Addrs, s.c.Redis.Session.Pass)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}

	s.infra.redis.stats, err = connect(s.c.Redis.Stats.Addrs, s.c.Redis.Stats.Pass)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	s.infra.redis.pubsub, err = connect(s.c.Redis.Pubsub.Addrs, s.c.Redis.Pubsub.Pass)
	if err != nil {
		return fmt.Errorf("pubsub: %w", err)
	}

	return nil
}

func (s *Server) initPostgres() (err error) {
	pc := s.c.Postgres.Catalog
	if pc.Addr == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cc, err := pgxpool.ParseConfig(fmt.Sprintf("postgres://%s:%s@%s/%s", pc.User, pc.Pass, pc.Addr, pc.Name))
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	db, err := pgxpool.NewWithConfig(ctx, cc)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	s.infra.postgres.catalog = db
	return nil
}

func (s *Server) initService() {
	var repo store.Repository = store.NewMemory()
	if s.infra.postgres.catalog != nil {
		repo = store.NewPostgres(s.infra.postgres.catalog)
	}

	s.service.auth = auth.NewService(auth.Config{
		Credentials: auth.Credentials{
			Email:    s.c.Auth.Email,
			Password: s.c.Auth.Pass,
		},
		TokenSecret: s.c.Auth.TokenSecret,
		TokenTTL:    s.c.Auth.TokenTTL,
		Sessions:    auth.NewRedisStore(s.infra.redis.session, s.c.Redis.Session.Prefix),
		EventBus:    s.eb,
		Metrics:     s.metrics,
	})

	s.service.catalog = catalog.NewService(catalog.Config{
		Source:  s.newSource(),
		Repo:    repo,
		Metrics: s.metrics,
	})

	s.service.builder = builder.NewService(builder.Config{
		Repo:     repo,
		EventBus: s.eb,
		Metrics:  s.metrics,
	})

	s.service.stats = stats.NewService(stats.Config{
		EventBus: s.eb,
		Redis:    s.infra.redis.stats,
		Prefix:   s.c.Redis.Stats.Prefix,
	})
}

func (s *Server) newSource() source.Source {
	var src source.Source
	switch {
	case s.c.Source.URL != "":
		src = source.NewHTTPSource(s.c.Source.URL, nil)
	case s.c.Source.CoursesFile != "" || s.c.Source.ExamsFile != "":
		src = source.NewFileSource(map[string]string{
			source.ResourceCourses: s.c.Source.CoursesFile,
			source.ResourceExams:   s.c.Source.ExamsFile,
		})
	default:
		src = source.Builtin()
	}

	if s.c.Source.CacheTTL > 0 {
		src = source.NewCached(src, s.c.Source.CacheTTL)
	}
	return src
}

func (s *Server) initAPI() {
	e := gin.New()
	e.GET("/metrics", gin.WrapH(promhttp.Handler()))
	pprof.Register(e, "/debug/pprof")
	e.Use(gin.Recovery())

	api.New(api.Config{
		Router:       e,
		EventBus:     s.eb,
		Auth:         s.service.auth,
		Catalog:      s.service.catalog,
		Builder:      s.service.builder,
		Stats:        s.service.stats,
		Redis:        s.infra.redis.pubsub,
		PubsubPrefix: s.c.Redis.Pubsub.Prefix,
	})

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.c.HTTP.Port),
		Handler:           e,
		ReadHeaderTimeout: 60 * time.Second,
	}
}

func (s *Server) Start() {
	ctx := context.TODO()

	var eg errgroup.Group
	eg.Go(func() error {
		slog.InfoContext(ctx, fmt.Sprintf("server: HTTP listening on port %d", s.c.HTTP.Port))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		slog.ErrorContext(ctx, "server: shutdown with error", "error", err)
	}
}

func (s *Server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "server: shutdown HTTP failed", "error", err)
	}

	s.eb.Stop()

	slog.InfoContext(ctx, "server: shutdown completed")
}
