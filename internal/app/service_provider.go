package app

import (
	"context"
	"net/http"
	"time"

	authAPI "tosipeli/internal/api/auth"
	spinAPI "tosipeli/internal/api/spin"
	"tosipeli/internal/client/firebase"
	"tosipeli/internal/config"
	"tosipeli/internal/config/env"
	"tosipeli/internal/events"
	"tosipeli/internal/logger"
	"tosipeli/internal/metrics"
	"tosipeli/internal/repository"
	"tosipeli/internal/repository/auth_repo"
	"tosipeli/internal/repository/identity_repo"
	"tosipeli/internal/repository/preference_repo"
	"tosipeli/internal/repository/profile_repo"
	"tosipeli/internal/repository/session_repo"
	"tosipeli/internal/repository/stats_repo"
	"tosipeli/internal/repository/user_repo"
	"tosipeli/internal/service"
	"tosipeli/internal/service/auth"
	"tosipeli/internal/service/spin"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ServiceProvider builds every dependency lazily, on first use.
// Configuration errors are fatal and panic.
type ServiceProvider struct {
	// Logging and metrics
	logCfg   config.LogConfig
	logger   *zerolog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	// TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Identity and profile backends
	identityCfg    config.IdentityConfig
	jwtConfig      config.JWTConfig
	firebaseCfg    config.FirebaseConfig
	firebaseClient *firebase.Client
	authRepo       repository.AuthRepository
	userRepo       repository.UserRepository
	identityRepo   repository.IdentityRepository
	profileRepo    repository.ProfileRepository

	// Lead events
	kafkaCfg config.KafkaConfig
	leads    events.LeadPublisher

	// Play state
	redisCfg    config.RedisConfig
	redisClient *redis.Client
	prefsRepo   repository.PreferenceRepository
	sessionRepo repository.PlaySessionRepository
	statsRepo   repository.StatsRepository

	// Game
	gameCfg  config.GameConfig
	spinServ service.SpinService
	spinHand *spinAPI.Handler

	// Auth
	authServ service.AuthService
	authHand *authAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router

	closers []func()
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Logger() zerolog.Logger {
	if sp.logger == nil {
		l := logger.New(sp.LogCfg())
		sp.logger = &l
	}
	return *sp.logger
}

func (sp *ServiceProvider) Registry() *prometheus.Registry {
	if sp.registry == nil {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		sp.registry = reg
	}
	return sp.registry
}

func (sp *ServiceProvider) Metrics() *metrics.Metrics {
	if sp.metrics == nil {
		sp.metrics = metrics.New(sp.Registry())
	}
	return sp.metrics
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
		sp.closers = append(sp.closers, dbc.Close)
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}
		sp.txManager = m
	}
	return sp.txManager
}

func (sp *ServiceProvider) IdentityCfg() config.IdentityConfig {
	if sp.identityCfg == nil {
		cfg, err := env.NewIdentityConfig()
		if err != nil {
			panic("failed to get identity config: " + err.Error())
		}
		sp.identityCfg = cfg
	}
	return sp.identityCfg
}

func (sp *ServiceProvider) JWTConfig() config.JWTConfig {
	if sp.jwtConfig == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtConfig = cfg
	}
	return sp.jwtConfig
}

func (sp *ServiceProvider) FirebaseCfg() config.FirebaseConfig {
	if sp.firebaseCfg == nil {
		cfg, err := env.NewFirebaseConfig()
		if err != nil {
			panic("failed to get firebase config: " + err.Error())
		}
		sp.firebaseCfg = cfg
	}
	return sp.firebaseCfg
}

func (sp *ServiceProvider) FirebaseClient() *firebase.Client {
	if sp.firebaseClient == nil {
		cfg := sp.FirebaseCfg()
		sp.firebaseClient = firebase.NewClient(
			&http.Client{Timeout: cfg.Timeout()},
			cfg,
			logger.WithComponent(sp.Logger(), "firebase"),
		)
	}
	return sp.firebaseClient
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx))
	}
	return sp.authRepo
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) useFirebase() bool {
	return sp.IdentityCfg().Backend() == config.IdentityBackendFirebase
}

func (sp *ServiceProvider) IdentityRepo(ctx context.Context) repository.IdentityRepository {
	if sp.identityRepo == nil {
		if sp.useFirebase() {
			sp.identityRepo = sp.FirebaseClient()
		} else {
			sp.identityRepo = identity_repo.NewIdentityRepository(
				sp.TXManager(ctx),
				sp.UserRepo(ctx),
				sp.AuthRepo(ctx),
				sp.JWTConfig(),
			)
		}
	}
	return sp.identityRepo
}

func (sp *ServiceProvider) ProfileRepo(ctx context.Context) repository.ProfileRepository {
	if sp.profileRepo == nil {
		if sp.useFirebase() {
			sp.profileRepo = sp.FirebaseClient()
		} else {
			sp.profileRepo = profile_repo.NewProfileRepository(sp.DBClient(ctx))
		}
	}
	return sp.profileRepo
}

func (sp *ServiceProvider) KafkaCfg() config.KafkaConfig {
	if sp.kafkaCfg == nil {
		cfg, err := env.NewKafkaConfig()
		if err != nil {
			panic("failed to get kafka config: " + err.Error())
		}
		sp.kafkaCfg = cfg
	}
	return sp.kafkaCfg
}

func (sp *ServiceProvider) LeadPublisher() events.LeadPublisher {
	if sp.leads == nil {
		cfg := sp.KafkaCfg()
		if cfg.Enabled() {
			sp.leads = events.NewKafkaPublisher(cfg.Brokers(), cfg.LeadTopic(), sp.Logger())
		} else {
			sp.leads = events.NewNoop()
		}

		leads := sp.leads
		sp.closers = append(sp.closers, func() {
			if err := leads.Close(); err != nil {
				sp.Logger().Error().Err(err).Msg("close lead publisher")
			}
		})
	}
	return sp.leads
}

func (sp *ServiceProvider) RedisCfg() config.RedisConfig {
	if sp.redisCfg == nil {
		cfg, err := env.NewRedisConfig()
		if err != nil {
			panic("failed to get redis config: " + err.Error())
		}
		sp.redisCfg = cfg
	}
	return sp.redisCfg
}

func (sp *ServiceProvider) RedisClient(ctx context.Context) *redis.Client {
	if sp.redisClient == nil {
		cfg := sp.RedisCfg()
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Addr(),
			Password:     cfg.Password(),
			DB:           cfg.DB(),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			panic("failed to ping redis: " + err.Error())
		}

		sp.redisClient = client
		sp.closers = append(sp.closers, func() { _ = client.Close() })
	}
	return sp.redisClient
}

func (sp *ServiceProvider) PreferenceRepo(ctx context.Context) repository.PreferenceRepository {
	if sp.prefsRepo == nil {
		if sp.RedisCfg().Enabled() {
			sp.prefsRepo = preference_repo.NewRedisRepository(sp.RedisClient(ctx))
		} else {
			sp.Logger().Warn().Msg("REDIS_ADDR not set, last preferences are kept in memory")
			sp.prefsRepo = preference_repo.NewMemoryRepository()
		}
	}
	return sp.prefsRepo
}

func (sp *ServiceProvider) SessionRepo() repository.PlaySessionRepository {
	if sp.sessionRepo == nil {
		sp.sessionRepo = session_repo.NewSessionRepository()
	}
	return sp.sessionRepo
}

func (sp *ServiceProvider) StatsRepo() repository.StatsRepository {
	if sp.statsRepo == nil {
		sp.statsRepo = stats_repo.NewStatsRepository()
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) GameCfg() config.GameConfig {
	if sp.gameCfg == nil {
		cfg, err := env.NewGameConfigFromYAML(env.GameConfigPath())
		if err != nil {
			panic("failed to get game config: " + err.Error())
		}
		sp.gameCfg = cfg
	}
	return sp.gameCfg
}

func (sp *ServiceProvider) SpinService(ctx context.Context) service.SpinService {
	if sp.spinServ == nil {
		cfg := sp.GameCfg()
		sp.spinServ = spin.NewSpinService(
			sp.SessionRepo(),
			sp.PreferenceRepo(ctx),
			sp.StatsRepo(),
			sp.Metrics(),
			sp.Logger(),
			cfg.Catalog(),
			cfg.CenterWinProbability(),
			nil,
		)
	}
	return sp.spinServ
}

func (sp *ServiceProvider) SpinHandler(ctx context.Context) *spinAPI.Handler {
	if sp.spinHand == nil {
		sp.spinHand = spinAPI.NewHandler(spinAPI.HandlerDeps{
			Serv: sp.SpinService(ctx),
		})
	}
	return sp.spinHand
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewAuthService(
			sp.IdentityRepo(ctx),
			sp.ProfileRepo(ctx),
			sp.LeadPublisher(),
			sp.Metrics(),
			sp.Logger(),
		)
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{
			Auth: sp.AuthService(ctx),
			Spin: sp.SpinService(ctx),
		})
	}
	return sp.authHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}
	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		sp.router = NewRouter(
			sp.Logger(),
			sp.Registry(),
			sp.AuthHandler(ctx),
			sp.SpinHandler(ctx),
		)
	}
	return sp.router
}

// Close releases pools and flushes publishers in reverse creation order
func (sp *ServiceProvider) Close() {
	for i := len(sp.closers) - 1; i >= 0; i-- {
		sp.closers[i]()
	}
	sp.closers = nil
}
