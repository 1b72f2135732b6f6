package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	authapp "github.com/wyfcoding/khamyang/internal/auth/application"
	authdomain "github.com/wyfcoding/khamyang/internal/auth/domain"
	authmemory "github.com/wyfcoding/khamyang/internal/auth/infrastructure/persistence/memory"
	authmongo "github.com/wyfcoding/khamyang/internal/auth/infrastructure/persistence/mongodb"
	authredis "github.com/wyfcoding/khamyang/internal/auth/infrastructure/persistence/redis"
	authsql "github.com/wyfcoding/khamyang/internal/auth/infrastructure/persistence/sqldb"
	authhttp "github.com/wyfcoding/khamyang/internal/auth/interfaces/http"
	dictapp "github.com/wyfcoding/khamyang/internal/dictionary/application"
	dictdomain "github.com/wyfcoding/khamyang/internal/dictionary/domain"
	dictmongo "github.com/wyfcoding/khamyang/internal/dictionary/infrastructure/persistence/mongodb"
	dictsql "github.com/wyfcoding/khamyang/internal/dictionary/infrastructure/persistence/sqldb"
	dicthttp "github.com/wyfcoding/khamyang/internal/dictionary/interfaces/http"
	marketapp "github.com/wyfcoding/khamyang/internal/marketplace/application"
	marketdomain "github.com/wyfcoding/khamyang/internal/marketplace/domain"
	marketmongo "github.com/wyfcoding/khamyang/internal/marketplace/infrastructure/persistence/mongodb"
	marketsql "github.com/wyfcoding/khamyang/internal/marketplace/infrastructure/persistence/sqldb"
	markethttp "github.com/wyfcoding/khamyang/internal/marketplace/interfaces/http"
	"github.com/wyfcoding/khamyang/pkg/config"
	"github.com/wyfcoding/khamyang/pkg/db"
	"github.com/wyfcoding/khamyang/pkg/errs"
	"github.com/wyfcoding/khamyang/pkg/logger"
	"github.com/wyfcoding/khamyang/pkg/metrics"
	"github.com/wyfcoding/khamyang/pkg/mongodb"
	"github.com/wyfcoding/khamyang/pkg/mq"
	"github.com/wyfcoding/khamyang/pkg/upload"
	"golang.org/x/sync/errgroup"

	mid "github.com/wyfcoding/khamyang/pkg/middleware"
)

// repositories 按存储后端组装的全部仓储
type repositories struct {
	users    authdomain.UserRepository
	admins   authdomain.AdminRepository
	words    dictdomain.WordRepository
	songs    dictdomain.SongRepository
	sellers  marketdomain.SellerRepository
	products marketdomain.ProductRepository

	close func() error
}

func main() {
	configPath := flag.String("config", "configs/config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	logger.Info(ctx, "Starting service",
		"service", cfg.ServiceName,
		"version", cfg.Version,
		"environment", cfg.Environment,
		"storage", cfg.Storage.Backend,
	)

	m := metrics.New(cfg.ServiceName)
	if cfg.Metrics.Enabled {
		if err := m.Register(); err != nil {
			logger.Fatal(ctx, "Failed to register metrics", "error", err)
		}
		if err := metrics.StartHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
			logger.Fatal(ctx, "Failed to start metrics server", "error", err)
		}
	}

	repos, err := buildRepositories(ctx, cfg)
	if err != nil {
		logger.Fatal(ctx, "Failed to initialize storage", "error", err)
	}
	defer func() {
		if err := repos.close(); err != nil {
			logger.Error(ctx, "Failed to close storage", "error", err)
		}
	}()

	sessions, closeSessions, err := buildSessionRepository(cfg)
	if err != nil {
		logger.Fatal(ctx, "Failed to initialize session store", "error", err)
	}
	defer func() {
		if err := closeSessions(); err != nil {
			logger.Error(ctx, "Failed to close session store", "error", err)
		}
	}()

	var publisher mq.Publisher
	if cfg.Kafka.Enabled {
		producer, err := mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			logger.Fatal(ctx, "Failed to create Kafka producer", "error", err)
		}
		defer producer.Close()
		publisher = producer
	}

	uploads, err := upload.New(cfg.Upload.Dir, cfg.Upload.MaxSizeMB)
	if err != nil {
		logger.Fatal(ctx, "Failed to initialize upload store", "error", err)
	}

	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour

	authCommand := authapp.NewAuthCommandService(repos.users, repos.admins, sessions, publisher, m, sessionTTL)
	authQuery := authapp.NewAuthQueryService(repos.users, sessions)
	dictCommand := dictapp.NewDictionaryCommandService(repos.words, repos.songs, publisher, m)
	dictQuery := dictapp.NewDictionaryQueryService(repos.words, repos.songs)
	marketCommand := marketapp.NewMarketplaceCommandService(repos.sellers, repos.products, publisher, m)
	marketQuery := marketapp.NewMarketplaceQueryService(repos.sellers, repos.products)

	if err := authCommand.EnsureDefaultAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		logger.Fatal(ctx, "Failed to ensure default admin", "error", err)
	}
	if cfg.Environment == "dev" {
		seedSampleSeller(ctx, marketCommand)
	}

	engine := buildEngine(cfg, m, authQuery)
	authhttp.NewAuthHandler(authCommand, cfg.Session.SecureCookie).RegisterRoutes(engine)
	dicthttp.NewDictionaryHandler(dictCommand, dictQuery, uploads, m).RegisterRoutes(engine)
	markethttp.NewMarketplaceHandler(marketCommand, marketQuery, authCommand, cfg.Session.SecureCookie).RegisterRoutes(engine)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info(gCtx, "HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info(gCtx, "Shutdown signal received", "signal", sig.String())
		case <-gCtx.Done():
			return gCtx.Err()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal(ctx, "Server exited with error", "error", err)
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// buildRepositories 根据 storage.backend 构建仓储实现
func buildRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Storage.Backend {
	case "sql":
		database, err := db.Init(db.Config{
			Driver:             cfg.Database.Driver,
			DSN:                cfg.Database.DSN,
			MaxOpenConns:       cfg.Database.MaxOpenConns,
			MaxIdleConns:       cfg.Database.MaxIdleConns,
			ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
			LogEnabled:         cfg.Database.LogEnabled,
			SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
		})
		if err != nil {
			return nil, err
		}

		if err := database.AutoMigrate(
			&authdomain.User{},
			&authdomain.Admin{},
			&dictdomain.Word{},
			&dictdomain.Song{},
			&marketdomain.Seller{},
			&marketdomain.Product{},
		); err != nil {
			return nil, fmt.Errorf("auto migration failed: %w", err)
		}

		return &repositories{
			users:    authsql.NewUserRepository(database.DB),
			admins:   authsql.NewAdminRepository(database.DB),
			words:    dictsql.NewWordRepository(database.DB),
			songs:    dictsql.NewSongRepository(database.DB),
			sellers:  marketsql.NewSellerRepository(database.DB),
			products: marketsql.NewProductRepository(database.DB),
			close:    database.Close,
		}, nil

	case "mongo":
		client, err := mongodb.New(mongodb.Config{
			URI:         cfg.Mongo.URI,
			Database:    cfg.Mongo.Database,
			ConnTimeout: cfg.Mongo.ConnTimeout,
		})
		if err != nil {
			return nil, err
		}

		database := client.Database()
		return &repositories{
			users:    authmongo.NewUserRepository(database),
			admins:   authmongo.NewAdminRepository(database),
			words:    dictmongo.NewWordRepository(database),
			songs:    dictmongo.NewSongRepository(database),
			sellers:  marketmongo.NewSellerRepository(database),
			products: marketmongo.NewProductRepository(database),
			close:    func() error { return client.Close(ctx) },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Storage.Backend)
	}
}

// buildSessionRepository 根据 session.backend 构建会话仓储
func buildSessionRepository(cfg *config.Config) (authdomain.SessionRepository, func() error, error) {
	switch cfg.Session.Backend {
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.MaxPoolSize,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return authredis.NewSessionRepository(client), client.Close, nil

	case "memory":
		return authmemory.NewSessionRepository(), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported session backend: %s", cfg.Session.Backend)
	}
}

// buildEngine 组装 Gin 引擎与中间件链
func buildEngine(cfg *config.Config, m *metrics.Metrics, authQuery *authapp.AuthQueryService) *gin.Engine {
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		mid.GinRecoveryMiddleware(),
		mid.GinLoggingMiddleware(),
		mid.GinCORSMiddleware(),
		mid.GinRateLimitMiddleware(mid.NewRateLimiter(200, 100)),
		mid.GinMetricsMiddleware(m),
		authhttp.SessionMiddleware(authQuery),
	)

	// 上传的音频通过静态路径回放
	engine.Static("/static/audio", cfg.Upload.Dir)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.ServiceName})
	})

	return engine
}

// seedSampleSeller 开发环境预置演示卖家，重复启动时静默跳过
func seedSampleSeller(ctx context.Context, command *marketapp.MarketplaceCommandService) {
	_, err := command.RegisterSeller(ctx, marketapp.RegisterSellerCommand{
		FullName:     "Demo Seller",
		BusinessName: "Khamyang Crafts",
		Email:        "seller@example.com",
		Password:     "seller123",
		Phone:        "9999999999",
		Whatsapp:     "9999999999",
	})
	if err != nil && !errs.Is(err, errs.CodeConflict) {
		logger.Warn(ctx, "Failed to seed sample seller", "error", err)
	}
}
