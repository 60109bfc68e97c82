package app

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/shandysiswandi/ambassador/internal/pkg/clock"
	"github.com/shandysiswandi/ambassador/internal/pkg/config"
	"github.com/shandysiswandi/ambassador/internal/pkg/goroutine"
	"github.com/shandysiswandi/ambassador/internal/pkg/hash"
	"github.com/shandysiswandi/ambassador/internal/pkg/idempotency"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/pkg/jwt"
	"github.com/shandysiswandi/ambassador/internal/pkg/lock"
	"github.com/shandysiswandi/ambassador/internal/pkg/mail"
	"github.com/shandysiswandi/ambassador/internal/pkg/messaging"
	"github.com/shandysiswandi/ambassador/internal/pkg/router"
	"github.com/shandysiswandi/ambassador/internal/pkg/sms"
	"github.com/shandysiswandi/ambassador/internal/pkg/storage"
	"github.com/shandysiswandi/ambassador/internal/pkg/uid"
	"github.com/shandysiswandi/ambassador/internal/pkg/validator"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (a *App) initConfig() {
	// .env only fills variables the environment does not already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "/config/config.yaml"
		if os.Getenv("LOCAL") == "true" {
			path = "./config/config.yaml"
		}
	}

	cfg, err := config.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("app.tz"))

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(context.Background(), &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
		LogLevel:         a.config.GetString("instrument.log_level"),
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(a.config.GetInt("app.server.max_goroutine"))

	hmac, err := hash.NewHMACSHA256(a.config.GetString("hash.hmac.secret"))
	if err != nil {
		slog.Error("failed to init hmac hash", "error", err)
		os.Exit(1)
	}
	a.hmac = hmac

	validator, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = validator

	snow, err := uid.NewSnowflakeNode(a.config.GetInt64("app.node_id"))
	if err != nil {
		slog.Error("failed to init uid number snowflake", "error", err)
		os.Exit(1)
	}
	a.uid = snow
}

func (a *App) initJWT() {
	defaultJWT, err := jwt.NewHS512(jwt.Config{
		Secret:    []byte(a.config.GetString("jwt.secret")),
		Issuer:    a.config.GetString("jwt.issuer"),
		Audiences: a.config.GetArray("jwt.audiences"),
		TTL:       a.config.GetHour("jwt.ttl_hours"),
		Clock:     a.clock,
		UUID:      a.uuid,
	})
	if err != nil {
		slog.Error("failed to init jwt token", "error", err)
		os.Exit(1)
	}
	a.jwt = defaultJWT
}

func (a *App) initDatabase() {
	config, err := pgxpool.ParseConfig(a.config.GetString("database.url"))
	if err != nil {
		slog.Error("failed to parse DB connection string.", "error", err)
		os.Exit(1)
	}

	config.MaxConns = a.config.GetInt32("database.pool.max_conns")
	config.MinConns = a.config.GetInt32("database.pool.min_conns")
	config.MaxConnLifetime = a.config.GetSecond("database.pool.max_conn_lifetime_seconds")
	config.MaxConnIdleTime = a.config.GetSecond("database.pool.max_conn_idle_seconds")
	config.HealthCheckPeriod = a.config.GetSecond("database.pool.health_check_period_seconds")

	pool, err := pgxpool.NewWithConfig(a.ctx, config)
	if err != nil {
		slog.Error("failed to create DB connection pool", "error", err)
		os.Exit(1)
	}

	pingCtx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		slog.Error("failed to ping DB", "error", err)
		os.Exit(1)
	}

	a.dbConn = pool
}

// initCache connects redis for the issuance lock and consumer dedup. Without a
// redis url both stay in process, which only holds for a single instance.
func (a *App) initCache() {
	url := strings.TrimSpace(a.config.GetString("redis.url"))
	if url == "" {
		slog.Warn("redis url is empty, using in-process lock")
		a.locker = lock.NewMemory()
		a.idemp = idempotency.New(idempotency.NewMemory())
		return
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		slog.Error("failed to parse redis url", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Error("failed to init redis", "error", err)
		os.Exit(1)
	}

	a.cacheConn = rdb
	a.locker = lock.NewRedis(rdb)
	a.idemp = idempotency.New(idempotency.NewRedis(rdb))
}

func (a *App) initMongo() {
	uri := strings.TrimSpace(a.config.GetString("mongo.uri"))
	if uri == "" {
		return
	}

	client, err := mongo.Connect(a.ctx, options.Client().
		ApplyURI(uri).
		SetAppName(a.config.GetString("instrument.service_name")).
		SetServerSelectionTimeout(a.config.GetSecond("mongo.server_selection_timeout_seconds")))
	if err != nil {
		slog.Error("failed to connect mongo", "error", err)
		os.Exit(1)
	}

	pingCtx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		slog.Error("failed to ping mongo", "error", err)
		os.Exit(1)
	}

	a.mongoClient = client
	a.mongoDB = client.Database(a.config.GetString("mongo.database"))
}

func (a *App) initMail() {
	var (
		m   mail.Mail
		err error
	)

	switch a.config.GetString("mail.driver") {
	case "smtp":
		m, err = mail.NewSMTP(mail.SMTPConfig{
			Host:     a.config.GetString("mail.host"),
			Port:     a.config.GetInt("mail.port"),
			Username: a.config.GetString("mail.username"),
			Password: a.config.GetString("mail.password"),
			From:     a.config.GetString("mail.from"),
			Timeout:  a.config.GetSecond("mail.timeout_seconds"),
		})
	default:
		m = mail.NewLog()
	}
	if err != nil {
		slog.Error("failed to init mail", "error", err)
		os.Exit(1)
	}

	a.mail = mail.NewRetry(m, a.config.GetUint64("mail.max_retries"), a.config.GetMillisecond("mail.retry_base_ms"))
}

func (a *App) initSMS() {
	var (
		s   sms.SMS
		err error
	)

	switch a.config.GetString("sms.driver") {
	case "twilio":
		s, err = sms.NewTwilio(sms.TwilioConfig{
			AccountSID: a.config.GetString("sms.twilio.account_sid"),
			AuthToken:  a.config.GetString("sms.twilio.auth_token"),
			From:       a.config.GetString("sms.twilio.from"),
		})
	default:
		s = sms.NewLog()
	}
	if err != nil {
		slog.Error("failed to init sms", "error", err)
		os.Exit(1)
	}

	a.sms = sms.NewRetry(s, a.config.GetUint64("sms.max_retries"), a.config.GetMillisecond("sms.retry_base_ms"))
}

func (a *App) initStorage() {
	driver := strings.TrimSpace(a.config.GetString("storage.driver"))

	stg, err := storage.NewFromDriver(a.ctx, driver, storage.FactoryOptions{
		S3: storage.S3Options{
			Bucket:       strings.TrimSpace(a.config.GetString("storage.s3.bucket")),
			Region:       strings.TrimSpace(a.config.GetString("storage.s3.region")),
			Endpoint:     strings.TrimSpace(a.config.GetString("storage.s3.endpoint")),
			AccessKey:    strings.TrimSpace(a.config.GetString("storage.s3.access_key")),
			SecretKey:    strings.TrimSpace(a.config.GetString("storage.s3.secret_key")),
			SessionToken: strings.TrimSpace(a.config.GetString("storage.s3.session_token")),
			UsePathStyle: a.config.GetBool("storage.s3.use_path_style"),
		},
		MinIO: storage.MinIOOptions{
			Bucket:    strings.TrimSpace(a.config.GetString("storage.minio.bucket")),
			Region:    strings.TrimSpace(a.config.GetString("storage.minio.region")),
			Endpoint:  strings.TrimSpace(a.config.GetString("storage.minio.endpoint")),
			AccessKey: strings.TrimSpace(a.config.GetString("storage.minio.access_key")),
			SecretKey: strings.TrimSpace(a.config.GetString("storage.minio.secret_key")),
			UseSSL:    a.config.GetBool("storage.minio.use_ssl"),
		},
	})
	if err != nil {
		slog.Error("failed to init storage", "error", err)
		os.Exit(1)
	}

	a.storage = stg
}

func (a *App) initMessaging() {
	driver := a.config.GetString("messaging.driver")
	client, err := messaging.NewFromDriver(driver, messaging.FactoryOptions{
		NATS: messaging.NATSConfig{
			URL:  a.config.GetString("messaging.nats.url"),
			Name: a.config.GetString("messaging.nats.name"),
			Options: []nats.Option{
				nats.Timeout(a.config.GetSecond("messaging.nats.timeout_seconds")),
				nats.ReconnectWait(a.config.GetSecond("messaging.nats.reconnect_wait_seconds")),
				nats.PingInterval(a.config.GetSecond("messaging.nats.ping_interval_seconds")),
				nats.MaxPingsOutstanding(a.config.GetInt("messaging.nats.max_pings_outstanding")),
				nats.RetryOnFailedConnect(a.config.GetBool("messaging.nats.retry_on_failed_connect")),
			},
		},
		Kafka: messaging.KafkaConfig{
			Brokers:  a.config.GetArray("messaging.kafka.brokers"),
			ClientID: a.config.GetString("messaging.kafka.client_id"),
		},
	})
	if err != nil {
		slog.Error("failed to init messaging", "error", err, "driver", driver)
		os.Exit(1)
	}

	a.messaging = client
}

func (a *App) initHTTPServer() {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		JWT:        a.jwt,
		Instrument: a.ins,
	})

	routerWithCORS := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Range", "Accept-Ranges", "Content-Length", "Retry-After"},
		AllowCredentials: true,
	}).Handler(a.router)

	// WriteTimeout stays unset when configured as zero so long video
	// streams are not cut off.
	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           routerWithCORS,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Messaging",
			fn: func(context.Context) error {
				return a.messaging.Close()
			},
		},
		{
			name: "Mail",
			fn: func(context.Context) error {
				return a.mail.Close()
			},
		},
		{
			name: "SMS",
			fn: func(context.Context) error {
				return a.sms.Close()
			},
		},
		{
			name: "Redis",
			fn: func(context.Context) error {
				if a.cacheConn == nil {
					return nil
				}
				return a.cacheConn.Close()
			},
		},
		{
			name: "Mongo",
			fn: func(ctx context.Context) error {
				if a.mongoClient == nil {
					return nil
				}
				return a.mongoClient.Disconnect(ctx)
			},
		},
		{
			name: "Database",
			fn: func(context.Context) error {
				a.dbConn.Close()

				return nil
			},
		},
		{
			name: "Storage",
			fn: func(context.Context) error {
				return a.storage.Close()
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
	}
}
