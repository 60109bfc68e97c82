package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
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
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	jwt       jwt.JWT

	// resources
	dbConn      *pgxpool.Pool
	cacheConn   *redis.Client
	locker      lock.Locker
	idemp       idempotency.Idempotency
	mongoClient *mongo.Client
	mongoDB     *mongo.Database
	mail        mail.Mail
	sms         sms.SMS
	messaging   messaging.Messaging
	storage     storage.Storage

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMongo()
	app.initMail()
	app.initSMS()
	app.initStorage()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
