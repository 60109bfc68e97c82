package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/ambassador/internal/pkg/clock"
	"github.com/shandysiswandi/ambassador/internal/pkg/config"
	"github.com/shandysiswandi/ambassador/internal/pkg/hash"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/pkg/lock"
	"github.com/shandysiswandi/ambassador/internal/pkg/validator"
	"github.com/shandysiswandi/ambassador/internal/verification/entity"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

// Cooldown is the minimum gap between two issuances for the same subject and purpose.
const Cooldown = time.Minute

const (
	defaultCodeLength  = 4
	defaultExpiry      = 10 * time.Minute
	defaultMaxAttempts = 5
	defaultLockTTL     = 5 * time.Second
)

// Store persists OTP records. Both the Postgres and the Mongo driver satisfy it.
type Store interface {
	LatestSince(ctx context.Context, subjectID string, purpose entity.Purpose, since time.Time) (*entity.OTP, error)
	Replace(ctx context.Context, otp entity.OTP) error
	Invalidate(ctx context.Context, subjectID string, purpose entity.Purpose) (int64, error)
	FindActive(ctx context.Context, subjectID string, purpose entity.Purpose, now time.Time) (*entity.OTP, error)
	RegisterAttempt(ctx context.Context, id string, consume bool, maxAttempts int) (*entity.OTP, error)
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)
}

type Usecase struct {
	store     Store
	locker    lock.Locker
	hash      hash.Hash
	validator validator.Validator
	cfg       config.Config
	clock     clock.Clocker
	ins       instrument.Instrumentation
	codes     codeGenerator

	issuedCounter    metric.Int64Counter
	verifyCounter    metric.Int64Counter
	throttledCounter metric.Int64Counter
}

type Dependency struct {
	Store      Store
	Locker     lock.Locker
	Hash       hash.Hash
	Validator  validator.Validator
	Config     config.Config
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	s := &Usecase{
		store:     dep.Store,
		locker:    dep.Locker,
		hash:      dep.Hash,
		validator: dep.Validator,
		cfg:       dep.Config,
		clock:     dep.Clock,
		ins:       dep.Instrument,
		codes:     randomDigits,
	}

	meter := dep.Instrument.Meter("verification.usecase")
	s.issuedCounter = counter(meter, "otp.issued", "Number of OTP codes issued")
	s.verifyCounter = counter(meter, "otp.verify", "Number of OTP verification attempts by result")
	s.throttledCounter = counter(meter, "otp.throttled", "Number of OTP requests refused by the resend cooldown")

	return s
}

func counter(meter metric.Meter, name, desc string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		slog.Warn("failed to create counter", "name", name, "error", err)
		return noop.Int64Counter{}
	}
	return c
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("verification.usecase").Start(ctx, name)
}

func (s *Usecase) codeLength() int {
	if n := s.cfg.GetInt("otp.length"); n > 0 {
		return n
	}
	return defaultCodeLength
}

func (s *Usecase) expiry() time.Duration {
	if d := s.cfg.GetMinute("otp.expiry_minutes"); d > 0 {
		return d
	}
	return defaultExpiry
}

func (s *Usecase) maxAttempts() int {
	if n := s.cfg.GetInt("otp.max_attempts"); n > 0 {
		return n
	}
	return defaultMaxAttempts
}

func (s *Usecase) lockTTL() time.Duration {
	if d := s.cfg.GetSecond("modules.verification.lock_ttl_seconds"); d > 0 {
		return d
	}
	return defaultLockTTL
}

func (s *Usecase) failOpen() bool {
	return s.cfg.GetBool("modules.verification.cooldown_fail_open")
}

// secret binds a code to the destination it was delivered to, so a code sent
// to one phone or mailbox never redeems against another.
func secret(destination, code string) string {
	if destination == "" {
		return code
	}
	return destination + "\x00" + code
}

func lockKey(subjectID string, purpose entity.Purpose) string {
	return "otp:" + purpose.String() + ":" + subjectID
}
