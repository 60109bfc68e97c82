package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shandysiswandi/ambassador/internal/pkg/clock"
	"github.com/shandysiswandi/ambassador/internal/pkg/config"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/hash"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/pkg/lock"
	"github.com/shandysiswandi/ambassador/internal/pkg/validator"
	"github.com/shandysiswandi/ambassador/internal/verification/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const subject = "1867523419000000001"

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	uc    *Usecase
	store *memoryStore
	clock *clock.Manual
}

func newFixture(t *testing.T, yaml string, locker lock.Locker) fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	h, err := hash.NewHMACSHA256("test-secret")
	require.NoError(t, err)

	if locker == nil {
		locker = lock.NewMemory()
	}

	st := newMemoryStore()
	clk := clock.NewManual(epoch)

	return fixture{
		uc: New(Dependency{
			Store:      st,
			Locker:     locker,
			Hash:       h,
			Validator:  v,
			Config:     cfg,
			Clock:      clk,
			Instrument: instrument.NewNoop(),
		}),
		store: st,
		clock: clk,
	}
}

func (f fixture) issue(t *testing.T, purpose entity.Purpose) *IssueOutput {
	t.Helper()
	out, err := f.uc.Issue(context.Background(), IssueInput{SubjectID: subject, Purpose: purpose})
	require.NoError(t, err)
	return out
}

func (f fixture) verify(code string, purpose entity.Purpose) error {
	return f.uc.Verify(context.Background(), VerifyInput{SubjectID: subject, Purpose: purpose, Code: code})
}

func wrongCode(code string) string {
	b := []byte(code)
	b[0] = '0' + (b[0]-'0'+1)%10
	return string(b)
}

func assertRejected(t *testing.T, err error) {
	t.Helper()
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeRejected, gerr.Code())
	assert.Equal(t, "Invalid or expired OTP", gerr.Msg())
}

func assertThrottled(t *testing.T, err error) *goerror.Error {
	t.Helper()
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeTooManyRequest, gerr.Code())
	return gerr
}

func TestIssue_ThenVerify(t *testing.T) {
	// Arrange
	f := newFixture(t, "", nil)

	// Act
	out := f.issue(t, entity.PurposePhone)

	// Assert
	assert.Len(t, out.Code, 4)
	assert.Regexp(t, `^[0-9]{4}$`, out.Code)
	assert.Equal(t, epoch.Add(10*time.Minute), out.ExpiresAt)
	assert.Equal(t, 1, f.store.unverified(subject, entity.PurposePhone))

	require.NoError(t, f.verify(out.Code, entity.PurposePhone))
	assert.Equal(t, 0, f.store.unverified(subject, entity.PurposePhone))

	// a consumed code cannot be reused
	assertRejected(t, f.verify(out.Code, entity.PurposePhone))
}

func TestIssue_StoresOnlyHash(t *testing.T) {
	f := newFixture(t, "", nil)

	out := f.issue(t, entity.PurposeEmail)

	require.Len(t, f.store.records, 1)
	rec := f.store.records[0]
	assert.NotEqual(t, out.Code, rec.CodeHash)
	assert.Len(t, rec.Salt, 2*hash.SaltSize)
	assert.Zero(t, rec.Attempts)
	assert.False(t, rec.Verified)
}

func TestIssue_ConfiguredLengthAndExpiry(t *testing.T) {
	f := newFixture(t, "otp:\n  length: 6\n  expiry_minutes: 3\n", nil)

	out := f.issue(t, entity.PurposePhone)

	assert.Regexp(t, `^[0-9]{6}$`, out.Code)
	assert.Equal(t, epoch.Add(3*time.Minute), out.ExpiresAt)
}

func TestIssue_InvalidInput(t *testing.T) {
	f := newFixture(t, "", nil)

	_, err := f.uc.Issue(context.Background(), IssueInput{SubjectID: "", Purpose: "sms"})

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())
	assert.Empty(t, f.store.records)
}

func TestIssue_Cooldown(t *testing.T) {
	// Arrange
	f := newFixture(t, "", nil)
	first := f.issue(t, entity.PurposePhone)

	// Act
	f.clock.Advance(20*time.Second + 500*time.Millisecond)
	_, err := f.uc.Issue(context.Background(), IssueInput{SubjectID: subject, Purpose: entity.PurposePhone})

	// Assert
	gerr := assertThrottled(t, err)
	assert.Equal(t, "Please wait 40 seconds before requesting a new OTP", gerr.Msg())
	assert.Equal(t, 40*time.Second, gerr.RetryAfter())
	assert.Len(t, f.store.records, 1)

	// the first code stays valid while throttled
	require.NoError(t, f.verify(first.Code, entity.PurposePhone))
}

func TestIssue_CooldownIsPerPurpose(t *testing.T) {
	f := newFixture(t, "", nil)

	f.issue(t, entity.PurposePhone)
	f.issue(t, entity.PurposeEmail)

	assert.Equal(t, 1, f.store.unverified(subject, entity.PurposePhone))
	assert.Equal(t, 1, f.store.unverified(subject, entity.PurposeEmail))
}

func TestIssue_ReissueInvalidatesPrevious(t *testing.T) {
	// Arrange
	f := newFixture(t, "", nil)
	first := f.issue(t, entity.PurposePhone)

	// Act
	f.clock.Advance(61 * time.Second)
	second := f.issue(t, entity.PurposePhone)

	// Assert
	assert.Equal(t, 1, f.store.unverified(subject, entity.PurposePhone))
	if first.Code != second.Code {
		assertRejected(t, f.verify(first.Code, entity.PurposePhone))
	}
	require.NoError(t, f.verify(second.Code, entity.PurposePhone))
}

func TestIssue_StorageFailure(t *testing.T) {
	f := newFixture(t, "", nil)
	f.store.errReplace = errors.New("connection reset")

	_, err := f.uc.Issue(context.Background(), IssueInput{SubjectID: subject, Purpose: entity.PurposePhone})

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeInternal, gerr.Code())
	assert.Equal(t, "Failed to generate OTP", gerr.Msg())
}

func TestIssue_CooldownLookupFailure(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		wantCode goerror.Code
		wantOK   bool
	}{
		{name: "fail open by default", yaml: "", wantOK: true},
		{name: "fail closed", yaml: "modules:\n  verification:\n    cooldown_fail_open: false\n", wantCode: goerror.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.yaml, nil)
			f.store.errLatest = errors.New("timeout")

			out, err := f.uc.Issue(context.Background(), IssueInput{SubjectID: subject, Purpose: entity.PurposePhone})

			if tt.wantOK {
				require.NoError(t, err)
				assert.NotEmpty(t, out.Code)
				return
			}

			var gerr *goerror.Error
			require.ErrorAs(t, err, &gerr)
			assert.Equal(t, tt.wantCode, gerr.Code())
		})
	}
}

type busyLocker struct{}

func (busyLocker) Acquire(context.Context, string, time.Duration) (lock.Release, error) {
	return nil, lock.ErrLocked
}

func TestIssue_LockBusy(t *testing.T) {
	f := newFixture(t, "", busyLocker{})

	_, err := f.uc.Issue(context.Background(), IssueInput{SubjectID: subject, Purpose: entity.PurposePhone})

	gerr := assertThrottled(t, err)
	assert.Equal(t, "OTP request already in progress", gerr.Msg())
	assert.Empty(t, f.store.records)
}

func TestIssue_ConcurrentRequestsIssueOnce(t *testing.T) {
	// Arrange
	f := newFixture(t, "", nil)

	var (
		wg      sync.WaitGroup
		success atomic.Int32
	)

	// Act
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.uc.Issue(context.Background(), IssueInput{SubjectID: subject, Purpose: entity.PurposePhone}); err == nil {
				success.Add(1)
			}
		}()
	}
	wg.Wait()

	// Assert
	assert.Equal(t, int32(1), success.Load())
	assert.Len(t, f.store.records, 1)
}

func TestCanResend(t *testing.T) {
	// Arrange
	f := newFixture(t, "", nil)
	in := CanResendInput{SubjectID: subject, Purpose: entity.PurposeEmail}

	// Act & Assert
	out, err := f.uc.CanResend(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, &CanResendOutput{Allowed: true}, out)

	f.issue(t, entity.PurposeEmail)

	f.clock.Advance(15 * time.Second)
	out, err = f.uc.CanResend(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, &CanResendOutput{Allowed: false, WaitSeconds: 45}, out)

	f.clock.Advance(46 * time.Second)
	out, err = f.uc.CanResend(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, out.Allowed)

	// read only
	assert.Len(t, f.store.records, 1)
}

func TestCanResend_ExactlyAtCooldown(t *testing.T) {
	// Arrange
	f := newFixture(t, "", nil)
	f.issue(t, entity.PurposePhone)
	in := CanResendInput{SubjectID: subject, Purpose: entity.PurposePhone}

	// Act
	f.clock.Advance(Cooldown)
	out, err := f.uc.CanResend(context.Background(), in)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, &CanResendOutput{Allowed: true}, out)

	f.issue(t, entity.PurposePhone)
	assert.Len(t, f.store.records, 2)
	assert.Equal(t, 1, f.store.unverified(subject, entity.PurposePhone))
}

func TestCanResend_OneTickBeforeCooldown(t *testing.T) {
	f := newFixture(t, "", nil)
	f.issue(t, entity.PurposePhone)

	f.clock.Advance(Cooldown - time.Millisecond)
	out, err := f.uc.CanResend(context.Background(), CanResendInput{SubjectID: subject, Purpose: entity.PurposePhone})

	require.NoError(t, err)
	assert.Equal(t, &CanResendOutput{Allowed: false, WaitSeconds: 1}, out)
}

func TestCanResend_StorageFailure(t *testing.T) {
	f := newFixture(t, "", nil)
	f.store.errLatest = errors.New("boom")

	out, err := f.uc.CanResend(context.Background(), CanResendInput{SubjectID: subject, Purpose: entity.PurposePhone})

	require.NoError(t, err)
	assert.True(t, out.Allowed)
}

func TestVerify_Expired(t *testing.T) {
	f := newFixture(t, "", nil)
	out := f.issue(t, entity.PurposePhone)

	f.clock.Set(out.ExpiresAt)

	assertRejected(t, f.verify(out.Code, entity.PurposePhone))
}

func TestVerify_JustBeforeExpiry(t *testing.T) {
	f := newFixture(t, "", nil)
	out := f.issue(t, entity.PurposePhone)

	f.clock.Set(out.ExpiresAt.Add(-time.Millisecond))

	require.NoError(t, f.verify(out.Code, entity.PurposePhone))
}

func TestVerify_WrongPurpose(t *testing.T) {
	f := newFixture(t, "", nil)
	out := f.issue(t, entity.PurposePhone)

	assertRejected(t, f.verify(out.Code, entity.PurposeEmail))
	require.NoError(t, f.verify(out.Code, entity.PurposePhone))
}

func TestVerify_Malformed(t *testing.T) {
	f := newFixture(t, "", nil)
	f.issue(t, entity.PurposePhone)

	for _, code := range []string{"", "12a4", "123", "12345", " 1234"} {
		t.Run(fmt.Sprintf("%q", code), func(t *testing.T) {
			assertRejected(t, f.verify(code, entity.PurposePhone))
		})
	}

	// malformed input never counts as an attempt
	assert.Zero(t, f.store.records[0].Attempts)
}

func TestVerify_MismatchCountsAttempts(t *testing.T) {
	// Arrange
	f := newFixture(t, "", nil)
	out := f.issue(t, entity.PurposePhone)
	bad := wrongCode(out.Code)

	// Act
	for range 4 {
		assertRejected(t, f.verify(bad, entity.PurposePhone))
	}

	// Assert
	assert.Equal(t, 4, f.store.records[0].Attempts)
	require.NoError(t, f.verify(out.Code, entity.PurposePhone))
}

func TestVerify_MaxAttemptsInvalidates(t *testing.T) {
	// Arrange
	f := newFixture(t, "otp:\n  max_attempts: 3\n", nil)
	out := f.issue(t, entity.PurposePhone)
	bad := wrongCode(out.Code)

	// Act
	for range 3 {
		assertRejected(t, f.verify(bad, entity.PurposePhone))
	}

	// Assert
	assert.True(t, f.store.records[0].Verified)
	assertRejected(t, f.verify(out.Code, entity.PurposePhone))
}

func TestVerify_NoRecord(t *testing.T) {
	f := newFixture(t, "", nil)

	assertRejected(t, f.verify("1234", entity.PurposePhone))
}

func TestVerify_StorageFailure(t *testing.T) {
	f := newFixture(t, "", nil)
	out := f.issue(t, entity.PurposePhone)
	f.store.errAttempt = errors.New("broken pipe")

	err := f.verify(out.Code, entity.PurposePhone)

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeInternal, gerr.Code())
}

func TestVerify_ConcurrentSingleWinner(t *testing.T) {
	// Arrange
	f := newFixture(t, "", nil)
	out := f.issue(t, entity.PurposePhone)

	var (
		wg      sync.WaitGroup
		success atomic.Int32
	)

	// Act
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if f.verify(out.Code, entity.PurposePhone) == nil {
				success.Add(1)
			}
		}()
	}
	wg.Wait()

	// Assert
	assert.Equal(t, int32(1), success.Load())
}

func TestVerify_BoundToDestination(t *testing.T) {
	// Arrange
	f := newFixture(t, "", nil)
	ctx := context.Background()
	out, err := f.uc.Issue(ctx, IssueInput{SubjectID: subject, Purpose: entity.PurposePhone, Destination: "+6281200000001"})
	require.NoError(t, err)

	// Act
	errOther := f.uc.Verify(ctx, VerifyInput{SubjectID: subject, Purpose: entity.PurposePhone, Code: out.Code, Destination: "+15559998888"})
	errNone := f.verify(out.Code, entity.PurposePhone)
	errSame := f.uc.Verify(ctx, VerifyInput{SubjectID: subject, Purpose: entity.PurposePhone, Code: out.Code, Destination: "+6281200000001"})

	// Assert
	assertRejected(t, errOther)
	assertRejected(t, errNone)
	require.NoError(t, errSame)
}

func TestInvalidate(t *testing.T) {
	// Arrange
	f := newFixture(t, "", nil)
	out := f.issue(t, entity.PurposeEmail)
	f.issue(t, entity.PurposePhone)

	// Act
	err := f.uc.Invalidate(context.Background(), InvalidateInput{SubjectID: subject, Purpose: entity.PurposeEmail})

	// Assert
	require.NoError(t, err)
	assert.Zero(t, f.store.unverified(subject, entity.PurposeEmail))
	assert.Equal(t, 1, f.store.unverified(subject, entity.PurposePhone))
	assertRejected(t, f.verify(out.Code, entity.PurposeEmail))

	// the cooldown still counts from the last issuance
	_, err = f.uc.Issue(context.Background(), IssueInput{SubjectID: subject, Purpose: entity.PurposeEmail})
	assertThrottled(t, err)
}

func TestInvalidate_Errors(t *testing.T) {
	f := newFixture(t, "", nil)

	err := f.uc.Invalidate(context.Background(), InvalidateInput{SubjectID: subject, Purpose: "fax"})
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())

	busy := newFixture(t, "", busyLocker{})
	assertThrottled(t, busy.uc.Invalidate(context.Background(), InvalidateInput{SubjectID: subject, Purpose: entity.PurposePhone}))
}

func TestPurgeExpired(t *testing.T) {
	f := newFixture(t, "", nil)
	f.issue(t, entity.PurposePhone)
	f.issue(t, entity.PurposeEmail)

	// expired at 09:10, still inside the 30 minute grace at 09:20
	f.clock.Advance(20 * time.Minute)
	require.NoError(t, f.uc.PurgeExpired(context.Background(), 30*time.Minute))
	assert.Len(t, f.store.records, 2)

	f.clock.Advance(time.Hour)
	require.NoError(t, f.uc.PurgeExpired(context.Background(), 30*time.Minute))
	assert.Empty(t, f.store.records)
}

func TestRandomDigits(t *testing.T) {
	_, err := randomDigits(0)
	assert.ErrorIs(t, err, ErrCodeLength)

	counts := make(map[rune]int)
	for range 2000 {
		code, err := randomDigits(5)
		require.NoError(t, err)
		require.Len(t, code, 5)
		for _, r := range code {
			counts[r]++
		}
	}

	// 10000 digits: every one of the ten values shows up well within bounds
	require.Len(t, counts, 10)
	for r, n := range counts {
		assert.Truef(t, strings.ContainsRune("0123456789", r), "unexpected rune %q", r)
		assert.Greater(t, n, 800)
		assert.Less(t, n, 1200)
	}
}

func TestWaitSeconds(t *testing.T) {
	assert.Equal(t, 0, waitSeconds(-time.Second))
	assert.Equal(t, 0, waitSeconds(0))
	assert.Equal(t, 1, waitSeconds(time.Millisecond))
	assert.Equal(t, 60, waitSeconds(Cooldown))
}
