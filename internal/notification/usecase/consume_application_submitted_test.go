package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/ambassador/internal/notification/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsecase_ConsumeApplicationSubmitted(t *testing.T) {
	// Arrange
	f := newFixture(t, "app:\n  name: Glow Ambassadors\nmail:\n  support_email: help@example.com\n")
	submittedAt := time.Date(2025, 2, 28, 17, 30, 0, 0, time.UTC)

	// Act
	err := f.uc.ConsumeApplicationSubmitted(context.Background(), ConsumeApplicationSubmittedInput{
		ApplicationID: 1,
		Phone:         "+6281234567890",
		Email:         "ayu@example.com",
		SubmittedAt:   submittedAt,
	})

	// Assert
	require.NoError(t, err)

	require.Len(t, f.repo.items, 1)
	n := f.repo.items[0]
	assert.Equal(t, int64(1), n.ApplicationID)
	assert.Equal(t, entity.TypeSystem, n.Type)
	assert.Equal(t, "Application submitted", n.Title)
	assert.Equal(t, "1", n.Metadata.GetString("application_id"))

	require.Len(t, f.delivery.texts, 1)
	assert.Equal(t, "+6281234567890", f.delivery.texts[0].To)
	assert.Equal(t, SubmittedSMSText("Applicant"), f.delivery.texts[0].Body)

	require.Len(t, f.delivery.emails, 1)
	msg := f.delivery.emails[0]
	assert.Equal(t, []string{"ayu@example.com"}, msg.To)
	assert.Equal(t, "Application Submitted Successfully", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "February 28, 2025")
	assert.Contains(t, msg.HTMLBody, "Glow Ambassadors")
	assert.Contains(t, msg.HTMLBody, "help@example.com")
	assert.Contains(t, msg.TextBody, "ID 1")
}

func TestUsecase_ConsumeApplicationSubmitted_DeliveryFailureIsNotFatal(t *testing.T) {
	// Arrange
	f := newFixture(t, "")
	f.delivery.smsErr = assert.AnError
	f.delivery.emailErr = assert.AnError

	// Act
	err := f.uc.ConsumeApplicationSubmitted(context.Background(), ConsumeApplicationSubmittedInput{
		ApplicationID: 2,
		Phone:         "+6281234567890",
		Email:         "ayu@example.com",
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, f.repo.items, 1)
	assert.Equal(t, epoch, f.repo.items[0].CreatedAt)
}

func TestUsecase_ConsumeApplicationSubmitted_StoreFailureIsRetried(t *testing.T) {
	// Arrange
	f := newFixture(t, "")
	f.repo.err = assert.AnError

	// Act
	err := f.uc.ConsumeApplicationSubmitted(context.Background(), ConsumeApplicationSubmittedInput{ApplicationID: 1, Phone: "+6281234567890"})

	// Assert
	requireCode(t, err, goerror.CodeInternal)
	assert.Empty(t, f.delivery.texts)
}

func TestUsecase_ConsumeApplicationSubmitted_NoContacts(t *testing.T) {
	f := newFixture(t, "")

	err := f.uc.ConsumeApplicationSubmitted(context.Background(), ConsumeApplicationSubmittedInput{ApplicationID: 1})

	require.NoError(t, err)
	assert.Len(t, f.repo.items, 1)
	assert.Empty(t, f.delivery.texts)
	assert.Empty(t, f.delivery.emails)
}
