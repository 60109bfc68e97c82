package sms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	twapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Twilio error codes with a fixed meaning for the caller.
const (
	twilioInvalidTo      = 21211
	twilioRegionBlocked  = 21408
	twilioUnsubscribedTo = 21610
)

type messageCreator interface {
	CreateMessage(params *twapi.CreateMessageParams) (*twapi.ApiV2010Message, error)
}

// TwilioConfig configures the Twilio driver.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string
}

// Twilio sends messages through the Twilio Messages API.
type Twilio struct {
	api  messageCreator
	from string
}

// NewTwilio constructs a Twilio driver.
func NewTwilio(cfg TwilioConfig) (*Twilio, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.From == "" {
		return nil, fmt.Errorf("%w: twilio account sid, auth token and from are required", ErrConfig)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &Twilio{api: client.Api, from: cfg.From}, nil
}

// Send implements SMS.
func (t *Twilio) Send(ctx context.Context, msg Message) (Receipt, error) {
	msg, err := prepare(msg)
	if err != nil {
		return Receipt{}, err
	}

	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}

	params := &twapi.CreateMessageParams{}
	params.SetTo(msg.To)
	params.SetFrom(t.from)
	params.SetBody(msg.Body)

	resp, err := t.api.CreateMessage(params)
	if err != nil {
		return Receipt{}, mapTwilioError(err)
	}

	rc := Receipt{To: msg.To}
	if resp != nil && resp.Sid != nil {
		rc.ID = *resp.Sid
	}

	slog.DebugContext(ctx, "sms accepted by twilio", "sid", rc.ID)

	return rc, nil
}

// Close implements io.Closer.
func (t *Twilio) Close() error {
	return nil
}

func mapTwilioError(err error) error {
	var te *twclient.TwilioRestError
	if !errors.As(err, &te) {
		return fmt.Errorf("sms: twilio: %w", err)
	}

	switch te.Code {
	case twilioInvalidTo:
		return ErrInvalidNumber
	case twilioRegionBlocked:
		return ErrRegionNotAllowed
	case twilioUnsubscribedTo:
		return ErrUnsubscribed
	default:
		return fmt.Errorf("sms: twilio %d: %w", te.Code, err)
	}
}
