package sms

import (
	"context"
	"errors"
	"io"
	"strings"
	"unicode"
)

var (
	// ErrInvalidNumber is returned when the destination cannot be a phone number.
	ErrInvalidNumber = errors.New("sms: invalid phone number format")
	// ErrRegionNotAllowed is returned when the provider refuses the destination region.
	ErrRegionNotAllowed = errors.New("sms: phone number is not authorized to receive SMS")
	// ErrUnsubscribed is returned when the recipient opted out of messages.
	ErrUnsubscribed = errors.New("sms: phone number cannot receive SMS messages")
	// ErrEmptyBody is returned when a message has no text.
	ErrEmptyBody = errors.New("sms: empty message body")
	// ErrConfig is returned when a driver is missing credentials or a sender.
	ErrConfig = errors.New("sms: incomplete configuration")
)

// minDigits is the shortest accepted phone number, country code included.
const minDigits = 10

// Message is a single text message.
type Message struct {
	To   string
	Body string
}

// Receipt identifies a message accepted by the provider.
type Receipt struct {
	ID string
	To string
}

// SMS abstracts a text message provider.
type SMS interface {
	io.Closer
	// Send delivers msg. The destination is normalized before sending.
	Send(ctx context.Context, msg Message) (Receipt, error)
}

// NormalizePhone strips everything but digits and returns the number in
// "+<digits>" form.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	b.Grow(len(raw) + 1)
	b.WriteByte('+')

	n := 0
	for _, r := range raw {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			continue
		}
		b.WriteRune(r)
		n++
	}

	if n < minDigits {
		return "", ErrInvalidNumber
	}

	return b.String(), nil
}

// IsPermanent reports whether retrying err cannot succeed.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrInvalidNumber) ||
		errors.Is(err, ErrRegionNotAllowed) ||
		errors.Is(err, ErrUnsubscribed) ||
		errors.Is(err, ErrEmptyBody) ||
		errors.Is(err, ErrConfig)
}

func prepare(msg Message) (Message, error) {
	if strings.TrimSpace(msg.Body) == "" {
		return msg, ErrEmptyBody
	}

	to, err := NormalizePhone(msg.To)
	if err != nil {
		return msg, err
	}
	msg.To = to

	return msg, nil
}
