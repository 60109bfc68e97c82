package mail

import (
	"context"
	"errors"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type flakyMail struct {
	errs  []error
	calls int
}

func (f *flakyMail) Send(context.Context, Message) error {
	f.calls++
	if len(f.errs) == 0 {
		return nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

func (f *flakyMail) Close() error { return nil }

func TestRetry_Send(t *testing.T) {
	msg := Message{To: []string{"a@b.co"}, Subject: "s", TextBody: "t"}

	tests := []struct {
		name      string
		errs      []error
		wantErr   bool
		wantCalls int
	}{
		{name: "transient then ok", errs: []error{errors.New("dial tcp: timeout"), &textproto.Error{Code: 421, Msg: "busy"}}, wantCalls: 3},
		{name: "permanent reply", errs: []error{&textproto.Error{Code: 550, Msg: "no such user"}}, wantErr: true, wantCalls: 1},
		{name: "no recipients", errs: []error{ErrSMTPNoRecipients}, wantErr: true, wantCalls: 1},
		{name: "gives up", errs: []error{errors.New("x"), errors.New("x"), errors.New("x"), errors.New("x")}, wantErr: true, wantCalls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			next := &flakyMail{errs: tt.errs}
			r := NewRetry(next, 2, time.Millisecond)

			// Act
			err := r.Send(context.Background(), msg)

			// Assert
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.wantCalls, next.calls)
		})
	}
}
