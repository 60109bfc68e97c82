package mail

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBody(t *testing.T) {
	tests := []struct {
		name        string
		msg         Message
		wantType    string
		wantContain []string
	}{
		{
			name:        "text only",
			msg:         Message{TextBody: "code 1234"},
			wantType:    "text/plain; charset=UTF-8",
			wantContain: []string{"code 1234"},
		},
		{
			name:        "html only",
			msg:         Message{HTMLBody: "<b>1234</b>"},
			wantType:    "text/html; charset=UTF-8",
			wantContain: []string{"<b>1234</b>"},
		},
		{
			name:        "alternative",
			msg:         Message{TextBody: "code 1234", HTMLBody: "<b>1234</b>"},
			wantType:    "multipart/alternative; boundary=ambassador-boundary-",
			wantContain: []string{"code 1234", "<b>1234</b>", "text/plain", "text/html"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := buildBody(tt.msg)

			assert.True(t, strings.HasPrefix(contentType, tt.wantType), contentType)
			for _, want := range tt.wantContain {
				assert.Contains(t, body, want)
			}
		})
	}
}

func TestNewSMTP_RequiresHost(t *testing.T) {
	_, err := NewSMTP(SMTPConfig{})
	assert.ErrorIs(t, err, ErrSMTPHostPortRequired)
}

func TestSMTP_SendValidation(t *testing.T) {
	s, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 2525})
	require.NoError(t, err)

	err = s.Send(context.Background(), Message{Subject: "x"})
	assert.ErrorIs(t, err, ErrSMTPNoRecipients)

	err = s.Send(context.Background(), Message{To: []string{"a@b.co"}})
	assert.ErrorIs(t, err, ErrSMTPNoSender)
}

func TestLog_Send(t *testing.T) {
	l := NewLog()
	assert.NoError(t, l.Send(context.Background(), Message{To: []string{"a@b.co"}, Subject: "hi"}))
	assert.ErrorIs(t, l.Send(context.Background(), Message{}), ErrSMTPNoRecipients)
}
