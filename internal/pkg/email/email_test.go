package email

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configured() SMTPConfig {
	return SMTPConfig{
		Host:       "smtp.example.com",
		Port:       587,
		Username:   "office",
		Password:   "secret",
		FromName:   "Admissions",
		FromEmail:  "office@example.com",
		SchoolName: "Pioneer Institute",
	}
}

func TestNotifyStatusChange_Unconfigured(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{}, zerolog.Nop())
	n.send = func(string, []byte) error {
		t.Fatal("send must not be called without credentials")
		return nil
	}
	assert.NoError(t, n.NotifyStatusChange(context.Background(), "a@x.com", "Aarav", "approved"))
}

func TestNotifyStatusChange_Sends(t *testing.T) {
	n := NewSMTPNotifier(configured(), zerolog.Nop())

	var gotTo string
	var gotMsg []byte
	n.send = func(to string, msg []byte) error {
		gotTo, gotMsg = to, msg
		return nil
	}

	require.NoError(t, n.NotifyStatusChange(context.Background(), "a@x.com", "Aarav", "approved"))
	assert.Equal(t, "a@x.com", gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Application Update - Pioneer Institute\r\n")
	assert.Contains(t, string(gotMsg), "<strong>Aarav</strong> has been approved")
}

func TestNotifyStatusChange_Errors(t *testing.T) {
	n := NewSMTPNotifier(configured(), zerolog.Nop())
	n.send = func(string, []byte) error { return errors.New("dial failed") }

	assert.Error(t, n.NotifyStatusChange(context.Background(), "a@x.com", "Aarav", "rejected"))
	assert.Error(t, n.NotifyStatusChange(context.Background(), "a@x.com", "Aarav", "archived"))
}
