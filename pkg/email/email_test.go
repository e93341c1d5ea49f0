package email

import (
	"errors"
	"net/smtp"
	"testing"
	"time"

	"go-jobboard-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendOTPEmail(t *testing.T) {
	cfg := &config.Config{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     "587",
		SMTPUsername: "mailer@example.com",
		SMTPPassword: "pw",
	}

	t.Run("Should render the code and address the recipient", func(t *testing.T) {
		svc := NewEmailService(cfg)
		var gotAddr string
		var gotTo []string
		var gotMsg []byte
		svc.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotTo, gotMsg = addr, to, msg
			assert.Equal(t, "mailer@example.com", from)
			return nil
		}

		err := svc.SendOTPEmail("jane@example.com", OTPEmailData{Code: "042917", ExpiresIn: 5 * time.Minute})
		require.NoError(t, err)
		assert.Equal(t, "smtp.example.com:587", gotAddr)
		assert.Equal(t, []string{"jane@example.com"}, gotTo)
		assert.Contains(t, string(gotMsg), "042917")
		assert.Contains(t, string(gotMsg), "5m0s")
	})

	t.Run("Should wrap transport errors", func(t *testing.T) {
		svc := NewEmailService(cfg)
		svc.send = func(string, smtp.Auth, string, []string, []byte) error {
			return errors.New("dial tcp: refused")
		}
		err := svc.SendOTPEmail("jane@example.com", OTPEmailData{Code: "000001"})
		assert.ErrorContains(t, err, "failed to send email")
	})

	t.Run("Should report configuration", func(t *testing.T) {
		assert.True(t, NewEmailService(cfg).IsConfigured())
		assert.False(t, NewEmailService(&config.Config{}).IsConfigured())
	})
}
