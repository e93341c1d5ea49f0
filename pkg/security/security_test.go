package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestValidateResume(t *testing.T) {
	pdf := append([]byte("%PDF-1.7\n"), make([]byte, 64)...)
	docx := append([]byte{0x50, 0x4B, 0x03, 0x04}, make([]byte, 64)...)
	doc := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 64)...)

	t.Run("Should accept pdf, docx and doc resumes", func(t *testing.T) {
		assert.True(t, ValidateResume("cv.pdf", pdf, 0).Valid)
		assert.True(t, ValidateResume("cv.DOCX", docx, 0).Valid)
		assert.True(t, ValidateResume("cv.doc", doc, 0).Valid)
	})

	t.Run("Should reject spoofed content", func(t *testing.T) {
		res := ValidateResume("cv.pdf", docx, 0)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Error, "does not match")
	})

	t.Run("Should reject other extensions", func(t *testing.T) {
		res := ValidateResume("avatar.png", pdf, 0)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Error, "not allowed")
	})

	t.Run("Should reject oversized files", func(t *testing.T) {
		res := ValidateResume("cv.pdf", pdf, 10)
		assert.False(t, res.Valid)
		assert.Equal(t, "file is too large", res.Error)
	})

	t.Run("Should reject files without extension", func(t *testing.T) {
		assert.Error(t, ValidateFileExtension("resume"))
		assert.NoError(t, ValidateFileExtension("resume.pdf"))
	})
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("jane@example.com"))
	assert.Equal(t, "***@example.com", MaskEmail("j@example.com"))
	assert.Equal(t, "***", MaskEmail("ab"))
	assert.Len(t, MaskEmail("not-an-email"), 16)
}

func TestGetSeverity(t *testing.T) {
	assert.Equal(t, SeverityInfo, GetSeverity(EventLoginSuccess))
	assert.Equal(t, SeverityHigh, GetSeverity(EventLoginBlocked))
	assert.Equal(t, SeverityMedium, GetSeverity(EventType("unknown")))
	assert.True(t, IsHighOrAbove(EventMalwareDetected))
	assert.False(t, IsHighOrAbove(EventRateLimitTriggered))
}

func TestSecurityLogger(t *testing.T) {
	t.Run("Should write structured events with masked email", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		sl := WithZap(zap.New(core), "jobboard-api", "test")

		sl.LogLoginFailed(context.Background(), "jane@example.com", "10.0.0.1", "curl", "invalid_credentials")

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.WarnLevel, entry.Level)
		assert.Equal(t, "login_failed", entry.Message)
		assert.Equal(t, "j***@example.com", entry.ContextMap()["subject_value"])
		assert.Equal(t, "WARN", entry.ContextMap()["severity"])
	})

	t.Run("Should log high severity events at error level", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		sl := WithZap(zap.New(core), "jobboard-api", "test")

		sl.LogMalwareDetected(context.Background(), "u1", "cv.pdf", "Eicar-Test-Signature", "clamav")

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
		assert.Equal(t, "CRITICAL", logs.All()[0].ContextMap()["severity"])
		assert.Equal(t, true, logs.All()[0].ContextMap()["alert"])
	})

	t.Run("Should tolerate a nil logger", func(t *testing.T) {
		var sl *SecurityLogger
		assert.NotPanics(t, func() {
			sl.LogAccessDenied(context.Background(), "u1", "job", "not owner")
			_ = sl.Sync()
		})
	})
}

func TestTrackersWithoutRedis(t *testing.T) {
	ctx := context.Background()

	t.Run("Login tracker never blocks", func(t *testing.T) {
		lt := NewLoginTracker(nil, LoginTrackerConfig{}, nil)
		blocked, err := lt.IsBlocked(ctx, "jane@example.com", "10.0.0.1")
		require.NoError(t, err)
		assert.False(t, blocked)

		blocked, attempts, err := lt.RecordFailedAttempt(ctx, "jane@example.com", "10.0.0.1", "curl")
		require.NoError(t, err)
		assert.False(t, blocked)
		assert.Zero(t, attempts)
		assert.NoError(t, lt.ClearAttempts(ctx, "jane@example.com", "10.0.0.1"))
	})

	t.Run("Upload limiter fails open", func(t *testing.T) {
		ul := NewUploadLimiter(nil, 0, 0)
		allowed, retry, err := ul.AllowUpload(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Zero(t, retry)
	})
}
