package security

import "go.uber.org/zap/zapcore"

// Severity is derived from the event type, never supplied by callers
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityMedium   Severity = "MEDIUM"
	SeverityWarn     Severity = "WARN"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

var eventSeverity = map[EventType]Severity{
	EventLoginSuccess: SeverityInfo,
	EventOTPRequested: SeverityInfo,

	EventDataExport: SeverityMedium,

	EventLoginFailed:        SeverityWarn,
	EventRateLimitTriggered: SeverityWarn,
	EventAccessDenied:       SeverityWarn,
	EventUploadRejected:     SeverityWarn,

	EventLoginBlocked:       SeverityHigh,
	EventBlockCreated:       SeverityHigh,
	EventUnauthorizedAccess: SeverityHigh,

	EventMalwareDetected: SeverityCritical,
}

// GetSeverity returns the severity for an event type, MEDIUM when unmapped
func GetSeverity(eventType EventType) Severity {
	if severity, ok := eventSeverity[eventType]; ok {
		return severity
	}
	return SeverityMedium
}

// IsHighOrAbove reports whether the event needs operator attention
func IsHighOrAbove(eventType EventType) bool {
	severity := GetSeverity(eventType)
	return severity == SeverityHigh || severity == SeverityCritical
}

func (s Severity) level() zapcore.Level {
	switch s {
	case SeverityInfo, SeverityMedium:
		return zapcore.InfoLevel
	case SeverityHigh, SeverityCritical:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
