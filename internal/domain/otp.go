package domain

import (
	"context"
	"time"
)

// OTP is a one-shot signup code. Only the most recent code per email is matched.
type OTP struct {
	ID       string
	Email    string
	Code     string
	IssuedAt time.Time
}

// ExpiredAt reports whether the code is past its validity window at now.
func (o *OTP) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return o.IssuedAt.Add(ttl).Before(now)
}

type OTPRepository interface {
	Create(ctx context.Context, otp *OTP) error
	CodeExists(ctx context.Context, code string) (bool, error)
	GetLatestByEmail(ctx context.Context, email string) (*OTP, error)
}

// OTPSender delivers a signup code out of band.
type OTPSender interface {
	SendOTP(to, code string, expiresIn time.Duration) error
}
