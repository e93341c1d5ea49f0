package postgres

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type otpRepo struct {
	db *pgxpool.Pool
}

func NewOTPRepository(db *pgxpool.Pool) domain.OTPRepository {
	return &otpRepo{db: db}
}

func (r *otpRepo) Create(ctx context.Context, otp *domain.OTP) error {
	query := `INSERT INTO otps (id, email, code, issued_at) VALUES ($1, $2, $3, $4)`
	_, err := conn(ctx, r.db).Exec(ctx, query, otp.ID, otp.Email, otp.Code, otp.IssuedAt)
	return translate(err)
}

// CodeExists reports whether any stored record uses code.
func (r *otpRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM otps WHERE code = $1)`, code).Scan(&exists)
	return exists, err
}

func (r *otpRepo) GetLatestByEmail(ctx context.Context, email string) (*domain.OTP, error) {
	query := `SELECT id, email, code, issued_at FROM otps WHERE email = $1 ORDER BY issued_at DESC LIMIT 1`
	var otp domain.OTP
	err := conn(ctx, r.db).QueryRow(ctx, query, email).Scan(&otp.ID, &otp.Email, &otp.Code, &otp.IssuedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &otp, nil
}
