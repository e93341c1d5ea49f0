package usecase

import (
	"context"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/security/antivirus"

	"github.com/google/uuid"
)

type resumeUsecase struct {
	store     domain.FileStore
	limiter   domain.UploadLimiter
	scanner   antivirus.Scanner
	maxBytes  int64
	secLogger *security.SecurityLogger
}

// NewResumeUsecase wires resume uploads. limiter and scanner may be nil.
func NewResumeUsecase(store domain.FileStore, limiter domain.UploadLimiter, scanner antivirus.Scanner, maxBytes int64, secLogger *security.SecurityLogger) domain.ResumeUsecase {
	return &resumeUsecase{
		store:     store,
		limiter:   limiter,
		scanner:   scanner,
		maxBytes:  maxBytes,
		secLogger: secLogger,
	}
}

// UploadResume stores a candidate's resume and returns its URL.
func (u *resumeUsecase) UploadResume(ctx context.Context, actor domain.Actor, filename string, data []byte) (string, error) {
	if err := domain.RequireRole(actor, domain.AccountTypeCandidate); err != nil {
		return "", denied(ctx, u.secLogger, actor, "resume", err)
	}
	if len(data) == 0 {
		return "", apperror.BadRequest("File is required")
	}

	result := security.ValidateResume(filename, data, u.maxBytes)
	if !result.Valid {
		u.secLogger.LogUploadRejected(ctx, actor.ID, filename, result.Error)
		return "", apperror.BadRequest("Invalid resume: " + result.Error)
	}

	if u.limiter != nil {
		allowed, retryAfter, err := u.limiter.AllowUpload(ctx, actor.ID)
		if err != nil {
			logger.Log.Warn("upload limiter unavailable", "error", err)
		}
		if !allowed {
			u.secLogger.LogUploadRejected(ctx, actor.ID, filename, "rate_limited")
			return "", apperror.TooManyRequests(fmt.Sprintf("Upload limit reached. Try again in %s", retryAfter.Round(time.Second)))
		}
	}

	if u.scanner != nil {
		scan := u.scanner.Scan(ctx, filename, data)
		switch {
		case scan.Error != nil:
			logger.Log.Error("resume scan failed", "scanner", scan.ScannerName, "error", scan.Error)
			u.secLogger.LogUploadRejected(ctx, actor.ID, filename, "scan_failed")
			return "", apperror.Internal(scan.Error)
		case scan.Infected:
			u.secLogger.LogMalwareDetected(ctx, actor.ID, filename, scan.ThreatName, scan.ScannerName)
			return "", apperror.BadRequest("File rejected by malware scan")
		}
	}

	key := fmt.Sprintf("resumes/%s/%s%s", actor.ID, uuid.NewString(), result.Extension)
	url, err := u.store.Upload(ctx, key, security.ContentTypes[result.Extension], data)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return url, nil
}
