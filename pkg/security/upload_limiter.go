package security

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// UploadLimiter enforces per-user upload quotas using a Redis sliding window
type UploadLimiter struct {
	client       *goredis.Client
	maxPerMinute int
	maxPerDay    int
}

// KEYS[1] = rate limit key
// ARGV[1] = max count allowed, ARGV[2] = window seconds, ARGV[3] = now (unix seconds)
// Returns 1 if allowed, 0 if limited
const uploadRateLimitScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

local count = redis.call('ZCARD', key)
if count >= limit then
    return 0
end

redis.call('ZADD', key, now, now .. '-' .. math.random(1000000))
redis.call('EXPIRE', key, window)
return 1
`

// NewUploadLimiter creates an upload limiter. Defaults: 10/min and 50/day per user.
func NewUploadLimiter(client *goredis.Client, perMin, perDay int) *UploadLimiter {
	if perMin <= 0 {
		perMin = 10
	}
	if perDay <= 0 {
		perDay = 50
	}
	return &UploadLimiter{
		client:       client,
		maxPerMinute: perMin,
		maxPerDay:    perDay,
	}
}

// AllowUpload returns (allowed, retryAfter, error).
// Fails open when Redis is not configured, closed when a Redis call errors.
func (ul *UploadLimiter) AllowUpload(ctx context.Context, userID string) (bool, time.Duration, error) {
	if ul.client == nil {
		return true, 0, nil
	}

	now := time.Now().Unix()

	minuteKey := fmt.Sprintf("ratelimit:upload:min:%s", userID)
	allowed, err := ul.checkLimit(ctx, minuteKey, ul.maxPerMinute, 60, now)
	if err != nil {
		return false, time.Minute, fmt.Errorf("rate limit check failed: %w", err)
	}
	if !allowed {
		return false, time.Minute, nil
	}

	dayKey := fmt.Sprintf("ratelimit:upload:day:%s", userID)
	allowed, err = ul.checkLimit(ctx, dayKey, ul.maxPerDay, 86400, now)
	if err != nil {
		return false, time.Hour, fmt.Errorf("rate limit check failed: %w", err)
	}
	if !allowed {
		return false, time.Hour, nil
	}

	return true, 0, nil
}

func (ul *UploadLimiter) checkLimit(ctx context.Context, key string, limit, window int, now int64) (bool, error) {
	result, err := ul.client.Eval(ctx, uploadRateLimitScript, []string{key}, limit, window, now).Result()
	if err != nil {
		return false, err
	}
	allowed, ok := result.(int64)
	if !ok {
		return false, fmt.Errorf("unexpected result type from rate limit script")
	}
	return allowed == 1, nil
}
