package rate_limit

import (
	"context"
	"fmt"
	"math"
	"time"

	"importhub/internal/cache"

	"github.com/google/uuid"
)

type RateLimitResult struct {
	Allowed       bool      `json:"allowed"`
	Remaining     int       `json:"remaining"`
	ResetTime     time.Time `json:"resetTime"`
	RetryAfterSec int       `json:"retryAfterSec,omitempty"`
}

const (
	defaultTimeout = 5 * time.Second
	bucketTTLSec   = 300
)

// Token bucket in a valkey hash. Refill and consume happen atomically:
// 1. read tokens and last refill time
// 2. add tokens for the elapsed time, capped by the burst
// 3. take one token when available
// 4. store the state with a TTL
const tokenBucketLuaScript = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local rps_limit = tonumber(ARGV[2])
local burst_limit = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local current = redis.call('HMGET', key, 'tokens', 'last_refill')
local tokens = tonumber(current[1]) or burst_limit
local last_refill = tonumber(current[2]) or now

local elapsed = math.max(0, now - last_refill)
local tokens_to_add = math.floor(elapsed * rps_limit / 1000)
tokens = math.min(burst_limit, tokens + tokens_to_add)
if tokens_to_add > 0 then
    last_refill = now
end

local allowed = 0
if tokens >= 1 then
    allowed = 1
    tokens = tokens - 1
end

redis.call('HMSET', key, 'tokens', tokens, 'last_refill', last_refill)
redis.call('EXPIRE', key, ttl)

local time_to_full = 0
if tokens < burst_limit then
    time_to_full = math.ceil((burst_limit - tokens) * 1000 / rps_limit)
end

return {allowed, tokens, time_to_full}
`

// RateLimiter limits actions per scope (a workspace, a user) with buckets
// shared by every instance through valkey.
type RateLimiter struct {
	keyPrefix string
}

func NewRateLimiter(keyPrefix string) *RateLimiter {
	return &RateLimiter{keyPrefix: keyPrefix}
}

func (r *RateLimiter) CheckRateLimit(scopeID uuid.UUID, rpsLimit, burstLimit int) (*RateLimitResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if rpsLimit <= 0 {
		rpsLimit = 1
	}
	if burstLimit <= 0 {
		burstLimit = rpsLimit * 5
	}

	client := cache.GetCache()
	now := time.Now().UnixMilli()

	result := client.Do(ctx, client.B().Eval().
		Script(tokenBucketLuaScript).
		Numkeys(1).
		Key(r.key(scopeID)).
		Arg(fmt.Sprintf("%d", now)).
		Arg(fmt.Sprintf("%d", rpsLimit)).
		Arg(fmt.Sprintf("%d", burstLimit)).
		Arg(fmt.Sprintf("%d", bucketTTLSec)).
		Build())

	if result.Error() != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", result.Error())
	}

	values, err := result.AsIntSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate limit result: %w", err)
	}

	if len(values) < 3 {
		return nil, fmt.Errorf("invalid rate limit result: expected 3 values, got %d", len(values))
	}

	allowed := values[0] == 1

	var retryAfterSec int
	if !allowed {
		retryAfterSec = max(int(math.Ceil(1.0/float64(rpsLimit))), 1)
	}

	return &RateLimitResult{
		Allowed:       allowed,
		Remaining:     int(values[1]),
		ResetTime:     time.Now().Add(time.Duration(values[2]) * time.Millisecond),
		RetryAfterSec: retryAfterSec,
	}, nil
}

func (r *RateLimiter) ResetRateLimit(scopeID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client := cache.GetCache()

	return client.Do(ctx, client.B().Del().Key(r.key(scopeID)).Build()).Error()
}

func (r *RateLimiter) key(scopeID uuid.UUID) string {
	return r.keyPrefix + scopeID.String()
}
