package middleware

import (
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/blend-service/internal/i18n"
	"github.com/guttosm/blend-service/internal/metrics"
	"golang.org/x/time/rate"
)

const defaultNumShards = 16

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterShard struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

// RateLimiter gives every client a token bucket holding perWindow tokens that
// refills evenly over window. Buckets live in FNV-sharded maps and a shard
// drops its idle buckets while it is being used, so no background goroutine
// is needed.
type RateLimiter struct {
	shards    []*limiterShard
	perWindow int
	window    time.Duration
	refill    rate.Limit
	now       func() time.Time
}

// NewRateLimiter creates a limiter with defaultNumShards shards.
func NewRateLimiter(perWindow int, window time.Duration) *RateLimiter {
	return NewShardedRateLimiter(perWindow, window, defaultNumShards)
}

// NewShardedRateLimiter creates a limiter with numShards shards.
func NewShardedRateLimiter(perWindow int, window time.Duration, numShards int) *RateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}
	perWindow = max(perWindow, 1)
	if window <= 0 {
		window = time.Minute
	}

	rl := &RateLimiter{
		shards:    make([]*limiterShard, numShards),
		perWindow: perWindow,
		window:    window,
		refill:    rate.Every(window / time.Duration(perWindow)),
		now:       time.Now,
	}
	for i := range rl.shards {
		rl.shards[i] = &limiterShard{buckets: make(map[string]*bucket)}
	}
	return rl
}

func (rl *RateLimiter) shardFor(id string) *limiterShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return rl.shards[h.Sum32()%uint32(len(rl.shards))]
}

// Allow takes one token from id's bucket.
func (rl *RateLimiter) Allow(id string) Decision {
	now := rl.now()
	shard := rl.shardFor(id)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	rl.sweep(shard, now)

	b, ok := shard.buckets[id]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rl.refill, rl.perWindow)}
		shard.buckets[id] = b
	}
	b.lastSeen = now

	res := b.limiter.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return Decision{RetryAfter: delay}
	}
	return Decision{
		Allowed:   true,
		Remaining: int(math.Max(0, math.Floor(b.limiter.TokensAt(now)))),
	}
}

// sweep drops buckets idle for two windows, at most once per window. Such
// buckets are full again, so forgetting them changes no decision.
func (rl *RateLimiter) sweep(shard *limiterShard, now time.Time) {
	if now.Sub(shard.lastSweep) < rl.window {
		return
	}
	shard.lastSweep = now
	for id, b := range shard.buckets {
		if now.Sub(b.lastSeen) > 2*rl.window {
			delete(shard.buckets, id)
		}
	}
}

// Len returns the number of tracked clients.
func (rl *RateLimiter) Len() int {
	n := 0
	for _, shard := range rl.shards {
		shard.mu.Lock()
		n += len(shard.buckets)
		shard.mu.Unlock()
	}
	return n
}

// RateLimit limits each authenticated subject, or the client IP for
// anonymous requests, and answers 429 with Retry-After once the bucket is
// empty.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		d := rl.Allow(clientIdentity(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.perWindow))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))

		if !d.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(d.RetryAfter.Seconds()))))
			metrics.RecordAbortedRequest("rate_limited", routeLabel(c))
			abortWithKey(c, http.StatusTooManyRequests, i18n.ErrKeyRateLimitExceeded)
			return
		}
		c.Next()
	}
}

func clientIdentity(c *gin.Context) string {
	if subject := GetSubject(c); subject != "" {
		return "subject:" + subject
	}
	return "ip:" + c.ClientIP()
}
