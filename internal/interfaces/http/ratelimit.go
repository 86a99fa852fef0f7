package http

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// LimitRecorder registra los rechazos del limitador.
type LimitRecorder interface {
	RecordRateLimited()
}

type ipLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// LoginLimiter limita los intentos de inicio de sesión por IP.
type LoginLimiter struct {
	rate     rate.Limit
	burst    int
	ttl      time.Duration
	recorder LimitRecorder

	mu       sync.Mutex
	limiters map[string]*ipLimiter
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewLoginLimiter crea el limitador (perMinute intentos por minuto, ráfaga burst) y
// arranca la limpieza periódica de IPs inactivas.
func NewLoginLimiter(perMinute float64, burst int, recorder LimitRecorder) *LoginLimiter {
	l := &LoginLimiter{
		rate:     rate.Limit(perMinute / 60),
		burst:    burst,
		ttl:      10 * time.Minute,
		recorder: recorder,
		limiters: make(map[string]*ipLimiter),
		stopCh:   make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Stop detiene la limpieza periódica.
func (l *LoginLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

// Allow consume un intento para la IP.
func (l *LoginLimiter) Allow(ip string) bool {
	l.mu.Lock()
	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastAccess = time.Now()
	l.mu.Unlock()
	return entry.limiter.Allow()
}

// Count IPs con limitador activo.
func (l *LoginLimiter) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// RetryAfter segundos estimados hasta el siguiente intento permitido.
func (l *LoginLimiter) RetryAfter() int {
	secs := int(math.Ceil(1 / float64(l.rate)))
	if secs < 1 {
		secs = 1
	}
	return secs
}

// Middleware rechaza con onLimit cuando la IP superó el límite.
func (l *LoginLimiter) Middleware(onLimit fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if l.Allow(c.IP()) {
			return c.Next()
		}
		if l.recorder != nil {
			l.recorder.RecordRateLimited()
		}
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(l.RetryAfter()))
		return onLimit(c)
	}
}

func (l *LoginLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup(time.Now())
		case <-l.stopCh:
			return
		}
	}
}

func (l *LoginLimiter) cleanup(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, entry := range l.limiters {
		if now.Sub(entry.lastAccess) > l.ttl {
			delete(l.limiters, ip)
		}
	}
}
