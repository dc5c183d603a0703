package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, повторите позже"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов на клиента (пользователь или IP)
type RateLimiter struct {
	mu             sync.Mutex
	limiters       map[string]*limiterEntry
	rps            rate.Limit
	burst          int
	idleTTL        time.Duration
	trustedProxies []netip.Prefix
	logger         Logger
}

// NewRateLimiter создаёт ограничитель; клиенты без запросов дольше idleTTL забываются
// Заголовки X-Forwarded-For и X-Real-IP учитываются, только если запрос пришёл от trustedProxies
func NewRateLimiter(rps float64, burst int, idleTTL time.Duration, trustedProxies []netip.Prefix, logger Logger) *RateLimiter {
	return &RateLimiter{
		limiters:       make(map[string]*limiterEntry),
		rps:            rate.Limit(rps),
		burst:          burst,
		idleTTL:        idleTTL,
		trustedProxies: trustedProxies,
		logger:         logger,
	}
}

func (l *RateLimiter) getLimiter(key string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	for k, e := range l.limiters {
		if now.Sub(e.lastSeen) > l.idleTTL {
			delete(l.limiters, k)
		}
	}

	entry, ok := l.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// Middleware возвращает mux middleware
func (l *RateLimiter) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := l.clientKey(r)
			if !l.getLimiter(key, time.Now()).Allow() {
				l.logger.Warn("Rate limit exceeded: client=%s, path=%s", key, r.URL.Path)
				handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey пользователь из контекста, иначе IP клиента
func (l *RateLimiter) clientKey(r *http.Request) string {
	if userID, ok := GetUserID(r.Context()); ok {
		return "user:" + strconv.FormatInt(userID, 10)
	}
	return "ip:" + l.clientIP(r)
}

// clientIP адрес соединения; за доверенным прокси - ближайший недоверенный адрес
// из X-Forwarded-For (справа налево), затем X-Real-IP
func (l *RateLimiter) clientIP(r *http.Request) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		peer = host
	}

	if !l.isTrusted(peer) {
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			if hop := strings.TrimSpace(hops[i]); hop != "" && !l.isTrusted(hop) {
				return hop
			}
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	return peer
}

func (l *RateLimiter) isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range l.trustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
