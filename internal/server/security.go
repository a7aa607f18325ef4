package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/QuestPlanner_Go/internal/logger"
)

// ProxyList holds the peers whose X-Forwarded-For header is believed
type ProxyList []netip.Prefix

// ParseProxyList accepts single addresses and CIDR ranges. Invalid entries are
// logged and skipped.
func ParseProxyList(entries []string) ProxyList {
	var list ProxyList
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if p, err := netip.ParsePrefix(e); err == nil {
			list = append(list, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(e)
		if err != nil {
			slog.Warn(LogMsgBadTrustedProxy, "entry", e, "error", err)
			continue
		}
		addr = addr.Unmap()
		list = append(list, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return list
}

func (l ProxyList) contains(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range l {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientIP returns the caller's address. X-Forwarded-For is only read when the
// direct peer is a trusted proxy, and then only its rightmost entry, which is
// the hop our proxy saw.
func (l ProxyList) ClientIP(r *http.Request) string {
	remote, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remote = r.RemoteAddr
	}
	if !l.contains(remote) {
		return remote
	}

	forwarded := r.Header.Values(HeaderForwardedFor)
	if len(forwarded) == 0 {
		return remote
	}
	hops := strings.Split(forwarded[len(forwarded)-1], ",")
	if hop := strings.TrimSpace(hops[len(hops)-1]); hop != "" {
		return hop
	}
	return remote
}

// AuthMiddleware requires the configured API key. An empty key disables the check.
func AuthMiddleware(apiKey string, proxies ProxyList, tracker *ActivityTracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if apiKey == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ip := proxies.ClientIP(r)
			failures := tracker.RecordFailedAuth(ip)
			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
				"path", r.URL.Path,
				"has_key", providedKey != "",
				"ip", ip,
				"failures", failures)

			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
		})
	}
}

// RequestSizeLimitMiddleware caps request bodies at maxBytes
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// clientActivity is one IP's counters for its current window
type clientActivity struct {
	requests   int
	failedAuth int
}

// ActivityTracker counts requests and failed logins per IP. Each IP's window starts
// at its first request; entries expire with the window and the least recently seen
// IPs are evicted once TrackedClients is reached.
type ActivityTracker struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients *expirable.LRU[string, *clientActivity]
}

// NewActivityTracker allows limit requests per IP per window. A non-positive limit
// disables blocking; failed logins are still counted.
func NewActivityTracker(limit int, window time.Duration) *ActivityTracker {
	return &ActivityTracker{
		limit:   limit,
		window:  window,
		clients: expirable.NewLRU[string, *clientActivity](TrackedClients, nil, window),
	}
}

// activity returns the live counters for ip. Caller must hold the mutex.
func (t *ActivityTracker) activity(ip string) *clientActivity {
	// Get does not extend the TTL, so the window stays anchored to the Add
	if a, ok := t.clients.Get(ip); ok {
		return a
	}
	a := &clientActivity{}
	t.clients.Add(ip, a)
	return a
}

// RecordFailedAuth counts a rejected API key and returns the failures in the window
func (t *ActivityTracker) RecordFailedAuth(ip string) int {
	t.mu.Lock()
	a := t.activity(ip)
	a.failedAuth++
	n := a.failedAuth
	t.mu.Unlock()

	if n >= FailedAuthAlertAt {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", n)
	}
	return n
}

// RecordRequest counts a request and reports whether ip is still under its limit
func (t *ActivityTracker) RecordRequest(ip string) bool {
	t.mu.Lock()
	a := t.activity(ip)
	a.requests++
	n := a.requests
	t.mu.Unlock()

	if t.limit <= 0 || n <= t.limit {
		return true
	}
	// First rejection and every hundredth after it
	if (n-t.limit-1)%100 == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", n, "window", t.window)
	}
	return false
}

// RateLimitMiddleware answers 429 once a client is over the tracker's limit
func RateLimitMiddleware(proxies ProxyList, tracker *ActivityTracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !tracker.RecordRequest(proxies.ClientIP(r)) {
				w.Header().Set(HeaderRetryAfter, RetryAfterSeconds)
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware sets the browser hardening headers on every response
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	headers := [][2]string{
		{HeaderContentType, HeaderValueNoSniff},
		{HeaderFrameOptions, HeaderValueSameOrigin},
		{HeaderXSSProtection, HeaderValueXSSBlock},
		{HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin},
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, h := range headers {
				w.Header().Set(h[0], h[1])
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware echoes allowed origins, with credentials permitted, and answers
// preflight requests. Requests from other origins pass through without CORS headers.
func CORSMiddleware(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			allowed[o] = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get(HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add(HeaderVary, HeaderOrigin)
			if !allowed[origin] {
				logger.FromContext(r.Context()).Debug(LogMsgCORSRejected, "origin", origin)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set(HeaderAllowOrigin, origin)
			w.Header().Set(HeaderAllowCredentials, "true")
			if r.Method == http.MethodOptions && r.Header.Get(HeaderRequestMeth) != "" {
				w.Header().Set(HeaderAllowMethods, CORSAllowedMethods)
				w.Header().Set(HeaderAllowHeaders, CORSAllowedHeaders)
				w.Header().Set(HeaderMaxAge, CORSMaxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
