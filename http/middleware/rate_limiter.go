package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/xy-planning-network/wayfinder"
	"golang.org/x/time/rate"
)

const (
	visitorBurst   = 20
	visitorRate    = 5
	visitorTTL     = time.Hour
	visitorSweepAt = time.Minute
)

// A Visitor is a rate limiter for one IP address and when that address was last seen.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// Visitors tracks a Visitor per IP address,
// forgetting addresses not seen for an hour.
type Visitors struct {
	mu        sync.Mutex
	lastSweep time.Time
	val       map[string]Visitor
}

func NewVisitors() *Visitors {
	return &Visitors{lastSweep: time.Now(), val: make(map[string]Visitor)}
}

// Fetch returns the Visitor for ip, starting to track it if unseen.
// A new Visitor may make 5 requests a second, in bursts of up to 20.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	now := time.Now().UTC()
	if now.Sub(vs.lastSweep) > visitorSweepAt {
		vs.sweep(now)
	}

	v, ok := vs.val[ip]
	if !ok {
		v.Limiter = rate.NewLimiter(visitorRate, visitorBurst)
	}
	v.LastSeen = now
	vs.val[ip] = v

	return v
}

// Len reports how many visitors are tracked.
func (vs *Visitors) Len() int {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return len(vs.val)
}

// sweep forgets visitors not seen in visitorTTL. vs.mu must be held.
func (vs *Visitors) sweep(now time.Time) {
	for ip, v := range vs.val {
		if now.Sub(v.LastSeen) > visitorTTL {
			delete(vs.val, ip)
		}
	}
	vs.lastSweep = now
}

// RateLimit responds with http.StatusTooManyRequests, and a "Retry-After" header,
// once a visitor exhausts its limiter.
// The visitor is the address InjectIPAddress stashed, or else the one GetIPAddress finds.
//
// With nil visitors, NoopAdapter returns.
func RateLimit(visitors *Visitors) Adapter {
	if visitors == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, ok := r.Context().Value(wayfinder.IpAddrKey).(string)
			if !ok || ip == "" {
				ip = GetIPAddress(r.Header)
			}

			res := visitors.Fetch(ip).Limiter.Reserve()
			if delay := res.Delay(); delay > 0 {
				res.Cancel()
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			h.ServeHTTP(w, r)
		})
	}
}
