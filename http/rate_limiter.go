package http

import (
	"sync"
	"time"

	"mortgage-planner/logging"
)

// RateLimiterConfig sets how many requests a client IP may make per window.
type RateLimiterConfig struct {
	Capacity int
	Window   time.Duration
	// Clients idle for longer than IdleTimeout are forgotten by the sweep
	// that runs every CleanupInterval.
	IdleTimeout     time.Duration
	CleanupInterval time.Duration
}

func (c RateLimiterConfig) withDefaults() RateLimiterConfig {
	if c.Capacity <= 0 {
		c.Capacity = 5
	}
	if c.Window <= 0 {
		c.Window = time.Minute
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = time.Hour
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = 30 * time.Minute
	}
	return c
}

// Decision is the outcome of one request against a client's window.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type clientWindow struct {
	used    int
	started time.Time
}

// RateLimiter counts requests per client IP in fixed windows.
type RateLimiter struct {
	mu      sync.Mutex
	cfg     RateLimiterConfig
	clients map[string]*clientWindow
	logger  *logging.Logger
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(cfg RateLimiterConfig, logger *logging.Logger) *RateLimiter {
	rl := &RateLimiter{
		cfg:     cfg.withDefaults(),
		clients: make(map[string]*clientWindow),
		logger:  logger.WithComponent(logging.ComponentRateLimit),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Take records a request from ip and reports whether it fits the window.
func (r *RateLimiter) Take(ip string) Decision {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	win, ok := r.clients[ip]
	if !ok || now.Sub(win.started) >= r.cfg.Window {
		win = &clientWindow{started: now}
		r.clients[ip] = win
	}

	d := Decision{Limit: r.cfg.Capacity}
	if win.used >= r.cfg.Capacity {
		d.RetryAfter = win.started.Add(r.cfg.Window).Sub(now)
		return d
	}
	win.used++
	d.Allowed = true
	d.Remaining = r.cfg.Capacity - win.used
	return d
}

func (r *RateLimiter) Allow(ip string) bool {
	return r.Take(ip).Allowed
}

// ActiveClients is the number of client IPs currently tracked.
func (r *RateLimiter) ActiveClients() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

func (r *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(r.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := r.sweep(); removed > 0 {
				r.logger.Debug("idle clients forgotten", "removed", removed, "active", r.ActiveClients())
			}
		case <-r.stop:
			return
		}
	}
}

func (r *RateLimiter) sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.cfg.IdleTimeout)
	removed := 0
	for ip, win := range r.clients {
		if win.started.Before(cutoff) {
			delete(r.clients, ip)
			removed++
		}
	}
	return removed
}

func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}
