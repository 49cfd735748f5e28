package middleware

import (
	"sync"
	"time"
)

const (
	loginAttemptWindow = time.Minute
	loginAttemptLimit  = 5
)

// LoginRateLimiter throttles failed admin login attempts per client IP.
// Successful logins are never counted.
type LoginRateLimiter struct {
	mu       sync.Mutex
	attempts map[string]*attemptInfo
}

type attemptInfo struct {
	count   int
	firstAt time.Time
}

func NewLoginRateLimiter() *LoginRateLimiter {
	rl := &LoginRateLimiter{
		attempts: make(map[string]*attemptInfo),
	}
	go rl.cleanup()
	return rl
}

// Allow reports whether ip may record another failed attempt within the
// current window.
func (r *LoginRateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	info, exists := r.attempts[ip]
	if !exists || now.Sub(info.firstAt) > loginAttemptWindow {
		r.attempts[ip] = &attemptInfo{count: 1, firstAt: now}
		return true
	}
	if info.count >= loginAttemptLimit {
		return false
	}
	info.count++
	return true
}

func (r *LoginRateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		r.mu.Lock()
		now := time.Now()
		for ip, info := range r.attempts {
			if now.Sub(info.firstAt) > loginAttemptWindow {
				delete(r.attempts, ip)
			}
		}
		r.mu.Unlock()
	}
}
