package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/c9s/chartdesk/pkg/metrics"
)

// Registry holds the open sessions keyed by their uuid.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	lastSeen map[string]time.Time
	options  Options

	now func() time.Time
}

func NewRegistry(options Options) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		lastSeen: make(map[string]time.Time),
		options:  options,
		now:      time.Now,
	}
}

// Create opens a new session with the registry's default options.
func (r *Registry) Create() *Session {
	s := New(uuid.NewString(), r.options)

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.lastSeen[s.ID] = r.now()
	n := len(r.sessions)
	r.mu.Unlock()

	metrics.ActiveSessionsMetrics.Set(float64(n))
	log.Infof("session %s created", s.ID)
	return s
}

// Get looks up the session and marks it as used.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if ok {
		r.lastSeen[id] = r.now()
	}
	return s, ok
}

// Delete closes the session. It returns false when the id is unknown.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	delete(r.lastSeen, id)
	n := len(r.sessions)
	r.mu.Unlock()

	if ok {
		metrics.ActiveSessionsMetrics.Set(float64(n))
		log.Infof("session %s deleted", id)
	}
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Expire deletes the sessions that were not used for longer than ttl and returns their ids.
func (r *Registry) Expire(ttl time.Duration) []string {
	deadline := r.now().Add(-ttl)

	r.mu.Lock()
	var expired []string
	for id, t := range r.lastSeen {
		if t.Before(deadline) {
			expired = append(expired, id)
			delete(r.sessions, id)
			delete(r.lastSeen, id)
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	if len(expired) > 0 {
		metrics.ActiveSessionsMetrics.Set(float64(n))
		log.Infof("expired %d idle sessions", len(expired))
	}
	return expired
}

// StartJanitor runs Expire on the cron schedule, e.g. "@every 5m".
// The returned cron must be stopped by the caller.
func (r *Registry) StartJanitor(schedule string, ttl time.Duration) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		r.Expire(ttl)
	}); err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
