package form

import (
	"context"
	"sync"
	"time"

	"depo/internal/core/apperror"
	"depo/internal/core/id"
	"depo/pkg/logger"
)

type entry struct {
	session    Session
	lastActive time.Time
}

// ExpireFunc is called for every session closed by Sweep.
type ExpireFunc func(sessionID id.ID, s Session)

// Registry holds the open dialog sessions of the process.
// Sessions are independent; the registry lock only guards the map.
type Registry struct {
	mu       sync.Mutex
	sessions map[id.ID]*entry
	now      func() time.Time
	onExpire ExpireFunc
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithClock overrides the time source used for idle tracking.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

// WithExpireHook registers a callback for sessions dismissed by Sweep.
func WithExpireHook(fn ExpireFunc) RegistryOption {
	return func(r *Registry) { r.onExpire = fn }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		sessions: make(map[id.ID]*entry),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Put registers s and returns its session id.
func (r *Registry) Put(s Session) id.ID {
	sid := id.New()
	r.mu.Lock()
	r.sessions[sid] = &entry{session: s, lastActive: r.now()}
	r.mu.Unlock()
	return sid
}

// Get returns the session and marks it active.
// Unknown and closed sessions yield SESSION_NOT_FOUND; closed ones are dropped.
func (r *Registry) Get(sid id.ID) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[sid]
	if !ok {
		return nil, apperror.NewSessionNotFound(sid.String())
	}
	if e.session.Closed() {
		delete(r.sessions, sid)
		return nil, apperror.NewSessionNotFound(sid.String())
	}
	e.lastActive = r.now()
	return e.session, nil
}

// Remove drops the session.
func (r *Registry) Remove(sid id.ID) {
	r.mu.Lock()
	delete(r.sessions, sid)
	r.mu.Unlock()
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep dismisses sessions idle for longer than idle and drops closed ones.
// Sessions with a submission in flight are kept. Returns the number dismissed.
func (r *Registry) Sweep(idle time.Duration) int {
	type expired struct {
		sid id.ID
		s   Session
	}

	r.mu.Lock()
	now := r.now()
	var gone []expired
	for sid, e := range r.sessions {
		if e.session.Closed() {
			delete(r.sessions, sid)
			continue
		}
		if now.Sub(e.lastActive) <= idle {
			continue
		}
		if e.session.Dismiss() {
			delete(r.sessions, sid)
			gone = append(gone, expired{sid: sid, s: e.session})
		}
	}
	r.mu.Unlock()

	if r.onExpire != nil {
		for _, g := range gone {
			r.onExpire(g.sid, g.s)
		}
	}
	return len(gone)
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval, idle time.Duration) {
	log := logger.FromContext(ctx).WithComponent("form-registry")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(idle); n > 0 {
				log.Infow("dismissed idle form sessions", "count", n, "open", r.Len())
			}
		}
	}
}

// Lookup returns the session with id sid as a T.
// A session of another kind is reported as not found.
func Lookup[T Session](r *Registry, sid id.ID) (T, error) {
	var zero T
	s, err := r.Get(sid)
	if err != nil {
		return zero, err
	}
	typed, ok := s.(T)
	if !ok {
		return zero, apperror.NewSessionNotFound(sid.String())
	}
	return typed, nil
}
