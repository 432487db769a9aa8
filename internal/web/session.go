package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/talent-search/internal/domain/billing"
	"github.com/honeycarbs/talent-search/internal/domain/search"
	"github.com/honeycarbs/talent-search/internal/domain/upload"
	"github.com/honeycarbs/talent-search/internal/fixtures"
)

const (
	sessionCookie = "ts_session"
	initialParsed = 3

	DefaultSessionTTL  = 30 * time.Minute
	DefaultMaxSessions = 10000
)

// session is one browser's state. Its controller and batch are safe for concurrent use;
// lastSeen is guarded by the store and the remaining fields by mu.
type session struct {
	id       string
	ctrl     *search.Controller
	batch    *upload.Batch
	lastSeen time.Time

	mu    sync.Mutex
	plan  billing.Plan
	flash string
}

func (s *session) setFlash(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash = msg
}

// takeFlash returns the pending notice once
func (s *session) takeFlash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.flash
	s.flash = ""
	return msg
}

func (s *session) setPlan(p billing.Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = p
}

func (s *session) currentPlan() billing.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

// sessionStore maps cookie values to sessions. Sessions idle longer than ttl are dropped, and
// the map never holds more than max sessions.
type sessionStore struct {
	newController ControllerFactory
	defaultPlan   billing.Plan
	ttl           time.Duration
	max           int
	clock         func() time.Time

	mu   sync.Mutex
	byID map[string]*session
}

func newSessionStore(newController ControllerFactory, defaultPlan billing.Plan, ttl time.Duration, maxSessions int) *sessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &sessionStore{
		newController: newController,
		defaultPlan:   defaultPlan,
		ttl:           ttl,
		max:           maxSessions,
		clock:         time.Now,
		byID:          make(map[string]*session),
	}
}

// get returns the session named by the request cookie, creating one and setting the cookie
// when the cookie is missing, malformed, unknown or expired
func (st *sessionStore) get(w http.ResponseWriter, r *http.Request) (*session, error) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			if s, ok := st.lookup(id.String()); ok {
				return s, nil
			}
		}
	}

	ctrl, err := st.newController()
	if err != nil {
		return nil, err
	}
	s := &session{
		id:    uuid.NewString(),
		ctrl:  ctrl,
		batch: upload.NewBatch(fixtures.First(initialParsed)),
		plan:  st.defaultPlan,
	}
	st.add(s)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.id,
		Path:     "/",
		MaxAge:   int(st.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s, nil
}

func (st *sessionStore) lookup(id string) (*session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.byID[id]
	if !ok {
		return nil, false
	}
	now := st.clock()
	if now.Sub(s.lastSeen) > st.ttl {
		delete(st.byID, id)
		return nil, false
	}
	s.lastSeen = now
	return s, true
}

func (st *sessionStore) add(s *session) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.clock()
	if len(st.byID) >= st.max {
		st.sweepLocked(now)
	}
	for len(st.byID) >= st.max {
		st.evictOldestLocked()
	}
	s.lastSeen = now
	st.byID[s.id] = s
}

// sweep drops idle sessions and reports how many went
func (st *sessionStore) sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sweepLocked(st.clock())
}

func (st *sessionStore) sweepLocked(now time.Time) int {
	removed := 0
	for id, s := range st.byID {
		if now.Sub(s.lastSeen) > st.ttl {
			delete(st.byID, id)
			removed++
		}
	}
	return removed
}

func (st *sessionStore) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, s := range st.byID {
		if oldestID == "" || s.lastSeen.Before(oldest) {
			oldestID, oldest = id, s.lastSeen
		}
	}
	delete(st.byID, oldestID)
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.byID)
}
