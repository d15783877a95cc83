package studio

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/listview"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/reports"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/types"
)

const (
	SessionCookie = "stockpanel_session"
	// TabHeader carries the session id of one browser tab.
	TabHeader = "X-StockPanel-Tab"
)

// ProductOptions is the product list behind the movement form's picker. It
// pages independently of the products table and is not a CRUD entity.
const (
	ProductOptions         types.Entity = "product-options"
	productOptionsPageSize              = 20
)

// Session is the view state of one browser tab: a list controller per
// entity, the product picker and one report view.
type Session struct {
	ID      string
	views   map[types.Entity]entityView
	Reports *reports.View

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) View(e types.Entity) (entityView, bool) {
	v, ok := s.views[e]
	return v, ok
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

func (s *Session) close() {
	for _, v := range s.views {
		v.Close()
	}
}

// SessionStore creates sessions on first use and closes the ones that have
// been idle for longer than ttl.
type SessionStore struct {
	service *Service
	cfg     viewConfig
	reportN int
	ttl     time.Duration
	now     func() time.Time
	log     logrus.FieldLogger

	mu       sync.Mutex
	sessions map[string]*Session
	stop     chan struct{}
	stopOnce sync.Once
}

func NewSessionStore(svc *Service, cfg viewConfig, reportPageSize int, ttl time.Duration, log logrus.FieldLogger) *SessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionStore{
		service:  svc,
		cfg:      cfg,
		reportN:  reportPageSize,
		ttl:      ttl,
		now:      time.Now,
		log:      log,
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
	}
}

// Acquire returns the session for id, creating a fresh one when id is
// unknown or empty. created reports whether a new cookie must be set.
func (st *SessionStore) Acquire(id string) (sess *Session, created bool) {
	now := st.now()

	st.mu.Lock()
	if s, ok := st.sessions[id]; ok && id != "" {
		st.mu.Unlock()
		s.touch(now)
		return s, false
	}
	s := st.newSession(uuid.NewString(), now)
	st.sessions[s.ID] = s
	st.mu.Unlock()

	st.log.WithField("session", s.ID).Debug("view session opened")
	return s, true
}

func (st *SessionStore) newSession(id string, now time.Time) *Session {
	cfg := st.cfg
	cfg.log = st.log.WithField("session", id)
	g := st.service.backend
	picker := cfg
	picker.pageSize = productOptionsPageSize
	return &Session{
		ID: id,
		views: map[types.Entity]entityView{
			types.EntityProducts: newControllerView[types.Product](types.EntityProducts,
				listview.ForEntity[types.Product](g, types.EntityProducts), st.service.Token(types.EntityProducts), cfg),
			types.EntityCategories: newControllerView[types.Category](types.EntityCategories,
				listview.ForEntity[types.Category](g, types.EntityCategories), st.service.Token(types.EntityCategories), cfg),
			types.EntityMovements: newControllerView[types.Movement](types.EntityMovements,
				listview.ForEntity[types.Movement](g, types.EntityMovements), st.service.Token(types.EntityMovements), cfg),
			ProductOptions: newControllerView[types.Product](ProductOptions,
				listview.ForEntity[types.Product](g, types.EntityProducts), st.service.Token(types.EntityProducts), picker),
		},
		Reports:  reports.NewView(st.service.reports, reports.PriceList, st.reportN),
		lastSeen: now,
	}
}

func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep closes every session idle for longer than the ttl and returns how
// many were closed.
func (st *SessionStore) Sweep() int {
	now := st.now()

	st.mu.Lock()
	var expired []*Session
	for id, s := range st.sessions {
		if s.idleSince(now) > st.ttl {
			expired = append(expired, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range expired {
		s.close()
		st.log.WithField("session", s.ID).Debug("view session expired")
	}
	return len(expired)
}

// Run sweeps on an interval until Close.
func (st *SessionStore) Run() {
	ticker := time.NewTicker(st.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-st.stop:
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}

// Close stops the sweeper and closes every session.
func (st *SessionStore) Close() {
	st.stopOnce.Do(func() { close(st.stop) })

	st.mu.Lock()
	all := st.sessions
	st.sessions = make(map[string]*Session)
	st.mu.Unlock()

	for _, s := range all {
		s.close()
	}
}
