package review

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Notifier delivers review prompts and outcome messages. Implementations do
// side effects only; delivery failures after a committed state change must be
// reported without rolling anything back.
type Notifier interface {
	PromptAdmin(req *Request) error
	SendReasonMenu(req *Request) error
	NotifySubmitter(userID, content string)
	NotifyAdmin(content string)
}

// Storage is the slice of the staging store the manager needs.
type Storage interface {
	Promote(stagedPath, className string) error
	Discard(stagedPath string) error
}

// Ledger records approved uploads for cooldown enforcement.
type Ledger interface {
	RecordApproval(userID string, now time.Time) error
}

// Session tracks one request from prompt to terminal outcome.
type Session struct {
	Request    *Request
	State      State
	ExpiresAt  time.Time
	timer      *time.Timer
	resolvedAt time.Time
}

// Manager owns all live review sessions. Transitions are guarded by a single
// mutex: an event first claims the session's state under the lock, then does
// file I/O and notification outside it, so a late or duplicate event can
// never double-promote or double-notify.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	notifier Notifier
	storage  Storage
	ledger   Ledger

	decisionTimeout time.Duration
	reasonTimeout   time.Duration
}

// How long terminal sessions stay queryable before the janitor drops them.
const terminalRetention = 10 * time.Minute

// NewManager wires a session manager and starts its cleanup janitor.
func NewManager(n Notifier, st Storage, l Ledger, decisionTimeout, reasonTimeout time.Duration) *Manager {
	m := &Manager{
		sessions:        make(map[string]*Session),
		notifier:        n,
		storage:         st,
		ledger:          l,
		decisionTimeout: decisionTimeout,
		reasonTimeout:   reasonTimeout,
	}
	go m.startJanitor()
	return m
}

// SessionState returns the current state of a request's session.
func (m *Manager) SessionState(requestID string) (State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[requestID]
	if !ok {
		return "", false
	}
	return s.State, true
}

// Open registers a new session for a staged request, prompts the admin and
// arms the decision timeout. If the prompt cannot be delivered the session is
// torn down and the error returned, so the caller can discard the staged file.
func (m *Manager) Open(req *Request) error {
	m.mu.Lock()
	if _, exists := m.sessions[req.ID]; exists {
		m.mu.Unlock()
		return ErrDuplicateSession
	}
	session := &Session{
		Request: req,
		State:   AwaitingDecision,
	}
	m.sessions[req.ID] = session
	m.mu.Unlock()

	if err := m.notifier.PromptAdmin(req); err != nil {
		m.mu.Lock()
		delete(m.sessions, req.ID)
		m.mu.Unlock()
		return fmt.Errorf("prompt admin: %w", err)
	}

	m.mu.Lock()
	// Guard against the prompt racing an immediate decision. The deadline
	// counts from when the prompt was actually delivered, so ExpiresAt and
	// the timer always agree.
	if session.State == AwaitingDecision {
		session.ExpiresAt = time.Now().Add(m.decisionTimeout)
		session.timer = time.AfterFunc(m.decisionTimeout, func() { m.expire(req.ID) })
	}
	m.mu.Unlock()
	return nil
}

// SessionDeadline returns when a request's session will expire.
func (m *Manager) SessionDeadline(requestID string) (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[requestID]
	if !ok {
		return time.Time{}, false
	}
	return s.ExpiresAt, true
}

// claim moves a session out of the expected state under the lock and stops
// its timer. Once claimed, no other event (including the expiry timer) can
// act on the session.
func (m *Manager) claim(requestID string, from, to State) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[requestID]
	if !ok {
		return nil, ErrUnknownSession
	}
	if s.State != from {
		return nil, ErrAlreadyResolved
	}

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.State = to
	if to.Terminal() {
		s.resolvedAt = time.Now()
	}
	return s, nil
}

func (m *Manager) setState(s *Session, state State) {
	m.mu.Lock()
	s.State = state
	if state.Terminal() {
		s.resolvedAt = time.Now()
	}
	m.mu.Unlock()
}

// Approve promotes the staged file, records the cooldown approval and
// notifies both parties. On a promotion failure the staged file is kept, the
// admin is told, and the submitter is never told the upload succeeded.
func (m *Manager) Approve(requestID string) error {
	s, err := m.claim(requestID, AwaitingDecision, Approved)
	if err != nil {
		return err
	}
	req := s.Request

	if err := m.storage.Promote(req.StagedPath, req.ClassName); err != nil {
		m.setState(s, Failed)
		m.notifier.NotifyAdmin(fmt.Sprintf("⚠️ Gagal menyimpan jadwal `%s` (request %s): %v\nFile sementara dipertahankan di `%s`.", req.ClassName, req.ID, err, req.StagedPath))
		return fmt.Errorf("promote staged file: %w", err)
	}

	if err := m.ledger.RecordApproval(req.SubmitterID, time.Now()); err != nil {
		// The catalog is already updated; report the ledger failure instead
		// of pretending the approval completed.
		m.notifier.NotifyAdmin(fmt.Sprintf("⚠️ Jadwal `%s` tersimpan, tapi pencatatan cooldown gagal: %v", req.ClassName, err))
		return fmt.Errorf("record approval: %w", err)
	}

	m.notifier.NotifyAdmin(fmt.Sprintf("✅ Jadwal untuk `%s` berhasil disimpan.", req.ClassName))
	m.notifier.NotifySubmitter(req.SubmitterID, fmt.Sprintf("✅ Jadwal kamu untuk `%s` telah disetujui oleh admin.", req.ClassName))
	return nil
}

// BeginReject moves the session to AwaitingReason, sends the reason menu and
// re-arms the (shorter) reason timeout.
func (m *Manager) BeginReject(requestID string) error {
	s, err := m.claim(requestID, AwaitingDecision, AwaitingReason)
	if err != nil {
		return err
	}
	req := s.Request

	m.mu.Lock()
	s.ExpiresAt = time.Now().Add(m.reasonTimeout)
	s.timer = time.AfterFunc(m.reasonTimeout, func() { m.expire(requestID) })
	m.mu.Unlock()

	if err := m.notifier.SendReasonMenu(req); err != nil {
		// The timer is still armed, so an undeliverable menu just expires.
		return fmt.Errorf("send reason menu: %w", err)
	}
	return nil
}

// Reject finalizes a rejection with the chosen reason: the staged file is
// discarded and the submitter is told why. The catalog and ledger stay
// untouched.
func (m *Manager) Reject(requestID, reason string) error {
	s, err := m.claim(requestID, AwaitingReason, Rejected)
	if err != nil {
		return err
	}
	req := s.Request

	if err := m.storage.Discard(req.StagedPath); err != nil {
		log.Printf("Failed to discard staged file for request %s: %v", req.ID, err)
		m.notifier.NotifyAdmin(fmt.Sprintf("⚠️ Gagal menghapus file sementara request %s: %v", req.ID, err))
	}

	m.notifier.NotifySubmitter(req.SubmitterID, fmt.Sprintf("❌ Jadwal kamu untuk `%s` ditolak. Alasan: %s", req.ClassName, reason))
	return nil
}

// expire fires from a timeout. A session that already reached a terminal
// state is left alone; otherwise the staged file is cleaned up and both
// parties are told the request lapsed.
func (m *Manager) expire(requestID string) {
	m.mu.Lock()
	s, ok := m.sessions[requestID]
	if !ok || s.State.Terminal() {
		m.mu.Unlock()
		return
	}
	s.State = Expired
	s.resolvedAt = time.Now()
	s.timer = nil
	m.mu.Unlock()

	req := s.Request
	if err := m.storage.Discard(req.StagedPath); err != nil {
		log.Printf("Failed to discard staged file for expired request %s: %v", req.ID, err)
	}

	m.notifier.NotifyAdmin(fmt.Sprintf("⌛ Request jadwal `%s` (request %s) kedaluwarsa tanpa keputusan.", req.ClassName, req.ID))
	m.notifier.NotifySubmitter(req.SubmitterID, fmt.Sprintf("⌛ Request jadwal kamu untuk `%s` kedaluwarsa karena admin tidak merespons. Silakan coba lagi.", req.ClassName))
}

// startJanitor periodically drops terminal sessions so the map stays small.
func (m *Manager) startJanitor() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		for id, s := range m.sessions {
			if s.State.Terminal() && time.Since(s.resolvedAt) > terminalRetention {
				delete(m.sessions, id)
			}
		}
		m.mu.Unlock()
	}
}
