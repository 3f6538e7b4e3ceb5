package review

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	mu            sync.Mutex
	promptErr     error
	promptDelay   time.Duration
	prompts       []string
	menus         []string
	submitterMsgs []string
	adminMsgs     []string
}

func (f *fakeNotifier) PromptAdmin(req *Request) error {
	if f.promptDelay > 0 {
		time.Sleep(f.promptDelay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.promptErr != nil {
		return f.promptErr
	}
	f.prompts = append(f.prompts, req.ID)
	return nil
}

func (f *fakeNotifier) SendReasonMenu(req *Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.menus = append(f.menus, req.ID)
	return nil
}

func (f *fakeNotifier) NotifySubmitter(userID, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitterMsgs = append(f.submitterMsgs, content)
}

func (f *fakeNotifier) NotifyAdmin(content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adminMsgs = append(f.adminMsgs, content)
}

func (f *fakeNotifier) submitterCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submitterMsgs)
}

type fakeStorage struct {
	mu         sync.Mutex
	promoteErr error
	promoted   []string
	discarded  []string
}

func (f *fakeStorage) Promote(stagedPath, className string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.promoteErr != nil {
		return f.promoteErr
	}
	f.promoted = append(f.promoted, stagedPath)
	return nil
}

func (f *fakeStorage) Discard(stagedPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.discarded = append(f.discarded, stagedPath)
	return nil
}

func (f *fakeStorage) discardCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.discarded)
}

type fakeLedger struct {
	mu        sync.Mutex
	err       error
	approvals []string
}

func (f *fakeLedger) RecordApproval(userID string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.approvals = append(f.approvals, userID)
	return nil
}

type fixture struct {
	manager  *Manager
	notifier *fakeNotifier
	storage  *fakeStorage
	ledger   *fakeLedger
}

func newFixture(decisionTimeout, reasonTimeout time.Duration) *fixture {
	n := &fakeNotifier{}
	st := &fakeStorage{}
	l := &fakeLedger{}
	return &fixture{
		manager:  NewManager(n, st, l, decisionTimeout, reasonTimeout),
		notifier: n,
		storage:  st,
		ledger:   l,
	}
}

func testRequest() *Request {
	return &Request{
		ID:          "1700000000000-abcd1234",
		SubmitterID: "user-1",
		ClassName:   "x1",
		FileName:    "jadwal.jpg",
		StagedPath:  "/tmp/1700000000000-abcd1234_x1.jpg",
		CreatedAt:   time.Now(),
	}
}

func TestApproveFlow(t *testing.T) {
	f := newFixture(time.Minute, time.Minute)
	req := testRequest()

	require.NoError(t, f.manager.Open(req))
	require.Equal(t, []string{req.ID}, f.notifier.prompts)

	require.NoError(t, f.manager.Approve(req.ID))

	state, ok := f.manager.SessionState(req.ID)
	require.True(t, ok)
	require.Equal(t, Approved, state)

	require.Equal(t, []string{req.StagedPath}, f.storage.promoted)
	require.Empty(t, f.storage.discarded)
	require.Equal(t, []string{req.SubmitterID}, f.ledger.approvals)
	require.Len(t, f.notifier.submitterMsgs, 1)
	require.Contains(t, f.notifier.submitterMsgs[0], "disetujui")
	require.Len(t, f.notifier.adminMsgs, 1)
}

func TestRejectFlow(t *testing.T) {
	f := newFixture(time.Minute, time.Minute)
	req := testRequest()

	require.NoError(t, f.manager.Open(req))
	require.NoError(t, f.manager.BeginReject(req.ID))

	state, ok := f.manager.SessionState(req.ID)
	require.True(t, ok)
	require.Equal(t, AwaitingReason, state)
	require.Equal(t, []string{req.ID}, f.notifier.menus)

	reason := Reasons[1].Value
	require.NoError(t, f.manager.Reject(req.ID, reason))

	state, _ = f.manager.SessionState(req.ID)
	require.Equal(t, Rejected, state)

	require.Equal(t, []string{req.StagedPath}, f.storage.discarded)
	require.Empty(t, f.storage.promoted)
	require.Empty(t, f.ledger.approvals)
	require.Len(t, f.notifier.submitterMsgs, 1)
	require.Contains(t, f.notifier.submitterMsgs[0], reason)
}

func TestLateEventsAreNoOps(t *testing.T) {
	f := newFixture(time.Minute, time.Minute)
	req := testRequest()

	require.NoError(t, f.manager.Open(req))
	require.NoError(t, f.manager.Approve(req.ID))

	require.ErrorIs(t, f.manager.Approve(req.ID), ErrAlreadyResolved)
	require.ErrorIs(t, f.manager.BeginReject(req.ID), ErrAlreadyResolved)
	require.ErrorIs(t, f.manager.Reject(req.ID, "x"), ErrAlreadyResolved)

	// Still exactly one promotion, one approval, one submitter message.
	require.Len(t, f.storage.promoted, 1)
	require.Len(t, f.ledger.approvals, 1)
	require.Len(t, f.notifier.submitterMsgs, 1)
}

func TestRejectRequiresAwaitingReason(t *testing.T) {
	f := newFixture(time.Minute, time.Minute)
	req := testRequest()

	require.NoError(t, f.manager.Open(req))
	// A reason selection without a prior reject press must not do anything.
	require.ErrorIs(t, f.manager.Reject(req.ID, "x"), ErrAlreadyResolved)

	state, _ := f.manager.SessionState(req.ID)
	require.Equal(t, AwaitingDecision, state)
	require.Empty(t, f.storage.discarded)
}

func TestUnknownSession(t *testing.T) {
	f := newFixture(time.Minute, time.Minute)
	require.ErrorIs(t, f.manager.Approve("missing"), ErrUnknownSession)
}

func TestDuplicateOpen(t *testing.T) {
	f := newFixture(time.Minute, time.Minute)
	req := testRequest()

	require.NoError(t, f.manager.Open(req))
	require.ErrorIs(t, f.manager.Open(req), ErrDuplicateSession)
}

func TestDecisionTimeoutExpiresSession(t *testing.T) {
	f := newFixture(30*time.Millisecond, time.Minute)
	req := testRequest()

	require.NoError(t, f.manager.Open(req))

	require.Eventually(t, func() bool {
		state, ok := f.manager.SessionState(req.ID)
		return ok && state == Expired
	}, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		return f.storage.discardCount() == 1
	}, time.Second, 5*time.Millisecond)

	require.ErrorIs(t, f.manager.Approve(req.ID), ErrAlreadyResolved)
	require.Empty(t, f.storage.promoted)
	require.Empty(t, f.ledger.approvals)
}

func TestReasonTimeoutExpiresSession(t *testing.T) {
	f := newFixture(time.Minute, 30*time.Millisecond)
	req := testRequest()

	require.NoError(t, f.manager.Open(req))
	require.NoError(t, f.manager.BeginReject(req.ID))

	require.Eventually(t, func() bool {
		state, ok := f.manager.SessionState(req.ID)
		return ok && state == Expired
	}, time.Second, 5*time.Millisecond)

	require.ErrorIs(t, f.manager.Reject(req.ID, "x"), ErrAlreadyResolved)
	require.Eventually(t, func() bool {
		return f.storage.discardCount() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestDeadlineCountsFromPromptDelivery(t *testing.T) {
	f := newFixture(100*time.Millisecond, time.Minute)
	f.notifier.promptDelay = 50 * time.Millisecond
	req := testRequest()

	before := time.Now()
	require.NoError(t, f.manager.Open(req))

	deadline, ok := f.manager.SessionDeadline(req.ID)
	require.True(t, ok)
	// The window starts once the admin has actually been prompted, so a
	// slow prompt delivery must push the deadline out with it.
	require.GreaterOrEqual(t, deadline.Sub(before), 150*time.Millisecond)
}

func TestPromotionFailureKeepsStagedFile(t *testing.T) {
	f := newFixture(time.Minute, time.Minute)
	f.storage.promoteErr = errors.New("disk full")
	req := testRequest()

	require.NoError(t, f.manager.Open(req))
	require.Error(t, f.manager.Approve(req.ID))

	state, _ := f.manager.SessionState(req.ID)
	require.Equal(t, Failed, state)

	// The staged file must stay on disk for manual recovery, the ledger
	// must stay untouched, and the submitter must not hear of a success.
	require.Empty(t, f.storage.discarded)
	require.Empty(t, f.ledger.approvals)
	require.Zero(t, f.notifier.submitterCount())
	require.Len(t, f.notifier.adminMsgs, 1)
	require.Contains(t, f.notifier.adminMsgs[0], req.StagedPath)
}

func TestPromptFailureTearsDownSession(t *testing.T) {
	f := newFixture(time.Minute, time.Minute)
	f.notifier.promptErr = errors.New("admin unreachable")
	req := testRequest()

	require.Error(t, f.manager.Open(req))
	_, ok := f.manager.SessionState(req.ID)
	require.False(t, ok)
}

func TestDecisionCustomIDRoundTrip(t *testing.T) {
	for _, kind := range []DecisionKind{KindApprove, KindReject, KindReason} {
		d := Decision{Kind: kind, RequestID: "1700000000000-abcd1234"}
		parsed, err := ParseDecision(d.CustomID())
		require.NoError(t, err)
		require.Equal(t, d, parsed)
	}
}

func TestParseDecisionRejectsMalformedIDs(t *testing.T) {
	for _, id := range []string{
		"",
		"jadwal_approve",
		"jadwal_approve:",
		"vote:pass:123",
		"jadwal_banhammer:123",
		"approve:123",
	} {
		_, err := ParseDecision(id)
		require.Error(t, err, "expected %q to be rejected", id)
	}
}

func TestNewRequestIDIsUnique(t *testing.T) {
	now := time.Now()
	require.NotEqual(t, NewRequestID(now), NewRequestID(now))
}
