package review

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle state of a review session.
type State string

const (
	// AwaitingDecision means the admin has been prompted and has not yet
	// pressed approve or reject.
	AwaitingDecision State = "awaiting_decision"
	// AwaitingReason means the admin rejected and must pick a reason.
	AwaitingReason State = "awaiting_reason"
	// Approved is terminal: the schedule was promoted into the catalog.
	Approved State = "approved"
	// Rejected is terminal: the admin picked a rejection reason.
	Rejected State = "rejected"
	// Expired is terminal: a timeout fired before the admin acted.
	Expired State = "expired"
	// Failed is terminal: promotion hit an I/O error. The staged file is
	// kept on disk for manual recovery.
	Failed State = "failed"
)

// Terminal reports whether a state accepts no further events.
func (s State) Terminal() bool {
	switch s {
	case Approved, Rejected, Expired, Failed:
		return true
	}
	return false
}

// Request is one staged schedule submission awaiting an admin decision.
type Request struct {
	ID          string
	SubmitterID string
	ClassName   string
	FileName    string
	StagedPath  string
	CreatedAt   time.Time
}

// NewRequestID builds a request ID from the submission time plus a random
// suffix, unique per submission.
func NewRequestID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.New().String()[:8])
}

// Reason is one entry of the fixed rejection reason menu.
type Reason struct {
	Label string
	Value string
}

// Reasons is the fixed set of rejection reasons offered to the admin.
var Reasons = []Reason{
	{Label: "Format salah", Value: "Format gambar tidak sesuai (.jpg)"},
	{Label: "Bukan jadwal", Value: "Gambar bukan foto jadwal pelajaran"},
	{Label: "Kualitas buruk", Value: "Kualitas gambar terlalu buram"},
	{Label: "Duplikat", Value: "Jadwal sudah tersedia"},
	{Label: "Lainnya", Value: "Alasan lain"},
}

// DecisionKind tags what an interactive element does.
type DecisionKind string

const (
	KindApprove DecisionKind = "approve"
	KindReject  DecisionKind = "reject"
	KindReason  DecisionKind = "reason"
)

// Decision identifies one interactive element scoped to one request, so
// concurrent sessions cannot cross-wire and stale component IDs from an
// earlier session cannot be replayed against a new one.
type Decision struct {
	Kind      DecisionKind
	RequestID string
}

// CustomID serializes the decision for use as a component custom ID.
// The "jadwal_<kind>" prefix is what the interaction router dispatches on.
func (d Decision) CustomID() string {
	return fmt.Sprintf("jadwal_%s:%s", d.Kind, d.RequestID)
}

// ParseDecision recovers a Decision from a component custom ID.
func ParseDecision(customID string) (Decision, error) {
	prefix, requestID, found := strings.Cut(customID, ":")
	if !found || requestID == "" {
		return Decision{}, fmt.Errorf("malformed decision custom ID: %q", customID)
	}

	kind, ok := strings.CutPrefix(prefix, "jadwal_")
	if !ok {
		return Decision{}, fmt.Errorf("not a review decision custom ID: %q", customID)
	}

	switch DecisionKind(kind) {
	case KindApprove, KindReject, KindReason:
		return Decision{Kind: DecisionKind(kind), RequestID: requestID}, nil
	}
	return Decision{}, fmt.Errorf("unknown decision kind: %q", kind)
}

var (
	// ErrUnknownSession means no session exists for the request ID.
	ErrUnknownSession = errors.New("no review session for request")
	// ErrAlreadyResolved means the session is past the state the event
	// applies to; the event is a no-op.
	ErrAlreadyResolved = errors.New("review session already resolved")
	// ErrDuplicateSession means a session is already open for the request.
	ErrDuplicateSession = errors.New("review session already open for request")
)
