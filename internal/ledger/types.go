package ledger

import (
	"time"

	"github.com/ashgrove/newtonforge/internal/bezier"
	"github.com/ashgrove/newtonforge/internal/engine"

	"github.com/google/uuid"
)

// #region entry

// Entry is one append-only ledger row (spec §3: "Ledger entry"). EntryID
// is independent of SequenceIndex: the index is the deterministic,
// gap-free position used for hashing and ordering, while EntryID is an
// opaque external handle a caller can log or cross-reference without
// exposing the internal position.
type Entry struct {
	EntryID       string
	SequenceIndex int
	Hash          string
	ControlPoints bezier.ControlPoints
	LawVersion    int
	LawNames      []string
	Verdict       engine.Verdict
	Timestamp     time.Time
	ForgeName     string
	BlueprintType string
}

// newEntryID mints an opaque identifier for a freshly appended entry.
func newEntryID() string {
	return uuid.NewString()
}

// #endregion entry
