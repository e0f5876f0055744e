// Package ledger is the append-only, deterministically hashed record of
// every proposal verified by the engine (spec §4.7, §9). A single mutex
// guards the entry slice, the sequence counter, and the law version
// (spec §5: "Ledger is the one shared object"); every public method takes
// the lock, and readers get a defensive copy, so a Ledger may be shared
// safely across multiple blueprints.
//
// Grounded on Mindburn-Labs-helm's TypedLedger (other_examples) for the
// append-under-mutex / hash-chained-entry shape, generalized from a
// string-keyed hash-chain (hash depends on the previous entry's hash) to
// the spec's sequence-index-keyed scheme (hash depends on the sequence
// index, not the previous hash — spec §4.7 does not require chaining,
// only that "two consecutive appends of the same content yield distinct
// hashes because their indices differ"). Filter/accessor surface is
// grounded on internal/logging.LogDecision's decision/reason row shape.
package ledger

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sync"
	"time"

	"github.com/ashgrove/newtonforge/internal/bezier"
	"github.com/ashgrove/newtonforge/internal/engine"
	"github.com/ashgrove/newtonforge/internal/vector"
)

// #region ledger

// Ledger is the shared, mutex-guarded, append-only entry log.
type Ledger struct {
	mu         sync.Mutex
	entries    []Entry
	lawVersion int
}

// New returns an empty ledger at law version 1.
func New() *Ledger {
	return &Ledger{lawVersion: 1}
}

// #endregion ledger

// #region append

// Append records a verification outcome. The sequence index, hash, law
// version, and timestamp are computed internally; the returned Entry is a
// copy safe for the caller to retain.
func (l *Ledger) Append(cp bezier.ControlPoints, lawNames []string, verdict engine.Verdict, forgeName, blueprintType string) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	seq := len(l.entries)
	cp = bezier.ControlPoints{P0: cp.P0.Clone(), P1: cp.P1.Clone(), P2: cp.P2.Clone(), P3: cp.P3.Clone()}
	names := append([]string(nil), lawNames...)
	hash := contentHash(cp, l.lawVersion, names, verdict, seq)

	entry := Entry{
		EntryID:       newEntryID(),
		SequenceIndex: seq,
		Hash:          hash,
		ControlPoints: cp,
		LawVersion:    l.lawVersion,
		LawNames:      names,
		Verdict:       verdict,
		Timestamp:     time.Now().UTC(),
		ForgeName:     forgeName,
		BlueprintType: blueprintType,
	}
	l.entries = append(l.entries, entry)
	return entry
}

// contentHash is a deterministic, non-cryptographic-contract function of
// (control points, law version, law names, verdict tag, sequence index),
// per spec §4.7. Control-point components are hashed as raw IEEE-754
// bytes so the hash is exact on the float bit pattern, not a
// string-formatted approximation.
func contentHash(cp bezier.ControlPoints, lawVersion int, lawNames []string, verdict engine.Verdict, seq int) string {
	h := sha256.New()
	for _, pt := range []vector.State{cp.P0, cp.P1, cp.P2, cp.P3} {
		for _, v := range pt {
			var buf [8]byte
			binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}

	var lvBuf [8]byte
	binary.BigEndian.PutUint64(lvBuf[:], uint64(lawVersion))
	h.Write(lvBuf[:])

	for _, name := range lawNames {
		h.Write([]byte(name))
	}

	if verdict.IsCommit() {
		h.Write([]byte{0})
	} else {
		h.Write([]byte{1})
	}

	var seqBuf [8]byte
	binary.BigEndian.PutUint64(seqBuf[:], uint64(seq))
	h.Write(seqBuf[:])

	return hex.EncodeToString(h.Sum(nil))
}

// RecomputeHash reproduces contentHash from a persisted row's raw fields,
// letting a caller verify a ledger export's integrity (spec §8 invariant
// 9: entries are never removed or reordered) without reconstructing a full
// engine.Verdict — only the commit/reject tag feeds the hash.
func RecomputeHash(cp bezier.ControlPoints, lawVersion int, lawNames []string, committed bool, seq int) string {
	var verdict engine.Verdict
	if committed {
		verdict = engine.CommitVerdict()
	} else {
		verdict = engine.RejectVerdict(engine.Witness{})
	}
	return contentHash(cp, lawVersion, lawNames, verdict, seq)
}

// #endregion append

// #region accessors

// Count returns the number of recorded entries.
func (l *Ledger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Last returns the most recently appended entry, or false if empty.
func (l *Ledger) Last() (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Index returns the entry at the given sequence index, or false if out of
// range.
func (l *Ledger) Index(i int) (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.entries) {
		return Entry{}, false
	}
	return l.entries[i], true
}

// All returns a copy of every entry, oldest first.
func (l *Ledger) All() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// FilterByForge returns every entry recorded under the given forge name.
func (l *Ledger) FilterByForge(forgeName string) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Entry
	for _, e := range l.entries {
		if e.ForgeName == forgeName {
			out = append(out, e)
		}
	}
	return out
}

// Commits returns every entry whose verdict committed.
func (l *Ledger) Commits() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Entry
	for _, e := range l.entries {
		if e.Verdict.IsCommit() {
			out = append(out, e)
		}
	}
	return out
}

// Rejections returns every entry whose verdict rejected.
func (l *Ledger) Rejections() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Entry
	for _, e := range l.entries {
		if !e.Verdict.IsCommit() {
			out = append(out, e)
		}
	}
	return out
}

// LawVersion returns the version that the next Append will stamp entries
// with.
func (l *Ledger) LawVersion() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lawVersion
}

// BumpLawVersion monotonically increments the law version. This and
// Append are the only mutating operations on a Ledger.
func (l *Ledger) BumpLawVersion() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lawVersion++
}

// #endregion accessors
