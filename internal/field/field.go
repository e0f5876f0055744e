// Package field implements the transactional field cell (spec §3, §4.5):
// one dimension of a blueprint's state, with begin/write/read/commit/
// rollback semantics. The two-slot (committed, proposed) shape follows
// internal/update.Update's copy-on-write vector and internal/state.Store's
// CommitState/Rollback two-phase pattern, generalized from one big
// [128]float32 array to independent per-field cells (spec §9: "prefer
// explicit two-slot structures ... over pointer indirection").
package field

import "fmt"

// #region cell

// Cell is one transactional dimension of a blueprint's state vector.
type Cell struct {
	Name      string
	Index     int // stable position in the state vector once registered
	Path      *StatePath // non-nil only for labelled string cells

	committed Value
	proposed  *Value
	forging   bool
}

// New constructs a field cell with the given committed value. Index is
// assigned later, at blueprint registration (spec §4.6 step 1).
func New(name string, initial Value) *Cell {
	return &Cell{Name: name, committed: initial}
}

// NewLabelled constructs a labelled string cell attached to a state-path.
func NewLabelled(name string, path StatePath, initial string) *Cell {
	return &Cell{Name: name, Path: &path, committed: LabelValue(initial)}
}

// #endregion cell

// #region transaction

// BeginForge marks the cell as forging and clears any prior proposal.
// Idempotent.
func (c *Cell) BeginForge() {
	c.forging = true
	c.proposed = nil
}

// Write stores v as the proposal if forging, otherwise overwrites the
// committed value directly.
func (c *Cell) Write(v Value) {
	if c.forging {
		p := v
		c.proposed = &p
		return
	}
	c.committed = v
}

// MoveTo writes label as the proposal on a labelled cell. Validity (is this
// a legal transition?) is not enforced here — spec §4.5 leaves that to a
// rule such as "valid status path" evaluated over the proposed end state.
func (c *Cell) MoveTo(label string) error {
	if c.Path == nil {
		return fmt.Errorf("field %q: MoveTo called on a non-labelled cell", c.Name)
	}
	c.Write(LabelValue(label))
	return nil
}

// Read returns the proposal if forging and set, else the committed value.
func (c *Cell) Read() Value {
	if c.forging && c.proposed != nil {
		return *c.proposed
	}
	return c.committed
}

// Commit promotes any proposal to committed, clears the proposal, and
// clears the forging flag.
func (c *Cell) Commit() {
	if c.proposed != nil {
		c.committed = *c.proposed
	}
	c.proposed = nil
	c.forging = false
}

// Rollback discards any proposal and clears the forging flag. The
// committed value is untouched.
func (c *Cell) Rollback() {
	c.proposed = nil
	c.forging = false
}

// Forging reports whether BeginForge has been called without a later Commit
// or Rollback, whether or not a proposal has been written.
func (c *Cell) Forging() bool { return c.forging }

// #endregion transaction

// #region encoding

// CurrentStateValue returns the double encoding of the committed value,
// used to build P0 (spec §3, "Typed encoding").
func (c *Cell) CurrentStateValue() float64 {
	return encode(c.committed, c.Path)
}

// ProposedStateValue returns the double encoding of the proposal if one is
// set, else the committed value (spec §4.5: "With no active proposal,
// proposed equals committed").
func (c *Cell) ProposedStateValue() float64 {
	if c.proposed != nil {
		return encode(*c.proposed, c.Path)
	}
	return encode(c.committed, c.Path)
}

// encode projects a typed Value to a double:
//   - decimal/integer/double -> numeric value
//   - boolean -> 1.0 if true, 0.0 if false (decode threshold 0.5)
//   - labelled string -> zero-based index of the label in its state-path
func encode(v Value, path *StatePath) float64 {
	switch v.Kind {
	case KindDecimal:
		return v.Decimal.ToFloat64()
	case KindBool:
		if v.Bool {
			return 1.0
		}
		return 0.0
	case KindInt:
		return float64(v.Int)
	case KindDouble:
		return v.Double
	case KindLabel:
		if path == nil {
			return -1
		}
		return float64(path.IndexOf(v.Label))
	default:
		return 0
	}
}

// #endregion encoding
