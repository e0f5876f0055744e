// Package lawspec gives a JSON-serializable shape to the one family of
// Law the core library can describe without Go code: half-spaces (spec
// §4.1 "HalfSpace", §8 invariant 6 "every Ωᵢ is a half-space"). This is
// what lets the geometric client surface named in spec §6
// ("verify(control_points, laws, budget?) for geometric clients that
// bypass the field layer") exist as a CLI rather than only a library call
// — arbitrary predicates are still Go closures and have no JSON form.
package lawspec

import (
	"encoding/json"
	"fmt"

	"github.com/ashgrove/newtonforge/internal/law"
)

// #region spec

// Spec is a half-space law: sign*(x[Dim]-Bound) >= 0.
type Spec struct {
	Name  string  `json:"name"`
	Dim   int     `json:"dim"`
	Bound float64 `json:"bound"`
	Sign  float64 `json:"sign"` // +1 for x[dim] >= bound, -1 for x[dim] <= bound
}

// Law converts the spec into an engine-ready law.Law.
func (s Spec) Law() law.Law {
	sign := s.Sign
	if sign == 0 {
		sign = 1
	}
	return law.HalfSpace(s.Name, s.Dim, s.Bound, sign)
}

// #endregion spec

// #region decode

// ParseAll decodes a JSON array of Specs into laws, preserving order (law
// order breaks ties between simultaneous violations — spec §4.3).
func ParseAll(data []byte) ([]law.Law, error) {
	var specs []Spec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("parse law specs: %w", err)
	}
	laws := make([]law.Law, len(specs))
	for i, s := range specs {
		laws[i] = s.Law()
	}
	return laws, nil
}

// #endregion decode
