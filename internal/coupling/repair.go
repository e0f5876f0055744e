package coupling

import "github.com/ashgrove/newtonforge/internal/vector"

// #region learning

// significantDims returns the indices of repair whose magnitude exceeds
// epsilon — the dimensions the engine's finite-difference gradient
// actually pushed on (spec §4.4).
func significantDims(repair vector.State, epsilon float64) []int {
	var dims []int
	for i, v := range repair {
		if v > epsilon || v < -epsilon {
			dims = append(dims, i)
		}
	}
	return dims
}

// LearnFromRepair records a co-violation between every pair of dimensions
// the engine's repair-direction estimate moved together, so future
// proposals touching one of those dimensions can be warned about the
// other even if this run's finite-difference gradient happened to be flat
// there.
func (s *Store) LearnFromRepair(repair vector.State, epsilon, delta float64) error {
	dims := significantDims(repair, epsilon)
	for i := 0; i < len(dims); i++ {
		for j := i + 1; j < len(dims); j++ {
			if err := s.RecordCoViolation(dims[i], dims[j], delta); err != nil {
				return err
			}
		}
	}
	return nil
}

// #endregion learning

// #region extension

// ExtendRepair augments an engine-computed repair direction with a small,
// decayed nudge on dimensions historically coupled to the ones the engine
// already flagged. This is advisory only, exactly like the base repair
// direction (spec §4.4: "the engine does not attempt to apply it").
func (s *Store) ExtendRepair(repair vector.State, minWeight float64) (vector.State, error) {
	if repair == nil {
		return nil, nil
	}
	extended := repair.Clone()
	for _, dim := range significantDims(repair, 1e-9) {
		edges, err := s.Neighbors(dim, minWeight)
		if err != nil {
			return nil, err
		}
		base := repair[dim]
		for _, e := range edges {
			if e.TargetDim < 0 || e.TargetDim >= len(extended) {
				continue
			}
			extended[e.TargetDim] += base * e.Weight
		}
	}
	return extended, nil
}

// #endregion extension
