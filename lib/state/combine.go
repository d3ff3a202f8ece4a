package state

// Slice binds a SliceReducer to a top-level key of the tree.
type Slice struct {
	Key     string
	Reducer SliceReducer
}

// Combine builds a root Reducer from slice reducers.
//
// Slices run in the order given. When every slice returns a value identical
// to its previous one, the previous snapshot is returned so subscribers see
// no change. Keys in prev that no slice owns are dropped.
func Combine(slices ...Slice) Reducer {
	owned := make([]Slice, len(slices))
	copy(owned, slices)

	return func(prev State, action Action) State {
		next := make(State, len(owned))
		changed := prev == nil || len(prev) != len(owned)

		for _, s := range owned {
			before, had := prev[s.Key]
			after := s.Reducer(before, action)
			next[s.Key] = after
			if !had || !Identical(before, after) {
				changed = true
			}
		}

		if !changed {
			return prev
		}
		return next
	}
}
