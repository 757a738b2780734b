package reconcile

// Winner is the resolved, deduplicated price observation for one canonical
// product at one store within a single run.
type Winner struct {
	SpecID    string
	SpecTable string
	Price     int64
	URL       string
	ImageURL  string
}

// Resolver folds matched observations into at most one Winner per spec id,
// keeping the minimum price. Replacement happens only on strict improvement,
// so ties go to the first observation seen.
type Resolver struct {
	winners map[string]Winner
	order   []string
}

// NewResolver returns an empty resolver for one store batch.
func NewResolver() *Resolver {
	return &Resolver{winners: make(map[string]Winner)}
}

// Observe folds one matched observation into the map.
func (r *Resolver) Observe(w Winner) {
	existing, seen := r.winners[w.SpecID]
	if seen {
		if w.Price < existing.Price {
			r.winners[w.SpecID] = w
		}
		return
	}
	r.winners[w.SpecID] = w
	r.order = append(r.order, w.SpecID)
}

// Winners returns the resolved observations in first-seen order.
func (r *Resolver) Winners() []Winner {
	out := make([]Winner, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.winners[id])
	}
	return out
}

// SpecIDs returns the set of spec ids matched this run.
func (r *Resolver) SpecIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(r.order))
	for _, id := range r.order {
		ids[id] = struct{}{}
	}
	return ids
}

// Len reports the number of unique products resolved so far.
func (r *Resolver) Len() int {
	return len(r.order)
}
