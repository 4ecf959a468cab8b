package vectordb

// BuildQuery applies p to q and returns q. Settings are applied in a fixed
// order, so the resulting plan depends only on the values in p:
//
//  1. distance type, when set
//  2. flat search bypasses the vector index; approximate search sets
//     nprobes and refine factor when present. Nprobes and refine factor are
//     ignored for flat search or when no search type is set.
//  3. post filtering, only when explicitly enabled
//  4. target vector column, when set
func BuildQuery(q *VectorQuery, p SearchParams) *VectorQuery {
	if d, ok := p.DistanceType(); ok {
		q = q.DistanceType(d)
	}

	if st, ok := p.SearchType(); ok {
		switch st {
		case SearchTypeFlat:
			q = q.BypassVectorIndex()
		case SearchTypeApproximate:
			if n, ok := p.Nprobes(); ok {
				q = q.Nprobes(n)
			}
			if f, ok := p.RefineFactor(); ok {
				q = q.RefineFactor(f)
			}
		}
	}

	if pf, ok := p.PostFilter(); ok && pf {
		q = q.Postfilter()
	}

	if c, ok := p.Column(); ok {
		q = q.Column(c)
	}

	return q
}
