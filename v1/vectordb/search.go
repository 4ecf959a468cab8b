package vectordb

import "context"

// TopN returns up to n matches for query with every row decoded into T.
// The whole call fails with a *DecodeError if any row cannot be decoded;
// no partial results are returned.
func TopN[T any](ctx context.Context, idx Index, query string, n int) ([]Result[T], error) {
	rows, err := idx.TopNRows(ctx, query, n)
	if err != nil {
		return nil, err
	}
	return DecodeResults[T](rows)
}

// DecodeResults decodes the payload of every row result into T.
func DecodeResults[T any](rows []RowResult) ([]Result[T], error) {
	out := make([]Result[T], 0, len(rows))
	for i, r := range rows {
		var payload T
		if err := r.Payload.Decode(&payload); err != nil {
			return nil, &DecodeError{Index: i, ID: r.ID, Err: err}
		}
		out = append(out, Result[T]{Score: r.Score, ID: r.ID, Payload: payload})
	}
	return out, nil
}
