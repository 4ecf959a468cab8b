package vectordb

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// DefaultLimit is the number of rows a store returns when a query sets no limit.
const DefaultLimit = 10

// Distance column names. The typed vector-search entry point reports the
// distance under DistanceColumn, the plain query entry point under
// QueryDistanceColumn.
const (
	DistanceColumn      = "_distance"
	QueryDistanceColumn = "distance"
)

// ErrEmptyVector is returned when a nearest-neighbor query is built without a vector.
var ErrEmptyVector = errors.New("query vector is empty")

// ── Distance Metric ──────────────────────────────────────────────────────────

// DistanceType is the metric used to rank candidates. It must match the
// metric the table's vector index was built with.
type DistanceType int

const (
	// DistanceL2 is the (squared) Euclidean distance. Stores default to it.
	DistanceL2 DistanceType = iota
	DistanceCosine
	DistanceDot
	DistanceHamming
)

// DistanceEuclidean is an alias for DistanceL2.
const DistanceEuclidean = DistanceL2

func (d DistanceType) String() string {
	switch d {
	case DistanceL2:
		return "l2"
	case DistanceCosine:
		return "cosine"
	case DistanceDot:
		return "dot"
	case DistanceHamming:
		return "hamming"
	default:
		return fmt.Sprintf("distance(%d)", int(d))
	}
}

// ParseDistanceType parses the textual metric names used in configuration.
func ParseDistanceType(s string) (DistanceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l2", "euclidean", "euclid":
		return DistanceL2, nil
	case "cosine":
		return DistanceCosine, nil
	case "dot":
		return DistanceDot, nil
	case "hamming":
		return DistanceHamming, nil
	}
	return 0, fmt.Errorf("vectordb: unknown distance type %q", s)
}

// ── Query Plan ───────────────────────────────────────────────────────────────

// EntryPoint records how a vector query was started.
type EntryPoint int

const (
	// EntryVectorSearch is the typed vector-search entry (Table.VectorSearch).
	EntryVectorSearch EntryPoint = iota
	// EntryQuery is the default query entry (Table.Query().NearestTo).
	EntryQuery
)

// DistanceColumn returns the column the store reports distances under.
func (e EntryPoint) DistanceColumn() string {
	if e == EntryQuery {
		return QueryDistanceColumn
	}
	return DistanceColumn
}

// QueryPlan is the store-facing description of a nearest-neighbor query.
// Optional settings are nil when unset.
type QueryPlan struct {
	Entry  EntryPoint
	Vector []float32

	// Columns is the projection. Empty means every non-vector column.
	Columns []string

	Limit        *int
	Distance     *DistanceType
	BypassIndex  bool
	Nprobes      *int
	RefineFactor *uint32
	Postfilter   bool

	// Column is the vector column to search. Empty lets the store pick the
	// only vector column.
	Column string

	Filter *FilterSet
}

// EffectiveLimit returns the limit or DefaultLimit when none was set.
func (p QueryPlan) EffectiveLimit() int {
	if p.Limit == nil {
		return DefaultLimit
	}
	if *p.Limit < 0 {
		return 0
	}
	return *p.Limit
}

// EffectiveDistance returns the distance type or DistanceL2 when none was set.
func (p QueryPlan) EffectiveDistance() DistanceType {
	if p.Distance == nil {
		return DistanceL2
	}
	return *p.Distance
}

// ── Vector Query ─────────────────────────────────────────────────────────────

// VectorQuery is a nearest-neighbor query under construction. Its setters
// mutate the query and return it for chaining.
type VectorQuery struct {
	plan QueryPlan
	exec Executor
}

// NewVectorQuery starts a query for vector against exec. Stores call this from
// their VectorSearch and Query().NearestTo implementations.
func NewVectorQuery(exec Executor, entry EntryPoint, vector []float32) (*VectorQuery, error) {
	if len(vector) == 0 {
		return nil, ErrEmptyVector
	}
	vec := make([]float32, len(vector))
	copy(vec, vector)
	return &VectorQuery{
		plan: QueryPlan{Entry: entry, Vector: vec},
		exec: exec,
	}, nil
}

// Select restricts the returned columns.
func (q *VectorQuery) Select(columns ...string) *VectorQuery {
	q.plan.Columns = append([]string(nil), columns...)
	return q
}

// Limit caps the number of returned rows.
func (q *VectorQuery) Limit(n int) *VectorQuery {
	q.plan.Limit = &n
	return q
}

// DistanceType sets the ranking metric.
func (q *VectorQuery) DistanceType(d DistanceType) *VectorQuery {
	q.plan.Distance = &d
	return q
}

// BypassVectorIndex forces an exhaustive scan.
func (q *VectorQuery) BypassVectorIndex() *VectorQuery {
	q.plan.BypassIndex = true
	return q
}

// Nprobes sets how many index partitions an approximate search visits.
func (q *VectorQuery) Nprobes(n int) *VectorQuery {
	q.plan.Nprobes = &n
	return q
}

// RefineFactor sets the candidate over-fetch multiplier for re-ranking.
func (q *VectorQuery) RefineFactor(f uint32) *VectorQuery {
	q.plan.RefineFactor = &f
	return q
}

// Postfilter applies the scalar filter after the nearest-neighbor search.
func (q *VectorQuery) Postfilter() *VectorQuery {
	q.plan.Postfilter = true
	return q
}

// Column selects the vector column to search.
func (q *VectorQuery) Column(name string) *VectorQuery {
	q.plan.Column = name
	return q
}

// Where attaches a scalar filter.
func (q *VectorQuery) Where(f *FilterSet) *VectorQuery {
	q.plan.Filter = f
	return q
}

// Plan returns a copy of the current plan.
func (q *VectorQuery) Plan() QueryPlan {
	p := q.plan
	p.Vector = append([]float32(nil), q.plan.Vector...)
	p.Columns = append([]string(nil), q.plan.Columns...)
	if len(p.Columns) == 0 {
		p.Columns = nil
	}
	return p
}

// Execute runs the query and returns the raw rows in store order.
func (q *VectorQuery) Execute(ctx context.Context) ([]Row, error) {
	if q.exec == nil {
		return nil, errors.New("vectordb: query has no executor")
	}
	return q.exec.Execute(ctx, q.Plan())
}

// ── Plain Query ──────────────────────────────────────────────────────────────

// Query is the default query entry point of a table. It becomes a
// VectorQuery once NearestTo is called.
type Query struct {
	exec    Executor
	columns []string
	limit   *int
	filter  *FilterSet
}

// NewQuery returns an empty query against exec.
func NewQuery(exec Executor) *Query {
	return &Query{exec: exec}
}

// Select restricts the returned columns.
func (q *Query) Select(columns ...string) *Query {
	q.columns = append([]string(nil), columns...)
	return q
}

// Limit caps the number of returned rows.
func (q *Query) Limit(n int) *Query {
	q.limit = &n
	return q
}

// Where attaches a scalar filter.
func (q *Query) Where(f *FilterSet) *Query {
	q.filter = f
	return q
}

// NearestTo turns the query into a nearest-neighbor query for vector.
func (q *Query) NearestTo(vector []float32) (*VectorQuery, error) {
	vq, err := NewVectorQuery(q.exec, EntryQuery, vector)
	if err != nil {
		return nil, err
	}
	if q.columns != nil {
		vq.Select(q.columns...)
	}
	if q.limit != nil {
		vq.Limit(*q.limit)
	}
	if q.filter != nil {
		vq.Where(q.filter)
	}
	return vq, nil
}
