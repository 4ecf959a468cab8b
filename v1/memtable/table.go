package memtable

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Aleph-Alpha/vectorindex/v1/vectordb"
)

// Table is an in-process vector table searched by brute force. It has no
// vector index, so nprobes and refine factor are accepted and have no
// effect; every search is exact.
//
// It is safe for concurrent use.
type Table struct {
	name   string
	schema vectordb.Schema

	mu      sync.RWMutex
	scalars []vectordb.Row
	vectors []map[string][]float32
	// dims holds the dimension of each vector column, either declared or
	// taken from the first stored vector.
	dims map[string]int

	plansMu sync.Mutex
	plans   []vectordb.QueryPlan
}

var (
	_ vectordb.Table    = (*Table)(nil)
	_ vectordb.Executor = (*Table)(nil)
)

// New creates an empty table with the given schema.
func New(name string, schema vectordb.Schema) *Table {
	dims := make(map[string]int)
	for _, f := range schema.Fields {
		if f.IsVector() && f.Dimension > 0 {
			dims[f.Name] = f.Dimension
		}
	}
	return &Table{name: name, schema: schema, dims: dims}
}

func (t *Table) Name() string { return t.name }

// Schema returns a copy of the table schema.
func (t *Table) Schema(ctx context.Context) (vectordb.Schema, error) {
	if err := ctx.Err(); err != nil {
		return vectordb.Schema{}, err
	}
	return vectordb.Schema{Fields: append([]vectordb.Field(nil), t.schema.Fields...)}, nil
}

// VectorSearch starts a typed nearest-neighbor query.
func (t *Table) VectorSearch(vector []float32) (*vectordb.VectorQuery, error) {
	return vectordb.NewVectorQuery(t, vectordb.EntryVectorSearch, vector)
}

// Query starts a plain query.
func (t *Table) Query() *vectordb.Query {
	return vectordb.NewQuery(t)
}

// Add appends records. Every key must be a schema column; vector columns
// take []float32 or []float64 of the declared dimension; a column declared
// without one keeps the dimension of its first vector. Missing scalar
// columns are stored as null, missing vector columns are not allowed.
func (t *Table) Add(records ...map[string]any) error {
	scalars := make([]vectordb.Row, 0, len(records))
	vectors := make([]map[string][]float32, 0, len(records))

	t.mu.Lock()
	defer t.mu.Unlock()

	pinned := make(map[string]int, len(t.dims))
	for k, v := range t.dims {
		pinned[k] = v
	}

	for i, rec := range records {
		row := vectordb.Row{}
		vecs := map[string][]float32{}

		for key, val := range rec {
			field, ok := t.schema.Field(key)
			if !ok {
				return fmt.Errorf("memtable: record %d: unknown column %q", i, key)
			}
			if !field.IsVector() {
				row[key] = vectordb.ValueOf(val)
				continue
			}
			vec, err := toFloat32s(val)
			if err != nil {
				return fmt.Errorf("memtable: record %d: column %q: %w", i, key, err)
			}
			dim, ok := pinned[key]
			if !ok {
				dim = len(vec)
				pinned[key] = dim
			}
			if len(vec) != dim {
				return fmt.Errorf("memtable: record %d: column %q: expected dimension %d, got %d", i, key, dim, len(vec))
			}
			vecs[key] = vec
		}

		for _, f := range t.schema.Fields {
			if f.IsVector() {
				if _, ok := vecs[f.Name]; !ok {
					return fmt.Errorf("memtable: record %d: missing vector column %q", i, f.Name)
				}
			} else if _, ok := row[f.Name]; !ok {
				row[f.Name] = vectordb.Null()
			}
		}

		scalars = append(scalars, row)
		vectors = append(vectors, vecs)
	}

	t.scalars = append(t.scalars, scalars...)
	t.vectors = append(t.vectors, vectors...)
	t.dims = pinned
	return nil
}

// Len returns the number of stored rows.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.scalars)
}

// Plans returns every plan executed so far, oldest first.
func (t *Table) Plans() []vectordb.QueryPlan {
	t.plansMu.Lock()
	defer t.plansMu.Unlock()
	return append([]vectordb.QueryPlan(nil), t.plans...)
}

// Execute implements vectordb.Executor.
func (t *Table) Execute(ctx context.Context, plan vectordb.QueryPlan) ([]vectordb.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.plansMu.Lock()
	t.plans = append(t.plans, plan)
	t.plansMu.Unlock()

	column, err := t.resolveColumn(plan.Column)
	if err != nil {
		return nil, err
	}

	projection := plan.Columns
	if len(projection) == 0 {
		projection = t.schema.ScalarColumns()
	}
	for _, c := range projection {
		if _, ok := t.schema.Field(c); !ok {
			return nil, fmt.Errorf("memtable: column %q not found in table %q", c, t.name)
		}
	}

	limit := plan.EffectiveLimit()
	if limit == 0 {
		return []vectordb.Row{}, nil
	}
	metric := plan.EffectiveDistance()
	prefilter := !plan.Postfilter && !plan.Filter.IsEmpty()

	type candidate struct {
		idx  int
		dist float64
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	if dim, ok := t.dims[column.Name]; ok && len(plan.Vector) != dim {
		return nil, fmt.Errorf("memtable: query vector has dimension %d, column %q expects %d", len(plan.Vector), column.Name, dim)
	}

	candidates := make([]candidate, 0, len(t.scalars))
	for i := range t.scalars {
		if prefilter && !plan.Filter.Matches(t.scalars[i]) {
			continue
		}
		dist, err := vectorDistance(metric, plan.Vector, t.vectors[i][column.Name])
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate{idx: i, dist: dist})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].dist < candidates[b].dist
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	distanceColumn := plan.Entry.DistanceColumn()
	out := make([]vectordb.Row, 0, len(candidates))
	for _, c := range candidates {
		if plan.Postfilter && !plan.Filter.Matches(t.scalars[c.idx]) {
			continue
		}
		row := make(vectordb.Row, len(projection)+1)
		for _, col := range projection {
			if vec, ok := t.vectors[c.idx][col]; ok {
				row[col] = vectordb.ValueOf(vec)
				continue
			}
			row[col] = t.scalars[c.idx][col]
		}
		row[distanceColumn] = vectordb.Number(c.dist)
		out = append(out, row)
	}
	return out, nil
}

func (t *Table) resolveColumn(name string) (vectordb.Field, error) {
	if name != "" {
		f, ok := t.schema.Field(name)
		if !ok {
			return vectordb.Field{}, fmt.Errorf("memtable: column %q not found in table %q", name, t.name)
		}
		if !f.IsVector() {
			return vectordb.Field{}, fmt.Errorf("memtable: column %q is not a vector column", name)
		}
		return f, nil
	}

	cols := t.schema.VectorColumns()
	switch len(cols) {
	case 0:
		return vectordb.Field{}, fmt.Errorf("memtable: table %q has no vector column", t.name)
	case 1:
		f, _ := t.schema.Field(cols[0])
		return f, nil
	default:
		return vectordb.Field{}, fmt.Errorf("memtable: table %q has %d vector columns, a column must be set", t.name, len(cols))
	}
}

func toFloat32s(v any) ([]float32, error) {
	switch vec := v.(type) {
	case []float32:
		return append([]float32(nil), vec...), nil
	case []float64:
		out := make([]float32, len(vec))
		for i, x := range vec {
			out[i] = float32(x)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected []float32 or []float64, got %T", v)
	}
}
