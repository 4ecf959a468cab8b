package qdrant

import (
	"context"
	"fmt"
	"sort"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/vectorindex/v1/logger"
	"github.com/Aleph-Alpha/vectorindex/v1/vectordb"
)

// Table exposes one Qdrant collection as a vectordb.Table. Points become
// rows: the point id under the id column, every payload key as a scalar
// column and every vector of the collection as a vector column.
type Table struct {
	api        CollectionAPI
	collection string
	idColumn   string
	logger     logger.Logger
}

var (
	_ vectordb.Table    = (*Table)(nil)
	_ vectordb.Executor = (*Table)(nil)
)

// TableOption customizes a Table.
type TableOption func(*Table)

// WithIDColumn sets the column name point ids are exposed under.
func WithIDColumn(name string) TableOption {
	return func(t *Table) {
		if name != "" {
			t.idColumn = name
		}
	}
}

// WithTableLogger sets the logger used for query diagnostics.
func WithTableLogger(l logger.Logger) TableOption {
	return func(t *Table) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTable returns a table over collection. api is usually
// (*QdrantClient).Client().
func NewTable(api CollectionAPI, collection string, opts ...TableOption) (*Table, error) {
	if api == nil {
		return nil, fmt.Errorf("[Qdrant] client is required")
	}
	if collection == "" {
		return nil, fmt.Errorf("[Qdrant] collection name cannot be empty")
	}

	t := &Table{
		api:        api,
		collection: collection,
		idColumn:   DefaultIDColumn,
		logger:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Name returns the collection name.
func (t *Table) Name() string { return t.collection }

// Schema reads the collection info. Only indexed payload keys are known to
// Qdrant, so unindexed keys are still returned in rows but are missing from
// the schema.
func (t *Table) Schema(ctx context.Context) (vectordb.Schema, error) {
	info, err := t.api.GetCollectionInfo(ctx, t.collection)
	if err != nil {
		return vectordb.Schema{}, fmt.Errorf("[Qdrant] failed to get collection '%s': %w", t.collection, err)
	}
	return t.schemaFromInfo(info), nil
}

func (t *Table) schemaFromInfo(info *qdrant.CollectionInfo) vectordb.Schema {
	fields := []vectordb.Field{{Name: t.idColumn, Type: vectordb.FieldTypeString}}

	payload := info.GetPayloadSchema()
	keys := make([]string, 0, len(payload))
	for k := range payload {
		if k != t.idColumn {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, vectordb.Field{Name: k, Type: payloadFieldType(payload[k].GetDataType())})
	}

	vectors := extractVectorParams(info)
	names := make([]string, 0, len(vectors))
	for name := range vectors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fields = append(fields, vectordb.Field{
			Name:      name,
			Type:      vectordb.FieldTypeVector,
			Dimension: int(vectors[name].GetSize()),
		})
	}

	return vectordb.NewSchema(fields...)
}

// VectorSearch starts a query whose rows carry the distance in "_distance".
func (t *Table) VectorSearch(vector []float32) (*vectordb.VectorQuery, error) {
	return vectordb.NewVectorQuery(t, vectordb.EntryVectorSearch, vector)
}

// Query starts a plain query; NearestTo turns it into a vector search whose
// rows carry the distance in "distance".
func (t *Table) Query() *vectordb.Query {
	return vectordb.NewQuery(t)
}

// Execute implements vectordb.Executor.
func (t *Table) Execute(ctx context.Context, plan vectordb.QueryPlan) ([]vectordb.Row, error) {
	limit := plan.EffectiveLimit()
	if limit == 0 {
		return []vectordb.Row{}, nil
	}

	info, err := t.api.GetCollectionInfo(ctx, t.collection)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to get collection '%s': %w", t.collection, err)
	}

	target, err := t.resolveVector(info, plan)
	if err != nil {
		return nil, err
	}

	// The schema only knows indexed payload keys, so a projection of every
	// known scalar column means the whole payload.
	if coversScalars(plan.Columns, t.schemaFromInfo(info)) {
		plan.Columns = nil
	}

	req, err := t.buildRequest(plan, target, limit)
	if err != nil {
		return nil, err
	}

	points, err := t.api.Query(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] query on '%s' failed: %w", t.collection, err)
	}

	return t.toRows(points, plan, target.metric)
}

type targetVector struct {
	column string
	// using is empty for the unnamed vector.
	using  string
	size   uint64
	metric qdrant.Distance
}

func (t *Table) resolveVector(info *qdrant.CollectionInfo, plan vectordb.QueryPlan) (targetVector, error) {
	vectors := extractVectorParams(info)

	var column string
	switch {
	case plan.Column != "":
		column = plan.Column
	case len(vectors) == 1:
		for name := range vectors {
			column = name
		}
	case len(vectors) == 0:
		return targetVector{}, fmt.Errorf("[Qdrant] collection '%s' has no vectors", t.collection)
	default:
		return targetVector{}, fmt.Errorf("[Qdrant] collection '%s' has %d named vectors, a column must be set", t.collection, len(vectors))
	}

	params, ok := vectors[column]
	if !ok {
		return targetVector{}, fmt.Errorf("[Qdrant] vector column '%s' not found in collection '%s'", column, t.collection)
	}
	if uint64(len(plan.Vector)) != params.GetSize() {
		return targetVector{}, fmt.Errorf("[Qdrant] query vector has dimension %d, column '%s' expects %d", len(plan.Vector), column, params.GetSize())
	}

	target := targetVector{column: column, size: params.GetSize(), metric: params.GetDistance()}
	if _, unnamed := info.GetConfig().GetParams().GetVectorsConfig().GetConfig().(*qdrant.VectorsConfig_Params); !unnamed {
		target.using = column
	}

	if plan.Distance != nil {
		if want, err := toQdrantDistance(*plan.Distance); err != nil || want != target.metric {
			t.logger.Warn("[Qdrant] Requested distance type differs from the collection metric, using the collection metric", nil, map[string]interface{}{
				"collection": t.collection,
				"requested":  plan.Distance.String(),
				"metric":     target.metric.String(),
			})
		}
	}
	return target, nil
}

// buildRequest translates a plan into a QueryPoints request:
//   - bypassing the index sets exact search
//   - nprobes widens the HNSW beam (hnsw_ef)
//   - the refine factor enables quantization rescoring with that oversampling
//   - a pre-filter is sent as a native filter; a post-filter is applied to
//     the returned points, so its fields are added to the payload selection
func (t *Table) buildRequest(plan vectordb.QueryPlan, target targetVector, limit int) (*qdrant.QueryPoints, error) {
	req := &qdrant.QueryPoints{
		CollectionName: t.collection,
		Query:          qdrant.NewQuery(plan.Vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    t.payloadSelector(plan),
	}
	if target.using != "" {
		req.Using = qdrant.PtrOf(target.using)
	}

	var params qdrant.SearchParams
	tuned := false
	if plan.BypassIndex {
		params.Exact = qdrant.PtrOf(true)
		tuned = true
	}
	if plan.Nprobes != nil {
		params.HnswEf = qdrant.PtrOf(uint64(*plan.Nprobes))
		tuned = true
	}
	if plan.RefineFactor != nil {
		params.Quantization = &qdrant.QuantizationSearchParams{
			Rescore:      qdrant.PtrOf(true),
			Oversampling: qdrant.PtrOf(float64(*plan.RefineFactor)),
		}
		tuned = true
	}
	if tuned {
		req.Params = &params
	}

	if !plan.Postfilter {
		filter, err := convertFilterSet(plan.Filter)
		if err != nil {
			return nil, err
		}
		req.Filter = filter
	}
	return req, nil
}

// payloadSelector requests the projected columns plus any post-filter fields.
func (t *Table) payloadSelector(plan vectordb.QueryPlan) *qdrant.WithPayloadSelector {
	if len(plan.Columns) == 0 {
		return qdrant.NewWithPayload(true)
	}

	seen := make(map[string]struct{})
	keys := make([]string, 0, len(plan.Columns))
	add := func(k string) {
		if _, ok := seen[k]; ok || k == t.idColumn {
			return
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	for _, c := range plan.Columns {
		add(c)
	}
	if plan.Postfilter {
		for _, f := range plan.Filter.Fields() {
			add(f)
		}
	}
	if len(keys) == 0 {
		return qdrant.NewWithPayload(false)
	}
	return qdrant.NewWithPayloadInclude(keys...)
}

func (t *Table) toRows(points []*qdrant.ScoredPoint, plan vectordb.QueryPlan, metric qdrant.Distance) ([]vectordb.Row, error) {
	distanceColumn := plan.Entry.DistanceColumn()
	postfilter := plan.Postfilter && !plan.Filter.IsEmpty()

	rows := make([]vectordb.Row, 0, len(points))
	for _, p := range points {
		row := convertPayload(p.GetPayload())

		id, err := pointIDString(p.GetId())
		if err != nil {
			return nil, err
		}
		row[t.idColumn] = vectordb.String(id)

		if postfilter && !plan.Filter.Matches(row) {
			continue
		}
		if len(plan.Columns) > 0 {
			row = project(row, plan.Columns)
		}
		row[distanceColumn] = vectordb.Number(scoreToDistance(metric, p.GetScore()))
		rows = append(rows, row)
	}
	return rows, nil
}

func coversScalars(columns []string, schema vectordb.Schema) bool {
	if len(columns) == 0 {
		return false
	}
	scalars := schema.ScalarColumns()
	want := make(map[string]struct{}, len(scalars))
	for _, c := range scalars {
		want[c] = struct{}{}
	}
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, ok := want[c]; !ok {
			return false
		}
		seen[c] = struct{}{}
	}
	return len(seen) == len(want)
}

// project keeps the requested columns. Requested keys missing from the
// payload come back as null.
func project(row vectordb.Row, columns []string) vectordb.Row {
	out := make(vectordb.Row, len(columns)+1)
	for _, c := range columns {
		out[c] = row[c]
	}
	return out
}
