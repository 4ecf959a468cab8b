package tableindex

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Aleph-Alpha/vectorindex/v1/logger"
	"github.com/Aleph-Alpha/vectorindex/v1/memtable"
	"github.com/Aleph-Alpha/vectorindex/v1/metrics"
	"github.com/Aleph-Alpha/vectorindex/v1/tracer"
	"github.com/Aleph-Alpha/vectorindex/v1/vectordb"
)

type doc struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Lang  string `json:"lang"`
}

// staticModel embeds every text to the same vector.
type staticModel struct {
	vec []float64
	err error
}

func (m *staticModel) EmbedText(_ context.Context, text string) (vectordb.Embedding, error) {
	if m.err != nil {
		return vectordb.Embedding{}, m.err
	}
	return vectordb.Embedding{Document: text, Vec: m.vec}, nil
}

type recordedSearch struct {
	operation string
	outcome   string
	results   int
}

type fakeRecorder struct {
	mu         sync.Mutex
	searches   []recordedSearch
	embeddings int
}

func (r *fakeRecorder) ObserveSearch(operation, outcome string, _ time.Duration, results int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searches = append(r.searches, recordedSearch{operation, outcome, results})
}

func (r *fakeRecorder) ObserveEmbedding(time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.embeddings++
}

var _ metrics.SearchRecorder = (*fakeRecorder)(nil)

func newDocsTable(t *testing.T) *memtable.Table {
	t.Helper()
	table := memtable.New("docs", vectordb.NewSchema(
		vectordb.Field{Name: "id", Type: vectordb.FieldTypeString},
		vectordb.Field{Name: "title", Type: vectordb.FieldTypeString},
		vectordb.Field{Name: "lang", Type: vectordb.FieldTypeString},
		vectordb.Field{Name: "vector", Type: vectordb.FieldTypeVector, Dimension: 2},
	))
	require.NoError(t, table.Add(
		map[string]any{"id": "a", "title": "Alpha", "lang": "en", "vector": []float32{0, 0}},
		map[string]any{"id": "b", "title": "Beta", "lang": "de", "vector": []float32{1, 0}},
		map[string]any{"id": "c", "title": "Gamma", "lang": "en", "vector": []float32{2, 0}},
		map[string]any{"id": "d", "title": "Delta", "lang": "de", "vector": []float32{3, 0}},
	))
	return table
}

func newIndex(t *testing.T, table vectordb.Table, model vectordb.EmbeddingModel, params vectordb.SearchParams, opts ...Option) *Index {
	t.Helper()
	idx, err := NewIndex(context.Background(), table, model, "id", params, opts...)
	require.NoError(t, err)
	return idx
}

func TestTopN_ReturnsDecodedPayloads(t *testing.T) {
	table := newDocsTable(t)
	idx := newIndex(t, table, &staticModel{vec: []float64{1.1, 0}}, vectordb.DefaultSearchParams())

	got, err := vectordb.TopN[doc](context.Background(), idx, "beta", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, doc{ID: "b", Title: "Beta", Lang: "de"}, got[0].Payload)
	assert.InDelta(t, 0.01, got[0].Score, 1e-6)

	assert.Equal(t, "c", got[1].ID)
	assert.Equal(t, "Gamma", got[1].Payload.Title)
	assert.InDelta(t, 0.81, got[1].Score, 1e-6)
}

func TestTopNRows_SelectsScalarColumns(t *testing.T) {
	table := newDocsTable(t)
	idx := newIndex(t, table, &staticModel{vec: []float64{0, 0}}, vectordb.DefaultSearchParams())

	rows, err := idx.TopNRows(context.Background(), "q", 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, hasVector := rows[0].Payload["vector"]
	assert.False(t, hasVector)

	plans := table.Plans()
	require.Len(t, plans, 1)
	assert.Equal(t, vectordb.EntryVectorSearch, plans[0].Entry)
	assert.Equal(t, []string{"id", "title", "lang"}, plans[0].Columns)
	require.NotNil(t, plans[0].Limit)
	assert.Equal(t, 1, *plans[0].Limit)
}

func TestTopNIDs_ReturnsIdentifiersOnly(t *testing.T) {
	table := newDocsTable(t)
	idx := newIndex(t, table, &staticModel{vec: []float64{3, 0}}, vectordb.DefaultSearchParams())

	got, err := idx.TopNIDs(context.Background(), "delta", 3)
	require.NoError(t, err)
	assert.Equal(t, []vectordb.IDResult{
		{Score: 0, ID: "d"},
		{Score: 1, ID: "c"},
		{Score: 4, ID: "b"},
	}, got)

	plans := table.Plans()
	require.Len(t, plans, 1)
	assert.Equal(t, vectordb.EntryQuery, plans[0].Entry)
	assert.Equal(t, []string{"id"}, plans[0].Columns)
}

func TestTopN_ZeroLimit(t *testing.T) {
	table := newDocsTable(t)
	idx := newIndex(t, table, &staticModel{vec: []float64{0, 0}}, vectordb.DefaultSearchParams())

	rows, err := idx.TopNRows(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.Empty(t, rows)

	ids, err := idx.TopNIDs(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestTopN_FewerRowsThanLimit(t *testing.T) {
	table := newDocsTable(t)
	idx := newIndex(t, table, &staticModel{vec: []float64{0, 0}}, vectordb.DefaultSearchParams())

	rows, err := idx.TopNRows(context.Background(), "q", 50)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestTopN_AppliesSearchParams(t *testing.T) {
	tests := []struct {
		name   string
		params vectordb.SearchParams
		check  func(t *testing.T, plan vectordb.QueryPlan)
	}{
		{
			name: "flat bypasses the index",
			params: vectordb.DefaultSearchParams().
				WithSearchType(vectordb.SearchTypeFlat).
				WithNprobes(20),
			check: func(t *testing.T, plan vectordb.QueryPlan) {
				assert.True(t, plan.BypassIndex)
				assert.Nil(t, plan.Nprobes)
			},
		},
		{
			name: "approximate tunes the index",
			params: vectordb.DefaultSearchParams().
				WithDistanceType(vectordb.DistanceCosine).
				WithSearchType(vectordb.SearchTypeApproximate).
				WithNprobes(20).
				WithRefineFactor(5),
			check: func(t *testing.T, plan vectordb.QueryPlan) {
				assert.False(t, plan.BypassIndex)
				require.NotNil(t, plan.Distance)
				assert.Equal(t, vectordb.DistanceCosine, *plan.Distance)
				require.NotNil(t, plan.Nprobes)
				assert.Equal(t, 20, *plan.Nprobes)
				require.NotNil(t, plan.RefineFactor)
				assert.Equal(t, uint32(5), *plan.RefineFactor)
			},
		},
		{
			name:   "post filter and column",
			params: vectordb.DefaultSearchParams().WithPostFilter(true).WithColumn("vector"),
			check: func(t *testing.T, plan vectordb.QueryPlan) {
				assert.True(t, plan.Postfilter)
				assert.Equal(t, "vector", plan.Column)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := newDocsTable(t)
			idx := newIndex(t, table, &staticModel{vec: []float64{0, 0}}, tt.params)

			_, err := idx.TopNRows(context.Background(), "q", 2)
			require.NoError(t, err)
			_, err = idx.TopNIDs(context.Background(), "q", 2)
			require.NoError(t, err)

			plans := table.Plans()
			require.Len(t, plans, 2)
			for _, plan := range plans {
				tt.check(t, plan)
			}
		})
	}
}

func TestTopN_FilterFollowsPostFilterSetting(t *testing.T) {
	english := vectordb.NewFilterSet(vectordb.Must(vectordb.NewMatch("lang", "en")))

	pre := newIndex(t, newDocsTable(t), &staticModel{vec: []float64{1, 0}},
		vectordb.DefaultSearchParams(), WithFilter(english))
	got, err := pre.TopNIDs(context.Background(), "q", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, idsOf(got))

	// b and a are the two nearest rows and only a survives the filter
	post := newIndex(t, newDocsTable(t), &staticModel{vec: []float64{1, 0}},
		vectordb.DefaultSearchParams().WithPostFilter(true), WithFilter(english))
	got, err = post.TopNIDs(context.Background(), "q", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, idsOf(got))
}

func idsOf(results []vectordb.IDResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func TestTopN_FallbacksForMissingColumns(t *testing.T) {
	ctrl := gomock.NewController(t)
	table := vectordb.NewMockTable(ctrl)
	exec := vectordb.NewMockExecutor(ctrl)

	table.EXPECT().Name().Return("mock").AnyTimes()
	table.EXPECT().Schema(gomock.Any()).Return(vectordb.NewSchema(
		vectordb.Field{Name: "id", Type: vectordb.FieldTypeString},
		vectordb.Field{Name: "vector", Type: vectordb.FieldTypeVector, Dimension: 1},
	), nil).AnyTimes()
	table.EXPECT().VectorSearch(gomock.Any()).DoAndReturn(func(vec []float32) (*vectordb.VectorQuery, error) {
		return vectordb.NewVectorQuery(exec, vectordb.EntryVectorSearch, vec)
	})
	table.EXPECT().Query().Return(vectordb.NewQuery(exec))

	rows := []vectordb.Row{
		{"id": vectordb.Number(7)},
		{"id": vectordb.String("x"), vectordb.DistanceColumn: vectordb.String("near")},
		{vectordb.DistanceColumn: vectordb.Number(0.5), vectordb.QueryDistanceColumn: vectordb.Number(0.25)},
	}
	exec.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(rows, nil).Times(2)

	idx := newIndex(t, table, &staticModel{vec: []float64{1}}, vectordb.DefaultSearchParams())

	got, err := idx.TopNRows(context.Background(), "q", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "unknown0", got[0].ID)
	assert.Equal(t, 0.0, got[0].Score)
	assert.Equal(t, "x", got[1].ID)
	assert.Equal(t, 0.0, got[1].Score)
	assert.Equal(t, "unknown2", got[2].ID)
	assert.Equal(t, 0.5, got[2].Score)

	ids, err := idx.TopNIDs(context.Background(), "q", 3)
	require.NoError(t, err)
	assert.Equal(t, []vectordb.IDResult{
		{Score: 0, ID: ""},
		{Score: 0, ID: "x"},
		{Score: 0.25, ID: ""},
	}, ids)
}

func TestTopN_TruncatesOversizedResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	table := vectordb.NewMockTable(ctrl)
	exec := vectordb.NewMockExecutor(ctrl)

	table.EXPECT().Name().Return("mock").AnyTimes()
	table.EXPECT().Schema(gomock.Any()).Return(vectordb.NewSchema(
		vectordb.Field{Name: "id", Type: vectordb.FieldTypeString},
	), nil).AnyTimes()
	table.EXPECT().VectorSearch(gomock.Any()).DoAndReturn(func(vec []float32) (*vectordb.VectorQuery, error) {
		return vectordb.NewVectorQuery(exec, vectordb.EntryVectorSearch, vec)
	})
	exec.EXPECT().Execute(gomock.Any(), gomock.Any()).Return([]vectordb.Row{
		{"id": vectordb.String("a")},
		{"id": vectordb.String("b")},
		{"id": vectordb.String("c")},
	}, nil)

	idx := newIndex(t, table, &staticModel{vec: []float64{1}}, vectordb.DefaultSearchParams())

	got, err := idx.TopNRows(context.Background(), "q", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestTopN_EmbeddingFailureSkipsStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	table := vectordb.NewMockTable(ctrl)

	table.EXPECT().Name().Return("mock").AnyTimes()
	// only the construction-time schema check touches the table
	table.EXPECT().Schema(gomock.Any()).Return(vectordb.NewSchema(
		vectordb.Field{Name: "id", Type: vectordb.FieldTypeString},
	), nil).Times(1)

	cause := errors.New("model offline")
	rec := &fakeRecorder{}
	idx := newIndex(t, table, &staticModel{err: cause}, vectordb.DefaultSearchParams(), WithMetrics(rec))

	_, err := idx.TopNRows(context.Background(), "q", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, vectordb.ErrEmbedding)
	assert.ErrorIs(t, err, cause)

	_, err = vectordb.TopN[doc](context.Background(), idx, "q", 5)
	assert.ErrorIs(t, err, vectordb.ErrEmbedding)

	_, err = idx.TopNIDs(context.Background(), "q", 5)
	assert.ErrorIs(t, err, vectordb.ErrEmbedding)
	assert.NotErrorIs(t, err, vectordb.ErrStore)

	// an empty query is still embedded and fails the same way
	_, err = idx.TopNRows(context.Background(), "", 5)
	assert.ErrorIs(t, err, vectordb.ErrEmbedding)
	assert.ErrorIs(t, err, cause)
	_, err = idx.TopNIDs(context.Background(), "", 5)
	assert.ErrorIs(t, err, vectordb.ErrEmbedding)

	require.Len(t, rec.searches, 5)
	for _, s := range rec.searches {
		assert.Equal(t, metrics.OutcomeEmbeddingError, s.outcome)
	}
}

func TestTopN_StoreFailures(t *testing.T) {
	cause := errors.New("table dropped")

	t.Run("execute", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		table := vectordb.NewMockTable(ctrl)
		exec := vectordb.NewMockExecutor(ctrl)

		table.EXPECT().Name().Return("mock").AnyTimes()
		table.EXPECT().Schema(gomock.Any()).Return(vectordb.NewSchema(), nil).AnyTimes()
		table.EXPECT().Query().Return(vectordb.NewQuery(exec))
		exec.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, cause)

		idx := newIndex(t, table, &staticModel{vec: []float64{1}}, vectordb.DefaultSearchParams())
		_, err := idx.TopNIDs(context.Background(), "q", 1)

		var storeErr *vectordb.StoreError
		require.True(t, errors.As(err, &storeErr))
		assert.Equal(t, "execute", storeErr.Op)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, vectordb.ErrEmbedding)
	})

	t.Run("schema", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		table := vectordb.NewMockTable(ctrl)

		table.EXPECT().Name().Return("mock").AnyTimes()
		gomock.InOrder(
			table.EXPECT().Schema(gomock.Any()).Return(vectordb.NewSchema(), nil),
			table.EXPECT().Schema(gomock.Any()).Return(vectordb.Schema{}, cause),
		)

		idx := newIndex(t, table, &staticModel{vec: []float64{1}}, vectordb.DefaultSearchParams())
		_, err := vectordb.TopN[doc](context.Background(), idx, "q", 1)
		assert.ErrorIs(t, err, vectordb.ErrStore)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		idx := newIndex(t, newDocsTable(t), &staticModel{vec: []float64{1, 2, 3}}, vectordb.DefaultSearchParams())
		_, err := idx.TopNRows(context.Background(), "q", 1)
		assert.ErrorIs(t, err, vectordb.ErrStore)
	})
}

func TestTopN_DecodeFailure(t *testing.T) {
	type strict struct {
		Title int `json:"title"`
	}

	idx := newIndex(t, newDocsTable(t), &staticModel{vec: []float64{0, 0}}, vectordb.DefaultSearchParams())

	got, err := vectordb.TopN[strict](context.Background(), idx, "q", 2)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, vectordb.ErrDecode)

	var decodeErr *vectordb.DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, 0, decodeErr.Index)
	assert.Equal(t, "a", decodeErr.ID)
}

func TestNewIndex_Validation(t *testing.T) {
	table := newDocsTable(t)
	model := &staticModel{vec: []float64{0, 0}}
	ctx := context.Background()

	_, err := NewIndex(ctx, nil, model, "id", vectordb.DefaultSearchParams())
	assert.Error(t, err)
	_, err = NewIndex(ctx, table, nil, "id", vectordb.DefaultSearchParams())
	assert.Error(t, err)
	_, err = NewIndex(ctx, table, model, "", vectordb.DefaultSearchParams())
	assert.Error(t, err)
	_, err = NewIndex(ctx, table, model, "id", vectordb.DefaultSearchParams().WithNprobes(0))
	assert.Error(t, err)
}

func TestNewIndex_WarnsAboutIDColumn(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := logger.NewWithZap(zap.New(core), false)

	table := memtable.New("docs", vectordb.NewSchema(
		vectordb.Field{Name: "doc_id", Type: vectordb.FieldTypeInt},
		vectordb.Field{Name: "vector", Type: vectordb.FieldTypeVector, Dimension: 1},
	))
	model := &staticModel{vec: []float64{0}}

	_, err := NewIndex(context.Background(), table, model, "id", vectordb.DefaultSearchParams(), WithLogger(log))
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("id field not found in table schema, results will carry fallback ids").Len())

	_, err = NewIndex(context.Background(), table, model, "doc_id", vectordb.DefaultSearchParams(), WithLogger(log))
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("id field is not a string column, results will carry fallback ids").Len())
}

func TestTopN_ObservabilityHooks(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tr := tracer.NewWithProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)), logger.NewNop())
	rec := &fakeRecorder{}

	idx := newIndex(t, newDocsTable(t), &staticModel{vec: []float64{0, 0}}, vectordb.DefaultSearchParams(),
		WithMetrics(rec), WithTracer(tr))

	_, err := idx.TopNRows(context.Background(), "q", 2)
	require.NoError(t, err)
	_, err = idx.TopNIDs(context.Background(), "q", 3)
	require.NoError(t, err)

	assert.Equal(t, []recordedSearch{
		{operation: OperationTopN, outcome: metrics.OutcomeSuccess, results: 2},
		{operation: OperationTopNIDs, outcome: metrics.OutcomeSuccess, results: 3},
	}, rec.searches)
	assert.Equal(t, 2, rec.embeddings)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "vectorindex.top_n", spans[0].Name())
	assert.Equal(t, "vectorindex.top_n_ids", spans[1].Name())
}

func TestIndex_ConcurrentSearches(t *testing.T) {
	idx := newIndex(t, newDocsTable(t), &staticModel{vec: []float64{0, 0}}, vectordb.DefaultSearchParams())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := idx.TopNIDs(context.Background(), "q", 1)
			assert.NoError(t, err)
			assert.Equal(t, []string{"a"}, idsOf(got))
		}()
	}
	wg.Wait()
}
