package vectordb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewVectorQuery_RejectsEmptyVector(t *testing.T) {
	_, err := NewVectorQuery(nil, EntryVectorSearch, nil)
	assert.ErrorIs(t, err, ErrEmptyVector)
}

func TestNewVectorQuery_CopiesVector(t *testing.T) {
	vec := []float32{1, 2}
	q, err := NewVectorQuery(nil, EntryVectorSearch, vec)
	require.NoError(t, err)

	vec[0] = 99
	assert.Equal(t, []float32{1, 2}, q.Plan().Vector)
}

func TestVectorQuery_ExecutePassesPlan(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := NewMockExecutor(ctrl)

	want := []Row{{"id": String("a"), DistanceColumn: Number(0.5)}}
	exec.EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, plan QueryPlan) ([]Row, error) {
			assert.Equal(t, EntryVectorSearch, plan.Entry)
			assert.Equal(t, []string{"id"}, plan.Columns)
			require.NotNil(t, plan.Limit)
			assert.Equal(t, 2, *plan.Limit)
			assert.True(t, plan.BypassIndex)
			return want, nil
		})

	q, err := NewVectorQuery(exec, EntryVectorSearch, []float32{1})
	require.NoError(t, err)

	rows, err := q.Select("id").Limit(2).BypassVectorIndex().Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, rows)
}

func TestVectorQuery_ExecuteWithoutExecutor(t *testing.T) {
	q, err := NewVectorQuery(nil, EntryVectorSearch, []float32{1})
	require.NoError(t, err)

	_, err = q.Execute(context.Background())
	assert.Error(t, err)
}

func TestQuery_NearestToCarriesSettings(t *testing.T) {
	filter := NewFilterSet(Must(NewMatch("lang", "en")))

	vq, err := NewQuery(nil).Select("id").Limit(4).Where(filter).NearestTo([]float32{0.5})
	require.NoError(t, err)

	plan := vq.Plan()
	assert.Equal(t, EntryQuery, plan.Entry)
	assert.Equal(t, []string{"id"}, plan.Columns)
	require.NotNil(t, plan.Limit)
	assert.Equal(t, 4, *plan.Limit)
	assert.Same(t, filter, plan.Filter)
}

func TestQuery_NearestToEmptyVector(t *testing.T) {
	_, err := NewQuery(nil).NearestTo([]float32{})
	assert.True(t, errors.Is(err, ErrEmptyVector))
}

func TestEntryPoint_DistanceColumn(t *testing.T) {
	assert.Equal(t, "_distance", EntryVectorSearch.DistanceColumn())
	assert.Equal(t, "distance", EntryQuery.DistanceColumn())
}

func TestQueryPlan_Effective(t *testing.T) {
	var plan QueryPlan
	assert.Equal(t, DefaultLimit, plan.EffectiveLimit())
	assert.Equal(t, DistanceL2, plan.EffectiveDistance())

	n := -3
	plan.Limit = &n
	assert.Equal(t, 0, plan.EffectiveLimit())
}

func TestSchema_Columns(t *testing.T) {
	s := NewSchema(
		Field{Name: "id", Type: FieldTypeString},
		Field{Name: "vector", Type: FieldTypeVector, Dimension: 3},
		Field{Name: "title", Type: FieldTypeString},
		Field{Name: "title_vec", Type: FieldTypeVector, Dimension: 3},
	)

	assert.Equal(t, []string{"id", "title"}, s.ScalarColumns())
	assert.Equal(t, []string{"vector", "title_vec"}, s.VectorColumns())

	f, ok := s.Field("vector")
	require.True(t, ok)
	assert.Equal(t, 3, f.Dimension)
	_, ok = s.Field("missing")
	assert.False(t, ok)
}
