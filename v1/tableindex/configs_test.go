package tableindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/vectorindex/v1/vectordb"
)

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("VECTORINDEX_ID_FIELD", "doc_id")
	t.Setenv("VECTORINDEX_DISTANCE_TYPE", "cosine")
	t.Setenv("VECTORINDEX_SEARCH_TYPE", "approximate")
	t.Setenv("VECTORINDEX_NPROBES", "32")
	t.Setenv("VECTORINDEX_REFINE_FACTOR", "4")
	t.Setenv("VECTORINDEX_POST_FILTER", "true")
	t.Setenv("VECTORINDEX_COLUMN", "embedding")
	t.Setenv("VECTORINDEX_FILTER", `{"must":[{"field":"lang","equalTo":"en"}]}`)

	cfg := NewConfig()
	assert.Equal(t, "doc_id", cfg.IDField)

	p, err := cfg.SearchParams()
	require.NoError(t, err)

	d, ok := p.DistanceType()
	require.True(t, ok)
	assert.Equal(t, vectordb.DistanceCosine, d)
	st, ok := p.SearchType()
	require.True(t, ok)
	assert.Equal(t, vectordb.SearchTypeApproximate, st)
	n, ok := p.Nprobes()
	require.True(t, ok)
	assert.Equal(t, 32, n)
	rf, ok := p.RefineFactor()
	require.True(t, ok)
	assert.Equal(t, uint32(4), rf)
	pf, ok := p.PostFilter()
	require.True(t, ok)
	assert.True(t, pf)
	c, ok := p.Column()
	require.True(t, ok)
	assert.Equal(t, "embedding", c)

	fs, err := cfg.FilterSet()
	require.NoError(t, err)
	require.NotNil(t, fs)
	assert.Equal(t, []string{"lang"}, fs.Fields())
}

func TestNewConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"VECTORINDEX_ID_FIELD", "VECTORINDEX_DISTANCE_TYPE", "VECTORINDEX_SEARCH_TYPE",
		"VECTORINDEX_NPROBES", "VECTORINDEX_REFINE_FACTOR", "VECTORINDEX_POST_FILTER",
		"VECTORINDEX_COLUMN", "VECTORINDEX_FILTER",
	} {
		t.Setenv(key, "")
	}

	cfg := NewConfig()
	assert.Equal(t, "id", cfg.IDField)

	p, err := cfg.SearchParams()
	require.NoError(t, err)
	assert.Equal(t, vectordb.DefaultSearchParams().String(), p.String())

	fs, err := cfg.FilterSet()
	require.NoError(t, err)
	assert.Nil(t, fs)
}

func TestConfig_SearchParamsErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "distance", cfg: Config{DistanceType: "manhattan"}},
		{name: "search type", cfg: Config{SearchType: "hybrid"}},
		{name: "post filter", cfg: Config{PostFilter: "sometimes"}},
		{name: "nprobes", cfg: Config{Nprobes: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.SearchParams()
			assert.Error(t, err)
		})
	}

	_, err := (&Config{Filter: `{"must":[{"field":"x","like":1}]}`}).FilterSet()
	assert.Error(t, err)
}
