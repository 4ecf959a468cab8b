package vectordb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestFilterSet_Matches(t *testing.T) {
	row := Row{
		"lang":    String("en"),
		"views":   Number(120),
		"draft":   Bool(false),
		"deleted": Null(),
	}

	tests := []struct {
		name   string
		filter *FilterSet
		want   bool
	}{
		{name: "nil", filter: nil, want: true},
		{name: "empty", filter: &FilterSet{}, want: true},
		{name: "match", filter: NewFilterSet(Must(NewMatch("lang", "en"))), want: true},
		{name: "match bool", filter: NewFilterSet(Must(NewMatch("draft", false))), want: true},
		{name: "match int against number", filter: NewFilterSet(Must(NewMatch("views", 120))), want: true},
		{name: "mismatch", filter: NewFilterSet(Must(NewMatch("lang", "de"))), want: false},
		{name: "any", filter: NewFilterSet(Must(NewMatchAny("lang", "de", "en"))), want: true},
		{name: "except", filter: NewFilterSet(Must(NewMatchExcept("lang", "de", "fr"))), want: true},
		{name: "except hit", filter: NewFilterSet(Must(NewMatchExcept("lang", "en"))), want: false},
		{name: "except missing column", filter: NewFilterSet(Must(NewMatchExcept("owner", "bob"))), want: false},
		{name: "range", filter: NewFilterSet(Must(NewNumericRange("views", NumericRange{Gte: ptr(100.0), Lt: ptr(200.0)}))), want: true},
		{name: "range miss", filter: NewFilterSet(Must(NewNumericRange("views", NumericRange{Gt: ptr(120.0)}))), want: false},
		{name: "range on string", filter: NewFilterSet(Must(NewNumericRange("lang", NumericRange{Gt: ptr(0.0)}))), want: false},
		{name: "is null", filter: NewFilterSet(Must(NewIsNull("deleted"))), want: true},
		{name: "missing is null", filter: NewFilterSet(Must(NewIsNull("owner"))), want: true},
		{name: "is not null", filter: NewFilterSet(Must(NewIsNotNull("lang"))), want: true},
		{name: "should one of", filter: NewFilterSet(Should(NewMatch("lang", "de"), NewMatch("lang", "en"))), want: true},
		{name: "should none", filter: NewFilterSet(Should(NewMatch("lang", "de"), NewMatch("lang", "fr"))), want: false},
		{name: "must not", filter: NewFilterSet(MustNot(NewMatch("draft", true))), want: true},
		{name: "must not hit", filter: NewFilterSet(MustNot(NewMatch("lang", "en"))), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(row))
		})
	}
}

func TestParseFilterSet(t *testing.T) {
	data := []byte(`{
		"must": [
			{"field": "lang", "equalTo": "en"},
			{"field": "views", "greaterThanOrEqualTo": 10}
		],
		"should": [
			{"field": "tag", "anyOf": ["ml", "ai"]}
		],
		"mustNot": [
			{"field": "owner", "noneOf": ["bot"]},
			{"field": "deleted_at", "isNull": false}
		]
	}`)

	fs, err := ParseFilterSet(data)
	require.NoError(t, err)
	require.NotNil(t, fs)

	require.Len(t, fs.Must.Conditions, 2)
	assert.Equal(t, &MatchCondition{Field: "lang", Value: "en"}, fs.Must.Conditions[0])
	rng, ok := fs.Must.Conditions[1].(*NumericRangeCondition)
	require.True(t, ok)
	require.NotNil(t, rng.Range.Gte)
	assert.Equal(t, 10.0, *rng.Range.Gte)

	require.Len(t, fs.Should.Conditions, 1)
	assert.IsType(t, &MatchAnyCondition{}, fs.Should.Conditions[0])

	require.Len(t, fs.MustNot.Conditions, 2)
	assert.IsType(t, &MatchExceptCondition{}, fs.MustNot.Conditions[0])
	assert.Equal(t, &IsNullCondition{Field: "deleted_at", IsNull: false}, fs.MustNot.Conditions[1])

	assert.Equal(t, []string{"lang", "views", "tag", "owner", "deleted_at"}, fs.Fields())
}

func TestParseFilterSet_Empty(t *testing.T) {
	fs, err := ParseFilterSet(nil)
	require.NoError(t, err)
	assert.Nil(t, fs)
	assert.True(t, fs.IsEmpty())
}

func TestParseFilterSet_UnknownCondition(t *testing.T) {
	_, err := ParseFilterSet([]byte(`{"must": [{"field": "x", "like": "y"}]}`))
	assert.Error(t, err)
}

func TestFilterSet_MarshalMatchesParse(t *testing.T) {
	fs := NewFilterSet(Must(NewNumericRange("views", NumericRange{Lt: ptr(5.0)})))

	data, err := json.Marshal(fs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"must":[{"field":"views","lessThan":5}]}`, string(data))
}

func TestNewMatchAny_PanicsOnMixedTypes(t *testing.T) {
	assert.Panics(t, func() { NewMatchAny("x", "a", 1) })
	assert.NotPanics(t, func() { NewMatchAny("x", 1, int64(2), 3.5) })
}
