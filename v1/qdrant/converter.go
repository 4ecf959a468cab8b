package qdrant

import (
	"fmt"
	"math"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/vectorindex/v1/vectordb"
)

// ── Filter Conversion ────────────────────────────────────────────────────────

// convertFilterSet converts a vectordb.FilterSet to a native Qdrant filter.
// It returns nil for an empty set. Conditions Qdrant cannot express are an
// error rather than being dropped.
func convertFilterSet(filters *vectordb.FilterSet) (*qdrant.Filter, error) {
	if filters.IsEmpty() {
		return nil, nil
	}

	var (
		filter = &qdrant.Filter{}
		err    error
	)
	if filter.Must, err = convertConditionSet(filters.Must); err != nil {
		return nil, err
	}
	if filter.Should, err = convertConditionSet(filters.Should); err != nil {
		return nil, err
	}
	if filter.MustNot, err = convertConditionSet(filters.MustNot); err != nil {
		return nil, err
	}

	if len(filter.Must) == 0 && len(filter.Should) == 0 && len(filter.MustNot) == 0 {
		return nil, nil
	}
	return filter, nil
}

func convertConditionSet(cs *vectordb.ConditionSet) ([]*qdrant.Condition, error) {
	if cs == nil {
		return nil, nil
	}

	conditions := make([]*qdrant.Condition, 0, len(cs.Conditions))
	for _, c := range cs.Conditions {
		cond, err := convertCondition(c)
		if err != nil {
			return nil, err
		}
		if cond != nil {
			conditions = append(conditions, cond)
		}
	}
	return conditions, nil
}

func convertCondition(c vectordb.FilterCondition) (*qdrant.Condition, error) {
	switch cond := c.(type) {
	case *vectordb.MatchCondition:
		return convertMatch(cond.Field, cond.Value)
	case *vectordb.MatchAnyCondition:
		return convertMatchAny(cond.Field, cond.Values, false)
	case *vectordb.MatchExceptCondition:
		return convertMatchAny(cond.Field, cond.Values, true)
	case *vectordb.NumericRangeCondition:
		return convertNumericRange(cond), nil
	case *vectordb.IsNullCondition:
		return convertIsNull(cond), nil
	default:
		return nil, fmt.Errorf("[Qdrant] unsupported filter condition %T", c)
	}
}

func convertMatch(key string, value any) (*qdrant.Condition, error) {
	v := vectordb.ValueOf(value)
	switch v.Kind() {
	case vectordb.KindString:
		s, _ := v.AsString()
		return qdrant.NewMatch(key, s), nil
	case vectordb.KindBool:
		b, _ := v.AsBool()
		return qdrant.NewMatchBool(key, b), nil
	case vectordb.KindNumber:
		n, _ := v.AsNumber()
		if i, ok := exactInt(n); ok {
			return qdrant.NewMatchInt(key, i), nil
		}
		// qdrant has no float equality match
		return qdrant.NewRange(key, &qdrant.Range{Gte: &n, Lte: &n}), nil
	default:
		return nil, fmt.Errorf("[Qdrant] cannot match field '%s' against %s", key, v.Kind())
	}
}

func convertMatchAny(key string, values []any, except bool) (*qdrant.Condition, error) {
	if len(values) == 0 {
		return nil, nil
	}

	switch vectordb.ValueOf(values[0]).Kind() {
	case vectordb.KindString:
		strs := make([]string, 0, len(values))
		for _, raw := range values {
			s, ok := vectordb.ValueOf(raw).AsString()
			if !ok {
				return nil, fmt.Errorf("[Qdrant] mixed value types for field '%s'", key)
			}
			strs = append(strs, s)
		}
		if except {
			return qdrant.NewMatchExceptKeywords(key, strs...), nil
		}
		return qdrant.NewMatchKeywords(key, strs...), nil
	case vectordb.KindNumber:
		ints := make([]int64, 0, len(values))
		for _, raw := range values {
			n, ok := vectordb.ValueOf(raw).AsNumber()
			if !ok {
				return nil, fmt.Errorf("[Qdrant] mixed value types for field '%s'", key)
			}
			i, ok := exactInt(n)
			if !ok {
				return nil, fmt.Errorf("[Qdrant] field '%s' can only be matched against integers, got %v", key, n)
			}
			ints = append(ints, i)
		}
		if except {
			return qdrant.NewMatchExceptInts(key, ints...), nil
		}
		return qdrant.NewMatchInts(key, ints...), nil
	default:
		return nil, fmt.Errorf("[Qdrant] field '%s' can only be matched against keywords or integers", key)
	}
}

func convertNumericRange(c *vectordb.NumericRangeCondition) *qdrant.Condition {
	r := &qdrant.Range{
		Gt:  c.Range.Gt,
		Gte: c.Range.Gte,
		Lt:  c.Range.Lt,
		Lte: c.Range.Lte,
	}
	if r.Gt == nil && r.Gte == nil && r.Lt == nil && r.Lte == nil {
		return nil
	}
	return qdrant.NewRange(c.Field, r)
}

// convertIsNull treats missing keys as null, which is Qdrant's "is empty".
func convertIsNull(c *vectordb.IsNullCondition) *qdrant.Condition {
	empty := qdrant.NewIsEmpty(c.Field)
	if c.IsNull {
		return empty
	}
	return &qdrant.Condition{
		ConditionOneOf: &qdrant.Condition_Filter{
			Filter: &qdrant.Filter{MustNot: []*qdrant.Condition{empty}},
		},
	}
}

func exactInt(n float64) (int64, bool) {
	if n != math.Trunc(n) || n < math.MinInt64 || n > math.MaxInt64 {
		return 0, false
	}
	return int64(n), true
}

// ── Result Conversion ────────────────────────────────────────────────────────

// pointIDString renders a point id as text.
func pointIDString(id *qdrant.PointId) (string, error) {
	switch v := id.GetPointIdOptions().(type) {
	case *qdrant.PointId_Num:
		return fmt.Sprintf("%d", v.Num), nil
	case *qdrant.PointId_Uuid:
		return v.Uuid, nil
	default:
		return "", fmt.Errorf("[Qdrant] unexpected point id type %T", v)
	}
}

// convertValue recursively converts a Qdrant payload value.
func convertValue(v *qdrant.Value) vectordb.Value {
	switch val := v.GetKind().(type) {
	case *qdrant.Value_StringValue:
		return vectordb.String(val.StringValue)
	case *qdrant.Value_IntegerValue:
		return vectordb.Number(float64(val.IntegerValue))
	case *qdrant.Value_DoubleValue:
		return vectordb.Number(val.DoubleValue)
	case *qdrant.Value_BoolValue:
		return vectordb.Bool(val.BoolValue)
	case *qdrant.Value_StructValue:
		fields := val.StructValue.GetFields()
		m := make(map[string]vectordb.Value, len(fields))
		for k, f := range fields {
			m[k] = convertValue(f)
		}
		return vectordb.Object(m)
	case *qdrant.Value_ListValue:
		items := val.ListValue.GetValues()
		out := make([]vectordb.Value, len(items))
		for i, item := range items {
			out[i] = convertValue(item)
		}
		return vectordb.Array(out...)
	default:
		return vectordb.Null()
	}
}

// convertPayload converts the payload of a point to a row.
func convertPayload(payload map[string]*qdrant.Value) vectordb.Row {
	row := make(vectordb.Row, len(payload)+2)
	for k, v := range payload {
		row[k] = convertValue(v)
	}
	return row
}
