package vectordb

// Matches evaluates the filter set against a row in process. A nil or empty
// filter set matches every row. Missing columns behave like NULL.
func (fs *FilterSet) Matches(row Row) bool {
	if fs == nil {
		return true
	}
	if fs.Must != nil {
		for _, c := range fs.Must.Conditions {
			if !conditionMatches(c, row) {
				return false
			}
		}
	}
	if fs.Should != nil && len(fs.Should.Conditions) > 0 {
		matched := false
		for _, c := range fs.Should.Conditions {
			if conditionMatches(c, row) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if fs.MustNot != nil {
		for _, c := range fs.MustNot.Conditions {
			if conditionMatches(c, row) {
				return false
			}
		}
	}
	return true
}

func conditionMatches(c FilterCondition, row Row) bool {
	v := row[c.FilterField()]

	switch cond := c.(type) {
	case *MatchCondition:
		return v.Equal(ValueOf(cond.Value))
	case *MatchAnyCondition:
		return containsValue(cond.Values, v)
	case *MatchExceptCondition:
		// NULL never satisfies NOT IN, as in SQL
		if v.IsNull() {
			return false
		}
		return !containsValue(cond.Values, v)
	case *NumericRangeCondition:
		n, ok := v.AsNumber()
		if !ok {
			return false
		}
		return inRange(n, cond.Range)
	case *IsNullCondition:
		return v.IsNull() == cond.IsNull
	}
	return false
}

func containsValue(values []any, v Value) bool {
	for _, candidate := range values {
		if v.Equal(ValueOf(candidate)) {
			return true
		}
	}
	return false
}

func inRange(n float64, r NumericRange) bool {
	if r.Gt != nil && !(n > *r.Gt) {
		return false
	}
	if r.Gte != nil && !(n >= *r.Gte) {
		return false
	}
	if r.Lt != nil && !(n < *r.Lt) {
		return false
	}
	if r.Lte != nil && !(n <= *r.Lte) {
		return false
	}
	return true
}
