package pgvector

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Aleph-Alpha/vectorindex/v1/vectordb"
)

// candidateDistance is the distance alias inside the candidate subquery.
const candidateDistance = "__distance"

// maxEfSearch is the upper bound pgvector accepts for hnsw.ef_search.
const maxEfSearch = 1000

// column is one table column as read from the catalog.
type column struct {
	Name string
	// UDT is the Postgres type name (vector, halfvec, bit, text, int8, ...).
	UDT string
	// Dim is the declared dimension of vector columns, or -1 when the
	// column was declared without one.
	Dim int
}

func (c column) isVector() bool {
	switch c.UDT {
	case "vector", "halfvec", "bit":
		return true
	}
	return false
}

func (c column) fieldType() vectordb.FieldType {
	switch c.UDT {
	case "vector", "halfvec", "bit":
		return vectordb.FieldTypeVector
	case "text", "varchar", "bpchar", "uuid", "name", "citext":
		return vectordb.FieldTypeString
	case "int2", "int4", "int8":
		return vectordb.FieldTypeInt
	case "float4", "float8", "numeric":
		return vectordb.FieldTypeFloat
	case "bool":
		return vectordb.FieldTypeBool
	case "json", "jsonb":
		return vectordb.FieldTypeJSON
	default:
		return vectordb.FieldTypeOther
	}
}

// selectExpr renders the column for the select list. Types the driver has
// no natural Go value for are read as text and converted after the scan.
func (c column) selectExpr(qualifier string) string {
	ref := quoteIdent(c.Name)
	if qualifier != "" {
		ref = qualifier + "." + ref
	}
	switch c.UDT {
	case "vector", "halfvec", "bit", "json", "jsonb", "uuid":
		return ref + "::text AS " + quoteIdent(c.Name)
	case "numeric":
		return ref + "::float8 AS " + quoteIdent(c.Name)
	default:
		return ref
	}
}

// statement is a SQL text with gorm style "?" placeholders.
type statement struct {
	SQL  string
	Args []any
}

// quoteIdent quotes a single identifier.
func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// quoteTable quotes a possibly schema qualified table name.
func quoteTable(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

// ── Distance ─────────────────────────────────────────────────────────────────

// distanceOperator returns the pgvector operator ranking by metric.
func distanceOperator(metric vectordb.DistanceType) (string, error) {
	switch metric {
	case vectordb.DistanceL2:
		return "<->", nil
	case vectordb.DistanceCosine:
		return "<=>", nil
	case vectordb.DistanceDot:
		return "<#>", nil
	case vectordb.DistanceHamming:
		return "<~>", nil
	default:
		return "", fmt.Errorf("pgvector: unsupported distance type %s", metric)
	}
}

// distanceExpr turns the operator result into the reported distance:
// squared L2, cosine distance, 1 - a·b for dot and the bit count for hamming.
func distanceExpr(metric vectordb.DistanceType, ranking string) string {
	switch metric {
	case vectordb.DistanceL2:
		return "power(" + ranking + ", 2)"
	case vectordb.DistanceDot:
		// <#> is the negative inner product
		return "(1 + (" + ranking + "))"
	default:
		return ranking
	}
}

// vectorLiteral renders the query vector for the target column together
// with the cast that must follow its placeholder.
func vectorLiteral(target column, metric vectordb.DistanceType, vec []float32) (string, string, error) {
	if target.Dim > 0 && len(vec) != target.Dim {
		return "", "", fmt.Errorf("%w: query vector has dimension %d, column %q expects %d",
			ErrDimensionMismatch, len(vec), target.Name, target.Dim)
	}

	if target.UDT == "bit" {
		if metric != vectordb.DistanceHamming {
			return "", "", fmt.Errorf("pgvector: column %q is a bit column, only hamming distance is supported", target.Name)
		}
		var b strings.Builder
		for _, x := range vec {
			if x > 0 {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		return b.String(), "::bit(" + strconv.Itoa(len(vec)) + ")", nil
	}

	if metric == vectordb.DistanceHamming {
		return "", "", fmt.Errorf("pgvector: hamming distance requires a bit column, %q is %s", target.Name, target.UDT)
	}

	var b strings.Builder
	b.WriteByte('[')
	for i, x := range vec {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(x), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String(), "::" + target.UDT, nil
}

// ── Search ───────────────────────────────────────────────────────────────────

// searchSettings returns the SET LOCAL statements a plan needs. They only
// apply inside the transaction the search runs in.
func searchSettings(plan vectordb.QueryPlan) []string {
	var out []string
	if plan.BypassIndex {
		out = append(out, "SET LOCAL enable_indexscan = off")
	}
	if plan.Nprobes != nil && *plan.Nprobes > 0 {
		n := *plan.Nprobes
		out = append(out, fmt.Sprintf("SET LOCAL ivfflat.probes = %d", n))
		out = append(out, fmt.Sprintf("SET LOCAL hnsw.ef_search = %d", min(n, maxEfSearch)))
	}
	return out
}

// buildSearch renders the nearest-neighbor query for plan.
//
// Without post-filter or refine factor it is a single SELECT ordered by the
// raw operator so a vector index can serve it. Otherwise an inner query
// fetches the candidates (limit times the refine factor) and the outer query
// applies the post-filter, re-ranks by exact distance and cuts to the limit.
func buildSearch(table string, target column, projection []column, plan vectordb.QueryPlan, limit int) (statement, error) {
	metric := plan.EffectiveDistance()
	op, err := distanceOperator(metric)
	if err != nil {
		return statement{}, err
	}
	literal, cast, err := vectorLiteral(target, metric, plan.Vector)
	if err != nil {
		return statement{}, err
	}

	ranking := quoteIdent(target.Name) + " " + op + " ?" + cast
	distanceColumn := quoteIdent(plan.Entry.DistanceColumn())

	var prefilter, postfilter *vectordb.FilterSet
	if plan.Postfilter {
		postfilter = plan.Filter
	} else {
		prefilter = plan.Filter
	}

	where, whereArgs, err := whereClause(prefilter)
	if err != nil {
		return statement{}, err
	}

	selects := make([]string, 0, len(projection)+1)
	for _, c := range projection {
		selects = append(selects, c.selectExpr(""))
	}

	if postfilter.IsEmpty() && plan.RefineFactor == nil {
		var b strings.Builder
		args := make([]any, 0, len(whereArgs)+3)

		b.WriteString("SELECT ")
		b.WriteString(strings.Join(append(selects, distanceExpr(metric, ranking)+" AS "+distanceColumn), ", "))
		args = append(args, literal)
		b.WriteString(" FROM ")
		b.WriteString(quoteTable(table))
		if where != "" {
			b.WriteString(" WHERE ")
			b.WriteString(where)
			args = append(args, whereArgs...)
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(ranking)
		args = append(args, literal)
		b.WriteString(" LIMIT ?")
		args = append(args, limit)
		return statement{SQL: b.String(), Args: args}, nil
	}

	inner := limit
	if plan.RefineFactor != nil && *plan.RefineFactor > 1 {
		inner = limit * int(*plan.RefineFactor)
	}

	// the candidate subquery carries every projected column plus the
	// post-filter columns
	candidateCols := append([]column(nil), projection...)
	seen := make(map[string]struct{}, len(projection))
	for _, c := range projection {
		seen[c.Name] = struct{}{}
	}
	for _, f := range postfilter.Fields() {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		candidateCols = append(candidateCols, column{Name: f})
	}

	innerSelects := make([]string, 0, len(candidateCols)+1)
	for _, c := range candidateCols {
		innerSelects = append(innerSelects, quoteIdent(c.Name))
	}
	innerSelects = append(innerSelects, distanceExpr(metric, ranking)+" AS "+quoteIdent(candidateDistance))

	outerSelects := make([]string, 0, len(projection)+1)
	for _, c := range projection {
		outerSelects = append(outerSelects, c.selectExpr("candidates"))
	}
	outerSelects = append(outerSelects, "candidates."+quoteIdent(candidateDistance)+" AS "+distanceColumn)

	var b strings.Builder
	args := make([]any, 0, len(whereArgs)+4)

	b.WriteString("SELECT ")
	b.WriteString(strings.Join(outerSelects, ", "))
	b.WriteString(" FROM (SELECT ")
	b.WriteString(strings.Join(innerSelects, ", "))
	args = append(args, literal)
	b.WriteString(" FROM ")
	b.WriteString(quoteTable(table))
	if where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(where)
		args = append(args, whereArgs...)
	}
	b.WriteString(" ORDER BY ")
	b.WriteString(ranking)
	args = append(args, literal)
	b.WriteString(" LIMIT ?) AS candidates")
	args = append(args, inner)

	post, postArgs, err := whereClause(postfilter)
	if err != nil {
		return statement{}, err
	}
	if post != "" {
		b.WriteString(" WHERE ")
		b.WriteString(post)
		args = append(args, postArgs...)
	}
	b.WriteString(" ORDER BY candidates.")
	b.WriteString(quoteIdent(candidateDistance))
	b.WriteString(" LIMIT ?")
	args = append(args, limit)

	return statement{SQL: b.String(), Args: args}, nil
}

// ── Filters ──────────────────────────────────────────────────────────────────

// whereClause renders a filter set. Conditions that evaluate to NULL count
// as not matching, also under MustNot.
func whereClause(fs *vectordb.FilterSet) (string, []any, error) {
	if fs.IsEmpty() {
		return "", nil, nil
	}

	var (
		parts []string
		args  []any
	)

	if fs.Must != nil {
		for _, c := range fs.Must.Conditions {
			sql, a, err := conditionSQL(c)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, sql)
			args = append(args, a...)
		}
	}

	if fs.Should != nil && len(fs.Should.Conditions) > 0 {
		ors := make([]string, 0, len(fs.Should.Conditions))
		for _, c := range fs.Should.Conditions {
			sql, a, err := conditionSQL(c)
			if err != nil {
				return "", nil, err
			}
			ors = append(ors, sql)
			args = append(args, a...)
		}
		parts = append(parts, "("+strings.Join(ors, " OR ")+")")
	}

	if fs.MustNot != nil {
		for _, c := range fs.MustNot.Conditions {
			sql, a, err := conditionSQL(c)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, "NOT COALESCE("+sql+", FALSE)")
			args = append(args, a...)
		}
	}

	return strings.Join(parts, " AND "), args, nil
}

func conditionSQL(c vectordb.FilterCondition) (string, []any, error) {
	col := quoteIdent(c.FilterField())

	switch cond := c.(type) {
	case *vectordb.MatchCondition:
		v := vectordb.ValueOf(cond.Value)
		if v.IsNull() {
			return "(" + col + " IS NULL)", nil, nil
		}
		arg, err := sqlArg(v)
		if err != nil {
			return "", nil, err
		}
		return "(" + col + " = ?)", []any{arg}, nil

	case *vectordb.MatchAnyCondition:
		if len(cond.Values) == 0 {
			return "FALSE", nil, nil
		}
		args, err := sqlArgs(cond.Values)
		if err != nil {
			return "", nil, err
		}
		return "(" + col + " IN ?)", []any{args}, nil

	case *vectordb.MatchExceptCondition:
		if len(cond.Values) == 0 {
			return "(" + col + " IS NOT NULL)", nil, nil
		}
		args, err := sqlArgs(cond.Values)
		if err != nil {
			return "", nil, err
		}
		return "(" + col + " NOT IN ?)", []any{args}, nil

	case *vectordb.NumericRangeCondition:
		var (
			parts = []string{col + " IS NOT NULL"}
			args  []any
		)
		add := func(op string, bound *float64) {
			if bound != nil {
				parts = append(parts, col+" "+op+" ?")
				args = append(args, *bound)
			}
		}
		add(">", cond.Range.Gt)
		add(">=", cond.Range.Gte)
		add("<", cond.Range.Lt)
		add("<=", cond.Range.Lte)
		return "(" + strings.Join(parts, " AND ") + ")", args, nil

	case *vectordb.IsNullCondition:
		if cond.IsNull {
			return "(" + col + " IS NULL)", nil, nil
		}
		return "(" + col + " IS NOT NULL)", nil, nil

	default:
		return "", nil, fmt.Errorf("pgvector: unsupported filter condition %T", c)
	}
}

// sqlArg converts a filter value into a driver argument. Integral numbers
// are sent as integers so they compare against integer columns.
func sqlArg(v vectordb.Value) (any, error) {
	switch v.Kind() {
	case vectordb.KindString:
		s, _ := v.AsString()
		return s, nil
	case vectordb.KindBool:
		b, _ := v.AsBool()
		return b, nil
	case vectordb.KindNumber:
		n, _ := v.AsNumber()
		if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
			return int64(n), nil
		}
		return n, nil
	default:
		return nil, fmt.Errorf("%w: cannot compare against %s value", ErrInvalidData, v.Kind())
	}
}

func sqlArgs(values []any) ([]any, error) {
	out := make([]any, 0, len(values))
	for _, x := range values {
		arg, err := sqlArg(vectordb.ValueOf(x))
		if err != nil {
			return nil, err
		}
		out = append(out, arg)
	}
	return out, nil
}
