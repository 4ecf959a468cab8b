package pgvector

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/Aleph-Alpha/vectorindex/v1/logger"
	"github.com/Aleph-Alpha/vectorindex/v1/vectordb"
)

// DBProvider hands out the current database handle. *Postgres implements
// it, so a Table keeps working across reconnects.
type DBProvider interface {
	DB() *gorm.DB
}

// Table exposes one Postgres table with pgvector columns as a
// vectordb.Table. Columns of type vector, halfvec and bit are vector
// columns, every other column is scalar.
type Table struct {
	db     DBProvider
	name   string
	logger logger.Logger
}

var (
	_ vectordb.Table    = (*Table)(nil)
	_ vectordb.Executor = (*Table)(nil)
)

// TableOption customizes a Table.
type TableOption func(*Table)

// WithTableLogger sets the logger used for query diagnostics.
func WithTableLogger(l logger.Logger) TableOption {
	return func(t *Table) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTable returns a table over name, which may be schema qualified.
func NewTable(db DBProvider, name string, opts ...TableOption) (*Table, error) {
	if db == nil {
		return nil, fmt.Errorf("pgvector: database is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("pgvector: table name cannot be empty")
	}

	t := &Table{db: db, name: name, logger: logger.NewNop()}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Schema reads the table columns from the catalog in declaration order.
func (t *Table) Schema(ctx context.Context) (vectordb.Schema, error) {
	cols, err := t.columns(t.db.DB().WithContext(ctx))
	if err != nil {
		return vectordb.Schema{}, err
	}
	return schemaOf(cols), nil
}

// VectorSearch starts a typed nearest-neighbor query.
func (t *Table) VectorSearch(vector []float32) (*vectordb.VectorQuery, error) {
	return vectordb.NewVectorQuery(t, vectordb.EntryVectorSearch, vector)
}

// Query starts a plain query.
func (t *Table) Query() *vectordb.Query {
	return vectordb.NewQuery(t)
}

// Execute implements vectordb.Executor. The catalog lookup, the session
// settings and the search run in one transaction.
func (t *Table) Execute(ctx context.Context, plan vectordb.QueryPlan) ([]vectordb.Row, error) {
	limit := plan.EffectiveLimit()
	if limit == 0 {
		return []vectordb.Row{}, nil
	}

	var rows []vectordb.Row
	err := t.db.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cols, err := t.columns(tx)
		if err != nil {
			return err
		}

		target, err := t.resolveColumn(cols, plan.Column)
		if err != nil {
			return err
		}
		projection, err := t.projection(cols, plan.Columns)
		if err != nil {
			return err
		}

		stmt, err := buildSearch(t.name, target, projection, plan, limit)
		if err != nil {
			return err
		}

		for _, setting := range searchSettings(plan) {
			if err := tx.Exec(setting).Error; err != nil {
				return fmt.Errorf("pgvector: %s: %w", setting, TranslateError(err))
			}
		}

		t.logger.Debug("pgvector search", nil, map[string]interface{}{
			"table":  t.name,
			"column": target.Name,
			"sql":    stmt.SQL,
		})

		var raw []map[string]interface{}
		if err := tx.Raw(stmt.SQL, stmt.Args...).Scan(&raw).Error; err != nil {
			return fmt.Errorf("pgvector: search on %q failed: %w", t.name, TranslateError(err))
		}

		rows, err = toRows(raw, projection)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type catalogEntry struct {
	Name   string `gorm:"column:name"`
	UDT    string `gorm:"column:udt"`
	Typmod int    `gorm:"column:typmod"`
}

// columns reads the catalog entry of the table.
func (t *Table) columns(db *gorm.DB) ([]column, error) {
	schema, table := splitTableName(t.name)

	query := `SELECT c.column_name AS name, c.udt_name AS udt, a.atttypmod AS typmod
FROM information_schema.columns c
JOIN pg_attribute a ON a.attrelid = to_regclass(?) AND a.attname = c.column_name
WHERE c.table_name = ? AND c.table_schema = `
	args := []any{quoteTable(t.name), table}
	if schema == "" {
		query += "current_schema()"
	} else {
		query += "?"
		args = append(args, schema)
	}
	query += " ORDER BY c.ordinal_position"

	var entries []catalogEntry
	if err := db.Raw(query, args...).Scan(&entries).Error; err != nil {
		return nil, fmt.Errorf("pgvector: failed to read columns of %q: %w", t.name, TranslateError(err))
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, t.name)
	}

	cols := make([]column, len(entries))
	for i, e := range entries {
		cols[i] = column{Name: e.Name, UDT: e.UDT, Dim: -1}
		if cols[i].isVector() && e.Typmod > 0 {
			cols[i].Dim = e.Typmod
		}
	}
	return cols, nil
}

func (t *Table) resolveColumn(cols []column, name string) (column, error) {
	if name != "" {
		for _, c := range cols {
			if c.Name != name {
				continue
			}
			if !c.isVector() {
				return column{}, fmt.Errorf("pgvector: column %q is not a vector column", name)
			}
			return c, nil
		}
		return column{}, fmt.Errorf("%w: %q in table %q", ErrColumnNotFound, name, t.name)
	}

	var vectors []column
	for _, c := range cols {
		if c.isVector() {
			vectors = append(vectors, c)
		}
	}
	switch len(vectors) {
	case 0:
		return column{}, fmt.Errorf("pgvector: table %q has no vector column", t.name)
	case 1:
		return vectors[0], nil
	default:
		return column{}, fmt.Errorf("pgvector: table %q has %d vector columns, a column must be set", t.name, len(vectors))
	}
}

// projection resolves the requested columns. No request means every scalar
// column.
func (t *Table) projection(cols []column, requested []string) ([]column, error) {
	if len(requested) == 0 {
		out := make([]column, 0, len(cols))
		for _, c := range cols {
			if !c.isVector() {
				out = append(out, c)
			}
		}
		return out, nil
	}

	byName := make(map[string]column, len(cols))
	for _, c := range cols {
		byName[c.Name] = c
	}
	out := make([]column, 0, len(requested))
	for _, name := range requested {
		c, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q in table %q", ErrColumnNotFound, name, t.name)
		}
		out = append(out, c)
	}
	return out, nil
}

// ── Rows ─────────────────────────────────────────────────────────────────────

func schemaOf(cols []column) vectordb.Schema {
	fields := make([]vectordb.Field, len(cols))
	for i, c := range cols {
		fields[i] = vectordb.Field{Name: c.Name, Type: c.fieldType()}
		if c.isVector() && c.Dim > 0 {
			fields[i].Dimension = c.Dim
		}
	}
	return vectordb.NewSchema(fields...)
}

// toRows converts scanned records, decoding the columns that were read as
// text back into vectors and JSON documents.
func toRows(raw []map[string]interface{}, projection []column) ([]vectordb.Row, error) {
	rows := make([]vectordb.Row, 0, len(raw))
	for _, rec := range raw {
		row := vectordb.RowFromMap(rec)
		for _, c := range projection {
			text, ok := row[c.Name].AsString()
			if !ok {
				continue
			}
			switch c.UDT {
			case "vector", "halfvec":
				vec, err := parseVector(text)
				if err != nil {
					return nil, fmt.Errorf("pgvector: column %q: %w", c.Name, err)
				}
				row[c.Name] = vectordb.ValueOf(vec)
			case "bit":
				row[c.Name] = vectordb.ValueOf(parseBits(text))
			case "json", "jsonb":
				var doc any
				if err := json.Unmarshal([]byte(text), &doc); err != nil {
					return nil, fmt.Errorf("pgvector: column %q: %w", c.Name, err)
				}
				row[c.Name] = vectordb.ValueOf(doc)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseVector parses the text form of a vector, "[1,2.5,3]".
func parseVector(text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
		return nil, fmt.Errorf("malformed vector %q", text)
	}
	body := strings.TrimSpace(text[1 : len(text)-1])
	if body == "" {
		return []float32{}, nil
	}

	parts := strings.Split(body, ",")
	out := make([]float32, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("malformed vector element %q: %w", p, err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseBits parses the text form of a bit string, "0101".
func parseBits(text string) []float32 {
	out := make([]float32, 0, len(text))
	for _, r := range text {
		switch r {
		case '1':
			out = append(out, 1)
		case '0':
			out = append(out, 0)
		}
	}
	return out
}

func splitTableName(name string) (schema, table string) {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}
