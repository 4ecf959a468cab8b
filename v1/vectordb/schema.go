package vectordb

// FieldType is the logical type of a table column.
type FieldType int

const (
	FieldTypeOther FieldType = iota
	FieldTypeString
	FieldTypeInt
	FieldTypeFloat
	FieldTypeBool
	FieldTypeVector
	FieldTypeJSON
)

func (t FieldType) String() string {
	switch t {
	case FieldTypeString:
		return "string"
	case FieldTypeInt:
		return "int"
	case FieldTypeFloat:
		return "float"
	case FieldTypeBool:
		return "bool"
	case FieldTypeVector:
		return "vector"
	case FieldTypeJSON:
		return "json"
	default:
		return "other"
	}
}

// Field describes one column of a table.
type Field struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`

	// Dimension is the vector length for vector columns, zero otherwise.
	Dimension int `json:"dimension,omitempty"`
}

// IsVector reports whether the column stores embeddings.
func (f Field) IsVector() bool { return f.Type == FieldTypeVector }

// Schema is the ordered list of columns of a table.
type Schema struct {
	Fields []Field `json:"fields"`
}

// NewSchema builds a schema from the given fields, in order.
func NewSchema(fields ...Field) Schema {
	return Schema{Fields: fields}
}

// Field looks up a column by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// VectorColumns returns the names of all vector columns in declaration order.
func (s Schema) VectorColumns() []string {
	var out []string
	for _, f := range s.Fields {
		if f.IsVector() {
			out = append(out, f.Name)
		}
	}
	return out
}

// ScalarColumns returns the names of all non-vector columns in declaration
// order. This is the projection used when payload rows are requested.
func (s Schema) ScalarColumns() []string {
	out := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		if !f.IsVector() {
			out = append(out, f.Name)
		}
	}
	return out
}
