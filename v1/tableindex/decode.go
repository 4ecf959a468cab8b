package tableindex

import "github.com/Aleph-Alpha/vectorindex/v1/vectordb"

// numberOrZero reads a numeric column, falling back to 0 for anything else.
func numberOrZero(row vectordb.Row, column string) float64 {
	n, ok := row[column].AsNumber()
	if !ok {
		return 0
	}
	return n
}

// stringOr reads a string column, falling back to fallback for anything else.
func stringOr(row vectordb.Row, column, fallback string) string {
	s, ok := row[column].AsString()
	if !ok {
		return fallback
	}
	return s
}

func clampLimit(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// truncate guards the result length against stores that return more rows
// than asked for.
func truncate(rows []vectordb.Row, n int) []vectordb.Row {
	n = clampLimit(n)
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}
