package vectordb

import (
	"errors"
	"fmt"
	"strings"
)

// SearchType selects between exhaustive and index-assisted search.
type SearchType int

const (
	// SearchTypeFlat scans every row and ignores any vector index.
	SearchTypeFlat SearchType = iota
	// SearchTypeApproximate uses the vector index when one exists.
	SearchTypeApproximate
)

// SearchTypeExact is an alias for SearchTypeFlat.
const SearchTypeExact = SearchTypeFlat

func (s SearchType) String() string {
	switch s {
	case SearchTypeFlat:
		return "flat"
	case SearchTypeApproximate:
		return "approximate"
	default:
		return fmt.Sprintf("search(%d)", int(s))
	}
}

// ParseSearchType parses the textual search strategy names used in configuration.
func ParseSearchType(s string) (SearchType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flat", "exact", "knn":
		return SearchTypeFlat, nil
	case "approximate", "ann":
		return SearchTypeApproximate, nil
	}
	return 0, fmt.Errorf("vectordb: unknown search type %q", s)
}

// SearchParams tunes every query an index issues. It is an immutable value:
// the With* methods return an updated copy and leave the receiver untouched,
// so one SearchParams can be shared between goroutines.
//
// Every setting is optional. When absent, the store default applies:
//   - distance type: L2
//   - search type: the vector index is used when present
//   - nprobes, refine factor: store defaults, only used by approximate search
//   - post filter: scalar filters are applied before the vector search
//   - column: the only vector column of the table
type SearchParams struct {
	distanceType *DistanceType
	searchType   *SearchType
	nprobes      *int
	refineFactor *uint32
	postFilter   *bool
	column       *string
}

// DefaultSearchParams returns a configuration with nothing set.
func DefaultSearchParams() SearchParams {
	return SearchParams{}
}

// WithDistanceType sets the metric. It must match the metric the index was
// built with, otherwise results are undefined.
func (p SearchParams) WithDistanceType(d DistanceType) SearchParams {
	p.distanceType = &d
	return p
}

// WithSearchType sets the search strategy.
func (p SearchParams) WithSearchType(s SearchType) SearchParams {
	p.searchType = &s
	return p
}

// WithNprobes sets how many index partitions an approximate search visits.
// More probes trade latency for recall.
func (p SearchParams) WithNprobes(n int) SearchParams {
	p.nprobes = &n
	return p
}

// WithRefineFactor over-fetches refineFactor×limit candidates from the index
// and re-ranks them by exact distance.
func (p SearchParams) WithRefineFactor(f uint32) SearchParams {
	p.refineFactor = &f
	return p
}

// WithPostFilter chooses whether scalar filters run after the vector search.
func (p SearchParams) WithPostFilter(enabled bool) SearchParams {
	p.postFilter = &enabled
	return p
}

// WithColumn names the vector column to search. Only needed when the table
// has more than one vector column.
func (p SearchParams) WithColumn(name string) SearchParams {
	p.column = &name
	return p
}

func (p SearchParams) DistanceType() (DistanceType, bool) {
	if p.distanceType == nil {
		return 0, false
	}
	return *p.distanceType, true
}

func (p SearchParams) SearchType() (SearchType, bool) {
	if p.searchType == nil {
		return 0, false
	}
	return *p.searchType, true
}

func (p SearchParams) Nprobes() (int, bool) {
	if p.nprobes == nil {
		return 0, false
	}
	return *p.nprobes, true
}

func (p SearchParams) RefineFactor() (uint32, bool) {
	if p.refineFactor == nil {
		return 0, false
	}
	return *p.refineFactor, true
}

func (p SearchParams) PostFilter() (bool, bool) {
	if p.postFilter == nil {
		return false, false
	}
	return *p.postFilter, true
}

func (p SearchParams) Column() (string, bool) {
	if p.column == nil {
		return "", false
	}
	return *p.column, true
}

// Validate reports settings no store can honour.
func (p SearchParams) Validate() error {
	var errs []error
	if n, ok := p.Nprobes(); ok && n <= 0 {
		errs = append(errs, fmt.Errorf("nprobes must be positive, got %d", n))
	}
	if f, ok := p.RefineFactor(); ok && f == 0 {
		errs = append(errs, errors.New("refine factor must be positive"))
	}
	if c, ok := p.Column(); ok && strings.TrimSpace(c) == "" {
		errs = append(errs, errors.New("column must not be empty"))
	}
	if d, ok := p.DistanceType(); ok && (d < DistanceL2 || d > DistanceHamming) {
		errs = append(errs, fmt.Errorf("unknown distance type %d", int(d)))
	}
	if s, ok := p.SearchType(); ok && s != SearchTypeFlat && s != SearchTypeApproximate {
		errs = append(errs, fmt.Errorf("unknown search type %d", int(s)))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("vectordb: invalid search params: %w", err)
	}
	return nil
}

func (p SearchParams) String() string {
	var parts []string
	if d, ok := p.DistanceType(); ok {
		parts = append(parts, "distance="+d.String())
	}
	if s, ok := p.SearchType(); ok {
		parts = append(parts, "search="+s.String())
	}
	if n, ok := p.Nprobes(); ok {
		parts = append(parts, fmt.Sprintf("nprobes=%d", n))
	}
	if f, ok := p.RefineFactor(); ok {
		parts = append(parts, fmt.Sprintf("refine=%d", f))
	}
	if pf, ok := p.PostFilter(); ok {
		parts = append(parts, fmt.Sprintf("postfilter=%t", pf))
	}
	if c, ok := p.Column(); ok {
		parts = append(parts, "column="+c)
	}
	return "SearchParams{" + strings.Join(parts, " ") + "}"
}
