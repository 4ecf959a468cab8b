package tableindex

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Aleph-Alpha/vectorindex/v1/vectordb"
)

// Config holds the search settings of an index. Empty strings and zero
// numbers leave the corresponding setting absent, so the store default
// applies.
type Config struct {
	IDField      string `yaml:"id_field" env:"VECTORINDEX_ID_FIELD"`
	DistanceType string `yaml:"distance_type" env:"VECTORINDEX_DISTANCE_TYPE"`
	SearchType   string `yaml:"search_type" env:"VECTORINDEX_SEARCH_TYPE"`
	Nprobes      int    `yaml:"nprobes" env:"VECTORINDEX_NPROBES"`
	RefineFactor uint32 `yaml:"refine_factor" env:"VECTORINDEX_REFINE_FACTOR"`
	// PostFilter is "true", "false" or empty.
	PostFilter string `yaml:"post_filter" env:"VECTORINDEX_POST_FILTER"`
	Column     string `yaml:"column" env:"VECTORINDEX_COLUMN"`
	// Filter is a JSON filter set applied to every query.
	Filter string `yaml:"filter" env:"VECTORINDEX_FILTER"`
}

// NewConfig reads the configuration from VECTORINDEX_* environment variables.
func NewConfig() *Config {
	cfg := &Config{
		IDField:      os.Getenv("VECTORINDEX_ID_FIELD"),
		DistanceType: os.Getenv("VECTORINDEX_DISTANCE_TYPE"),
		SearchType:   os.Getenv("VECTORINDEX_SEARCH_TYPE"),
		PostFilter:   os.Getenv("VECTORINDEX_POST_FILTER"),
		Column:       os.Getenv("VECTORINDEX_COLUMN"),
		Filter:       os.Getenv("VECTORINDEX_FILTER"),
	}
	if cfg.IDField == "" {
		cfg.IDField = "id"
	}
	if v, err := strconv.Atoi(os.Getenv("VECTORINDEX_NPROBES")); err == nil {
		cfg.Nprobes = v
	}
	if v, err := strconv.ParseUint(os.Getenv("VECTORINDEX_REFINE_FACTOR"), 10, 32); err == nil {
		cfg.RefineFactor = uint32(v)
	}
	return cfg
}

// SearchParams converts the configuration into search parameters.
func (c *Config) SearchParams() (vectordb.SearchParams, error) {
	p := vectordb.DefaultSearchParams()

	if c.DistanceType != "" {
		d, err := vectordb.ParseDistanceType(c.DistanceType)
		if err != nil {
			return p, err
		}
		p = p.WithDistanceType(d)
	}
	if c.SearchType != "" {
		s, err := vectordb.ParseSearchType(c.SearchType)
		if err != nil {
			return p, err
		}
		p = p.WithSearchType(s)
	}
	if c.Nprobes != 0 {
		p = p.WithNprobes(c.Nprobes)
	}
	if c.RefineFactor != 0 {
		p = p.WithRefineFactor(c.RefineFactor)
	}
	if c.PostFilter != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(c.PostFilter))
		if err != nil {
			return p, fmt.Errorf("invalid post filter flag %q: %w", c.PostFilter, err)
		}
		p = p.WithPostFilter(b)
	}
	if c.Column != "" {
		p = p.WithColumn(c.Column)
	}
	return p, p.Validate()
}

// FilterSet parses the configured filter. It returns nil when none is set.
func (c *Config) FilterSet() (*vectordb.FilterSet, error) {
	if strings.TrimSpace(c.Filter) == "" {
		return nil, nil
	}
	fs, err := vectordb.ParseFilterSet([]byte(c.Filter))
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	return fs, nil
}
