// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package table

const (
	// DefaultPerPage is the page size used when Config.PerPage is not set.
	DefaultPerPage = 10

	// DefaultSearchThreshold is the maximum fuzzy score accepted as a match.
	// 0 requires an exact substring, 1 matches nearly anything.
	DefaultSearchThreshold = 0.3

	// DefaultEmptyMessage is shown when no item passes the search filter.
	DefaultEmptyMessage = "No results found"
)

// SortDirection is the ordering applied after the ascending sort.
type SortDirection string

const (
	// Ascending keeps the comparator order.
	Ascending SortDirection = "asc"
	// Descending reverses the comparator order.
	Descending SortDirection = "desc"
)

// IsValid reports whether d is a known direction.
func (d SortDirection) IsValid() bool {
	return d == Ascending || d == Descending
}

// ParseSortDirection maps user input onto a SortDirection. Empty input
// means Ascending.
func ParseSortDirection(s string) (SortDirection, bool) {
	switch s {
	case "", "asc", "ascending":
		return Ascending, true
	case "desc", "descending":
		return Descending, true
	default:
		return "", false
	}
}

// SortSpec identifies the active sort column and direction.
type SortSpec struct {
	Column    int           `json:"column" yaml:"column"`
	Direction SortDirection `json:"direction" yaml:"direction"`
}

func (s *SortSpec) clone() *SortSpec {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func (s *SortSpec) equal(o *SortSpec) bool {
	if s == nil || o == nil {
		return s == o
	}
	return *s == *o
}

// Column declares how one field of T is displayed, ordered and searched.
//
// Each concern has a function form and a path form. The path form is a
// gjson path evaluated against the JSON encoding of the item, e.g.
// "metadata.name" or "status.version.kubernetes". When both are set the
// function wins.
type Column[T any] struct {
	// Header is the pre-localized column title.
	Header string

	// Cell renders the cell text.
	Cell func(T) string
	// CellPath is used when Cell is nil.
	CellPath string

	// Sort is an ascending comparator. The column is sortable when Sort or
	// SortPath is set.
	Sort func(a, b T) int
	// SortPath compares the values found at the path with CompareValues.
	SortPath string

	// Search returns the text matched by fuzzy search. The column is
	// searchable when Search or SearchPath is set.
	Search func(T) string
	// SearchPath is used when Search is nil.
	SearchPath string

	// Export overrides the cell text in CSV exports.
	Export func(T) string
	// DisableExport leaves the column out of CSV exports.
	DisableExport bool
}

func (c *Column[T]) sortable() bool {
	return c.Sort != nil || c.SortPath != ""
}

// TableAction is scoped to the whole table, e.g. "create".
type TableAction struct {
	ID    string
	Title string
	Click func() error
}

// BulkAction runs once against every selected item.
type BulkAction[T any] struct {
	ID    string
	Title string
	Click func(items []T) error
	// IsDisabled, when set, is consulted with the current selection before
	// Click runs.
	IsDisabled func(items []T) bool
}

// RowAction runs against the single item of one rendered row.
type RowAction[T any] struct {
	ID    string
	Title string
	Click func(item T) error
}

// FilterOption is one value offered by a Filter.
type FilterOption struct {
	Label string
	Value string
}

// Filter is a facet applied before search, e.g. a status or provider
// dropdown. An item passes a filter when Fn accepts it for the chosen
// values, and passes the table's filters when it passes every filter that
// has values chosen.
type Filter[T any] struct {
	ID      string
	Label   string
	Options []FilterOption
	// Fn reports whether item matches any of values.
	Fn func(values []string, item T) bool
}

func (f *Filter[T]) hasOption(value string) bool {
	for _, o := range f.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// SortFunc orders items for the given column index in ascending order.
// Implementations may sort in place and must return the ordered slice.
type SortFunc[T any] func(items []T, column int) []T

// Config is everything a Table needs. Columns and KeyFn are required.
type Config[T any] struct {
	Columns []Column[T]

	// KeyFn must return a unique, stable key per logical item. Items that
	// share a key share one selection entry.
	KeyFn func(T) string

	// SearchKeys are additional gjson paths searched next to the
	// searchable columns.
	SearchKeys []string

	// SortFn replaces the column comparators when set.
	SortFn SortFunc[T]

	Filters []Filter[T]

	TableActions []TableAction
	BulkActions  []BulkAction[T]
	RowActions   []RowAction[T]

	// DefaultSort is applied on construction and whenever the search is
	// cleared.
	DefaultSort *SortSpec

	PerPage         int
	SearchThreshold float64
	EmptyMessage    string
}

func (c *Config[T]) withDefaults() {
	if c.PerPage < 1 {
		c.PerPage = DefaultPerPage
	}
	if c.SearchThreshold <= 0 {
		c.SearchThreshold = DefaultSearchThreshold
	}
	if c.EmptyMessage == "" {
		c.EmptyMessage = DefaultEmptyMessage
	}
}

// Stats counts how often each pipeline stage was recomputed.
type Stats struct {
	Index  int `json:"index"`
	Facet  int `json:"facet"`
	Filter int `json:"filter"`
	Sort   int `json:"sort"`
	Page   int `json:"page"`
	Rows   int `json:"rows"`
}
