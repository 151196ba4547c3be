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

import (
	"encoding/json"
	"fmt"
)

// Row is one rendered row of the current page.
type Row[T any] struct {
	Key      string   `json:"key" yaml:"key"`
	Item     T        `json:"item" yaml:"item"`
	Cells    []string `json:"cells" yaml:"cells"`
	Selected bool     `json:"selected" yaml:"selected"`
}

// MarshalYAML encodes the item through its JSON form when it has one, so
// YAML output carries the same fields as JSON output.
func (r Row[T]) MarshalYAML() (any, error) {
	item := any(r.Item)
	if m, ok := any(&r.Item).(json.Marshaler); ok {
		b, err := m.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to encode row %s: %w", r.Key, err)
		}
		var generic any
		if err := json.Unmarshal(b, &generic); err != nil {
			return nil, fmt.Errorf("failed to decode row %s: %w", r.Key, err)
		}
		item = generic
	}
	return struct {
		Key      string   `yaml:"key"`
		Item     any      `yaml:"item"`
		Cells    []string `yaml:"cells"`
		Selected bool     `yaml:"selected"`
	}{r.Key, item, r.Cells, r.Selected}, nil
}

// FilterInfo describes a filter, its options and their match counts over
// all items.
type FilterInfo struct {
	ID      string             `json:"id" yaml:"id"`
	Label   string             `json:"label" yaml:"label"`
	Options []FilterOptionInfo `json:"options" yaml:"options"`
}

// FilterOptionInfo is one filter option as shown in a view.
type FilterOptionInfo struct {
	Label    string `json:"label" yaml:"label"`
	Value    string `json:"value" yaml:"value"`
	Count    int    `json:"count" yaml:"count"`
	Selected bool   `json:"selected" yaml:"selected"`
}

// ActionInfo describes an available action without its callback.
type ActionInfo struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// View is a read-only snapshot of the table after a command. Callers must
// not modify its slices.
type View[T any] struct {
	Headers []string `json:"headers" yaml:"headers"`
	Rows    []Row[T] `json:"rows" yaml:"rows"`

	Page      int `json:"page" yaml:"page"`
	PerPage   int `json:"perPage" yaml:"perPage"`
	PageCount int `json:"pageCount" yaml:"pageCount"`

	// ItemCount is the number of items passing the filters and the search.
	ItemCount int `json:"itemCount" yaml:"itemCount"`
	// TotalCount is the number of items before filtering.
	TotalCount int `json:"totalCount" yaml:"totalCount"`

	Search        string    `json:"search,omitempty" yaml:"search,omitempty"`
	Sort          *SortSpec `json:"sort,omitempty" yaml:"sort,omitempty"`
	SelectedCount int       `json:"selectedCount" yaml:"selectedCount"`

	Empty        bool   `json:"empty" yaml:"empty"`
	EmptyMessage string `json:"emptyMessage,omitempty" yaml:"emptyMessage,omitempty"`

	// DuplicateKeys lists keys returned by KeyFn for more than one item.
	DuplicateKeys []string `json:"duplicateKeys,omitempty" yaml:"duplicateKeys,omitempty"`

	Filters []FilterInfo `json:"filters,omitempty" yaml:"filters,omitempty"`

	TableActions []ActionInfo `json:"tableActions,omitempty" yaml:"tableActions,omitempty"`
	BulkActions  []ActionInfo `json:"bulkActions,omitempty" yaml:"bulkActions,omitempty"`
	RowActions   []ActionInfo `json:"rowActions,omitempty" yaml:"rowActions,omitempty"`
}

// TableHeader returns the column headers.
func (v *View[T]) TableHeader() []string {
	return v.Headers
}

// TableRows returns the cell text of every rendered row.
func (v *View[T]) TableRows() [][]string {
	out := make([][]string, len(v.Rows))
	for i, r := range v.Rows {
		out[i] = r.Cells
	}
	return out
}

// TableCaption summarizes paging and selection, or returns the empty
// message when nothing matched. A page past the end, which the table only
// steps back from one page per evaluation, is reported as such.
func (v *View[T]) TableCaption() string {
	if v.Empty {
		return v.EmptyMessage
	}
	var caption string
	if v.Page > v.PageCount {
		caption = fmt.Sprintf("No rows on page %d, last page is %d, %d of %d items", v.Page, v.PageCount, v.ItemCount, v.TotalCount)
	} else {
		caption = fmt.Sprintf("Page %d of %d, %d of %d items", v.Page, v.PageCount, v.ItemCount, v.TotalCount)
	}
	if v.SelectedCount > 0 {
		caption += fmt.Sprintf(", %d selected", v.SelectedCount)
	}
	return caption
}

// SelectedKeys returns the keys of the selected rows on this page.
func (v *View[T]) SelectedKeys() []string {
	var keys []string
	for _, r := range v.Rows {
		if r.Selected {
			keys = append(keys, r.Key)
		}
	}
	return keys
}
