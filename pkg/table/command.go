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

// Command is a user interaction applied through Table.Dispatch.
type Command interface {
	command()
}

// SearchCmd replaces the search query.
type SearchCmd struct {
	Query string
}

// FilterCmd replaces the chosen values of the filter with the given ID.
// No values clears the filter.
type FilterCmd struct {
	ID     string
	Values []string
}

// SortCmd sorts by a column index of Config.Columns.
type SortCmd struct {
	Column    int
	Direction SortDirection
}

// PageCmd moves to a 1-based page. PerPage < 1 keeps the current size.
type PageCmd struct {
	Page    int
	PerPage int
}

// PerPageCmd changes the page size keeping the first item of the current
// page in view.
type PerPageCmd struct {
	PerPage int
}

// SelectCmd toggles the row at a page-relative index, or the header
// checkbox when All is set.
type SelectCmd struct {
	Row      int
	All      bool
	Selected bool
}

// SelectionMode is a header dropdown choice.
type SelectionMode string

const (
	// SelectNone clears every selection.
	SelectNone SelectionMode = "none"
	// SelectPage selects the rows of the current page.
	SelectPage SelectionMode = "page"
	// SelectAll selects every item that passes the search filter.
	SelectAll SelectionMode = "all"
)

// SelectionCmd applies a header dropdown choice.
type SelectionCmd struct {
	Mode SelectionMode
}

// SelectKeysCmd selects or deselects items by key. Unknown keys are
// ignored.
type SelectKeysCmd struct {
	Keys     []string
	Selected bool
}

// SetItemsCmd replaces the item list. Selections are kept for keys that
// are still present.
type SetItemsCmd[T any] struct {
	Items []T
}

// ActionKind tells which action group an ActionCmd targets.
type ActionKind string

const (
	// TableActionKind targets Config.TableActions.
	TableActionKind ActionKind = "table"
	// BulkActionKind targets Config.BulkActions.
	BulkActionKind ActionKind = "bulk"
	// RowActionKind targets Config.RowActions.
	RowActionKind ActionKind = "row"
)

// ActionCmd invokes a caller supplied action. Row is only used for row
// actions and is relative to the current page.
type ActionCmd struct {
	Kind ActionKind
	ID   string
	Row  int
}

func (SearchCmd) command()      {}
func (FilterCmd) command()      {}
func (SortCmd) command()        {}
func (PageCmd) command()        {}
func (PerPageCmd) command()     {}
func (SelectCmd) command()      {}
func (SelectionCmd) command()   {}
func (SelectKeysCmd) command()  {}
func (SetItemsCmd[T]) command() {}
func (ActionCmd) command()      {}
