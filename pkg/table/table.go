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
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"golang.org/x/text/cases"

	cnserrors "github.com/NVIDIA/cluster-console/pkg/errors"
)

// Table holds the interactive state of one table: the items, the chosen
// filter values, the search query, the sort, the page and the selection.
// All views are derived from that state by a memoized pipeline (filters,
// search, sort, page, rows).
//
// A Table is not safe for concurrent use. It never mutates the items it is
// given; callers replace them with SetItemsCmd.
type Table[T any] struct {
	cfg       Config[T]
	needsJSON bool
	folder    cases.Caser

	items      []T
	itemsGen   uint64
	keys       []string
	byKey      map[string][]int
	duplicates []string

	filters    map[string][]string
	filtersGen uint64

	search  string
	sort    *SortSpec
	page    int
	perPage int

	selected map[string]bool
	selGen   uint64

	index  indexStage
	facet  facetStage
	filter filterStage
	sorted sortStage
	paged  pageStage
	rows   rowStage[T]

	stats Stats
}

// New validates cfg and returns a Table over items, on page 1 with
// cfg.DefaultSort applied.
func New[T any](cfg Config[T], items []T) (*Table[T], error) {
	if cfg.KeyFn == nil {
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "table key function is required")
	}
	if len(cfg.Columns) == 0 {
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "table requires at least one column")
	}
	cfg.withDefaults()

	t := &Table[T]{
		cfg:      cfg,
		folder:   cases.Fold(),
		selected: make(map[string]bool),
		filters:  make(map[string][]string),
		page:     1,
		perPage:  cfg.PerPage,
	}

	seen := make(map[string]bool, len(cfg.Filters))
	for _, f := range cfg.Filters {
		if f.ID == "" || f.Fn == nil || seen[f.ID] {
			return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
				"table filters need a unique ID and a match function", map[string]any{"filter": f.ID})
		}
		seen[f.ID] = true
	}

	if cfg.DefaultSort != nil {
		if err := t.checkSort(*cfg.DefaultSort); err != nil {
			return nil, fmt.Errorf("invalid default sort: %w", err)
		}
		t.sort = cfg.DefaultSort.clone()
	}

	t.needsJSON = len(cfg.SearchKeys) > 0
	for _, c := range cfg.Columns {
		if c.CellPath != "" || c.SortPath != "" || c.SearchPath != "" {
			t.needsJSON = true
		}
	}

	t.setItems(items)
	return t, nil
}

// Dispatch applies cmd and returns the resulting view. Errors returned by
// action callbacks are passed through unchanged; invalid commands yield an
// INVALID_REQUEST structured error. On error the state is left as it was
// before the failing step.
func (t *Table[T]) Dispatch(cmd Command) (*View[T], error) {
	if err := t.apply(cmd); err != nil {
		return nil, err
	}
	return t.View(), nil
}

// View evaluates the pipeline and returns a snapshot of the current state.
func (t *Table[T]) View() *View[T] {
	t.evaluate()

	v := &View[T]{
		Headers:       t.headers(),
		Rows:          t.rows.out,
		Page:          t.page,
		PerPage:       t.perPage,
		PageCount:     pageCount(len(t.sorted.out), t.perPage),
		ItemCount:     len(t.sorted.out),
		TotalCount:    len(t.items),
		Search:        t.search,
		Sort:          t.sort.clone(),
		SelectedCount: len(t.selected),
		Empty:         len(t.sorted.out) == 0,
		DuplicateKeys: slices.Clone(t.duplicates),
		Filters:       t.filterInfo(),
	}
	if v.Empty {
		v.EmptyMessage = t.cfg.EmptyMessage
	}

	selected := t.SelectedItems()
	for _, a := range t.cfg.TableActions {
		v.TableActions = append(v.TableActions, ActionInfo{ID: a.ID, Title: a.Title})
	}
	for _, a := range t.cfg.BulkActions {
		info := ActionInfo{ID: a.ID, Title: a.Title, Disabled: len(selected) == 0}
		if a.IsDisabled != nil && a.IsDisabled(selected) {
			info.Disabled = true
		}
		v.BulkActions = append(v.BulkActions, info)
	}
	for _, a := range t.cfg.RowActions {
		v.RowActions = append(v.RowActions, ActionInfo{ID: a.ID, Title: a.Title})
	}
	return v
}

// Items returns a copy of the unfiltered items in their original order.
func (t *Table[T]) Items() []T {
	return slices.Clone(t.items)
}

// SelectedItems returns the selected items from the unfiltered list, in
// original order.
func (t *Table[T]) SelectedItems() []T {
	if len(t.selected) == 0 {
		return nil
	}
	out := make([]T, 0, len(t.selected))
	for i, item := range t.items {
		if t.selected[t.keys[i]] {
			out = append(out, item)
		}
	}
	return out
}

// SelectedKeys returns the selected keys in lexical order.
func (t *Table[T]) SelectedKeys() []string {
	keys := make([]string, 0, len(t.selected))
	for k := range t.selected {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Stats returns the pipeline recomputation counters.
func (t *Table[T]) Stats() Stats {
	return t.stats
}

func (t *Table[T]) apply(cmd Command) error {
	switch c := cmd.(type) {
	case FilterCmd:
		return t.setFilter(c.ID, c.Values)
	case SearchCmd:
		t.setSearch(c.Query)
	case SortCmd:
		dir := c.Direction
		if dir == "" {
			dir = Ascending
		}
		spec := SortSpec{Column: c.Column, Direction: dir}
		if err := t.checkSort(spec); err != nil {
			return err
		}
		t.sort = &spec
	case PageCmd:
		if c.PerPage >= 1 {
			t.perPage = c.PerPage
		}
		t.page = max(c.Page, 1)
	case PerPageCmd:
		if c.PerPage < 1 {
			return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
				"page size must be at least 1", map[string]any{"perPage": c.PerPage})
		}
		t.page = ((t.page-1)*t.perPage)/c.PerPage + 1
		t.perPage = c.PerPage
	case SelectCmd:
		if c.All {
			t.toggleAll()
			return nil
		}
		return t.selectRow(c.Row, c.Selected)
	case SelectionCmd:
		return t.applySelection(c.Mode)
	case SelectKeysCmd:
		t.selectKeys(c.Keys, c.Selected)
	case SetItemsCmd[T]:
		t.setItems(c.Items)
	case ActionCmd:
		return t.invoke(c)
	default:
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"unsupported table command", map[string]any{"command": fmt.Sprintf("%T", cmd)})
	}
	return nil
}

func (t *Table[T]) checkSort(spec SortSpec) error {
	if spec.Column < 0 || spec.Column >= len(t.cfg.Columns) {
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"sort column out of range", map[string]any{"column": spec.Column})
	}
	if !spec.Direction.IsValid() {
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"invalid sort direction", map[string]any{"direction": string(spec.Direction)})
	}
	if t.cfg.SortFn == nil && !t.cfg.Columns[spec.Column].sortable() {
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"column is not sortable", map[string]any{
				"column": spec.Column,
				"header": t.cfg.Columns[spec.Column].Header,
			})
	}
	return nil
}

// setSearch changes the query. Entering a search drops the explicit sort
// so results come back in relevance order; clearing it restores the
// default sort.
func (t *Table[T]) setSearch(q string) {
	if q == t.search {
		return
	}
	switch {
	case q == "":
		t.sort = t.cfg.DefaultSort.clone()
	case t.search == "":
		t.sort = nil
	}
	t.search = q
	t.page = 1
}

// setFilter replaces the chosen values of one filter and returns to the
// first page. Selections are kept.
func (t *Table[T]) setFilter(id string, values []string) error {
	idx := slices.IndexFunc(t.cfg.Filters, func(f Filter[T]) bool { return f.ID == id })
	if idx < 0 {
		ids := make([]string, len(t.cfg.Filters))
		for i, f := range t.cfg.Filters {
			ids[i] = f.ID
		}
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"unknown filter", map[string]any{"filter": id, "filters": ids})
	}
	f := &t.cfg.Filters[idx]

	values = slices.Clone(values)
	slices.Sort(values)
	values = slices.Compact(values)
	for _, v := range values {
		if !f.hasOption(v) {
			return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
				"unknown filter value", map[string]any{"filter": id, "value": v})
		}
	}
	if slices.Equal(values, t.filters[id]) {
		return nil
	}

	if len(values) == 0 {
		delete(t.filters, id)
	} else {
		t.filters[id] = values
	}
	t.filtersGen++
	t.page = 1
	return nil
}

func (t *Table[T]) filterInfo() []FilterInfo {
	if len(t.cfg.Filters) == 0 {
		return nil
	}
	out := make([]FilterInfo, len(t.cfg.Filters))
	for i, f := range t.cfg.Filters {
		info := FilterInfo{ID: f.ID, Label: f.Label, Options: make([]FilterOptionInfo, len(f.Options))}
		for j, o := range f.Options {
			info.Options[j] = FilterOptionInfo{
				Label:    o.Label,
				Value:    o.Value,
				Count:    t.facet.counts[f.ID][j],
				Selected: slices.Contains(t.filters[f.ID], o.Value),
			}
		}
		out[i] = info
	}
	return out
}

func (t *Table[T]) setItems(items []T) {
	t.items = slices.Clone(items)
	t.itemsGen++
	t.keys = make([]string, len(t.items))
	t.byKey = make(map[string][]int, len(t.items))
	t.duplicates = nil

	for i, item := range t.items {
		k := t.cfg.KeyFn(item)
		t.keys[i] = k
		t.byKey[k] = append(t.byKey[k], i)
		if len(t.byKey[k]) == 2 {
			t.duplicates = append(t.duplicates, k)
		}
	}
	if len(t.duplicates) > 0 {
		slog.Warn("table items share keys, their selections are merged",
			"count", len(t.duplicates),
			"keys", t.duplicates)
	}

	pruned := false
	for k := range t.selected {
		if _, ok := t.byKey[k]; !ok {
			delete(t.selected, k)
			pruned = true
		}
	}
	if pruned {
		t.selGen++
	}
}

func (t *Table[T]) selectRow(row int, selected bool) error {
	t.evaluate()
	if row < 0 || row >= len(t.paged.out) {
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"row index out of range", map[string]any{"row": row, "rows": len(t.paged.out)})
	}
	key := t.keys[t.paged.out[row]]
	if selected {
		t.selected[key] = true
	} else {
		delete(t.selected, key)
	}
	t.selGen++
	return nil
}

// toggleAll implements the header checkbox: when every rendered row is
// already selected every filtered item is deselected, otherwise every
// filtered item is selected.
func (t *Table[T]) toggleAll() {
	t.evaluate()
	allSelected := true
	for _, idx := range t.paged.out {
		if !t.selected[t.keys[idx]] {
			allSelected = false
			break
		}
	}
	for _, idx := range t.filter.out {
		if allSelected {
			delete(t.selected, t.keys[idx])
		} else {
			t.selected[t.keys[idx]] = true
		}
	}
	t.selGen++
}

func (t *Table[T]) applySelection(mode SelectionMode) error {
	t.evaluate()
	switch mode {
	case SelectNone:
		clear(t.selected)
	case SelectPage:
		for _, idx := range t.paged.out {
			t.selected[t.keys[idx]] = true
		}
	case SelectAll:
		for _, idx := range t.filter.out {
			t.selected[t.keys[idx]] = true
		}
	default:
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"unknown selection mode", map[string]any{"mode": string(mode)})
	}
	t.selGen++
	return nil
}

func (t *Table[T]) selectKeys(keys []string, selected bool) {
	for _, k := range keys {
		if _, ok := t.byKey[k]; !ok {
			continue
		}
		if selected {
			t.selected[k] = true
		} else {
			delete(t.selected, k)
		}
	}
	t.selGen++
}

func (t *Table[T]) invoke(c ActionCmd) error {
	switch c.Kind {
	case TableActionKind:
		for _, a := range t.cfg.TableActions {
			if a.ID == c.ID {
				if a.Click == nil {
					return nil
				}
				return a.Click()
			}
		}
	case BulkActionKind:
		for _, a := range t.cfg.BulkActions {
			if a.ID != c.ID {
				continue
			}
			items := t.SelectedItems()
			if a.IsDisabled != nil && a.IsDisabled(items) {
				return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
					"bulk action is disabled for the current selection",
					map[string]any{"action": c.ID, "selected": len(items)})
			}
			if a.Click == nil {
				return nil
			}
			return a.Click(items)
		}
	case RowActionKind:
		for _, a := range t.cfg.RowActions {
			if a.ID != c.ID {
				continue
			}
			t.evaluate()
			if c.Row < 0 || c.Row >= len(t.paged.out) {
				return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
					"row index out of range", map[string]any{"row": c.Row, "rows": len(t.paged.out)})
			}
			if a.Click == nil {
				return nil
			}
			return a.Click(t.items[t.paged.out[c.Row]])
		}
	default:
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"unknown action kind", map[string]any{"kind": string(c.Kind)})
	}
	return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
		"unknown action", map[string]any{"kind": string(c.Kind), "action": c.ID})
}

func (t *Table[T]) headers() []string {
	out := make([]string, len(t.cfg.Columns))
	for i, c := range t.cfg.Columns {
		out[i] = c.Header
	}
	return out
}

func pageCount(n, perPage int) int {
	if n == 0 || perPage < 1 {
		return 0
	}
	return (n + perPage - 1) / perPage
}
