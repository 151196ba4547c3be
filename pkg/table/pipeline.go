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
	"cmp"
	"slices"
)

// Each stage remembers the inputs it was computed from and bumps its own
// generation when it recomputes. A stage reruns only when an upstream
// generation or one of its own inputs changed.

type indexStage struct {
	valid    bool
	gen      uint64
	itemsGen uint64

	raw    [][]byte   // JSON encoding per item, nil unless paths are used
	search [][]string // folded searchable text per item
}

type facetStage struct {
	valid      bool
	gen        uint64
	itemsGen   uint64
	filtersGen uint64

	out    []int            // indices of items passing every filter
	counts map[string][]int // matches per filter option, over all items
}

type filterStage struct {
	valid    bool
	gen      uint64
	indexGen uint64
	facetGen uint64
	query    string

	out []int // item indices in relevance order
}

type sortStage struct {
	valid     bool
	gen       uint64
	filterGen uint64
	spec      *SortSpec

	out []int
}

type pageStage struct {
	valid   bool
	gen     uint64
	sortGen uint64
	page    int // requested page, before normalization
	perPage int

	out []int
}

type rowStage[T any] struct {
	valid   bool
	pageGen uint64
	selGen  uint64

	out []Row[T]
}

func (t *Table[T]) evaluate() {
	t.runIndex()
	t.runFacet()
	t.runFilter()
	t.runSort()
	t.runPage()
	t.runRows()
}

func (t *Table[T]) runIndex() {
	if t.index.valid && t.index.itemsGen == t.itemsGen {
		return
	}
	t.stats.Index++

	var raw [][]byte
	if t.needsJSON {
		raw = make([][]byte, len(t.items))
		for i := range t.items {
			raw[i] = encode(&t.items[i])
		}
	}

	search := make([][]string, len(t.items))
	for i, item := range t.items {
		var r []byte
		if raw != nil {
			r = raw[i]
		}
		var values []string
		for ci := range t.cfg.Columns {
			c := &t.cfg.Columns[ci]
			switch {
			case c.Search != nil:
				values = append(values, t.folder.String(c.Search(item)))
			case c.SearchPath != "":
				values = append(values, t.folder.String(textAt(r, c.SearchPath)))
			}
		}
		for _, p := range t.cfg.SearchKeys {
			values = append(values, t.folder.String(textAt(r, p)))
		}
		search[i] = values
	}

	t.index = indexStage{
		valid:    true,
		gen:      t.index.gen + 1,
		itemsGen: t.itemsGen,
		raw:      raw,
		search:   search,
	}
}

// runFacet applies the chosen filter values. Option counts only depend on
// the items and are carried over while the items are unchanged.
func (t *Table[T]) runFacet() {
	if t.facet.valid && t.facet.itemsGen == t.itemsGen && t.facet.filtersGen == t.filtersGen {
		return
	}
	t.stats.Facet++

	counts := t.facet.counts
	if !t.facet.valid || t.facet.itemsGen != t.itemsGen {
		counts = make(map[string][]int, len(t.cfg.Filters))
		for _, f := range t.cfg.Filters {
			n := make([]int, len(f.Options))
			for j, o := range f.Options {
				for _, item := range t.items {
					if f.Fn([]string{o.Value}, item) {
						n[j]++
					}
				}
			}
			counts[f.ID] = n
		}
	}

	out := make([]int, 0, len(t.items))
	for i, item := range t.items {
		if t.passesFilters(item) {
			out = append(out, i)
		}
	}

	t.facet = facetStage{
		valid:      true,
		gen:        t.facet.gen + 1,
		itemsGen:   t.itemsGen,
		filtersGen: t.filtersGen,
		out:        out,
		counts:     counts,
	}
}

func (t *Table[T]) passesFilters(item T) bool {
	for _, f := range t.cfg.Filters {
		if values := t.filters[f.ID]; len(values) > 0 && !f.Fn(values, item) {
			return false
		}
	}
	return true
}

func (t *Table[T]) runFilter() {
	if t.filter.valid && t.filter.indexGen == t.index.gen &&
		t.filter.facetGen == t.facet.gen && t.filter.query == t.search {
		return
	}
	t.stats.Filter++

	var out []int
	if t.search == "" {
		out = slices.Clone(t.facet.out)
	} else {
		q := t.folder.String(t.search)
		type match struct {
			idx   int
			score float64
		}
		var matches []match
		for _, i := range t.facet.out {
			if s := bestScore(t.index.search[i], q); s <= t.cfg.SearchThreshold {
				matches = append(matches, match{idx: i, score: s})
			}
		}
		slices.SortStableFunc(matches, func(a, b match) int {
			return cmp.Compare(a.score, b.score)
		})
		out = make([]int, len(matches))
		for i, m := range matches {
			out[i] = m.idx
		}
	}

	t.filter = filterStage{
		valid:    true,
		gen:      t.filter.gen + 1,
		indexGen: t.index.gen,
		facetGen: t.facet.gen,
		query:    t.search,
		out:      out,
	}
}

func (t *Table[T]) runSort() {
	if t.sorted.valid && t.sorted.filterGen == t.filter.gen && t.sorted.spec.equal(t.sort) {
		return
	}
	t.stats.Sort++

	out := slices.Clone(t.filter.out)
	if t.sort != nil && len(out) > 1 {
		out = t.sortIndices(out, *t.sort)
	}

	t.sorted = sortStage{
		valid:     true,
		gen:       t.sorted.gen + 1,
		filterGen: t.filter.gen,
		spec:      t.sort.clone(),
		out:       out,
	}
}

func (t *Table[T]) sortIndices(idx []int, spec SortSpec) []int {
	if t.cfg.SortFn != nil {
		idx = t.customSort(idx, spec.Column)
	} else {
		col := &t.cfg.Columns[spec.Column]
		if col.Sort != nil {
			slices.SortStableFunc(idx, func(a, b int) int {
				return col.Sort(t.items[a], t.items[b])
			})
		} else {
			values := make(map[int]any, len(idx))
			for _, i := range idx {
				values[i] = valueAt(t.index.raw[i], col.SortPath)
			}
			slices.SortStableFunc(idx, func(a, b int) int {
				return CompareValues(values[a], values[b])
			})
		}
	}
	if spec.Direction == Descending {
		slices.Reverse(idx)
	}
	return idx
}

// customSort hands the items to Config.SortFn and maps the result back to
// indices through their keys. Items the function drops are dropped.
func (t *Table[T]) customSort(idx []int, column int) []int {
	items := make([]T, len(idx))
	queues := make(map[string][]int, len(idx))
	for i, n := range idx {
		items[i] = t.items[n]
		queues[t.keys[n]] = append(queues[t.keys[n]], n)
	}

	ordered := t.cfg.SortFn(items, column)
	out := make([]int, 0, len(ordered))
	for _, item := range ordered {
		k := t.cfg.KeyFn(item)
		q := queues[k]
		if len(q) == 0 {
			continue
		}
		out = append(out, q[0])
		queues[k] = q[1:]
	}
	return out
}

// runPage slices the sorted result. When the requested page starts past the
// end it steps back one page per evaluation rather than jumping to the last
// page.
func (t *Table[T]) runPage() {
	if t.paged.valid && t.paged.sortGen == t.sorted.gen &&
		t.paged.page == t.page && t.paged.perPage == t.perPage {
		return
	}
	t.stats.Page++

	requested := t.page
	if t.page < 1 {
		t.page = 1
	}
	n := len(t.sorted.out)
	start := (t.page - 1) * t.perPage
	if start >= n && t.page > 1 {
		t.page--
		start = (t.page - 1) * t.perPage
	}

	var out []int
	if start < n {
		out = t.sorted.out[start:min(start+t.perPage, n)]
	}

	t.paged = pageStage{
		valid:   true,
		gen:     t.paged.gen + 1,
		sortGen: t.sorted.gen,
		page:    requested,
		perPage: t.perPage,
		out:     out,
	}
}

func (t *Table[T]) runRows() {
	if t.rows.valid && t.rows.pageGen == t.paged.gen && t.rows.selGen == t.selGen {
		return
	}
	t.stats.Rows++

	rows := make([]Row[T], len(t.paged.out))
	for i, n := range t.paged.out {
		item := t.items[n]
		rows[i] = Row[T]{
			Key:      t.keys[n],
			Item:     item,
			Cells:    t.cells(n),
			Selected: t.selected[t.keys[n]],
		}
	}

	t.rows = rowStage[T]{
		valid:   true,
		pageGen: t.paged.gen,
		selGen:  t.selGen,
		out:     rows,
	}
}

func (t *Table[T]) cells(n int) []string {
	var raw []byte
	if t.index.raw != nil {
		raw = t.index.raw[n]
	}
	out := make([]string, len(t.cfg.Columns))
	for ci := range t.cfg.Columns {
		c := &t.cfg.Columns[ci]
		switch {
		case c.Cell != nil:
			out[ci] = c.Cell(t.items[n])
		case c.CellPath != "":
			out[ci] = textAt(raw, c.CellPath)
		}
	}
	return out
}
