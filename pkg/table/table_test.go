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
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"k8s.io/utils/ptr"

	cnserrors "github.com/NVIDIA/cluster-console/pkg/errors"
)

type cluster struct {
	Name   string `json:"name"`
	Region string `json:"region"`
	Nodes  *int   `json:"nodes,omitempty"`
	Labels string `json:"labels,omitempty"`
}

const (
	colName = iota
	colRegion
	colNodes
	colLabels
)

func clusterConfig() Config[cluster] {
	return Config[cluster]{
		Columns: []Column[cluster]{
			{
				Header: "Name",
				Cell:   func(c cluster) string { return c.Name },
				Sort:   func(a, b cluster) int { return CompareStrings(&a.Name, &b.Name) },
				Search: func(c cluster) string { return c.Name },
			},
			{
				Header:     "Region",
				CellPath:   "region",
				SortPath:   "region",
				SearchPath: "region",
			},
			{
				Header: "Nodes",
				Cell: func(c cluster) string {
					if c.Nodes == nil {
						return "-"
					}
					return fmt.Sprint(*c.Nodes)
				},
				Sort: func(a, b cluster) int { return CompareNumbers(a.Nodes, b.Nodes) },
			},
			{
				Header: "Labels",
				Cell:   func(c cluster) string { return c.Labels },
			},
		},
		KeyFn: func(c cluster) string { return c.Name },
	}
}

func numbered(n int) []cluster {
	items := make([]cluster, n)
	for i := range items {
		items[i] = cluster{
			Name:   fmt.Sprintf("cluster-%02d", i+1),
			Region: "us-east",
			Nodes:  ptr.To(i + 1),
		}
	}
	return items
}

func newTable(t *testing.T, cfg Config[cluster], items []cluster) *Table[cluster] {
	t.Helper()
	tbl, err := New(cfg, items)
	require.NoError(t, err)
	return tbl
}

func dispatch(t *testing.T, tbl *Table[cluster], cmd Command) *View[cluster] {
	t.Helper()
	v, err := tbl.Dispatch(cmd)
	require.NoError(t, err)
	require.NotNil(t, v)
	return v
}

func rowKeys(v *View[cluster]) []string {
	keys := make([]string, len(v.Rows))
	for i, r := range v.Rows {
		keys[i] = r.Key
	}
	return keys
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config[cluster])
		wantErr bool
	}{
		{
			name:   "valid config",
			mutate: func(*Config[cluster]) {},
		},
		{
			name:    "missing key function",
			mutate:  func(c *Config[cluster]) { c.KeyFn = nil },
			wantErr: true,
		},
		{
			name:    "no columns",
			mutate:  func(c *Config[cluster]) { c.Columns = nil },
			wantErr: true,
		},
		{
			name:    "default sort out of range",
			mutate:  func(c *Config[cluster]) { c.DefaultSort = &SortSpec{Column: 9, Direction: Ascending} },
			wantErr: true,
		},
		{
			name:    "default sort on unsortable column",
			mutate:  func(c *Config[cluster]) { c.DefaultSort = &SortSpec{Column: colLabels, Direction: Ascending} },
			wantErr: true,
		},
		{
			name:    "default sort with bad direction",
			mutate:  func(c *Config[cluster]) { c.DefaultSort = &SortSpec{Column: colName, Direction: "up"} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := clusterConfig()
			tt.mutate(&cfg)
			tbl, err := New(cfg, numbered(3))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidRequest))
				assert.Nil(t, tbl)
				return
			}
			require.NoError(t, err)
			v := tbl.View()
			assert.Equal(t, 1, v.Page)
			assert.Equal(t, DefaultPerPage, v.PerPage)
			assert.Equal(t, []string{"Name", "Region", "Nodes", "Labels"}, v.Headers)
		})
	}
}

func TestNewAppliesDefaultSort(t *testing.T) {
	cfg := clusterConfig()
	cfg.DefaultSort = &SortSpec{Column: colNodes, Direction: Descending}
	tbl := newTable(t, cfg, numbered(3))

	v := tbl.View()
	require.NotNil(t, v.Sort)
	assert.Equal(t, SortSpec{Column: colNodes, Direction: Descending}, *v.Sort)
	assert.Equal(t, []string{"cluster-03", "cluster-02", "cluster-01"}, rowKeys(v))
}

func TestPagination(t *testing.T) {
	tbl := newTable(t, clusterConfig(), numbered(25))

	v := dispatch(t, tbl, PageCmd{Page: 3, PerPage: 10})
	assert.Equal(t, 3, v.Page)
	assert.Equal(t, 3, v.PageCount)
	assert.Equal(t, []string{"cluster-21", "cluster-22", "cluster-23", "cluster-24", "cluster-25"}, rowKeys(v))

	// page 4 starts past the end and steps back to page 3
	v = dispatch(t, tbl, PageCmd{Page: 4})
	assert.Equal(t, 3, v.Page)
	assert.Len(t, v.Rows, 5)
	assert.Equal(t, "cluster-21", v.Rows[0].Key)
}

func TestPageDecrementsOneStepPerEvaluation(t *testing.T) {
	tbl := newTable(t, clusterConfig(), numbered(50))
	dispatch(t, tbl, PageCmd{Page: 5, PerPage: 10})

	// shrinking to 5 items leaves page 5 invalid
	v := dispatch(t, tbl, SetItemsCmd[cluster]{Items: numbered(5)})
	assert.Equal(t, 4, v.Page)
	assert.Empty(t, v.Rows)
	assert.False(t, v.Empty)

	var pages []int
	for range 5 {
		pages = append(pages, tbl.View().Page)
	}
	assert.Equal(t, []int{3, 2, 1, 1, 1}, pages)

	v = tbl.View()
	assert.Len(t, v.Rows, 5)
}

func TestPageBelowOne(t *testing.T) {
	tbl := newTable(t, clusterConfig(), numbered(5))
	v := dispatch(t, tbl, PageCmd{Page: -3})
	assert.Equal(t, 1, v.Page)
	assert.Len(t, v.Rows, 5)
}

func TestPaginationCoverage(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 25} {
		for _, perPage := range []int{1, 3, 10} {
			t.Run(fmt.Sprintf("n=%d/perPage=%d", n, perPage), func(t *testing.T) {
				cfg := clusterConfig()
				cfg.DefaultSort = &SortSpec{Column: colNodes, Direction: Descending}
				items := numbered(n)
				tbl := newTable(t, cfg, items)

				v := dispatch(t, tbl, PageCmd{Page: 1, PerPage: perPage})
				var got []string
				for p := 1; p <= v.PageCount; p++ {
					pv := dispatch(t, tbl, PageCmd{Page: p})
					require.Equal(t, p, pv.Page)
					got = append(got, rowKeys(pv)...)
				}

				want := make([]string, 0, n)
				for i := n; i >= 1; i-- {
					want = append(want, fmt.Sprintf("cluster-%02d", i))
				}
				if n == 0 {
					assert.Empty(t, got)
					assert.True(t, v.Empty)
					assert.Equal(t, DefaultEmptyMessage, v.EmptyMessage)
					return
				}
				assert.Equal(t, want, got)
			})
		}
	}
}

func TestPerPageKeepsFirstItem(t *testing.T) {
	tbl := newTable(t, clusterConfig(), numbered(25))
	dispatch(t, tbl, PageCmd{Page: 3, PerPage: 10})

	v := dispatch(t, tbl, PerPageCmd{PerPage: 5})
	assert.Equal(t, 5, v.Page)
	assert.Equal(t, "cluster-21", v.Rows[0].Key)

	v = dispatch(t, tbl, PerPageCmd{PerPage: 20})
	assert.Equal(t, 2, v.Page)
	assert.Equal(t, "cluster-21", v.Rows[0].Key)

	_, err := tbl.Dispatch(PerPageCmd{PerPage: 0})
	require.Error(t, err)
	assert.Equal(t, cnserrors.ErrCodeInvalidRequest, cnserrors.CodeOf(err))
}

func TestSearch(t *testing.T) {
	items := []cluster{
		{Name: "prod-east", Region: "us-east"},
		{Name: "dev-east", Region: "us-east"},
		{Name: "prod-west", Region: "eu-west"},
	}

	t.Run("search keys keep original order", func(t *testing.T) {
		cfg := Config[cluster]{
			Columns: []Column[cluster]{{Header: "Name", CellPath: "name"}},
			KeyFn:   func(c cluster) string { return c.Name },
			SearchKeys: []string{
				"name",
			},
		}
		tbl := newTable(t, cfg, items)
		v := dispatch(t, tbl, SearchCmd{Query: "prod"})
		assert.Equal(t, []string{"prod-east", "prod-west"}, rowKeys(v))
		assert.Equal(t, 2, v.ItemCount)
		assert.Equal(t, 3, v.TotalCount)
	})

	t.Run("case insensitive", func(t *testing.T) {
		tbl := newTable(t, clusterConfig(), items)
		v := dispatch(t, tbl, SearchCmd{Query: "PROD"})
		assert.Equal(t, []string{"prod-east", "prod-west"}, rowKeys(v))
	})

	t.Run("path column", func(t *testing.T) {
		tbl := newTable(t, clusterConfig(), items)
		v := dispatch(t, tbl, SearchCmd{Query: "eu-west"})
		assert.Equal(t, []string{"prod-west"}, rowKeys(v))
	})

	t.Run("tolerates a typo", func(t *testing.T) {
		tbl := newTable(t, clusterConfig(), numbered(3))
		v := dispatch(t, tbl, SearchCmd{Query: "clustr"})
		assert.Len(t, v.Rows, 3)
	})

	t.Run("no match", func(t *testing.T) {
		tbl := newTable(t, clusterConfig(), items)
		v := dispatch(t, tbl, SearchCmd{Query: "zzzzzz"})
		assert.True(t, v.Empty)
		assert.Equal(t, DefaultEmptyMessage, v.EmptyMessage)
		assert.Equal(t, "No results found", v.TableCaption())
	})

	t.Run("filtered set is a subset", func(t *testing.T) {
		tbl := newTable(t, clusterConfig(), items)
		for _, q := range []string{"", "east", "prod", "us", "x"} {
			v := dispatch(t, tbl, SearchCmd{Query: q})
			for _, r := range v.Rows {
				assert.True(t, slices.ContainsFunc(items, func(c cluster) bool { return c.Name == r.Key }))
			}
			if q == "" {
				assert.Equal(t, []string{"prod-east", "dev-east", "prod-west"}, rowKeys(v))
			}
		}
	})
}

func TestSearchResetsSortAndPage(t *testing.T) {
	cfg := clusterConfig()
	cfg.DefaultSort = &SortSpec{Column: colName, Direction: Descending}
	tbl := newTable(t, cfg, numbered(25))

	dispatch(t, tbl, SortCmd{Column: colNodes, Direction: Ascending})
	dispatch(t, tbl, PageCmd{Page: 2})

	v := dispatch(t, tbl, SearchCmd{Query: "cluster"})
	assert.Nil(t, v.Sort)
	assert.Equal(t, 1, v.Page)

	// sorting while a search is active is allowed
	v = dispatch(t, tbl, SortCmd{Column: colNodes, Direction: Descending})
	assert.Equal(t, "cluster-25", v.Rows[0].Key)

	// refining the query keeps the explicit sort
	v = dispatch(t, tbl, SearchCmd{Query: "cluster-"})
	require.NotNil(t, v.Sort)
	assert.Equal(t, colNodes, v.Sort.Column)

	v = dispatch(t, tbl, SearchCmd{Query: ""})
	require.NotNil(t, v.Sort)
	assert.Equal(t, *cfg.DefaultSort, *v.Sort)
	assert.Equal(t, "cluster-25", v.Rows[0].Key)
}

func TestSort(t *testing.T) {
	items := []cluster{
		{Name: "b", Region: "eu", Nodes: ptr.To(3)},
		{Name: "a", Region: "us", Nodes: nil},
		{Name: "d", Region: "ap", Nodes: ptr.To(1)},
		{Name: "c", Region: "eu", Nodes: ptr.To(2)},
	}

	tests := []struct {
		name   string
		column int
		want   []string
	}{
		{name: "function comparator", column: colName, want: []string{"a", "b", "c", "d"}},
		{name: "path comparator", column: colRegion, want: []string{"d", "b", "c", "a"}},
		{name: "nil sorts last", column: colNodes, want: []string{"d", "c", "b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := newTable(t, clusterConfig(), items)

			asc := rowKeys(dispatch(t, tbl, SortCmd{Column: tt.column, Direction: Ascending}))
			assert.Equal(t, tt.want, asc)

			again := rowKeys(dispatch(t, tbl, SortCmd{Column: tt.column, Direction: Ascending}))
			assert.Equal(t, asc, again)

			desc := rowKeys(dispatch(t, tbl, SortCmd{Column: tt.column, Direction: Descending}))
			slices.Reverse(asc)
			assert.Equal(t, asc, desc)
		})
	}
}

func TestSortErrors(t *testing.T) {
	tbl := newTable(t, clusterConfig(), numbered(3))

	for _, cmd := range []SortCmd{
		{Column: -1},
		{Column: 42},
		{Column: colLabels},
		{Column: colName, Direction: "sideways"},
	} {
		v, err := tbl.Dispatch(cmd)
		require.Error(t, err, "%+v", cmd)
		assert.Nil(t, v)
		assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidRequest))
	}

	// failed commands leave the sort untouched
	assert.Nil(t, tbl.View().Sort)
}

func TestCustomSortFn(t *testing.T) {
	cfg := clusterConfig()
	var gotColumn int
	cfg.SortFn = func(items []cluster, column int) []cluster {
		gotColumn = column
		slices.SortFunc(items, func(a, b cluster) int {
			// by name length, then name
			if d := len(a.Name) - len(b.Name); d != 0 {
				return d
			}
			return CompareStrings(&a.Name, &b.Name)
		})
		return items
	}
	items := []cluster{{Name: "ccc"}, {Name: "a"}, {Name: "bb"}}
	tbl := newTable(t, cfg, items)

	// any column is sortable with a custom function
	v := dispatch(t, tbl, SortCmd{Column: colLabels, Direction: Descending})
	assert.Equal(t, colLabels, gotColumn)
	assert.Equal(t, []string{"ccc", "bb", "a"}, rowKeys(v))

	// the caller's slice is not reordered
	assert.Equal(t, []string{"ccc", "a", "bb"}, []string{items[0].Name, items[1].Name, items[2].Name})
}

func TestSelectAllToggle(t *testing.T) {
	tbl := newTable(t, clusterConfig(), numbered(25))

	v := dispatch(t, tbl, SelectCmd{All: true})
	assert.Equal(t, 25, v.SelectedCount)
	for _, r := range v.Rows {
		assert.True(t, r.Selected)
	}

	v = dispatch(t, tbl, SelectCmd{All: true})
	assert.Equal(t, 0, v.SelectedCount)
	assert.Empty(t, tbl.SelectedKeys())

	// a partially selected page selects everything
	dispatch(t, tbl, SelectCmd{Row: 1, Selected: true})
	v = dispatch(t, tbl, SelectCmd{All: true})
	assert.Equal(t, 25, v.SelectedCount)
}

func TestSelectAllOnlyAffectsFilteredItems(t *testing.T) {
	items := []cluster{{Name: "prod-east"}, {Name: "dev-east"}, {Name: "prod-west"}}
	tbl := newTable(t, clusterConfig(), items)

	dispatch(t, tbl, SelectKeysCmd{Keys: []string{"dev-east"}, Selected: true})
	dispatch(t, tbl, SearchCmd{Query: "prod"})

	v := dispatch(t, tbl, SelectCmd{All: true})
	assert.Equal(t, 3, v.SelectedCount)

	v = dispatch(t, tbl, SelectCmd{All: true})
	assert.Equal(t, 1, v.SelectedCount)
	assert.Equal(t, []string{"dev-east"}, tbl.SelectedKeys())
}

func TestSelectAllOnEmptyPage(t *testing.T) {
	tbl := newTable(t, clusterConfig(), numbered(3))
	dispatch(t, tbl, SelectKeysCmd{Keys: []string{"cluster-01"}, Selected: true})
	dispatch(t, tbl, SearchCmd{Query: "zzzzzz"})

	// nothing rendered counts as all selected, which deselects nothing filtered
	v := dispatch(t, tbl, SelectCmd{All: true})
	assert.Equal(t, 1, v.SelectedCount)
}

func TestSelectionModes(t *testing.T) {
	tbl := newTable(t, clusterConfig(), numbered(25))

	v := dispatch(t, tbl, SelectionCmd{Mode: SelectPage})
	assert.Equal(t, 10, v.SelectedCount)

	v = dispatch(t, tbl, SelectionCmd{Mode: SelectAll})
	assert.Equal(t, 25, v.SelectedCount)

	v = dispatch(t, tbl, SelectionCmd{Mode: SelectNone})
	assert.Equal(t, 0, v.SelectedCount)

	_, err := tbl.Dispatch(SelectionCmd{Mode: "most"})
	require.Error(t, err)
}

func TestSelectRow(t *testing.T) {
	tbl := newTable(t, clusterConfig(), numbered(25))
	dispatch(t, tbl, PageCmd{Page: 2})

	v := dispatch(t, tbl, SelectCmd{Row: 0, Selected: true})
	assert.True(t, v.Rows[0].Selected)
	assert.Equal(t, []string{"cluster-11"}, v.SelectedKeys())

	v = dispatch(t, tbl, SelectCmd{Row: 0, Selected: false})
	assert.False(t, v.Rows[0].Selected)

	_, err := tbl.Dispatch(SelectCmd{Row: 10, Selected: true})
	require.Error(t, err)
	_, err = tbl.Dispatch(SelectCmd{Row: -1, Selected: true})
	require.Error(t, err)
}

func TestSelectionSurvivesSortAndPage(t *testing.T) {
	tbl := newTable(t, clusterConfig(), numbered(25))
	dispatch(t, tbl, SelectKeysCmd{Keys: []string{"cluster-03", "cluster-17", "missing"}, Selected: true})
	want := []string{"cluster-03", "cluster-17"}
	require.Equal(t, want, tbl.SelectedKeys())

	for _, cmd := range []Command{
		SortCmd{Column: colNodes, Direction: Descending},
		PageCmd{Page: 2},
		PerPageCmd{PerPage: 3},
		SortCmd{Column: colName, Direction: Ascending},
		PageCmd{Page: 9, PerPage: 7},
	} {
		dispatch(t, tbl, cmd)
		assert.Equal(t, want, tbl.SelectedKeys(), "after %T", cmd)
	}
}

func TestSetItemsPrunesSelection(t *testing.T) {
	tbl := newTable(t, clusterConfig(), numbered(5))
	dispatch(t, tbl, SelectionCmd{Mode: SelectAll})

	v := dispatch(t, tbl, SetItemsCmd[cluster]{Items: numbered(2)})
	assert.Equal(t, 2, v.SelectedCount)
	assert.Equal(t, []string{"cluster-01", "cluster-02"}, tbl.SelectedKeys())
}

func TestBulkActionUsesUnfilteredSelection(t *testing.T) {
	items := []cluster{
		{Name: "prod-east"},
		{Name: "dev-east"},
		{Name: "prod-west"},
		{Name: "dev-west"},
		{Name: "qa-central"},
	}

	var got []cluster
	cfg := clusterConfig()
	cfg.BulkActions = []BulkAction[cluster]{{
		ID:    "destroy",
		Title: "Destroy",
		Click: func(items []cluster) error {
			got = items
			return nil
		},
	}}
	tbl := newTable(t, cfg, items)

	dispatch(t, tbl, SelectCmd{Row: 0, Selected: true})
	dispatch(t, tbl, SelectCmd{Row: 1, Selected: true})
	v := dispatch(t, tbl, SearchCmd{Query: "prod"})
	require.Equal(t, []string{"prod-east", "prod-west"}, rowKeys(v))

	_, err := tbl.Dispatch(ActionCmd{Kind: BulkActionKind, ID: "destroy"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "prod-east", got[0].Name)
	assert.Equal(t, "dev-east", got[1].Name)
}

func TestBulkActionDisabled(t *testing.T) {
	called := false
	cfg := clusterConfig()
	cfg.BulkActions = []BulkAction[cluster]{{
		ID:         "upgrade",
		Title:      "Upgrade",
		Click:      func([]cluster) error { called = true; return nil },
		IsDisabled: func(items []cluster) bool { return len(items) > 1 },
	}}
	tbl := newTable(t, cfg, numbered(3))

	v := tbl.View()
	require.Len(t, v.BulkActions, 1)
	assert.True(t, v.BulkActions[0].Disabled, "disabled without a selection")

	v = dispatch(t, tbl, SelectCmd{Row: 0, Selected: true})
	assert.False(t, v.BulkActions[0].Disabled)

	dispatch(t, tbl, SelectCmd{Row: 1, Selected: true})
	_, err := tbl.Dispatch(ActionCmd{Kind: BulkActionKind, ID: "upgrade"})
	require.Error(t, err)
	assert.False(t, called)
}

func TestRowActionErrorKeepsItems(t *testing.T) {
	items := numbered(3)
	deleteErr := errors.New("forbidden")
	cfg := clusterConfig()
	cfg.RowActions = []RowAction[cluster]{{
		ID:    "delete",
		Title: "Delete",
		Click: func(cluster) error { return deleteErr },
	}}
	tbl := newTable(t, cfg, items)

	v, err := tbl.Dispatch(ActionCmd{Kind: RowActionKind, ID: "delete", Row: 1})
	assert.Nil(t, v)
	require.ErrorIs(t, err, deleteErr)
	assert.Same(t, deleteErr, err)

	assert.Equal(t, items, tbl.Items())
	assert.Len(t, tbl.View().Rows, 3)
}

func TestRowActionReceivesRenderedItem(t *testing.T) {
	var got cluster
	cfg := clusterConfig()
	cfg.RowActions = []RowAction[cluster]{{
		ID:    "edit",
		Title: "Edit",
		Click: func(c cluster) error { got = c; return nil },
	}}
	tbl := newTable(t, cfg, numbered(25))
	dispatch(t, tbl, SortCmd{Column: colNodes, Direction: Descending})
	dispatch(t, tbl, PageCmd{Page: 2})

	_, err := tbl.Dispatch(ActionCmd{Kind: RowActionKind, ID: "edit", Row: 2})
	require.NoError(t, err)
	assert.Equal(t, "cluster-13", got.Name)

	_, err = tbl.Dispatch(ActionCmd{Kind: RowActionKind, ID: "edit", Row: 10})
	require.Error(t, err)
}

func TestTableAction(t *testing.T) {
	calls := 0
	cfg := clusterConfig()
	cfg.TableActions = []TableAction{{
		ID:    "create",
		Title: "Create cluster",
		Click: func() error { calls++; return nil },
	}}
	tbl := newTable(t, cfg, nil)

	v := dispatch(t, tbl, ActionCmd{Kind: TableActionKind, ID: "create"})
	assert.Equal(t, 1, calls)
	assert.Equal(t, []ActionInfo{{ID: "create", Title: "Create cluster"}}, v.TableActions)

	_, err := tbl.Dispatch(ActionCmd{Kind: TableActionKind, ID: "import"})
	require.Error(t, err)
	_, err = tbl.Dispatch(ActionCmd{Kind: "menu", ID: "create"})
	require.Error(t, err)
}

func TestDuplicateKeys(t *testing.T) {
	items := []cluster{{Name: "a"}, {Name: "b"}, {Name: "a"}, {Name: "a"}}
	var got []cluster
	cfg := clusterConfig()
	cfg.BulkActions = []BulkAction[cluster]{{ID: "x", Click: func(items []cluster) error { got = items; return nil }}}
	tbl := newTable(t, cfg, items)

	v := dispatch(t, tbl, SelectKeysCmd{Keys: []string{"a"}, Selected: true})
	assert.Equal(t, []string{"a"}, v.DuplicateKeys)
	assert.Equal(t, 1, v.SelectedCount)

	// every row sharing the key reports the selection
	selectedRows := 0
	for _, r := range v.Rows {
		if r.Selected {
			selectedRows++
		}
	}
	assert.Equal(t, 3, selectedRows)

	_, err := tbl.Dispatch(ActionCmd{Kind: BulkActionKind, ID: "x"})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestItemsAreNotMutated(t *testing.T) {
	items := []cluster{{Name: "c"}, {Name: "a"}, {Name: "b"}}
	snapshot := slices.Clone(items)
	tbl := newTable(t, clusterConfig(), items)

	dispatch(t, tbl, SortCmd{Column: colName, Direction: Ascending})
	dispatch(t, tbl, SearchCmd{Query: "a"})
	dispatch(t, tbl, SelectionCmd{Mode: SelectAll})

	assert.Equal(t, snapshot, items)
}

func TestMemoization(t *testing.T) {
	tbl := newTable(t, clusterConfig(), numbered(25))

	tbl.View()
	tbl.View()
	assert.Equal(t, Stats{Index: 1, Facet: 1, Filter: 1, Sort: 1, Page: 1, Rows: 1}, tbl.Stats())

	dispatch(t, tbl, SelectCmd{Row: 0, Selected: true})
	assert.Equal(t, Stats{Index: 1, Facet: 1, Filter: 1, Sort: 1, Page: 1, Rows: 2}, tbl.Stats())

	dispatch(t, tbl, PageCmd{Page: 2})
	assert.Equal(t, Stats{Index: 1, Facet: 1, Filter: 1, Sort: 1, Page: 2, Rows: 3}, tbl.Stats())

	dispatch(t, tbl, SortCmd{Column: colNodes, Direction: Descending})
	assert.Equal(t, Stats{Index: 1, Facet: 1, Filter: 1, Sort: 2, Page: 3, Rows: 4}, tbl.Stats())

	// same query twice is a no-op
	dispatch(t, tbl, SearchCmd{Query: "cluster-1"})
	dispatch(t, tbl, SearchCmd{Query: "cluster-1"})
	assert.Equal(t, Stats{Index: 1, Facet: 1, Filter: 2, Sort: 3, Page: 4, Rows: 5}, tbl.Stats())

	dispatch(t, tbl, SetItemsCmd[cluster]{Items: numbered(30)})
	assert.Equal(t, Stats{Index: 2, Facet: 2, Filter: 3, Sort: 4, Page: 5, Rows: 6}, tbl.Stats())
}

func TestUnsupportedCommand(t *testing.T) {
	tbl := newTable(t, clusterConfig(), numbered(1))

	// items of another type are not a command for this table
	_, err := tbl.Dispatch(SetItemsCmd[string]{Items: []string{"x"}})
	require.Error(t, err)
	assert.Equal(t, cnserrors.ErrCodeInvalidRequest, cnserrors.CodeOf(err))
}

func TestViewTabular(t *testing.T) {
	tbl := newTable(t, clusterConfig(), numbered(12))
	v := dispatch(t, tbl, SelectCmd{Row: 0, Selected: true})

	assert.Equal(t, v.Headers, v.TableHeader())
	rows := v.TableRows()
	require.Len(t, rows, 10)
	assert.Equal(t, []string{"cluster-01", "us-east", "1", ""}, rows[0])
	assert.Equal(t, "Page 1 of 2, 12 of 12 items, 1 selected", v.TableCaption())
}

func regionConfig() Config[cluster] {
	cfg := clusterConfig()
	cfg.Filters = []Filter[cluster]{{
		ID:    "region",
		Label: "Region",
		Options: []FilterOption{
			{Label: "US East", Value: "us-east"},
			{Label: "EU West", Value: "eu-west"},
			{Label: "AP South", Value: "ap-south"},
		},
		Fn: func(values []string, c cluster) bool { return slices.Contains(values, c.Region) },
	}}
	return cfg
}

func regional() []cluster {
	return []cluster{
		{Name: "prod-east", Region: "us-east"},
		{Name: "prod-west", Region: "eu-west"},
		{Name: "dev-east", Region: "us-east"},
		{Name: "dev-west", Region: "eu-west"},
		{Name: "lab", Region: "us-east"},
	}
}

func TestFilters(t *testing.T) {
	tbl := newTable(t, regionConfig(), regional())

	v := tbl.View()
	require.Len(t, v.Filters, 1)
	counts := map[string]int{}
	for _, o := range v.Filters[0].Options {
		counts[o.Value] = o.Count
		assert.False(t, o.Selected)
	}
	assert.Equal(t, map[string]int{"us-east": 3, "eu-west": 2, "ap-south": 0}, counts)

	v = dispatch(t, tbl, FilterCmd{ID: "region", Values: []string{"eu-west"}})
	assert.Equal(t, []string{"prod-west", "dev-west"}, rowKeys(v))
	assert.Equal(t, 2, v.ItemCount)
	assert.Equal(t, 5, v.TotalCount)
	assert.True(t, v.Filters[0].Options[1].Selected)
	// counts are over all items, not the filtered ones
	assert.Equal(t, 3, v.Filters[0].Options[0].Count)

	// search runs inside the filtered set
	v = dispatch(t, tbl, SearchCmd{Query: "prod"})
	assert.Equal(t, []string{"prod-west"}, rowKeys(v))

	dispatch(t, tbl, SearchCmd{Query: ""})
	v = dispatch(t, tbl, FilterCmd{ID: "region", Values: []string{"eu-west", "us-east", "eu-west"}})
	assert.Equal(t, 5, v.ItemCount)

	v = dispatch(t, tbl, FilterCmd{ID: "region"})
	assert.Equal(t, 5, v.ItemCount)
	assert.False(t, v.Filters[0].Options[1].Selected)
}

func TestFilterKeepsSelectionAndResetsPage(t *testing.T) {
	cfg := regionConfig()
	cfg.PerPage = 2
	tbl := newTable(t, cfg, regional())

	dispatch(t, tbl, SelectKeysCmd{Keys: []string{"prod-east", "prod-west"}, Selected: true})
	dispatch(t, tbl, PageCmd{Page: 2})

	v := dispatch(t, tbl, FilterCmd{ID: "region", Values: []string{"eu-west"}})
	assert.Equal(t, 1, v.Page)
	assert.Equal(t, 2, v.SelectedCount)
	assert.Equal(t, []string{"prod-west"}, v.SelectedKeys())

	// select all only reaches items passing the filter
	dispatch(t, tbl, SelectionCmd{Mode: SelectNone})
	dispatch(t, tbl, SelectionCmd{Mode: SelectAll})
	assert.Equal(t, []string{"dev-west", "prod-west"}, tbl.SelectedKeys())

	v = dispatch(t, tbl, FilterCmd{ID: "region"})
	assert.Equal(t, 2, v.SelectedCount)
}

func TestFilterErrors(t *testing.T) {
	tbl := newTable(t, regionConfig(), regional())

	_, err := tbl.Dispatch(FilterCmd{ID: "provider", Values: []string{"aws"}})
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidRequest))

	_, err = tbl.Dispatch(FilterCmd{ID: "region", Values: []string{"mars"}})
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidRequest))
	assert.Equal(t, 5, tbl.View().ItemCount)

	cfg := regionConfig()
	cfg.Filters = append(cfg.Filters, cfg.Filters[0])
	_, err = New(cfg, regional())
	assert.Error(t, err)

	cfg = regionConfig()
	cfg.Filters[0].Fn = nil
	_, err = New(cfg, regional())
	assert.Error(t, err)
}

func TestFilterMemoization(t *testing.T) {
	tbl := newTable(t, regionConfig(), regional())
	tbl.View()
	assert.Equal(t, Stats{Index: 1, Facet: 1, Filter: 1, Sort: 1, Page: 1, Rows: 1}, tbl.Stats())

	dispatch(t, tbl, FilterCmd{ID: "region", Values: []string{"us-east"}})
	assert.Equal(t, Stats{Index: 1, Facet: 2, Filter: 2, Sort: 2, Page: 2, Rows: 2}, tbl.Stats())

	// repeating the chosen value changes nothing
	dispatch(t, tbl, FilterCmd{ID: "region", Values: []string{"us-east", "us-east"}})
	assert.Equal(t, Stats{Index: 1, Facet: 2, Filter: 2, Sort: 2, Page: 2, Rows: 2}, tbl.Stats())

	dispatch(t, tbl, SearchCmd{Query: "lab"})
	assert.Equal(t, 2, tbl.Stats().Facet)
}

func TestCaptionPastLastPage(t *testing.T) {
	tbl := newTable(t, clusterConfig(), numbered(25))

	v := dispatch(t, tbl, PageCmd{Page: 10})
	assert.Equal(t, 9, v.Page)
	assert.Empty(t, v.Rows)
	assert.Equal(t, "No rows on page 9, last page is 3, 25 of 25 items", v.TableCaption())
}

type document struct {
	Object map[string]any
}

func (d *document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Object)
}

func TestRowMarshalYAML(t *testing.T) {
	row := Row[document]{
		Key:   "prod-east",
		Item:  document{Object: map[string]any{"kind": "ManagedCluster", "metadata": map[string]any{"name": "prod-east"}}},
		Cells: []string{"prod-east"},
	}

	b, err := yaml.Marshal([]Row[document]{row})
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(b, &got))
	require.Len(t, got, 1)
	item, ok := got[0]["item"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ManagedCluster", item["kind"])
	assert.NotContains(t, item, "object")
	assert.Equal(t, "prod-east", got[0]["key"])

	// items without a JSON form are encoded as they are
	b, err = yaml.Marshal(Row[cluster]{Key: "a", Item: cluster{Name: "a"}})
	require.NoError(t, err)
	assert.Contains(t, string(b), "key: a")
}
