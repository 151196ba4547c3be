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

// Package table implements a generic client-side resource table: fuzzy
// search, column sort, pagination and selection over an in-memory list,
// with caller supplied table, bulk and row actions.
//
// A Table is driven by commands and returns an immutable View after each
// one:
//
//	t, err := table.New(table.Config[Cluster]{
//		Columns: []table.Column[Cluster]{
//			{Header: "Name", CellPath: "metadata.name", SortPath: "metadata.name", SearchPath: "metadata.name"},
//		},
//		KeyFn: func(c Cluster) string { return c.Name },
//	}, clusters)
//	if err != nil {
//		return err
//	}
//	view, err := t.Dispatch(table.SearchCmd{Query: "prod"})
//
// # Pipeline
//
// Views are derived in five memoized stages. Faceted filters depend on the
// items and the chosen filter values, search on the faceted result and the
// query, sorting on the searched result and the sort spec,
// paging on the sorted result, the page and the page size, and rows on the
// page and the selection. A stage is recomputed only when one of its inputs
// changed; Table.Stats exposes the recomputation counters.
//
// # Filters
//
// Config.Filters are dropdown style facets applied before search. FilterCmd
// chooses values for one filter; an item must match one chosen value of
// every filter that has any. Views report each option with the number of
// items it matches.
//
// # Paging
//
// When the current page ends up past the last page, for instance after a
// delete, the table moves back one page per evaluation instead of jumping
// to the last page.
//
// # Selection
//
// Selection is keyed by Config.KeyFn and survives filters, search, sort and
// paging.
// Keys that disappear when items are replaced are dropped. Items that share
// a key share a selection entry; such keys are reported in
// View.DuplicateKeys.
package table
