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

package views

import (
	"context"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"

	cnserrors "github.com/NVIDIA/cluster-console/pkg/errors"
	"github.com/NVIDIA/cluster-console/pkg/resource"
	"github.com/NVIDIA/cluster-console/pkg/table"
)

// Query is a table state given as parameters, from CLI flags or the list
// endpoint's query string.
type Query struct {
	Filters   map[string][]string // filter ID to chosen values
	Search    string
	Sort      string // column header, case-insensitive
	Direction table.SortDirection
	Page      int
	PerPage   int
	Selected  []string
}

// ParseQuery reads filter, search, sort, dir, page, perPage and selected
// from v. filter and selected may repeat or hold comma separated values.
func ParseQuery(v url.Values) (Query, error) {
	q := Query{
		Search: v.Get("search"),
		Sort:   v.Get("sort"),
	}

	filters, err := ParseFilters(v["filter"])
	if err != nil {
		return Query{}, err
	}
	q.Filters = filters

	dir, ok := table.ParseSortDirection(v.Get("dir"))
	if !ok {
		return Query{}, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"invalid sort direction", map[string]any{"dir": v.Get("dir")})
	}
	q.Direction = dir

	if q.Page, err = positive(v, "page"); err != nil {
		return Query{}, err
	}
	if q.PerPage, err = positive(v, "perPage"); err != nil {
		return Query{}, err
	}

	for _, s := range v["selected"] {
		for _, k := range strings.Split(s, ",") {
			if k = strings.TrimSpace(k); k != "" {
				q.Selected = append(q.Selected, k)
			}
		}
	}
	return q, nil
}

// ParseFilters reads filter choices written as id:value or
// id:value1,value2. Choices for the same ID accumulate. A choice without an
// ID adds its values to the previous one, so a flag parser that splits on
// commas yields the same result.
func ParseFilters(choices []string) (map[string][]string, error) {
	if len(choices) == 0 {
		return nil, nil
	}
	out := make(map[string][]string)
	var last string
	for _, c := range choices {
		id, values, ok := strings.Cut(c, ":")
		id = strings.TrimSpace(id)
		switch {
		case !ok && last != "":
			id, values = last, c
		case !ok || id == "":
			return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
				"filter must be written as id:value", map[string]any{"filter": c})
		}
		n := len(out[id])
		for _, val := range strings.Split(values, ",") {
			if val = strings.TrimSpace(val); val != "" {
				out[id] = append(out[id], val)
			}
		}
		if len(out[id]) == n {
			return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
				"filter has no value", map[string]any{"filter": c})
		}
		last = id
	}
	return out, nil
}

// filterCmds returns one FilterCmd per filter ID, in ID order.
func filterCmds(filters map[string][]string) []table.Command {
	var cmds []table.Command
	for _, id := range slices.Sorted(maps.Keys(filters)) {
		cmds = append(cmds, table.FilterCmd{ID: id, Values: filters[id]})
	}
	return cmds
}

func positive(v url.Values, key string) (int, error) {
	s := v.Get(key)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"expected a positive integer", map[string]any{key: s})
	}
	return n, nil
}

// Apply dispatches q onto t in the order a user would act: filters,
// search, sort, page size, page and finally selection. Unknown selected keys
// are ignored.
//
// A page past the end is not corrected here: the table steps back one page
// per evaluation, so the returned view may carry no rows.
func (q Query) Apply(def Definition, t *table.Table[Item]) (*table.View[Item], error) {
	cmds := filterCmds(q.Filters)
	if q.Search != "" {
		cmds = append(cmds, table.SearchCmd{Query: q.Search})
	}
	if q.Sort != "" {
		col, ok := def.Column(q.Sort)
		if !ok {
			return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
				"unknown sort column", map[string]any{"column": q.Sort, "columns": def.Headers()})
		}
		dir := q.Direction
		if dir == "" {
			dir = table.Ascending
		}
		cmds = append(cmds, table.SortCmd{Column: col, Direction: dir})
	}
	if q.PerPage > 0 {
		cmds = append(cmds, table.PerPageCmd{PerPage: q.PerPage})
	}
	if q.Page > 0 {
		cmds = append(cmds, table.PageCmd{Page: q.Page})
	}
	if len(q.Selected) > 0 {
		cmds = append(cmds, table.SelectKeysCmd{Keys: q.Selected, Selected: true})
	}

	v := t.View()
	for _, cmd := range cmds {
		var err error
		if v, err = t.Dispatch(cmd); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Open lists kind through c and returns its definition and a table whose
// delete actions call back into c with ctx.
func Open(ctx context.Context, c resource.Interface, kind resource.Kind, opts resource.ListOptions) (Definition, *table.Table[Item], error) {
	def, err := For(kind)
	if err != nil {
		return Definition{}, nil, err
	}
	items, err := c.List(ctx, kind, opts)
	if err != nil {
		return Definition{}, nil, err
	}
	t, err := NewTable(def, items, ClientActions(ctx, c, kind))
	if err != nil {
		return Definition{}, nil, err
	}
	return def, t, nil
}
