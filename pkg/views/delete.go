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
	"errors"
	"slices"

	cnserrors "github.com/NVIDIA/cluster-console/pkg/errors"
	"github.com/NVIDIA/cluster-console/pkg/resource"
	"github.com/NVIDIA/cluster-console/pkg/table"
)

// Selection names the items of a bulk delete: explicit keys, or every item
// passing Filters and Search when All is set.
type Selection struct {
	Keys    []string            `json:"keys,omitempty" yaml:"keys,omitempty"`
	Filters map[string][]string `json:"filters,omitempty" yaml:"filters,omitempty"`
	Search  string              `json:"search,omitempty" yaml:"search,omitempty"`
	All     bool                `json:"all,omitempty" yaml:"all,omitempty"`

	// Confirm is required to delete an All selection. Without it the
	// matched keys are only reported.
	Confirm bool `json:"confirm,omitempty" yaml:"confirm,omitempty"`
}

// Validate checks that exactly one selection style is used and that no
// more than limit keys are named. A limit below 1 means no limit.
func (s Selection) Validate(limit int) error {
	switch {
	case s.All && len(s.Keys) > 0:
		return cnserrors.New(cnserrors.ErrCodeInvalidRequest, "keys and all are mutually exclusive")
	case !s.All && len(s.Keys) == 0:
		return cnserrors.New(cnserrors.ErrCodeInvalidRequest, "no keys selected")
	case !s.All && s.Search != "":
		return cnserrors.New(cnserrors.ErrCodeInvalidRequest, "search requires all")
	case !s.All && len(s.Filters) > 0:
		return cnserrors.New(cnserrors.ErrCodeInvalidRequest, "filters require all")
	case limit > 0 && len(s.Keys) > limit:
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"too many keys", map[string]any{"keys": len(s.Keys), "limit": limit})
	}
	return nil
}

// DeleteFailure is one item a delete could not remove.
type DeleteFailure struct {
	Key     string              `json:"key" yaml:"key"`
	Code    cnserrors.ErrorCode `json:"code" yaml:"code"`
	Message string              `json:"message" yaml:"message"`
}

// DeleteResult is the outcome of a delete. Matched holds every selected
// key; each of them ends up in Deleted or Failed unless DryRun is set.
type DeleteResult struct {
	DryRun  bool            `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
	Matched []string        `json:"matched" yaml:"matched"`
	Deleted []string        `json:"deleted" yaml:"deleted"`
	Failed  []DeleteFailure `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// Deleted reports keys removed without failures.
func Deleted(keys ...string) *DeleteResult {
	return &DeleteResult{Matched: keys, Deleted: slices.Clone(keys)}
}

// BulkDelete selects sel on t and runs the delete bulk action.
//
// Named keys that are not in the table, a selection over limit and a
// selection holding a protected item fail the whole request before
// anything is deleted. An All selection without Confirm is a dry run.
// When the delete fails for some items only, the result lists them in
// Failed and no error is returned.
func BulkDelete(t *table.Table[Item], sel Selection, limit int) (*DeleteResult, error) {
	if err := sel.Validate(limit); err != nil {
		return nil, err
	}

	// start from an empty selection so earlier state on t cannot widen it
	if _, err := t.Dispatch(table.SelectionCmd{Mode: table.SelectNone}); err != nil {
		return nil, err
	}

	if sel.All {
		var cmds []table.Command
		for _, f := range t.View().Filters {
			if _, ok := sel.Filters[f.ID]; !ok {
				cmds = append(cmds, table.FilterCmd{ID: f.ID})
			}
		}
		cmds = append(cmds, filterCmds(sel.Filters)...)
		cmds = append(cmds,
			table.SearchCmd{Query: sel.Search},
			table.SelectionCmd{Mode: table.SelectAll},
		)
		for _, cmd := range cmds {
			if _, err := t.Dispatch(cmd); err != nil {
				return nil, err
			}
		}
	} else {
		if _, err := t.Dispatch(table.SelectKeysCmd{Keys: sel.Keys, Selected: true}); err != nil {
			return nil, err
		}
		selected := t.SelectedKeys()
		var missing []string
		for _, k := range sel.Keys {
			if !slices.Contains(selected, k) && !slices.Contains(missing, k) {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			return nil, cnserrors.NewWithContext(cnserrors.ErrCodeNotFound,
				"selected items not found", map[string]any{"keys": missing})
		}
	}

	keys := t.SelectedKeys()
	if len(keys) == 0 {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeNotFound,
			"no items match the selection", map[string]any{"search": sel.Search})
	}
	if limit > 0 && len(keys) > limit {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"selection exceeds the bulk limit", map[string]any{"selected": len(keys), "limit": limit})
	}
	for _, a := range t.View().BulkActions {
		if a.ID == ActionDelete && a.Disabled {
			return nil, cnserrors.NewWithContext(cnserrors.ErrCodeForbidden,
				"selection includes resources that cannot be deleted", map[string]any{"selected": len(keys)})
		}
	}

	if sel.All && !sel.Confirm {
		return &DeleteResult{DryRun: true, Matched: keys, Deleted: []string{}}, nil
	}

	_, err := t.Dispatch(table.ActionCmd{Kind: table.BulkActionKind, ID: ActionDelete})
	if err == nil {
		return Deleted(keys...), nil
	}
	failed, ok := itemFailures(err)
	if !ok {
		return nil, err
	}

	res := &DeleteResult{Matched: keys, Deleted: []string{}, Failed: failed}
	for _, k := range keys {
		if !slices.ContainsFunc(failed, func(f DeleteFailure) bool { return f.Key == k }) {
			res.Deleted = append(res.Deleted, k)
		}
	}
	return res, nil
}

// itemFailures unpacks an error made only of *resource.ItemError values,
// possibly joined. It reports false for anything it cannot attribute to
// an item.
func itemFailures(err error) ([]DeleteFailure, bool) {
	var out []DeleteFailure
	var walk func(error) bool
	walk = func(err error) bool {
		switch e := err.(type) {
		case *resource.ItemError:
			out = append(out, DeleteFailure{
				Key:     key(e.Namespace, e.Name),
				Code:    cnserrors.CodeOf(e.Err),
				Message: failureMessage(e.Err),
			})
			return true
		case interface{ Unwrap() []error }:
			errs := e.Unwrap()
			for _, inner := range errs {
				if !walk(inner) {
					return false
				}
			}
			return len(errs) > 0
		default:
			return false
		}
	}
	if !walk(err) {
		return nil, false
	}
	return out, true
}

// failureMessage prefers the API server's own words over the wrapper.
func failureMessage(err error) string {
	var se *cnserrors.StructuredError
	if errors.As(err, &se) {
		if se.Cause != nil {
			return se.Cause.Error()
		}
		return se.Message
	}
	return err.Error()
}
