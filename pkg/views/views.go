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
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	cnserrors "github.com/NVIDIA/cluster-console/pkg/errors"
	"github.com/NVIDIA/cluster-console/pkg/resource"
	"github.com/NVIDIA/cluster-console/pkg/table"
)

// Item is the row type of every resource table.
type Item = unstructured.Unstructured

// Action IDs wired by NewTable.
const (
	ActionCreate = "create"
	ActionDelete = "delete"
)

// Definition describes how one kind is shown as a table.
type Definition struct {
	Kind         resource.Kind
	Columns      []table.Column[Item]
	SearchKeys   []string
	Filters      []table.Filter[Item]
	DefaultSort  *table.SortSpec
	EmptyMessage string

	// DeleteDisabled, when set, blocks bulk delete for a selection.
	DeleteDisabled func(items []Item) bool
}

// Column returns the index of the column whose header matches name,
// case-insensitively.
func (d Definition) Column(name string) (int, bool) {
	for i, c := range d.Columns {
		if strings.EqualFold(c.Header, name) {
			return i, true
		}
	}
	return 0, false
}

// Headers returns the column headers in order.
func (d Definition) Headers() []string {
	out := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		out[i] = c.Header
	}
	return out
}

var definitions = map[string]func() Definition{
	resource.ManagedClusters.Name:     managedClusters,
	resource.ProviderConnections.Name: providerConnections,
	resource.BareMetalAssets.Name:     bareMetalAssets,
	resource.DiscoveryConfigs.Name:    discoveryConfigs,
	resource.DiscoveredClusters.Name:  discoveredClusters,
}

// For returns the table definition of kind.
func For(kind resource.Kind) (Definition, error) {
	build, ok := definitions[kind.Name]
	if !ok {
		return Definition{}, cnserrors.NewWithContext(cnserrors.ErrCodeNotFound,
			"no table definition for kind", map[string]any{"kind": kind.Name})
	}
	return build(), nil
}

// Key identifies an item by namespace/name, or name when cluster scoped.
func Key(item Item) string {
	return key(item.GetNamespace(), item.GetName())
}

func key(namespace, name string) string {
	if namespace != "" {
		return namespace + "/" + name
	}
	return name
}

// Actions are the callbacks bound to a resource table. Nil callbacks leave
// the matching action out.
type Actions struct {
	Create     func() error
	Delete     func(item Item) error
	DeleteMany func(items []Item) error
}

// ClientActions binds row and bulk delete to c.
func ClientActions(ctx context.Context, c resource.Interface, kind resource.Kind) Actions {
	return Actions{
		Delete: func(item Item) error {
			return c.Delete(ctx, kind, item.GetNamespace(), item.GetName())
		},
		DeleteMany: func(items []Item) error {
			return c.DeleteAll(ctx, kind, items)
		},
	}
}

// NewTable builds a resource table for def over items.
func NewTable(def Definition, items []Item, actions Actions) (*table.Table[Item], error) {
	cfg := table.Config[Item]{
		Columns:      def.Columns,
		KeyFn:        Key,
		SearchKeys:   def.SearchKeys,
		Filters:      def.Filters,
		DefaultSort:  def.DefaultSort,
		EmptyMessage: def.EmptyMessage,
	}
	if actions.Create != nil {
		cfg.TableActions = append(cfg.TableActions, table.TableAction{
			ID:    ActionCreate,
			Title: "Create",
			Click: actions.Create,
		})
	}
	if actions.DeleteMany != nil {
		cfg.BulkActions = append(cfg.BulkActions, table.BulkAction[Item]{
			ID:         ActionDelete,
			Title:      "Delete",
			Click:      actions.DeleteMany,
			IsDisabled: def.DeleteDisabled,
		})
	}
	if actions.Delete != nil {
		cfg.RowActions = append(cfg.RowActions, table.RowAction[Item]{
			ID:    ActionDelete,
			Title: "Delete",
			Click: actions.Delete,
		})
	}
	return table.New(cfg, items)
}
