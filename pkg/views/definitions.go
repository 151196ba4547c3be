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
	"cmp"
	"fmt"
	"slices"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/NVIDIA/cluster-console/pkg/resource"
	"github.com/NVIDIA/cluster-console/pkg/table"
)

// LocalCluster is the name of the hub's own managed cluster. It cannot be
// deleted from the console.
const LocalCluster = "local-cluster"

// Managed cluster status values.
const (
	StatusReady   = "Ready"
	StatusOffline = "Offline"
	StatusUnknown = "Unknown"
)

// Provider display names keyed by the provider type label value.
var providers = map[string]string{
	"ans":           "Red Hat Ansible Automation Platform",
	"aws":           "Amazon Web Services",
	"azr":           "Microsoft Azure",
	"bmc":           "Bare metal",
	"gcp":           "Google Cloud",
	"hostinventory": "Host inventory",
	"ost":           "Red Hat OpenStack Platform",
	"redhatcloud":   "Red Hat OpenShift Cluster Manager",
	"vmw":           "VMware vSphere",
}

func byName() *table.SortSpec {
	return &table.SortSpec{Column: 0, Direction: table.Ascending}
}

func clusterStatus(item Item) string {
	switch condition(item, "ManagedClusterConditionAvailable") {
	case "True":
		return StatusReady
	case "False":
		return StatusOffline
	default:
		return StatusUnknown
	}
}

// Filter IDs.
const (
	FilterStatus   = "status"
	FilterProvider = "provider"
)

func statusFilter() table.Filter[Item] {
	return table.Filter[Item]{
		ID:    FilterStatus,
		Label: "Status",
		Options: []table.FilterOption{
			{Label: StatusReady, Value: StatusReady},
			{Label: StatusOffline, Value: StatusOffline},
			{Label: StatusUnknown, Value: StatusUnknown},
		},
		Fn: func(values []string, item Item) bool {
			return slices.Contains(values, clusterStatus(item))
		},
	}
}

// providerFilter offers every known provider type, ordered by display name.
func providerFilter() table.Filter[Item] {
	opts := make([]table.FilterOption, 0, len(providers))
	for value, label := range providers {
		opts = append(opts, table.FilterOption{Label: label, Value: value})
	}
	slices.SortFunc(opts, func(a, b table.FilterOption) int {
		return cmp.Compare(a.Label, b.Label)
	})
	return table.Filter[Item]{
		ID:      FilterProvider,
		Label:   "Provider",
		Options: opts,
		Fn: func(values []string, item Item) bool {
			return slices.Contains(values, item.GetLabels()[resource.ProviderTypeLabel])
		},
	}
}

func managedClusters() Definition {
	return Definition{
		Kind: resource.ManagedClusters,
		Columns: []table.Column[Item]{
			nameColumn(),
			stringColumn("Status", clusterStatus),
			versionColumn("Distribution", func(item Item) string {
				return str(item, "status", "version", "kubernetes")
			}),
			{
				Header: "Labels",
				Cell:   labelText,
				Search: labelText,
			},
			ageColumn(),
		},
		Filters:      []table.Filter[Item]{statusFilter()},
		DefaultSort:  byName(),
		EmptyMessage: "You don't have any clusters",
		DeleteDisabled: func(items []Item) bool {
			return slices.ContainsFunc(items, func(item Item) bool {
				return item.GetName() == LocalCluster
			})
		},
	}
}

func providerName(item Item) string {
	p := item.GetLabels()[resource.ProviderTypeLabel]
	if name, ok := providers[p]; ok {
		return name
	}
	return p
}

func providerConnections() Definition {
	return Definition{
		Kind: resource.ProviderConnections,
		Columns: []table.Column[Item]{
			nameColumn(),
			namespaceColumn(),
			stringColumn("Provider", providerName),
			ageColumn(),
		},
		Filters:      []table.Filter[Item]{providerFilter()},
		DefaultSort:  byName(),
		EmptyMessage: "You don't have any credentials",
	}
}

// assetStatus reports Ready when every condition holds, the type of the
// first failing condition otherwise, and Pending without conditions.
func assetStatus(item Item) string {
	conds, _, _ := unstructured.NestedSlice(item.Object, "status", "conditions")
	if len(conds) == 0 {
		return "Pending"
	}
	for _, c := range conds {
		m, ok := c.(map[string]any)
		if !ok {
			continue
		}
		if m["status"] != "True" {
			t, _ := m["type"].(string)
			return t
		}
	}
	return "Ready"
}

func bareMetalAssets() Definition {
	return Definition{
		Kind: resource.BareMetalAssets,
		Columns: []table.Column[Item]{
			nameColumn(),
			namespaceColumn(),
			pathColumn("Role", "spec.role"),
			pathColumn("BMC address", "spec.bmc.address"),
			stringColumn("Status", assetStatus),
		},
		SearchKeys:   []string{"spec.bootMACAddress"},
		DefaultSort:  byName(),
		EmptyMessage: "You don't have any bare metal assets",
	}
}

func discoveryConfigs() Definition {
	return Definition{
		Kind: resource.DiscoveryConfigs,
		Columns: []table.Column[Item]{
			nameColumn(),
			namespaceColumn(),
			pathColumn("Credential", "spec.credential"),
			{
				Header: "Last active",
				Cell: func(item Item) string {
					days, found, _ := unstructured.NestedInt64(item.Object, "spec", "filters", "lastActive")
					if !found {
						return "-"
					}
					return fmt.Sprintf("%d days", days)
				},
				SortPath: "spec.filters.lastActive",
			},
		},
		SearchKeys:   []string{"spec.filters.openShiftVersions"},
		DefaultSort:  byName(),
		EmptyMessage: "You don't have any discovery configs",
	}
}

func discoveredClusters() Definition {
	return Definition{
		Kind: resource.DiscoveredClusters,
		Columns: []table.Column[Item]{
			stringColumn("Name", func(item Item) string {
				if n := str(item, "spec", "displayName"); n != "" {
					return n
				}
				return item.GetName()
			}),
			namespaceColumn(),
			pathColumn("Type", "spec.type"),
			versionColumn("Version", func(item Item) string {
				return str(item, "spec", "openshiftVersion")
			}),
			{
				Header:   "Console URL",
				CellPath: "spec.console",
			},
		},
		SearchKeys:   []string{"spec.cloudProvider"},
		DefaultSort:  byName(),
		EmptyMessage: "You don't have any discovered clusters",
	}
}
