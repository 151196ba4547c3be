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
package resource

import (
	"slices"
	"strings"

	"k8s.io/apimachinery/pkg/runtime/schema"

	cnserrors "github.com/NVIDIA/cluster-console/pkg/errors"
)

// ProviderTypeLabel marks a Secret as a provider connection and carries the
// provider name, e.g. "aws" or "hostinventory".
const ProviderTypeLabel = "cluster.open-cluster-management.io/type"

// CredentialsLabel is set on every provider connection Secret.
const CredentialsLabel = "cluster.open-cluster-management.io/credentials"

// Kind describes one kind of cluster-management resource the console can
// list, create and delete.
type Kind struct {
	// Name is the plural resource name used on the command line and in URLs.
	Name string `json:"name" yaml:"name"`
	// Kind is the Kubernetes kind.
	Kind string `json:"kind" yaml:"kind"`
	// Title is the human readable plural.
	Title   string   `json:"title" yaml:"title"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`

	GVR        schema.GroupVersionResource `json:"-" yaml:"-"`
	Namespaced bool                        `json:"namespaced" yaml:"namespaced"`

	// Selector is a label selector always applied when listing.
	Selector string `json:"selector,omitempty" yaml:"selector,omitempty"`
}

// APIVersion returns group/version, or just the version for the core group.
func (k Kind) APIVersion() string {
	return k.GVR.GroupVersion().String()
}

// GVK returns the group, version and kind.
func (k Kind) GVK() schema.GroupVersionKind {
	return k.GVR.GroupVersion().WithKind(k.Kind)
}

var (
	ManagedClusters = Kind{
		Name:    "managedclusters",
		Kind:    "ManagedCluster",
		Title:   "Managed clusters",
		Aliases: []string{"managedcluster", "clusters", "cluster", "mc"},
		GVR: schema.GroupVersionResource{
			Group:    "cluster.open-cluster-management.io",
			Version:  "v1",
			Resource: "managedclusters",
		},
	}

	ProviderConnections = Kind{
		Name:       "providerconnections",
		Kind:       "Secret",
		Title:      "Credentials",
		Aliases:    []string{"providerconnection", "credentials", "credential", "pc"},
		GVR:        schema.GroupVersionResource{Version: "v1", Resource: "secrets"},
		Namespaced: true,
		Selector:   ProviderTypeLabel,
	}

	BareMetalAssets = Kind{
		Name:    "baremetalassets",
		Kind:    "BareMetalAsset",
		Title:   "Bare metal assets",
		Aliases: []string{"baremetalasset", "bma"},
		GVR: schema.GroupVersionResource{
			Group:    "inventory.open-cluster-management.io",
			Version:  "v1alpha1",
			Resource: "baremetalassets",
		},
		Namespaced: true,
	}

	DiscoveryConfigs = Kind{
		Name:    "discoveryconfigs",
		Kind:    "DiscoveryConfig",
		Title:   "Discovery configs",
		Aliases: []string{"discoveryconfig", "dc"},
		GVR: schema.GroupVersionResource{
			Group:    "discovery.open-cluster-management.io",
			Version:  "v1",
			Resource: "discoveryconfigs",
		},
		Namespaced: true,
	}

	DiscoveredClusters = Kind{
		Name:    "discoveredclusters",
		Kind:    "DiscoveredCluster",
		Title:   "Discovered clusters",
		Aliases: []string{"discoveredcluster", "dsc"},
		GVR: schema.GroupVersionResource{
			Group:    "discovery.open-cluster-management.io",
			Version:  "v1",
			Resource: "discoveredclusters",
		},
		Namespaced: true,
	}
)

var registry = []Kind{
	ManagedClusters,
	ProviderConnections,
	BareMetalAssets,
	DiscoveryConfigs,
	DiscoveredClusters,
}

// Kinds returns every registered kind.
func Kinds() []Kind {
	return slices.Clone(registry)
}

// Lookup finds a kind by plural name, alias or Kubernetes kind,
// case-insensitively.
func Lookup(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, k := range registry {
		if n == k.Name || n == strings.ToLower(k.Kind) || slices.Contains(k.Aliases, n) {
			return k, nil
		}
	}
	return Kind{}, cnserrors.NewWithContext(cnserrors.ErrCodeNotFound,
		"unknown resource kind", map[string]any{"kind": name})
}

// ListKinds maps each registered resource to its list kind, as needed by
// dynamic clients that do not know the types.
func ListKinds() map[schema.GroupVersionResource]string {
	out := make(map[schema.GroupVersionResource]string, len(registry))
	for _, k := range registry {
		out[k.GVR] = k.Kind + "List"
	}
	return out
}
