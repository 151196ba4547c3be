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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/dynamic/fake"

	cnserrors "github.com/NVIDIA/cluster-console/pkg/errors"
	"github.com/NVIDIA/cluster-console/pkg/resource"
	"github.com/NVIDIA/cluster-console/pkg/table"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func managedCluster(name, version, available string, created time.Time) Item {
	u := unstructured.Unstructured{Object: map[string]any{
		"apiVersion": resource.ManagedClusters.APIVersion(),
		"kind":       resource.ManagedClusters.Kind,
		"metadata":   map[string]any{"name": name},
	}}
	if version != "" {
		_ = unstructured.SetNestedField(u.Object, version, "status", "version", "kubernetes")
	}
	if available != "" {
		_ = unstructured.SetNestedSlice(u.Object, []any{
			map[string]any{"type": "HubAcceptedManagedCluster", "status": "True"},
			map[string]any{"type": "ManagedClusterConditionAvailable", "status": available},
		}, "status", "conditions")
	}
	if !created.IsZero() {
		u.SetCreationTimestamp(metav1.NewTime(created))
	}
	u.SetLabels(map[string]string{"vendor": "OpenShift", "cloud": "Amazon"})
	return u
}

func clusters() []Item {
	return []Item{
		managedCluster("local-cluster", "v1.29.5+k3s1", "True", fixedNow.Add(-48*time.Hour)),
		managedCluster("prod-east", "v1.30.1", "False", fixedNow.Add(-3*time.Hour)),
		managedCluster("dev", "", "", time.Time{}),
		managedCluster("prod-west", "v1.9.0", "Unknown", fixedNow.Add(-10*time.Minute)),
	}
}

func newClusterTable(t *testing.T, actions Actions) *table.Table[Item] {
	t.Helper()
	def, err := For(resource.ManagedClusters)
	require.NoError(t, err)
	tbl, err := NewTable(def, clusters(), actions)
	require.NoError(t, err)
	return tbl
}

func keys(v *table.View[Item]) []string {
	out := make([]string, len(v.Rows))
	for i, r := range v.Rows {
		out[i] = r.Key
	}
	return out
}

func TestForEveryKind(t *testing.T) {
	for _, k := range resource.Kinds() {
		t.Run(k.Name, func(t *testing.T) {
			def, err := For(k)
			require.NoError(t, err)
			assert.Equal(t, k.Name, def.Kind.Name)
			require.NotEmpty(t, def.Columns)
			assert.Equal(t, "Name", def.Columns[0].Header)
			require.NotNil(t, def.DefaultSort)
			assert.NotEmpty(t, def.EmptyMessage)
		})
	}

	_, err := For(resource.Kind{Name: "pods"})
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeNotFound))
}

func TestManagedClusterCells(t *testing.T) {
	now = func() time.Time { return fixedNow }
	defer func() { now = time.Now }()

	tbl := newClusterTable(t, Actions{})
	v := tbl.View()

	assert.Equal(t, []string{"Name", "Status", "Distribution", "Labels", "Age"}, v.Headers)
	assert.Equal(t, []string{"dev", "local-cluster", "prod-east", "prod-west"}, keys(v))

	cells := map[string][]string{}
	for _, r := range v.Rows {
		cells[r.Key] = r.Cells
	}
	assert.Equal(t, []string{"local-cluster", "Ready", "v1.29.5+k3s1", "cloud=Amazon, vendor=OpenShift", "2d"}, cells["local-cluster"])
	assert.Equal(t, "Offline", cells["prod-east"][1])
	assert.Equal(t, "Unknown", cells["prod-west"][1])
	assert.Equal(t, "Unknown", cells["dev"][1])
	assert.Equal(t, "-", cells["dev"][4])
	assert.Equal(t, "10m", cells["prod-west"][4])
}

func TestManagedClusterSorts(t *testing.T) {
	tbl := newClusterTable(t, Actions{})
	def, _ := For(resource.ManagedClusters)

	col, ok := def.Column("distribution")
	require.True(t, ok)
	v, err := tbl.Dispatch(table.SortCmd{Column: col, Direction: table.Ascending})
	require.NoError(t, err)
	assert.Equal(t, []string{"prod-west", "local-cluster", "prod-east", "dev"}, keys(v))

	col, _ = def.Column("Age")
	v, err = tbl.Dispatch(table.SortCmd{Column: col, Direction: table.Ascending})
	require.NoError(t, err)
	assert.Equal(t, []string{"local-cluster", "prod-east", "prod-west", "dev"}, keys(v))

	col, _ = def.Column("Status")
	v, err = tbl.Dispatch(table.SortCmd{Column: col, Direction: table.Ascending})
	require.NoError(t, err)
	assert.Equal(t, []string{"prod-east", "local-cluster", "dev", "prod-west"}, keys(v))

	// labels are not sortable
	col, _ = def.Column("Labels")
	_, err = tbl.Dispatch(table.SortCmd{Column: col})
	assert.Error(t, err)

	_, ok = def.Column("nope")
	assert.False(t, ok)
}

func TestManagedClusterSearch(t *testing.T) {
	tbl := newClusterTable(t, Actions{})

	v, err := tbl.Dispatch(table.SearchCmd{Query: "offline"})
	require.NoError(t, err)
	assert.Equal(t, []string{"prod-east"}, keys(v))

	v, err = tbl.Dispatch(table.SearchCmd{Query: "prod"})
	require.NoError(t, err)
	assert.Equal(t, []string{"prod-east", "prod-west"}, keys(v))
}

func TestLocalClusterCannotBeBulkDeleted(t *testing.T) {
	called := false
	tbl := newClusterTable(t, Actions{DeleteMany: func([]Item) error { called = true; return nil }})

	_, err := tbl.Dispatch(table.SelectKeysCmd{Keys: []string{"local-cluster", "dev"}, Selected: true})
	require.NoError(t, err)
	_, err = tbl.Dispatch(table.ActionCmd{Kind: table.BulkActionKind, ID: ActionDelete})
	require.Error(t, err)
	assert.False(t, called)

	_, err = tbl.Dispatch(table.SelectKeysCmd{Keys: []string{"local-cluster"}, Selected: false})
	require.NoError(t, err)
	_, err = tbl.Dispatch(table.ActionCmd{Kind: table.BulkActionKind, ID: ActionDelete})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestClientActions(t *testing.T) {
	objs := []runtime.Object{
		discovered("discovery", "found-1", "4.15.2"),
		discovered("discovery", "found-2", "4.9.0"),
		discovered("other", "found-3", ""),
	}
	dyn := fake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(), resource.ListKinds(), objs...)
	client := resource.NewClient(dyn)
	ctx := context.Background()

	items, err := client.List(ctx, resource.DiscoveredClusters, resource.ListOptions{})
	require.NoError(t, err)

	def, err := For(resource.DiscoveredClusters)
	require.NoError(t, err)
	tbl, err := NewTable(def, items, ClientActions(ctx, client, def.Kind))
	require.NoError(t, err)

	v := tbl.View()
	require.Len(t, v.Rows, 3)
	assert.Equal(t, []string{"discovery/found-1", "discovery/found-2", "other/found-3"}, keys(v))
	assert.Equal(t, "Found 1", v.Rows[0].Cells[0])

	col, _ := def.Column("Version")
	v, err = tbl.Dispatch(table.SortCmd{Column: col, Direction: table.Descending})
	require.NoError(t, err)
	assert.Equal(t, []string{"other/found-3", "discovery/found-1", "discovery/found-2"}, keys(v))

	// row delete of the first rendered row
	_, err = tbl.Dispatch(table.ActionCmd{Kind: table.RowActionKind, ID: ActionDelete, Row: 0})
	require.NoError(t, err)

	// bulk delete of what remains selected by key
	_, err = tbl.Dispatch(table.SelectKeysCmd{Keys: []string{"discovery/found-1", "discovery/found-2"}, Selected: true})
	require.NoError(t, err)
	_, err = tbl.Dispatch(table.ActionCmd{Kind: table.BulkActionKind, ID: ActionDelete})
	require.NoError(t, err)

	left, err := client.List(ctx, resource.DiscoveredClusters, resource.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, left)

	// the table keeps its items until the caller replaces them
	assert.Len(t, tbl.Items(), 3)
}

func discovered(ns, name, version string) *unstructured.Unstructured {
	u := &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": resource.DiscoveredClusters.APIVersion(),
		"kind":       resource.DiscoveredClusters.Kind,
		"metadata":   map[string]any{"name": name, "namespace": ns},
		"spec": map[string]any{
			"type":    "ROSA",
			"console": "https://console." + name + ".example.com",
		},
	}}
	if version != "" {
		_ = unstructured.SetNestedField(u.Object, version, "spec", "openshiftVersion")
	}
	if name == "found-1" {
		_ = unstructured.SetNestedField(u.Object, "Found 1", "spec", "displayName")
	}
	return u
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"4.9.0", "4.15.2", -1},
		{"v1.30.1", "v1.29.5+k3s1", 1},
		{"4.14", "4.14.0", 1},
		{"", "4.14.0", 1},
		{"4.14.0", "garbage", -1},
		{"", "", 0},
		{"abc", "abd", -1},
	}
	for _, tt := range tests {
		if got := compareVersions(tt.a, tt.b); got != tt.want {
			t.Errorf("compareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestKey(t *testing.T) {
	u := Item{Object: map[string]any{}}
	u.SetName("a")
	assert.Equal(t, "a", Key(u))
	u.SetNamespace("ns")
	assert.Equal(t, "ns/a", Key(u))
}

func TestProviderName(t *testing.T) {
	u := Item{Object: map[string]any{}}
	u.SetLabels(map[string]string{resource.ProviderTypeLabel: "aws"})
	assert.Equal(t, "Amazon Web Services", providerName(u))
	u.SetLabels(map[string]string{resource.ProviderTypeLabel: "custom"})
	assert.Equal(t, "custom", providerName(u))
}

func TestProviderFilter(t *testing.T) {
	conn := func(ns, name, provider string) Item {
		u := Item{Object: map[string]any{}}
		u.SetNamespace(ns)
		u.SetName(name)
		u.SetLabels(map[string]string{resource.ProviderTypeLabel: provider})
		return u
	}
	def, err := For(resource.ProviderConnections)
	require.NoError(t, err)
	tbl, err := NewTable(def, []Item{
		conn("default", "aws-creds", "aws"),
		conn("team-a", "gcp-creds", "gcp"),
		conn("team-b", "aws-backup", "aws"),
	}, Actions{})
	require.NoError(t, err)

	v, err := tbl.Dispatch(table.FilterCmd{ID: FilterProvider, Values: []string{"aws"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"team-b/aws-backup", "default/aws-creds"}, keys(v))

	require.Len(t, v.Filters, 1)
	counts := map[string]int{}
	for _, o := range v.Filters[0].Options {
		counts[o.Value] = o.Count
	}
	assert.Equal(t, 2, counts["aws"])
	assert.Equal(t, 1, counts["gcp"])
	assert.Equal(t, 0, counts["vmw"])
	assert.Len(t, v.Filters[0].Options, len(providers))
	assert.Equal(t, "Amazon Web Services", v.Filters[0].Options[0].Label)
}

func TestAssetStatus(t *testing.T) {
	u := Item{Object: map[string]any{}}
	assert.Equal(t, "Pending", assetStatus(u))

	_ = unstructured.SetNestedSlice(u.Object, []any{
		map[string]any{"type": "CredentialsFound", "status": "True"},
		map[string]any{"type": "ClusterDeploymentFound", "status": "False"},
	}, "status", "conditions")
	assert.Equal(t, "ClusterDeploymentFound", assetStatus(u))

	_ = unstructured.SetNestedSlice(u.Object, []any{
		map[string]any{"type": "CredentialsFound", "status": "True"},
	}, "status", "conditions")
	assert.Equal(t, "Ready", assetStatus(u))
}
