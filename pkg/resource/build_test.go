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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	cnserrors "github.com/NVIDIA/cluster-console/pkg/errors"
)

func TestNew(t *testing.T) {
	spec := map[string]any{
		"credential": "aws-creds",
		"filters": map[string]any{
			"lastActive": 7,
		},
	}
	u, err := New(DiscoveryConfigs, "discovery", "discovery", map[string]string{"team": "a"}, spec)
	require.NoError(t, err)

	assert.Equal(t, "discovery.open-cluster-management.io/v1", u.GetAPIVersion())
	assert.Equal(t, "DiscoveryConfig", u.GetKind())
	assert.Equal(t, "discovery", u.GetNamespace())
	assert.Equal(t, map[string]string{"team": "a"}, u.GetLabels())

	days, found, err := unstructured.NestedInt64(u.Object, "spec", "filters", "lastActive")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(7), days)
}

func TestNewClusterScopedDropsNamespace(t *testing.T) {
	u, err := New(ManagedClusters, "whatever", "edge-1", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, u.GetNamespace())
	_, found := u.Object["spec"]
	assert.False(t, found)
}

func TestNewProviderConnection(t *testing.T) {
	u, err := New(ProviderConnections, "default", "aws-creds", map[string]string{"owner": "ops"}, map[string]any{
		ProviderKey:         "aws",
		"aws_access_key_id": "AKIA",
		"baseDomain":        "example.com",
		"port":              6443,
	})
	require.NoError(t, err)

	assert.Equal(t, "v1", u.GetAPIVersion())
	assert.Equal(t, "Secret", u.GetKind())
	assert.Equal(t, map[string]string{
		"owner":           "ops",
		ProviderTypeLabel: "aws",
		CredentialsLabel:  "",
	}, u.GetLabels())

	data, found, err := unstructured.NestedStringMap(u.Object, "stringData")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, map[string]string{
		"aws_access_key_id": "AKIA",
		"baseDomain":        "example.com",
		"port":              "6443",
	}, data)

	secretType, _, _ := unstructured.NestedString(u.Object, "type")
	assert.Equal(t, "Opaque", secretType)
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		ns   string
		obj  string
		spec map[string]any
	}{
		{name: "missing name", kind: ManagedClusters},
		{name: "missing namespace", kind: BareMetalAssets, obj: "worker-0"},
		{name: "provider missing", kind: ProviderConnections, ns: "default", obj: "creds", spec: map[string]any{"a": "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.kind, tt.ns, tt.obj, nil, tt.spec)
			require.Error(t, err)
			assert.Equal(t, cnserrors.ErrCodeInvalidRequest, cnserrors.CodeOf(err))
		})
	}
}

func TestFromManifest(t *testing.T) {
	m := Manifest{
		Metadata: Metadata{Name: "worker-0", Namespace: "hosts"},
		Spec:     map[string]any{"role": "worker", "bmc": map[string]any{"address": "ipmi://10.0.0.10"}},
	}

	u, err := FromManifest(BareMetalAssets, m)
	require.NoError(t, err)
	addr, _, _ := unstructured.NestedString(u.Object, "spec", "bmc", "address")
	assert.Equal(t, "ipmi://10.0.0.10", addr)

	m.Kind = "ManagedCluster"
	_, err = FromManifest(BareMetalAssets, m)
	assert.Error(t, err)

	m.Kind = ""
	m.APIVersion = "inventory.open-cluster-management.io/v1"
	_, err = FromManifest(BareMetalAssets, m)
	assert.Error(t, err)
}
