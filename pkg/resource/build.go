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
	"encoding/json"
	"fmt"
	"maps"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"

	cnserrors "github.com/NVIDIA/cluster-console/pkg/errors"
)

// ProviderKey is the spec key naming the provider of a provider connection.
const ProviderKey = "provider"

// Metadata is the subset of object metadata accepted in manifests.
type Metadata struct {
	Name      string            `json:"name" yaml:"name"`
	Namespace string            `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Labels    map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// Manifest is a creation request as read from a JSON or YAML file or an
// HTTP body. apiVersion and kind are optional.
type Manifest struct {
	APIVersion string         `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Kind       string         `json:"kind,omitempty" yaml:"kind,omitempty"`
	Metadata   Metadata       `json:"metadata" yaml:"metadata"`
	Spec       map[string]any `json:"spec,omitempty" yaml:"spec,omitempty"`
}

// FromManifest builds the object described by m for kind.
func FromManifest(kind Kind, m Manifest) (*unstructured.Unstructured, error) {
	if m.APIVersion != "" && m.APIVersion != kind.APIVersion() {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"manifest apiVersion does not match kind", map[string]any{"kind": kind.Name, "apiVersion": m.APIVersion})
	}
	if m.Kind != "" && m.Kind != kind.Kind {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"manifest kind does not match", map[string]any{"kind": kind.Name, "manifestKind": m.Kind})
	}
	return New(kind, m.Metadata.Namespace, m.Metadata.Name, m.Metadata.Labels, m.Spec)
}

// New builds the unstructured payload for creating an object of kind.
// Provider connections become Secrets: spec["provider"] sets the type label
// and every other spec entry is stored as string data.
func New(kind Kind, namespace, name string, labels map[string]string, spec map[string]any) (*unstructured.Unstructured, error) {
	if !kind.Namespaced {
		namespace = ""
	}
	if err := checkTarget(kind, namespace, name); err != nil {
		return nil, err
	}

	if kind.Name == ProviderConnections.Name {
		return newProviderConnection(namespace, name, labels, spec)
	}

	obj := map[string]any{
		"apiVersion": kind.APIVersion(),
		"kind":       kind.Kind,
		"metadata": Metadata{
			Name:      name,
			Namespace: namespace,
			Labels:    labels,
		},
	}
	if spec != nil {
		obj["spec"] = spec
	}

	// a JSON round trip normalizes numbers and nested maps decoded from YAML
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "resource spec is not valid JSON", err)
	}
	u := &unstructured.Unstructured{}
	if err := u.UnmarshalJSON(raw); err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "failed to decode resource", err)
	}
	return u, nil
}

func newProviderConnection(namespace, name string, labels map[string]string, spec map[string]any) (*unstructured.Unstructured, error) {
	provider, _ := spec[ProviderKey].(string)
	if provider == "" {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"provider connection requires a provider", map[string]any{"name": name})
	}

	l := maps.Clone(labels)
	if l == nil {
		l = make(map[string]string, 2)
	}
	l[ProviderTypeLabel] = provider
	l[CredentialsLabel] = ""

	data := make(map[string]string, len(spec))
	for k, v := range spec {
		if k == ProviderKey {
			continue
		}
		switch val := v.(type) {
		case string:
			data[k] = val
		case nil:
			data[k] = ""
		default:
			data[k] = fmt.Sprint(val)
		}
	}

	secret := &corev1.Secret{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Secret"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels:    l,
		},
		Type:       corev1.SecretTypeOpaque,
		StringData: data,
	}
	content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(secret)
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInternal, "failed to convert provider connection", err)
	}
	return &unstructured.Unstructured{Object: content}, nil
}
