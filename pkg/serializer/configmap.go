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

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/NVIDIA/cluster-console/pkg/defaults"
	"github.com/NVIDIA/cluster-console/pkg/header"
	"github.com/NVIDIA/cluster-console/pkg/k8s/client"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"
	"k8s.io/client-go/kubernetes"
)

// ConfigMapURIScheme prefixes ConfigMap destinations: cm://namespace/name.
const ConfigMapURIScheme = "cm://"

const (
	fieldManager   = "ccon"
	contentKeyBase = "view"
	unknownVersion = "unknown"
)

// ConfigMapWriter writes serialized data to a Kubernetes ConfigMap using
// server-side apply, so it creates or replaces in one call.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
	kube      kubernetes.Interface
}

// ConfigMapOption configures a ConfigMapWriter.
type ConfigMapOption func(*ConfigMapWriter)

// WithKubeClient sets the client used for the apply. Without it the
// process-wide client from package client is used.
func WithKubeClient(kube kubernetes.Interface) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.kube = kube
	}
}

// NewConfigMapWriter creates a new ConfigMapWriter that writes to the specified
// namespace and ConfigMap name in the given format.
func NewConfigMapWriter(namespace, name string, format Format, opts ...ConfigMapOption) *ConfigMapWriter {
	w := &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    orJSON(format),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func contentKey(format Format) string {
	return contentKeyBase + "." + format.Extension()
}

// Serialize applies a ConfigMap holding:
//   - view.{json|yaml|txt}: the serialized value
//   - format: the format used
//   - timestamp: RFC3339 time the value was produced
//
// Values embedding header.Header contribute their kind and version as labels.
func (w *ConfigMapWriter) Serialize(ctx context.Context, v any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	kube := w.kube
	if kube == nil {
		clients, err := client.GetClients()
		if err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		kube = clients.Kube
	}

	content, err := encode(w.format, v)
	if err != nil {
		return fmt.Errorf("failed to serialize value: %w", err)
	}

	kind := header.KindResourceTable.String()
	version := unknownVersion
	timestamp := ""
	if h, ok := v.(interface {
		GetKind() header.Kind
		GetMetadata() map[string]string
	}); ok {
		if k := h.GetKind(); k != "" {
			kind = k.String()
		}
		md := h.GetMetadata()
		if md["version"] != "" {
			version = md["version"]
		}
		timestamp = md["timestamp"]
	}
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	cm := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "ccon",
			"app.kubernetes.io/component": kind,
			"app.kubernetes.io/version":   version,
		}).
		WithData(map[string]string{
			contentKey(w.format): string(content),
			"format":             string(w.format),
			"timestamp":          timestamp,
		})

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"format", w.format,
		"size", len(content))

	_, err = kube.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, cm, metav1.ApplyOptions{
		FieldManager: fieldManager,
		Force:        true,
	})
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

// Close is a no-op; ConfigMapWriter holds no resources.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// parseConfigMapURI splits cm://namespace/name.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, ConfigMapURIScheme), "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])

	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}

	return namespace, name, nil
}
