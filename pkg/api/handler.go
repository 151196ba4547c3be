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

package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/NVIDIA/cluster-console/pkg/defaults"
	cnserrors "github.com/NVIDIA/cluster-console/pkg/errors"
	"github.com/NVIDIA/cluster-console/pkg/resource"
	"github.com/NVIDIA/cluster-console/pkg/serializer"
	"github.com/NVIDIA/cluster-console/pkg/server"
	"github.com/NVIDIA/cluster-console/pkg/views"
)

// Handler serves resource tables over HTTP.
type Handler struct {
	client      resource.Interface
	maxBulkKeys int
	version     string
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithMaxBulkKeys caps the keys accepted by one bulk delete. Zero means no
// limit.
func WithMaxBulkKeys(n int) HandlerOption {
	return func(h *Handler) {
		h.maxBulkKeys = n
	}
}

// WithVersion sets the version stamped on response documents.
func WithVersion(v string) HandlerOption {
	return func(h *Handler) {
		h.version = v
	}
}

// NewHandler returns a Handler backed by c.
func NewHandler(c resource.Interface, opts ...HandlerOption) *Handler {
	h := &Handler{client: c}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the API routes keyed by mux pattern.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"GET /v1/kinds":                                  h.handleKinds,
		"GET /v1/resources/{kind}":                       h.handleList,
		"GET /v1/resources/{kind}/export":                h.handleExport,
		"POST /v1/resources/{kind}":                      h.handleCreate,
		"POST /v1/resources/{kind}/delete":               h.handleBulkDelete,
		"DELETE /v1/resources/{kind}/{name}":             h.handleDelete,
		"DELETE /v1/resources/{kind}/{namespace}/{name}": h.handleDelete,
	}
}

func (h *Handler) handleKinds(w http.ResponseWriter, _ *http.Request) {
	serializer.RespondJSON(w, http.StatusOK, views.NewKindsReport(h.version))
}

// lookup resolves the {kind} path value, writing the error response when
// it is unknown.
func lookup(w http.ResponseWriter, r *http.Request) (resource.Kind, bool) {
	kind, err := resource.Lookup(r.PathValue("kind"))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Unknown resource kind", nil)
		return resource.Kind{}, false
	}
	return kind, true
}

func listOptions(r *http.Request) resource.ListOptions {
	q := r.URL.Query()
	return resource.ListOptions{
		Namespace:     q.Get("namespace"),
		LabelSelector: q.Get("selector"),
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.TableHandlerTimeout)
	defer cancel()

	kind, ok := lookup(w, r)
	if !ok {
		return
	}
	q, err := views.ParseQuery(r.URL.Query())
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid table query", nil)
		return
	}

	def, t, err := views.Open(ctx, h.client, kind, listOptions(r))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to list resources", nil)
		return
	}
	v, err := q.Apply(def, t)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid table query", nil)
		return
	}

	slog.Debug("table view",
		"kind", kind.Name,
		"items", v.ItemCount,
		"total", v.TotalCount,
		"page", v.Page,
	)
	if len(v.DuplicateKeys) > 0 {
		slog.Warn("duplicate row keys", "kind", kind.Name, "keys", v.DuplicateKeys)
	}

	serializer.RespondJSON(w, http.StatusOK, views.NewReport(kind, v, h.version))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.TableHandlerTimeout)
	defer cancel()

	kind, ok := lookup(w, r)
	if !ok {
		return
	}
	_, t, err := views.Open(ctx, h.client, kind, listOptions(r))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to list resources", nil)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", kind.Name+".csv"))
	if err := t.ExportCSV(w); err != nil {
		// headers are gone, all we can do is log
		slog.Error("csv export failed", "kind", kind.Name, "error", err)
	}
}

// decodeBody reads a JSON or YAML body, chosen by Content-Type, into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	format := serializer.FormatJSON
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		format = serializer.FormatYAML
	}
	reader, err := serializer.NewReader(format, http.MaxBytesReader(w, r.Body, defaults.MaxRequestBodyBytes))
	if err != nil {
		return cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "unreadable request body", err)
	}
	defer reader.Close()

	if err := reader.Deserialize(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
				"request body too large", map[string]any{"limit": tooLarge.Limit})
		}
		return cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "invalid request body", err)
	}
	return nil
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.MutationHandlerTimeout)
	defer cancel()

	kind, ok := lookup(w, r)
	if !ok {
		return
	}
	var m resource.Manifest
	if err := decodeBody(w, r, &m); err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid manifest", nil)
		return
	}
	obj, err := resource.FromManifest(kind, m)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid manifest", nil)
		return
	}

	created, err := h.client.Create(ctx, kind, obj)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to create resource", nil)
		return
	}
	slog.Info("created", "kind", kind.Name, "key", views.Key(*created))
	serializer.RespondJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleBulkDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.MutationHandlerTimeout)
	defer cancel()

	kind, ok := lookup(w, r)
	if !ok {
		return
	}
	var sel views.Selection
	if err := decodeBody(w, r, &sel); err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid selection", nil)
		return
	}
	if err := sel.Validate(h.maxBulkKeys); err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid selection", nil)
		return
	}

	_, t, err := views.Open(ctx, h.client, kind, listOptions(r))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to list resources", nil)
		return
	}
	res, err := views.BulkDelete(t, sel, h.maxBulkKeys)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to delete resources", nil)
		return
	}

	status := http.StatusOK
	switch {
	case res.DryRun:
		slog.Info("bulk delete dry run", "kind", kind.Name, "matched", len(res.Matched))
	case len(res.Failed) > 0:
		status = http.StatusMultiStatus
		slog.Warn("bulk delete partially failed",
			"kind", kind.Name,
			"deleted", len(res.Deleted),
			"failed", len(res.Failed),
		)
	default:
		slog.Info("bulk deleted", "kind", kind.Name, "count", len(res.Deleted))
	}
	serializer.RespondJSON(w, status, views.NewDeleteReport(kind, res, h.version))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.MutationHandlerTimeout)
	defer cancel()

	kind, ok := lookup(w, r)
	if !ok {
		return
	}
	def, err := views.For(kind)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Unknown resource kind", nil)
		return
	}

	namespace, name := r.PathValue("namespace"), r.PathValue("name")
	obj, err := h.client.Get(ctx, kind, namespace, name)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to get resource", nil)
		return
	}
	if def.DeleteDisabled != nil && def.DeleteDisabled([]unstructured.Unstructured{*obj}) {
		server.WriteError(w, r, http.StatusForbidden, cnserrors.ErrCodeForbidden,
			"Resource cannot be deleted", false, map[string]any{"kind": kind.Name, "name": name})
		return
	}

	if err := h.client.Delete(ctx, kind, namespace, name); err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to delete resource", nil)
		return
	}
	slog.Info("deleted", "kind", kind.Name, "key", views.Key(*obj))
	serializer.RespondJSON(w, http.StatusOK, views.NewDeleteReport(kind, views.Deleted(views.Key(*obj)), h.version))
}
