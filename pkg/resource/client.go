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
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/client-go/dynamic"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/cluster-console/pkg/defaults"
	cnserrors "github.com/NVIDIA/cluster-console/pkg/errors"
)

// Interface is the resource access surface used by tables, the API server
// and the CLI. Both Client and CachedClient implement it.
type Interface interface {
	List(ctx context.Context, kind Kind, opts ListOptions) ([]unstructured.Unstructured, error)
	Get(ctx context.Context, kind Kind, namespace, name string) (*unstructured.Unstructured, error)
	Create(ctx context.Context, kind Kind, obj *unstructured.Unstructured) (*unstructured.Unstructured, error)
	Delete(ctx context.Context, kind Kind, namespace, name string) error
	DeleteAll(ctx context.Context, kind Kind, objs []unstructured.Unstructured) error
}

// ListOptions narrows a list. An empty Namespace lists every namespace.
type ListOptions struct {
	Namespace     string
	LabelSelector string
}

// Client reads and writes cluster-management resources through a dynamic
// client. Failures are returned as structured errors carrying the kind,
// verb and object.
type Client struct {
	dyn         dynamic.Interface
	pageSize    int64
	concurrency int
}

// Option configures a Client.
type Option func(*Client)

// WithPageSize sets the page size requested while listing.
func WithPageSize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithConcurrency caps in-flight deletes in DeleteAll.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// NewClient returns a Client backed by dyn.
func NewClient(dyn dynamic.Interface, opts ...Option) *Client {
	c := &Client{
		dyn:         dyn,
		pageSize:    defaults.ListPageSize,
		concurrency: defaults.BulkDeleteConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) resource(kind Kind, namespace string) dynamic.ResourceInterface {
	r := c.dyn.Resource(kind.GVR)
	if kind.Namespaced && namespace != "" {
		return r.Namespace(namespace)
	}
	return r
}

// List returns every object of kind, following continue tokens until the
// server reports the end of the list.
func (c *Client) List(ctx context.Context, kind Kind, opts ListOptions) (items []unstructured.Unstructured, err error) {
	start := time.Now()
	defer func() { observe(kind, verbList, start, err) }()

	lo := metav1.ListOptions{
		LabelSelector: joinSelectors(kind.Selector, opts.LabelSelector),
		Limit:         c.pageSize,
	}
	ns := ""
	if kind.Namespaced {
		ns = opts.Namespace
	}

	for {
		list, lerr := c.resource(kind, ns).List(ctx, lo)
		if lerr != nil {
			return nil, apiError(lerr, kind, verbList, ns, "")
		}
		items = append(items, list.Items...)
		if list.GetContinue() == "" {
			break
		}
		lo.Continue = list.GetContinue()
	}
	return items, nil
}

// Get returns a single object.
func (c *Client) Get(ctx context.Context, kind Kind, namespace, name string) (obj *unstructured.Unstructured, err error) {
	start := time.Now()
	defer func() { observe(kind, verbGet, start, err) }()

	if err = checkTarget(kind, namespace, name); err != nil {
		return nil, err
	}
	obj, err = c.resource(kind, namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, apiError(err, kind, verbGet, namespace, name)
	}
	return obj, nil
}

// Create submits obj. apiVersion and kind are filled in when missing and
// must match kind otherwise.
func (c *Client) Create(ctx context.Context, kind Kind, obj *unstructured.Unstructured) (out *unstructured.Unstructured, err error) {
	start := time.Now()
	defer func() { observe(kind, verbCreate, start, err) }()

	if obj == nil {
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "resource body is required")
	}
	obj = obj.DeepCopy()
	if err = prepare(kind, obj); err != nil {
		return nil, err
	}

	out, err = c.resource(kind, obj.GetNamespace()).Create(ctx, obj, metav1.CreateOptions{})
	if err != nil {
		return nil, apiError(err, kind, verbCreate, obj.GetNamespace(), obj.GetName())
	}
	return out, nil
}

// Delete removes one object. Dependents are removed in the background.
func (c *Client) Delete(ctx context.Context, kind Kind, namespace, name string) (err error) {
	start := time.Now()
	defer func() { observe(kind, verbDelete, start, err) }()

	if err = checkTarget(kind, namespace, name); err != nil {
		return err
	}
	err = c.resource(kind, namespace).Delete(ctx, name, metav1.DeleteOptions{
		PropagationPolicy: ptr.To(metav1.DeletePropagationBackground),
	})
	if err != nil {
		return apiError(err, kind, verbDelete, namespace, name)
	}
	return nil
}

// DeleteAll deletes objs concurrently. A failure does not stop the other
// deletes; every failure is returned joined, in input order, as an
// *ItemError naming the object.
func (c *Client) DeleteAll(ctx context.Context, kind Kind, objs []unstructured.Unstructured) error {
	errs := make([]error, len(objs))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i := range objs {
		ns, name := objs[i].GetNamespace(), objs[i].GetName()
		g.Go(func() error {
			if err := c.Delete(ctx, kind, ns, name); err != nil {
				errs[i] = &ItemError{Namespace: ns, Name: name, Err: err}
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

func checkTarget(kind Kind, namespace, name string) error {
	if name == "" {
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"resource name is required", map[string]any{"kind": kind.Name})
	}
	if kind.Namespaced && namespace == "" {
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"resource namespace is required", map[string]any{"kind": kind.Name, "name": name})
	}
	return nil
}

// prepare fills in and checks type information before a create.
func prepare(kind Kind, obj *unstructured.Unstructured) error {
	if obj.GetAPIVersion() == "" {
		obj.SetAPIVersion(kind.APIVersion())
	}
	if obj.GetKind() == "" {
		obj.SetKind(kind.Kind)
	}
	if obj.GetAPIVersion() != kind.APIVersion() || obj.GetKind() != kind.Kind {
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"resource type does not match kind", map[string]any{
				"kind":       kind.Name,
				"apiVersion": obj.GetAPIVersion(),
				"objectKind": obj.GetKind(),
			})
	}
	if !kind.Namespaced {
		obj.SetNamespace("")
	}
	if kind.Selector != "" {
		if _, ok := obj.GetLabels()[kind.Selector]; !ok {
			return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
				"resource is missing a required label", map[string]any{"kind": kind.Name, "label": kind.Selector})
		}
	}
	return checkTarget(kind, obj.GetNamespace(), obj.GetName())
}

func joinSelectors(selectors ...string) string {
	var parts []string
	for _, s := range selectors {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ",")
}
