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
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/NVIDIA/cluster-console/pkg/defaults"
)

// CachedClient serves List from a short-lived cache. Writes go straight to
// the API server and drop every cached list of the written kind.
//
// Lists returned from the cache are shared; callers must not modify them.
type CachedClient struct {
	*Client
	cache *gocache.Cache
}

// NewCachedClient wraps c with a list cache of the given TTL. A TTL below
// zero disables expiry.
func NewCachedClient(c *Client, ttl time.Duration) *CachedClient {
	return &CachedClient{
		Client: c,
		cache:  gocache.New(ttl, defaults.ListCacheCleanupInterval),
	}
}

// List returns the cached list of kind for opts or fetches it.
func (c *CachedClient) List(ctx context.Context, kind Kind, opts ListOptions) ([]unstructured.Unstructured, error) {
	key := cacheKey(kind, opts)
	if v, ok := c.cache.Get(key); ok {
		listCacheHits.WithLabelValues(kind.Name).Inc()
		return v.([]unstructured.Unstructured), nil
	}
	listCacheMisses.WithLabelValues(kind.Name).Inc()

	items, err := c.Client.List(ctx, kind, opts)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, items)
	return items, nil
}

// Create creates obj and invalidates cached lists of kind.
func (c *CachedClient) Create(ctx context.Context, kind Kind, obj *unstructured.Unstructured) (*unstructured.Unstructured, error) {
	defer c.Invalidate(kind)
	return c.Client.Create(ctx, kind, obj)
}

// Delete deletes one object and invalidates cached lists of kind.
func (c *CachedClient) Delete(ctx context.Context, kind Kind, namespace, name string) error {
	defer c.Invalidate(kind)
	return c.Client.Delete(ctx, kind, namespace, name)
}

// DeleteAll deletes objs and invalidates cached lists of kind, including
// after a partial failure.
func (c *CachedClient) DeleteAll(ctx context.Context, kind Kind, objs []unstructured.Unstructured) error {
	defer c.Invalidate(kind)
	return c.Client.DeleteAll(ctx, kind, objs)
}

// Invalidate drops every cached list of kind.
func (c *CachedClient) Invalidate(kind Kind) {
	prefix := kind.Name + "|"
	for k := range c.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			c.cache.Delete(k)
		}
	}
}

func cacheKey(kind Kind, opts ListOptions) string {
	return kind.Name + "|" + opts.Namespace + "|" + opts.LabelSelector
}
