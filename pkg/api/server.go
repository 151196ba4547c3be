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
	"log/slog"

	"k8s.io/client-go/dynamic"

	"github.com/NVIDIA/cluster-console/pkg/k8s/client"
	"github.com/NVIDIA/cluster-console/pkg/logging"
	"github.com/NVIDIA/cluster-console/pkg/resource"
	"github.com/NVIDIA/cluster-console/pkg/server"
)

const (
	name           = "ccond"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags, e.g.
	// -X "github.com/NVIDIA/cluster-console/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve connects to the cluster from the ambient kubeconfig or in-cluster
// config, starts the API server and blocks until shutdown.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	clients, err := client.GetClients()
	if err != nil {
		slog.Error("failed to create kubernetes clients", "error", err)
		return err
	}

	cfg := server.NewConfig()
	h := NewHandler(newResourceClient(clients.Dynamic, cfg),
		WithMaxBulkKeys(cfg.MaxBulkKeys),
		WithVersion(version),
	)

	s := server.New(
		server.WithConfig(cfg),
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(h.Routes()),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

// newResourceClient caches lists when cfg has a positive cache TTL.
func newResourceClient(dyn dynamic.Interface, cfg *server.Config) resource.Interface {
	c := resource.NewClient(dyn)
	if cfg.ListCacheTTL <= 0 {
		return c
	}
	return resource.NewCachedClient(c, cfg.ListCacheTTL)
}
