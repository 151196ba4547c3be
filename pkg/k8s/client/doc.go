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

// Package client builds the Kubernetes clients used to reach the hub
// cluster: a typed clientset for core resources and discovery, and a
// dynamic client for the cluster-management custom resources.
//
// Process-wide clients are created once and shared:
//
//	clients, err := client.GetClients()
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes clients: %w", err)
//	}
//	list, err := clients.Dynamic.Resource(gvr).List(ctx, metav1.ListOptions{})
//
// For an explicit kubeconfig, for instance from a --kubeconfig flag, use
// BuildClients, which bypasses the shared instance:
//
//	clients, err := client.BuildClients("/path/to/kubeconfig")
//
// # Configuration Discovery
//
// An empty kubeconfig path is resolved in order:
//  1. KUBECONFIG environment variable
//  2. ~/.kube/config, when it exists
//  3. In-cluster service account configuration
//
// # Testing
//
// Code that talks to the cluster accepts dynamic.Interface, so tests use
// k8s.io/client-go/dynamic/fake:
//
//	dyn := fake.NewSimpleDynamicClientWithCustomListKinds(scheme, listKinds)
//	c := resource.NewClient(dyn)
package client
