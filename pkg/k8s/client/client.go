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
package client

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// Clients bundles the API clients used by the console. Dynamic serves the
// cluster-management custom resources, Kube serves core resources and
// discovery.
type Clients struct {
	Kube    kubernetes.Interface
	Dynamic dynamic.Interface
	Config  *rest.Config
}

var (
	clientOnce    sync.Once
	cachedClients *Clients
	clientErr     error
)

// GetClients returns process-wide clients built from the discovered
// kubeconfig, creating them on first call.
//
// Discovery order:
//   - KUBECONFIG environment variable
//   - ~/.kube/config
//   - In-cluster service account
//
// Use BuildClients for an explicit kubeconfig path.
func GetClients() (*Clients, error) {
	clientOnce.Do(func() {
		cachedClients, clientErr = BuildClients("")
	})
	return cachedClients, clientErr
}

// BuildClients creates uncached clients from the given kubeconfig file.
// An empty path falls back to the discovery order of GetClients.
func BuildClients(kubeconfig string) (*Clients, error) {
	config, err := RestConfig(kubeconfig)
	if err != nil {
		return nil, err
	}

	kube, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	dyn, err := dynamic.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	return &Clients{Kube: kube, Dynamic: dyn, Config: config}, nil
}

// RestConfig resolves a rest.Config for kubeconfig.
func RestConfig(kubeconfig string) (*rest.Config, error) {
	kubeconfig = resolveKubeconfig(kubeconfig)

	// no kubeconfig at all means we are running inside a pod
	if kubeconfig == "" {
		config, err := rest.InClusterConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
		return config, nil
	}

	config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build kube config from %s: %w", kubeconfig, err)
	}
	return config, nil
}

func resolveKubeconfig(kubeconfig string) string {
	if kubeconfig != "" {
		return kubeconfig
	}
	if env := os.Getenv("KUBECONFIG"); env != "" {
		return env
	}
	home := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(home); err == nil {
		return home
	}
	return ""
}
