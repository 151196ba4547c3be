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
	"fmt"
	"net"

	apierrors "k8s.io/apimachinery/pkg/api/errors"

	cnserrors "github.com/NVIDIA/cluster-console/pkg/errors"
)

// codeFor classifies an API call failure.
func codeFor(err error) cnserrors.ErrorCode {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return cnserrors.ErrCodeTimeout
	case errors.Is(err, context.Canceled):
		return cnserrors.ErrCodeUnavailable
	case apierrors.IsUnauthorized(err):
		return cnserrors.ErrCodeUnauthorized
	case apierrors.IsForbidden(err):
		return cnserrors.ErrCodeForbidden
	case apierrors.IsNotFound(err):
		return cnserrors.ErrCodeNotFound
	case apierrors.IsAlreadyExists(err), apierrors.IsConflict(err):
		return cnserrors.ErrCodeConflict
	case apierrors.IsInvalid(err), apierrors.IsBadRequest(err):
		return cnserrors.ErrCodeInvalidRequest
	case apierrors.IsMethodNotSupported(err):
		return cnserrors.ErrCodeMethodNotAllowed
	case apierrors.IsTooManyRequests(err):
		return cnserrors.ErrCodeRateLimitExceeded
	case apierrors.IsTimeout(err), apierrors.IsServerTimeout(err):
		return cnserrors.ErrCodeTimeout
	case apierrors.IsServiceUnavailable(err):
		return cnserrors.ErrCodeUnavailable
	case errors.As(err, &netErr):
		if netErr.Timeout() {
			return cnserrors.ErrCodeTimeout
		}
		return cnserrors.ErrCodeUnavailable
	default:
		return cnserrors.ErrCodeInternal
	}
}

// apiError wraps a failed API call into a structured error that names the
// kind, verb and object.
func apiError(err error, kind Kind, verb, namespace, name string) error {
	ctx := map[string]any{
		"kind": kind.Name,
		"verb": verb,
	}
	if namespace != "" {
		ctx["namespace"] = namespace
	}
	if name != "" {
		ctx["name"] = name
	}
	return cnserrors.WrapWithContext(codeFor(err), fmt.Sprintf("failed to %s %s", verb, kind.Name), err, ctx)
}

// ItemError is the failure of one object in a multi-object call such as
// DeleteAll.
type ItemError struct {
	Namespace string
	Name      string
	Err       error
}

func (e *ItemError) Error() string {
	if e.Namespace != "" {
		return fmt.Sprintf("%s/%s: %v", e.Namespace, e.Name, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}
