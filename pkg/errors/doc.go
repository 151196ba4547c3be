// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeNotFound,
//	    "managed cluster not found",
//	    apiErr,
//	    map[string]any{
//	        "kind": "managedclusters",
//	        "name": name,
//	    },
//	)
//
// CodeOf and IsCode look through wrapped errors, so callers can branch on a
// code without caring where in the chain the StructuredError sits. The HTTP
// server maps codes to statuses; the resource layer maps Kubernetes API
// errors onto them.
package errors
