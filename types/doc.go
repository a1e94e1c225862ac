// Package types holds the shared request/response shapes and the
// structured error type used by every FlexStack facade.
package types
