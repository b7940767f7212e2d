/*
Copyright 2025 The Antfly Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package errs enumerates the stable, caller-visible error kinds the
// orchestrator and core algebra surface. Every kind is distinguishable
// with errors.Is / errors.As; none are swallowed.
package errs

import "fmt"

// Kind is one of the stable error kinds of the taxonomy.
type Kind string

const (
	KindParseError      Kind = "parse_error"
	KindUpstreamError   Kind = "upstream_error"
	KindCacheError      Kind = "cache_error"
	KindCacheMiss       Kind = "cache_miss"
	KindTransportError  Kind = "transport_error"
	KindConfigError     Kind = "config_error"
	KindInvalidShape    Kind = "invalid_shape"
	KindInvalidArgument Kind = "invalid_argument"
)

// Error is the concrete error type carrying a stable Kind plus context.
// Callers classify failures with errors.As(&errs.Error{}) or by comparing
// Kind after extraction, never by matching message text.
type Error struct {
	Kind    Kind
	Message string
	// ErrorCode is populated for KindUpstreamError from the upstream's
	// {"message","error_code"} envelope.
	ErrorCode string
	Err       error
}

func (e *Error) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.ErrorCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so
// errors.Is(err, &Error{Kind: KindCacheMiss}) works without matching message
// text.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func new_(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func ParseError(msg string, err error) *Error { return new_(KindParseError, msg, err) }

func UpstreamError(message, errorCode string) *Error {
	return &Error{Kind: KindUpstreamError, Message: message, ErrorCode: errorCode}
}

func CacheError(msg string, err error) *Error { return new_(KindCacheError, msg, err) }

// CacheMiss is a sentinel (no wrapped error, no dynamic message) so
// errors.Is(err, errs.ErrCacheMiss) works directly.
var ErrCacheMiss = &Error{Kind: KindCacheMiss, Message: "cache miss"}

func TransportError(msg string, err error) *Error { return new_(KindTransportError, msg, err) }

func ConfigError(msg string) *Error { return &Error{Kind: KindConfigError, Message: msg} }

func InvalidShape(msg string) *Error { return &Error{Kind: KindInvalidShape, Message: msg} }

func InvalidArgument(msg string) *Error { return &Error{Kind: KindInvalidArgument, Message: msg} }

// KindOf extracts the Kind of err if it (or something it wraps) is an
// *Error, and ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if as(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// as is a tiny stand-in for errors.As that follows single Unwrap chains,
// avoiding an import of errors for KindOf.
func as(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
