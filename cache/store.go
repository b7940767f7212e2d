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

// Package cache defines the external key/value collaborator the
// orchestrator depends on, and a Redis-backed implementation of it.
package cache

import (
	"context"
	"time"
)

// Store is the external key/value collaborator the orchestrator writes to
// and reads from. Implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves the value stored at key. It returns errs.ErrCacheMiss
	// if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value at key with no expiration; callers pair it with an
	// Expire call per the orchestrator's SET-then-EXPIRE ordering.
	Set(ctx context.Context, key string, value []byte) error
	// Expire sets key's TTL. Calling it on a non-existent key is a no-op,
	// not an error.
	Expire(ctx context.Context, key string, ttl time.Duration) error
	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)
}
