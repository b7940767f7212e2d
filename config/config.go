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

// Package config loads the three environment-derived values the CLI and
// orchestrator need: the upstream project id, the upstream read key, and
// the cache URL. Three required strings don't justify a struct-tag
// env-binding library; plain os.LookupEnv surfaces errs.ConfigError on a
// missing variable at first use.
package config

import (
	"os"

	"github.com/pvcache/pvcache-go/errs"
)

const (
	envProjectID = "PVCACHE_PROJECT_ID"
	envReadKey   = "PVCACHE_READ_KEY"
	envCacheURL  = "PVCACHE_CACHE_URL"
)

// Config holds the credentials and endpoint pvcache needs to talk to the
// upstream analytics API and the cache.
type Config struct {
	ProjectID string
	ReadKey   string
	CacheURL  string
}

// Load reads Config from the environment, returning errs.ConfigError for
// the first missing required variable.
func Load() (Config, error) {
	projectID, err := require(envProjectID)
	if err != nil {
		return Config{}, err
	}
	readKey, err := require(envReadKey)
	if err != nil {
		return Config{}, err
	}
	cacheURL, err := require(envCacheURL)
	if err != nil {
		return Config{}, err
	}
	return Config{ProjectID: projectID, ReadKey: readKey, CacheURL: cacheURL}, nil
}

func require(name string) (string, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return "", errs.ConfigError("missing required environment variable " + name)
	}
	return v, nil
}
