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

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pvcache/pvcache-go/cache"
	"github.com/pvcache/pvcache-go/config"
	"github.com/pvcache/pvcache-go/logging"
	"github.com/pvcache/pvcache-go/orchestrator"
	"github.com/pvcache/pvcache-go/upstream"
)

var version = "0.1.0"

var (
	debug        bool
	aggregate    bool
	unique       bool
	upstreamURL  string
	collection   string
	apiKeyFlag   string
	cacheURLFlag string
)

var rootCmd = &cobra.Command{
	Use:     "pvcache",
	Short:   "Read-through cache for page-view analytics queries",
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "log at debug level")
	rootCmd.PersistentFlags().StringVar(&upstreamURL, "upstream-url", "", "base URL of the upstream analytics API")
	rootCmd.PersistentFlags().StringVar(&collection, "collection", "strikingly_pageviews", "event collection name")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "upstream read key (overrides PVCACHE_READ_KEY)")
	rootCmd.PersistentFlags().StringVar(&cacheURLFlag, "cache-url", "", "cache redis:// URL (overrides PVCACHE_CACHE_URL)")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(serveCmd)
}

func buildLogger() *zap.Logger {
	level := "info"
	if debug {
		level = "debug"
	}
	return logging.NewLogger(&logging.Config{Style: logging.StyleTerminal, Level: level})
}

// buildOrchestrator wires an Orchestrator from environment config, with
// --api-key and --cache-url flags taking precedence.
func buildOrchestrator(logger *zap.Logger) (*orchestrator.Orchestrator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	apiKey := cfg.ReadKey
	if apiKeyFlag != "" {
		apiKey = apiKeyFlag
	}
	cacheURL := cfg.CacheURL
	if cacheURLFlag != "" {
		cacheURL = cacheURLFlag
	}
	if upstreamURL == "" {
		return nil, fmt.Errorf("--upstream-url is required")
	}

	store, err := cache.NewRedisStore(cacheURL)
	if err != nil {
		return nil, err
	}
	client := upstream.New(upstreamURL, 0, logger)
	return orchestrator.New(client, store, logger, collection, apiKey), nil
}
