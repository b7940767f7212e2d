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
	"context"

	"github.com/spf13/cobra"

	"github.com/pvcache/pvcache-go/pvquery"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Fetch a query from upstream and write it to the cache",
}

var cacheTotalCmd = &cobra.Command{
	Use:   "total",
	Short: "Cache the grand page-view total for a window",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := buildLogger()
		o, err := buildOrchestrator(logger)
		if err != nil {
			printError(err)
			return nil
		}
		from, to, err := parseWindow(fromFlag, toFlag)
		if err != nil {
			printError(err)
			return nil
		}
		if err := o.CacheTotal(context.Background(), from, to, unique); err != nil {
			printError(err)
			return nil
		}
		printOK()
		return nil
	},
}

var cacheByPageCmd = &cobra.Command{
	Use:   "by-page",
	Short: "Cache per-page counts for a page-id range",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := buildLogger()
		o, err := buildOrchestrator(logger)
		if err != nil {
			printError(err)
			return nil
		}
		from, to, err := parseWindow(fromFlag, toFlag)
		if err != nil {
			printError(err)
			return nil
		}
		if err := o.CacheByPage(context.Background(), pFromFlag, pToFlag, from, to, unique, pvquery.Interval(intervalFlag)); err != nil {
			printError(err)
			return nil
		}
		printOK()
		return nil
	},
}

var cacheByFieldCmd = &cobra.Command{
	Use:   "by-field",
	Short: "Cache per-page field breakdowns for a page-id range",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := buildLogger()
		o, err := buildOrchestrator(logger)
		if err != nil {
			printError(err)
			return nil
		}
		from, to, err := parseWindow(fromFlag, toFlag)
		if err != nil {
			printError(err)
			return nil
		}
		if err := o.CacheByField(context.Background(), pFromFlag, pToFlag, fieldFlag, from, to, unique); err != nil {
			printError(err)
			return nil
		}
		printOK()
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{cacheTotalCmd, cacheByPageCmd, cacheByFieldCmd} {
		c.Flags().StringVar(&fromFlag, "from", "", "window start, RFC3339")
		c.Flags().StringVar(&toFlag, "to", "", "window end, RFC3339")
		c.Flags().BoolVar(&unique, "unique", false, "count distinct visitors instead of raw views")
	}
	for _, c := range []*cobra.Command{cacheByPageCmd, cacheByFieldCmd} {
		c.Flags().Int64Var(&pFromFlag, "p-from", 0, "lower bound of the page-id range to cache")
		c.Flags().Int64Var(&pToFlag, "p-to", 0, "upper bound of the page-id range to cache")
	}
	cacheByPageCmd.Flags().StringVar(&intervalFlag, "interval", "", "time-bucketing interval, e.g. daily")
	cacheByFieldCmd.Flags().StringVar(&fieldFlag, "field", "", "field to break page counts down by")

	cacheCmd.AddCommand(cacheTotalCmd, cacheByPageCmd, cacheByFieldCmd)
}
