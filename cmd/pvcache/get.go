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
	"time"

	"github.com/spf13/cobra"

	"github.com/pvcache/pvcache-go/pvquery"
)

var (
	fromFlag     string
	toFlag       string
	pFromFlag    int64
	pToFlag      int64
	pageIDFlag   int64
	fieldFlag    string
	intervalFlag string
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Read a cached query result, failing on a cache miss",
}

var getTotalCmd = &cobra.Command{
	Use:   "total",
	Short: "Read the grand page-view total for a window",
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
		r, err := o.GetTotal(context.Background(), from, to, unique)
		if err != nil {
			printError(err)
			return nil
		}
		printResult(r)
		return nil
	},
}

var getByPageCmd = &cobra.Command{
	Use:   "by-page",
	Short: "Read a page's cached count or time series",
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
		r, err := o.GetByPage(context.Background(), pageIDFlag, pFromFlag, pToFlag, from, to, unique, pvquery.Interval(intervalFlag))
		if err != nil {
			printError(err)
			return nil
		}
		printResult(r)
		return nil
	},
}

var getByFieldCmd = &cobra.Command{
	Use:   "by-field",
	Short: "Read a page's cached field breakdown",
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
		r, err := o.GetByField(context.Background(), pageIDFlag, pFromFlag, pToFlag, fieldFlag, from, to, unique)
		if err != nil {
			printError(err)
			return nil
		}
		printResult(r)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{getTotalCmd, getByPageCmd, getByFieldCmd} {
		c.Flags().StringVar(&fromFlag, "from", "", "window start, RFC3339")
		c.Flags().StringVar(&toFlag, "to", "", "window end, RFC3339")
		c.Flags().BoolVar(&unique, "unique", false, "count distinct visitors instead of raw views")
	}
	for _, c := range []*cobra.Command{getByPageCmd, getByFieldCmd} {
		c.Flags().Int64Var(&pageIDFlag, "page-id", 0, "page id to select")
		c.Flags().Int64Var(&pFromFlag, "p-from", 0, "lower bound of the cached page-id range")
		c.Flags().Int64Var(&pToFlag, "p-to", 0, "upper bound of the cached page-id range")
	}
	getByPageCmd.Flags().StringVar(&intervalFlag, "interval", "", "time-bucketing interval used when the document was cached")
	getByFieldCmd.Flags().StringVar(&fieldFlag, "field", "", "breakdown field used when the document was cached")
	getCmd.PersistentFlags().BoolVar(&aggregate, "aggregate", false, "accumulate the result to a single scalar before printing")

	getCmd.AddCommand(getTotalCmd, getByPageCmd, getByFieldCmd)
}

func parseWindow(from, to string) (time.Time, time.Time, error) {
	f, err := time.Parse(time.RFC3339, from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return f, t, nil
}
