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

// Package pvquery builds the upstream analytics query: metric, collection,
// absolute time window, optional interval and group_by, and filters
// (including the fixed device.family != Spider exclusion every query
// carries).
package pvquery

import (
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/pvcache/pvcache-go/errs"
	"github.com/pvcache/pvcache-go/jsonx"
)

// Metric is either a raw event count or a distinct count over a target
// field.
type Metric string

const (
	MetricCount       Metric = "count"
	MetricCountUnique Metric = "count_unique"
)

// Interval is the upstream's time-bucketing granularity.
type Interval string

const (
	IntervalMinutely Interval = "minutely"
	IntervalHourly   Interval = "hourly"
	IntervalDaily    Interval = "daily"
	IntervalWeekly   Interval = "weekly"
	IntervalMonthly  Interval = "monthly"
	IntervalYearly   Interval = "yearly"
)

var spiderExclusion = sync.OnceValue(func() Filter {
	return FilterNe("device.family", "Spider")
})

// Builder accumulates the parameters of one upstream query.
type Builder struct {
	metric     Metric
	collection string
	targetProp string
	from       time.Time
	to         time.Time
	interval   Interval
	groupBy    []string
	filters    []Filter
	err        error
}

// New starts a query against collection for the given absolute time window.
// metric selects count or count_unique; WithTargetField supplies the field
// a count_unique query is computed over.
func New(metric Metric, collection string, from, to time.Time) *Builder {
	return &Builder{metric: metric, collection: collection, from: from, to: to}
}

// WithTargetField sets the field count_unique is computed over. Calling it
// has no effect if the builder's metric is MetricCount.
func (b *Builder) WithTargetField(field string) *Builder {
	b.targetProp = field
	return b
}

// WithInterval sets the time-bucketing interval.
func (b *Builder) WithInterval(interval Interval) *Builder {
	b.interval = interval
	return b
}

// GroupBy adds a grouping field.
func (b *Builder) GroupBy(field string) *Builder {
	b.groupBy = append(b.groupBy, field)
	return b
}

// Filter adds a predicate.
func (b *Builder) Filter(f Filter) *Builder {
	b.filters = append(b.filters, f)
	return b
}

// WithPageBound adds the gt/lt pair that bounds the primary key's range, as
// the write paths of the orchestrator do for cache_by_page/cache_by_field.
// An inverted bound (pFrom > pTo) is recorded and surfaced by Validate
// rather than ignored.
func (b *Builder) WithPageBound(pFrom, pTo int64) *Builder {
	if pFrom > pTo {
		b.err = errs.InvalidArgument("query: page bound is inverted")
		return b
	}
	b.filters = append(b.filters, FilterGt("pageId", pFrom), FilterLt("pageId", pTo))
	return b
}

// Validate reports errs.InvalidArgument if the builder's time window is
// malformed or a prior call recorded an error.
func (b *Builder) Validate() error {
	if b.err != nil {
		return b.err
	}
	if b.to.Before(b.from) {
		return errs.InvalidArgument("query: to is before from")
	}
	return nil
}

// Values renders the builder into the upstream's HTTP query parameters.
// Every query carries the fixed Spider exclusion in addition to any
// filters the caller added.
func (b *Builder) Values(apiKey string) (url.Values, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	v := url.Values{}
	v.Set("api_key", apiKey)
	v.Set("event_collection", b.collection)

	timeframe, err := jsonx.Marshal(map[string]string{
		"start": b.from.UTC().Format(time.RFC3339),
		"end":   b.to.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, errs.InvalidArgument("query: encode timeframe: " + err.Error())
	}
	v.Set("timeframe", string(timeframe))

	if b.interval != "" {
		v.Set("interval", string(b.interval))
	}
	if b.metric == MetricCountUnique && b.targetProp != "" {
		v.Set("target_property", b.targetProp)
	}
	for _, g := range b.groupBy {
		v.Add("group_by", g)
	}

	filters := append(append([]Filter{}, b.filters...), spiderExclusion())
	filtersJSON, err := jsonx.Marshal(filters)
	if err != nil {
		return nil, errs.InvalidArgument("query: encode filters: " + err.Error())
	}
	v.Set("filters", string(filtersJSON))

	return v, nil
}

// PageBoundString renders a page-id bound for logging, matching
// cachekey.FormatBound's format.
func PageBoundString(pFrom, pTo int64) string {
	return strconv.FormatInt(pFrom, 10) + "~" + strconv.FormatInt(pTo, 10)
}
