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

// Package cachekey builds the deterministic cache key string from query
// parameters (metric, target field, interval, primary-key bound, time
// window). BuildWrite and BuildRead are deliberately separate functions,
// not one function with a flag: the write side applies a +4h correction
// before flooring to the day boundary and the read side does not. Callers
// on the read path must pass the identical raw "from"/"to" timestamps used
// on the write path, or the computed keys will not match.
package cachekey

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dayOffsetFormat = "2006-01-02T15:04:05-07:00"

// Bound is the optional numeric range applied to the primary grouping key
// (e.g. a page-id range).
type Bound struct {
	From int64
	To   int64
}

// Params holds every component that can appear in a cache key. Target,
// Interval, and Bound are optional; an omitted component is left out of
// the key entirely rather than rendered empty.
type Params struct {
	Metric   string
	Target   string
	Interval string
	Bound    *Bound
	From     time.Time
	To       time.Time
}

// BuildWrite renders the write-side key: From/To are shifted +4h before
// being floored to their UTC day boundary, compensating for a business-day
// rollover. See the package doc for why this must not be unified with
// BuildRead.
func BuildWrite(p Params) string {
	from := floorToDay(p.From.UTC().Add(4 * time.Hour))
	to := floorToDay(p.To.UTC().Add(4 * time.Hour))
	return build(p, from, to)
}

// BuildRead renders the read-side key: From/To are floored to their UTC
// day boundary with no offset correction.
func BuildRead(p Params) string {
	from := floorToDay(p.From.UTC())
	to := floorToDay(p.To.UTC())
	return build(p, from, to)
}

func build(p Params, from, to time.Time) string {
	var parts []string
	parts = append(parts, p.Metric)
	if p.Target != "" {
		parts = append(parts, p.Target)
	}
	if p.Interval != "" {
		parts = append(parts, p.Interval)
	}
	if p.Bound != nil {
		parts = append(parts, fmt.Sprintf("%d~%d", p.Bound.From, p.Bound.To))
	}
	key := strings.Join(parts, ".")
	return key + "." + from.Format(dayOffsetFormat) + "~" + to.Format(dayOffsetFormat)
}

func floorToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatBound renders a bound as "from~to", the same form the key's bound
// component takes, and returns "" for a nil bound.
func FormatBound(b *Bound) string {
	if b == nil {
		return ""
	}
	return strconv.FormatInt(b.From, 10) + "~" + strconv.FormatInt(b.To, 10)
}
