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

// Package orchestrator sequences the write paths (fetch upstream, decode,
// pre-trim, cache) and read paths (cache lookup, select, accumulate,
// serialize) of the Query Orchestrator. No read path makes an upstream
// call; a missing cache key is errs.ErrCacheMiss, not a fallback fetch.
package orchestrator

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/pvcache/pvcache-go/cache"
	"github.com/pvcache/pvcache-go/cachekey"
	"github.com/pvcache/pvcache-go/codec"
	"github.com/pvcache/pvcache-go/errs"
	"github.com/pvcache/pvcache-go/healthserver"
	"github.com/pvcache/pvcache-go/pretrim"
	"github.com/pvcache/pvcache-go/pvquery"
	"github.com/pvcache/pvcache-go/result"
	"github.com/pvcache/pvcache-go/upstream"
)

// ttlMultiDay and ttlSingleDay are the two TTLs the write path applies,
// chosen by the cached window's length.
const (
	ttlMultiDay  = 48 * time.Hour
	ttlSingleDay = 5 * time.Minute
)

// uniqueTarget is the field count_unique is computed over when a caller
// asks for distinct views rather than raw counts.
const uniqueTarget = "visitor_id"

// primaryField is the grouping field every write path partitions pages by.
const primaryField = "pageId"

// Orchestrator wires the upstream client and cache store behind the six
// write and read operations of the caching layer.
type Orchestrator struct {
	upstream   *upstream.Client
	store      cache.Store
	logger     *zap.Logger
	collection string
	apiKey     string
}

// New builds an Orchestrator against collection, authenticating upstream
// requests with apiKey.
func New(upstreamClient *upstream.Client, store cache.Store, logger *zap.Logger, collection, apiKey string) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{upstream: upstreamClient, store: store, logger: logger, collection: collection, apiKey: apiKey}
}

func metricAndTarget(unique bool) (pvquery.Metric, string) {
	if unique {
		return pvquery.MetricCountUnique, uniqueTarget
	}
	return pvquery.MetricCount, ""
}

func ttlFor(from, to time.Time) time.Duration {
	if to.Sub(from) <= 24*time.Hour {
		return ttlSingleDay
	}
	return ttlMultiDay
}

func validatePageBound(pFrom, pTo int64) error {
	if pFrom > pTo {
		return errs.InvalidArgument("page bound is inverted")
	}
	return nil
}

// CacheTotal stores the grand page-view count for [from, to], ungrouped.
func (o *Orchestrator) CacheTotal(ctx context.Context, from, to time.Time, unique bool) error {
	metric, target := metricAndTarget(unique)
	b := pvquery.New(metric, o.collection, from, to)
	if target != "" {
		b.WithTargetField(target)
	}

	r, err := o.fetchAndDecode(ctx, b)
	if err != nil {
		return err
	}

	key := cachekey.BuildWrite(cachekey.Params{Metric: string(metric), From: from, To: to})
	return o.writeCached(ctx, key, r, ttlFor(from, to))
}

// CacheByPage stores a RowSet (or, if interval is non-empty, a time-bucketed
// RowSet) of per-page counts for pages in [pFrom, pTo] over [from, to].
func (o *Orchestrator) CacheByPage(ctx context.Context, pFrom, pTo int64, from, to time.Time, unique bool, interval pvquery.Interval) error {
	if err := validatePageBound(pFrom, pTo); err != nil {
		return err
	}
	metric, target := metricAndTarget(unique)
	b := pvquery.New(metric, o.collection, from, to).
		GroupBy(primaryField).
		WithPageBound(pFrom, pTo)
	if target != "" {
		b.WithTargetField(target)
	}
	if interval != "" {
		b.WithInterval(interval)
	}

	r, err := o.fetchAndDecode(ctx, b)
	if err != nil {
		return err
	}

	key := cachekey.BuildWrite(cachekey.Params{
		Metric:   string(metric),
		Target:   primaryField,
		Interval: string(interval),
		Bound:    &cachekey.Bound{From: pFrom, To: pTo},
		From:     from,
		To:       to,
	})
	return o.writeCached(ctx, key, r, ttlFor(from, to))
}

// CacheByField stores a pre-trimmed RowSet of per-page counts broken down
// by field for pages in [pFrom, pTo] over [from, to].
func (o *Orchestrator) CacheByField(ctx context.Context, pFrom, pTo int64, field string, from, to time.Time, unique bool) error {
	if err := validatePageBound(pFrom, pTo); err != nil {
		return err
	}
	metric, target := metricAndTarget(unique)
	b := pvquery.New(metric, o.collection, from, to).
		GroupBy(primaryField).
		GroupBy(field).
		WithPageBound(pFrom, pTo)
	if target != "" {
		b.WithTargetField(target)
	}

	r, err := o.fetchAndDecode(ctx, b)
	if err != nil {
		return err
	}

	if rs, ok := r.AsRowSet(); ok {
		r = result.RowSetResult(pretrim.Normalize(rs, primaryField, field))
	}

	key := cachekey.BuildWrite(cachekey.Params{
		Metric: string(metric),
		Target: field,
		Bound:  &cachekey.Bound{From: pFrom, To: pTo},
		From:   from,
		To:     to,
	})
	return o.writeCached(ctx, key, r, ttlFor(from, to))
}

// GetTotal reads the document CacheTotal wrote for [from, to] and returns
// it unchanged: it is already a Scalar, with nothing left to select or
// accumulate.
func (o *Orchestrator) GetTotal(ctx context.Context, from, to time.Time, unique bool) (result.Result, error) {
	metric, _ := metricAndTarget(unique)
	return o.load(ctx, cachekey.Params{Metric: string(metric), From: from, To: to})
}

// GetByPage reads the document CacheByPage wrote for [pFrom, pTo] and
// interval, and selects the row for pageID. With no interval the written
// document is a RowSet and the result is a Scalar; with an interval it is
// a BucketsRowSet and the result is a BucketsScalar time series for that
// page.
func (o *Orchestrator) GetByPage(ctx context.Context, pageID, pFrom, pTo int64, from, to time.Time, unique bool, interval pvquery.Interval) (result.Result, error) {
	if err := validatePageBound(pFrom, pTo); err != nil {
		return result.Result{}, err
	}
	metric, _ := metricAndTarget(unique)
	r, err := o.load(ctx, cachekey.Params{
		Metric:   string(metric),
		Target:   primaryField,
		Interval: string(interval),
		Bound:    &cachekey.Bound{From: pFrom, To: pTo},
		From:     from,
		To:       to,
	})
	if err != nil {
		return result.Result{}, err
	}

	target := result.ShapeScalar
	if interval != "" {
		target = result.ShapeBucketsScalar
	}
	return result.Select(r, primaryField, result.I64(pageID), target)
}

// GetByField reads the document CacheByField wrote for [pFrom, pTo] and
// field, and selects the surviving field breakdown for pageID.
func (o *Orchestrator) GetByField(ctx context.Context, pageID, pFrom, pTo int64, field string, from, to time.Time, unique bool) (result.Result, error) {
	if err := validatePageBound(pFrom, pTo); err != nil {
		return result.Result{}, err
	}
	metric, _ := metricAndTarget(unique)
	r, err := o.load(ctx, cachekey.Params{
		Metric: string(metric),
		Target: field,
		Bound:  &cachekey.Bound{From: pFrom, To: pTo},
		From:   from,
		To:     to,
	})
	if err != nil {
		return result.Result{}, err
	}

	return result.Select(r, primaryField, result.I64(pageID), result.ShapeRowSet)
}

func (o *Orchestrator) fetchAndDecode(ctx context.Context, b *pvquery.Builder) (result.Result, error) {
	start := time.Now()
	body, err := o.upstream.Send(ctx, b, o.apiKey)
	healthserver.UpstreamLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return result.Result{}, err
	}
	return codec.Decode(body)
}

func (o *Orchestrator) writeCached(ctx context.Context, key string, r result.Result, ttl time.Duration) error {
	body, err := codec.Encode(r)
	if err != nil {
		return err
	}
	if err := o.store.Set(ctx, key, body); err != nil {
		healthserver.CacheErrors.Inc()
		return err
	}
	if err := o.store.Expire(ctx, key, ttl); err != nil {
		healthserver.CacheErrors.Inc()
		return err
	}
	o.logger.Debug("cached document", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (o *Orchestrator) load(ctx context.Context, p cachekey.Params) (result.Result, error) {
	key := cachekey.BuildRead(p)
	body, err := o.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, errs.ErrCacheMiss) {
			healthserver.CacheMisses.Inc()
		} else {
			healthserver.CacheErrors.Inc()
		}
		return result.Result{}, err
	}
	healthserver.CacheHits.Inc()
	return codec.Decode(body)
}
