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

package result

import (
	"sort"
	"time"

	"github.com/pvcache/pvcache-go/errs"
)

// Accumulate reduces r to target, summing counts. Valid transitions:
//
//	RowSet         -> Scalar          (sum of all row results)
//	BucketsScalar  -> Scalar          (sum across buckets)
//	BucketsRowSet  -> Scalar          (grand total)
//	BucketsRowSet  -> BucketsScalar   (sum rows within each bucket)
//
// A bare Scalar has nothing left to accumulate and always fails.
func Accumulate(r Result, target Shape) (Result, error) {
	switch r.shape {
	case ShapeRowSet:
		if target != ShapeScalar {
			return Result{}, errs.InvalidShape("accumulate: row_set can only accumulate to scalar")
		}
		var sum int64
		for _, row := range r.rowSet {
			sum += row.Result
		}
		return ScalarResult(sum), nil

	case ShapeBucketsScalar:
		if target != ShapeScalar {
			return Result{}, errs.InvalidShape("accumulate: buckets_scalar can only accumulate to scalar")
		}
		var sum int64
		for _, b := range r.bucketsScalar {
			sum += b.Value
		}
		return ScalarResult(sum), nil

	case ShapeBucketsRowSet:
		switch target {
		case ShapeScalar:
			var sum int64
			for _, b := range r.bucketsRowSet {
				for _, row := range b.Value {
					sum += row.Result
				}
			}
			return ScalarResult(sum), nil
		case ShapeBucketsScalar:
			out := make(BucketsScalar, len(r.bucketsRowSet))
			for i, b := range r.bucketsRowSet {
				var sum int64
				for _, row := range b.Value {
					sum += row.Result
				}
				out[i] = Bucket[int64]{Window: b.Window, Value: sum}
			}
			return BucketsScalarResult(out), nil
		default:
			return Result{}, errs.InvalidShape("accumulate: buckets_row_set can only accumulate to scalar or buckets_scalar")
		}

	default:
		return Result{}, errs.InvalidShape("accumulate: " + r.shape.String() + " has no further accumulation")
	}
}

// Select narrows r to the rows (or buckets of rows) whose named field
// equals value, reducing to target. Valid transitions:
//
//	RowSet        -> Scalar         (first matching row's count)
//	RowSet        -> RowSet         (all matching rows, field stripped)
//	BucketsRowSet -> Scalar         (first match across all buckets, in order)
//	BucketsRowSet -> BucketsScalar  (first match per bucket, 0 if none)
//	BucketsRowSet -> BucketsRowSet  (matching rows per bucket, field stripped)
//
// Scalar and BucketsScalar have no fields to select on and always fail.
func Select(r Result, field string, value ScalarOrText, target Shape) (Result, error) {
	switch r.shape {
	case ShapeRowSet:
		switch target {
		case ShapeScalar:
			for _, row := range r.rowSet {
				if v, ok := row.Field(field); ok && v.Equal(value) {
					return ScalarResult(row.Result), nil
				}
			}
			return ScalarResult(0), nil
		case ShapeRowSet:
			var out RowSet
			for _, row := range r.rowSet {
				if v, ok := row.Field(field); ok && v.Equal(value) {
					out = append(out, row.withoutField(field))
				}
			}
			return RowSetResult(out), nil
		default:
			return Result{}, errs.InvalidShape("select: row_set can only select to scalar or row_set")
		}

	case ShapeBucketsRowSet:
		switch target {
		case ShapeScalar:
			for _, b := range r.bucketsRowSet {
				for _, row := range b.Value {
					if v, ok := row.Field(field); ok && v.Equal(value) {
						return ScalarResult(row.Result), nil
					}
				}
			}
			return ScalarResult(0), nil
		case ShapeBucketsScalar:
			out := make(BucketsScalar, len(r.bucketsRowSet))
			for i, b := range r.bucketsRowSet {
				var found int64
				for _, row := range b.Value {
					if v, ok := row.Field(field); ok && v.Equal(value) {
						found = row.Result
						break
					}
				}
				out[i] = Bucket[int64]{Window: b.Window, Value: found}
			}
			return BucketsScalarResult(out), nil
		case ShapeBucketsRowSet:
			out := make(BucketsRowSet, len(r.bucketsRowSet))
			for i, b := range r.bucketsRowSet {
				var rows RowSet
				for _, row := range b.Value {
					if v, ok := row.Field(field); ok && v.Equal(value) {
						rows = append(rows, row.withoutField(field))
					}
				}
				out[i] = Bucket[RowSet]{Window: b.Window, Value: rows}
			}
			return BucketsRowSetResult(out), nil
		default:
			return Result{}, errs.InvalidShape("select: buckets_row_set cannot select to that shape")
		}

	default:
		return Result{}, errs.InvalidShape("select: " + r.shape.String() + " has no fields to select on")
	}
}

// Range retains only the bucket windows that lie within [from, to],
// preserving order. Only the two bucketed shapes have windows; Scalar and
// RowSet always fail.
func Range(r Result, from, to time.Time) (Result, error) {
	switch r.shape {
	case ShapeBucketsScalar:
		var out BucketsScalar
		for _, b := range r.bucketsScalar {
			if b.Window.Within(from, to) {
				out = append(out, b)
			}
		}
		return BucketsScalarResult(out), nil

	case ShapeBucketsRowSet:
		var out BucketsRowSet
		for _, b := range r.bucketsRowSet {
			if b.Window.Within(from, to) {
				out = append(out, b)
			}
		}
		return BucketsRowSetResult(out), nil

	default:
		return Result{}, errs.InvalidShape("range: " + r.shape.String() + " has no time windows")
	}
}

// Merge concatenates two count time series into one, stable-sorted by
// window start. Buckets that share a window start are not joined or
// summed; both survive, a before b, since sort.SliceStable preserves the
// input order of the append below. Merge is defined only over
// BucketsScalar values, not over Result, so calling it on any other shape
// is a compile error rather than a runtime InvalidShape failure.
func Merge(a, b BucketsScalar) BucketsScalar {
	out := make(BucketsScalar, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Window.Start.Before(out[j].Window.Start)
	})
	return out
}
