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

// Package result implements the Result Algebra: a runtime-discriminated
// value that is either a bare count, a grouped RowSet, or either of those
// bucketed by time window, plus the Accumulate/Select/Range/Merge
// operations over it. The shape is never encoded in the Go type system —
// every operation checks it at runtime and fails with errs.InvalidShape
// when the combination requested is not one the upstream protocol
// produces.
package result

// Shape identifies which of the four variants a Result currently holds.
type Shape int

const (
	ShapeScalar Shape = iota
	ShapeRowSet
	ShapeBucketsScalar
	ShapeBucketsRowSet
)

func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeRowSet:
		return "row_set"
	case ShapeBucketsScalar:
		return "buckets_scalar"
	case ShapeBucketsRowSet:
		return "buckets_row_set"
	default:
		return "unknown"
	}
}

// BucketsScalar is a time series of plain counts, one per interval.
type BucketsScalar = []Bucket[int64]

// BucketsRowSet is a time series of grouped row sets, one per interval.
type BucketsRowSet = []Bucket[RowSet]

// Result is the tagged union produced by decoding an upstream response and
// consumed by Accumulate/Select/Range/Merge.
type Result struct {
	shape         Shape
	scalar        int64
	rowSet        RowSet
	bucketsScalar BucketsScalar
	bucketsRowSet BucketsRowSet
}

// ScalarResult builds a Result holding a bare count.
func ScalarResult(v int64) Result { return Result{shape: ShapeScalar, scalar: v} }

// RowSetResult builds a Result holding a grouped row set.
func RowSetResult(rs RowSet) Result { return Result{shape: ShapeRowSet, rowSet: rs} }

// BucketsScalarResult builds a Result holding a count time series.
func BucketsScalarResult(b BucketsScalar) Result {
	return Result{shape: ShapeBucketsScalar, bucketsScalar: b}
}

// BucketsRowSetResult builds a Result holding a grouped time series.
func BucketsRowSetResult(b BucketsRowSet) Result {
	return Result{shape: ShapeBucketsRowSet, bucketsRowSet: b}
}

// Shape reports which variant r currently holds.
func (r Result) Shape() Shape { return r.shape }

// AsScalar returns the scalar payload and true if r is a Scalar.
func (r Result) AsScalar() (int64, bool) {
	if r.shape != ShapeScalar {
		return 0, false
	}
	return r.scalar, true
}

// AsRowSet returns the row-set payload and true if r is a RowSet.
func (r Result) AsRowSet() (RowSet, bool) {
	if r.shape != ShapeRowSet {
		return nil, false
	}
	return r.rowSet, true
}

// AsBucketsScalar returns the count-series payload and true if r is
// Buckets(Scalar).
func (r Result) AsBucketsScalar() (BucketsScalar, bool) {
	if r.shape != ShapeBucketsScalar {
		return nil, false
	}
	return r.bucketsScalar, true
}

// AsBucketsRowSet returns the grouped-series payload and true if r is
// Buckets(RowSet).
func (r Result) AsBucketsRowSet() (BucketsRowSet, bool) {
	if r.shape != ShapeBucketsRowSet {
		return nil, false
	}
	return r.bucketsRowSet, true
}
