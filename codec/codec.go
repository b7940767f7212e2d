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

// Package codec bridges the upstream/cache JSON envelope ({"result": V})
// and result.Result. Decode never fails on malformed group fields; it
// normalizes them. It returns an error when the envelope is unparseable,
// the "result" key is missing, "result" is neither a number nor an array,
// a bucket's timeframe does not parse, or a row lacks a numeric "result".
package codec

import (
	"time"

	"github.com/pvcache/pvcache-go/errs"
	"github.com/pvcache/pvcache-go/jsonx"
	"github.com/pvcache/pvcache-go/result"
)

type envelope struct {
	Result jsonx.RawMessage `json:"result"`
}

type timeframe struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type bucketItem struct {
	Value     jsonx.RawMessage `json:"value"`
	Timeframe *timeframe       `json:"timeframe"`
}

// Decode parses the top-level {"result": V} envelope into a result.Result.
func Decode(data []byte) (result.Result, error) {
	var raw map[string]jsonx.RawMessage
	if err := jsonx.Unmarshal(data, &raw); err != nil {
		return result.Result{}, errs.ParseError("decode envelope", err)
	}
	resultRaw, ok := raw["result"]
	if !ok {
		return result.Result{}, errs.ParseError(`missing top-level "result" field`, nil)
	}
	return decodeValue(resultRaw)
}

// decodeValue decodes the top-level V of the envelope: a bare number
// (Scalar), an array of bucket items (Buckets), or an array of row objects
// (RowSet).
func decodeValue(raw jsonx.RawMessage) (result.Result, error) {
	var n int64
	if err := jsonx.Unmarshal(raw, &n); err == nil {
		return result.ScalarResult(n), nil
	}

	var items []jsonx.RawMessage
	if err := jsonx.Unmarshal(raw, &items); err != nil {
		return result.Result{}, errs.ParseError(`"result" is neither a number nor an array`, err)
	}
	if len(items) == 0 {
		return result.RowSetResult(nil), nil
	}

	var probe bucketItem
	if err := jsonx.Unmarshal(items[0], &probe); err == nil && probe.Timeframe != nil {
		return decodeBuckets(items)
	}
	return decodeRowSet(items)
}

func decodeBuckets(items []jsonx.RawMessage) (result.Result, error) {
	type bucketRow struct {
		window result.TimeWindow
		value  result.Result
	}

	bucketized := make([]bucketRow, 0, len(items))
	var firstIsRowSet bool
	for i, raw := range items {
		var bi bucketItem
		if err := jsonx.Unmarshal(raw, &bi); err != nil || bi.Timeframe == nil {
			return result.Result{}, errs.ParseError("bucket item missing timeframe", err)
		}
		window, err := decodeTimeframe(*bi.Timeframe)
		if err != nil {
			return result.Result{}, err
		}
		v, err := decodeBucketValue(bi.Value)
		if err != nil {
			return result.Result{}, err
		}
		if i == 0 {
			firstIsRowSet = v.Shape() == result.ShapeRowSet
		}
		bucketized = append(bucketized, bucketRow{window: window, value: v})
	}

	if firstIsRowSet {
		out := make(result.BucketsRowSet, len(bucketized))
		for i, b := range bucketized {
			rs, _ := b.value.AsRowSet()
			out[i] = result.Bucket[result.RowSet]{Window: b.window, Value: rs}
		}
		return result.BucketsRowSetResult(out), nil
	}

	out := make(result.BucketsScalar, len(bucketized))
	for i, b := range bucketized {
		v, _ := b.value.AsScalar()
		out[i] = result.Bucket[int64]{Window: b.window, Value: v}
	}
	return result.BucketsScalarResult(out), nil
}

// decodeBucketValue decodes a single bucket's "value": either a bare number
// or an array of row objects. It never itself contains nested buckets.
func decodeBucketValue(raw jsonx.RawMessage) (result.Result, error) {
	var n int64
	if err := jsonx.Unmarshal(raw, &n); err == nil {
		return result.ScalarResult(n), nil
	}
	var items []jsonx.RawMessage
	if err := jsonx.Unmarshal(raw, &items); err != nil {
		return result.Result{}, errs.ParseError("bucket value is neither a number nor an array", err)
	}
	return decodeRowSet(items)
}

func decodeTimeframe(tf timeframe) (result.TimeWindow, error) {
	start, err := time.Parse(time.RFC3339, tf.Start)
	if err != nil {
		return result.TimeWindow{}, errs.ParseError("timeframe.start", err)
	}
	end, err := time.Parse(time.RFC3339, tf.End)
	if err != nil {
		return result.TimeWindow{}, errs.ParseError("timeframe.end", err)
	}
	return result.TimeWindow{Start: start.UTC(), End: end.UTC()}, nil
}

// decodeRowSet decodes an array of row objects, each carrying a numeric
// "result" plus arbitrary group fields. Zero-result rows are discarded.
func decodeRowSet(items []jsonx.RawMessage) (result.Result, error) {
	var rs result.RowSet
	for _, raw := range items {
		var obj map[string]jsonx.RawMessage
		if err := jsonx.Unmarshal(raw, &obj); err != nil {
			return result.Result{}, errs.ParseError("row item", err)
		}
		resultRaw, ok := obj["result"]
		if !ok {
			return result.Result{}, errs.ParseError(`row item missing "result" field`, nil)
		}
		var n int64
		if err := jsonx.Unmarshal(resultRaw, &n); err != nil {
			return result.Result{}, errs.ParseError(`row "result" field is not numeric`, err)
		}
		if n == 0 {
			continue
		}
		delete(obj, "result")
		fields := make(map[string]result.ScalarOrText, len(obj))
		for k, v := range obj {
			fields[k] = decodeFieldValue(v)
		}
		rs = append(rs, result.NewRow(n, fields))
	}
	return result.RowSetResult(rs), nil
}

// decodeFieldValue normalizes a group-field value: null becomes the text
// literal "null"; non-number/non-string values become I64(0); everything
// else decodes as its natural type.
func decodeFieldValue(raw jsonx.RawMessage) result.ScalarOrText {
	if string(raw) == "null" {
		return result.Text("null")
	}
	var s string
	if err := jsonx.Unmarshal(raw, &s); err == nil {
		return result.Text(s)
	}
	var n int64
	if err := jsonx.Unmarshal(raw, &n); err == nil {
		return result.I64(n)
	}
	return result.I64(0)
}

// Encode serializes r back into the {"result": V} envelope, the inverse of
// Decode, for cache storage and client responses.
func Encode(r result.Result) ([]byte, error) {
	v, err := encodeValue(r)
	if err != nil {
		return nil, err
	}
	return jsonx.Marshal(map[string]jsonx.RawMessage{"result": v})
}

func encodeValue(r result.Result) (jsonx.RawMessage, error) {
	switch r.Shape() {
	case result.ShapeScalar:
		v, _ := r.AsScalar()
		b, err := jsonx.Marshal(v)
		return jsonx.RawMessage(b), err

	case result.ShapeRowSet:
		rs, _ := r.AsRowSet()
		return encodeRowSet(rs)

	case result.ShapeBucketsScalar:
		bs, _ := r.AsBucketsScalar()
		items := make([]map[string]jsonx.RawMessage, len(bs))
		for i, b := range bs {
			valueRaw, err := jsonx.Marshal(b.Value)
			if err != nil {
				return nil, err
			}
			tf, err := encodeTimeframe(b.Window)
			if err != nil {
				return nil, err
			}
			items[i] = map[string]jsonx.RawMessage{"value": jsonx.RawMessage(valueRaw), "timeframe": tf}
		}
		b, err := jsonx.Marshal(items)
		return jsonx.RawMessage(b), err

	case result.ShapeBucketsRowSet:
		br, _ := r.AsBucketsRowSet()
		items := make([]map[string]jsonx.RawMessage, len(br))
		for i, b := range br {
			valueRaw, err := encodeRowSet(b.Value)
			if err != nil {
				return nil, err
			}
			tf, err := encodeTimeframe(b.Window)
			if err != nil {
				return nil, err
			}
			items[i] = map[string]jsonx.RawMessage{"value": valueRaw, "timeframe": tf}
		}
		b, err := jsonx.Marshal(items)
		return jsonx.RawMessage(b), err

	default:
		return nil, errs.InvalidShape("encode: unknown shape")
	}
}

func encodeRowSet(rs result.RowSet) (jsonx.RawMessage, error) {
	items := make([]map[string]jsonx.RawMessage, len(rs))
	for i, row := range rs {
		obj := make(map[string]jsonx.RawMessage)
		for k, v := range row.Fields() {
			var fb []byte
			var err error
			if n, ok := v.Int64(); ok {
				fb, err = jsonx.Marshal(n)
			} else {
				fb, err = jsonx.Marshal(v.String())
			}
			if err != nil {
				return nil, err
			}
			obj[k] = jsonx.RawMessage(fb)
		}
		rb, err := jsonx.Marshal(row.Result)
		if err != nil {
			return nil, err
		}
		obj["result"] = jsonx.RawMessage(rb)
		items[i] = obj
	}
	b, err := jsonx.Marshal(items)
	return jsonx.RawMessage(b), err
}

func encodeTimeframe(w result.TimeWindow) (jsonx.RawMessage, error) {
	b, err := jsonx.Marshal(timeframe{
		Start: w.Start.UTC().Format(time.RFC3339),
		End:   w.End.UTC().Format(time.RFC3339),
	})
	return jsonx.RawMessage(b), err
}
