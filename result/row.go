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
	"github.com/pvcache/pvcache-go/jsonx"
)

// Row is one grouped result: a count (or other accumulated metric) plus its
// group-by fields. Fields are kept pre-serialized so a RowSet that is never
// inspected for a particular field never pays to decode it.
type Row struct {
	Result int64
	raw    jsonx.RawMessage
}

// RowSet is an ordered collection of rows, as returned by a group_by query.
type RowSet []Row

// NewRow builds a Row from a result count and a set of group-by fields.
func NewRow(result int64, fields map[string]ScalarOrText) Row {
	raw, err := marshalFields(fields)
	if err != nil {
		// fields are always plain strings/ints produced by this package; a
		// marshal failure here means a programming error, not bad input.
		panic(err)
	}
	return Row{Result: result, raw: raw}
}

func marshalFields(fields map[string]ScalarOrText) (jsonx.RawMessage, error) {
	m := make(map[string]string, len(fields))
	for k, v := range fields {
		m[k] = v.String()
	}
	b, err := jsonx.Marshal(m)
	if err != nil {
		return nil, err
	}
	return jsonx.RawMessage(b), nil
}

// Fields decodes and returns all group-by fields of the row.
func (r Row) Fields() map[string]ScalarOrText {
	if len(r.raw) == 0 {
		return nil
	}
	var m map[string]jsonx.RawMessage
	if err := jsonx.Unmarshal(r.raw, &m); err != nil {
		return nil
	}
	out := make(map[string]ScalarOrText, len(m))
	for k, v := range m {
		out[k] = decodeScalarOrText(v)
	}
	return out
}

// Field decodes and returns a single named field.
func (r Row) Field(name string) (ScalarOrText, bool) {
	if len(r.raw) == 0 {
		return ScalarOrText{}, false
	}
	var m map[string]jsonx.RawMessage
	if err := jsonx.Unmarshal(r.raw, &m); err != nil {
		return ScalarOrText{}, false
	}
	raw, ok := m[name]
	if !ok {
		return ScalarOrText{}, false
	}
	return decodeScalarOrText(raw), true
}

// decodeScalarOrText decodes a single JSON field value into a ScalarOrText.
// By the time fields reach this type, codec.Decode has already normalized
// null to Text("null") and any non-number/non-string value to I64(0), so
// this only needs to distinguish quoted strings from bare numbers.
func decodeScalarOrText(raw jsonx.RawMessage) ScalarOrText {
	var s string
	if err := jsonx.Unmarshal(raw, &s); err == nil {
		return Text(s)
	}
	var n int64
	if err := jsonx.Unmarshal(raw, &n); err == nil {
		return I64(n)
	}
	return I64(0)
}

// withField returns a copy of r with name set to value.
func (r Row) withField(name string, value ScalarOrText) Row {
	fields := r.Fields()
	if fields == nil {
		fields = map[string]ScalarOrText{}
	}
	fields[name] = value
	raw, err := marshalFields(fields)
	if err != nil {
		panic(err)
	}
	return Row{Result: r.Result, raw: raw}
}

// withoutField returns a copy of r with name removed, used by Select when
// narrowing a RowSet on a field that should not appear in the output.
func (r Row) withoutField(name string) Row {
	fields := r.Fields()
	if fields == nil {
		return r
	}
	delete(fields, name)
	raw, err := marshalFields(fields)
	if err != nil {
		panic(err)
	}
	return Row{Result: r.Result, raw: raw}
}
