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

import "strconv"

// ScalarOrText is an int64 or a string, compared by their decimal-string
// representation so I64(7) equals Text("7") but Text("07") does not equal
// I64(7) (leading zeros are preserved as text, never renormalized).
type ScalarOrText struct {
	text   string
	isText bool
	i64    int64
}

// I64 builds a numeric ScalarOrText.
func I64(v int64) ScalarOrText { return ScalarOrText{i64: v} }

// Text builds a textual ScalarOrText.
func Text(v string) ScalarOrText { return ScalarOrText{text: v, isText: true} }

// IsText reports whether the value was constructed from text rather than a
// number.
func (v ScalarOrText) IsText() bool { return v.isText }

// Int64 returns the numeric value and true if v is numeric.
func (v ScalarOrText) Int64() (int64, bool) {
	if v.isText {
		return 0, false
	}
	return v.i64, true
}

// String returns the decimal-string representation used for comparison and
// serialization.
func (v ScalarOrText) String() string {
	if v.isText {
		return v.text
	}
	return strconv.FormatInt(v.i64, 10)
}

// Equal compares two values by their decimal-string form, so the numeric
// side of a comparison is always decimal-normalized first.
func (v ScalarOrText) Equal(other ScalarOrText) bool {
	return v.String() == other.String()
}
