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

import "time"

// TimeWindow is a half-open-on-neither-end [Start, End] interval in UTC, as
// decoded from an upstream bucket's "timeframe" object.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether Start is not after End.
func (w TimeWindow) Valid() bool { return !w.Start.After(w.End) }

// Within reports whether w lies entirely inside [from, to].
func (w TimeWindow) Within(from, to time.Time) bool {
	return !w.Start.Before(from) && !w.End.After(to)
}

// Bucket pairs a time window with the value computed over it, e.g. a daily
// count or a daily RowSet.
type Bucket[T any] struct {
	Window TimeWindow
	Value  T
}
