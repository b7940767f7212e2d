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

// Package pretrim bounds a RowSet before it is written to the cache: each
// partition of the primary grouping key is reduced to its top HeadN rows by
// result plus one synthesized "others" row, preserving the partition's
// total sum.
package pretrim

import (
	"sort"

	"github.com/pvcache/pvcache-go/result"
)

// HeadN is the number of rows kept verbatim per partition before the
// remainder is folded into a single "others" row.
const HeadN = 30

const othersLabel = "others"

// Normalize partitions rs by primaryField, keeps the top HeadN rows of each
// partition (sorted by descending result), and folds the rest into one
// "others" row on secondaryField. A single-row partition, or one with no
// secondaryField value on any row, passes through unchanged; a partition
// with HeadN or fewer rows is sorted by descending result but not trimmed.
func Normalize(rs result.RowSet, primaryField, secondaryField string) result.RowSet {
	if len(rs) == 0 {
		return rs
	}

	order, partitions := partitionBy(rs, primaryField)

	out := make(result.RowSet, 0, len(rs))
	for _, key := range order {
		out = append(out, trimPartition(partitions[key], secondaryField)...)
	}
	return out
}

func partitionBy(rs result.RowSet, primaryField string) ([]string, map[string]result.RowSet) {
	order := make([]string, 0)
	partitions := make(map[string]result.RowSet)
	for _, row := range rs {
		key := ""
		if v, ok := row.Field(primaryField); ok {
			key = v.String()
		}
		if _, seen := partitions[key]; !seen {
			order = append(order, key)
		}
		partitions[key] = append(partitions[key], row)
	}
	return order, partitions
}

func trimPartition(rows result.RowSet, secondaryField string) result.RowSet {
	if len(rows) <= 1 {
		return rows
	}
	hasSecondary := false
	for _, row := range rows {
		if _, ok := row.Field(secondaryField); ok {
			hasSecondary = true
			break
		}
	}
	if !hasSecondary {
		return rows
	}

	sorted := make(result.RowSet, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Result > sorted[j].Result })

	if len(sorted) <= HeadN {
		return sorted
	}

	kept := sorted[:HeadN]
	rest := sorted[HeadN:]

	var remainder int64
	for _, row := range rest {
		remainder += row.Result
	}
	if remainder == 0 {
		return kept
	}

	fields := kept[0].Fields()
	if fields == nil {
		fields = map[string]result.ScalarOrText{}
	}
	fields[secondaryField] = result.Text(othersLabel)
	others := result.NewRow(remainder, fields)

	out := make(result.RowSet, 0, len(kept)+1)
	out = append(out, kept...)
	out = append(out, others)
	return out
}
