package pretrim

import (
	"testing"

	"github.com/pvcache/pvcache-go/result"
)

func rowsForPageWithResults(pageID int64, results []int64) result.RowSet {
	var rs result.RowSet
	for i, r := range results {
		rs = append(rs, result.NewRow(r, map[string]result.ScalarOrText{
			"pageId":   result.I64(pageID),
			"referrer": result.Text(refName(i)),
		}))
	}
	return rs
}

func refName(i int) string {
	names := []string{"a", "b", "c", "d", "e"}
	return names[i%len(names)] + string(rune('0'+i/len(names)))
}

func sum(rs result.RowSet) int64 {
	var s int64
	for _, r := range rs {
		s += r.Result
	}
	return s
}

func TestNormalizePreservesSum(t *testing.T) {
	// 31 values descending 100..70, plus one extra row of 5: 32 rows total,
	// matching the worked example in the cache layer's pre-trim scenario.
	results := make([]int64, 0, 32)
	for v := int64(100); v >= 70; v-- {
		results = append(results, v)
	}
	results = append(results, 5)
	rs := rowsForPageWithResults(1, results)

	got := Normalize(rs, "pageId", "referrer")

	if sum(got) != sum(rs) {
		t.Fatalf("sum changed: got %d, want %d", sum(got), sum(rs))
	}
	if len(got) != HeadN+1 {
		t.Fatalf("len(got) = %d, want %d", len(got), HeadN+1)
	}

	othersRow := got[len(got)-1]
	if othersRow.Result != 75 {
		t.Errorf("others row result = %d, want 75", othersRow.Result)
	}
	v, ok := othersRow.Field("referrer")
	if !ok || !v.Equal(result.Text("others")) {
		t.Errorf("others row referrer = (%v, %v), want (others, true)", v, ok)
	}
}

func TestNormalizeSingleRowPassthrough(t *testing.T) {
	rs := rowsForPageWithResults(1, []int64{42})
	got := Normalize(rs, "pageId", "referrer")
	if len(got) != 1 || got[0].Result != 42 {
		t.Errorf("Normalize(single row) = %+v, want unchanged", got)
	}
}

func TestNormalizeUnderHeadNPassthrough(t *testing.T) {
	rs := rowsForPageWithResults(1, []int64{5, 4, 3})
	got := Normalize(rs, "pageId", "referrer")
	if len(got) != 3 {
		t.Fatalf("len(got) = %d, want 3", len(got))
	}
	if got[0].Result != 5 || got[1].Result != 4 || got[2].Result != 3 {
		t.Errorf("Normalize did not preserve descending order: %+v", got)
	}
}

func TestNormalizeMultiplePartitions(t *testing.T) {
	a := rowsForPageWithResults(1, []int64{3, 1})
	b := rowsForPageWithResults(2, []int64{10})
	rs := append(a, b...)

	got := Normalize(rs, "pageId", "referrer")
	if len(got) != 3 {
		t.Fatalf("len(got) = %d, want 3", len(got))
	}
	if sum(got) != sum(rs) {
		t.Errorf("sum changed: got %d, want %d", sum(got), sum(rs))
	}
}

func TestNormalizeZeroRemainderDropsOthers(t *testing.T) {
	results := make([]int64, 31)
	for i := range results {
		if i < 30 {
			results[i] = int64(30 - i)
		} else {
			results[i] = 0
		}
	}
	rs := rowsForPageWithResults(1, results)
	got := Normalize(rs, "pageId", "referrer")
	if len(got) != HeadN {
		t.Errorf("len(got) = %d, want %d (no others row when remainder is zero)", len(got), HeadN)
	}
}
