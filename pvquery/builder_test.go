package pvquery

import (
	"strings"
	"testing"
	"time"
)

func TestValuesIncludesSpiderExclusion(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	b := New(MetricCount, "strikingly_pageviews", from, to)
	v, err := b.Values("key")
	if err != nil {
		t.Fatalf("Values error: %v", err)
	}

	filters := v.Get("filters")
	if !strings.Contains(filters, "device.family") || !strings.Contains(filters, "ne") {
		t.Errorf("filters = %q, want it to contain the Spider exclusion", filters)
	}
}

func TestValuesWithPageBoundAndGroupBy(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	b := New(MetricCount, "strikingly_pageviews", from, to).
		WithInterval(IntervalDaily).
		GroupBy("pageId").
		WithPageBound(300, 400)

	v, err := b.Values("key")
	if err != nil {
		t.Fatalf("Values error: %v", err)
	}

	if got := v.Get("interval"); got != "daily" {
		t.Errorf("interval = %q, want %q", got, "daily")
	}
	if got := v.Get("group_by"); got != "pageId" {
		t.Errorf("group_by = %q, want %q", got, "pageId")
	}
	filters := v.Get("filters")
	if !strings.Contains(filters, `"gt"`) || !strings.Contains(filters, `"lt"`) {
		t.Errorf("filters = %q, want gt/lt page bound", filters)
	}
}

func TestValuesRejectsInvertedWindow(t *testing.T) {
	from := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	b := New(MetricCount, "strikingly_pageviews", from, to)
	if _, err := b.Values("key"); err == nil {
		t.Error("Values with to before from: want error, got nil")
	}
}

func TestWithPageBoundRejectsInvertedBound(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	b := New(MetricCount, "strikingly_pageviews", from, to).WithPageBound(400, 300)
	if _, err := b.Values("key"); err == nil {
		t.Error("Values with inverted page bound: want error, got nil")
	}
}
