package orchestrator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/pvcache/pvcache-go/cache"
	"github.com/pvcache/pvcache-go/errs"
	"github.com/pvcache/pvcache-go/pvquery"
	"github.com/pvcache/pvcache-go/upstream"
)

func newOrchestrator(t *testing.T, body string) *Orchestrator {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	upstreamClient := upstream.New(srv.URL, 0, nil)
	store := cache.NewRedisStoreFromClient(client)
	return New(upstreamClient, store, nil, "strikingly_pageviews", "key")
}

func window() (time.Time, time.Time) {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
}

func TestCacheTotalAndGetTotal(t *testing.T) {
	o := newOrchestrator(t, `{"result": 42}`)
	ctx := context.Background()
	from, to := window()

	if err := o.CacheTotal(ctx, from, to, false); err != nil {
		t.Fatalf("CacheTotal error: %v", err)
	}

	r, err := o.GetTotal(ctx, from, to, false)
	if err != nil {
		t.Fatalf("GetTotal error: %v", err)
	}
	v, ok := r.AsScalar()
	if !ok || v != 42 {
		t.Errorf("GetTotal = %v (ok=%v), want 42", v, ok)
	}
}

func TestGetTotalMiss(t *testing.T) {
	o := newOrchestrator(t, `{"result": 0}`)
	ctx := context.Background()
	from, to := window()

	_, err := o.GetTotal(ctx, from, to, false)
	if !errors.Is(err, errs.ErrCacheMiss) {
		t.Errorf("GetTotal on empty cache error = %v, want errs.ErrCacheMiss", err)
	}
}

func TestCacheByPageAndGetByPageNoInterval(t *testing.T) {
	body := `{"result": [{"result": 10, "pageId": 1}, {"result": 5, "pageId": 2}]}`
	o := newOrchestrator(t, body)
	ctx := context.Background()
	from, to := window()

	if err := o.CacheByPage(ctx, 0, 100, from, to, false, ""); err != nil {
		t.Fatalf("CacheByPage error: %v", err)
	}

	r, err := o.GetByPage(ctx, 1, 0, 100, from, to, false, "")
	if err != nil {
		t.Fatalf("GetByPage error: %v", err)
	}
	v, ok := r.AsScalar()
	if !ok || v != 10 {
		t.Errorf("GetByPage(pageId=1) = %v (ok=%v), want 10", v, ok)
	}

	r2, err := o.GetByPage(ctx, 2, 0, 100, from, to, false, "")
	if err != nil {
		t.Fatalf("GetByPage error: %v", err)
	}
	v2, _ := r2.AsScalar()
	if v2 != 5 {
		t.Errorf("GetByPage(pageId=2) = %v, want 5", v2)
	}
}

func TestCacheByPageAndGetByPageWithInterval(t *testing.T) {
	body := `{"result": [
		{"value": [{"result": 3, "pageId": 1}], "timeframe": {"start": "2024-01-01T00:00:00Z", "end": "2024-01-02T00:00:00Z"}},
		{"value": [{"result": 7, "pageId": 1}, {"result": 2, "pageId": 2}], "timeframe": {"start": "2024-01-02T00:00:00Z", "end": "2024-01-03T00:00:00Z"}}
	]}`
	o := newOrchestrator(t, body)
	ctx := context.Background()
	from, to := window()

	if err := o.CacheByPage(ctx, 0, 100, from, to, false, pvquery.IntervalDaily); err != nil {
		t.Fatalf("CacheByPage error: %v", err)
	}

	r, err := o.GetByPage(ctx, 1, 0, 100, from, to, false, pvquery.IntervalDaily)
	if err != nil {
		t.Fatalf("GetByPage error: %v", err)
	}
	bs, ok := r.AsBucketsScalar()
	if !ok || len(bs) != 2 {
		t.Fatalf("GetByPage(pageId=1) = %+v (ok=%v), want 2 buckets", bs, ok)
	}
	if bs[0].Value != 3 || bs[1].Value != 7 {
		t.Errorf("GetByPage(pageId=1) values = [%d, %d], want [3, 7]", bs[0].Value, bs[1].Value)
	}
}

func TestCacheByFieldAndGetByField(t *testing.T) {
	body := `{"result": [
		{"result": 10, "pageId": 1, "device.family": "Chrome"},
		{"result": 4, "pageId": 1, "device.family": "Safari"},
		{"result": 6, "pageId": 2, "device.family": "Chrome"}
	]}`
	o := newOrchestrator(t, body)
	ctx := context.Background()
	from, to := window()

	if err := o.CacheByField(ctx, 0, 100, "device.family", from, to, false); err != nil {
		t.Fatalf("CacheByField error: %v", err)
	}

	r, err := o.GetByField(ctx, 1, 0, 100, "device.family", from, to, false)
	if err != nil {
		t.Fatalf("GetByField error: %v", err)
	}
	rs, ok := r.AsRowSet()
	if !ok || len(rs) != 2 {
		t.Fatalf("GetByField(pageId=1) = %+v (ok=%v), want 2 rows", rs, ok)
	}
	if _, present := rs[0].Field("pageId"); present {
		t.Errorf("GetByField(pageId=1) row retained pageId field, want stripped")
	}

	var total int64
	for _, row := range rs {
		total += row.Result
	}
	if total != 14 {
		t.Errorf("GetByField(pageId=1) total = %d, want 14", total)
	}
}

func TestTTLSingleDayVsMultiDay(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := ttlFor(from, from.Add(12*time.Hour)); got != ttlSingleDay {
		t.Errorf("ttlFor(12h window) = %v, want %v", got, ttlSingleDay)
	}
	if got := ttlFor(from, from.Add(72*time.Hour)); got != ttlMultiDay {
		t.Errorf("ttlFor(72h window) = %v, want %v", got, ttlMultiDay)
	}
}

func TestInvertedPageBoundRejected(t *testing.T) {
	o := newOrchestrator(t, `{"result": []}`)
	ctx := context.Background()
	from, to := window()

	if err := o.CacheByPage(ctx, 100, 0, from, to, false, ""); !isInvalidArgument(err) {
		t.Errorf("CacheByPage with inverted bound error = %v, want errs.KindInvalidArgument", err)
	}
	if err := o.CacheByField(ctx, 100, 0, "device.family", from, to, false); !isInvalidArgument(err) {
		t.Errorf("CacheByField with inverted bound error = %v, want errs.KindInvalidArgument", err)
	}
	if _, err := o.GetByPage(ctx, 1, 100, 0, from, to, false, ""); !isInvalidArgument(err) {
		t.Errorf("GetByPage with inverted bound error = %v, want errs.KindInvalidArgument", err)
	}
	if _, err := o.GetByField(ctx, 1, 100, 0, "device.family", from, to, false); !isInvalidArgument(err) {
		t.Errorf("GetByField with inverted bound error = %v, want errs.KindInvalidArgument", err)
	}
}

func isInvalidArgument(err error) bool {
	var e *errs.Error
	return errors.As(err, &e) && e.Kind == errs.KindInvalidArgument
}

func TestCacheTotalUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "boom", "error_code": "InternalError"}`))
	}))
	defer srv.Close()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	o := New(upstream.New(srv.URL, 0, nil), cache.NewRedisStoreFromClient(client), nil, "strikingly_pageviews", "key")
	from, to := window()

	err = o.CacheTotal(context.Background(), from, to, false)
	var e *errs.Error
	if !errors.As(err, &e) || e.Kind != errs.KindUpstreamError {
		t.Errorf("CacheTotal error = %v, want errs.KindUpstreamError", err)
	}
}
