package codec

import (
	"testing"

	"github.com/pvcache/pvcache-go/result"
)

func TestDecodeScalar(t *testing.T) {
	r, err := Decode([]byte(`{"result": 42}`))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	v, ok := r.AsScalar()
	if !ok || v != 42 {
		t.Errorf("Decode scalar = (%v, %v), want (42, true)", v, ok)
	}
}

func TestDecodeMissingResultField(t *testing.T) {
	if _, err := Decode([]byte(`{"other": 1}`)); err == nil {
		t.Error("Decode with missing result field: want error, got nil")
	}
}

func TestDecodeRowSetDropsZeroRows(t *testing.T) {
	r, err := Decode([]byte(`{"result":[{"result":10,"pageId":1},{"result":0,"pageId":2}]}`))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	rs, ok := r.AsRowSet()
	if !ok {
		t.Fatalf("Decode did not produce a row_set")
	}
	if len(rs) != 1 {
		t.Fatalf("len(rs) = %d, want 1", len(rs))
	}
	if rs[0].Result != 10 {
		t.Errorf("rs[0].Result = %d, want 10", rs[0].Result)
	}
	v, ok := rs[0].Field("pageId")
	if !ok || !v.Equal(result.I64(1)) {
		t.Errorf("rs[0].Field(pageId) = (%v, %v), want (1, true)", v, ok)
	}
}

func TestDecodeRowSetNullAndNonScalarFields(t *testing.T) {
	r, err := Decode([]byte(`{"result":[{"result":5,"country":null,"blob":{"x":1}}]}`))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	rs, _ := r.AsRowSet()
	if len(rs) != 1 {
		t.Fatalf("len(rs) = %d, want 1", len(rs))
	}
	country, ok := rs[0].Field("country")
	if !ok || !country.Equal(result.Text("null")) {
		t.Errorf("country field = (%v, %v), want (null, true)", country, ok)
	}
	blob, ok := rs[0].Field("blob")
	if !ok || !blob.Equal(result.I64(0)) {
		t.Errorf("blob field = (%v, %v), want (0, true)", blob, ok)
	}
}

func TestDecodeBucketsScalar(t *testing.T) {
	body := `{"result":[
		{"value":3,"timeframe":{"start":"2024-01-01T00:00:00Z","end":"2024-01-02T00:00:00Z"}},
		{"value":7,"timeframe":{"start":"2024-01-02T00:00:00Z","end":"2024-01-03T00:00:00Z"}}
	]}`
	r, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	bs, ok := r.AsBucketsScalar()
	if !ok {
		t.Fatalf("Decode did not produce buckets_scalar")
	}
	if len(bs) != 2 || bs[0].Value != 3 || bs[1].Value != 7 {
		t.Errorf("bs = %+v, want [{_,3},{_,7}]", bs)
	}
}

func TestDecodeBucketsRowSet(t *testing.T) {
	body := `{"result":[
		{"value":[{"result":2,"pageId":1}],"timeframe":{"start":"2024-01-01T00:00:00Z","end":"2024-01-02T00:00:00Z"}}
	]}`
	r, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	br, ok := r.AsBucketsRowSet()
	if !ok {
		t.Fatalf("Decode did not produce buckets_row_set")
	}
	if len(br) != 1 || len(br[0].Value) != 1 || br[0].Value[0].Result != 2 {
		t.Errorf("br = %+v, want one bucket with one row of result 2", br)
	}
}

func TestEncodeDecodeRoundTripScalar(t *testing.T) {
	r := result.ScalarResult(99)
	b, err := Encode(r)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	got, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	v, _ := got.AsScalar()
	if v != 99 {
		t.Errorf("round trip scalar = %d, want 99", v)
	}
}

func TestEncodeDecodeRoundTripRowSet(t *testing.T) {
	rs := result.RowSet{
		result.NewRow(3, map[string]result.ScalarOrText{"pageId": result.I64(1)}),
		result.NewRow(4, map[string]result.ScalarOrText{"pageId": result.I64(2)}),
	}
	b, err := Encode(result.RowSetResult(rs))
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	got, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	gotRS, ok := got.AsRowSet()
	if !ok || len(gotRS) != 2 {
		t.Fatalf("round trip row_set = %+v", gotRS)
	}
	v, ok := gotRS[0].Field("pageId")
	if !ok || !v.Equal(result.I64(1)) {
		t.Errorf("gotRS[0].Field(pageId) = (%v, %v), want (1, true)", v, ok)
	}
}
