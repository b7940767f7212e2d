package result

import "testing"

func TestRowFields(t *testing.T) {
	row := NewRow(12, map[string]ScalarOrText{
		"pageId":   I64(300),
		"referrer": Text("google"),
	})

	if row.Result != 12 {
		t.Errorf("row.Result = %d, want 12", row.Result)
	}

	v, ok := row.Field("pageId")
	if !ok || !v.Equal(I64(300)) {
		t.Errorf("row.Field(%q) = (%v, %v), want (300, true)", "pageId", v, ok)
	}

	v, ok = row.Field("referrer")
	if !ok || !v.Equal(Text("google")) {
		t.Errorf("row.Field(%q) = (%v, %v), want (google, true)", "referrer", v, ok)
	}

	if _, ok := row.Field("missing"); ok {
		t.Error("row.Field(missing) ok = true, want false")
	}
}

func TestRowWithoutField(t *testing.T) {
	row := NewRow(1, map[string]ScalarOrText{"pageId": I64(1), "referrer": Text("x")})
	stripped := row.withoutField("referrer")

	if _, ok := stripped.Field("referrer"); ok {
		t.Error("stripped row still has referrer field")
	}
	if _, ok := stripped.Field("pageId"); !ok {
		t.Error("stripped row lost unrelated pageId field")
	}
}

func TestRowWithField(t *testing.T) {
	row := NewRow(1, map[string]ScalarOrText{"pageId": I64(1)})
	updated := row.withField("referrer", Text("others"))

	v, ok := updated.Field("referrer")
	if !ok || !v.Equal(Text("others")) {
		t.Errorf("updated.Field(referrer) = (%v, %v), want (others, true)", v, ok)
	}
	if _, ok := updated.Field("pageId"); !ok {
		t.Error("updated row lost unrelated pageId field")
	}
}
