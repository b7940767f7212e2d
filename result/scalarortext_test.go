package result

import "testing"

func TestScalarOrTextEqual(t *testing.T) {
	tests := []struct {
		name string
		a    ScalarOrText
		b    ScalarOrText
		want bool
	}{
		{"equal ints", I64(7), I64(7), true},
		{"int vs decimal text", I64(7), Text("7"), true},
		{"leading zero text not equal", Text("07"), I64(7), false},
		{"different ints", I64(7), I64(8), false},
		{"equal text", Text("hello"), Text("hello"), true},
		{"different text", Text("hello"), Text("world"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestScalarOrTextString(t *testing.T) {
	if got := I64(42).String(); got != "42" {
		t.Errorf("I64(42).String() = %q, want %q", got, "42")
	}
	if got := Text("abc").String(); got != "abc" {
		t.Errorf("Text(%q).String() = %q, want %q", "abc", got, "abc")
	}
}

func TestScalarOrTextInt64(t *testing.T) {
	if v, ok := I64(5).Int64(); !ok || v != 5 {
		t.Errorf("I64(5).Int64() = (%v, %v), want (5, true)", v, ok)
	}
	if _, ok := Text("5").Int64(); ok {
		t.Errorf("Text(%q).Int64() ok = true, want false", "5")
	}
}

func TestScalarOrTextIsText(t *testing.T) {
	if I64(1).IsText() {
		t.Error("I64(1).IsText() = true, want false")
	}
	if !Text("1").IsText() {
		t.Error("Text(1).IsText() = false, want true")
	}
}
