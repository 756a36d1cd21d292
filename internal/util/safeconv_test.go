package util

import "testing"

func TestFloatOK(t *testing.T) {
	if f, ok := FloatOK("123.45"); !ok || f != 123.45 {
		t.Errorf(`FloatOK("123.45") = %v, %v, want 123.45, true`, f, ok)
	}
	if f, ok := FloatOK(""); ok || f != 0 {
		t.Errorf(`FloatOK("") = %v, %v, want 0, false`, f, ok)
	}
	if f, ok := FloatOK(nil); ok || f != 0 {
		t.Errorf("FloatOK(nil) = %v, %v, want 0, false", f, ok)
	}
	if f, ok := FloatOK("invalid"); ok || f != 0 {
		t.Errorf(`FloatOK("invalid") = %v, %v, want 0, false`, f, ok)
	}
	// A reported zero parses successfully — distinct from an absent value.
	if f, ok := FloatOK("0"); !ok || f != 0 {
		t.Errorf(`FloatOK("0") = %v, %v, want 0, true`, f, ok)
	}
	if f, ok := FloatOK(42); !ok || f != 42 {
		t.Errorf("FloatOK(42) = %v, %v, want 42, true", f, ok)
	}
}

func TestFloatDefault(t *testing.T) {
	if got := Float("invalid", 10.0); got != 10.0 {
		t.Errorf(`Float("invalid", 10.0) = %v, want 10.0`, got)
	}
	if got := Float("1.5", 10.0); got != 1.5 {
		t.Errorf(`Float("1.5", 10.0) = %v, want 1.5`, got)
	}
}

func TestInt(t *testing.T) {
	if got := Int("123", 0); got != 123 {
		t.Errorf(`Int("123") = %d, want 123`, got)
	}
	// Float strings truncate.
	if got := Int("123.9", 0); got != 123 {
		t.Errorf(`Int("123.9") = %d, want 123`, got)
	}
	if got := Int(nil, 7); got != 7 {
		t.Errorf("Int(nil, 7) = %d, want 7", got)
	}
}

func TestBool(t *testing.T) {
	cases := []struct {
		in   any
		want bool
	}{
		{"true", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"0", false},
		{"", false},
		{true, true},
		{nil, false},
	}
	for _, c := range cases {
		if got := Bool(c.in, false); got != c.want {
			t.Errorf("Bool(%v) = %v, want %v", c.in, got, c.want)
		}
	}

	// Empty string is absent, not a parsed false, matching FloatOK.
	if _, ok := BoolOK(""); ok {
		t.Error(`BoolOK("") ok = true, want false`)
	}
	if got := Bool("", true); !got {
		t.Error(`Bool("", true) = false, want the default`)
	}
	if _, ok := BoolOK("false"); !ok {
		t.Error(`BoolOK("false") ok = false, want true`)
	}
}

func TestPositiveFloat(t *testing.T) {
	if f, ok := PositiveFloat("150.25"); !ok || f != 150.25 {
		t.Errorf(`PositiveFloat("150.25") = %v, %v, want 150.25, true`, f, ok)
	}
	// Zero is a reported value but not a positive one.
	if _, ok := PositiveFloat("0"); ok {
		t.Error(`PositiveFloat("0") ok = true, want false`)
	}
	if _, ok := PositiveFloat(""); ok {
		t.Error(`PositiveFloat("") ok = true, want false`)
	}
	if _, ok := PositiveFloat("-5"); ok {
		t.Error(`PositiveFloat("-5") ok = true, want false`)
	}
}

func TestPositiveInt(t *testing.T) {
	if n, ok := PositiveInt("10.0"); !ok || n != 10 {
		t.Errorf(`PositiveInt("10.0") = %d, %v, want 10, true`, n, ok)
	}
	if _, ok := PositiveInt("0"); ok {
		t.Error(`PositiveInt("0") ok = true, want false`)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "", "a", "b"); got != "a" {
		t.Errorf("FirstNonEmpty = %q, want %q", got, "a")
	}
	if got := FirstNonEmpty("", ""); got != "" {
		t.Errorf("FirstNonEmpty = %q, want empty", got)
	}
}
