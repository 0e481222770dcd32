package words

import (
	"strings"
	"testing"
)

func TestNormalize_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		out  string
		err  error
	}{
		{name: "simple", in: "cat", out: "Cat"},
		{name: "already canonical", in: "Cat", out: "Cat"},
		{name: "upper", in: "MEAT LOAF", out: "Meat Loaf"},
		{name: "trims", in: "  fox \n", out: "Fox"},
		{name: "collapses inner runs", in: "meat   loaf", out: "Meat Loaf"},
		{name: "tabs and newlines", in: "meat\t\nloaf", out: "Meat Loaf"},
		{name: "empty", in: "", err: ErrEmpty},
		{name: "whitespace only", in: "   \t ", err: ErrEmpty},
		{name: "too long", in: strings.Repeat("a", MaxLen+1), err: ErrTooLong},
		{name: "at limit", in: strings.Repeat("a", MaxLen), out: "A" + strings.Repeat("a", MaxLen-1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.in)
			if err != tc.err {
				t.Fatalf("err = %v, want %v", err, tc.err)
			}
			if got != tc.out {
				t.Fatalf("out = %q, want %q", got, tc.out)
			}
		})
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	t.Parallel()

	// equal canonical output across repeated calls and spellings
	for _, in := range []string{"meat loaf", "MEAT LOAF", " Meat  Loaf "} {
		a, err := Normalize(in)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", in, err)
		}
		b, _ := Normalize(in)
		if a != b || a != "Meat Loaf" {
			t.Fatalf("Normalize(%q) unstable: %q vs %q", in, a, b)
		}
	}
}

func TestNormalizeAll_DropsAndDedupes(t *testing.T) {
	t.Parallel()

	got := NormalizeAll([]string{"cat", "CAT", "", "  ", "dog"})
	if len(got) != 2 || got[0] != "Cat" || got[1] != "Dog" {
		t.Fatalf("NormalizeAll = %v", got)
	}
}

func TestDefaultListIsCanonical(t *testing.T) {
	t.Parallel()

	seen := map[string]struct{}{}
	for _, w := range DefaultList {
		n, err := Normalize(w)
		if err != nil || n != w {
			t.Fatalf("default word %q is not canonical (%q, %v)", w, n, err)
		}
		if _, dup := seen[w]; dup {
			t.Fatalf("default word %q duplicated", w)
		}
		seen[w] = struct{}{}
	}
}
