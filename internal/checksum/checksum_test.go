package checksum

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input   string
		want    Algorithm
		wantErr bool
	}{
		{"adler32", Adler32, false},
		{"Adler32", Adler32, false},
		{"murmur3", Murmur3, false},
		{"", Adler32, false},
		{"sha256", "", true},
	}

	for _, tc := range cases {
		got, err := Parse(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("Parse(%q): expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestAdler32KnownValue(t *testing.T) {
	// adler32("Wikipedia") = 0x11E60398
	sum, err := Adler32.Sum(strings.NewReader("Wikipedia"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum != "300286872" {
		t.Fatalf("expected 300286872, got %s", sum)
	}
}

func TestEqualContentEqualChecksum(t *testing.T) {
	for _, algo := range []Algorithm{Adler32, Murmur3} {
		first, err := algo.Sum(strings.NewReader("same bytes"))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", algo, err)
		}
		second, err := algo.Sum(strings.NewReader("same bytes"))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", algo, err)
		}
		if first != second {
			t.Fatalf("%s: checksums differ: %s vs %s", algo, first, second)
		}
	}
}

func TestDifferentContentDifferentChecksum(t *testing.T) {
	for _, algo := range []Algorithm{Adler32, Murmur3} {
		first, err := algo.Sum(strings.NewReader("one photo"))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", algo, err)
		}
		second, err := algo.Sum(strings.NewReader("another photo"))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", algo, err)
		}
		if first == second {
			t.Fatalf("%s: expected different checksums, both %s", algo, first)
		}
	}
}
