package registry

import (
	"testing"
	"testing/quick"
)

func TestCanonicalWeights(t *testing.T) {
	tests := []struct {
		bpp, size, want uint32
	}{
		{32, 48, 11}, {32, 32, 12}, {32, 16, 13}, {32, 24, 91},
		{8, 48, 21}, {8, 32, 22}, {8, 16, 23}, {8, 24, 92},
		{4, 48, 31}, {4, 32, 32}, {4, 16, 33}, {4, 24, 93},
		{24, 48, 41}, {24, 32, 42}, {24, 16, 43}, {24, 24, 94},
	}
	for _, tt := range tests {
		k := IconKey{Width: tt.size, Height: tt.size, BitDepth: tt.bpp}
		if got := k.Weight(); got != tt.want {
			t.Errorf("%s weight = %d, want %d", k, got, tt.want)
		}
	}
}

func TestFallbackWeight(t *testing.T) {
	tests := []struct {
		key  IconKey
		want uint32
	}{
		{IconKey{256, 256, 32}, (512 << 8) | 256},
		{IconKey{64, 64, 32}, (128 << 8) | 64},
		{IconKey{16, 32, 32}, (48 << 8) | 32},
		{IconKey{48, 48, 1}, (96 << 8) | 48 | (31 << 24)},
		{IconKey{48, 48, 2}, (96 << 8) | 48 | (30 << 24)},
	}
	for _, tt := range tests {
		if got := tt.key.Weight(); got != tt.want {
			t.Errorf("%s weight = %#x, want %#x", tt.key, got, tt.want)
		}
	}
}

func TestCanonicalBeforeFallback(t *testing.T) {
	special := []IconKey{{16, 16, 32}, {32, 32, 32}, {48, 48, 32}, {24, 24, 32}}
	f := func(w, h uint8, bpp uint8) bool {
		k := IconKey{Width: uint32(w) + 1, Height: uint32(h) + 1, BitDepth: uint32(bpp%32) + 1}
		if k.Weight() <= 94 {
			return true
		}
		for _, s := range special {
			if s.Weight() >= k.Weight() {
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestUpsertLastWins(t *testing.T) {
	r := New()
	key := IconKey{16, 16, 32}
	first := &Source{Path: "a.png", Size: 10}
	second := &Source{Path: "b.png", Size: 20}

	r.Upsert(key, first)
	r.Upsert(key, second)

	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	got, ok := r.Get(key)
	if !ok || got != second {
		t.Errorf("Get() = %+v, want second source", got)
	}
}

func TestSorted(t *testing.T) {
	r := New()
	for _, k := range []IconKey{
		{256, 256, 32},
		{16, 16, 32},
		{16, 16, 4},
		{24, 24, 32},
		{32, 32, 32},
		{48, 48, 32},
		{64, 64, 8},
	} {
		r.Upsert(k, &Source{})
	}

	want := []IconKey{
		{48, 48, 32},
		{32, 32, 32},
		{16, 16, 32},
		{16, 16, 4},
		{24, 24, 32},
		{256, 256, 32},
		{64, 64, 8},
	}
	got := r.Sorted()
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Key != want[i] {
			t.Errorf("entry %d = %s, want %s", i, got[i].Key, want[i])
		}
	}
}

func TestSortedStableOnTies(t *testing.T) {
	// A height of 256 spills into the size bits, so these two collide.
	a := IconKey{3, 256, 32}
	b := IconKey{2, 256, 32}
	if a.Weight() != b.Weight() {
		t.Fatalf("weights differ: %#x %#x", a.Weight(), b.Weight())
	}

	r := New()
	r.Upsert(b, &Source{Path: "b"})
	r.Upsert(a, &Source{Path: "a"})
	r.Upsert(b, &Source{Path: "b2"})

	got := r.Sorted()
	if len(got) != 2 || got[0].Key != b || got[1].Key != a {
		t.Errorf("got %v, want first-insertion order", got)
	}
	if got[0].Source.Path != "b2" {
		t.Errorf("got %q, want replaced source", got[0].Source.Path)
	}
}
