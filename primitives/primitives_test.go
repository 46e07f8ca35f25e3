package primitives

import (
	"errors"
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

func TestBase36RoundTrip(t *testing.T) {
	for i := -5000; i <= 5000; i++ {
		got, err := ParseBase36(FormatBase36(i))
		if err != nil {
			t.Fatalf("%d: %v", i, err)
		}
		if got != i {
			t.Fatalf("round trip of %d gave %d", i, got)
		}
	}
	r := rand.New(rand.NewSource(42))
	for n := 0; n < 10000; n++ {
		i := r.Intn(1<<30) - 1<<29
		got, err := ParseBase36(FormatBase36(i))
		if err != nil || got != i {
			t.Fatalf("round trip of %d gave %d (%v)", i, got, err)
		}
	}
}

func TestBase36Decode(t *testing.T) {
	cases := map[string]int{
		"0":   0,
		"z":   35,
		"Z":   35,
		"10":  36,
		"-1a": -46,
		"1A":  46,
	}
	for in, want := range cases {
		got, err := ParseBase36(in)
		if err != nil {
			t.Errorf("%q: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("%q: got %d want %d", in, got, want)
		}
	}
	for _, in := range []string{"", "-", "1.2", "ab_", " 1"} {
		if _, err := ParseBase36(in); !errors.Is(err, ErrBadBase36) {
			t.Errorf("%q: expected ErrBadBase36, got %v", in, err)
		}
	}
}

func TestBase36Mod64(t *testing.T) {
	cases := map[int]string{
		0:   "0",
		63:  "1r",
		64:  "0",
		-1:  "1r",
		-64: "0",
		100: "10",
	}
	for in, want := range cases {
		if got := FormatBase36Mod64(in); got != want {
			t.Errorf("%d: got %q want %q", in, got, want)
		}
	}
}

func TestBoundsMonotonic(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	var b Bounds
	if !b.Empty() {
		t.Fatal("new bounds are not empty")
	}
	minX, minZ, maxX, maxZ := 0, 0, 0, 0
	for i := 0; i < 500; i++ {
		p := ChunkPos{X: r.Intn(200) - 100, Z: r.Intn(200) - 100}
		if i == 0 {
			minX, maxX, minZ, maxZ = p.X, p.X, p.Z, p.Z
		}
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minZ, maxZ = min(minZ, p.Z), max(maxZ, p.Z)
		b.Update(p)
		if b.TopRight != (ChunkPos{minX, minZ}) || b.BottomLeft != (ChunkPos{maxX, maxZ}) {
			t.Fatalf("step %d: bounds %s, want {%d %d}..{%d %d}", i, b, minX, minZ, maxX, maxZ)
		}
	}
}

func TestBoundsFirstSeeds(t *testing.T) {
	var b Bounds
	b.Update(ChunkPos{5, 7})
	if b.TopRight != (ChunkPos{5, 7}) || b.BottomLeft != (ChunkPos{5, 7}) {
		t.Fatalf("first chunk did not seed both corners: %s", b)
	}
	if b.Size() != (ChunkPos{1, 1}) {
		t.Fatalf("size %v", b.Size())
	}
}

func TestParseGeometry(t *testing.T) {
	cases := map[string][]ChunkPos{
		"2x2":     {{-1, -1}, {-1, 0}, {0, -1}, {0, 0}},
		"2x2+1+1": {{1, 1}, {1, 2}, {2, 1}, {2, 2}},
		"1x2-3+0": {{0, -3}, {1, -3}},
		"3x1":     {{0, -1}, {0, 0}, {0, 1}},
	}
	for in, want := range cases {
		got, err := ParseGeometry(in)
		if err != nil {
			t.Errorf("%q: %v", in, err)
			continue
		}
		sortPos(got)
		sortPos(want)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%q: got %v want %v", in, got, want)
		}
	}
	for _, in := range []string{"", "2x", "x2", "2x2+1", "axb", "2x2+1+1+1"} {
		if _, err := ParseGeometry(in); !errors.Is(err, ErrBadGeometry) {
			t.Errorf("%q: expected ErrBadGeometry, got %v", in, err)
		}
	}
}

func TestRenderOrder(t *testing.T) {
	c := []ChunkPos{{0, 0}, {1, -1}, {0, 1}, {1, 1}, {-1, 5}}
	SortRenderOrder(c)
	want := []ChunkPos{{1, 1}, {1, -1}, {0, 1}, {0, 0}, {-1, 5}}
	if !reflect.DeepEqual(c, want) {
		t.Fatalf("got %v want %v", c, want)
	}
}

func TestVoxelIndex(t *testing.T) {
	i, err := VoxelPos{X: 1, Z: 2, Y: 3}.Index()
	if err != nil {
		t.Fatal(err)
	}
	if i != 3+2*128+1*128*16 {
		t.Fatalf("index %d", i)
	}
	n, upper, err := VoxelPos{X: 0, Z: 0, Y: 5}.NibbleIndex()
	if err != nil || n != 2 || !upper {
		t.Fatalf("nibble %d %v %v", n, upper, err)
	}
	if _, err := (VoxelPos{X: 16, Z: 16, Y: 127}).Index(); err != nil {
		t.Fatalf("one past the edge must pass the check: %v", err)
	}
	for _, v := range []VoxelPos{{-1, 0, 0}, {0, 17, 0}, {0, 0, 128}, {0, 0, -1}} {
		if _, err := v.Index(); !errors.Is(err, ErrVoxelOutOfRange) {
			t.Errorf("%s: expected ErrVoxelOutOfRange, got %v", v, err)
		}
	}
}

func sortPos(c []ChunkPos) {
	sort.Slice(c, func(i, j int) bool {
		if c[i].X != c[j].X {
			return c[i].X < c[j].X
		}
		return c[i].Z < c[j].Z
	})
}
