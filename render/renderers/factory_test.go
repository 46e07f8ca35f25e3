package renderers

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/maxsupermanhd/lac"
	"github.com/maxsupermanhd/minedraft/render"
)

func names(rs []*Renderer) []string {
	ret := []string{}
	for _, r := range rs {
		ret = append(ret, r.Name())
	}
	return ret
}

func TestFactoryLightMultiple(t *testing.T) {
	f := NewFactory(DefaultColours(), nil)
	rs, err := f.Make("map-%l.png:day,night,twilight")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"map-day.png", "map-night.png", "map-twilight.png"}
	if !reflect.DeepEqual(names(rs), want) {
		t.Fatalf("got %v want %v", names(rs), want)
	}
	levels := []uint8{255, 50, 127}
	for i, r := range rs {
		if r.Recipe().Light.Value != levels[i] {
			t.Errorf("%s: light %d", r.Name(), r.Recipe().Light.Value)
		}
	}
	if _, err := f.Make("map.png:day,night,twilight"); !errors.Is(err, ErrNeedsWildcard) {
		t.Fatalf("expected ErrNeedsWildcard, got %v", err)
	}
}

func TestFactoryDefaults(t *testing.T) {
	rs, err := NewFactory(DefaultColours(), nil).Make("plain.png")
	if err != nil {
		t.Fatal(err)
	}
	got := rs[0].Recipe()
	if !reflect.DeepEqual(got, DefaultRecipe()) {
		t.Fatalf("recipe %v", got)
	}
	if got.String() != "north,twilight,dimdepth,topdown" {
		t.Fatalf("recipe string %q", got.String())
	}
}

func TestFactoryProductOrder(t *testing.T) {
	rs, err := NewFactory(DefaultColours(), nil).Make("%r-%l-%a.png:n,s,day,night,topdown,oblique")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"north-day-topdown.png", "north-day-oblique.png",
		"north-night-topdown.png", "north-night-oblique.png",
		"south-day-topdown.png", "south-day-oblique.png",
		"south-night-topdown.png", "south-night-oblique.png",
	}
	if !reflect.DeepEqual(names(rs), want) {
		t.Fatalf("got %v", names(rs))
	}
}

func TestFactoryDuplicatesSkipped(t *testing.T) {
	rs, err := NewFactory(DefaultColours(), nil).Make("same.png:cardinal,north")
	if err == nil {
		t.Fatalf("rotation multiple without wildcard accepted: %v", names(rs))
	}
	rs, err = NewFactory(DefaultColours(), nil).Make("%r.png:north,n,cardinal")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"north.png", "east.png", "south.png", "west.png"}
	if !reflect.DeepEqual(names(rs), want) {
		t.Fatalf("got %v", names(rs))
	}
}

func TestFactoryOrdinal(t *testing.T) {
	rs, err := NewFactory(DefaultColours(), nil).Make("%r.png:ordinal")
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range rs {
		if !r.Recipe().Rotation.Value.IsOrdinal() || !r.Trim() {
			t.Errorf("%s is not a trimmed ordinal map", r.Name())
		}
	}
	if _, err := NewFactory(DefaultColours(), nil).Make("x.png:ne,oblique"); !errors.Is(err, ErrObliqueOrdinal) {
		t.Fatalf("expected ErrObliqueOrdinal, got %v", err)
	}
}

func TestFactoryErrors(t *testing.T) {
	f := NewFactory(DefaultColours(), nil)
	cases := map[string]error{
		"a.png:bogus":              ErrInvalidOption,
		"a.png:light256":           ErrLightRange,
		"a.png:light-1":            ErrLightRange,
		"a.png:lightabc":           ErrInvalidOption,
		"a.png::north":             ErrOverlayRotation,
		"a.png::oblique":           ErrOverlayAngle,
		"a.png::day,night":         ErrOverlayMultiples,
		"a.png::dimdepth,litdepth": ErrOverlayMultiples,
		"%r.png:n:contour,bogus":   ErrInvalidOption,
		"a.png:n,s":                ErrNeedsWildcard,
		"a.png:dimdepth,litdepth":  ErrNeedsWildcard,
		"a.png:oblique,topdown":    ErrNeedsWildcard,
		":day":                     ErrNoFilename,
	}
	for spec, want := range cases {
		if _, err := f.Make(spec); !errors.Is(err, want) {
			t.Errorf("%q: expected %v, got %v", spec, want, err)
		}
	}
}

func TestFactoryOverlayInherits(t *testing.T) {
	rs, err := NewFactory(DefaultColours(), nil).Make("%r.png:east,oblique,night:contour:light200")
	if err != nil {
		t.Fatal(err)
	}
	if len(rs) != 1 || len(rs[0].Overlays()) != 2 {
		t.Fatalf("unexpected renderers %v", names(rs))
	}
	parent := rs[0].Recipe()
	c, l := rs[0].Overlays()[0].Recipe(), rs[0].Overlays()[1].Recipe()
	if c.Rotation.Value != render.East || !c.Oblique.Value || c.Light.Value != 50 {
		t.Fatalf("contour overlay recipe %v", c)
	}
	if c.DimDepth.Value {
		t.Fatal("contour overlay dims depth")
	}
	if l.Light.Value != 200 || l.Rotation != parent.Rotation || l.DimDepth != parent.DimDepth {
		t.Fatalf("light overlay recipe %v", l)
	}
	if rs[0].Name() != "east.png" {
		t.Fatalf("name %q", rs[0].Name())
	}
}

func TestFactoryFromConf(t *testing.T) {
	dir := t.TempDir()
	overrides := filepath.Join(dir, "colours.json")
	if err := os.WriteFile(overrides, []byte(`{"1":{"top":"102030ff"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"render":{"colours_path":"`+filepath.ToSlash(overrides)+`"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := lac.FromFileJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	f, err := NewFactoryFromConf(c.SubTree("render"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if f.Colours[blockStone].Top.Hex() != "102030ff" {
		t.Fatalf("override not applied: %s", f.Colours[blockStone].Top.Hex())
	}
	if f.Colours[blockStone].Side != DefaultColours()[blockStone].Side {
		t.Fatal("side colour changed")
	}

	f, err = NewFactoryFromConf(lac.NewConf().SubTree("render"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if f.Colours != DefaultColours() {
		t.Fatal("colours changed without an override file")
	}
}
