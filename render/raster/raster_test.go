package raster

import (
	"errors"
	"image"
	"math/rand"
	"testing"
)

func randomImage(r *rand.Rand, w, h int) *Image {
	img := NewImage(w, h)
	for i := range img.Pix {
		img.Pix[i] = PixelFromBytes(uint8(r.Intn(256)), uint8(r.Intn(256)), uint8(r.Intn(256)), uint8(r.Intn(256)))
	}
	return img
}

func sameImage(a, b *Image) bool {
	if a.W != b.W || a.H != b.H {
		return false
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return false
		}
	}
	return true
}

func TestBlendUnderOpaque(t *testing.T) {
	src := PixelFromBytes(0x7f, 0xbf, 0x4f, 0xff)
	p := DefaultPixel()
	p.BlendUnder(src)
	if p.A != 1 {
		t.Fatalf("alpha %v", p.A)
	}
	if !p.Equal(src) {
		t.Fatalf("got %v want %v", p, src)
	}
}

func TestBlendKeepsAlphaInRange(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		p := Pixel{r.Float64(), r.Float64(), r.Float64(), r.Float64()}
		s := Pixel{r.Float64(), r.Float64(), r.Float64(), r.Float64()}
		q := p
		p.BlendUnder(s)
		q.BlendOver(s)
		q.Light(r.Float64() * 2)
		for _, v := range []float64{p.A, q.A, q.R, q.G, q.B} {
			if v < 0 || v > 1 {
				t.Fatalf("channel out of range: %v %v", p, q)
			}
		}
	}
}

func TestBlendOverOpaqueReplaces(t *testing.T) {
	p := PixelFromBytes(10, 20, 30, 255)
	s := PixelFromBytes(200, 100, 0, 255)
	p.BlendOver(s)
	if !p.Equal(s) {
		t.Fatalf("got %v", p)
	}
	p.BlendOver(Pixel{})
	if !p.Equal(s) {
		t.Fatalf("transparent overlay changed pixel: %v", p)
	}
}

func TestEqualTolerance(t *testing.T) {
	a := Pixel{0.5, 0.5, 0.5, 1}
	b := Pixel{0.5 + 0.5/255, 0.5, 0.5, 1}
	c := Pixel{0.5 + 2.0/255, 0.5, 0.5, 1}
	if !a.Equal(b) {
		t.Fatal("pixels within one step are different")
	}
	if a.Equal(c) {
		t.Fatal("pixels two steps apart are equal")
	}
}

func TestAxisRotationIdentity(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	img := randomImage(r, 7, 4)
	for _, seq := range [][]int{{0}, {4, 4}, {2, 6}, {6, 2}, {2, 2, 2, 2}, {6, 6, 6, 6}, {2, 2, 4}} {
		got := img
		for _, n := range seq {
			got = got.Rotate(n)
		}
		if !sameImage(img, got) {
			t.Errorf("rotation sequence %v is not identity", seq)
		}
	}
	r2 := img.Rotate(2)
	if r2.W != 4 || r2.H != 7 {
		t.Fatalf("rotated size %dx%d", r2.W, r2.H)
	}
	// top-left of a clockwise turn comes from the bottom-left of the source
	if r2.Pix[0] != img.Pix[3*img.W] {
		t.Fatal("clockwise turn maps the wrong corner")
	}
}

func TestDiagonalRotationKeepsCentre(t *testing.T) {
	c := PixelFromBytes(0x20, 0x80, 0xe0, 0xff)
	img := NewImageFill(5, 5, c)
	for _, n := range []int{1, 3, 5, 7} {
		got := img.Rotate(n)
		if got.W != 5 || got.H != 5 {
			t.Fatalf("%d: size %dx%d", n, got.W, got.H)
		}
		p, err := got.At(2, 2)
		if err != nil {
			t.Fatal(err)
		}
		if !p.Equal(c) {
			t.Errorf("%d: centre %v want %v", n, p, c)
		}
	}
}

func TestDiagonalRotationFadesNearFarEdges(t *testing.T) {
	img := NewImageFill(4, 4, Pixel{0.8, 0.4, 0.16, 1})
	got := img.Rotate(7)
	p, err := got.At(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := Pixel{0.5, 0.25, 0.1, 0.625}
	if !p.Equal(want) {
		t.Fatalf("pixel next to the far edges %v want %v", p, want)
	}
}

func TestAccessBounds(t *testing.T) {
	img := NewImage(3, 2)
	for _, pt := range [][2]int{{-1, 0}, {3, 0}, {0, 2}, {0, -1}} {
		if _, err := img.At(pt[0], pt[1]); !errors.Is(err, ErrOutOfImage) {
			t.Errorf("%v: expected ErrOutOfImage, got %v", pt, err)
		}
		if err := img.Set(pt[0], pt[1], Pixel{}); !errors.Is(err, ErrOutOfImage) {
			t.Errorf("%v: expected ErrOutOfImage, got %v", pt, err)
		}
	}
}

func TestTrimBounds(t *testing.T) {
	img := NewImage(10, 8)
	if img.TrimBounds() != img.Bounds() {
		t.Fatal("transparent image must keep its bounds")
	}
	img.Set(2, 3, Pixel{0, 0, 0, 1})
	img.Set(6, 5, Pixel{0, 0, 0, 0.5})
	want := image.Rect(2, 3, 7, 6)
	if got := img.TrimBounds(); got != want {
		t.Fatalf("got %v want %v", got, want)
	}
	out := img.NRGBA(want)
	if out.Bounds().Dx() != 5 || out.Bounds().Dy() != 3 {
		t.Fatalf("converted size %v", out.Bounds())
	}
	if out.NRGBAAt(0, 0).A != 255 || out.NRGBAAt(4, 2).A != 128 {
		t.Fatalf("converted alpha %v %v", out.NRGBAAt(0, 0), out.NRGBAAt(4, 2))
	}
}

func TestOverlayClips(t *testing.T) {
	base := NewImageFill(4, 4, Pixel{1, 0, 0, 1})
	top := NewImageFill(6, 2, Pixel{0, 0, 1, 1})
	base.Overlay(top)
	p, _ := base.At(3, 1)
	if !p.Equal(Pixel{0, 0, 1, 1}) {
		t.Fatalf("overlaid pixel %v", p)
	}
	p, _ = base.At(3, 2)
	if !p.Equal(Pixel{1, 0, 0, 1}) {
		t.Fatalf("pixel outside overlay changed: %v", p)
	}
}

func TestColourReplace(t *testing.T) {
	img := NewImage(2, 2)
	img.Set(0, 0, Pixel{0, 0, 0, 1})
	img.ColourReplace(DefaultPixel(), Pixel{0, 1, 0, 1})
	p, _ := img.At(1, 1)
	if !p.Equal(Pixel{0, 1, 0, 1}) {
		t.Fatalf("not replaced: %v", p)
	}
	p, _ = img.At(0, 0)
	if !p.Equal(Pixel{0, 0, 0, 1}) {
		t.Fatalf("wrong pixel replaced: %v", p)
	}
}
