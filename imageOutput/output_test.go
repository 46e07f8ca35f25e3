package imageOutput

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/maxsupermanhd/lac"
	"github.com/maxsupermanhd/minedraft/render/raster"
)

type fixedImage struct {
	name string
	img  *raster.Image
	trim bool
	err  error
}

func (f *fixedImage) Name() string                  { return f.name }
func (f *fixedImage) Image() (*raster.Image, error) { return f.img, f.err }
func (f *fixedImage) Trim() bool                    { return f.trim }

func sample() *raster.Image {
	img := raster.NewImage(8, 6)
	img.Set(2, 1, raster.Pixel{R: 1, A: 1})
	img.Set(4, 3, raster.Pixel{B: 1, A: 1})
	return img
}

func TestSaveTrimmedScaled(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, 2, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	res, err := w.Save(&fixedImage{name: "sub/out.png", img: sample(), trim: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Width != 6 || res.Height != 6 {
		t.Fatalf("saved %dx%d", res.Width, res.Height)
	}
	f, err := os.Open(filepath.Join(dir, "sub", "out.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 6 {
		t.Fatalf("decoded %v", img.Bounds())
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a == 0 {
		t.Fatal("trimmed corner should hold the red pixel")
	}
	st, _ := os.Stat(filepath.Join(dir, "sub", "out.png"))
	if st.Size() != res.Size || res.Digest == 0 {
		t.Fatalf("result %+v, file is %d bytes", res, st.Size())
	}
}

func TestSaveAllKeepsGoing(t *testing.T) {
	dir := t.TempDir()
	w, _ := NewWriter(dir, 1, 3, nil)
	broken := errors.New("not finalised")
	results, err := w.SaveAll([]Image{
		&fixedImage{name: "a.png", img: sample()},
		&fixedImage{name: "b.png", err: broken},
		&fixedImage{name: "c.png", img: sample()},
	})
	if !errors.Is(err, broken) {
		t.Fatalf("expected aggregated failure, got %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("%d images saved", len(results))
	}
	for _, n := range []string{"a.png", "c.png"} {
		if _, err := os.Stat(filepath.Join(dir, n)); err != nil {
			t.Error(err)
		}
	}
}

func TestBadScale(t *testing.T) {
	if _, err := NewWriter("", -1, 1, nil); !errors.Is(err, ErrBadScale) {
		t.Fatalf("expected ErrBadScale, got %v", err)
	}
}

func TestWriterFromConf(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"output":{"dir":"`+filepath.ToSlash(dir)+`","scale":3}}`), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := lac.FromFileJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	w, err := NewWriterFromConf(c.SubTree("output"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if w.Dir != filepath.ToSlash(dir) || w.Scale != 3 || w.Workers != 2 {
		t.Fatalf("writer %+v", w)
	}
	if err := os.WriteFile(path, []byte(`{"output":{"scale":-2}}`), 0644); err != nil {
		t.Fatal(err)
	}
	c, err = lac.FromFileJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewWriterFromConf(c.SubTree("output"), nil); !errors.Is(err, ErrBadScale) {
		t.Fatalf("expected ErrBadScale, got %v", err)
	}
}
