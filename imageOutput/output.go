/*
	MineDraft, renderer for block game maps
	Copyright (C) 2022 Maxim Zhuchkov

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.

	Contact me via mail: q3.max.2011@yandex.ru or Discord: MaX#6717
*/

package imageOutput

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	xxhash "github.com/cespare/xxhash/v2"
	humanize "github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"
	"github.com/maxsupermanhd/lac"
	"github.com/maxsupermanhd/minedraft/render"
	"github.com/maxsupermanhd/minedraft/render/raster"
	"github.com/nfnt/resize"
)

var ErrBadScale = errors.New("output scale must be at least 1")

// Image is what the writer needs from a renderer.
type Image interface {
	Name() string
	Image() (*raster.Image, error)
	Trim() bool
}

var _ Image = render.ChunkRenderer(nil)

// Writer saves finished images as png files.
type Writer struct {
	// Dir is prepended to relative image names.
	Dir string
	// Scale enlarges images by an integer factor, nearest neighbour.
	Scale   int
	Workers int
	logger  *log.Logger
}

type Result struct {
	Name    string
	Path    string
	Width   int
	Height  int
	Size    int64
	Digest  uint64
	Elapsed time.Duration
}

func NewWriter(dir string, scale, workers int, logger *log.Logger) (*Writer, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if scale == 0 {
		scale = 1
	}
	if scale < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadScale, scale)
	}
	if workers < 1 {
		workers = 1
	}
	return &Writer{Dir: dir, Scale: scale, Workers: workers, logger: logger}, nil
}

// NewWriterFromConf reads dir, scale and workers.
func NewWriterFromConf(cfg *lac.ConfSubtree, logger *log.Logger) (*Writer, error) {
	return NewWriter(cfg.GetDSString("", "dir"), cfg.GetDSInt(1, "scale"), cfg.GetDSInt(2, "workers"), logger)
}

func (w *Writer) path(name string) string {
	if filepath.IsAbs(name) || w.Dir == "" {
		return name
	}
	return filepath.Join(w.Dir, name)
}

// Prepare converts the renderer's image, trimming and scaling it.
func (w *Writer) Prepare(img Image) (image.Image, error) {
	ri, err := img.Image()
	if err != nil {
		return nil, err
	}
	rect := ri.Bounds()
	if img.Trim() {
		rect = ri.TrimBounds()
	}
	var out image.Image = ri.NRGBA(rect)
	if w.Scale > 1 {
		b := out.Bounds()
		out = resize.Resize(uint(b.Dx()*w.Scale), uint(b.Dy()*w.Scale), out, resize.NearestNeighbor)
	}
	return out, nil
}

// Save writes one image, creating directories on the way.
func (w *Writer) Save(img Image) (Result, error) {
	start := time.Now()
	res := Result{Name: img.Name(), Path: w.path(img.Name())}
	out, err := w.Prepare(img)
	if err != nil {
		return res, err
	}
	if dir := filepath.Dir(res.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return res, err
		}
	}
	f, err := os.Create(res.Path)
	if err != nil {
		return res, err
	}
	h := xxhash.New()
	cw := &countingWriter{w: io.MultiWriter(f, h)}
	if err := png.Encode(cw, out); err != nil {
		f.Close()
		return res, err
	}
	if err := f.Close(); err != nil {
		return res, err
	}
	b := out.Bounds()
	res.Width, res.Height = b.Dx(), b.Dy()
	res.Size = cw.n
	res.Digest = h.Sum64()
	res.Elapsed = time.Since(start)
	w.logger.Printf("Saved %s (%dx%d, %s, xxhash %016x) in %s", res.Path, res.Width, res.Height, humanize.Bytes(uint64(res.Size)), res.Digest, res.Elapsed)
	return res, nil
}

// SaveAll saves every image, failures do not stop the others.
func (w *Writer) SaveAll(imgs []Image) ([]Result, error) {
	pool := pond.NewPool(w.Workers)
	defer pool.StopAndWait()
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []Result
		errs    error
	)
	for _, img := range imgs {
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			res, err := w.Save(img)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				w.logger.Printf("Failed to save %s: %v", img.Name(), err)
				errs = multierror.Append(errs, fmt.Errorf("%s: %w", img.Name(), err))
				return
			}
			results = append(results, res)
		})
	}
	wg.Wait()
	return results, errs
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
