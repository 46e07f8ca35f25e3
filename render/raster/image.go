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

package raster

import (
	"errors"
	"fmt"
	"image"
)

var ErrOutOfImage = errors.New("position outside of image")

// Image is a row-major pixel buffer.
type Image struct {
	W, H int
	Pix  []Pixel
}

// NewImage returns a w by h image filled with DefaultPixel.
func NewImage(w, h int) *Image {
	return NewImageFill(w, h, DefaultPixel())
}

func NewImageFill(w, h int, fill Pixel) *Image {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	img := &Image{W: w, H: h, Pix: make([]Pixel, w*h)}
	for i := range img.Pix {
		img.Pix[i] = fill
	}
	return img
}

func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.W, img.H)
}

func (img *Image) index(x, y int) (int, error) {
	if x < 0 || x >= img.W || y < 0 || y >= img.H {
		return 0, fmt.Errorf("%w: %d:%d in %dx%d", ErrOutOfImage, x, y, img.W, img.H)
	}
	return y*img.W + x, nil
}

func (img *Image) At(x, y int) (Pixel, error) {
	i, err := img.index(x, y)
	if err != nil {
		return Pixel{}, err
	}
	return img.Pix[i], nil
}

func (img *Image) Set(x, y int, p Pixel) error {
	i, err := img.index(x, y)
	if err != nil {
		return err
	}
	img.Pix[i] = p
	return nil
}

// Ref returns a pointer into the buffer for in-place blending.
func (img *Image) Ref(x, y int) (*Pixel, error) {
	i, err := img.index(x, y)
	if err != nil {
		return nil, err
	}
	return &img.Pix[i], nil
}

// Overlay blends src over img, top-left aligned and clipped to the
// smaller of the two.
func (img *Image) Overlay(src *Image) {
	w, h := min(img.W, src.W), min(img.H, src.H)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Pix[y*img.W+x].BlendOver(src.Pix[y*src.W+x])
		}
	}
}

// ColourReplace swaps every pixel equal to from with to.
func (img *Image) ColourReplace(from, to Pixel) {
	for i := range img.Pix {
		if img.Pix[i].Equal(from) {
			img.Pix[i] = to
		}
	}
}

// TrimBounds is the tightest rectangle holding every pixel with A > 0.
// Fully transparent images keep their bounds.
func (img *Image) TrimBounds() image.Rectangle {
	left, top, right, bottom := img.W, img.H, -1, -1
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			if img.Pix[y*img.W+x].A <= 0 {
				continue
			}
			left, right = min(left, x), max(right, x)
			top, bottom = min(top, y), max(bottom, y)
		}
	}
	if right < 0 {
		return img.Bounds()
	}
	return image.Rect(left, top, right+1, bottom+1)
}

// NRGBA converts the area r of img into an 8-bit image anchored at 0,0.
func (img *Image) NRGBA(r image.Rectangle) *image.NRGBA {
	r = r.Intersect(img.Bounds())
	out := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			out.SetNRGBA(x-r.Min.X, y-r.Min.Y, img.Pix[y*img.W+x].NRGBA())
		}
	}
	return out
}

func (img *Image) Clone() *Image {
	return &Image{W: img.W, H: img.H, Pix: append([]Pixel(nil), img.Pix...)}
}
