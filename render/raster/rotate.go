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

// Rotate returns a copy of img turned clockwise by n eighths of a turn.
// Diagonal turns produce a square image and resample each pixel with
// its four neighbours.
func (img *Image) Rotate(n int) *Image {
	n %= 8
	if n < 0 {
		n += 8
	}
	switch n {
	case 0:
		return img.Clone()
	case 4:
		dst := NewImage(img.W, img.H)
		for y := 0; y < dst.H; y++ {
			for x := 0; x < dst.W; x++ {
				dst.Pix[y*dst.W+x] = img.Pix[(dst.H-y-1)*img.W+(dst.W-x-1)]
			}
		}
		return dst
	case 2:
		dst := NewImage(img.H, img.W)
		for y := 0; y < dst.H; y++ {
			for x := 0; x < dst.W; x++ {
				dst.Pix[y*dst.W+x] = img.Pix[(dst.W-x-1)*img.W+y]
			}
		}
		return dst
	case 6:
		dst := NewImage(img.H, img.W)
		for y := 0; y < dst.H; y++ {
			for x := 0; x < dst.W; x++ {
				dst.Pix[y*dst.W+x] = img.Pix[x*img.W+(dst.H-y-1)]
			}
		}
		return dst
	}
	return img.rotateDiagonal(n)
}

func (img *Image) rotateDiagonal(n int) *Image {
	side := (img.W + img.H + 1) / 2
	corner := img.H / 2
	dst := NewImage(side, side)
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			var sx, sy int
			switch n {
			case 1:
				sx = y - corner + x
				sy = img.H - (x + corner - y) - 1
			case 3:
				sx = img.W - (x + corner - y) - 1
				sy = img.H - (y - corner + x) - 1
			case 5:
				sx = img.W - (y - corner + x) - 1
				sy = x + corner - y
			case 7:
				sx = x + corner - y
				sy = y - corner + x
			}
			if sx < 0 || sy < 0 || sx >= img.W || sy >= img.H {
				continue
			}
			dst.Pix[y*dst.W+x] = img.resample(sx, sy)
		}
	}
	return dst
}

// The right and down neighbours are only taken two pixels clear of the
// far edges; closer to them transparent black is mixed in instead.
func (img *Image) resample(sx, sy int) Pixel {
	at := func(x, y int) Pixel {
		return img.Pix[y*img.W+x]
	}
	dot := DefaultPixel()
	if sx > 0 {
		dot = at(sx-1, sy)
	}
	if sy > 0 {
		dot.Mix(at(sx, sy-1))
	} else {
		dot.Mix(Pixel{})
	}
	if sx < img.W-2 {
		dot.Mix(at(sx+1, sy))
	} else {
		dot.Mix(Pixel{})
	}
	if sy < img.H-2 {
		dot.Mix(at(sx, sy+1))
	} else {
		dot.Mix(Pixel{})
	}
	dot.Mix(at(sx, sy))
	return dot
}
