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
	"fmt"
	"image/color"
	"math"
)

// EqualTolerance is the largest per-channel difference two pixels may
// have and still compare equal, one 8-bit step.
const EqualTolerance = 1.0 / 255

// Pixel is a colour with every channel in 0..1.
type Pixel struct {
	R, G, B, A float64
}

// DefaultPixel is transparent white, what fresh images are filled with.
func DefaultPixel() Pixel {
	return Pixel{R: 1, G: 1, B: 1, A: 0}
}

// PixelFromBytes converts 8-bit channels.
func PixelFromBytes(r, g, b, a uint8) Pixel {
	return Pixel{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: float64(a) / 255}
}

// BlendUnder puts s underneath p.
func (p *Pixel) BlendUnder(s Pixel) {
	nA := p.A + (1-p.A)*s.A
	w := 0.0
	if nA != 0 {
		w = p.A / nA
	}
	p.R = p.R*w + s.R*(1-w)
	p.G = p.G*w + s.G*(1-w)
	p.B = p.B*w + s.B*(1-w)
	p.A = clamp(nA)
}

// BlendOver puts s on top of p.
func (p *Pixel) BlendOver(s Pixel) {
	nA := s.A + (1-s.A)*p.A
	w := 0.0
	if nA != 0 {
		w = s.A / nA
	}
	p.R = p.R*(1-w) + s.R*w
	p.G = p.G*(1-w) + s.G*w
	p.B = p.B*(1-w) + s.B*w
	p.A = clamp(nA)
}

// Light scales the colour channels, alpha is untouched.
func (p *Pixel) Light(v float64) {
	p.R = clamp(p.R * v)
	p.G = clamp(p.G * v)
	p.B = clamp(p.B * v)
}

// Mix averages every channel with s.
func (p *Pixel) Mix(s Pixel) {
	p.R = (p.R + s.R) / 2
	p.G = (p.G + s.G) / 2
	p.B = (p.B + s.B) / 2
	p.A = (p.A + s.A) / 2
}

func (p Pixel) Equal(o Pixel) bool {
	return math.Abs(p.R-o.R) <= EqualTolerance &&
		math.Abs(p.G-o.G) <= EqualTolerance &&
		math.Abs(p.B-o.B) <= EqualTolerance &&
		math.Abs(p.A-o.A) <= EqualTolerance
}

func (p Pixel) NRGBA() color.NRGBA {
	return color.NRGBA{R: toByte(p.R), G: toByte(p.G), B: toByte(p.B), A: toByte(p.A)}
}

// Hex is rrggbbaa.
func (p Pixel) Hex() string {
	c := p.NRGBA()
	return fmt.Sprintf("%.2x%.2x%.2x%.2x", c.R, c.G, c.B, c.A)
}

func (p Pixel) String() string {
	return fmt.Sprintf("Pixel(%.3f, %.3f, %.3f, %.3f)", p.R, p.G, p.B, p.A)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func toByte(v float64) uint8 {
	return uint8(math.Round(clamp(v) * 255))
}
