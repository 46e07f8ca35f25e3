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

package renderers

import (
	"math"

	"github.com/maxsupermanhd/minedraft/primitives"
	"github.com/maxsupermanhd/minedraft/render"
	"github.com/maxsupermanhd/minedraft/render/raster"
)

// contourBlocks are the natural terrain blocks, the rest is hidden.
var contourBlocks = map[int]bool{
	0x01: true, // stone
	0x02: true, // grass
	0x03: true, // dirt
	0x07: true, // bedrock
	0x0c: true, // sand
	0x0d: true, // gravel
	0x0e: true, // gold ore
	0x0f: true, // iron ore
	0x10: true, // coal ore
	0x38: true, // diamond ore
}

const (
	contourInterval = 5
	contourPhase    = 3
	contourVisible  = 1 - 0.005
)

// contourVariant draws height lines. While rendering the green channel
// carries the height of the surface, PostProcess turns it into lines.
type contourVariant struct{}

func (contourVariant) Prepare(r *Renderer) {
	r.recipe.DimDepth.Value = false
	r.colours.SetAlpha(0, func(id int) bool { return contourBlocks[id] })
}

func (contourVariant) ResolveColour(r *Renderer, box *render.ChunkBox, pos primitives.VoxelPos, dir render.Direction) (raster.Pixel, error) {
	c, err := r.blockColour(box, pos, dir)
	if err != nil || c.A < contourVisible {
		return raster.Pixel{}, err
	}
	h := pos.Y
	if !dir.Has(render.Top) {
		h--
	}
	return raster.Pixel{G: float64(h) / 255, A: 1}, nil
}

func (contourVariant) ResolveLight(*Renderer, *render.ChunkBox, primitives.VoxelPos, render.Direction) (float64, error) {
	return 1, nil
}

func heightOf(p raster.Pixel) int {
	return int(math.Round(p.G * 255))
}

// PostProcess draws a black pixel wherever the height crosses a line
// and a neighbouring pixel is lower.
func (contourVariant) PostProcess(img *raster.Image) *raster.Image {
	ret := raster.NewImage(img.W, img.H)
	line := raster.Pixel{A: 1}
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			p := img.Pix[y*img.W+x]
			h := heightOf(p)
			if p.A <= 0 || h%contourInterval != contourPhase {
				continue
			}
			edge := false
			for _, n := range [][2]int{{x - 1, y}, {x, y - 1}, {x + 1, y}, {x, y + 1}} {
				np, err := img.At(n[0], n[1])
				if err == nil && heightOf(np) < h {
					edge = true
					break
				}
			}
			if edge {
				ret.Pix[y*img.W+x] = line
			}
		}
	}
	return ret
}
