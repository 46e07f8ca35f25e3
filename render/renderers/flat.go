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
	"github.com/maxsupermanhd/minedraft/primitives"
	"github.com/maxsupermanhd/minedraft/render"
	"github.com/maxsupermanhd/minedraft/render/raster"
)

// renderFlat draws the chunk from above, unrotated. Columns are cast
// from the top down until the pixel is opaque.
func (r *Renderer) renderFlat(box *render.ChunkBox) error {
	c := box.Center.Pos()
	for x := 0; x < primitives.ChunkWidth; x++ {
		for z := 0; z < primitives.ChunkWidth; z++ {
			dot := raster.DefaultPixel()
			for y := primitives.ChunkHeight - 1; y >= 0; y-- {
				if err := r.blendblock(box, primitives.VoxelPos{X: x, Z: z, Y: y}, render.Top, &dot); err != nil {
					return err
				}
				if dot.A >= opaqueEnough {
					dot.A = 1
					break
				}
			}
			imgX := (r.bottomLeft.Z-c.Z)*primitives.ChunkWidth + 15 - z
			imgY := (c.X-r.topRight.X)*primitives.ChunkWidth + x
			if err := r.image.Set(imgX, imgY, dot); err != nil {
				return err
			}
		}
	}
	return nil
}
