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
	"fmt"
	"math"

	"github.com/maxsupermanhd/minedraft/primitives"
	"github.com/maxsupermanhd/minedraft/render"
	"github.com/maxsupermanhd/minedraft/render/raster"
)

// noDepth marks image columns no chunk has been drawn into yet.
const noDepth = math.MinInt

// obliqueOffsets returns where the chunk's bottom front corner lands in
// the image. Rays start at offY and go up the image.
func (r *Renderer) obliqueOffsets(c primitives.ChunkPos) (offX, offY int, err error) {
	const w = primitives.ChunkWidth
	top := primitives.ChunkHeight - 1 + w
	switch r.recipe.Rotation.Value {
	case render.North:
		return (r.bottomLeft.Z - c.Z) * w, (c.X-r.topRight.X)*w + top, nil
	case render.East:
		return (c.X - r.topRight.X) * w, (c.Z-r.topRight.Z)*w + top, nil
	case render.South:
		return (c.Z - r.topRight.Z) * w, (r.bottomLeft.X-c.X)*w + top, nil
	case render.West:
		return (r.bottomLeft.X - c.X) * w, (r.bottomLeft.Z-c.Z)*w + top, nil
	}
	return 0, 0, fmt.Errorf("%w: %s", ErrObliqueOrdinal, r.recipe.Rotation.Value)
}

// obliqueVoxel maps image column w and ray depth to a position in the
// chunk for the facing direction.
func obliqueVoxel(facing render.Direction, w, depth, y int) primitives.VoxelPos {
	switch facing {
	case render.North:
		return primitives.VoxelPos{X: 15 - depth, Z: 15 - w, Y: y}
	case render.East:
		return primitives.VoxelPos{X: w, Z: 15 - depth, Y: y}
	case render.South:
		return primitives.VoxelPos{X: depth, Z: w, Y: y}
	default:
		return primitives.VoxelPos{X: 15 - w, Z: depth, Y: y}
	}
}

// renderOblique draws the chunk seen from the side and above. Rays
// walk a staircase of block sides and tops into the chunk. The faces
// on chunk borders are lit with data handed between neighbouring
// chunks through the light buffer; dpos records which chunk last
// drew each image column so the hand-off only happens between
// chunks that are really adjacent.
func (r *Renderer) renderOblique(box *render.ChunkBox) error {
	facing := r.recipe.Rotation.Value
	offX, offY, err := r.obliqueOffsets(box.Center.Pos())
	if err != nil {
		return err
	}
	back, err := facing.Negate()
	if err != nil {
		return err
	}
	frontToBack := facing == render.North || facing == render.East
	column := offX / primitives.ChunkWidth
	if column < 0 || column >= len(r.dpos) {
		return fmt.Errorf("%w: column %d", raster.ErrOutOfImage, column)
	}
	for w := 0; w < primitives.ChunkWidth; w++ {
		for y := primitives.ChunkHeight - 1 + primitives.ChunkWidth; y >= 0; y-- {
			imgX, imgY := offX+w, offY-y
			target, err := r.image.Ref(imgX, imgY)
			if err != nil {
				return err
			}
			dot := raster.DefaultPixel()
			if frontToBack {
				dot = *target
				if dot.A >= opaqueEnough {
					continue
				}
			}

			depth, ystep, step := 0, y, back
			if y >= primitives.ChunkHeight {
				step = render.Top
				ystep = primitives.ChunkHeight - 1
				depth = y - primitives.ChunkHeight
			}
			for ystep >= 0 && depth < primitives.ChunkWidth {
				pos := obliqueVoxel(facing, w, depth, ystep)
				lb := imgX*primitives.ChunkHeight + pos.Y
				switch {
				case depth == 0 && step.IsCardinal():
					face, err := r.variant.ResolveColour(r, box, pos, step)
					if err != nil {
						return err
					}
					if frontToBack {
						light := r.lightbuffer[lb].A
						if r.dpos[column] != offY+primitives.ChunkWidth {
							light = 0
						}
						r.blendpixel(face, pos.Y, light, &dot)
					} else {
						r.lightbuffer[lb] = face
					}
				case depth == primitives.ChunkWidth-1 && step == render.Top:
					if err := r.blendblock(box, pos, step, &dot); err != nil {
						return err
					}
					light, err := r.variant.ResolveLight(r, box, pos, render.All)
					if err != nil {
						return err
					}
					if frontToBack {
						r.lightbuffer[lb].A = light
					} else if r.dpos[column] == offY-primitives.ChunkWidth {
						r.blendpixel(r.lightbuffer[lb], pos.Y, light, &dot)
					}
				default:
					if err := r.blendblock(box, pos, step, &dot); err != nil {
						return err
					}
				}
				if dot.A >= opaqueEnough {
					dot.A = 1
					break
				}
				if step.IsCardinal() {
					step = render.Top
					ystep--
				} else {
					step = back
					depth++
				}
			}

			if frontToBack {
				*target = dot
			} else {
				target.BlendOver(dot)
			}
		}
	}
	r.dpos[column] = offY
	return nil
}
