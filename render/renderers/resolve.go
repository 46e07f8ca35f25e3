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
	"errors"

	"github.com/maxsupermanhd/minedraft/primitives"
	"github.com/maxsupermanhd/minedraft/render"
	"github.com/maxsupermanhd/minedraft/render/raster"
)

// Variant changes what a renderer draws without touching how rays are
// cast.
type Variant interface {
	// Prepare adjusts a freshly built renderer's recipe and colours.
	Prepare(r *Renderer)
	// ResolveColour may be asked about voxels outside the center chunk,
	// those are looked up in box.
	ResolveColour(r *Renderer, box *render.ChunkBox, pos primitives.VoxelPos, dir render.Direction) (raster.Pixel, error)
	ResolveLight(r *Renderer, box *render.ChunkBox, pos primitives.VoxelPos, dir render.Direction) (float64, error)
	// PostProcess runs on the unrotated image before finalising.
	PostProcess(img *raster.Image) *raster.Image
}

const (
	blockWater           = 0x08
	blockStationaryWater = 0x09
)

type baseVariant struct{}

func (baseVariant) Prepare(*Renderer) {}

// ResolveColour picks the top or side colour of the block. Water gets
// thinner the further it has flowed.
func (baseVariant) ResolveColour(r *Renderer, box *render.ChunkBox, pos primitives.VoxelPos, dir render.Direction) (raster.Pixel, error) {
	return r.blockColour(box, pos, dir)
}

func (baseVariant) ResolveLight(r *Renderer, box *render.ChunkBox, pos primitives.VoxelPos, dir render.Direction) (float64, error) {
	return r.blockLight(box, pos, dir)
}

func (baseVariant) PostProcess(img *raster.Image) *raster.Image {
	return img
}

// blockColour fails with render.ErrNoSuchChunk when pos lies in a
// chunk box does not hold. Absent sections read as air.
func (r *Renderer) blockColour(box *render.ChunkBox, pos primitives.VoxelPos, dir render.Direction) (raster.Pixel, error) {
	c, pos, err := box.Resolve(pos)
	if err != nil {
		return raster.Pixel{}, err
	}
	id, err := c.Block(pos)
	if err != nil {
		id = 0
	}
	ret := r.colours[id].Side
	if dir.Has(render.Top) {
		ret = r.colours[id].Top
	}
	if id == blockWater || id == blockStationaryWater {
		if n, err := c.Data(pos); err == nil && n > 0 {
			ret.A = 1 - float64(n)/15
		}
	}
	return ret, nil
}

// blockLight mixes sky and block light of the voxel next to face dir
// by the renderer's light level.
func (r *Renderer) blockLight(box *render.ChunkBox, pos primitives.VoxelPos, dir render.Direction) (float64, error) {
	off, err := dir.Offset()
	if err != nil {
		return 0, err
	}
	pos = pos.Add(off)
	sky, blk := 1.0, 0.0
	if pos.Y >= 0 && pos.Y < primitives.ChunkHeight {
		c, local, err := box.Resolve(pos)
		switch {
		case err == nil:
			sky, blk = 0, 0
			if v, err := c.SkyLight(local); err == nil {
				sky = float64(v) / 15
			}
			if v, err := c.BlockLight(local); err == nil {
				blk = float64(v) / 15
			}
		case errors.Is(err, render.ErrNoSuchChunk):
			// outside of the map
		default:
			return 0, err
		}
	}
	level := float64(r.recipe.Light.Value)
	return sky*level/255 + blk*(255-level)/255, nil
}
