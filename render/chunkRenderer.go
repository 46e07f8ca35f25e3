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

package render

import (
	"github.com/maxsupermanhd/minedraft/primitives"
	"github.com/maxsupermanhd/minedraft/render/raster"
)

// DataNeeds lists what a renderer wants resident besides the chunk
// being rendered.
type DataNeeds struct {
	// Neighbours are offsets from the rendered chunk.
	Neighbours []primitives.ChunkPos
}

// Merge returns the union of both needs.
func (d DataNeeds) Merge(o DataNeeds) DataNeeds {
	seen := map[primitives.ChunkPos]bool{}
	ret := DataNeeds{}
	for _, n := range append(append([]primitives.ChunkPos{}, d.Neighbours...), o.Neighbours...) {
		if !seen[n] {
			seen[n] = true
			ret.Neighbours = append(ret.Neighbours, n)
		}
	}
	return ret
}

// ChunkRenderer builds one output image out of chunks fed to it in
// render order. Render calls for one renderer are never concurrent.
type ChunkRenderer interface {
	Name() string
	Needs() DataNeeds
	SetSurface(topRight, bottomLeft primitives.ChunkPos) error
	Render(box *ChunkBox) error
	Finalise() error
	Image() (*raster.Image, error)
	// Trim reports whether the saved image should be cropped to content.
	Trim() bool
}
