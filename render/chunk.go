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
	"errors"
	"fmt"

	"github.com/maxsupermanhd/minedraft/chunkStorage"
	"github.com/maxsupermanhd/minedraft/primitives"
)

var ErrSectionAbsent = errors.New("chunk section absent")

// Chunk is a read-only view of one chunk's sections.
type Chunk struct {
	d *chunkStorage.ChunkData
}

func NewChunk(d *chunkStorage.ChunkData) *Chunk {
	if d == nil {
		d = &chunkStorage.ChunkData{}
	}
	return &Chunk{d: d}
}

// NewDummyChunk is a chunk with no sections, used in place of chunks
// that failed to load.
func NewDummyChunk(pos primitives.ChunkPos) *Chunk {
	return &Chunk{d: &chunkStorage.ChunkData{Pos: pos}}
}

func (c *Chunk) Pos() primitives.ChunkPos {
	return c.d.Pos
}

// IsDummy reports whether the chunk has no sections at all.
func (c *Chunk) IsDummy() bool {
	return c.d.Blocks == nil && c.d.Data == nil && c.d.SkyLight == nil && c.d.BlockLight == nil
}

func (c *Chunk) Block(v primitives.VoxelPos) (uint8, error) {
	if c.d.Blocks == nil {
		return 0, ErrSectionAbsent
	}
	i, err := v.Index()
	if err != nil {
		return 0, err
	}
	if i >= len(c.d.Blocks) {
		return 0, fmt.Errorf("%w: %s", primitives.ErrVoxelOutOfRange, v)
	}
	return c.d.Blocks[i], nil
}

func (c *Chunk) Data(v primitives.VoxelPos) (uint8, error) {
	return nibble(c.d.Data, v)
}

func (c *Chunk) SkyLight(v primitives.VoxelPos) (uint8, error) {
	return nibble(c.d.SkyLight, v)
}

func (c *Chunk) BlockLight(v primitives.VoxelPos) (uint8, error) {
	return nibble(c.d.BlockLight, v)
}

// Absent sections are common, so the sentinel is returned unwrapped.
func nibble(arr []byte, v primitives.VoxelPos) (uint8, error) {
	if arr == nil {
		return 0, ErrSectionAbsent
	}
	i, upper, err := v.NibbleIndex()
	if err != nil {
		return 0, err
	}
	if i >= len(arr) {
		return 0, fmt.Errorf("%w: %s", primitives.ErrVoxelOutOfRange, v)
	}
	if upper {
		return arr[i] >> 4, nil
	}
	return arr[i] & 0x0f, nil
}
