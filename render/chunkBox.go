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

	"github.com/maxsupermanhd/minedraft/primitives"
)

var ErrNoSuchChunk = errors.New("no such chunk")

// ChunkBox is a chunk with whichever direct neighbours are resident.
// It does not own the chunks.
type ChunkBox struct {
	Center *Chunk
	North  *Chunk
	East   *Chunk
	South  *Chunk
	West   *Chunk
}

// Get returns the chunk on side d, Top and All mean the center.
func (b *ChunkBox) Get(d Direction) (*Chunk, error) {
	var c *Chunk
	switch d {
	case Top, All:
		c = b.Center
	case North:
		c = b.North
	case East:
		c = b.East
	case South:
		c = b.South
	case West:
		c = b.West
	default:
		return nil, fmt.Errorf("%w: %s", ErrNoSuchChunk, d)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchChunk, d)
	}
	return c, nil
}

// Set places c on side d of the box.
func (b *ChunkBox) Set(d Direction, c *Chunk) error {
	switch d {
	case Top, All:
		b.Center = c
	case North:
		b.North = c
	case East:
		b.East = c
	case South:
		b.South = c
	case West:
		b.West = c
	default:
		return fmt.Errorf("%w: %s", ErrCompoundDirection, d)
	}
	return nil
}

// Resolve finds the chunk holding v, which may step one chunk outside
// of the center horizontally, and returns v relative to that chunk.
func (b *ChunkBox) Resolve(v primitives.VoxelPos) (*Chunk, primitives.VoxelPos, error) {
	side := Direction(0)
	switch {
	case v.X < 0:
		side |= North
		v.X += primitives.ChunkWidth
	case v.X >= primitives.ChunkWidth:
		side |= South
		v.X -= primitives.ChunkWidth
	}
	switch {
	case v.Z < 0:
		side |= East
		v.Z += primitives.ChunkWidth
	case v.Z >= primitives.ChunkWidth:
		side |= West
		v.Z -= primitives.ChunkWidth
	}
	if side == 0 {
		side = All
	}
	c, err := b.Get(side)
	if err != nil {
		return nil, v, err
	}
	if !v.Inside() {
		return nil, v, fmt.Errorf("%w: %s", ErrNoSuchChunk, v)
	}
	return c, v, nil
}
