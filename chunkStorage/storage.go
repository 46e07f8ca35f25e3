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

package chunkStorage

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/hashicorp/go-multierror"
	"github.com/maxsupermanhd/minedraft/primitives"
)

var (
	ErrNotImplemented = errors.New("not implemented")
	ErrNoChunk        = errors.New("chunk not found")
	ErrMalformedChunk = errors.New("malformed chunk")
	ErrUnknownStorage = errors.New("storage type not implemented")
)

const (
	BlocksLen = primitives.ChunkVoxels
	NibbleLen = primitives.ChunkVoxels / 2
)

// ChunkData is what a storage hands out for one chunk. Any of the
// arrays may be nil when the save did not carry that section.
type ChunkData struct {
	Pos        primitives.ChunkPos
	Blocks     []byte
	Data       []byte
	SkyLight   []byte
	BlockLight []byte
}

// ChunkStorage is a read-only source of chunk sections.
type ChunkStorage interface {
	GetStatus() (string, error)
	// All chunks the storage knows about, in no particular order.
	ListChunks(ctx context.Context) ([]primitives.ChunkPos, error)
	// HasChunk returns false and no error for chunks that do not exist.
	HasChunk(ctx context.Context, pos primitives.ChunkPos) (bool, error)
	// GetChunk returns ErrNoChunk if the chunk does not exist.
	GetChunk(ctx context.Context, pos primitives.ChunkPos) (*ChunkData, error)
	Close() error
}

type Storage struct {
	Name    string       `json:"name"`
	Type    string       `json:"type"`
	Address string       `json:"addr"`
	Driver  ChunkStorage `json:"-"`
}

func CloseStorages(s []Storage) error {
	var result error
	for i := range s {
		if s[i].Driver == nil {
			continue
		}
		err := s[i].Driver.Close()
		if err != nil {
			log.Printf("Error closing storage [%v] of type %v: %v", s[i].Name, s[i].Type, err)
			result = multierror.Append(result, fmt.Errorf("storage %s: %w", s[i].Name, err))
		}
		s[i].Driver = nil
	}
	return result
}

// Validate checks array lengths, dropping sections that are too short
// to be indexed so that lookups report them as absent.
func (d *ChunkData) Validate() error {
	var result error
	check := func(name string, b *[]byte, l int) {
		if len(*b) == 0 {
			*b = nil
			return
		}
		if len(*b) < l {
			result = multierror.Append(result, fmt.Errorf("%w: %s is %d bytes, expected %d", ErrMalformedChunk, name, len(*b), l))
			*b = nil
		}
	}
	check("Blocks", &d.Blocks, BlocksLen)
	check("Data", &d.Data, NibbleLen)
	check("SkyLight", &d.SkyLight, NibbleLen)
	check("BlockLight", &d.BlockLight, NibbleLen)
	return result
}
