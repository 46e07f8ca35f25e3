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
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/maxsupermanhd/minedraft/primitives"
)

const (
	CompressionGzip = byte(1)
	CompressionZlib = byte(2)
)

var ErrUnknownCompression = errors.New("unknown compression")

type alphaChunk struct {
	Level struct {
		XPos       int32  `nbt:"xPos"`
		ZPos       int32  `nbt:"zPos"`
		Blocks     []byte `nbt:"Blocks"`
		Data       []byte `nbt:"Data"`
		SkyLight   []byte `nbt:"SkyLight"`
		BlockLight []byte `nbt:"BlockLight"`
	} `nbt:"Level"`
}

// DecodeAlphaNBT reads an uncompressed chunk NBT stream.
func DecodeAlphaNBT(r io.Reader, pos primitives.ChunkPos) (*ChunkData, error) {
	var c alphaChunk
	if _, err := nbt.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedChunk, err)
	}
	ret := &ChunkData{
		Pos:        pos,
		Blocks:     c.Level.Blocks,
		Data:       c.Level.Data,
		SkyLight:   c.Level.SkyLight,
		BlockLight: c.Level.BlockLight,
	}
	return ret, ret.Validate()
}

// DecodeAlphaGzip reads a chunk file as written by the game.
func DecodeAlphaGzip(r io.Reader, pos primitives.ChunkPos) (*ChunkData, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedChunk, err)
	}
	defer zr.Close()
	return DecodeAlphaNBT(zr, pos)
}

// ConvFlexibleNBT decodes chunk bytes prefixed with a compression byte,
// the format chunks are kept in by database storages.
func ConvFlexibleNBT(d []byte, pos primitives.ChunkPos) (*ChunkData, error) {
	if len(d) < 2 {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformedChunk, len(d))
	}
	var r io.Reader = bytes.NewReader(d[1:])
	var err error
	switch d[0] {
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, d[0])
	case CompressionGzip:
		r, err = gzip.NewReader(r)
	case CompressionZlib:
		r, err = zlib.NewReader(r)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedChunk, err)
	}
	return DecodeAlphaNBT(r, pos)
}

// EncodeAlphaGzip writes d the way the game stores chunk files. Absent
// sections are left out of the compound.
func EncodeAlphaGzip(w io.Writer, d *ChunkData) error {
	level := map[string]any{
		"xPos": int32(d.Pos.X),
		"zPos": int32(d.Pos.Z),
	}
	for k, v := range map[string][]byte{
		"Blocks":     d.Blocks,
		"Data":       d.Data,
		"SkyLight":   d.SkyLight,
		"BlockLight": d.BlockLight,
	} {
		if v != nil {
			level[k] = v
		}
	}
	zw := gzip.NewWriter(w)
	if err := nbt.NewEncoder(zw).Encode(map[string]any{"Level": level}, ""); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// EncodeFlexibleNBT is EncodeAlphaGzip with the compression byte in front.
func EncodeFlexibleNBT(d *ChunkData) ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte(CompressionGzip)
	if err := EncodeAlphaGzip(&b, d); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
