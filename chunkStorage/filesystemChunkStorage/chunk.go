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

package filesystemChunkStorage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/maxsupermanhd/minedraft/chunkStorage"
	"github.com/maxsupermanhd/minedraft/primitives"
)

// ChunkPath is <root>/<x mod 64>/<z mod 64>/c.<x>.<z>.dat, all base36.
func ChunkPath(root string, pos primitives.ChunkPos) string {
	return filepath.Join(root,
		primitives.FormatBase36Mod64(pos.X),
		primitives.FormatBase36Mod64(pos.Z),
		"c."+primitives.FormatBase36(pos.X)+"."+primitives.FormatBase36(pos.Z)+".dat")
}

func (s *FilesystemChunkStorage) HasChunk(_ context.Context, pos primitives.ChunkPos) (bool, error) {
	st, err := os.Stat(ChunkPath(s.Root, pos))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return st.Mode().IsRegular(), nil
}

func (s *FilesystemChunkStorage) GetChunk(_ context.Context, pos primitives.ChunkPos) (*chunkStorage.ChunkData, error) {
	f, err := os.Open(ChunkPath(s.Root, pos))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", chunkStorage.ErrNoChunk, pos)
		}
		return nil, err
	}
	defer f.Close()
	s.loaded.Add(1)
	return chunkStorage.DecodeAlphaGzip(f, pos)
}
