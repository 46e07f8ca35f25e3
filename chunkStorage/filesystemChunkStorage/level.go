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
	"io/fs"
	"path/filepath"
	"regexp"

	"github.com/maxsupermanhd/minedraft/primitives"
)

var chunkFileRegexp = regexp.MustCompile(`^c\.(-?[0-9a-zA-Z]+)\.(-?[0-9a-zA-Z]+)\.dat$`)

// files that live in the world root and are not chunks
var levelFiles = map[string]bool{
	"level.dat":     true,
	"level.dat_old": true,
	"session.lock":  true,
}

// ParseChunkFilename extracts the coordinate from c.<x>.<z>.dat
func ParseChunkFilename(name string) (primitives.ChunkPos, bool) {
	m := chunkFileRegexp.FindStringSubmatch(name)
	if m == nil {
		return primitives.ChunkPos{}, false
	}
	x, err := primitives.ParseBase36(m[1])
	if err != nil {
		return primitives.ChunkPos{}, false
	}
	z, err := primitives.ParseBase36(m[2])
	if err != nil {
		return primitives.ChunkPos{}, false
	}
	return primitives.ChunkPos{X: x, Z: z}, true
}

// ListChunks walks the whole tree. Unreadable directories and unknown
// files are logged and skipped.
func (s *FilesystemChunkStorage) ListChunks(ctx context.Context) ([]primitives.ChunkPos, error) {
	ret := []primitives.ChunkPos{}
	err := filepath.WalkDir(s.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == s.Root {
				return err
			}
			s.logger.Printf("Warning: couldn't open %s: %v", p, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || levelFiles[d.Name()] {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		pos, ok := ParseChunkFilename(d.Name())
		if !ok {
			s.logger.Printf("Warning: unknown file %s", p)
			return nil
		}
		ret = append(ret, pos)
		return nil
	})
	return ret, err
}
