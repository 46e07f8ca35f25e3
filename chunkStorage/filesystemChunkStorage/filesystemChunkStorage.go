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
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
)

// FilesystemChunkStorage reads an alpha save tree, one gzip NBT file
// per chunk under two levels of base36 directories.
type FilesystemChunkStorage struct {
	Root   string
	logger *log.Logger
	loaded atomic.Int64
}

func NewFilesystemChunkStorage(root string, logger *log.Logger) (*FilesystemChunkStorage, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	st, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("world path %q is not a directory", root)
	}
	return &FilesystemChunkStorage{
		Root:   root,
		logger: logger,
	}, nil
}

func (s *FilesystemChunkStorage) Close() error {
	return nil
}

func (s *FilesystemChunkStorage) GetStatus() (string, error) {
	return fmt.Sprintf("filesystem storage at %s (%d chunks read)", s.Root, s.loaded.Load()), nil
}
