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

package main

import (
	"context"
	"fmt"
	"log"

	"github.com/maxsupermanhd/minedraft/chunkStorage"
	"github.com/maxsupermanhd/minedraft/chunkStorage/filesystemChunkStorage"
	"github.com/maxsupermanhd/minedraft/chunkStorage/postgresChunkStorage"
)

func initStorage(ctx context.Context, s chunkStorage.Storage) (driver chunkStorage.ChunkStorage, err error) {
	switch s.Type {
	case "postgres":
		driver, err = postgresChunkStorage.NewPostgresChunkStorage(ctx, s.Address, s.Name)
		if err != nil {
			return nil, err
		}
		return driver, nil
	case "filesystem", "":
		driver, err = filesystemChunkStorage.NewFilesystemChunkStorage(s.Address, log.Default())
		if err != nil {
			return nil, err
		}
		return driver, nil
	default:
		return nil, fmt.Errorf("%w: %q", chunkStorage.ErrUnknownStorage, s.Type)
	}
}

// openStorage initializes the configured storage and logs its status.
func openStorage(ctx context.Context, s chunkStorage.Storage) ([]chunkStorage.Storage, error) {
	log.Printf("Initializing %s storage at %q", s.Type, s.Address)
	d, err := initStorage(ctx, s)
	if err != nil {
		return nil, err
	}
	ver, err := d.GetStatus()
	if err != nil {
		log.Println("Error getting storage status: " + err.Error())
	} else {
		log.Println("Storage initialized: " + ver)
	}
	s.Driver = d
	return []chunkStorage.Storage{s}, nil
}
