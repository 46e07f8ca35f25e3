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

package postgresChunkStorage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/maxsupermanhd/minedraft/chunkStorage"
	"github.com/maxsupermanhd/minedraft/primitives"
)

func (s *PostgresChunkStorage) ListChunks(ctx context.Context) ([]primitives.ChunkPos, error) {
	ret := []primitives.ChunkPos{}
	rows, err := s.dbpool.Query(ctx, `SELECT DISTINCT x, z FROM chunks WHERE world = $1`, s.world)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ret, nil
		}
		return ret, err
	}
	defer rows.Close()
	for rows.Next() {
		var x, z int32
		if err := rows.Scan(&x, &z); err != nil {
			return ret, err
		}
		ret = append(ret, primitives.ChunkPos{X: int(x), Z: int(z)})
	}
	return ret, rows.Err()
}

func (s *PostgresChunkStorage) HasChunk(ctx context.Context, pos primitives.ChunkPos) (bool, error) {
	var ok bool
	err := s.dbpool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM chunks WHERE world = $1 AND x = $2 AND z = $3)`,
		s.world, pos.X, pos.Z).Scan(&ok)
	return ok, err
}

func (s *PostgresChunkStorage) GetChunk(ctx context.Context, pos primitives.ChunkPos) (*chunkStorage.ChunkData, error) {
	var d []byte
	err := s.dbpool.QueryRow(ctx, `
		select data
		from chunks
		where world = $1 AND x = $2 AND z = $3
		order by created_at desc
		limit 1;`, s.world, pos.X, pos.Z).Scan(&d)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", chunkStorage.ErrNoChunk, pos)
		}
		return nil, err
	}
	return chunkStorage.ConvFlexibleNBT(d, pos)
}

// AddChunkRaw stores data that already carries the compression byte.
func (s *PostgresChunkStorage) AddChunkRaw(ctx context.Context, pos primitives.ChunkPos, data []byte) error {
	_, err := s.dbpool.Exec(ctx, `
		insert into chunks (world, x, z, data)
		values ($1, $2, $3, $4)`, s.world, pos.X, pos.Z, data)
	return err
}

// AddChunk encodes and stores a chunk.
func (s *PostgresChunkStorage) AddChunk(ctx context.Context, d *chunkStorage.ChunkData) error {
	raw, err := chunkStorage.EncodeFlexibleNBT(d)
	if err != nil {
		return err
	}
	return s.AddChunkRaw(ctx, d.Pos, raw)
}
