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
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// PostgresChunkStorage serves chunks of one world out of a shared
// chunks table. Multiple rows per coordinate are allowed, the latest
// one wins.
type PostgresChunkStorage struct {
	dbpool *pgxpool.Pool
	world  string
}

const schema = `
create table if not exists chunks (
	id serial primary key,
	world text not null,
	x integer not null,
	z integer not null,
	data bytea not null,
	created_at timestamp not null default now()
);
create index if not exists chunks_world_xz on chunks (world, x, z);`

func NewPostgresChunkStorage(ctx context.Context, connection, world string) (*PostgresChunkStorage, error) {
	p, err := pgxpool.Connect(ctx, connection)
	if err != nil {
		return nil, err
	}
	return &PostgresChunkStorage{dbpool: p, world: world}, nil
}

// CreateSchema makes sure the chunks table exists.
func (s *PostgresChunkStorage) CreateSchema(ctx context.Context) error {
	_, err := s.dbpool.Exec(ctx, schema)
	return err
}

func (s *PostgresChunkStorage) Close() error {
	s.dbpool.Close()
	return nil
}

func (s *PostgresChunkStorage) GetStatus() (string, error) {
	var count, size uint64
	err := s.dbpool.QueryRow(context.Background(),
		`SELECT COUNT(id), COALESCE(SUM(pg_column_size(data)), 0) FROM chunks WHERE world = $1`, s.world).Scan(&count, &size)
	if err != nil {
		return "", err
	}
	st := s.dbpool.Stat()
	return fmt.Sprintf("postgres world %q: %d chunks, %d bytes, %d/%d connections", s.world, count, size, st.AcquiredConns(), st.TotalConns()), nil
}
