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
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	humanize "github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/maxsupermanhd/minedraft/chunkStorage"
	"github.com/maxsupermanhd/minedraft/chunkStorage/filesystemChunkStorage"
	"github.com/maxsupermanhd/minedraft/chunkStorage/postgresChunkStorage"
	"github.com/maxsupermanhd/minedraft/primitives"
)

var (
	basedir  = flag.String("path", "", "World directory to import")
	world    = flag.String("world", "", "World name in the database")
	threads  = flag.Int("threads", 8, "Import threads")
	validate = flag.Bool("validate", false, "Decode chunks before importing them")
)

func main() {
	flag.Parse()
	log.Print("Loading env")
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}
	conn := os.Getenv("DATABASE_URL")
	if *basedir == "" || *world == "" || conn == "" {
		log.Fatal("Need -path, -world and DATABASE_URL")
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	src, err := filesystemChunkStorage.NewFilesystemChunkStorage(*basedir, log.Default())
	must(err)
	dst, err := postgresChunkStorage.NewPostgresChunkStorage(ctx, conn, *world)
	must(err)
	defer dst.Close()
	must(dst.CreateSchema(ctx))

	chunks, err := src.ListChunks(ctx)
	must(err)
	log.Printf("Importing %s chunks with %d threads", humanize.Comma(int64(len(chunks))), *threads)

	var imported, failed, bytes atomic.Int64
	c := make(chan primitives.ChunkPos, *threads*2)
	var wg sync.WaitGroup
	wg.Add(*threads)
	for i := 0; i < *threads; i++ {
		go func() {
			defer wg.Done()
			for pos := range c {
				n, err := importChunk(ctx, dst, *basedir, pos, *validate)
				if err != nil {
					log.Printf("Chunk %s: %v", pos, err)
					failed.Add(1)
					continue
				}
				bytes.Add(int64(n))
				if imported.Add(1)%1000 == 0 {
					log.Printf("Imported %s/%d chunks", humanize.Comma(imported.Load()), len(chunks))
				}
			}
		}()
	}
	for _, pos := range chunks {
		if ctx.Err() != nil {
			break
		}
		c <- pos
	}
	close(c)
	wg.Wait()
	log.Printf("Imported %s chunks (%s), %d failed", humanize.Comma(imported.Load()), humanize.Bytes(uint64(bytes.Load())), failed.Load())
}

// importChunk stores the chunk file as is, behind a gzip compression byte.
func importChunk(ctx context.Context, dst *postgresChunkStorage.PostgresChunkStorage, root string, pos primitives.ChunkPos, validate bool) (int, error) {
	raw, err := os.ReadFile(filesystemChunkStorage.ChunkPath(root, pos))
	if err != nil {
		return 0, err
	}
	data := append([]byte{chunkStorage.CompressionGzip}, raw...)
	if validate {
		if _, err := chunkStorage.ConvFlexibleNBT(data, pos); err != nil {
			return 0, err
		}
	}
	return len(data), dst.AddChunkRaw(ctx, pos, data)
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
