package filesystemChunkStorage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/maxsupermanhd/minedraft/chunkStorage"
	"github.com/maxsupermanhd/minedraft/primitives"
)

func writeChunk(t *testing.T, root string, d *chunkStorage.ChunkData) {
	t.Helper()
	p := ChunkPath(root, d.Pos)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := chunkStorage.EncodeAlphaGzip(f, d); err != nil {
		t.Fatal(err)
	}
}

func TestChunkPath(t *testing.T) {
	got := ChunkPath("w", primitives.ChunkPos{X: -1, Z: 100})
	want := filepath.Join("w", "1r", "10", "c.-1.2s.dat")
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestParseChunkFilename(t *testing.T) {
	pos, ok := ParseChunkFilename("c.-1.2s.dat")
	if !ok || pos != (primitives.ChunkPos{X: -1, Z: 100}) {
		t.Fatalf("got %v %v", pos, ok)
	}
	for _, n := range []string{"level.dat", "c.1.dat", "c.1.2.dat.bak", "x.1.2.dat", "c.1_.2.dat"} {
		if _, ok := ParseChunkFilename(n); ok {
			t.Errorf("%q parsed as a chunk", n)
		}
	}
}

func TestListAndGet(t *testing.T) {
	root := t.TempDir()
	positions := []primitives.ChunkPos{{X: 0, Z: 0}, {X: -1, Z: 3}, {X: 70, Z: -70}}
	for _, p := range positions {
		d := &chunkStorage.ChunkData{Pos: p, Blocks: make([]byte, chunkStorage.BlocksLen)}
		d.Blocks[0] = byte(p.X + 2)
		writeChunk(t, root, d)
	}
	for _, junk := range []string{"level.dat", "session.lock", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(root, junk), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	s, err := NewFilesystemChunkStorage(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	ctx := context.Background()
	got, err := s.ListChunks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	primitives.SortRenderOrder(got)
	want := append([]primitives.ChunkPos(nil), positions...)
	primitives.SortRenderOrder(want)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("listed %v, want %v", got, want)
	}
	for _, p := range positions {
		ok, err := s.HasChunk(ctx, p)
		if err != nil || !ok {
			t.Fatalf("HasChunk(%s) = %v, %v", p, ok, err)
		}
		d, err := s.GetChunk(ctx, p)
		if err != nil {
			t.Fatal(err)
		}
		if d.Pos != p || d.Blocks[0] != byte(p.X+2) {
			t.Fatalf("chunk %s read back wrong", p)
		}
	}
	missing := primitives.ChunkPos{X: 5, Z: 5}
	if ok, err := s.HasChunk(ctx, missing); ok || err != nil {
		t.Fatalf("HasChunk on missing chunk: %v %v", ok, err)
	}
	if _, err := s.GetChunk(ctx, missing); !errors.Is(err, chunkStorage.ErrNoChunk) {
		t.Fatalf("expected ErrNoChunk, got %v", err)
	}
}

func TestNewRejectsFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	os.WriteFile(f, nil, 0644)
	if _, err := NewFilesystemChunkStorage(f, nil); err == nil {
		t.Fatal("file accepted as world root")
	}
}
