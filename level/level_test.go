package level

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/maxsupermanhd/minedraft/chunkStorage"
	"github.com/maxsupermanhd/minedraft/chunkStorage/filesystemChunkStorage"
	"github.com/maxsupermanhd/minedraft/primitives"
	"github.com/maxsupermanhd/minedraft/render"
	"github.com/maxsupermanhd/minedraft/render/dispatchers"
	"github.com/maxsupermanhd/minedraft/render/renderers"
)

func world(t *testing.T, chunks ...primitives.ChunkPos) string {
	t.Helper()
	root := t.TempDir()
	for _, c := range chunks {
		p := filesystemChunkStorage.ChunkPath(root, c)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		f, err := os.Create(p)
		if err != nil {
			t.Fatal(err)
		}
		d := &chunkStorage.ChunkData{Pos: c, Blocks: make([]byte, chunkStorage.BlocksLen)}
		d.Blocks[0] = 1
		if err := chunkStorage.EncodeAlphaGzip(f, d); err != nil {
			t.Fatal(err)
		}
		f.Close()
	}
	if err := os.WriteFile(filepath.Join(root, "level.dat"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestOpenAll(t *testing.T) {
	root := world(t, primitives.ChunkPos{X: 0, Z: 0}, primitives.ChunkPos{X: -2, Z: 3}, primitives.ChunkPos{X: 1, Z: -1})
	s, err := filesystemChunkStorage.NewFilesystemChunkStorage(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	l, err := Open(context.Background(), s, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	b := l.Bounds()
	if b.TopRight != (primitives.ChunkPos{X: -2, Z: -1}) || b.BottomLeft != (primitives.ChunkPos{X: 1, Z: 3}) {
		t.Fatalf("bounds %s", b)
	}
	c := l.Chunks()
	if len(c) != 3 || c[0] != (primitives.ChunkPos{X: 1, Z: -1}) {
		t.Fatalf("chunks %v", c)
	}
}

func TestOpenIntersect(t *testing.T) {
	root := world(t, primitives.ChunkPos{X: 0, Z: 0}, primitives.ChunkPos{X: 0, Z: 1}, primitives.ChunkPos{X: 5, Z: 5})
	s, _ := filesystemChunkStorage.NewFilesystemChunkStorage(root, nil)
	req, _ := primitives.ParseGeometry("2x2+0+0")
	l, err := Open(context.Background(), s, req, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Chunks()) != 2 {
		t.Fatalf("chunks %v", l.Chunks())
	}
	if l.Bounds().BottomLeft != (primitives.ChunkPos{X: 0, Z: 1}) {
		t.Fatalf("bounds %s", l.Bounds())
	}
}

func TestRenderEmpty(t *testing.T) {
	root := world(t)
	s, _ := filesystemChunkStorage.NewFilesystemChunkStorage(root, nil)
	l, err := Open(context.Background(), s, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	rs, _ := renderers.NewFactory(renderers.DefaultColours(), nil).Make("a.png")
	if _, err := l.Render(context.Background(), []render.ChunkRenderer{rs[0]}, dispatchers.PipelineConfig{}); !errors.Is(err, dispatchers.ErrNoChunks) {
		t.Fatalf("expected ErrNoChunks, got %v", err)
	}
}

func TestRenderWorld(t *testing.T) {
	root := world(t, primitives.ChunkPos{X: 0, Z: 0}, primitives.ChunkPos{X: 1, Z: 0})
	s, _ := filesystemChunkStorage.NewFilesystemChunkStorage(root, nil)
	l, err := Open(context.Background(), s, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	rs, _ := renderers.NewFactory(renderers.DefaultColours(), nil).Make("a.png:day,litdepth")
	stats, err := l.Render(context.Background(), []render.ChunkRenderer{rs[0]}, dispatchers.PipelineConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Loaded != 2 {
		t.Fatalf("stats %+v", stats)
	}
	img, err := rs[0].Image()
	if err != nil {
		t.Fatal(err)
	}
	if img.W != 16 || img.H != 32 {
		t.Fatalf("image %dx%d", img.W, img.H)
	}
	// block 0 is x=0 z=0 y=0 of each chunk
	if p, _ := img.At(15, 16); p.A != 1 {
		t.Fatalf("second chunk missing, got %v", p)
	}
}
