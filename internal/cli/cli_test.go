package cli

import (
	"io"
	"path/filepath"
	"testing"

	"faceplate/pkg/cache"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		ext    string
		want   string
	}{
		{name: "explicit output wins", output: "out/panel.dxf", input: "specs/panel.toml", ext: "dxf", want: "out/panel.dxf"},
		{name: "swaps extension", input: "specs/panel.toml", ext: "dxf", want: "specs/panel.dxf"},
		{name: "raster format", input: "panel.toml", ext: "png", want: "panel.png"},
		{name: "no extension on input", input: "panel", ext: "svg", want: "panel.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, tt.input, tt.ext); got != tt.want {
				t.Errorf("outputPath(%q, %q, %q) = %q, want %q", tt.output, tt.input, tt.ext, got, tt.want)
			}
		})
	}
}

func TestCacheDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	want := filepath.Join("/tmp/xdg-cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestNewCacheDisabled(t *testing.T) {
	c := newCache(true)
	t.Cleanup(func() { _ = c.Close() })

	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("newCache(true) = %T, want *cache.NullCache", c)
	}
}

func TestNewCacheFileBackend(t *testing.T) {
	t.Setenv("FACEPLATE_REDIS_ADDR", "")
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := newCache(false)
	t.Cleanup(func() { _ = c.Close() })

	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("newCache(false) = %T, want *cache.FileCache", c)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1024 * 1024, "1.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	cli := New(io.Discard, LogInfo)
	root := cli.RootCommand()

	want := []string{"render", "check", "export", "import", "graph", "batch", "serve", "cache", "completion"}
	have := map[string]bool{}
	for _, cmd := range root.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}
