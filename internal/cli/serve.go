package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"faceplate/pkg/cache"
	"faceplate/pkg/errors"
	"faceplate/pkg/pipeline"
	"faceplate/pkg/render"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr string
	dir  string
}

// serveCommand creates the serve command: a small HTTP preview server
// over a directory of panel specs.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080", dir: "."}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve SVG previews and DXF downloads for a spec directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.dir, "dir", opts.dir, "spec directory")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	runner := c.newRunner(false)
	defer runner.Close()
	srv := &specServer{
		dir:      opts.dir,
		runner:   runner,
		previews: cache.NewScoped(runner.Cache, "preview:"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", srv.handleHealth)
	r.Get("/", srv.handleIndex)
	r.Get("/specs/{name}.svg", srv.handleSVG)
	r.Get("/specs/{name}.dxf", srv.handleDXF)

	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	display := opts.addr
	if strings.HasPrefix(display, ":") {
		display = "localhost" + display
	}
	printInfo("Serving %s on http://%s", opts.dir, display)
	c.Logger.Info("preview server listening", "addr", opts.addr, "dir", opts.dir)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// specServer renders specs from a directory on demand.
type specServer struct {
	dir      string
	runner   *pipeline.Runner
	previews cache.Cache
}

func (s *specServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func (s *specServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	names, err := s.specNames()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintln(w, "<!doctype html><title>faceplate specs</title><h1>Panel specs</h1><ul>")
	for _, name := range names {
		fmt.Fprintf(w, `<li>%s — <a href="/specs/%s.svg">svg</a> · <a href="/specs/%s.dxf">dxf</a></li>`+"\n",
			name, name, name)
	}
	fmt.Fprintln(w, "</ul>")
}

// loadSpec reads a named spec from the directory. The name comes from
// the URL, so path separators are rejected outright.
func (s *specServer) loadSpec(name string) ([]byte, error) {
	if strings.ContainsAny(name, `/\`) || name == "" {
		return nil, errors.New(errors.ErrCodeSpecNotFound, "invalid spec name %q", name)
	}
	return os.ReadFile(filepath.Join(s.dir, name+".toml"))
}

func (s *specServer) handleSVG(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, err := s.loadSpec(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// Previews are cached by spec content, so edits invalidate
	// naturally.
	key := cache.Key("svg", cache.Hash(data))
	if out, hit, err := s.previews.Get(r.Context(), key); err == nil && hit {
		writeSVG(w, out)
		return
	}

	result, err := s.runner.Load(r.Context(), pipeline.Options{SpecData: data, SpecName: name})
	if err == nil {
		err = s.runner.BuildLayout(r.Context(), pipeline.Options{SpecName: name}, result)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	out, err := render.SVG(result.Document, render.SVGOptions{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = s.previews.Set(r.Context(), key, out, 24*time.Hour)
	writeSVG(w, out)
}

func (s *specServer) handleDXF(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, err := s.loadSpec(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	key := cache.Key("dxf", cache.Hash(data))
	if out, hit, err := s.previews.Get(r.Context(), key); err == nil && hit {
		writeDXF(w, name, out)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{SpecData: data, SpecName: name})
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	_ = s.previews.Set(r.Context(), key, result.Encoded, 24*time.Hour)
	writeDXF(w, name, result.Encoded)
}

func writeSVG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(data)
}

func writeDXF(w http.ResponseWriter, name string, data []byte) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".dxf"))
	_, _ = w.Write(data)
}

// specNames lists the .toml files of the spec directory, extension
// stripped and sorted.
func (s *specServer) specNames() ([]string, error) {
	found, err := filepath.Glob(filepath.Join(s.dir, "*.toml"))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(found))
	for _, f := range found {
		names = append(names, strings.TrimSuffix(filepath.Base(f), ".toml"))
	}
	sort.Strings(names)
	return names, nil
}
