package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/beyondbezier/scribbler/pkg/cache"
	"github.com/beyondbezier/scribbler/pkg/document"
	"github.com/beyondbezier/scribbler/pkg/errors"
	"github.com/beyondbezier/scribbler/pkg/pipeline"
)

// newServeCmd creates the serve command: an HTTP preview server that
// recomputes stale scribbles on every request.
func newServeCmd() *cobra.Command {
	var (
		addr      string
		redisAddr string
		heartline bool
	)

	cmd := &cobra.Command{
		Use:   "serve <document>",
		Short: "Serve glyph previews over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			artifactCache, err := serveCache(ctx, redisAddr)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(artifactCache, logger)
			defer runner.Close()

			srv := &previewServer{
				runner:    runner,
				docPath:   args[0],
				heartline: heartline,
			}

			// Fail fast on unreadable documents before binding the port.
			if _, err := document.Load(args[0]); err != nil {
				return err
			}

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           srv.routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = httpServer.Shutdown(shutdownCtx)
			}()

			logger.Info("serving previews", "addr", addr, "document", args[0])
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8537", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for the artifact cache (default in-memory)")
	cmd.Flags().BoolVar(&heartline, "heartline", false, "include heartline overlay in previews")

	return cmd
}

// serveCache picks the server cache backend: redis when an address is
// given, otherwise in-process memory.
func serveCache(ctx context.Context, redisAddr string) (cache.Cache, error) {
	if redisAddr == "" {
		return cache.NewMemoryCache(), nil
	}
	return cache.NewRedisCache(ctx, redisAddr)
}

// previewServer reloads the document per request, so edits to the file show
// up on the next refresh without restarting.
type previewServer struct {
	runner    *pipeline.Runner
	docPath   string
	heartline bool
}

func (s *previewServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/glyphs", s.handleGlyphs)
	r.Get("/glyphs/{name}/preview.svg", s.handlePreview)
	r.Get("/glyphs/{name}/heartline.json", s.handleHeartline)
	return r
}

func (s *previewServer) handleGlyphs(w http.ResponseWriter, r *http.Request) {
	doc, err := document.Load(s.docPath)
	if err != nil {
		writeError(w, err)
		return
	}
	names := make([]string, 0, len(doc.Glyphs))
	for name := range doc.Glyphs {
		names = append(names, name)
	}
	sort.Strings(names)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Glyphs []string `json:"glyphs"`
	}{names})
}

func (s *previewServer) handlePreview(w http.ResponseWriter, r *http.Request) {
	data, err := s.artifact(r, pipeline.FormatSVG)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(data)
}

func (s *previewServer) handleHeartline(w http.ResponseWriter, r *http.Request) {
	data, err := s.artifact(r, pipeline.FormatJSON)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *previewServer) artifact(r *http.Request, format string) ([]byte, error) {
	name := chi.URLParam(r, "name")
	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		DocumentPath: s.docPath,
		Glyphs:       []string{name},
		Formats:      []string{format},
		Heartline:    s.heartline,
	})
	if err != nil {
		return nil, err
	}
	gr := result.Glyphs[0]
	if len(gr.GroupErrors) > 0 && len(gr.Scene.Groups) == 0 {
		return nil, gr.GroupErrors[0]
	}
	return gr.Artifacts[format], nil
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeGlyphNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeGroupNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidConfiguration, errors.ErrCodeInvalidDocument,
		errors.ErrCodeIncompatibleContours, errors.ErrCodeInvalidPath,
		errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}{errors.UserMessage(err), string(errors.GetCode(err))})
}
