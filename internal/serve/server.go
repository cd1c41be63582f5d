// Package serve runs a genart project behind a local web page which shows the
// latest image and program output as the project is re-run, and lets user
// consts be changed between runs.
package serve

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/osuushi/genart"
	"github.com/osuushi/genart/internal/project"
	"github.com/osuushi/genart/internal/watcher"
	"github.com/pkg/errors"
)

//go:embed static
var static embed.FS

const shutdownTimeout = 5 * time.Second

type Server struct {
	project *project.Project
	watcher *watcher.Watcher
	hub     *hub
	consts  *constStore
	lines   *project.LineWriter
	out     io.Writer
}

type finishEvent struct {
	Image string `json:"image,omitempty"`
	Error string `json:"error,omitempty"`
}

// New prepares to serve p. Output of every run goes to p's existing output and
// to the page.
func New(p *project.Project, opts project.RunOptions) *Server {
	s := &Server{
		project: p,
		hub:     newHub(),
		consts:  newConstStore(),
		out:     p.Output,
	}
	s.lines = project.NewLineWriter(s.onOutput)
	p.Output = io.MultiWriter(p.Output, s.lines)

	s.watcher = watcher.ForProject(p, opts)
	s.watcher.Env = s.consts.env
	s.watcher.OnStart = func() { s.send("start", nil) }
	s.watcher.OnFinish = s.onFinish
	return s
}

func (s *Server) onOutput(line string) {
	s.consts.observe(line)
	s.send("output", line)
}

func (s *Server) onFinish(result *project.Result, err error) {
	s.lines.Flush()
	var finish finishEvent
	if err != nil {
		finish.Error = err.Error()
	} else if result != nil && result.Image != "" {
		finish.Image = filepath.Base(result.Image)
	}
	s.send("finish", finish)
}

func (s *Server) send(name string, data any) {
	if err := s.hub.broadcast(name, data); err != nil {
		genart.Logger().Warn("failed to send event", "event", name, "error", err)
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.serveStatic("static/index.html", "text/html"))
	mux.HandleFunc("GET /script.js", s.serveStatic("static/script.js", "text/javascript"))
	mux.HandleFunc("GET /styles.css", s.serveStatic("static/styles.css", "text/css"))
	mux.HandleFunc("GET /events", s.events)
	mux.HandleFunc("POST /rerun", s.rerun)
	mux.HandleFunc("GET /images/{image}", s.image)
	return mux
}

// Serve watches the project and serves the page on addr until ctx is done.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", addr)
	}
	srv := &http.Server{
		Handler:     s.Handler(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errs := make(chan error, 2)
	go func() { errs <- s.watcher.Watch(ctx) }()
	go func() { errs <- srv.Serve(ln) }()
	fmt.Fprintf(s.out, "Serving on http://%s\n", ln.Addr())

	select {
	case <-ctx.Done():
	case err = <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
	}
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil && err == nil {
		err = errors.Wrap(shutdownErr, "failed to shut down server")
	}
	return err
}

func (s *Server) serveStatic(name, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := static.ReadFile(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentType+"; charset=utf-8")
		w.Write(body)
	}
}

func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	id, events := s.hub.subscribe()
	defer s.hub.unsubscribe(id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-events:
			if err := ev.writeTo(w); err != nil {
				genart.Logger().Debug("event stream closed", "error", err)
				return
			}
			flusher.Flush()
		}
	}
}

func (s *Server) rerun(w http.ResponseWriter, r *http.Request) {
	var consts []Const
	if err := json.NewDecoder(r.Body).Decode(&consts); err != nil {
		http.Error(w, "invalid user consts: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.consts.set(consts); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	path := filepath.Join(s.project.Dir, project.UserConstsFile)
	if err := os.WriteFile(path, []byte(s.consts.script()), 0o644); err != nil {
		http.Error(w, errors.Wrapf(err, "failed to write %s", path).Error(), http.StatusInternalServerError)
		return
	}
	s.watcher.Trigger()
	w.WriteHeader(http.StatusOK)
}

func (s *Server) image(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("image")
	if filepath.Ext(name) != ".svg" || name != filepath.Base(name) {
		http.NotFound(w, r)
		return
	}
	body, err := os.ReadFile(filepath.Join(s.project.ImagesDir(), name))
	if errors.Is(err, os.ErrNotExist) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(body)
}
