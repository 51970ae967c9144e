package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"teabag/internal/config"
	"teabag/internal/domain"
	"teabag/internal/logging"
)

// Server serves suite pages for the lifetime of a console.
type Server interface {
	Start() error
	URL() string
}

// Factory builds a server from the run's options.
type Factory func(cfg *config.Config) Server

// SpecLister lists the spec files of a suite.
type SpecLister interface {
	Suites() []string
	SpecFiles(suite string) ([]domain.SpecFile, error)
}

// StartError is returned when the server cannot begin listening.
type StartError struct {
	Addr string
	Err  error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("teabag server failed to start on %s: %v", e.Addr, e.Err)
}

func (e *StartError) Unwrap() error { return e.Err }

// HTTPServer serves /teabag/<suite> pages and project assets.
type HTTPServer struct {
	config *config.Config
	specs  SpecLister
	logger *logging.Logger

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// NewHTTPServer creates a new HTTPServer
func NewHTTPServer(cfg *config.Config, specs SpecLister, logger *logging.Logger) *HTTPServer {
	return &HTTPServer{
		config: cfg,
		specs:  specs,
		logger: logger,
	}
}

// Start binds the configured address and serves in the background.
func (s *HTTPServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return nil
	}

	addr := s.config.GetListenAddr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return &StartError{Addr: addr, Err: err}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
	})
	srv := &http.Server{
		Handler:           c.Handler(s.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.listener = ln
	s.server = srv

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Printf("server: serve: %v", err)
		}
	}()

	s.logger.Printf("server: listening on %s", s.urlLocked())
	return nil
}

// URL returns the base URL, e.g. http://127.0.0.1:53412.
func (s *HTTPServer) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.urlLocked()
}

func (s *HTTPServer) urlLocked() string {
	if s.listener == nil {
		return fmt.Sprintf("http://%s", s.config.GetListenAddr())
	}
	return fmt.Sprintf("http://%s", s.listener.Addr().String())
}

// Shutdown stops the server if it was started.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server == nil {
		return nil
	}
	err := s.server.Shutdown(ctx)
	s.server = nil
	s.listener = nil
	return err
}

// Handler returns the router without CORS, for embedding and tests.
func (s *HTTPServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/teabag", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/teabag/{suite}", s.handleSuite).Methods(http.MethodGet)
	r.PathPrefix("/assets/").Handler(http.StripPrefix("/assets/", s.assetHandler()))
	r.Use(s.logRequests)
	return r
}

func (s *HTTPServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Printf("server: %s %s (%s)", r.Method, r.URL.RequestURI(), time.Since(start).Round(time.Millisecond))
	})
}

type suiteIndex struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func (s *HTTPServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	suites := make([]suiteIndex, 0)
	for _, name := range s.specs.Suites() {
		suites = append(suites, suiteIndex{Name: name, Path: "/teabag/" + name})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(suites); err != nil {
		s.logger.Printf("server: encode index: %v", err)
	}
}

type suitePage struct {
	Suite    string
	Reporter string
	Helper   string
	Specs    []string
}

func (s *HTTPServer) handleSuite(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["suite"]
	sc, ok := s.config.Suite(name)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown suite %q", name), http.StatusNotFound)
		return
	}

	specs, err := s.specs.SpecFiles(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	page := suitePage{
		Suite:    name,
		Reporter: query.Get("reporter"),
		Specs:    filterSpecs(specs, query["file[]"]),
	}
	if page.Reporter == "" {
		page.Reporter = "HTML"
	}
	if sc.Helper != "" {
		page.Helper = filepath.ToSlash(filepath.Join(sc.Root, sc.Helper))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := suiteTemplate.Execute(w, page); err != nil {
		s.logger.Printf("server: render suite %s: %v", name, err)
	}
}

// filterSpecs keeps the specs named in files; no files keeps everything.
func filterSpecs(specs []domain.SpecFile, files []string) []string {
	wanted := make(map[string]bool, len(files))
	for _, f := range files {
		wanted[strings.TrimPrefix(f, "/")] = true
	}

	paths := make([]string, 0, len(specs))
	for _, spec := range specs {
		if len(wanted) > 0 && !wanted[spec.Path] {
			continue
		}
		paths = append(paths, spec.Path)
	}
	return paths
}

func (s *HTTPServer) assetHandler() http.Handler {
	fs := http.FileServer(http.Dir(s.config.ProjectPath))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// dotfiles such as .env never leave the project
		for _, part := range strings.Split(r.URL.Path, "/") {
			if strings.HasPrefix(part, ".") {
				http.NotFound(w, r)
				return
			}
		}
		fs.ServeHTTP(w, r)
	})
}

var suiteTemplate = template.Must(template.New("suite").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Teabag :: {{.Suite}}</title>
  <script>window.Teabag = {suite: {{.Suite}}, reporter: {{.Reporter}}, finished: false, failures: 0};</script>
{{- if .Helper}}
  <script src="/assets/{{.Helper}}"></script>
{{- end}}
{{- range .Specs}}
  <script src="/assets/{{.}}"></script>
{{- end}}
</head>
<body></body>
</html>
`))
