// Package web serves an Inventory over a local read-only JSON API.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"arduscan/internal/board"
	"arduscan/internal/catalog"
	"arduscan/internal/flags"
	"arduscan/internal/model"
	"arduscan/internal/report"
)

//go:embed static/*
var staticFS embed.FS

//go:embed help.md
var helpMD string

// LoadFunc produces a fresh inventory for each scan request.
type LoadFunc func(ctx context.Context) (*model.Inventory, error)

// Server holds the handlers and the most recent inventory.
type Server struct {
	load   LoadFunc
	cat    *catalog.Catalog
	ident  *board.Identifier
	logger *log.Logger
	system report.SystemInfo

	mu   sync.Mutex
	last *model.Inventory
}

// NewServer returns a server that scans through load.
func NewServer(load LoadFunc, cat *catalog.Catalog, ident *board.Identifier, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		load:   load,
		cat:    cat,
		ident:  ident,
		logger: logger,
		system: report.CurrentSystem(),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	subFS, _ := fs.Sub(staticFS, "static")
	mux.Handle("/", http.FileServer(http.FS(subFS)))

	// API Endpoints
	mux.HandleFunc("/api/scan", s.handleScan)
	mux.HandleFunc("/api/ports", s.handlePorts)
	mux.HandleFunc("/api/flags", s.handleFlags)
	mux.HandleFunc("/api/preview", s.handlePreview)
	mux.HandleFunc("/api/ls", s.handleLs)
	mux.HandleFunc("/api/which", s.handleWhich)
	mux.HandleFunc("/api/help", handleHelp)
	return mux
}

// ListenAndServe serves on localhost:port until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("localhost:%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Printf("Starting arduscan web server at http://localhost:%d\n", port)
	fmt.Printf("Go to http://localhost:%d in your browser.\n", port)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

// inventory returns the cached inventory, scanning when there is none or
// refresh is set.
func (s *Server) inventory(ctx context.Context, refresh bool) (*model.Inventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last != nil && !refresh {
		return s.last, nil
	}
	inv, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.last = inv
	return inv, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.logger.Error("scan failed", "err", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	inv, err := s.inventory(r.Context(), true)
	if err != nil {
		s.fail(w, err)
		return
	}

	response := struct {
		*model.Inventory
		Report        string `json:"report"`
		VerboseReport string `json:"verbose_report"`
		Version       string `json:"version"`
	}{
		Inventory:     inv,
		Report:        report.Generate(inv, s.cat, s.ident, report.Options{System: s.system}),
		VerboseReport: report.Generate(inv, s.cat, s.ident, report.Options{System: s.system, Verbose: true}),
		Version:       model.Version,
	}
	s.writeJSON(w, response)
}

type portView struct {
	model.ComPort
	IDs        string `json:"ids"`
	BoardGuess string `json:"board_guess"`
	Detected   bool   `json:"detected"`
}

func (s *Server) handlePorts(w http.ResponseWriter, r *http.Request) {
	inv, err := s.inventory(r.Context(), false)
	if err != nil {
		s.fail(w, err)
		return
	}

	views := make([]portView, 0, len(inv.Ports))
	for _, p := range inv.Ports {
		views = append(views, portView{
			ComPort:    p,
			IDs:        p.IDString(),
			BoardGuess: s.ident.Describe(p.VID, p.PID),
			Detected:   inv.Detected != nil && inv.Detected.Device == p.Device,
		})
	}
	s.writeJSON(w, struct {
		Available bool                `json:"available"`
		Board     model.BoardIdentity `json:"board"`
		Ports     []portView          `json:"ports"`
	}{inv.PortsAvailable, inv.Board, views})
}

func (s *Server) handleFlags(w http.ResponseWriter, r *http.Request) {
	inv, err := s.inventory(r.Context(), false)
	if err != nil {
		s.fail(w, err)
		return
	}

	perKind := make(map[model.Kind]model.IncludeFlags, len(inv.Kinds))
	compiler := ""
	for _, kr := range inv.Kinds {
		perKind[kr.Kind] = kr.Flags
		if compiler == "" {
			compiler = kr.Flags.Compiler
		}
	}
	s.writeJSON(w, struct {
		Flags    []string                          `json:"flags"`
		Kinds    map[model.Kind]model.IncludeFlags `json:"kinds"`
		Compiler string                            `json:"compiler,omitempty"`
	}{flags.All(inv), perKind, compiler})
}

// known reports whether path is a header or include dir of the cached scan.
func (s *Server) known(ctx context.Context, path string, dirs bool) (bool, error) {
	inv, err := s.inventory(ctx, false)
	if err != nil {
		return false, err
	}
	for _, kr := range inv.Kinds {
		for _, rec := range kr.Records {
			if (!dirs && rec.HeaderPath == path) || (dirs && rec.IncludeDir == path) {
				return true, nil
			}
		}
		if dirs && slices.Contains(kr.Flags.ExtraDirs, path) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "path is required", http.StatusBadRequest)
		return
	}
	ok, err := s.known(r.Context(), path, false)
	if err != nil {
		s.fail(w, err)
		return
	}
	if !ok {
		http.Error(w, "not a scanned header", http.StatusNotFound)
		return
	}

	lines := 40
	if v := r.URL.Query().Get("lines"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &lines); err != nil || lines <= 0 {
			http.Error(w, "invalid line count", http.StatusBadRequest)
			return
		}
	}
	s.writeJSON(w, model.GetHeaderPreview(path, lines))
}

// LsEntry is one directory listing row.
type LsEntry struct {
	Name    string `json:"name"`
	IsDir   bool   `json:"is_dir"`
	Size    int64  `json:"size"`
	Mode    string `json:"mode"`
	ModTime string `json:"mod_time"`
}

func (s *Server) handleLs(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "path is required", http.StatusBadRequest)
		return
	}
	ok, err := s.known(r.Context(), path, true)
	if err != nil {
		s.fail(w, err)
		return
	}
	if !ok {
		http.Error(w, "not a scanned include directory", http.StatusNotFound)
		return
	}

	files, err := os.ReadDir(path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	entries := make([]LsEntry, 0, len(files))
	for _, f := range files {
		info, err := f.Info()
		if err != nil {
			continue
		}
		entries = append(entries, LsEntry{
			Name:    f.Name(),
			IsDir:   f.IsDir(),
			Size:    info.Size(),
			Mode:    info.Mode().String(),
			ModTime: info.ModTime().Format("Jan 02 15:04"),
		})
	}
	s.writeJSON(w, entries)
}

// WhichMatch is an include directory holding a file that matches a query.
type WhichMatch struct {
	Kind        model.Kind `json:"kind"`
	IncludeDir  string     `json:"include_dir"`
	MatchedFile string     `json:"matched_file"`
}

// handleWhich finds the include directories, in emitted order, that hold a
// file starting with query. An exact name match wins within a directory.
func (s *Server) handleWhich(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(r.URL.Query().Get("query"))
	if query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}
	inv, err := s.inventory(r.Context(), false)
	if err != nil {
		s.fail(w, err)
		return
	}

	matches := []WhichMatch{}
	seenDirs := make(map[string]bool)
	for _, kr := range inv.Kinds {
		for _, rec := range report.Ordered(kr) {
			dir := rec.IncludeDir
			if seenDirs[dir] {
				continue
			}
			seenDirs[dir] = true

			files, err := os.ReadDir(dir)
			if err != nil {
				continue
			}
			matched := ""
			for _, f := range files {
				if f.IsDir() {
					continue
				}
				name := strings.ToLower(f.Name())
				if strings.HasPrefix(name, query) {
					matched = f.Name()
					if name == query {
						break
					}
				}
			}
			if matched != "" {
				matches = append(matches, WhichMatch{Kind: kr.Kind, IncludeDir: dir, MatchedFile: matched})
			}
		}
	}
	s.writeJSON(w, matches)
}

func handleHelp(w http.ResponseWriter, r *http.Request) {
	text := strings.ReplaceAll(helpMD, "{{VERSION}}", model.Version)

	w.Header().Set("Content-Type", "text/markdown")
	_, _ = w.Write([]byte(text))
}
