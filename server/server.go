// Package server runs the live songbook: songs reload from disk on every
// request, pages render on the fly, and a small JSON API drives
// transposition tooling.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/jsphweid/leadsheet/model"
	"github.com/jsphweid/leadsheet/music"
	"github.com/jsphweid/leadsheet/progression"
	"github.com/jsphweid/leadsheet/render"
	"github.com/jsphweid/leadsheet/song"
	"github.com/jsphweid/leadsheet/transpose"
)

var errSongNotFound = errors.New("song not found")

// Server serves a songs directory over HTTP. An empty AllowedOrigins
// permits every origin.
type Server struct {
	SongsDir       string
	Logger         *slog.Logger
	AllowedOrigins []string
	router         *mux.Router
}

func New(songsDir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{SongsDir: songsDir, Logger: logger}
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/", s.handleIndex).Methods("GET")
	router.HandleFunc("/song/{slug}/{view}", s.handleSong).Methods("GET", "POST")
	router.HandleFunc("/api/songs", s.handleListSongs).Methods("GET")
	router.HandleFunc("/api/songs/{slug}/keys", s.handleKeys).Methods("GET")
	router.HandleFunc("/api/songs/{slug}/transpose", s.handleTranspose).Methods("POST")
	router.HandleFunc("/static/style.css", s.handleStylesheet).Methods("GET")
	s.router = router
	return s
}

// Handler wraps the routes in request ID, logging, and CORS middleware.
func (s *Server) Handler() http.Handler {
	c := cors.AllowAll()
	if len(s.AllowedOrigins) > 0 {
		c = cors.New(cors.Options{AllowedOrigins: s.AllowedOrigins})
	}
	return c.Handler(s.withLogging(s.router))
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.Logger.Info("serving songbook", "addr", addr, "songs_dir", s.SongsDir)
	return http.ListenAndServe(addr, s.Handler())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.Logger.Info("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

func (s *Server) songs() ([]*song.Song, error) {
	return song.LoadDir(s.SongsDir)
}

func (s *Server) findSong(slug string) (*song.Song, error) {
	songs, err := s.songs()
	if err != nil {
		return nil, err
	}
	for _, sng := range songs {
		if sng.Slug() == slug {
			return sng, nil
		}
	}
	return nil, errSongNotFound
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) apiError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func songURL(slug, view string) string {
	return "/song/" + slug + "/" + view
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	songs, err := s.songs()
	if err != nil {
		s.Logger.Error("loading songs", "dir", s.SongsDir, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	opts := render.IndexOptions{Stylesheet: "/static/style.css", Href: songURL}
	if err := render.IndexHTML(w, songs, opts); err != nil {
		s.Logger.Error("rendering index page", "error", err)
	}
}

// transposerFor builds a transposer from the song page's form fields, or
// returns nil when neither is set.
func transposerFor(key music.Key, rootArg, stepsArg string) (*transpose.Transposer, error) {
	switch {
	case rootArg != "" && stepsArg != "":
		return nil, errors.New("transpose_root and transpose_half_steps are mutually exclusive")
	case rootArg != "":
		root, err := music.ParseNote(rootArg)
		if err != nil {
			return nil, err
		}
		return transpose.ByRoot(key, root)
	case stepsArg != "":
		n, err := strconv.Atoi(stepsArg)
		if err != nil {
			return nil, fmt.Errorf("transpose_half_steps must be an integer, got %q", stepsArg)
		}
		return transpose.ByHalfSteps(key, n)
	}
	return nil, nil
}

func (s *Server) handleSong(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if !render.ValidView(vars["view"]) {
		http.NotFound(w, r)
		return
	}
	sng, err := s.findSong(vars["slug"])
	if errors.Is(err, errSongNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.Logger.Error("loading songs", "dir", s.SongsDir, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	tr, err := transposerFor(sng.Key, r.FormValue("transpose_root"), r.FormValue("transpose_half_steps"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if tr != nil {
		for _, p := range sng.Progressions {
			tr.Progression(p.Directives)
		}
		sng.Key = tr.To()
	}

	opts := render.PageOptions{
		Condense:   sng.CondenseMeasures || r.FormValue("condense_measures") == "true",
		Stylesheet: "/static/style.css",
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.SongHTML(w, sng, vars["view"], opts); err != nil {
		s.Logger.Error("rendering song page", "slug", vars["slug"], "error", err)
	}
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := s.songs()
	if err != nil {
		s.apiError(w, http.StatusInternalServerError, err)
		return
	}
	entries := make([]model.SongListEntry, 0, len(songs))
	for _, sng := range songs {
		entry := model.SongListEntry{
			Slug:  sng.Slug(),
			Title: sng.Title,
			Key:   sng.Key.String(),
		}
		for _, f := range sng.Form {
			if hint := f.LyricsHint(); hint != "" {
				entry.LyricsHint = hint
				break
			}
		}
		entries = append(entries, entry)
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	sng, err := s.findSong(mux.Vars(r)["slug"])
	if errors.Is(err, errSongNotFound) {
		s.apiError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.apiError(w, http.StatusInternalServerError, err)
		return
	}
	res := model.KeysResponse{Current: sng.Key.ASCII()}
	for _, root := range music.TransposableRoots(sng.Key.Mode()) {
		res.Roots = append(res.Roots, root.ASCII())
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleTranspose(w http.ResponseWriter, r *http.Request) {
	sng, err := s.findSong(mux.Vars(r)["slug"])
	if errors.Is(err, errSongNotFound) {
		s.apiError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.apiError(w, http.StatusInternalServerError, err)
		return
	}

	var req model.TransposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.apiError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}
	var tr *transpose.Transposer
	switch {
	case req.Root != "" && req.HalfSteps != nil:
		s.apiError(w, http.StatusBadRequest, errors.New("root and half_steps are mutually exclusive"))
		return
	case req.Root != "":
		root, err := music.ParseNote(req.Root)
		if err == nil {
			tr, err = transpose.ByRoot(sng.Key, root)
		}
		if err != nil {
			s.apiError(w, http.StatusBadRequest, err)
			return
		}
	case req.HalfSteps != nil:
		tr, err = transpose.ByHalfSteps(sng.Key, *req.HalfSteps)
		if err != nil {
			s.apiError(w, http.StatusBadRequest, err)
			return
		}
	default:
		s.apiError(w, http.StatusBadRequest, errors.New("one of root or half_steps is required"))
		return
	}

	for _, p := range sng.Progressions {
		tr.Progression(p.Directives)
	}
	res := model.TransposeResponse{Key: tr.To().ASCII()}
	for _, p := range sng.Progressions {
		res.Progressions = append(res.Progressions, model.NamedProgression{
			Name:   p.Name,
			Chords: progression.Render(p.Directives),
		})
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write(render.StyleCSS())
}
