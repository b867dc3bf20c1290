// Package admin implements the read-only debug HTTP sidecar: a health
// check, a state dump, and a debounced export-preview trigger, all kept
// strictly separate from the core JSON-RPC mutation transport (which
// allows exactly one request in flight at a time; this sidecar never
// touches the document through anything but read paths and a
// side-effecting export that does not mutate it).
//
// Routing uses gorilla/mux; rs/cors and bep/debounce round out the
// sidecar's HTTP stack.
package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/jsphweid/scoretool/midi"
	"github.com/jsphweid/scoretool/piece"
)

// Server holds everything the sidecar needs: the live document (read
// paths only), where an export preview should land, and a debounced
// trigger so repeated manual "rebuild preview" requests collapse into
// one actual export.
type Server struct {
	doc          *piece.Document
	previewPath  string
	logger       *slog.Logger
	debounced    func(func())
	lastPreview  *midi.Summary
}

// New returns a Server over doc. previewPath is where /debug/export-preview
// writes its debounced MIDI export.
func New(doc *piece.Document, previewPath string, logger *slog.Logger) *Server {
	return &Server{
		doc:         doc,
		previewPath: previewPath,
		logger:      logger,
		debounced:   debounce.New(250 * time.Millisecond),
	}
}

// Handler returns the CORS-wrapped router serving /healthz, /debug/state,
// and /debug/export-preview.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter().StrictSlash(true)
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/debug/state", s.handleState).Methods(http.MethodGet)
	r.HandleFunc("/debug/export-preview", s.handleExportPreview).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})
	return c.Handler(withRequestID(r, s.logger))
}

func withRequestID(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-Id", id)
		logger.Debug("admin request", "request_id", id, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]any{"status": "ok"})
}

type stateResponse struct {
	Title        string       `json:"title"`
	TrackCount   int          `json:"track_count"`
	NoteCount    int          `json:"note_count"`
	SectionCount int          `json:"section_count"`
	ChordCount   int          `json:"chord_count"`
	UndoDepth    int          `json:"undo_depth"`
	RedoDepth    int          `json:"redo_depth"`
	LastPreview  *midi.Summary `json:"last_preview,omitempty"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.doc.Lock()
	info := s.doc.Info()
	chordCount := len(s.doc.ChordProgression())
	undoDepth, redoDepth := s.doc.UndoDepth(), s.doc.RedoDepth()
	s.doc.Unlock()

	writeJSON(w, s.logger, stateResponse{
		Title:        info.Title,
		TrackCount:   len(info.Tracks),
		NoteCount:    info.NoteCount,
		SectionCount: len(info.Sections),
		ChordCount:   chordCount,
		UndoDepth:    undoDepth,
		RedoDepth:    redoDepth,
		LastPreview:  s.lastPreview,
	})
}

// handleExportPreview enqueues a debounced MIDI export of the current
// document to previewPath. Rapid repeated calls (a client polling
// "rebuild preview" while editing) collapse into a single export. The
// document is cloned under lock before scheduling so the debounced
// export never races the core transport's mutations.
func (s *Server) handleExportPreview(w http.ResponseWriter, r *http.Request) {
	s.doc.Lock()
	snapshot := s.doc.Snapshot().Clone()
	s.doc.Unlock()

	s.debounced(func() {
		out, err := midi.Export(snapshot, s.previewPath)
		if err != nil {
			s.logger.Error("export preview failed", "error", err)
			return
		}
		summary, err := midi.Summarize(out)
		if err != nil {
			s.logger.Warn("export preview summarize failed", "error", err)
			return
		}
		s.lastPreview = &summary
		s.logger.Info("export preview refreshed", "path", out, "tracks", summary.TrackCount)
	})
	writeJSON(w, s.logger, map[string]any{"accepted": true})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode admin response", "error", err)
	}
}
