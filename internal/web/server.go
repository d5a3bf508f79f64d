// Package web serves a read-only JSON view of the board store. Mutation
// stays with the CLI and TUI; the server re-reads persisted state on
// every request so it always reflects the latest save.
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"kanbo/internal/export"
	"kanbo/internal/store"
)

type Server struct {
	store store.Store
	now   func() time.Time
}

func New(s store.Store) *Server {
	return &Server{
		store: s,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Router wires the read-only routes behind permissive CORS so local
// tooling on other ports can consume the API.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	r.HandleFunc("/api/boards", s.handleBoards).Methods("GET")
	r.HandleFunc("/api/boards/{id}", s.handleBoard).Methods("GET")
	r.HandleFunc("/api/snapshot", s.handleSnapshot).Methods("GET")
	r.HandleFunc("/api/export.csv", s.handleCSV).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

// ListenAndServe blocks serving the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ok := s.store.Probe()
	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status":           "ok",
		"storageAvailable": ok,
	})
}

func (s *Server) handleBoards(w http.ResponseWriter, r *http.Request) {
	db, err := s.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data": map[string]any{
			"boards":         db.Boards,
			"currentBoardId": db.CurrentBoardID,
			"projectCount":   db.ProjectCount(),
		},
	})
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	db, err := s.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	id := mux.Vars(r)["id"]
	b, ok := db.FindBoard(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"status": "error",
			"error":  "board not found: " + id,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   b,
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	db, err := s.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	snap, err := export.BuildSnapshot(db, s.now())
	if errors.Is(err, export.ErrNoBoards) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleCSV(w http.ResponseWriter, r *http.Request) {
	db, err := s.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if len(db.Boards) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"status": "error",
			"error":  export.ErrNoBoards.Error(),
		})
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.CSVFilename(s.now())+`"`)
	_ = export.WriteCSV(w, db)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{
		"status": "error",
		"error":  err.Error(),
	})
}
