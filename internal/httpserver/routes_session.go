// internal/httpserver/routes_session.go
//
// HTTP routes for overlay sessions.
//   - POST   /session         → ingest a board, start a hidden session, issue a token
//   - GET    /session         → current overlay view (sheet only when visible)
//   - PUT    /session/board   → replace the grid snapshot with a fresh read
//   - POST   /session/toggle  → show/hide the overlay
//   - DELETE /session         → drop the session
//
// Everything but POST /session needs the token (bearer or cookie).
// Sessions hold the overlay flag and the last grid; the sheet itself is
// rebuilt on every view. Handlers that load, change and save a session hold
// its lock for the whole round trip, so two toggles never both read the
// same state. The lock is per process: instances sharing a redis store can
// still interleave.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/waffle-cheatsheet/internal/overlay"
	"github.com/robalobadob/waffle-cheatsheet/internal/store"
)

// mountSessions registers the /session routes.
func (s *Server) mountSessions(r chi.Router) {
	r.Route("/session", func(r chi.Router) {
		r.Post("/", s.handleNewSession)
		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)
			r.Get("/", s.handleCurrent)
			r.Delete("/", s.handleDeleteSession)
			r.Put("/board", s.handleReplaceBoard)
			r.Post("/toggle", s.handleToggle)
		})
	})
}

// sessionLocks hands out one mutex per session ID.
type sessionLocks struct{ m sync.Map }

// lock blocks until id is free and returns the matching unlock.
func (l *sessionLocks) lock(id string) func() {
	v, _ := l.m.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (l *sessionLocks) forget(id string) { l.m.Delete(id) }

// newSessionRes is returned by POST /session.
type newSessionRes struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
	Visible   bool   `json:"visible"`
}

// handleNewSession validates the posted board and starts a hidden session.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	b, ok := readBoard(w, r)
	if !ok {
		return
	}
	sess, err := overlay.NewSession(b, s.now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.opts.Sessions.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signSession(sess.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setSessionCookie(w, tok, exp)
	log.Info().Str("session", sess.ID).Msg("session started")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newSessionRes{SessionID: sess.ID, Token: tok})
}

// loadSession fetches the session named by the request token, writing the
// error response itself when it cannot.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*overlay.Session, bool) {
	sess, err := s.opts.Sessions.Get(r.Context(), sessionID(r))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return nil, false
		}
		log.Error().Err(err).Msg("load session")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return nil, false
	}
	return sess, true
}

// handleCurrent returns the view without changing visibility.
func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	v, err := sess.Current()
	if err != nil {
		s.metrics.sheet("session", err)
		writeDomainError(w, err)
		return
	}
	if v.Visible {
		s.metrics.sheet("session", nil)
	}
	_ = json.NewEncoder(w).Encode(v)
}

// handleReplaceBoard swaps in a fresh grid read.
func (s *Server) handleReplaceBoard(w http.ResponseWriter, r *http.Request) {
	defer s.locks.lock(sessionID(r))()
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	b, ok := readBoard(w, r)
	if !ok {
		return
	}
	if err := sess.Replace(b, s.now()); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.opts.Sessions.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"sessionId": sess.ID, "layout": sess.Layout, "visible": sess.Visible})
}

// handleToggle flips the overlay and returns the new view.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	defer s.locks.lock(sessionID(r))()
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	v, err := sess.Toggle(s.now())
	if err != nil {
		s.metrics.sheet("session", err)
		writeDomainError(w, err)
		return
	}
	if err := s.opts.Sessions.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	if v.Visible {
		s.metrics.sheet("session", nil)
	}
	s.metrics.toggle(v.Visible)
	_ = json.NewEncoder(w).Encode(v)
}

// handleDeleteSession drops the session and its cookie.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	unlock := s.locks.lock(id)
	if err := s.opts.Sessions.Delete(r.Context(), id); err != nil {
		log.Warn().Err(err).Msg("delete session")
	}
	s.locks.forget(id)
	unlock()
	clearSessionCookie(w)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
