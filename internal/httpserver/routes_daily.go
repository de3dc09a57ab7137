// internal/httpserver/routes_daily.go
//
// HTTP routes for the board catalog and the daily board.
// Exposes, under /daily:
//   - GET  /daily/board       → today's board (or ?date=YYYY-MM-DD)
//   - GET  /daily/cheatsheet  → cheatsheet for that board
//   - GET  /daily/boards      → catalog listing
//   - POST /daily/boards      → add a board to the catalog
//
// The day's board is the one dated that day if present, otherwise a
// deterministic pick from the catalog based on date + salt.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/waffle-cheatsheet/internal/daily"
	"github.com/robalobadob/waffle-cheatsheet/internal/ingest"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/board", s.handleDailyBoard)
		r.Get("/cheatsheet", s.handleDailyCheatsheet)
		r.Get("/boards", s.handleListBoards)
		r.Post("/boards", s.handleAddBoard)
	})
}

// dayFromQuery returns ?date=YYYY-MM-DD, or today in UTC.
func (s *Server) dayFromQuery(r *http.Request) (time.Time, error) {
	if q := r.URL.Query().Get("date"); q != "" {
		return time.Parse(ingest.DateLayout, q)
	}
	return s.now().UTC(), nil
}

// dailyEntry resolves the day's board, writing the error response itself
// when it cannot.
func (s *Server) dailyEntry(w http.ResponseWriter, r *http.Request) (daily.Entry, bool) {
	day, err := s.dayFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_date")
		return daily.Entry{}, false
	}
	e, err := s.opts.Catalog.ForDay(r.Context(), day, s.opts.DailySalt)
	if err != nil {
		if errors.Is(err, daily.ErrNoBoards) {
			writeError(w, http.StatusNotFound, "no_boards")
			return daily.Entry{}, false
		}
		log.Error().Err(err).Msg("daily board")
		writeError(w, http.StatusInternalServerError, "server_error")
		return daily.Entry{}, false
	}
	return e, true
}

// dailyBoardRes is returned by /daily/board.
type dailyBoardRes struct {
	Date  string      `json:"date"`
	Board daily.Entry `json:"board"`
}

func (s *Server) handleDailyBoard(w http.ResponseWriter, r *http.Request) {
	e, ok := s.dailyEntry(w, r)
	if !ok {
		return
	}
	day, _ := s.dayFromQuery(r)
	_ = json.NewEncoder(w).Encode(dailyBoardRes{Date: daily.DateKey(day), Board: e})
}

func (s *Server) handleDailyCheatsheet(w http.ResponseWriter, r *http.Request) {
	e, ok := s.dailyEntry(w, r)
	if !ok {
		return
	}
	res, err := buildSheet(e.Board())
	s.metrics.sheet("daily", err)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := s.opts.Catalog.List(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list boards")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if list == nil {
		list = []daily.Entry{}
	}
	_ = json.NewEncoder(w).Encode(list)
}

// addBoardRes is returned by POST /daily/boards.
type addBoardRes struct {
	ID    string `json:"id"`
	Added bool   `json:"added"`
}

func (s *Server) handleAddBoard(w http.ResponseWriter, r *http.Request) {
	b, ok := readBoard(w, r)
	if !ok {
		return
	}
	id, added, err := s.opts.Catalog.Add(r.Context(), b)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if added {
		w.WriteHeader(http.StatusCreated)
	}
	_ = json.NewEncoder(w).Encode(addBoardRes{ID: id, Added: added})
}
