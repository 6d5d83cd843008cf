package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/cashplan-dev/cashplan/internal/config"
	"github.com/cashplan-dev/cashplan/internal/forecast"
	"github.com/cashplan-dev/cashplan/internal/identity"
	"github.com/cashplan-dev/cashplan/internal/ledger"
	"github.com/cashplan-dev/cashplan/internal/model"
	"github.com/cashplan-dev/cashplan/internal/recur"
	"github.com/cashplan-dev/cashplan/internal/store"
)

type contextKey string

const userKey contextKey = "user"

// Server exposes the derived read API over HTTP. Every query loads the
// caller's collections, derives the requested view, and discards it;
// nothing is cached between requests.
type Server struct {
	kv      store.KV
	issuer  *identity.TokenIssuer
	windows config.WindowsConfig
	log     *logrus.Logger
	now     func() time.Time
}

// New creates a Server backed by kv, issuing and verifying tokens with
// issuer.
func New(kv store.KV, issuer *identity.TokenIssuer, windows config.WindowsConfig, log *logrus.Logger) *Server {
	return &Server{kv: kv, issuer: issuer, windows: windows, log: log, now: time.Now}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	authed := r.PathPrefix("/").Subrouter()
	authed.Use(s.authenticate)
	authed.HandleFunc("/accounts", s.handleAccounts).Methods(http.MethodGet)
	authed.HandleFunc("/expenses", s.handleExpenses).Methods(http.MethodGet)
	authed.HandleFunc("/income", s.handleIncome).Methods(http.MethodGet)
	authed.HandleFunc("/balance", s.handleBalance).Methods(http.MethodGet)
	authed.HandleFunc("/projection", s.handleProjection).Methods(http.MethodGet)

	return r
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	s.log.WithField("addr", addr).Info("starting server")
	return srv.ListenAndServe()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		user, err := s.issuer.Verify(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User string `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.User == "" {
		http.Error(w, "user is required", http.StatusBadRequest)
		return
	}

	token, err := s.issuer.Issue(req.User)
	if err != nil {
		http.Error(w, "issuing token failed", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, map[string]string{"token": token})
}

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	l := s.load(r)
	s.writeJSON(w, l.Accounts)
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	l := s.load(r)
	from, to, ok := s.window(w, r, s.windows.OverviewDays)
	if !ok {
		return
	}
	merged := l.MergedExpenses(s.horizon(to))
	s.writeJSON(w, recur.FilterExpenses(merged, from, to))
}

func (s *Server) handleIncome(w http.ResponseWriter, r *http.Request) {
	l := s.load(r)
	from, to, ok := s.window(w, r, s.windows.OverviewDays)
	if !ok {
		return
	}
	merged := l.MergedIncome(s.horizon(to))
	s.writeJSON(w, recur.FilterIncome(merged, from, to))
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	l := s.load(r)
	merged := l.MergedExpenses(s.horizon(s.now()))
	s.writeJSON(w, forecast.CurrentBalance(l.Accounts, merged))
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	l := s.load(r)
	from, to, ok := s.window(w, r, s.windows.ProjectionDays)
	if !ok {
		return
	}

	horizon := s.horizon(to)
	allExpenses := l.MergedExpenses(horizon)
	income := recur.FilterIncome(l.MergedIncome(horizon), from, to)
	expenses := recur.FilterExpenses(allExpenses, from, to)
	s.writeJSON(w, forecast.Timeline(l.Accounts, allExpenses, expenses, income))
}

// load reads the caller's ledger. Store failures were already absorbed as
// seed fallbacks, so this cannot fail.
func (s *Server) load(r *http.Request) ledger.Ledger {
	user, _ := r.Context().Value(userKey).(string)
	return store.Load(s.kv, user, s.log)
}

// window resolves the from/to query params, defaulting to today through
// today+days. A malformed date is a client error, rejected before it can
// reach the core.
func (s *Server) window(w http.ResponseWriter, r *http.Request, days int) (from, to time.Time, ok bool) {
	from = s.now()
	to = from.AddDate(0, 0, days)

	var err error
	if v := r.URL.Query().Get("from"); v != "" {
		if from, err = time.Parse(model.DateFormat, v); err != nil {
			http.Error(w, "invalid from date", http.StatusBadRequest)
			return from, to, false
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if to, err = time.Parse(model.DateFormat, v); err != nil {
			http.Error(w, "invalid to date", http.StatusBadRequest)
			return from, to, false
		}
	}
	return from, to, true
}

// horizon keeps expansion past both configured windows and the requested
// range end.
func (s *Server) horizon(rangeEnd time.Time) time.Time {
	now := s.now()
	overviewEnd := now.AddDate(0, 0, s.windows.OverviewDays)
	projectionEnd := now.AddDate(0, 0, s.windows.ProjectionDays)
	if rangeEnd.After(projectionEnd) {
		projectionEnd = rangeEnd
	}
	return recur.Horizon(overviewEnd, projectionEnd, now)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Warn("encoding response failed")
	}
}
