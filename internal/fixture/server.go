// Package fixture provides a development backend that serves the reels API.
package fixture

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/glabrego/reels-cli/internal/reels"
)

const (
	defaultLimit  = 10
	maxLimit      = 50
	trendingLimit = 20
)

type Options struct {
	// Token, when set, is required as a bearer token on every API call.
	Token string
	// ViewerID is the user every mutation is attributed to.
	ViewerID string
	// RequestLog enables chi's request logger.
	RequestLog bool
	Logger     *slog.Logger
	Now        func() time.Time
}

// Server is the development reels backend.
type Server struct {
	mu      sync.Mutex
	records []Record
	index   map[string]int
	applied map[string]reels.Patch

	token    string
	viewerID string
	logger   *slog.Logger
	now      func() time.Time
	router   chi.Router
}

func New(records []Record, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	viewer := strings.TrimSpace(opts.ViewerID)
	if viewer == "" {
		viewer = "u-viewer"
	}
	s := &Server{
		records:  append([]Record(nil), records...),
		index:    make(map[string]int, len(records)),
		applied:  make(map[string]reels.Patch),
		token:    opts.Token,
		viewerID: viewer,
		logger:   logger,
		now:      now,
	}
	sort.SliceStable(s.records, func(i, j int) bool {
		return s.records[i].CreatedAt.After(s.records[j].CreatedAt)
	})
	for i, rec := range s.records {
		s.index[rec.ID] = i
	}
	s.setupRoutes(opts.RequestLog)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Reel returns the stored copy of a reel.
func (s *Server) Reel(id string) (reels.Reel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return reels.Reel{}, false
	}
	return s.records[i].Reel, true
}

func (s *Server) setupRoutes(requestLog bool) {
	r := chi.NewRouter()
	if requestLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get("/reels", s.handleList)
		r.Post("/reels/{reelID}/{action}", s.handleMutate)
	})

	r.Get("/uploads/reels/{name}", s.handleMedia)
	r.Head("/uploads/reels/{name}", s.handleMedia)
	r.Get("/dashboard/reels/{reelID}", s.handleShareLanding)

	s.router = r
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type pagination struct {
	HasNextPage bool `json:"hasNextPage"`
	CurrentPage int  `json:"currentPage"`
}

type listResponse struct {
	Reels      []reels.Reel `json:"reels"`
	Pagination pagination   `json:"pagination"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := positiveInt(q.Get("page"), 1)
	if err != nil {
		http.Error(w, "invalid page", http.StatusBadRequest)
		return
	}
	limit, err := positiveInt(q.Get("limit"), defaultLimit)
	if err != nil {
		http.Error(w, "invalid limit", http.StatusBadRequest)
		return
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if q.Get("trending") == "true" {
		writeJSON(w, s.trendingLocked())
		return
	}

	var match func(Record) bool
	switch {
	case q.Get("category") != "":
		category := q.Get("category")
		match = func(rec Record) bool { return category == "all" || strings.EqualFold(rec.Category, category) }
	case q.Get("userId") != "":
		user := q.Get("userId")
		match = func(rec Record) bool { return rec.Owner.ID == user }
	case q.Get("hashtag") != "":
		tag := reels.NormalizeHashtag(q.Get("hashtag"))
		match = func(rec Record) bool {
			for _, h := range rec.Hashtags {
				if reels.NormalizeHashtag(h) == tag {
					return true
				}
			}
			return false
		}
	default:
		match = func(Record) bool { return true }
	}

	var filtered []reels.Reel
	for _, rec := range s.records {
		if match(rec) {
			filtered = append(filtered, rec.Reel)
		}
	}

	start := (page - 1) * limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	writeJSON(w, listResponse{
		Reels:      nonNil(filtered[start:end]),
		Pagination: pagination{HasNextPage: end < len(filtered), CurrentPage: page},
	})
}

func (s *Server) trendingLocked() []reels.Reel {
	out := make([]reels.Reel, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec.Reel)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return score(out[i]) > score(out[j])
	})
	if len(out) > trendingLimit {
		out = out[:trendingLimit]
	}
	return out
}

func score(r reels.Reel) int {
	return len(r.Likes) + len(r.Reactions) + 2*len(r.Shares) + len(r.Comments)
}

type mutationRequest struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

func (s *Server) handleMutate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reelID")
	action := chi.URLParam(r, "action")

	var req mutationRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := r.Header.Get("Idempotency-Key")
	if key != "" {
		if patch, ok := s.applied[key]; ok {
			writeJSON(w, patch)
			return
		}
	}

	i, ok := s.index[id]
	if !ok {
		http.Error(w, "reel not found", http.StatusNotFound)
		return
	}
	rec := &s.records[i].Reel
	now := s.now().UTC()

	switch action {
	case "like":
		rec.Likes = toggle(rec.Likes, s.viewerID)
	case "save":
		rec.SavedBy = toggle(rec.SavedBy, s.viewerID)
	case "share":
		rec.Shares = append(rec.Shares, reels.Share{User: s.viewerID, CreatedAt: now})
	case "comment":
		text := strings.TrimSpace(req.Text)
		if text == "" {
			http.Error(w, "comment text is required", http.StatusBadRequest)
			return
		}
		rec.Comments = append(rec.Comments, reels.Comment{User: s.viewerID, Text: text, CreatedAt: now})
	case "reaction":
		reaction, err := reels.ParseReactionType(req.Type)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rec.Reactions = reels.NormalizeReactions(append(rec.Reactions, reels.Reaction{User: s.viewerID, Type: reaction}))
	default:
		http.Error(w, "unknown action", http.StatusNotFound)
		return
	}

	patch := reels.Patch{
		Likes:     nonNil(rec.Likes),
		Reactions: nonNil(rec.Reactions),
		Comments:  nonNil(rec.Comments),
		Shares:    nonNil(rec.Shares),
		SavedBy:   nonNil(rec.SavedBy),
	}
	if key != "" {
		s.applied[key] = patch
	}
	s.logger.Info("reel mutated", "reel_id", id, "action", action, "user", s.viewerID)
	writeJSON(w, patch)
}

func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if strings.HasPrefix(name, "missing-") {
		http.Error(w, "media not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Length", "0")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleShareLanding(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.Reel(chi.URLParam(r, "reelID"))
	if !ok {
		http.Error(w, "reel not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, rec.Owner.Name+": "+rec.Caption+"\n")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func positiveInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}

func toggle(values []string, id string) []string {
	out := make([]string, 0, len(values)+1)
	found := false
	for _, v := range values {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, id)
	}
	return out
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
