package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Request is one call observed by the server.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
}

type failure struct {
	status  int
	message string
}

// Server is an in-memory recipe API. Recipes are stored exactly as given,
// so synonym-shaped payloads reach the client untouched.
type Server struct {
	mu        sync.Mutex
	recipes   []map[string]any
	reviews   []map[string]any
	favorites map[string][]favorite
	overrides map[string]any
	requests  []Request
	failures  []failure
	clock     time.Time

	router chi.Router
}

type favorite struct {
	id        string
	recipeID  string
	createdAt string
}

// New builds a Server holding copies of the given recipes.
func New(recipes ...map[string]any) *Server {
	s := &Server{
		favorites: make(map[string][]favorite),
		overrides: make(map[string]any),
		clock:     time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC),
	}
	for _, r := range recipes {
		s.recipes = append(s.recipes, clone(r))
	}
	s.router = s.routes()
	return s
}

// Start runs s on a local listener. The listener is closed when the test
// finishes.
func Start(tb testingTB, recipes ...map[string]any) (*Server, *httptest.Server) {
	tb.Helper()
	s := New(recipes...)
	ts := httptest.NewServer(s)
	tb.Cleanup(ts.Close)
	return s, ts
}

// testingTB is the subset of testing.TB used by Start.
type testingTB interface {
	Helper()
	Cleanup(func())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler exposes the router with request logging, for standalone use.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Mount("/", s)
	return r
}

// Requests returns the calls seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent call, or the zero Request.
func (s *Server) LastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

// SetRecipeResponse makes GET /api/v1/recipes/{id} answer with body
// verbatim.
func (s *Server) SetRecipeResponse(id string, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[id] = body
}

// FailNext makes the next n requests fail with status and message.
func (s *Server) FailNext(n, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.failures = append(s.failures, failure{status: status, message: message})
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", s.handleListRecipes)
			r.Post("/", s.handleCreateRecipe)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetRecipe)
				r.Put("/", s.handleUpdateRecipe(false))
				r.Patch("/", s.handleUpdateRecipe(true))
				r.Delete("/", s.handleDeleteRecipe)
				r.Get("/reviews", s.handleListReviews)
				r.Post("/reviews", s.handleCreateReview)
			})
		})
		r.Put("/reviews/{id}", s.handleUpdateReview)
		r.Delete("/reviews/{id}", s.handleDeleteReview)
		r.Get("/favorites", s.handleListFavorites)
		r.Post("/favorites/toggle", s.handleToggleFavorite)
	})
	return r
}

// record logs every request and applies queued failures.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := Request{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query()}
		if r.Body != nil {
			raw, _ := io.ReadAll(r.Body)
			if len(raw) > 0 {
				_ = json.Unmarshal(raw, &req.Body)
			}
			r.Body = io.NopCloser(strings.NewReader(string(raw)))
		}

		s.mu.Lock()
		s.requests = append(s.requests, req)
		var fail *failure
		if len(s.failures) > 0 {
			f := s.failures[0]
			s.failures = s.failures[1:]
			fail = &f
		}
		s.mu.Unlock()

		if fail != nil {
			jsonError(w, fail.message, fail.status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- recipes ---

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := atoiDefault(q.Get("page"), 1)
	limit := atoiDefault(q.Get("limit"), 10)
	category := strings.ToLower(q.Get("category"))
	difficulty := strings.ToLower(q.Get("difficulty"))
	search := strings.ToLower(strings.TrimSpace(q.Get("search")))
	sortBy := q.Get("sort_by")
	if sortBy == "" {
		sortBy = "created_at"
	}
	desc := !strings.EqualFold(q.Get("order"), "asc")

	s.mu.Lock()
	matched := make([]map[string]any, 0, len(s.recipes))
	for _, rec := range s.recipes {
		if category != "" && !strings.EqualFold(str(rec["category"]), category) {
			continue
		}
		if difficulty != "" && !strings.EqualFold(str(rec["difficulty"]), difficulty) {
			continue
		}
		if search != "" {
			text := strings.ToLower(str(rec["name"]) + " " + str(rec["description"]))
			if !strings.Contains(text, search) {
				continue
			}
		}
		matched = append(matched, s.withRatingLocked(rec))
	}
	s.mu.Unlock()

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i][sortBy], matched[j][sortBy]
		if desc {
			return lessValue(b, a)
		}
		return lessValue(a, b)
	})

	total := len(matched)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	jsonOK(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    matched[start:end],
		"pagination": map[string]any{
			"page":        page,
			"limit":       limit,
			"total":       total,
			"total_pages": totalPages,
		},
	})
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	override, hasOverride := s.overrides[id]
	rec := s.findRecipeLocked(id)
	var body map[string]any
	if rec != nil {
		body = s.withRatingLocked(rec)
	}
	s.mu.Unlock()

	if hasOverride {
		jsonOK(w, http.StatusOK, override)
		return
	}
	if body == nil {
		jsonError(w, "Resep tidak ditemukan", http.StatusNotFound)
		return
	}
	jsonOK(w, http.StatusOK, map[string]any{"success": true, "data": body})
}

func (s *Server) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(str(body["name"])) == "" {
		jsonError(w, "name is required", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	body["id"] = uuid.NewString()
	body["created_at"] = s.nowLocked()
	s.recipes = append(s.recipes, body)
	out := clone(body)
	s.mu.Unlock()

	jsonOK(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Resep berhasil dibuat",
		"data":    out,
	})
}

func (s *Server) handleUpdateRecipe(partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			jsonError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		rec := s.findRecipeLocked(id)
		if rec == nil {
			s.mu.Unlock()
			jsonError(w, "Resep tidak ditemukan", http.StatusNotFound)
			return
		}
		if !partial {
			created := rec["created_at"]
			for k := range rec {
				delete(rec, k)
			}
			rec["created_at"] = created
		}
		for k, v := range body {
			rec[k] = v
		}
		rec["id"] = id
		out := clone(rec)
		s.mu.Unlock()

		jsonOK(w, http.StatusOK, map[string]any{"success": true, "data": out})
	}
}

func (s *Server) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	found := false
	for i, rec := range s.recipes {
		if str(rec["id"]) == id {
			s.recipes = append(s.recipes[:i], s.recipes[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		jsonError(w, "Resep tidak ditemukan", http.StatusNotFound)
		return
	}
	jsonOK(w, http.StatusOK, map[string]any{"success": true, "message": "Resep berhasil dihapus"})
}

// --- reviews ---

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	if s.findRecipeLocked(id) == nil {
		s.mu.Unlock()
		jsonError(w, "Resep tidak ditemukan", http.StatusNotFound)
		return
	}
	out := []map[string]any{}
	for _, rv := range s.reviews {
		if str(rv["recipe_id"]) == id {
			out = append(out, clone(rv))
		}
	}
	s.mu.Unlock()
	jsonOK(w, http.StatusOK, map[string]any{"success": true, "data": out})
}

type reviewRequest struct {
	UserIdentifier string `json:"user_identifier"`
	Rating         int    `json:"rating"`
	Comment        string `json:"comment"`
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.UserIdentifier) == "" {
		jsonError(w, "user_identifier is required", http.StatusBadRequest)
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		jsonError(w, "rating must be between 1 and 5", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	if s.findRecipeLocked(id) == nil {
		s.mu.Unlock()
		jsonError(w, "Resep tidak ditemukan", http.StatusNotFound)
		return
	}
	review := map[string]any{
		"id":              uuid.NewString(),
		"recipe_id":       id,
		"user_identifier": req.UserIdentifier,
		"rating":          req.Rating,
		"comment":         req.Comment,
		"created_at":      s.nowLocked(),
	}
	s.reviews = append(s.reviews, review)
	out := clone(review)
	s.mu.Unlock()
	jsonOK(w, http.StatusCreated, map[string]any{"success": true, "data": out})
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		jsonError(w, "rating must be between 1 and 5", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	var review map[string]any
	for _, rv := range s.reviews {
		if str(rv["id"]) == id {
			review = rv
			break
		}
	}
	if review == nil {
		s.mu.Unlock()
		jsonError(w, "Review tidak ditemukan", http.StatusNotFound)
		return
	}
	review["rating"] = req.Rating
	review["comment"] = req.Comment
	out := clone(review)
	s.mu.Unlock()
	jsonOK(w, http.StatusOK, map[string]any{"success": true, "data": out})
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	found := false
	for i, rv := range s.reviews {
		if str(rv["id"]) == id {
			s.reviews = append(s.reviews[:i], s.reviews[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		jsonError(w, "Review tidak ditemukan", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- favorites ---

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	user := strings.TrimSpace(r.URL.Query().Get("user_identifier"))
	if user == "" {
		jsonError(w, "user_identifier is required", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	out := []map[string]any{}
	for _, fav := range s.favorites[user] {
		entry := map[string]any{
			"id":              fav.id,
			"recipe_id":       fav.recipeID,
			"user_identifier": user,
			"created_at":      fav.createdAt,
		}
		if rec := s.findRecipeLocked(fav.recipeID); rec != nil {
			entry["recipe"] = s.withRatingLocked(rec)
		}
		out = append(out, entry)
	}
	s.mu.Unlock()
	jsonOK(w, http.StatusOK, map[string]any{"success": true, "data": out})
}

type toggleRequest struct {
	RecipeID       string `json:"recipe_id"`
	UserIdentifier string `json:"user_identifier"`
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.RecipeID == "" || req.UserIdentifier == "" {
		jsonError(w, "recipe_id and user_identifier are required", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	if s.findRecipeLocked(req.RecipeID) == nil {
		s.mu.Unlock()
		jsonError(w, "Resep tidak ditemukan", http.StatusNotFound)
		return
	}
	favs := s.favorites[req.UserIdentifier]
	favorited := true
	for i, fav := range favs {
		if fav.recipeID == req.RecipeID {
			s.favorites[req.UserIdentifier] = append(favs[:i], favs[i+1:]...)
			favorited = false
			break
		}
	}
	if favorited {
		s.favorites[req.UserIdentifier] = append(favs, favorite{
			id:        uuid.NewString(),
			recipeID:  req.RecipeID,
			createdAt: s.nowLocked(),
		})
	}
	s.mu.Unlock()

	message := "Resep dihapus dari favorit"
	if favorited {
		message = "Resep ditambahkan ke favorit"
	}
	jsonOK(w, http.StatusOK, map[string]any{
		"success": true,
		"message": message,
		"data": map[string]any{
			"recipe_id":    req.RecipeID,
			"is_favorited": favorited,
		},
	})
}

// --- helpers ---

func (s *Server) findRecipeLocked(id string) map[string]any {
	for _, rec := range s.recipes {
		if str(rec["id"]) == id {
			return rec
		}
	}
	return nil
}

// withRatingLocked returns a copy of rec whose average_rating and
// review_count reflect stored reviews, when there are any.
func (s *Server) withRatingLocked(rec map[string]any) map[string]any {
	out := clone(rec)
	id := str(rec["id"])
	sum, n := 0, 0
	for _, rv := range s.reviews {
		if str(rv["recipe_id"]) != id {
			continue
		}
		if rating, ok := rv["rating"].(int); ok {
			sum += rating
			n++
		}
	}
	if n > 0 {
		out["average_rating"] = float64(sum) / float64(n)
		out["review_count"] = n
	}
	return out
}

func (s *Server) nowLocked() string {
	s.clock = s.clock.Add(time.Minute)
	return s.clock.Format(time.RFC3339)
}

func jsonOK(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	jsonOK(w, status, map[string]any{"success": false, "message": msg})
}

func clone(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func str(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func lessValue(a, b any) bool {
	af, aNum := number(a)
	bf, bNum := number(b)
	if aNum && bNum {
		return af < bf
	}
	return str(a) < str(b)
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	default:
		return 0, false
	}
}
