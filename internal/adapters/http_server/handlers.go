package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"review_copilot/internal/app"
	"review_copilot/internal/domain"
)

type Handlers struct {
	Ingest  *app.IngestionService
	Q       *app.QueryService
	Replies *app.ReplyService
	Similar *app.SimilarityService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type generateReplyRequest struct {
	ReviewID string `json:"review_id"`
}

type generateReplyResponse struct {
	ReviewID       string `json:"review_id"`
	ReviewText     string `json:"review_text"`
	SuggestedReply string `json:"suggested_reply"`
}

type storedReplyResponse struct {
	ReviewID string `json:"review_id"`
	Reply    string `json:"reply"`
}

type similarReviewsResponse struct {
	ReviewID         string   `json:"review_id"`
	SimilarReviewIDs []string `json:"similar_review_ids"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.root)
	s.mux.Post("/ingest", h.ingest)
	s.mux.Get("/all-reviews", h.allReviews)
	s.mux.Post("/generate-reply", h.generateReply)
	s.mux.Get("/reply/{review_id}", h.getReply)
	s.mux.Get("/similar-reviews/{review_id}", h.similarReviews)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func (h *Handlers) root(w http.ResponseWriter, r *http.Request) {
	rs, _ := h.Q.ListReviews(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Review Management API",
		"endpoints":     []string{"/ingest", "/generate-reply", "/all-reviews", "/reply/{review_id}", "/similar-reviews/{review_id}"},
		"total_reviews": len(rs),
	})
}

// ingest accepts either one review object or an array of them; the response
// mirrors the request shape, with derived sentiment and topics filled in.
func (h *Handlers) ingest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 4<<20))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "could not read request body")
		return
	}

	trimmed := bytes.TrimLeft(body, " \t\r\n")
	batch := len(trimmed) > 0 && trimmed[0] == '['

	var inputs []app.ReviewInput
	if batch {
		if err := json.Unmarshal(body, &inputs); err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid body", "expected an array of review objects")
			return
		}
	} else {
		var one app.ReviewInput
		if err := json.Unmarshal(body, &one); err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid body", "expected a review object")
			return
		}
		inputs = []app.ReviewInput{one}
	}

	enriched, err := h.Ingest.Ingest(r.Context(), inputs)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateID) {
			writeProblem(w, http.StatusBadRequest, "Duplicate review id", err.Error())
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Ingestion failed", err.Error())
		return
	}

	if batch {
		writeJSON(w, http.StatusOK, enriched)
		return
	}
	writeJSON(w, http.StatusOK, enriched[0])
}

func (h *Handlers) allReviews(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Q.ListReviews(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Listing failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rs)
}

func (h *Handlers) generateReply(w http.ResponseWriter, r *http.Request) {
	var req generateReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ReviewID == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected {\"review_id\": \"...\"}")
		return
	}

	rv, reply, err := h.Replies.GetOrGenerate(r.Context(), req.ReviewID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "review "+req.ReviewID+" not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Reply generation failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, generateReplyResponse{
		ReviewID:       req.ReviewID,
		ReviewText:     rv.Text,
		SuggestedReply: reply,
	})
}

func (h *Handlers) getReply(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "review_id")
	reply, err := h.Replies.GetReply(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "no reply found for review "+id)
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Reply lookup failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, storedReplyResponse{ReviewID: id, Reply: reply})
}

func (h *Handlers) similarReviews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "review_id")
	ids, err := h.Similar.FindSimilar(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "review "+id+" not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Similarity lookup failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, similarReviewsResponse{ReviewID: id, SimilarReviewIDs: ids})
}
