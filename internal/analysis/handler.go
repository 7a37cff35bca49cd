// AngelaMos | 2026
// handler.go

package analysis

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sheetlens/api/internal/core"
	"github.com/sheetlens/api/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/analysis", func(r chi.Router) {
		r.Use(authenticator)

		// /history must register before the {fileID} routes or chi
		// would treat "history" as a file id.
		r.Get("/history", h.UserHistory)
		r.Post("/{fileID}", h.Append)
		r.Get("/{fileID}/history", h.FileHistory)
	})
}

func (h *Handler) Append(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	fileID := chi.URLParam(r, "fileID")

	var req AppendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	created, err := h.service.Append(r.Context(), userID, fileID, &req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "file")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToAnalysisResponse(created))
}

func (h *Handler) FileHistory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	fileID := chi.URLParam(r, "fileID")

	analyses, err := h.service.HistoryForFile(r.Context(), userID, fileID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "file")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToAnalysisResponseList(analyses))
}

func (h *Handler) UserHistory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	entries, err := h.service.HistoryForUser(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, entries)
}
