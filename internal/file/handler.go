// AngelaMos | 2026
// handler.go

package file

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sheetlens/api/internal/core"
	"github.com/sheetlens/api/internal/middleware"
)

type Handler struct {
	service   *Service
	maxUpload int64
}

func NewHandler(service *Service, maxUpload int64) *Handler {
	return &Handler{
		service:   service,
		maxUpload: maxUpload,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/files", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/upload", h.Upload)
		r.Get("/my-files", h.ListMine)
		r.Get("/{fileID}/data", h.GetData)
		r.Delete("/{fileID}", h.Delete)
	})
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	f, header, err := r.FormFile("file")
	if err != nil {
		core.BadRequest(w, "please upload a file")
		return
	}
	//nolint:errcheck // read-only multipart part
	defer f.Close()

	created, err := h.service.Upload(
		r.Context(),
		userID,
		header.Filename,
		f,
		header.Size,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		if errors.Is(err, ErrDisallowedType) {
			core.BadRequest(w, "only xls and xlsx files are allowed")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToFileResponse(created))
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	files, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToFileResponseList(files))
}

func (h *Handler) GetData(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	fileID := chi.URLParam(r, "fileID")

	sheet, err := h.service.GetData(r.Context(), userID, fileID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "file")
			return
		}
		if errors.Is(err, core.ErrParse) {
			core.JSONError(w, core.ParseFailedError("could not parse spreadsheet"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, FileDataResponse{
		Headers: sheet.Headers,
		Data:    sheet.Rows,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	fileID := chi.URLParam(r, "fileID")

	if err := h.service.Delete(r.Context(), userID, fileID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "file")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "file deleted successfully"})
}
