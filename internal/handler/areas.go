package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
	"github.com/lottoops/unclaimed-tracker/backend/internal/repository"
)

func (h *Handler) GetAllAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.repository.GetAllAreas(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "areas loaded", areas)
}

func (h *Handler) areaWriteError(w http.ResponseWriter, r *http.Request, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr) && pgErr.ConstraintName == "areas_name_key":
		h.badRequest(w, r, errors.New("area name already exists"))
	case errors.Is(err, repository.ErrEditConflict):
		h.errorResponse(w, r, "area was changed by someone else, please reload")
	default:
		h.internalServerError(w, r, err)
	}
}

func (h *Handler) CreateArea(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name" validate:"required,max=100"`
		Description string `json:"description" validate:"max=500"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	area := &domain.Area{Name: req.Name, Description: req.Description}
	if err := h.repository.CreateArea(r.Context(), area); err != nil {
		h.areaWriteError(w, r, err)
		return
	}

	h.successResponse(w, r, "area created", area)
}

func (h *Handler) UpdateArea(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
		Description *string `json:"description" validate:"omitempty,max=500"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	area := r.Context().Value(AreaCtx).(*domain.Area)
	if req.Name != nil {
		area.Name = *req.Name
	}
	if req.Description != nil {
		area.Description = *req.Description
	}

	if err := h.repository.UpdateArea(r.Context(), area); err != nil {
		h.areaWriteError(w, r, err)
		return
	}

	h.successResponse(w, r, "area updated", area)
}

func (h *Handler) DeleteArea(w http.ResponseWriter, r *http.Request) {
	area := r.Context().Value(AreaCtx).(*domain.Area)

	if err := h.repository.DeleteArea(r.Context(), area.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "area deleted", nil)
}
