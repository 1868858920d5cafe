package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"salongate/internal/catalog/service"
	apperrors "salongate/pkg/errors"
	httputil "salongate/pkg/http"
	"salongate/pkg/logger"
	"salongate/pkg/model"
)

type CatalogHandler struct {
	service service.CatalogService
	log     *logger.Logger
}

func NewCatalogHandler(service service.CatalogService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log,
	}
}

func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	services, err := h.service.Services(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, services)
}

func (h *CatalogHandler) ListStaff(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	staff, err := h.service.Staff(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, staff)
}

func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	created, err := h.service.CreateService(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteCreated(w, created)
}

func (h *CatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps, "id")
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid service id"))
		return
	}

	var req model.ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	updated, err := h.service.UpdateService(r.Context(), id, &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, updated)
}

func (h *CatalogHandler) DeactivateService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps, "id")
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid service id"))
		return
	}

	if err := h.service.DeactivateService(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *CatalogHandler) CreateStaff(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.StaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	created, err := h.service.CreateStaff(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteCreated(w, created)
}

func (h *CatalogHandler) UpdateStaff(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps, "id")
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid staff id"))
		return
	}

	var req model.StaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	updated, err := h.service.UpdateStaff(r.Context(), id, &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, updated)
}

func (h *CatalogHandler) DeactivateStaff(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps, "id")
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid staff id"))
		return
	}

	if err := h.service.DeactivateStaff(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *CatalogHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/services", h.ListServices)
	router.GET("/api/v1/staff", h.ListStaff)

	router.POST("/api/v1/admin/services", h.CreateService)
	router.PUT("/api/v1/admin/services/id/:id", h.UpdateService)
	router.DELETE("/api/v1/admin/services/id/:id", h.DeactivateService)
	router.POST("/api/v1/admin/staff", h.CreateStaff)
	router.PUT("/api/v1/admin/staff/id/:id", h.UpdateStaff)
	router.DELETE("/api/v1/admin/staff/id/:id", h.DeactivateStaff)
}
