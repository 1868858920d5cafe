package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"salongate/internal/availability/service"
	apperrors "salongate/pkg/errors"
	httputil "salongate/pkg/http"
	"salongate/pkg/logger"
)

type AvailabilityHandler struct {
	service service.AvailabilityService
	log     *logger.Logger
}

func NewAvailabilityHandler(service service.AvailabilityService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
	}
}

func (h *AvailabilityHandler) Slots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	staffID, err := strconv.ParseInt(query.Get("staffId"), 10, 64)
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid staffId parameter"))
		return
	}

	serviceID, err := strconv.ParseInt(query.Get("serviceId"), 10, 64)
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid serviceId parameter"))
		return
	}

	slots, err := h.service.Slots(r.Context(), staffID, serviceID, query.Get("date"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, slots)
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/availability/available-slots", h.Slots)
}
