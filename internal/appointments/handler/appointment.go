package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"salongate/internal/appointments/service"
	apperrors "salongate/pkg/errors"
	httputil "salongate/pkg/http"
	"salongate/pkg/logger"
	"salongate/pkg/model"
)

type AppointmentHandler struct {
	service service.AppointmentService
	log     *logger.Logger
}

func NewAppointmentHandler(service service.AppointmentService, log *logger.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
		log:     log,
	}
}

func (h *AppointmentHandler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	appts, err := h.service.ListMine(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, appts)
}

func (h *AppointmentHandler) ListStaffSchedule(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	schedule, err := h.service.ListStaffSchedule(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, schedule)
}

func (h *AppointmentHandler) ListAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	appts, err := h.service.ListAll(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, appts)
}

func (h *AppointmentHandler) Actions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	set, err := h.service.Actions(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, set)
}

func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	appt, err := h.service.Book(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteCreated(w, appt)
}

func (h *AppointmentHandler) Reschedule(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req model.RescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	appt, err := h.service.Reschedule(r.Context(), id, &req)
	h.respond(w, appt, err)
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	appt, err := h.service.Cancel(r.Context(), id)
	h.respond(w, appt, err)
}

func (h *AppointmentHandler) Confirm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	appt, err := h.service.Confirm(r.Context(), id)
	h.respond(w, appt, err)
}

func (h *AppointmentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	appt, err := h.service.VerifyPayment(r.Context(), id)
	h.respond(w, appt, err)
}

func (h *AppointmentHandler) VerifyAndConfirm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	appt, err := h.service.VerifyAndConfirm(r.Context(), id)
	h.respond(w, appt, err)
}

func (h *AppointmentHandler) CompleteService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	serviceID, err := httputil.ParseID(ps, "serviceId")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	appt, err := h.service.CompleteService(r.Context(), id, serviceID)
	h.respond(w, appt, err)
}

func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	appt, err := h.service.Complete(r.Context(), id)
	h.respond(w, appt, err)
}

// respond writes the refreshed snapshot, or 204 when the appointment fell
// out of the caller's listing after the mutation.
func (h *AppointmentHandler) respond(w http.ResponseWriter, appt *model.Appointment, err error) {
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if appt == nil {
		httputil.WriteNoContent(w)
		return
	}
	httputil.WriteSuccess(w, appt)
}

func (h *AppointmentHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/appointments/my", h.ListMine)
	router.GET("/api/v1/appointments/staff/my", h.ListStaffSchedule)
	router.GET("/api/v1/admin/appointments", h.ListAll)
	router.GET("/api/v1/appointments/id/:id/actions", h.Actions)

	router.POST("/api/v1/appointments", h.Book)
	router.PUT("/api/v1/appointments/id/:id/reschedule", h.Reschedule)
	router.DELETE("/api/v1/appointments/id/:id", h.Cancel)
	router.PUT("/api/v1/admin/appointments/id/:id/confirm", h.Confirm)
	router.POST("/api/v1/admin/appointments/id/:id/verify-payment", h.VerifyPayment)
	router.POST("/api/v1/admin/appointments/id/:id/verify-and-confirm", h.VerifyAndConfirm)
	router.PUT("/api/v1/appointments/id/:id/complete-service/:serviceId", h.CompleteService)
	router.PUT("/api/v1/appointments/id/:id/complete", h.Complete)
}
