package model

import (
	"encoding/json"
	"strconv"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transition can leave this status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Appointment is the authoritative snapshot as returned by the backend.
// The backend serves two historical shapes: multi-service records carry a
// non-empty AppointmentServices list, legacy single-service records carry the
// appointment-level Service/Staff (customer and staff listings) or
// PrimaryService/PrimaryStaff (admin listing) instead.
type Appointment struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId,omitempty"`
	ServiceID int64     `json:"serviceId,omitempty"`
	StaffID   int64     `json:"staffId,omitempty"`
	Status    Status    `json:"status"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Notes     string    `json:"notes,omitempty"`

	AppointmentServices []AppointmentService `json:"AppointmentServices,omitempty"`

	Service        *CatalogService `json:"Service,omitempty"`
	Staff          *Staff          `json:"Staff,omitempty"`
	PrimaryService *CatalogService `json:"PrimaryService,omitempty"`
	PrimaryStaff   *Staff          `json:"PrimaryStaff,omitempty"`

	User    *User    `json:"User,omitempty"`
	Payment *Payment `json:"Payment,omitempty"`
	Review  *Review  `json:"Review,omitempty"`
}

// AppointmentService is one service line within a multi-service appointment,
// individually staffed and individually completable.
type AppointmentService struct {
	ID        int64     `json:"id"`
	ServiceID int64     `json:"serviceId"`
	StaffID   int64     `json:"staffId"`
	Status    Status    `json:"status"`
	StartTime time.Time `json:"startTime,omitempty"`
	EndTime   time.Time `json:"endTime,omitempty"`

	Service *CatalogService `json:"Service,omitempty"`
	Staff   *Staff          `json:"Staff,omitempty"`
	Review  *Review         `json:"Review,omitempty"`
}

// Services returns the canonical non-empty service sequence. Multi-service
// records are used as-is; legacy records synthesize a single entry from the
// appointment-level fallback fields. Downstream code never branches on the
// wire shape again.
func (a *Appointment) Services() []AppointmentService {
	if len(a.AppointmentServices) > 0 {
		return a.AppointmentServices
	}

	svc := a.Service
	if svc == nil {
		svc = a.PrimaryService
	}
	staff := a.Staff
	if staff == nil {
		staff = a.PrimaryStaff
	}
	if svc == nil && staff == nil && a.ServiceID == 0 {
		return nil
	}

	return []AppointmentService{{
		ServiceID: a.ServiceID,
		StaffID:   a.StaffID,
		Status:    a.Status,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		Service:   svc,
		Staff:     staff,
		Review:    a.Review,
	}}
}

// TotalPrice sums the per-service prices. A missing or non-numeric price
// counts as zero, matching how the backend lists have always been displayed.
func (a *Appointment) TotalPrice() float64 {
	var total float64
	for _, svc := range a.Services() {
		if svc.Service == nil {
			continue
		}
		price, err := strconv.ParseFloat(svc.Service.Price.String(), 64)
		if err != nil {
			continue
		}
		total += price
	}
	return total
}

// StaffNames returns the deduplicated, order-preserving staff names across
// all services, falling back to the legacy staff when no service names one.
func (a *Appointment) StaffNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, svc := range a.Services() {
		if svc.Staff == nil || svc.Staff.Name == "" {
			continue
		}
		if !seen[svc.Staff.Name] {
			seen[svc.Staff.Name] = true
			names = append(names, svc.Staff.Name)
		}
	}
	if len(names) == 0 {
		if a.Staff != nil && a.Staff.Name != "" {
			names = append(names, a.Staff.Name)
		} else if a.PrimaryStaff != nil && a.PrimaryStaff.Name != "" {
			names = append(names, a.PrimaryStaff.Name)
		}
	}
	return names
}

// AllServicesCompleted reports whether every service line has individually
// completed. Completing the last one derives completion of the whole
// appointment.
func (a *Appointment) AllServicesCompleted() bool {
	services := a.Services()
	if len(services) == 0 {
		return false
	}
	for _, svc := range services {
		if svc.Status != StatusCompleted {
			return false
		}
	}
	return true
}

// ServiceByID locates a service line by its catalog service id.
func (a *Appointment) ServiceByID(serviceID int64) (AppointmentService, bool) {
	for _, svc := range a.Services() {
		if svc.ServiceID == serviceID {
			return svc, true
		}
	}
	return AppointmentService{}, false
}

// ReviewFor resolves the review governing action eligibility for a service.
// Per-service reviews take precedence; the legacy appointment-level review is
// consulted only when the record has no per-service list at all.
func (a *Appointment) ReviewFor(serviceID int64) *Review {
	if len(a.AppointmentServices) > 0 {
		for _, svc := range a.AppointmentServices {
			if svc.ServiceID == serviceID {
				return svc.Review
			}
		}
		return nil
	}
	return a.Review
}

// CatalogService is a bookable service offering.
// CatalogService and Staff cross-reference each other in catalog listings;
// embedded inside appointments the backend strips the association arrays.
type CatalogService struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	DurationMinutes int         `json:"durationMinutes"`
	Price           json.Number `json:"price,omitempty"`
	Description     string      `json:"description,omitempty"`

	Staff []Staff `json:"Staff,omitempty"`
}

type Staff struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
	Bio            string `json:"bio,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`

	Services []CatalogService `json:"Services,omitempty"`
}

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}
