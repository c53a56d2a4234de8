package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hadirin/hadirin-backend-go/internal/domain/attendance"
	"github.com/hadirin/hadirin-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	SubmitEvent(w http.ResponseWriter, r *http.Request)
	GetMyEvents(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// SubmitEvent implements AttendanceHandler.
func (h *attendanceHandlerImpl) SubmitEvent(w http.ResponseWriter, r *http.Request) {
	var req attendance.SubmitEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.SubmitEvent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// The submission contract carries its own envelope.
	response.JSON(w, http.StatusCreated, result)
}

// GetMyEvents implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyEvents(w http.ResponseWriter, r *http.Request) {
	filter := eventFilterFromQuery(r)

	result, err := h.attendanceService.GetMyEvents(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Events, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := eventFilterFromQuery(r)
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	result, err := h.attendanceService.ListEvents(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Events, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}

func eventFilterFromQuery(r *http.Request) attendance.EventFilter {
	q := r.URL.Query()
	filter := attendance.EventFilter{
		Page:  intQueryParam(r, "page", 1),
		Limit: intQueryParam(r, "limit", 20),
	}
	if v := q.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	if v := q.Get("kind"); v != "" {
		filter.Kind = &v
	}
	return filter
}

// intQueryParam gets an int query parameter with a default value
func intQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
