package handler

import (
	"encoding/json"
	"net/http"

	"teamboard-server/internal/domain"
	"teamboard-server/internal/middleware"
	"teamboard-server/internal/service"
	"teamboard-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type EventHandler struct {
	service  *service.EventService
	validate *validator.Validate
}

func NewEventHandler(service *service.EventService) *EventHandler {
	return &EventHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	event, err := h.service.Create(middleware.GetActor(r), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, event)
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	events, err := h.service.List(middleware.GetActor(r), q.Get("teamView"), q.Get("month"), q.Get("year"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if events == nil {
		events = []*domain.Event{}
	}
	response.Success(w, events)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["id"]
	if eventID == "" {
		response.BadRequest(w, "Event ID is required")
		return
	}

	event, err := h.service.GetByID(middleware.GetActor(r), eventID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, event)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["id"]
	if eventID == "" {
		response.BadRequest(w, "Event ID is required")
		return
	}

	var req domain.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	event, err := h.service.Update(middleware.GetActor(r), eventID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, event)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["id"]
	if eventID == "" {
		response.BadRequest(w, "Event ID is required")
		return
	}

	if err := h.service.Delete(middleware.GetActor(r), eventID); err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Event deleted successfully"})
}
