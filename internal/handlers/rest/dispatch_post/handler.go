package dispatch_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/service/dispatch"
	"dispatch/pkg/logger"
)

type DispatchRequest struct {
	OrderID string `json:"order_id"`
	Pickup  struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"pickup"`
}

type DispatchResponse struct {
	OrderID           string `json:"order_id"`
	State             string `json:"state"`
	Round             int64  `json:"round"`
	AssignedCourierID *int64 `json:"assigned_courier_id,omitempty"`
}

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var requestDTO DispatchRequest
	err := json.NewDecoder(r.Body).Decode(&requestDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	pickup := entities.Location{
		Lat: requestDTO.Pickup.Lat,
		Lng: requestDTO.Pickup.Lng,
	}

	request, err := h.service.Dispatch(r.Context(), requestDTO.OrderID, pickup)
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrInvalidOrderID),
			errors.Is(err, dispatch.ErrInvalidPickup):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, dispatch.ErrDuplicateOrder):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := DispatchResponse{
		OrderID:           request.OrderID,
		State:             request.State.String(),
		Round:             request.Round,
		AssignedCourierID: request.AssignedCourierID,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
