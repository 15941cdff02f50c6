package dispatch_get

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"dispatch/internal/service/dispatch"
	"dispatch/pkg/logger"
)

type PendingOffer struct {
	ID         int64     `json:"id"`
	CourierID  int64     `json:"courier_id"`
	Rank       int64     `json:"rank"`
	Score      float64   `json:"score"`
	DistanceKm float64   `json:"distance_km"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type DispatchStatus struct {
	OrderID           string        `json:"order_id"`
	State             string        `json:"state"`
	Round             int64         `json:"round"`
	AssignedCourierID *int64        `json:"assigned_courier_id,omitempty"`
	PendingOffer      *PendingOffer `json:"pending_offer,omitempty"`
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
	orderID := mux.Vars(r)["order_id"]

	request, pending, err := h.service.GetDispatch(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrInvalidOrderID):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, dispatch.ErrDispatchNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	statusDTO := DispatchStatus{
		OrderID:           request.OrderID,
		State:             request.State.String(),
		Round:             request.Round,
		AssignedCourierID: request.AssignedCourierID,
	}
	if pending != nil {
		statusDTO.PendingOffer = &PendingOffer{
			ID:         pending.ID,
			CourierID:  pending.CourierID,
			Rank:       pending.Rank,
			Score:      pending.Score,
			DistanceKm: pending.DistanceKm,
			ExpiresAt:  pending.ExpiresAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(statusDTO)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
