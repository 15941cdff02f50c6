package courier_get

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"dispatch/internal/service/presence"
	"dispatch/pkg/logger"
)

type CourierLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Courier struct {
	ID                 int64            `json:"id"`
	Name               string           `json:"name"`
	Phone              string           `json:"phone"`
	Online             bool             `json:"online"`
	Location           *CourierLocation `json:"location,omitempty"`
	Rating             float64          `json:"rating"`
	LifetimeDeliveries int64            `json:"lifetime_deliveries"`
	CurrentCount       int64            `json:"current_count"`
	MaxCapacity        int64            `json:"max_capacity"`
}

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		service: service,
		log:     handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	courierEntity, err := h.service.GetCourier(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, presence.ErrCourierNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	courierDTO := Courier{
		ID:                 courierEntity.ID,
		Name:               courierEntity.Name,
		Phone:              courierEntity.Phone,
		Online:             courierEntity.Online,
		Rating:             courierEntity.Rating,
		LifetimeDeliveries: courierEntity.LifetimeDeliveries,
		CurrentCount:       courierEntity.CurrentCount,
		MaxCapacity:        courierEntity.MaxCapacity,
	}
	if courierEntity.Location != nil {
		courierDTO.Location = &CourierLocation{
			Lat: courierEntity.Location.Lat,
			Lng: courierEntity.Location.Lng,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(courierDTO)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
