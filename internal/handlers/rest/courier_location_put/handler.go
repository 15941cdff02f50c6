package courier_location_put

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"dispatch/internal/entities"
	"dispatch/internal/service/presence"
	"dispatch/pkg/logger"
)

type CourierLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type CourierLocationResponse struct {
	ID  int64   `json:"id"`
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
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
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var locationDTO CourierLocation
	err = json.NewDecoder(r.Body).Decode(&locationDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	courierEntity, err := h.service.UpdateLocation(r.Context(), id, entities.Location{
		Lat: locationDTO.Lat,
		Lng: locationDTO.Lng,
	})
	if err != nil {
		switch {
		case errors.Is(err, presence.ErrInvalidCoordinates):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, presence.ErrCourierNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := CourierLocationResponse{
		ID: courierEntity.ID,
	}
	if courierEntity.Location != nil {
		response.Lat = courierEntity.Location.Lat
		response.Lng = courierEntity.Location.Lng
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
