package courier_online_put

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"dispatch/internal/service/presence"
	"dispatch/pkg/logger"
)

type CourierOnline struct {
	Online bool `json:"online"`
}

type CourierOnlineResponse struct {
	ID     int64 `json:"id"`
	Online bool  `json:"online"`
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

	var courierOnlineDTO CourierOnline
	err = json.NewDecoder(r.Body).Decode(&courierOnlineDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	courierEntity, err := h.service.SetOnline(r.Context(), id, courierOnlineDTO.Online)
	if err != nil {
		switch {
		case errors.Is(err, presence.ErrCourierNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := CourierOnlineResponse{
		ID:     courierEntity.ID,
		Online: courierEntity.Online,
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
