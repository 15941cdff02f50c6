package courier_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/service/presence"
	"dispatch/pkg/logger"
)

type CourierCreate struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type CourierCreateResponse struct {
	ID int64 `json:"id"`
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
	var courierModifyDTO CourierCreate
	err := json.NewDecoder(r.Body).Decode(&courierModifyDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	courierModifyEntity := entities.CourierModify{
		Name:  &courierModifyDTO.Name,
		Phone: &courierModifyDTO.Phone,
	}

	id, err := h.service.CreateCourier(r.Context(), courierModifyEntity)
	if err != nil {
		switch {
		case errors.Is(err, presence.ErrMissingRequiredFields),
			errors.Is(err, presence.ErrInvalidName),
			errors.Is(err, presence.ErrInvalidPhone):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, presence.ErrConflict):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := CourierCreateResponse{
		ID: id,
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
