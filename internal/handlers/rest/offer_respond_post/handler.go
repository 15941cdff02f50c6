package offer_respond_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/service/dispatch"
	"dispatch/internal/service/presence"
)

type OfferRespondRequest struct {
	OfferID   int64  `json:"offer_id"`
	CourierID int64  `json:"courier_id"`
	Decision  string `json:"decision"`
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
	var requestDTO OfferRespondRequest
	err := json.NewDecoder(r.Body).Decode(&requestDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	decision := entities.OfferDecision(requestDTO.Decision)

	err = h.service.RespondToOffer(r.Context(), requestDTO.OfferID, requestDTO.CourierID, decision)
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrInvalidDecision):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, dispatch.ErrOfferNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, dispatch.ErrOfferStale),
			errors.Is(err, dispatch.ErrDispatchTerminal),
			errors.Is(err, presence.ErrCapacityExceeded):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
