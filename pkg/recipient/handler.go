package recipient

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type RecipientDTO struct {
	Id     int64   `json:"id"`
	Name   string  `json:"name"`
	Budget float64 `json:"budget"`
	Order  int     `json:"order"`
}

type PatchDTO struct {
	Name   *string  `json:"name,omitempty"`
	Budget *float64 `json:"budget,omitempty"`
}

type Handler struct {
	service Service
}

func NewRecipientHandler(service Service) *Handler {
	return &Handler{service}
}

// Create godoc
// @Summary Create a recipient
// @Description Create a new gift recipient with a spending budget
// @Tags Recipient
// @Accept json
// @Produce json
// @Param recipient body RecipientDTO true "Recipient"
// @Success 201 {object} RecipientDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/recipient [post]
func (handler *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new recipient")
	w.Header().Set("Content-Type", "application/json")
	var recipientDTO RecipientDTO
	if err := json.NewDecoder(r.Body).Decode(&recipientDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.service.Create(r.Context(), recipientDTO.Name, recipientDTO.Budget)
	if err != nil {
		if errors.Is(err, ErrEmptyName) || errors.Is(err, ErrNegativeBudget) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(RecipientToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Update godoc
// @Summary Patch a recipient
// @Description Update only the provided fields of a recipient
// @Tags Recipient
// @Accept json
// @Produce json
// @Param recipientId path int true "Recipient ID"
// @Param patch body PatchDTO true "Fields to change"
// @Success 200 {object} RecipientDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Recipient Not Found"
// @Router /api/recipient/{recipientId} [patch]
func (handler *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	recipientId, err := pathId(r, "recipientId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var patchDTO PatchDTO
	if err := json.NewDecoder(r.Body).Decode(&patchDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := handler.service.Update(r.Context(), recipientId, Patch{
		Name:   patchDTO.Name,
		Budget: patchDTO.Budget,
	})
	if err != nil {
		if errors.Is(err, ErrRecipientNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrEmptyName) || errors.Is(err, ErrNegativeBudget) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(RecipientToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Delete godoc
// @Summary Delete a recipient
// @Description Delete a recipient and, first, every gift item it owns
// @Tags Recipient
// @Param recipientId path int true "Recipient ID"
// @Success 204 "No Content"
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Recipient Not Found"
// @Router /api/recipient/{recipientId} [delete]
func (handler *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	recipientId, err := pathId(r, "recipientId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(r.Context(), recipientId); err != nil {
		if errors.Is(err, ErrRecipientNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func RecipientToDTO(recipient Recipient) RecipientDTO {
	return RecipientDTO{
		Id:     recipient.Id,
		Name:   recipient.Name,
		Budget: recipient.Budget,
		Order:  recipient.SortOrder,
	}
}

func pathId(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
