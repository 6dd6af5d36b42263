package item

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ItemDTO struct {
	Id          int64   `json:"id"`
	RecipientId int64   `json:"recipientId"`
	Name        string  `json:"name"`
	Cost        float64 `json:"cost"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes"`
}

type PatchDTO struct {
	Name   *string  `json:"name,omitempty"`
	Cost   *float64 `json:"cost,omitempty"`
	Status *string  `json:"status,omitempty"`
	Notes  *string  `json:"notes,omitempty"`
}

type Handler struct {
	service Service
}

func NewItemHandler(service Service) *Handler {
	return &Handler{service}
}

// ListByRecipient godoc
// @Summary List gift items of a recipient
// @Description Get all gift items belonging to one recipient
// @Tags Item
// @Produce json
// @Param recipientId path int true "Recipient ID"
// @Success 200 {array} ItemDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/recipient/{recipientId}/item [get]
func (handler *Handler) ListByRecipient(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing items by recipient")
	w.Header().Set("Content-Type", "application/json")
	recipientId, err := pathId(r, "recipientId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items, err := handler.service.ListByRecipient(r.Context(), recipientId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	itemsDTO := make([]ItemDTO, 0, len(items))
	for _, it := range items {
		itemsDTO = append(itemsDTO, ItemToDTO(it))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(itemsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Create godoc
// @Summary Add a gift item
// @Description Create a new gift item for a recipient
// @Tags Item
// @Accept json
// @Produce json
// @Param recipientId path int true "Recipient ID"
// @Param item body ItemDTO true "Gift Item"
// @Success 201 {object} ItemDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/recipient/{recipientId}/item [post]
func (handler *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new gift item")
	w.Header().Set("Content-Type", "application/json")
	recipientId, err := pathId(r, "recipientId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var itemDTO ItemDTO
	if err := json.NewDecoder(r.Body).Decode(&itemDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	itemDTO.RecipientId = recipientId

	created, err := handler.service.Create(r.Context(), DTOToItem(itemDTO))
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ItemToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Update godoc
// @Summary Patch a gift item
// @Description Update only the provided fields of a gift item
// @Tags Item
// @Accept json
// @Produce json
// @Param itemId path int true "Item ID"
// @Param patch body PatchDTO true "Fields to change"
// @Success 200 {object} ItemDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Item Not Found"
// @Router /api/item/{itemId} [patch]
func (handler *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	itemId, err := pathId(r, "itemId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var patchDTO PatchDTO
	if err := json.NewDecoder(r.Body).Decode(&patchDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	patch := Patch{
		Name:  patchDTO.Name,
		Cost:  patchDTO.Cost,
		Notes: patchDTO.Notes,
	}
	if patchDTO.Status != nil {
		status, err := ParseStatus(*patchDTO.Status)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		patch.Status = &status
	}

	updated, err := handler.service.Update(r.Context(), itemId, patch)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrInvalidStatus) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ItemToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Delete godoc
// @Summary Delete a gift item
// @Tags Item
// @Param itemId path int true "Item ID"
// @Success 204 "No Content"
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Item Not Found"
// @Router /api/item/{itemId} [delete]
func (handler *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	itemId, err := pathId(r, "itemId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(r.Context(), itemId); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func ItemToDTO(item Item) ItemDTO {
	return ItemDTO{
		Id:          item.Id,
		RecipientId: item.RecipientId,
		Name:        item.Name,
		Cost:        item.Cost,
		Status:      string(item.Status),
		Notes:       item.Notes,
	}
}

func DTOToItem(itemDTO ItemDTO) Item {
	return Item{
		Id:          itemDTO.Id,
		RecipientId: itemDTO.RecipientId,
		Name:        itemDTO.Name,
		Cost:        itemDTO.Cost,
		Status:      Status(itemDTO.Status),
		Notes:       itemDTO.Notes,
	}
}

func pathId(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
