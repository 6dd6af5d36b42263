package live

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	broker *Broker
}

func NewLiveHandler(broker *Broker) *Handler {
	return &Handler{broker}
}

// Stream godoc
// @Summary Subscribe to a live query over Server-Sent Events
// @Description Delivers the query result on connect, then again after every relevant write
// @Tags Live
// @Produce text/event-stream
// @Param query query string true "Query name" Enums(recipients.list, budget.global, items.byRecipient)
// @Param recipientId query int false "Recipient ID (items.byRecipient only)"
// @Success 200 {string} string "event stream"
// @Failure 400 {string} string "Bad Request"
// @Router /api/live [get]
func (handler *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	query := QueryName(r.URL.Query().Get("query"))

	var recipientId int64
	if raw := r.URL.Query().Get("recipientId"); raw != "" {
		var err error
		recipientId, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	results, unsubscribe, err := handler.broker.Subscribe(query, recipientId)
	if err != nil {
		if errors.Is(err, ErrUnknownQuery) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Initial result, then one delivery per relevant write.
	initial, err := handler.broker.Evaluate(r.Context(), query, recipientId)
	if err != nil {
		log.Errorf("failed to evaluate live query %s: %v", query, err)
		return
	}
	if !writeEvent(w, flusher, initial) {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case result := <-results:
			if !writeEvent(w, flusher, result) {
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, result Result) bool {
	payload, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to encode live query result: %v", err)
		return false
	}
	if _, err := w.Write([]byte("data: " + string(payload) + "\n\n")); err != nil {
		return false
	}
	flusher.Flush()
	return true
}
