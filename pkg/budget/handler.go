package budget

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type RecipientOverviewDTO struct {
	Id        int64   `json:"id"`
	Name      string  `json:"name"`
	Budget    float64 `json:"budget"`
	Order     int     `json:"order"`
	Committed float64 `json:"committed"`
	Spent     float64 `json:"spent"`
}

type GlobalBudgetDTO struct {
	TotalBudget     float64 `json:"totalBudget"`
	TotalCommitted  float64 `json:"totalCommitted"`
	TotalSpent      float64 `json:"totalSpent"`
	Available       float64 `json:"available"`
	PercentUtilized int     `json:"percentUtilized"`
}

type Handler struct {
	service Service
}

func NewBudgetHandler(service Service) *Handler {
	return &Handler{service}
}

// ListRecipients godoc
// @Summary List recipients with budget roll-ups
// @Description Get all recipients in display order, each with committed and spent totals
// @Tags Budget
// @Produce json
// @Success 200 {array} RecipientOverviewDTO
// @Router /api/recipient [get]
func (handler *Handler) ListRecipients(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing recipients with budget totals")
	w.Header().Set("Content-Type", "application/json")
	overviews, err := handler.service.ListRecipients(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]RecipientOverviewDTO, 0, len(overviews))
	for _, overview := range overviews {
		dtos = append(dtos, OverviewToDTO(overview))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetGlobalBudget godoc
// @Summary Get the household-wide budget summary
// @Tags Budget
// @Produce json
// @Success 200 {object} GlobalBudgetDTO
// @Router /api/budget [get]
func (handler *Handler) GetGlobalBudget(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	global, err := handler.service.GetGlobalBudget(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(GlobalToDTO(global)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func OverviewToDTO(overview RecipientOverview) RecipientOverviewDTO {
	return RecipientOverviewDTO{
		Id:        overview.Id,
		Name:      overview.Name,
		Budget:    overview.Budget,
		Order:     overview.SortOrder,
		Committed: overview.Committed,
		Spent:     overview.Spent,
	}
}

func GlobalToDTO(global GlobalBudget) GlobalBudgetDTO {
	return GlobalBudgetDTO{
		TotalBudget:     global.TotalBudget,
		TotalCommitted:  global.TotalCommitted,
		TotalSpent:      global.TotalSpent,
		Available:       global.Available,
		PercentUtilized: global.PercentUtilized,
	}
}
