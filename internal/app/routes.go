package app

import (
	"github.com/giftledger/giftledger/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Recipients
	r.HandleFunc("/api/recipient", deps.BudgetHandler.ListRecipients).Methods("GET")
	r.HandleFunc("/api/recipient", deps.RecipientHandler.Create).Methods("POST")
	r.HandleFunc("/api/recipient/{recipientId}", deps.RecipientHandler.Update).Methods("PATCH")
	r.HandleFunc("/api/recipient/{recipientId}", deps.RecipientHandler.Delete).Methods("DELETE")

	// Gift items
	r.HandleFunc("/api/recipient/{recipientId}/item", deps.ItemHandler.ListByRecipient).Methods("GET")
	r.HandleFunc("/api/recipient/{recipientId}/item", deps.ItemHandler.Create).Methods("POST")
	r.HandleFunc("/api/item/{itemId}", deps.ItemHandler.Update).Methods("PATCH")
	r.HandleFunc("/api/item/{itemId}", deps.ItemHandler.Delete).Methods("DELETE")

	// Budget
	r.HandleFunc("/api/budget", deps.BudgetHandler.GetGlobalBudget).Methods("GET")

	// Live queries
	r.HandleFunc("/api/live", deps.LiveHandler.Stream).Methods("GET")

	// Account
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")

	// Google sign-in
	r.HandleFunc("/api/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/auth/session", deps.GoogleAuth.Logout).Methods("DELETE")
}
