package app

import (
	"github.com/giftledger/giftledger/internal/config"
	"github.com/giftledger/giftledger/internal/event_bus"
	"github.com/giftledger/giftledger/internal/utils"
	"github.com/giftledger/giftledger/pkg/auth"
	"github.com/giftledger/giftledger/pkg/budget"
	"github.com/giftledger/giftledger/pkg/item"
	"github.com/giftledger/giftledger/pkg/live"
	"github.com/giftledger/giftledger/pkg/recipient"
	"github.com/giftledger/giftledger/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	SessionService *auth.SessionService
	GoogleAuth     *auth.GoogleAuth

	RecipientRepo    recipient.Repository
	RecipientService *recipient.ServiceImpl
	RecipientHandler *recipient.Handler

	ItemRepo    item.Repository
	ItemService *item.ServiceImpl
	ItemHandler *item.Handler

	BudgetService *budget.ServiceImpl
	BudgetHandler *budget.Handler

	LiveBroker  *live.Broker
	LiveHandler *live.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.SessionService = auth.NewSessionService(auth.NewSessionRepo(db), deps.Clock, cfg.Auth.SessionTTL)
	deps.GoogleAuth = auth.NewGoogleAuth(db, deps.UserService, deps.SessionService, auth.NewAllowList(cfg.Auth.AllowedEmails), cfg)

	deps.ItemRepo = item.NewItemRepo(db)
	deps.ItemService = item.NewItemService(deps.ItemRepo, deps.EventBus)
	deps.ItemHandler = item.NewItemHandler(deps.ItemService)

	deps.RecipientRepo = recipient.NewRecipientRepo(db)
	deps.RecipientService = recipient.NewRecipientService(deps.RecipientRepo, deps.ItemRepo, deps.EventBus)
	deps.RecipientHandler = recipient.NewRecipientHandler(deps.RecipientService)

	deps.BudgetService = budget.NewBudgetService(deps.RecipientRepo, deps.ItemRepo)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService)

	deps.LiveBroker = live.NewBroker(deps.EventBus, deps.BudgetService, deps.ItemService)
	deps.LiveHandler = live.NewLiveHandler(deps.LiveBroker)

	return deps
}
