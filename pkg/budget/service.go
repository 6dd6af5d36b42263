package budget

import (
	"context"

	"github.com/giftledger/giftledger/pkg/item"
	"github.com/giftledger/giftledger/pkg/recipient"
)

type Service interface {
	ListRecipients(ctx context.Context) ([]RecipientOverview, error)
	GetGlobalBudget(ctx context.Context) (GlobalBudget, error)
}

// ServiceImpl derives budget figures from current storage on every call.
// Nothing is cached: the push layer re-runs these reads whenever recipients
// or items change, so results are always a pure function of stored state.
type ServiceImpl struct {
	recipients recipient.Repository
	items      item.Repository
}

func NewBudgetService(recipients recipient.Repository, items item.Repository) *ServiceImpl {
	return &ServiceImpl{recipients: recipients, items: items}
}

// ListRecipients returns all recipients ascending by sort order, each with
// its committed and spent totals.
func (s *ServiceImpl) ListRecipients(ctx context.Context) ([]RecipientOverview, error) {
	recipients, err := s.recipients.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	overviews := make([]RecipientOverview, 0, len(recipients))
	for _, r := range recipients {
		items, err := s.items.ListByRecipient(ctx, r.Id)
		if err != nil {
			return nil, err
		}
		committed, spent := Totals(items)
		overviews = append(overviews, RecipientOverview{Recipient: r, Committed: committed, Spent: spent})
	}
	return overviews, nil
}

func (s *ServiceImpl) GetGlobalBudget(ctx context.Context) (GlobalBudget, error) {
	recipients, err := s.recipients.ListAll(ctx)
	if err != nil {
		return GlobalBudget{}, err
	}
	items, err := s.items.ListAll(ctx)
	if err != nil {
		return GlobalBudget{}, err
	}

	var totalBudget float64
	for _, r := range recipients {
		totalBudget += r.Budget
	}
	committed, spent := Totals(items)

	return GlobalBudget{
		TotalBudget:     totalBudget,
		TotalCommitted:  committed,
		TotalSpent:      spent,
		Available:       Available(totalBudget, committed, spent),
		PercentUtilized: PercentUtilized(totalBudget, committed, spent),
	}, nil
}
