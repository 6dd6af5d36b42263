package recipient

import (
	"context"
	"sort"
)

type RepositoryStub struct {
	nextId        int64
	nextSortOrder int
	recipients    map[int64]Recipient
}

func NewStubRecipientRepo() *RepositoryStub {
	return &RepositoryStub{recipients: map[int64]Recipient{}}
}

func (s *RepositoryStub) Cleanup() {
	s.nextId = 0
	s.nextSortOrder = 0
	s.recipients = map[int64]Recipient{}
}

func (s *RepositoryStub) Store(ctx context.Context, recipient Recipient) (Recipient, error) {
	s.nextId++
	recipient.Id = s.nextId
	// Sort order mirrors the sequence in Postgres: monotonic, never reused.
	recipient.SortOrder = s.nextSortOrder
	s.nextSortOrder++
	s.recipients[recipient.Id] = recipient
	return recipient, nil
}

func (s *RepositoryStub) Get(ctx context.Context, recipientId int64) (Recipient, error) {
	if recipient, exists := s.recipients[recipientId]; exists {
		return recipient, nil
	}
	return Recipient{}, ErrRecipientNotFound
}

func (s *RepositoryStub) ListAll(ctx context.Context) ([]Recipient, error) {
	recipients := make([]Recipient, 0, len(s.recipients))
	for _, recipient := range s.recipients {
		recipients = append(recipients, recipient)
	}
	sort.Slice(recipients, func(i, j int) bool { return recipients[i].SortOrder < recipients[j].SortOrder })
	return recipients, nil
}

func (s *RepositoryStub) Update(ctx context.Context, recipientId int64, patch Patch) (bool, error) {
	recipient, exists := s.recipients[recipientId]
	if !exists {
		return false, nil
	}
	if patch.Name != nil {
		recipient.Name = *patch.Name
	}
	if patch.Budget != nil {
		recipient.Budget = *patch.Budget
	}
	s.recipients[recipientId] = recipient
	return true, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, recipientId int64) (bool, error) {
	if _, exists := s.recipients[recipientId]; exists {
		delete(s.recipients, recipientId)
		return true, nil
	}
	return false, nil
}
