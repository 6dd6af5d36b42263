package item

import (
	"context"
	"sort"
)

type RepositoryStub struct {
	nextId int64
	items  map[int64]Item
}

func NewStubItemRepo() *RepositoryStub {
	return &RepositoryStub{items: map[int64]Item{}}
}

func (s *RepositoryStub) Cleanup() {
	s.nextId = 0
	s.items = map[int64]Item{}
}

func (s *RepositoryStub) Store(ctx context.Context, item Item) (int64, error) {
	s.nextId++
	item.Id = s.nextId
	s.items[item.Id] = item
	return item.Id, nil
}

func (s *RepositoryStub) Get(ctx context.Context, itemId int64) (Item, error) {
	if item, exists := s.items[itemId]; exists {
		return item, nil
	}
	return Item{}, ErrItemNotFound
}

func (s *RepositoryStub) ListByRecipient(ctx context.Context, recipientId int64) ([]Item, error) {
	var items []Item
	for _, item := range s.items {
		if item.RecipientId == recipientId {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Id < items[j].Id })
	return items, nil
}

func (s *RepositoryStub) ListAll(ctx context.Context) ([]Item, error) {
	items := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Id < items[j].Id })
	return items, nil
}

func (s *RepositoryStub) Update(ctx context.Context, itemId int64, patch Patch) (bool, error) {
	item, exists := s.items[itemId]
	if !exists {
		return false, nil
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Cost != nil {
		item.Cost = *patch.Cost
	}
	if patch.Status != nil {
		item.Status = *patch.Status
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}
	s.items[itemId] = item
	return true, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, itemId int64) (bool, error) {
	if _, exists := s.items[itemId]; exists {
		delete(s.items, itemId)
		return true, nil
	}
	return false, nil
}

func (s *RepositoryStub) DeleteByRecipient(ctx context.Context, recipientId int64) (int64, error) {
	var deleted int64
	for id, item := range s.items {
		if item.RecipientId == recipientId {
			delete(s.items, id)
			deleted++
		}
	}
	return deleted, nil
}
