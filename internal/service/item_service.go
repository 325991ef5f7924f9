package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/items-api/internal/domain"
	"github.com/spec-kit/items-api/internal/events"
	"github.com/spec-kit/items-api/internal/ids"
	"github.com/spec-kit/items-api/internal/repository"
)

// ErrItemNotFound is returned for missing items and items owned by someone else.
var ErrItemNotFound = errors.New("item not found")

// ItemService encapsulates owner-scoped item operations.
type ItemService struct {
	items      repository.ItemRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(items repository.ItemRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ItemService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItemService{items: items, dispatcher: dispatcher, logger: logger}
}

// List returns the owner's items, newest first.
func (s *ItemService) List(ctx context.Context, ownerID string) ([]domain.Item, error) {
	return s.items.ListByOwner(ctx, ownerID)
}

// Create stores a new item for the owner.
func (s *ItemService) Create(ctx context.Context, ownerID, title string, description *string) (*domain.Item, error) {
	item := &domain.Item{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(title),
		Description: description,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventItemCreated, ownerID, events.ItemPayload{ItemID: item.ID, Title: item.Title})
	return item, nil
}

// Update rewrites an item the owner holds.
func (s *ItemService) Update(ctx context.Context, ownerID, id, title string, description *string) (*domain.Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrItemNotFound
	}
	item := &domain.Item{
		ID:          id,
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(title),
		Description: description,
	}
	if err := s.items.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// Delete removes an item the owner holds.
func (s *ItemService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrItemNotFound
	}
	if err := s.items.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	s.publish(ctx, events.EventItemDeleted, ownerID, events.ItemPayload{ItemID: id})
	return nil
}

func (s *ItemService) publish(ctx context.Context, eventType events.EventType, subjectID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        ids.New(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}
