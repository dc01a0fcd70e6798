package gateway

import (
	"context"
	"fmt"

	"github.com/dg-guptadaksh/commway/internal/model"
	"github.com/labstack/gommon/log"
)

type Store interface {
	Create(ctx context.Context, message *model.CanonicalMessage) error
	UpdateStatus(ctx context.Context, id model.MessageID, status model.Status) (bool, error)
	Get(ctx context.Context, id model.MessageID) (*model.CanonicalMessage, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, message *model.CanonicalMessage) error
}

type service struct {
	store      Store
	dispatcher Dispatcher
}

func New(store Store, dispatcher Dispatcher) *service {
	return &service{
		store:      store,
		dispatcher: dispatcher,
	}
}

// Submit runs the whole pipeline for one message: construct and validate,
// persist as PENDING, attempt dispatch, then record the terminal status.
// Persistence always precedes dispatch so every attempt is attributable to a
// durable record; a dispatch failure is marked FAILED before it is returned.
func (s *service) Submit(ctx context.Context, params *model.CreateMessageParams) (*model.CanonicalMessage, error) {
	message, err := model.NewMessage(params)
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("logging message: %w", err)
	}

	if err := s.dispatcher.Dispatch(ctx, message); err != nil {
		s.markStatus(ctx, message, model.StatusFailed)
		return message, err
	}

	s.markStatus(ctx, message, model.StatusSent)
	return message, nil
}

// Fetch returns the persisted record for inspection.
func (s *service) Fetch(ctx context.Context, id model.MessageID) (*model.CanonicalMessage, error) {
	return s.store.Get(ctx, id)
}

func (s *service) markStatus(ctx context.Context, message *model.CanonicalMessage, status model.Status) {
	ok, err := s.store.UpdateStatus(ctx, message.ID, status)
	if err != nil {
		log.Errorf("marking message %s as %s: %+v", message.ID, status, err)
		return
	}
	if !ok {
		log.Errorf("marking message %s as %s: record not found", message.ID, status)
		return
	}
	message.Status = status
}
