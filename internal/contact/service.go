package contact

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Service runs the server side of a submission.
type Service struct {
	store  Store
	mailer Mailer
	notify bool
	log    *zap.Logger
}

// NewService wires a store and a mailer. With notify set, Submit also sends
// the email after a successful insert.
func NewService(store Store, mailer Mailer, notify bool, log *zap.Logger) *Service {
	return &Service{store: store, mailer: mailer, notify: notify, log: log}
}

// NotifyOnSubmit reports whether Submit sends the email.
func (s *Service) NotifyOnSubmit() bool {
	return s.notify
}

// Persist validates and stores m.
func (s *Service) Persist(ctx context.Context, m Message) (Record, error) {
	m = m.Normalize()
	if err := m.Validate(); err != nil {
		return Record{}, err
	}

	rec, err := s.store.Insert(ctx, m)
	if err != nil {
		s.log.Error("contact insert failed", zap.Error(err))
		return Record{}, wrap(ErrInsertFailed, err)
	}
	s.log.Info("contact message stored", zap.Int64("id", rec.ID), zap.String("email", m.Email))
	return rec, nil
}

// Notify validates m and sends the notification email.
func (s *Service) Notify(ctx context.Context, m Message) (string, error) {
	m = m.Normalize()
	if err := m.Validate(); err != nil {
		return "", err
	}

	id, err := s.mailer.Send(ctx, m)
	if err != nil {
		s.log.Error("contact email failed", zap.Error(err))
		return "", wrap(ErrEmailFailed, err)
	}
	s.log.Info("contact email sent", zap.String("id", id))
	return id, nil
}

// Submit persists m and, when configured, notifies. A failed insert never
// sends the email.
func (s *Service) Submit(ctx context.Context, m Message) (Record, error) {
	rec, err := s.Persist(ctx, m)
	if err != nil {
		return Record{}, err
	}
	if !s.notify {
		return rec, nil
	}
	if _, err := s.Notify(ctx, m); err != nil {
		return rec, err
	}
	return rec, nil
}

func wrap(sentinel, err error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}
