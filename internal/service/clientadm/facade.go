// Package clientadm реализует справочник клиентов поверх ClientRepository.
package clientadm

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// AddClientInput — данные нового клиента.
type AddClientInput struct {
	ID       domain.ID
	Name     string
	Email    string
	Document string
	Address  domain.Address
}

// Facade управляет клиентами и отвечает на запросы workflow.
type Facade struct {
	repo   domain.ClientRepository
	logger *log.Entry
	now    func() time.Time
}

// NewFacade создаёт фасад справочника клиентов.
func NewFacade(repo domain.ClientRepository, logger *log.Entry) *Facade {
	if logger == nil {
		logger = log.New().WithField("component", "clientadm")
	}
	return &Facade{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Add регистрирует клиента. Пустой ID заменяется сгенерированным.
func (f *Facade) Add(ctx context.Context, input AddClientInput) (domain.Client, error) {
	now := f.now()
	client := domain.Client{
		ID:        domain.IDOrNew(input.ID),
		Name:      input.Name,
		Email:     input.Email,
		Document:  input.Document,
		Address:   input.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if errs := client.Validate(); len(errs) > 0 {
		return domain.Client{}, errors.Join(errs...)
	}

	if err := f.repo.Add(ctx, client); err != nil {
		return domain.Client{}, fmt.Errorf("add client %s: %w", client.ID, err)
	}

	f.logger.WithField("client_id", client.ID).Info("client registered")
	return client, nil
}

// Find возвращает клиента. Отсутствие клиента не ошибка: found=false.
func (f *Facade) Find(ctx context.Context, id domain.ID) (domain.Client, bool, error) {
	client, err := f.repo.Find(ctx, id)
	switch {
	case errors.Is(err, domain.ErrClientNotFound):
		return domain.Client{}, false, nil
	case err != nil:
		return domain.Client{}, false, fmt.Errorf("find client %s: %w", id, err)
	}
	return client, true, nil
}

var _ domain.ClientDirectory = (*Facade)(nil)
