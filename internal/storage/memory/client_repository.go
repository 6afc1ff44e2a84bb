package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

type clientRepositoryInMemory struct {
	mu      sync.RWMutex
	clients map[domain.ID]domain.Client
}

// NewClientRepository создаёт in-memory справочник клиентов.
func NewClientRepository() domain.ClientRepository {
	return &clientRepositoryInMemory{clients: make(map[domain.ID]domain.Client)}
}

func (r *clientRepositoryInMemory) Add(ctx context.Context, client domain.Client) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clients[client.ID]; exists {
		return domain.ErrClientAlreadyExists
	}
	r.clients[client.ID] = client
	return nil
}

func (r *clientRepositoryInMemory) Find(ctx context.Context, id domain.ID) (domain.Client, error) {
	if err := ctx.Err(); err != nil {
		return domain.Client{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[id]
	if !ok {
		return domain.Client{}, domain.ErrClientNotFound
	}
	return client, nil
}

var _ domain.ClientRepository = (*clientRepositoryInMemory)(nil)
