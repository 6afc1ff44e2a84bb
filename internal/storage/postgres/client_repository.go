package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository создаёт PostgreSQL-реализацию справочника клиентов.
func NewClientRepository(store *Store) domain.ClientRepository {
	return &clientRepository{db: store.DB()}
}

func (r *clientRepository) Add(ctx context.Context, client domain.Client) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	addr := client.Address
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (
			id, name, email, document,
			street, number, complement, city, state, zip_code,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		client.ID, client.Name, client.Email, client.Document,
		addr.Street, addr.Number, addr.Complement, addr.City, addr.State, addr.ZipCode,
		client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrClientAlreadyExists
		}
		return fmt.Errorf("insert client: %w", err)
	}

	return nil
}

func (r *clientRepository) Find(ctx context.Context, id domain.ID) (domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var client domain.Client
	addr := &client.Address
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, document,
		       street, number, complement, city, state, zip_code,
		       created_at, updated_at
		FROM clients
		WHERE id = $1
	`, id).Scan(
		&client.ID, &client.Name, &client.Email, &client.Document,
		&addr.Street, &addr.Number, &addr.Complement, &addr.City, &addr.State, &addr.ZipCode,
		&client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Client{}, domain.ErrClientNotFound
		}
		return domain.Client{}, fmt.Errorf("select client: %w", err)
	}

	return client, nil
}

var _ domain.ClientRepository = (*clientRepository)(nil)
