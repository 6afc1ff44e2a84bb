package domain

import "time"

// Client — проекция клиента из справочника. Workflow использует её
// только для подтверждения существования и для реквизитов счёта.
type Client struct {
	ID        ID
	Name      string
	Email     string
	Document  string
	Address   Address
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет обязательные поля клиента.
func (c *Client) Validate() []error {
	var errs []error

	if c.Name == "" {
		errs = append(errs, ErrClientNameRequired)
	}
	if c.Document == "" {
		errs = append(errs, ErrClientDocumentRequired)
	}

	return errs
}
