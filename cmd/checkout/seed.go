package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/app"
	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/service/catalog"
	"github.com/vladislavdragonenkov/checkout/internal/service/clientadm"
)

// seedFile — справочники, которые загружаются до выполнения команды.
// Для драйвера memory это единственный способ получить данные между вызовами.
type seedFile struct {
	Clients  []seedClient  `json:"clients"`
	Products []seedProduct `json:"products"`
}

type seedClient struct {
	ID       domain.ID      `json:"id"`
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Document string         `json:"document"`
	Address  domain.Address `json:"address"`
}

type seedProduct struct {
	ID            domain.ID     `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	PurchasePrice domain.Money  `json:"purchasePrice"`
	SalesPrice    *domain.Money `json:"salesPrice"`
	Stock         int           `json:"stock"`
}

func loadSeedFile(ctx context.Context, services *app.Services, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return applySeed(ctx, services, seed)
}

// applySeed добавляет клиентов и товары. Уже существующие записи пропускаются,
// поэтому один файл можно загружать в postgres повторно.
func applySeed(ctx context.Context, services *app.Services, seed seedFile) error {
	var clients, products int

	for _, c := range seed.Clients {
		_, err := services.Clients.Add(ctx, clientadm.AddClientInput{
			ID:       c.ID,
			Name:     c.Name,
			Email:    c.Email,
			Document: c.Document,
			Address:  c.Address,
		})
		switch {
		case errors.Is(err, domain.ErrClientAlreadyExists):
			continue
		case err != nil:
			return fmt.Errorf("seed client %s: %w", c.ID, err)
		}
		clients++
	}

	for _, p := range seed.Products {
		product, err := services.Catalog.AddProduct(ctx, catalog.AddProductInput{
			ID:            p.ID,
			Name:          p.Name,
			Description:   p.Description,
			PurchasePrice: p.PurchasePrice,
			Stock:         p.Stock,
		})
		switch {
		case errors.Is(err, domain.ErrProductAlreadyExists):
			continue
		case err != nil:
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
		if p.SalesPrice != nil {
			if err := services.Catalog.SetSalesPrice(ctx, product.ID, *p.SalesPrice); err != nil {
				return fmt.Errorf("seed product %s: %w", p.ID, err)
			}
		}
		products++
	}

	log.WithFields(log.Fields{
		"clients":  clients,
		"products": products,
	}).Debug("seed applied")
	return nil
}
