package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/checkout/internal/app"
	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/service/catalog"
	"github.com/vladislavdragonenkov/checkout/internal/service/checkout"
	"github.com/vladislavdragonenkov/checkout/internal/service/clientadm"
)

var errUnknownCommand = errors.New("unknown command")

type cli struct {
	services *app.Services
	out      io.Writer
	// errOut получает usage и ошибки разбора флагов подкоманд.
	errOut io.Writer
}

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, c *cli, args []string) error
}

var commands = []command{
	{name: "client add", summary: "register a client", run: runClientAdd},
	{name: "product add", summary: "register a catalog product", run: runProductAdd},
	{name: "product price", summary: "set the sales price of a product", run: runProductPrice},
	{name: "place", summary: "place an order for a client", run: runPlace},
	{name: "order show", summary: "show a stored order with its timeline", run: runOrderShow},
	{name: "invoice show", summary: "show an issued invoice", run: runInvoiceShow},
}

// resolveCommand ищет команду по одному или двум первым словам.
func resolveCommand(args []string) (command, []string, error) {
	if len(args) == 0 {
		return command{}, nil, fmt.Errorf("%w: command is required", errUnknownCommand)
	}
	for _, cmd := range commands {
		words := strings.Fields(cmd.name)
		if len(args) < len(words) {
			continue
		}
		if strings.Join(args[:len(words)], " ") == cmd.name {
			return cmd, args[len(words):], nil
		}
	}
	return command{}, nil, fmt.Errorf("%w: %s", errUnknownCommand, strings.Join(args, " "))
}

func (c *cli) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	out := c.errOut
	if out == nil {
		out = os.Stderr
	}
	fs.SetOutput(out)
	return fs
}

// stringList — повторяемый строковый флаг.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type moneyFlag struct {
	value domain.Money
	set   bool
}

func (m *moneyFlag) String() string { return m.value.String() }

func (m *moneyFlag) Set(v string) error {
	parsed, err := domain.ParseMoney(v)
	if err != nil {
		return err
	}
	m.value = parsed
	m.set = true
	return nil
}

func optionalID(raw string) (domain.ID, error) {
	if raw == "" {
		return "", nil
	}
	return domain.ParseID(raw)
}

func requiredID(fs *flag.FlagSet, name, raw string) (domain.ID, error) {
	id, err := domain.ParseID(raw)
	if err != nil {
		return "", fmt.Errorf("%s: -%s: %w", fs.Name(), name, err)
	}
	return id, nil
}

func runClientAdd(ctx context.Context, c *cli, args []string) error {
	fs := c.newFlagSet("client add")
	var (
		id      = fs.String("id", "", "client id (generated when empty)")
		name    = fs.String("name", "", "client name")
		email   = fs.String("email", "", "client email")
		doc     = fs.String("document", "", "client document")
		street  = fs.String("street", "", "street")
		number  = fs.String("number", "", "house number")
		compl   = fs.String("complement", "", "address complement")
		city    = fs.String("city", "", "city")
		state   = fs.String("state", "", "state")
		zipCode = fs.String("zip", "", "zip code")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	clientID, err := optionalID(*id)
	if err != nil {
		return fmt.Errorf("client add: -id: %w", err)
	}

	client, err := c.services.Clients.Add(ctx, clientadm.AddClientInput{
		ID:       clientID,
		Name:     *name,
		Email:    *email,
		Document: *doc,
		Address:  domain.NewAddress(*street, *number, *compl, *city, *state, *zipCode),
	})
	if err != nil {
		return err
	}
	return c.print(newClientView(client))
}

func runProductAdd(ctx context.Context, c *cli, args []string) error {
	fs := c.newFlagSet("product add")
	var purchase, sales moneyFlag
	id := fs.String("id", "", "product id (generated when empty)")
	name := fs.String("name", "", "product name")
	description := fs.String("description", "", "product description")
	stock := fs.Int("stock", 0, "units in stock")
	fs.Var(&purchase, "purchase-price", "purchase price")
	fs.Var(&sales, "sales-price", "sales price (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	productID, err := optionalID(*id)
	if err != nil {
		return fmt.Errorf("product add: -id: %w", err)
	}

	product, err := c.services.Catalog.AddProduct(ctx, catalog.AddProductInput{
		ID:            productID,
		Name:          *name,
		Description:   *description,
		PurchasePrice: purchase.value,
		Stock:         *stock,
	})
	if err != nil {
		return err
	}

	if sales.set {
		if err := c.services.Catalog.SetSalesPrice(ctx, product.ID, sales.value); err != nil {
			return err
		}
		product.SalesPrice = sales.value
	}
	return c.print(newProductView(product))
}

func runProductPrice(ctx context.Context, c *cli, args []string) error {
	fs := c.newFlagSet("product price")
	var price moneyFlag
	id := fs.String("id", "", "product id")
	fs.Var(&price, "price", "new sales price")
	if err := fs.Parse(args); err != nil {
		return err
	}

	productID, err := requiredID(fs, "id", *id)
	if err != nil {
		return err
	}
	if !price.set {
		return errors.New("product price: -price is required")
	}

	if err := c.services.Catalog.SetSalesPrice(ctx, productID, price.value); err != nil {
		return err
	}
	return c.print(struct {
		ID         domain.ID    `json:"id"`
		SalesPrice domain.Money `json:"salesPrice"`
	}{ID: productID, SalesPrice: price.value})
}

func runPlace(ctx context.Context, c *cli, args []string) error {
	fs := c.newFlagSet("place")
	var products stringList
	clientID := fs.String("client", "", "client id")
	fs.Var(&products, "product", "product id (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	input := checkout.PlaceOrderInput{ClientID: *clientID}
	for _, p := range products {
		input.Products = append(input.Products, checkout.ProductInput{ProductID: p})
	}

	out, err := c.services.Checkout.Execute(ctx, input)
	if err != nil {
		return err
	}
	return c.print(out)
}

func runOrderShow(ctx context.Context, c *cli, args []string) error {
	fs := c.newFlagSet("order show")
	id := fs.String("id", "", "order id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	orderID, err := requiredID(fs, "id", *id)
	if err != nil {
		return err
	}

	view, err := c.services.Checkout.FindOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return c.print(newOrderView(view))
}

func runInvoiceShow(ctx context.Context, c *cli, args []string) error {
	fs := c.newFlagSet("invoice show")
	id := fs.String("id", "", "invoice id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	invoiceID, err := requiredID(fs, "id", *id)
	if err != nil {
		return err
	}

	inv, err := c.services.Invoices.Find(ctx, invoiceID)
	if err != nil {
		return err
	}
	return c.print(newInvoiceView(inv))
}

func (c *cli) print(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type clientView struct {
	ID       domain.ID      `json:"id"`
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Document string         `json:"document"`
	Address  domain.Address `json:"address"`
}

func newClientView(c domain.Client) clientView {
	return clientView{ID: c.ID, Name: c.Name, Email: c.Email, Document: c.Document, Address: c.Address}
}

type productView struct {
	ID            domain.ID    `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	PurchasePrice domain.Money `json:"purchasePrice"`
	SalesPrice    domain.Money `json:"salesPrice"`
	Stock         int          `json:"stock"`
}

func newProductView(p domain.CatalogProduct) productView {
	return productView{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		PurchasePrice: p.PurchasePrice,
		SalesPrice:    p.SalesPrice,
		Stock:         p.Stock,
	}
}

type itemView struct {
	ProductID domain.ID    `json:"productId"`
	Name      string       `json:"name"`
	Price     domain.Money `json:"price"`
}

type timelineView struct {
	Type     string    `json:"type"`
	Reason   string    `json:"reason,omitempty"`
	Occurred time.Time `json:"occurred"`
}

type orderView struct {
	ID            domain.ID          `json:"id"`
	ClientID      domain.ID          `json:"clientId"`
	Status        domain.OrderStatus `json:"status"`
	SettledStatus domain.OrderStatus `json:"settledStatus"`
	InvoiceID     domain.ID          `json:"invoiceId,omitempty"`
	Total         domain.Money       `json:"total"`
	Items         []itemView         `json:"products"`
	CreatedAt     time.Time          `json:"createdAt"`
	Timeline      []timelineView     `json:"timeline"`
}

func newOrderView(v checkout.OrderView) orderView {
	out := orderView{
		ID:            v.Order.ID,
		ClientID:      v.Order.ClientID,
		Status:        v.Order.Status,
		SettledStatus: v.SettledStatus(),
		InvoiceID:     v.SettledInvoiceID(),
		Total:         v.Order.Total(),
		Items:         make([]itemView, 0, len(v.Order.Items)),
		CreatedAt:     v.Order.CreatedAt,
		Timeline:      make([]timelineView, 0, len(v.Timeline)),
	}
	for _, item := range v.Order.Items {
		out.Items = append(out.Items, itemView{ProductID: item.ProductID, Name: item.Name, Price: item.Price})
	}
	for _, event := range v.Timeline {
		out.Timeline = append(out.Timeline, timelineView{Type: event.Type, Reason: event.Reason, Occurred: event.Occurred})
	}
	return out
}

type invoiceView struct {
	ID        domain.ID      `json:"id"`
	Name      string         `json:"name"`
	Document  string         `json:"document"`
	Address   domain.Address `json:"address"`
	Items     []itemView     `json:"items"`
	Total     domain.Money   `json:"total"`
	CreatedAt time.Time      `json:"createdAt"`
}

func newInvoiceView(inv domain.Invoice) invoiceView {
	out := invoiceView{
		ID:        inv.ID,
		Name:      inv.Name,
		Document:  inv.Document,
		Address:   inv.Address,
		Items:     make([]itemView, 0, len(inv.Items)),
		Total:     inv.Total(),
		CreatedAt: inv.CreatedAt,
	}
	for _, item := range inv.Items {
		out.Items = append(out.Items, itemView{ProductID: item.ProductID, Name: item.Name, Price: item.Price})
	}
	return out
}
