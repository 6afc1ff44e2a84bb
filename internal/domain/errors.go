package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrClientNotFound — справочник клиентов не знает переданный client_id.
	ErrClientNotFound = errors.New("client not found")
	// ErrNoProductsSelected — в запросе нет ни одного товара.
	ErrNoProductsSelected = errors.New("no products selected")
	// ErrProductUnavailable — остаток товара нулевой или отрицательный.
	ErrProductUnavailable = errors.New("product is not available in stock")
	// ErrProductNotFound — каталог витрины не вернул товар для расчёта цены.
	ErrProductNotFound = errors.New("product not found")
	// ErrPersistence — не удалось сохранить заказ.
	ErrPersistence = errors.New("order persistence failed")
	// ErrInvoicingFailed — платёж одобрен, но счёт выставить не удалось.
	ErrInvoicingFailed = errors.New("invoicing failed")
	// ErrPaymentGateway — сбой платёжного шлюза (не путать с отказом в оплате).
	ErrPaymentGateway = errors.New("payment gateway error")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderAlreadyExists — заказ с таким ID уже сохранён; репозиторий только создаёт записи.
	ErrOrderAlreadyExists = errors.New("order already exists")
	// ErrInvoiceNotFound возвращается, если счёт не найден.
	ErrInvoiceNotFound = errors.New("invoice not found")
	// ErrClientAlreadyExists — клиент с таким ID уже зарегистрирован.
	ErrClientAlreadyExists = errors.New("client already exists")
	// ErrCatalogProductNotFound — товара нет в хранилище каталога.
	ErrCatalogProductNotFound = errors.New("catalog product not found")
	// ErrProductAlreadyExists — товар с таким ID уже заведён.
	ErrProductAlreadyExists = errors.New("product already exists")

	// Ошибка пустого или некорректного идентификатора.
	ErrInvalidID = errors.New("invalid identifier")
	// Ошибка отрицательной суммы.
	ErrNegativeAmount = errors.New("amount must be non-negative")
	// Сумма точнее, чем хранит NUMERIC(20,4).
	ErrMoneyPrecision = errors.New("amount has more than 4 decimal places")
	// Ошибка отсутствия хотя бы одной позиции.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка отсутствующего идентификатора клиента.
	ErrClientRequired = errors.New("client_id is required")
	// Событие timeline неизвестного типа или без обязательных данных.
	ErrTimelineEventInvalid = errors.New("timeline event is invalid")
	// Ошибка неизвестного статуса заказа.
	ErrOrderStatusInvalid = errors.New("order status is invalid")
	// Одобренный заказ обязан ссылаться на счёт.
	ErrInvoiceRequired = errors.New("approved order requires invoice_id")
	// Счёт допустим только у одобренного заказа.
	ErrInvoiceWithoutApproval = errors.New("invoice_id is set on a non-approved order")
	// Ошибка отсутствующего имени клиента.
	ErrClientNameRequired = errors.New("client name is required")
	// Ошибка отсутствующего документа клиента.
	ErrClientDocumentRequired = errors.New("client document is required")
	// Ошибка отсутствующего названия товара.
	ErrProductNameRequired = errors.New("product name is required")
	// Ошибка отрицательного остатка.
	ErrStockNegative = errors.New("stock must be non-negative")
	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// ProductUnavailableError указывает, какой именно товар закончился.
type ProductUnavailableError struct {
	ProductID ID
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %s is not available in stock", e.ProductID)
}

// Is позволяет сопоставлять ошибку с ErrProductUnavailable через errors.Is.
func (e *ProductUnavailableError) Is(target error) bool {
	return target == ErrProductUnavailable
}

// NewProductUnavailableError создаёт ошибку для конкретного товара.
func NewProductUnavailableError(productID ID) error {
	return &ProductUnavailableError{ProductID: productID}
}

// UnavailableProductID извлекает ID товара из ошибки недоступности.
func UnavailableProductID(err error) (ID, bool) {
	var target *ProductUnavailableError
	if errors.As(err, &target) {
		return target.ProductID, true
	}
	return "", false
}

// IsNotFound объединяет все ошибки «не найдено», которые видит вызывающий код.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrInvoiceNotFound) ||
		errors.Is(err, ErrCatalogProductNotFound)
}

// IsValidation сообщает, что запрос отклонён до каких-либо побочных эффектов.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNoProductsSelected) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrProductUnavailable) ||
		errors.Is(err, ErrProductNotFound)
}
