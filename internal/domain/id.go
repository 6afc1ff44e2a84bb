package domain

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// ID — непрозрачный строковый идентификатор сущности. Сравнивается по значению.
type ID string

// NewID генерирует новый идентификатор (UUID v4).
func NewID() ID {
	return ID(uuid.NewString())
}

// ParseID проверяет внешний идентификатор: он не может быть пустым
// и не может содержать пробельные или управляющие символы.
func ParseID(raw string) (ID, error) {
	if raw == "" {
		return "", ErrInvalidID
	}
	if strings.IndexFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) >= 0 {
		return "", ErrInvalidID
	}
	return ID(raw), nil
}

// IDOrNew возвращает id, если он задан, иначе генерирует новый.
func IDOrNew(id ID) ID {
	if id.IsZero() {
		return NewID()
	}
	return id
}

// IsZero сообщает, что идентификатор не задан.
func (id ID) IsZero() bool {
	return id == ""
}

func (id ID) String() string {
	return string(id)
}
