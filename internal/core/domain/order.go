package domain

import "errors"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusNew        OrderStatus = "new"
	StatusInProgress OrderStatus = "in_progress"
	StatusDone       OrderStatus = "done"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// CreatedAtLayout is the fixed timestamp format persisted with every order.
const CreatedAtLayout = "2006-01-02 15:04:05"

// Placeholders substituted for blank submission fields.
const (
	PlaceholderMissing = "Не указано"
	PlaceholderSubject = "Без темы"
	PlaceholderMessage = "Пустое сообщение"
)

var ErrOrderNotFound = errors.New("order not found")
var ErrInvalidStatus = errors.New("invalid order status")
var ErrUnknownRole = errors.New("unknown role")
var ErrInvalidPhone = errors.New("invalid telephone format")

// Order is a persisted customer-submitted service request. CreatedAt is kept
// as the fixed-format string it is stored with, so rewrites of untouched
// records stay byte-identical.
type Order struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Telephone string      `json:"telephone"`
	Email     string      `json:"email"`
	Subject   string      `json:"subject"`
	Message   string      `json:"message"`
	CreatedAt string      `json:"created_at"`
	Status    OrderStatus `json:"status"`
}
