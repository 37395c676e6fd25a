package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrDuplicatePayment   = errors.New("payment already recorded")
	ErrPaymentProvider    = errors.New("payment provider unavailable")
	ErrMissingTransaction = errors.New("transaction id is required")
)

// Payment records a completed card payment and the cart items it settled.
type Payment struct {
	ID            string    `json:"_id"`
	Email         string    `json:"email"`
	TransactionID string    `json:"transactionId"`
	Price         float64   `json:"price"`
	Date          time.Time `json:"date"`
	Quantity      int       `json:"quantity"`
	CartItems     []string  `json:"cartItems"`
	ClassItems    []string  `json:"classItems"`
	ItemNames     []string  `json:"itemNames,omitempty"`
	Status        string    `json:"status,omitempty"`
}
