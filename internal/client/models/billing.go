package models

import "time"

type Plan struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	DurationDays int       `json:"durationDays"`
	Features     []string  `json:"features,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	IsActive     bool      `json:"isActive"`
	PlanName     string    `json:"planName,omitempty"`
	RegisteredAt time.Time `json:"createdAt"`
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentSuccess  PaymentStatus = "success"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type Payment struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	UserEmail     string        `json:"userEmail,omitempty"`
	PlanID        string        `json:"planId"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	Status        PaymentStatus `json:"status"`
	Provider      string        `json:"provider,omitempty"`
	TransactionID string        `json:"transactionId,omitempty"`
	RefundStatus  string        `json:"refundStatus,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}
