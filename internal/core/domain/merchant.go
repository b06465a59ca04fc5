package domain

import "time"

// Merchant is a counterparty ("cari") that accounting entries can link to.
type Merchant struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	UserID string    `json:"userId"`
	Date   time.Time `json:"date"`
}
