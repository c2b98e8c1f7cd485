package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Property is a physical site receiving landscaping services.
type Property struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
	City    string    `json:"city"`
	State   string    `json:"state"`
	Zip     string    `json:"zip"`

	// Annual quoted revenue and the credited (post-discount) revenue for
	// this property. Zero until set by an admin or a quote conversion.
	AnnualQuote    decimal.Decimal `json:"annual_quote"`
	AnnualCredited decimal.Decimal `json:"annual_credited"`

	CreatedAt time.Time `json:"created_at"`
}
