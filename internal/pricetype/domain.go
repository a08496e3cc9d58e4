package pricetype

import "time"

// PriceType is a currency-denominated pricing category belonging to exactly
// one company. Non-default roles see only the price types their
// available-data entries name.
type PriceType struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListFilter restricts a listing to one company and, unless All is set, to
// the given price type ids. An empty id set with All unset matches nothing.
type ListFilter struct {
	CompanyID    string
	All          bool
	PriceTypeIDs []string
}
