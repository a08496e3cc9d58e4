package role

import "time"

// Role is a named permission set within a company. A default role sees all
// of the company's data; any other role sees only the price types named by
// its available-data entries.
type Role struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"companyId"`
	Name          string          `json:"name"`
	Default       bool            `json:"default"`
	AvailableData []AvailableData `json:"availableData"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// AvailableData binds a role to one price type, scoped to a stock.
type AvailableData struct {
	ID          string `json:"id"`
	RoleID      string `json:"roleId"`
	StockID     string `json:"stockId"`
	PriceTypeID string `json:"priceTypeId"`
}

// Entry is one (stock, price type) grant used when writing a role.
type Entry struct {
	StockID     string
	PriceTypeID string
}
