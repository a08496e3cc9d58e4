package shared

// ListResponse is the envelope every paginated listing returns.
type ListResponse struct {
	Result     any        `json:"result"`
	Pagination Pagination `json:"pagination"`
}
