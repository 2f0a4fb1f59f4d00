package request

// BillFilterRequest represents bill history paging parameters
type BillFilterRequest struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}
