package request

// OrderFilterRequest represents order list filter parameters. Q is a
// free-text search over order number, customer name and mobile.
type OrderFilterRequest struct {
	Q      string `form:"q"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}
