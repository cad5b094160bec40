package request

// SearchKeystrokeRequest carries the current query text of a live
// search session. Empty text is valid; it means the box was cleared.
type SearchKeystrokeRequest struct {
	Q string `json:"q"`
}

// SearchWindowRequest changes the page window of a live search session
type SearchWindowRequest struct {
	Limit  int `json:"limit" binding:"omitempty,min=1"`
	Offset int `json:"offset" binding:"min=0"`
}
