package dto

// ProductsRequest carries product ids for checkout and order submission.
// Repeated ids are kept as separate entries.
type ProductsRequest struct {
	Products []string `json:"products"`
}

// CheckoutResponse carries the session handle for client-side redirect.
type CheckoutResponse struct {
	Session string `json:"session"`
	URL     string `json:"url,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
