package domain

// Envelope is the uniform response body: result items plus a human readable message.
// Data marshals to null when there is nothing to return.
type Envelope[T any] struct {
	Data    []T    `json:"data"`
	Message string `json:"message"`
}

const (
	MessageInvalidProduct  = "Invalid Product"
	MessageStocked         = "Stocked Successfully"
	MessageCorrected       = "Corrected Successfully"
	MessageProductNotFound = "Product Not Found"
	MessageSuccess         = "Success"
	MessageInternalError   = "Internal error"
)

// ProductEnvelope wraps products into an Envelope.
func ProductEnvelope(message string, products ...Product) Envelope[Product] {
	return Envelope[Product]{Data: products, Message: message}
}
