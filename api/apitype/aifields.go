package apitype

// AiFields are the suggestions returned by the field generation endpoint.
type AiFields struct {
	Description string
	Valuation   string
	Tags        []string
	PurchaseUrl string
}
