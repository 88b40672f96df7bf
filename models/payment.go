package models

// PaymentIntentResponse carries the client secret consumed by the payment UI.
type PaymentIntentResponse struct {
	IntentID     string `json:"intentId"`
	ClientSecret string `json:"clientSecret"`
}
