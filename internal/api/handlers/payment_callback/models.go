package payment_callback

// PaymentCallbackRequest уведомление платёжного шлюза об исходе оплаты.
// Metadata возвращается в том виде, в каком была передана при создании сессии.
type PaymentCallbackRequest struct {
	SessionID string            `json:"sessionId"`
	Status    string            `json:"status"` // "succeeded" | "failed"
	Metadata  map[string]string `json:"metadata"`
}

// PaymentCallbackResponse подтверждение обработки callback-а
type PaymentCallbackResponse struct {
	BookingID int64  `json:"bookingId,omitempty"`
	Result    string `json:"result"`
}
