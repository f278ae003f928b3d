package paymentgateway

// createSessionRequest тело запроса на создание платёжной сессии
type createSessionRequest struct {
	Amount   float64           `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Session платёжная сессия, созданная шлюзом.
// Его внутренняя машина состояний сервису не видна: дальше шлюз сам
// дергает callback об успехе оплаты.
type Session struct {
	ID          string `json:"id"`
	RedirectURL string `json:"redirect_url"`
}
