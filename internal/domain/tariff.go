package domain

// Tariff represents the canonical hourly price for a room category
// Ровно один тариф на категорию, ограничение обеспечивается на уровне хранилища
type Tariff struct {
	ID           int64
	Title        string
	RoomType     RoomType
	PricePerHour float64
}
