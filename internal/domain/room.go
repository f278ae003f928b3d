package domain

// RoomType represents the category of a room
type RoomType string

const (
	RoomTypeStandard RoomType = "standard"
	RoomTypeVIP      RoomType = "vip"
	RoomTypeMeeting  RoomType = "meeting"
)

// Valid returns true if the room type is one of the known categories
func (t RoomType) Valid() bool {
	return t == RoomTypeStandard || t == RoomTypeVIP || t == RoomTypeMeeting
}

// Room represents a bookable room in the coworking space
// Каталог владеет комнатами; ядро бронирования их только читает
type Room struct {
	ID          int64
	Title       string
	Type        RoomType
	Capacity    int
	Description *string
}
