package seat

type Room string

const (
	RoomWhite Room = "white"
	RoomStaff Room = "staff"
)

var roomPrefixes = map[Room]string{
	RoomWhite: "W",
	RoomStaff: "S",
}

func (r Room) String() string {
	return string(r)
}

func (r Room) IsValid() bool {
	_, ok := roomPrefixes[r]
	return ok
}

// Prefix is the leading part of every seat number in the room ("W" for W01).
func (r Room) Prefix() string {
	return roomPrefixes[r]
}

func NewRoom(s string) (Room, error) {
	room := Room(s)
	if !room.IsValid() {
		return "", ErrInvalidRoom
	}
	return room, nil
}

func Rooms() []Room {
	return []Room{RoomWhite, RoomStaff}
}
