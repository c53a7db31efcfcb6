package domain

type RoomID string

// Song is carried as opaque room state; nothing in the service interprets it.
type Song struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist,omitempty"`
	URL    string `json:"url,omitempty"`
}

type Vote struct {
	NumVotedForSkip int `json:"numVotedForSkip"`
}

// Room holds the shared playback state of a room. Membership lives in core.
type Room struct {
	ID          RoomID `json:"id"`
	CurrentSong *Song  `json:"currentSong"`
	Vote        Vote   `json:"vote"`
}

func NewRoom(id RoomID) *Room {
	return &Room{ID: id}
}
