package internal

type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Inbound payloads (client -> server)

type JoinRoomData struct {
	Room string `json:"room"`
}

type SetNameData struct {
	Room string `json:"room"`
	Name string `json:"name"`
}

type TargetData struct {
	Room   string `json:"room"`
	Target string `json:"target"`
}

// Outbound payloads (server -> room or single connection)

type UpdatePlayersData struct {
	Players []PlayerSnapshot `json:"players"`
}

type RouletteStartingData struct {
	TotalRotations int `json:"totalRotations"`
}

type RouletteUpdateData struct {
	SelectedName    string `json:"selectedName"`
	CurrentRotation int    `json:"currentRotation"`
	TotalRotations  int    `json:"totalRotations"`
	Speed           int    `json:"speed"`
}

type RouletteStopData struct {
	SelectedId   string `json:"selectedId"`
	SelectedName string `json:"selectedName"`
	IsKiller     bool   `json:"isKiller"`
}

type PlayerEliminatedData struct {
	Name      string `json:"name"`
	Remaining int    `json:"remaining"`
}
