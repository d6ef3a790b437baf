package connection

type ReqCreateMatch struct {
	GameDifficulty uint8 `json:"game_difficulty"`

	// Strategy of the computer opponent; defaults to good
	Opponent string `json:"opponent,omitempty"`
}

type ReqPlaceShip struct {
	ShipId    int    `json:"ship_id"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Direction string `json:"direction"`
}

type ReqAttack struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
