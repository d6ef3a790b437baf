package connection

import (
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateMatch struct {
	MatchUuid string        `json:"match_uuid"`
	Opponent  string        `json:"opponent"`
	Rows      int           `json:"rows"`
	Cols      int           `json:"cols"`
	Ships     []mb.ShipSpec `json:"ships"`
}

type RespSelectPlacement struct {
	Ships []mb.ShipSpec `json:"ships"`
}

type RespShipPlacement struct {
	ShipId    int    `json:"ship_id"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Direction string `json:"direction"`
}

type RespPlaceShip struct {
	Placement RespShipPlacement `json:"placement"`
	Remaining int               `json:"remaining"`
}

type RespAutoPlace struct {
	Placements []RespShipPlacement `json:"placements"`
}

type RespYourTurn struct {
	Turn int `json:"turn"`
}

type RespAttackResult struct {
	Turn int `json:"turn"`
	Row  int `json:"row"`
	Col  int `json:"col"`

	// True when the client made the attack
	ByYou     bool   `json:"by_you"`
	Valid     bool   `json:"valid"`
	Hit       bool   `json:"hit"`
	Destroyed bool   `json:"destroyed"`
	ShipName  string `json:"ship_name,omitempty"`
}

type RespEndMatch struct {
	Won   bool `json:"won"`
	Turns int  `json:"turns"`

	// Where the opponent's ships were; only sent to the loser
	OpponentShips []RespShipPlacement `json:"opponent_ships,omitempty"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}

func NewRespShipPlacement(shipId int, pl mb.Placement) RespShipPlacement {
	return RespShipPlacement{
		ShipId:    shipId,
		Row:       pl.Origin.Row,
		Col:       pl.Origin.Col,
		Direction: DirectionCode(pl.Direction),
	}
}

// DirectionCode is the one-letter form clients send in ReqPlaceShip.
func DirectionCode(d mb.Direction) string {
	if d == mb.DirectionVertical {
		return "v"
	}
	return "h"
}
