package connection

const (
	CodeSessionID uint8 = iota
	CodeCreateMatch

	// The server asks the client to place its fleet
	CodeSelectPlacement
	CodePlaceShip

	// Let the server place every ship that is still unplaced
	CodeAutoPlace

	CodeYourTurn
	CodeAttack
	CodeAttackResult
	CodeEndMatch
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
