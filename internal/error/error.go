package error

import (
	"errors"
	"fmt"
)

var (
	ErrPlacement    = errors.New("ship placement failed")
	ErrMatchAborted = errors.New("match aborted")
	ErrInputClosed  = errors.New("player input closed")
)

func ErrInvalidBoardSize(rows, cols int) error {
	return fmt.Errorf("board size must be at least 1x1\trows: %d\tcols: %d", rows, cols)
}

func ErrShipLength(length, maxLength int) error {
	return fmt.Errorf("ship length must be between 1 and %d\tgot: %d", maxLength, length)
}

func ErrShipSymbolReserved(symbol rune) error {
	return fmt.Errorf("character %q must not be used as a ship symbol", symbol)
}

func ErrShipSymbolUnprintable(symbol rune) error {
	return fmt.Errorf("unprintable character with decimal value %d must not be used as a ship symbol", symbol)
}

func ErrShipSymbolTaken(symbol rune) error {
	return fmt.Errorf("ship symbol %q must not be used for more than one ship", symbol)
}

func ErrFleetTooLarge(total, area int) error {
	return fmt.Errorf("board is too small to fit all ships\ttotal length: %d\tarea: %d", total, area)
}

func ErrEmptyFleet() error {
	return fmt.Errorf("the game has no ships")
}

func ErrUnknownPlayerKind(kind string) error {
	return fmt.Errorf("unknown player kind: %s", kind)
}

func ErrPlacementFailed(playerName string) error {
	return fmt.Errorf("%w\tplayer: %s", ErrPlacement, playerName)
}

func ErrBoardInvariant(row, col, shipId int) error {
	return fmt.Errorf("board cell does not match any known ship\trow: %d\tcol: %d\tship id: %d", row, col, shipId)
}

func ErrMatchNotExists(matchUuid string) error {
	return fmt.Errorf("match with this uuid does not exist, uuid: %s", matchUuid)
}

func ErrMatchIsNil(matchUuid string) error {
	return fmt.Errorf("match with this uuid is nil, uuid: %s", matchUuid)
}

func ErrNilMatchId() error {
	return fmt.Errorf("match id must not be the nil uuid")
}

func ErrMatchAlreadyRunning(sessionId string) error {
	return fmt.Errorf("session already has a running match, session: %s", sessionId)
}

func ErrNoRunningMatch(sessionId string) error {
	return fmt.Errorf("session has no running match, session: %s", sessionId)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id does not exist, id: %s", sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session with this id is nil, id: %s", sessionId)
}

func ErrInvalidStage(stage string) error {
	return fmt.Errorf("invalid type of development stage: %s", stage)
}

func ErrEnvNotInt(key, value string) error {
	return fmt.Errorf("env variable is not an integer\tkey: %s\tvalue: %s", key, value)
}

func ErrInvalidBudget(soft, dense, hard int) error {
	return fmt.Errorf("placement budget thresholds must increase\tsoft: %d\tdense: %d\thard: %d", soft, dense, hard)
}

func ErrInvalidDirection(dir string) error {
	return fmt.Errorf("direction must be h or v\tgot: %s", dir)
}

func ErrInvalidDifficulty(difficulty uint8) error {
	return fmt.Errorf("invalid game difficulty: %d", difficulty)
}

func ErrOpponentNotComputer(kind string) error {
	return fmt.Errorf("opponent must be a computer strategy, got: %s", kind)
}

func ErrUnexpectedCode(code uint8, stage string) error {
	return fmt.Errorf("code %d is not expected while %s", code, stage)
}

func ErrShipNotPending(shipId int) error {
	return fmt.Errorf("ship is unknown or already placed, ship id: %d", shipId)
}

func ErrShipCannotBePlaced(shipId, row, col int) error {
	return fmt.Errorf("the ship can not be placed there\tship id: %d\trow: %d\tcol: %d", shipId, row, col)
}
