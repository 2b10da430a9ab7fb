package service

import "errors"

var (
	ErrBattleOver      = errors.New("battle is already over")
	ErrRestUnavailable = errors.New("resting is disabled in this game mode")
)
