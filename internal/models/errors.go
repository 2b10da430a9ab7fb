package models

import "errors"

// Application-wide standard errors
var (
	// Persistence
	ErrNotFound    = errors.New("save not found")
	ErrInvalidSave = errors.New("save record is invalid")

	// Input
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidName     = errors.New("invalid character name")
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// Economy
	ErrInsufficientCoins = errors.New("insufficient coins")
	ErrUnknownItem       = errors.New("unknown item")
	ErrItemNotOwned      = errors.New("item not in inventory")
	ErrNotUsable         = errors.New("item cannot be used")
	ErrNotSellable       = errors.New("item cannot be sold")
	ErrNoResources       = errors.New("no resources to sell")
	ErrInventoryEmpty    = errors.New("inventory is empty")
)
