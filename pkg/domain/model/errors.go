package model

import "errors"

var (
	// ErrInputNotFound is returned when the record file does not exist
	ErrInputNotFound = errors.New("input file not found")

	// ErrInputMalformed is returned when the record file cannot be parsed as a list of mappings
	ErrInputMalformed = errors.New("input is not a list of package records")
)
