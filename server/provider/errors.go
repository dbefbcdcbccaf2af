package provider

import "errors"

var (
	// ErrGeneration wraps every failure of a generation call
	ErrGeneration = errors.New("generation failed")

	// ErrEmptyResponse indicates the provider answered without any choice
	ErrEmptyResponse = errors.New("provider returned no completion")
)
