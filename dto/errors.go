package dto

import "errors"

// The analysis pipeline surfaces exactly three failure kinds; everything
// finer-grained is absorbed as an absent field in the result.
var (
	// ErrImageProcessing: the upload could not be decoded or prepared for
	// recognition at all.
	ErrImageProcessing = errors.New("could not process receipt file")
	// ErrRecognition: the recognition subsystem reported an error.
	ErrRecognition = errors.New("text recognition failed")
)
