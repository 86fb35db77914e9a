package credits

import "errors"

var (
	ErrEndpointNotFound    = errors.New("movie or person not found")
	ErrCreditNotFound      = errors.New("credit not found for this movie")
	ErrCreditAlreadyExists = errors.New("credit already exists for this movie")
)
