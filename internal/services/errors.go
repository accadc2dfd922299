package services

import "errors"

var (
	ErrEmptyCart          = errors.New("cart is empty, nothing to checkout")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidShipping    = errors.New("invalid shipping details")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrMissingCredentials = errors.New("missing credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidToken       = errors.New("invalid token")
)
