package common

import "errors"

// ErrInvalidOrder is the engine's one synchronous failure: a limit order
// submitted without a price, or with a NaN price.
var ErrInvalidOrder = errors.New("invalid order: limit order requires a non-NaN price")
