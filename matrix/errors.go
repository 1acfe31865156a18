package matrix

import "errors"

var (
	ErrBadShape      = errors.New("matrix: non-positive dimension not allowed")
	ErrNegativeEntry = errors.New("matrix: negative entry not allowed")
)
