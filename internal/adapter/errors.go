package adapter

import "errors"

var (
	// ErrSignedOut marks a push or pull attempted without an active session.
	ErrSignedOut = errors.New("no signed-in session")

	// ErrRemote wraps transport and server-reported failures; the original
	// cause is surfaced verbatim inside the wrap.
	ErrRemote = errors.New("remote sync endpoint error")
)
