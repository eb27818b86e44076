package qnet

import (
	"errors"
	"fmt"
)

// Common errors for routing operations
var (
	ErrNoRoute  = errors.New("no route")
	ErrSend     = errors.New("send failed")
	ErrTeleport = errors.New("teleport failed")
)

// NoRouteError reports that no path connects Src and Dst.
type NoRouteError struct {
	Src NodeID
	Dst NodeID
}

func (e *NoRouteError) Error() string {
	return fmt.Sprintf("no route from %s to %s", e.Src, e.Dst)
}

// Is matches ErrNoRoute.
func (e *NoRouteError) Is(target error) bool {
	return target == ErrNoRoute
}

// SendError reports a failed hop.
type SendError struct {
	From NodeID
	To   NodeID
	Err  error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send %s->%s: %v", e.From, e.To, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// Is matches ErrSend.
func (e *SendError) Is(target error) bool {
	return target == ErrSend
}

// TeleportError reports a failed whole-path delivery.
type TeleportError struct {
	Path Path
	Err  error
}

func (e *TeleportError) Error() string {
	return fmt.Sprintf("teleport over %s: %v", e.Path, e.Err)
}

func (e *TeleportError) Unwrap() error {
	return e.Err
}

// Is matches ErrTeleport.
func (e *TeleportError) Is(target error) bool {
	return target == ErrTeleport
}
