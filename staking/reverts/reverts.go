// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// ErrRevert is a policy rejection surfaced to the caller.
// Operations failing with a revert leave no state change behind.
type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// The full rejection taxonomy of the lock accounting engine.
var (
	ErrInvalidAddress            = New("InvalidAddress")
	ErrInvalidAmount             = New("InvalidAmount")
	ErrUnauthorized              = New("Unauthorized")
	ErrBelowMinimum              = New("BelowMinimum")
	ErrInsufficientLockedBalance = New("InsufficientLockedBalance")
	ErrEarlyWithdrawalDisabled   = New("EarlyWithdrawalDisabled")
)

// IsRevertErr reports whether err (or anything it wraps) is a revert.
func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}
