// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsRevertErr(t *testing.T) {
	assert.True(t, IsRevertErr(ErrUnauthorized))
	assert.True(t, IsRevertErr(New("custom rejection")))
	assert.True(t, IsRevertErr(errors.Wrap(ErrBelowMinimum, "creating lock")))

	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(errors.New("io failure")))
	assert.False(t, IsRevertErr("not an error"))
}

func TestTaxonomyMessages(t *testing.T) {
	assert.Equal(t, "InvalidAddress", ErrInvalidAddress.Error())
	assert.Equal(t, "InvalidAmount", ErrInvalidAmount.Error())
	assert.Equal(t, "Unauthorized", ErrUnauthorized.Error())
	assert.Equal(t, "BelowMinimum", ErrBelowMinimum.Error())
	assert.Equal(t, "InsufficientLockedBalance", ErrInsufficientLockedBalance.Error())
	assert.Equal(t, "EarlyWithdrawalDisabled", ErrEarlyWithdrawalDisabled.Error())
}
