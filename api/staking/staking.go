// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/tierlock/tierlock/api/restutil"
	"github.com/tierlock/tierlock/staking"
	"github.com/tierlock/tierlock/staking/reverts"
	"github.com/tierlock/tierlock/tier"
)

// Staking exposes the lock accounting engine over REST.
type Staking struct {
	engine *staking.Staking
	now    func() uint64
}

func New(engine *staking.Staking) *Staking {
	return &Staking{
		engine: engine,
		now:    func() uint64 { return uint64(time.Now().Unix()) },
	}
}

// asHTTPError converts engine failures: policy rejections become 403,
// everything else is an internal failure.
func asHTTPError(err error) error {
	if reverts.IsRevertErr(err) {
		return restutil.Forbidden(err)
	}
	return err
}

func parseAddressVar(req *http.Request, name string) (tier.Address, error) {
	addr, err := tier.ParseAddress(mux.Vars(req)[name])
	if err != nil {
		return tier.Address{}, restutil.BadRequest(errors.WithMessage(err, name))
	}
	return *addr, nil
}

// timestamp resolves the effective operation time, defaulting to wall clock.
func (s *Staking) timestamp(explicit uint64) uint64 {
	if explicit != 0 {
		return explicit
	}
	return s.now()
}

func (s *Staking) handleGetConfig(w http.ResponseWriter, _ *http.Request) error {
	cfg, err := s.engine.GetConfig()
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, cfg)
}

func (s *Staking) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	user, err := parseAddressVar(req, "user")
	if err != nil {
		return err
	}
	userWeighted, globalWeighted, err := s.engine.GetPoolPercentages(user)
	if err != nil {
		return asHTTPError(err)
	}
	return restutil.WriteJSON(w, &Pool{
		UserWeighted:   bigToHex(userWeighted),
		GlobalWeighted: bigToHex(globalWeighted),
	})
}

func (s *Staking) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	user, err := parseAddressVar(req, "user")
	if err != nil {
		return err
	}
	total, err := s.engine.UserLockedTotal(user)
	if err != nil {
		return err
	}
	count, err := s.engine.GetUserLockCount(user)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, &Account{
		LockedTotal: bigToHex(total),
		LockCount:   count,
	})
}

func (s *Staking) handleGetUserLock(w http.ResponseWriter, req *http.Request) error {
	user, err := parseAddressVar(req, "user")
	if err != nil {
		return err
	}
	index, err := strconv.ParseUint(mux.Vars(req)["index"], 10, 64)
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "index"))
	}
	id, err := s.engine.GetUserLock(user, index)
	if err != nil {
		return err
	}
	if id.IsZero() {
		return restutil.HTTPError(errors.New("lock not found"), http.StatusNotFound)
	}
	entry, err := s.engine.GetLock(id)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, restutil.M{"lockId": id.String(), "lock": convertLock(entry)})
}

func (s *Staking) handleGetLock(w http.ResponseWriter, req *http.Request) error {
	id, err := tier.ParseBytes32(mux.Vars(req)["id"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "id"))
	}
	entry, err := s.engine.GetLock(id)
	if err != nil {
		return err
	}
	if entry.IsEmpty() {
		return restutil.HTTPError(errors.New("lock not found"), http.StatusNotFound)
	}
	return restutil.WriteJSON(w, convertLock(entry))
}

func (s *Staking) handleGetTotal(w http.ResponseWriter, _ *http.Request) error {
	total, err := s.engine.GlobalLockedTotal()
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, restutil.M{"lockedTotal": bigToHex(total)})
}

func (s *Staking) handleCreateLock(w http.ResponseWriter, req *http.Request) error {
	var payload LockPayload
	if err := restutil.ParseJSON(req.Body, &payload); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	id, index, err := s.engine.Lock(payload.Caller, payload.Beneficiary, hexToBig(payload.Amount), s.timestamp(payload.Timestamp))
	if err != nil {
		return asHTTPError(err)
	}
	return restutil.WriteJSON(w, &LockReceipt{LockID: id, Index: index})
}

func (s *Staking) handleWithdraw(w http.ResponseWriter, req *http.Request) error {
	var payload WithdrawPayload
	if err := restutil.ParseJSON(req.Body, &payload); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	net, fee, err := s.engine.Withdraw(payload.Caller, payload.LockID, payload.Index, hexToBig(payload.Amount), s.timestamp(payload.Timestamp))
	if err != nil {
		return asHTTPError(err)
	}
	return restutil.WriteJSON(w, &WithdrawReceipt{Net: bigToHex(net), Fee: bigToHex(fee)})
}

func (s *Staking) handleSetDepositor(w http.ResponseWriter, req *http.Request) error {
	return s.applyAddress(w, req, s.engine.SetDepositor)
}

func (s *Staking) handleSetFeeRecipient(w http.ResponseWriter, req *http.Request) error {
	return s.applyAddress(w, req, s.engine.SetFeeRecipient)
}

func (s *Staking) handleTransferOwnership(w http.ResponseWriter, req *http.Request) error {
	return s.applyAddress(w, req, s.engine.TransferOwnership)
}

func (s *Staking) handleChangeUnlockDuration(w http.ResponseWriter, req *http.Request) error {
	return s.applyValue(w, req, s.engine.ChangeUnlockDuration)
}

func (s *Staking) handleChangeMultiplier(w http.ResponseWriter, req *http.Request) error {
	return s.applyValue(w, req, s.engine.ChangePoolMultiplier)
}

func (s *Staking) handleChangeFee(w http.ResponseWriter, req *http.Request) error {
	return s.applyValue(w, req, s.engine.ChangeFee)
}

func (s *Staking) handleChangeEarlyWithdrawal(w http.ResponseWriter, req *http.Request) error {
	return s.applyFlag(w, req, s.engine.ChangeEarlyWithdrawal)
}

func (s *Staking) handleEnableRewards(w http.ResponseWriter, req *http.Request) error {
	return s.applyFlag(w, req, s.engine.EnableRewards)
}

func (s *Staking) applyAddress(w http.ResponseWriter, req *http.Request, apply func(tier.Address, tier.Address) error) error {
	var payload AddressPayload
	if err := restutil.ParseJSON(req.Body, &payload); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := apply(payload.Caller, payload.Address); err != nil {
		return asHTTPError(err)
	}
	return restutil.WriteJSON(w, restutil.M{"ok": true})
}

func (s *Staking) applyValue(w http.ResponseWriter, req *http.Request, apply func(tier.Address, uint64) error) error {
	var payload ValuePayload
	if err := restutil.ParseJSON(req.Body, &payload); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := apply(payload.Caller, payload.Value); err != nil {
		return asHTTPError(err)
	}
	return restutil.WriteJSON(w, restutil.M{"ok": true})
}

func (s *Staking) applyFlag(w http.ResponseWriter, req *http.Request, apply func(tier.Address, bool) error) error {
	var payload FlagPayload
	if err := restutil.ParseJSON(req.Body, &payload); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := apply(payload.Caller, payload.Enabled); err != nil {
		return asHTTPError(err)
	}
	return restutil.WriteJSON(w, restutil.M{"ok": true})
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/config").
		Methods(http.MethodGet).
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetConfig))
	sub.Path("/total").
		Methods(http.MethodGet).
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetTotal))
	sub.Path("/pool/{user}").
		Methods(http.MethodGet).
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetPool))
	sub.Path("/accounts/{user}").
		Methods(http.MethodGet).
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetAccount))
	sub.Path("/accounts/{user}/locks/{index}").
		Methods(http.MethodGet).
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetUserLock))
	sub.Path("/locks/{id}").
		Methods(http.MethodGet).
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetLock))

	sub.Path("/locks").
		Methods(http.MethodPost).
		HandlerFunc(restutil.WrapHandlerFunc(s.handleCreateLock))
	sub.Path("/withdrawals").
		Methods(http.MethodPost).
		HandlerFunc(restutil.WrapHandlerFunc(s.handleWithdraw))

	sub.Path("/config/depositor").
		Methods(http.MethodPost).
		HandlerFunc(restutil.WrapHandlerFunc(s.handleSetDepositor))
	sub.Path("/config/fee-recipient").
		Methods(http.MethodPost).
		HandlerFunc(restutil.WrapHandlerFunc(s.handleSetFeeRecipient))
	sub.Path("/config/owner").
		Methods(http.MethodPost).
		HandlerFunc(restutil.WrapHandlerFunc(s.handleTransferOwnership))
	sub.Path("/config/unlock-duration").
		Methods(http.MethodPost).
		HandlerFunc(restutil.WrapHandlerFunc(s.handleChangeUnlockDuration))
	sub.Path("/config/multiplier").
		Methods(http.MethodPost).
		HandlerFunc(restutil.WrapHandlerFunc(s.handleChangeMultiplier))
	sub.Path("/config/fee").
		Methods(http.MethodPost).
		HandlerFunc(restutil.WrapHandlerFunc(s.handleChangeFee))
	sub.Path("/config/early-withdrawal").
		Methods(http.MethodPost).
		HandlerFunc(restutil.WrapHandlerFunc(s.handleChangeEarlyWithdrawal))
	sub.Path("/config/rewards").
		Methods(http.MethodPost).
		HandlerFunc(restutil.WrapHandlerFunc(s.handleEnableRewards))
}
