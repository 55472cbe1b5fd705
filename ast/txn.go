// Copyright (C) 2019-2023 Algorand, Inc.
// This file is part of go-algorand
//
// go-algorand is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// go-algorand is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with go-algorand.  If not, see <https://www.gnu.org/licenses/>.

package ast

import (
	"fmt"

	"github.com/michaeldiamant/pyteal/ir"
)

// TxnField names a transaction field readable by a program.
type TxnField int

const (
	// TxnSender is the 32 byte address of sender
	TxnSender TxnField = iota
	// TxnFee is the microalgo fee paid
	TxnFee
	// TxnFirstValid is the first round the transaction is valid
	TxnFirstValid
	// TxnLastValid is the last round the transaction is valid
	TxnLastValid
	// TxnNote is the note field
	TxnNote
	// TxnReceiver is the 32 byte address of the payment's recipient
	TxnReceiver
	// TxnAmount is the payment amount in microalgos
	TxnAmount
	// TxnCloseRemainderTo is the 32 byte address of the close-to account
	TxnCloseRemainderTo
	// TxnTypeEnum is the transaction type as an integer
	TxnTypeEnum
	// TxnXferAsset is the asset being transferred
	TxnXferAsset
	// TxnAssetAmount is the amount of the asset being transferred
	TxnAssetAmount
	// TxnAssetReceiver is the recipient of the asset transfer
	TxnAssetReceiver
	// TxnGroupIndex is the position of this transaction within its group
	TxnGroupIndex
	// TxnTxID is the computed ID of the transaction
	TxnTxID
	// TxnApplicationID is the application being called
	TxnApplicationID
	// TxnOnCompletion is the ApplicationCall on-completion action
	TxnOnCompletion
	// TxnApplicationArgs are the arguments to the application call (array)
	TxnApplicationArgs
	// TxnNumAppArgs is the number of application arguments
	TxnNumAppArgs
	// TxnAccounts are the extra accounts available to the call (array)
	TxnAccounts
	// TxnNumAccounts is the number of extra accounts
	TxnNumAccounts
	// TxnApprovalProgram is the approval program of the call
	TxnApprovalProgram
	// TxnClearStateProgram is the clear state program of the call
	TxnClearStateProgram
	// TxnRekeyTo is the 32 byte address a rekey transaction hands control to
	TxnRekeyTo
	// TxnAssets are the foreign assets available to the call (array)
	TxnAssets
	// TxnApplications are the foreign apps available to the call (array)
	TxnApplications
	// TxnExtraProgramPages is the number of extra program pages
	TxnExtraProgramPages
	// TxnLogs are the log messages emitted by an app call (array)
	TxnLogs
	// TxnNumLogs is the number of log messages
	TxnNumLogs
	// TxnCreatedAssetID is the asset created by this transaction
	TxnCreatedAssetID
	// TxnCreatedApplicationID is the app created by this transaction
	TxnCreatedApplicationID
	// TxnLastLog is the last log message emitted by an app call
	TxnLastLog
)

type txnFieldSpec struct {
	name       string
	ftype      ir.StackType
	minVersion uint64
	array      bool
}

var txnFieldSpecs = [...]txnFieldSpec{
	TxnSender:               {"Sender", ir.StackBytes, 1, false},
	TxnFee:                  {"Fee", ir.StackUint64, 1, false},
	TxnFirstValid:           {"FirstValid", ir.StackUint64, 1, false},
	TxnLastValid:            {"LastValid", ir.StackUint64, 1, false},
	TxnNote:                 {"Note", ir.StackBytes, 1, false},
	TxnReceiver:             {"Receiver", ir.StackBytes, 1, false},
	TxnAmount:               {"Amount", ir.StackUint64, 1, false},
	TxnCloseRemainderTo:     {"CloseRemainderTo", ir.StackBytes, 1, false},
	TxnTypeEnum:             {"TypeEnum", ir.StackUint64, 1, false},
	TxnXferAsset:            {"XferAsset", ir.StackUint64, 1, false},
	TxnAssetAmount:          {"AssetAmount", ir.StackUint64, 1, false},
	TxnAssetReceiver:        {"AssetReceiver", ir.StackBytes, 1, false},
	TxnGroupIndex:           {"GroupIndex", ir.StackUint64, 1, false},
	TxnTxID:                 {"TxID", ir.StackBytes, 1, false},
	TxnApplicationID:        {"ApplicationID", ir.StackUint64, 2, false},
	TxnOnCompletion:         {"OnCompletion", ir.StackUint64, 2, false},
	TxnApplicationArgs:      {"ApplicationArgs", ir.StackBytes, 2, true},
	TxnNumAppArgs:           {"NumAppArgs", ir.StackUint64, 2, false},
	TxnAccounts:             {"Accounts", ir.StackBytes, 2, true},
	TxnNumAccounts:          {"NumAccounts", ir.StackUint64, 2, false},
	TxnApprovalProgram:      {"ApprovalProgram", ir.StackBytes, 2, false},
	TxnClearStateProgram:    {"ClearStateProgram", ir.StackBytes, 2, false},
	TxnRekeyTo:              {"RekeyTo", ir.StackBytes, 2, false},
	TxnAssets:               {"Assets", ir.StackUint64, 3, true},
	TxnApplications:         {"Applications", ir.StackUint64, 3, true},
	TxnExtraProgramPages:    {"ExtraProgramPages", ir.StackUint64, 4, false},
	TxnLogs:                 {"Logs", ir.StackBytes, 5, true},
	TxnNumLogs:              {"NumLogs", ir.StackUint64, 5, false},
	TxnCreatedAssetID:       {"CreatedAssetID", ir.StackUint64, 5, false},
	TxnCreatedApplicationID: {"CreatedApplicationID", ir.StackUint64, 5, false},
	TxnLastLog:              {"LastLog", ir.StackBytes, 6, false},
}

// Name returns the assembly argument name of the field.
func (f TxnField) Name() string { return txnFieldSpecs[f].name }

// FieldType returns the stack type the field pushes.
func (f TxnField) FieldType() ir.StackType { return txnFieldSpecs[f].ftype }

// MinVersion returns the program version that introduced the field.
func (f TxnField) MinVersion() uint64 { return txnFieldSpecs[f].minVersion }

// Array reports whether the field is indexed.
func (f TxnField) Array() bool { return txnFieldSpecs[f].array }

// GlobalField names a global parameter readable by a program.
type GlobalField int

const (
	// GlobalMinTxnFee is the minimum transaction fee
	GlobalMinTxnFee GlobalField = iota
	// GlobalMinBalance is the minimum account balance
	GlobalMinBalance
	// GlobalMaxTxnLife is the maximum transaction validity window
	GlobalMaxTxnLife
	// GlobalZeroAddress is the all-zero address
	GlobalZeroAddress
	// GlobalGroupSize is the size of the enclosing transaction group
	GlobalGroupSize
	// GlobalLogicSigVersion is the maximum supported program version
	GlobalLogicSigVersion
	// GlobalRound is the current round number
	GlobalRound
	// GlobalLatestTimestamp is the latest confirmed block timestamp
	GlobalLatestTimestamp
	// GlobalCurrentApplicationID is the ID of the executing application
	GlobalCurrentApplicationID
	// GlobalCreatorAddress is the creator of the executing application
	GlobalCreatorAddress
	// GlobalCurrentApplicationAddress is the address of the executing app
	GlobalCurrentApplicationAddress
	// GlobalGroupID is the ID of the enclosing transaction group
	GlobalGroupID
	// GlobalOpcodeBudget is the remaining opcode budget
	GlobalOpcodeBudget
	// GlobalCallerApplicationID is the ID of the calling application
	GlobalCallerApplicationID
	// GlobalCallerApplicationAddress is the address of the calling app
	GlobalCallerApplicationAddress
)

var globalFieldSpecs = [...]txnFieldSpec{
	GlobalMinTxnFee:                 {"MinTxnFee", ir.StackUint64, 1, false},
	GlobalMinBalance:                {"MinBalance", ir.StackUint64, 1, false},
	GlobalMaxTxnLife:                {"MaxTxnLife", ir.StackUint64, 1, false},
	GlobalZeroAddress:               {"ZeroAddress", ir.StackBytes, 1, false},
	GlobalGroupSize:                 {"GroupSize", ir.StackUint64, 1, false},
	GlobalLogicSigVersion:           {"LogicSigVersion", ir.StackUint64, 2, false},
	GlobalRound:                     {"Round", ir.StackUint64, 2, false},
	GlobalLatestTimestamp:           {"LatestTimestamp", ir.StackUint64, 2, false},
	GlobalCurrentApplicationID:      {"CurrentApplicationID", ir.StackUint64, 2, false},
	GlobalCreatorAddress:            {"CreatorAddress", ir.StackBytes, 3, false},
	GlobalCurrentApplicationAddress: {"CurrentApplicationAddress", ir.StackBytes, 5, false},
	GlobalGroupID:                   {"GroupID", ir.StackBytes, 5, false},
	GlobalOpcodeBudget:              {"OpcodeBudget", ir.StackUint64, 6, false},
	GlobalCallerApplicationID:       {"CallerApplicationID", ir.StackUint64, 6, false},
	GlobalCallerApplicationAddress:  {"CallerApplicationAddress", ir.StackBytes, 6, false},
}

// Name returns the assembly argument name of the field.
func (f GlobalField) Name() string { return globalFieldSpecs[f].name }

// FieldType returns the stack type the field pushes.
func (f GlobalField) FieldType() ir.StackType { return globalFieldSpecs[f].ftype }

// MinVersion returns the program version that introduced the field.
func (f GlobalField) MinVersion() uint64 { return globalFieldSpecs[f].minVersion }

// TxnExpr accesses a scalar field of the current transaction.
type TxnExpr struct {
	Field TxnField
}

// Txn returns an expression accessing a field of the current transaction.
func Txn(field TxnField) *TxnExpr {
	return &TxnExpr{Field: field}
}

func (e *TxnExpr) Type() ir.StackType { return e.Field.FieldType() }
func (e *TxnExpr) Children() []Expr   { return nil }
func (e *TxnExpr) String() string     { return fmt.Sprintf("(Txn %s)", e.Field.Name()) }
func (e *TxnExpr) isExpr()            {}

// TxnaExpr accesses an array field of the current transaction at a static
// index.
type TxnaExpr struct {
	Field TxnField
	Index uint64
}

// Txna returns an expression accessing an array field of the current
// transaction.
func Txna(field TxnField, index uint64) *TxnaExpr {
	return &TxnaExpr{Field: field, Index: index}
}

func (e *TxnaExpr) Type() ir.StackType { return e.Field.FieldType() }
func (e *TxnaExpr) Children() []Expr   { return nil }
func (e *TxnaExpr) String() string {
	return fmt.Sprintf("(Txna %s %d)", e.Field.Name(), e.Index)
}
func (e *TxnaExpr) isExpr() {}

// GtxnExpr accesses a field of another transaction in the group, addressed
// by a static group index validated against MaxGroupSize.
type GtxnExpr struct {
	GroupIndex uint64
	Field      TxnField
}

// Gtxn returns an expression accessing a field of the group transaction at
// the given static index.
func Gtxn(groupIndex uint64, field TxnField) *GtxnExpr {
	return &GtxnExpr{GroupIndex: groupIndex, Field: field}
}

func (e *GtxnExpr) Type() ir.StackType { return e.Field.FieldType() }
func (e *GtxnExpr) Children() []Expr   { return nil }
func (e *GtxnExpr) String() string {
	return fmt.Sprintf("(Gtxn %d %s)", e.GroupIndex, e.Field.Name())
}
func (e *GtxnExpr) isExpr() {}

// GtxnaExpr accesses an array field of another transaction in the group.
type GtxnaExpr struct {
	GroupIndex uint64
	Field      TxnField
	Index      uint64
}

// Gtxna returns an expression accessing an array field of the group
// transaction at the given static index.
func Gtxna(groupIndex uint64, field TxnField, index uint64) *GtxnaExpr {
	return &GtxnaExpr{GroupIndex: groupIndex, Field: field, Index: index}
}

func (e *GtxnaExpr) Type() ir.StackType { return e.Field.FieldType() }
func (e *GtxnaExpr) Children() []Expr   { return nil }
func (e *GtxnaExpr) String() string {
	return fmt.Sprintf("(Gtxna %d %s %d)", e.GroupIndex, e.Field.Name(), e.Index)
}
func (e *GtxnaExpr) isExpr() {}

// ItxnExpr accesses a field of the last inner transaction.
type ItxnExpr struct {
	Field TxnField
}

// Itxn returns an expression accessing a field of the last inner
// transaction.
func Itxn(field TxnField) *ItxnExpr {
	return &ItxnExpr{Field: field}
}

func (e *ItxnExpr) Type() ir.StackType { return e.Field.FieldType() }
func (e *ItxnExpr) Children() []Expr   { return nil }
func (e *ItxnExpr) String() string     { return fmt.Sprintf("(Itxn %s)", e.Field.Name()) }
func (e *ItxnExpr) isExpr()            {}

// GitxnExpr accesses a field of an inner transaction in the last inner
// group, addressed by a static index validated against MaxGroupSize.
type GitxnExpr struct {
	TxnIndex uint64
	Field    TxnField
}

// Gitxn returns an expression accessing a field of the inner group
// transaction at the given static index.
func Gitxn(txnIndex uint64, field TxnField) *GitxnExpr {
	return &GitxnExpr{TxnIndex: txnIndex, Field: field}
}

func (e *GitxnExpr) Type() ir.StackType { return e.Field.FieldType() }
func (e *GitxnExpr) Children() []Expr   { return nil }
func (e *GitxnExpr) String() string {
	return fmt.Sprintf("(Gitxn %d %s)", e.TxnIndex, e.Field.Name())
}
func (e *GitxnExpr) isExpr() {}

// GlobalExpr accesses a global parameter.
type GlobalExpr struct {
	Field GlobalField
}

// Global returns an expression accessing a global parameter.
func Global(field GlobalField) *GlobalExpr {
	return &GlobalExpr{Field: field}
}

func (e *GlobalExpr) Type() ir.StackType { return e.Field.FieldType() }
func (e *GlobalExpr) Children() []Expr   { return nil }
func (e *GlobalExpr) String() string     { return fmt.Sprintf("(Global %s)", e.Field.Name()) }
func (e *GlobalExpr) isExpr()            {}
