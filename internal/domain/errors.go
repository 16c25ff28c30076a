package domain

import "errors"

var (
	ErrWalletUnavailable    = errors.New("wallet agent unavailable")
	ErrUserRejected         = errors.New("request rejected by user")
	ErrTransactionFailed    = errors.New("transaction failed")
	ErrReadFailed           = errors.New("ledger read failed")
	ErrNotConnected         = errors.New("wallet not connected")
	ErrSubmissionInProgress = errors.New("submission already in progress")
	ErrUnknownEvent         = errors.New("unknown ledger event")
)
