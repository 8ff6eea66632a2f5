package domain

import "errors"

var (
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput     = errors.New("Given Param is not valid")
	ErrUnsupportedSchema = errors.New("Unsupported schema")
	ErrInvalidJsonFormat = errors.New("invalid JSON format")

	// request error
	ErrInvalidAddress = errors.New("Invalid address")

	// ErrFetchFailure wraps any failed read against the chain: network, rpc or decoding
	ErrFetchFailure = errors.New("fetch failure")
	// ErrTransactionRejected is returned when signing is declined or the node refuses the transaction
	ErrTransactionRejected = errors.New("transaction rejected")
	// ErrTransactionReverted is returned when the transaction was mined with a failed status
	ErrTransactionReverted = errors.New("transaction reverted")
	// ErrPreconditionUnmet is returned when an action runs without a connected wallet or resolved contract
	ErrPreconditionUnmet = errors.New("precondition unmet")
)

// ErrorKind names the staking error taxonomy member err belongs to, or "" if none
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPreconditionUnmet):
		return "preconditionUnmet"
	case errors.Is(err, ErrTransactionReverted):
		return "transactionReverted"
	case errors.Is(err, ErrTransactionRejected):
		return "transactionRejected"
	case errors.Is(err, ErrFetchFailure):
		return "fetchFailure"
	}
	return ""
}
