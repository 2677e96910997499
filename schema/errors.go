package schema

import (
	"errors"
	"fmt"
)

// ErrorKind classifies engine failures.
type ErrorKind string

const (
	KindNetworkFailure               ErrorKind = "networkFailure"
	KindMalformedResponse            ErrorKind = "malformedResponse"
	KindMalformedTransactionIntent   ErrorKind = "malformedTransactionIntent"
	KindServerErrorMessage           ErrorKind = "serverErrorMessage"
	KindServerErrorOpaque            ErrorKind = "serverErrorOpaque"
	KindRedirectMalformed            ErrorKind = "redirectMalformed"
	KindSigningFailed                ErrorKind = "signingFailed"
	KindTransactionHandlerIncomplete ErrorKind = "transactionHandlerIncomplete"
	KindTransactionHandlerFailed     ErrorKind = "transactionHandlerFailed"
	KindUnsupportedButtonAction      ErrorKind = "unsupportedButtonAction"
	KindInvalidButtonTarget          ErrorKind = "invalidButtonTarget"
)

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var classified interface{ Kind() ErrorKind }
	if errors.As(err, &classified) {
		return classified.Kind(), true
	}
	return "", false
}

// NetworkFailureError reports that the proxy call itself failed.
type NetworkFailureError struct {
	URL string
	Err error
}

func (e *NetworkFailureError) Error() string {
	return fmt.Sprintf("failed to reach proxy %v: %v", e.URL, e.Err)
}
func (e *NetworkFailureError) Unwrap() error   { return e.Err }
func (e *NetworkFailureError) Kind() ErrorKind { return KindNetworkFailure }

// MalformedResponseError reports a 2xx body that is not a multi-specification result.
type MalformedResponseError struct {
	Status int
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("server returned an unexpected response: %v", e.Err)
	}
	return "server returned an unexpected response"
}
func (e *MalformedResponseError) Unwrap() error   { return e.Err }
func (e *MalformedResponseError) Kind() ErrorKind { return KindMalformedResponse }

// MalformedTransactionIntentError reports a tx target body that is not a transaction intent.
type MalformedTransactionIntentError struct {
	Status int
	Err    error
}

func (e *MalformedTransactionIntentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("server returned an invalid transaction intent: %v", e.Err)
	}
	return "server returned an invalid transaction intent"
}
func (e *MalformedTransactionIntentError) Unwrap() error   { return e.Err }
func (e *MalformedTransactionIntentError) Kind() ErrorKind { return KindMalformedTransactionIntent }

// ServerErrorMessage is a structured, recoverable server message.
type ServerErrorMessage struct {
	Status  int
	Message string
}

func (e *ServerErrorMessage) Error() string   { return e.Message }
func (e *ServerErrorMessage) Kind() ErrorKind { return KindServerErrorMessage }

// ServerErrorOpaqueError is a non-2xx response without a usable message.
type ServerErrorOpaqueError struct {
	Status int
}

func (e *ServerErrorOpaqueError) Error() string {
	return fmt.Sprintf("server returned an error without a message, status %d", e.Status)
}
func (e *ServerErrorOpaqueError) Kind() ErrorKind { return KindServerErrorOpaque }

// RedirectMalformedError reports a redirect without an absolute http(s) location.
type RedirectMalformedError struct {
	Location string
	Err      error
}

func (e *RedirectMalformedError) Error() string {
	if e.Location == "" {
		return "redirect response is missing a location"
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid redirect location %q: %v", e.Location, e.Err)
	}
	return fmt.Sprintf("invalid redirect location %q", e.Location)
}
func (e *RedirectMalformedError) Unwrap() error   { return e.Err }
func (e *RedirectMalformedError) Kind() ErrorKind { return KindRedirectMalformed }

// SigningFailedError reports that the signer adapter could not sign a frame action.
type SigningFailedError struct {
	Err error
}

func (e *SigningFailedError) Error() string   { return fmt.Sprintf("failed to sign frame action: %v", e.Err) }
func (e *SigningFailedError) Unwrap() error   { return e.Err }
func (e *SigningFailedError) Kind() ErrorKind { return KindSigningFailed }

// TransactionHandlerIncompleteError reports that the wallet handler produced no identifier.
type TransactionHandlerIncompleteError struct {
	Method string
}

// TransactionDidNotReturnTransactionIdError is the historical name of TransactionHandlerIncompleteError.
type TransactionDidNotReturnTransactionIdError = TransactionHandlerIncompleteError

func (e *TransactionHandlerIncompleteError) Error() string {
	if e.Method == MethodSignTypedDataV4 {
		return "signature handler did not return a signature"
	}
	return "transaction handler did not return a transaction id"
}
func (e *TransactionHandlerIncompleteError) Kind() ErrorKind { return KindTransactionHandlerIncomplete }

// TransactionHandlerFailedError wraps an error returned by the wallet handler.
type TransactionHandlerFailedError struct {
	Method string
	Err    error
}

func (e *TransactionHandlerFailedError) Error() string {
	return fmt.Sprintf("%v handler failed: %v", e.Method, e.Err)
}
func (e *TransactionHandlerFailedError) Unwrap() error   { return e.Err }
func (e *TransactionHandlerFailedError) Kind() ErrorKind { return KindTransactionHandlerFailed }

// UnsupportedButtonActionError is returned for a button action the engine cannot route.
type UnsupportedButtonActionError struct {
	Action ButtonAction
}

func (e *UnsupportedButtonActionError) Error() string {
	return fmt.Sprintf("unrecognized button action %q", string(e.Action))
}
func (e *UnsupportedButtonActionError) Kind() ErrorKind { return KindUnsupportedButtonAction }

// InvalidButtonTargetError is returned when a link or mint button has no absolute http(s) target.
type InvalidButtonTargetError struct {
	Action ButtonAction
	Target string
}

func (e *InvalidButtonTargetError) Error() string {
	return fmt.Sprintf("invalid %v button target %q", e.Action, e.Target)
}
func (e *InvalidButtonTargetError) Kind() ErrorKind { return KindInvalidButtonTarget }
