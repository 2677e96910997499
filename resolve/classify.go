package resolve

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/viant/frames/schema"
)

type guard func(in *Input) (*Outcome, bool)

// guards are evaluated in order; the first match wins.
var guards = []guard{
	networkFailure,
	redirect,
	errorMessage,
	opaqueError,
	success,
}

// Classify maps a proxy call into an outcome.
func Classify(in Input) *Outcome {
	for _, candidate := range guards {
		if ret, ok := candidate(&in); ok {
			return ret
		}
	}
	return &Outcome{Kind: KindRequestError, Status: in.Status, Err: &schema.MalformedResponseError{Status: in.Status}}
}

func networkFailure(in *Input) (*Outcome, bool) {
	if in.Err == nil {
		return nil, false
	}
	return &Outcome{Kind: KindRequestError, Err: &schema.NetworkFailureError{Err: in.Err}}, true
}

func redirect(in *Input) (*Outcome, bool) {
	is3xx := in.Status >= 300 && in.Status < 400
	switch {
	case is3xx && in.IsAction:
	case in.IsRedirectButton && is2xx(in.Status) && !schema.MultiSpecificationGuard.Match(in.Body):
		if _, ok := schema.DecodeRedirect(in.Body); !ok {
			return nil, false
		}
	default:
		return nil, false
	}
	location := ""
	if in.Header != nil {
		location = in.Header.Get("Location")
	}
	if location == "" {
		location, _ = schema.DecodeRedirect(in.Body)
	}
	if err := ValidateLocation(location); err != nil {
		return &Outcome{Kind: KindRequestError, Status: in.Status, Err: &schema.RedirectMalformedError{Location: location, Err: err}}, true
	}
	return &Outcome{Kind: KindRedirect, Status: in.Status, Location: location}, true
}

func errorMessage(in *Input) (*Outcome, bool) {
	switch {
	case in.Status >= 400 && in.Status < 500:
	case in.Status >= 500 && in.IsAction:
	default:
		return nil, false
	}
	message, ok := schema.DecodeErrorMessage(in.Body)
	if !ok {
		return nil, false
	}
	return &Outcome{Kind: KindErrorMessage, Status: in.Status, Message: message}, true
}

func opaqueError(in *Input) (*Outcome, bool) {
	if is2xx(in.Status) {
		return nil, false
	}
	return &Outcome{Kind: KindRequestError, Status: in.Status, Err: &schema.ServerErrorOpaqueError{Status: in.Status}}, true
}

func success(in *Input) (*Outcome, bool) {
	if in.Expect == ExpectTransaction {
		intent, err := schema.DecodeTransactionIntent(in.Body)
		if err != nil {
			return &Outcome{Kind: KindRequestError, Status: in.Status, Err: &schema.MalformedTransactionIntentError{Status: in.Status, Err: err}}, true
		}
		return &Outcome{Kind: KindDone, Status: in.Status, Intent: intent}, true
	}
	result, err := schema.DecodeParseResult(in.Body)
	if err != nil {
		return &Outcome{Kind: KindRequestError, Status: in.Status, Err: &schema.MalformedResponseError{Status: in.Status, Err: err}}, true
	}
	ret := &Outcome{Kind: KindDone, Status: in.Status, Result: result}
	if in.IsAction {
		ret.Info = result.Message
	}
	return ret, true
}

// ValidateLocation requires an absolute http or https URL with a host.
func ValidateLocation(location string) error {
	if strings.TrimSpace(location) == "" {
		return fmt.Errorf("empty location")
	}
	URL, err := url.Parse(location)
	if err != nil {
		return err
	}
	switch strings.ToLower(URL.Scheme) {
	case "http", "https":
	case "":
		return fmt.Errorf("location is not absolute")
	default:
		return fmt.Errorf("unsupported scheme %q", URL.Scheme)
	}
	if URL.Host == "" {
		return fmt.Errorf("location has no host")
	}
	return nil
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}
