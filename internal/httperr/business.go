package httperr

import "errors"

// BusinessError is a rule violation reported to the caller as a 4xx.
// Code is stable for clients; Message is human readable.
type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// Is matches any BusinessError carrying the same code, so variants with
// different messages still satisfy errors.Is against the base error.
func (e BusinessError) Is(target error) bool {
	var be BusinessError
	if errors.As(target, &be) {
		return be.Code == e.Code
	}
	return false
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func NewBusiness(code, message string) BusinessError {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
