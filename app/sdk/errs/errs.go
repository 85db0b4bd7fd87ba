// Package errs provides types and support related to web error functionality.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
)

// Error represents an error in the system. The Reason field, when set,
// carries a stable machine-readable code the UI can branch on without
// parsing the human message.
type Error struct {
	Code     ErrCode `json:"code"`
	Message  string  `json:"message"`
	Reason   string  `json:"reason,omitempty"`
	FuncName string  `json:"-"`
	FileName string  `json:"-"`
}

// New constructs an error based on an app error.
func New(code ErrCode, err error) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  err.Error(),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Newf constructs an error based on an error message.
func Newf(code ErrCode, format string, v ...any) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  fmt.Sprintf(format, v...),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Errorf is an alias kept for call sites reading like fmt.Errorf.
func Errorf(code ErrCode, format string, v ...any) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  fmt.Sprintf(format, v...),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// NewWithReason constructs an error that carries a machine-readable reason
// code alongside the message.
func NewWithReason(code ErrCode, reason string, err error) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  err.Error(),
		Reason:   reason,
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Error implements the error interface.
func (err *Error) Error() string {
	return err.Message
}

// Encode implements the web.Encoder interface.
func (err *Error) Encode() ([]byte, string, error) {
	type errorResponse struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Reason  string `json:"reason,omitempty"`
	}

	// Internal details never cross the wire.
	msg := err.Message
	code := err.Code
	if code == InternalOnlyLog {
		code = Internal
		msg = "internal error"
	}

	data, jErr := json.Marshal(errorResponse{
		Code:    code.String(),
		Message: msg,
		Reason:  err.Reason,
	})

	return data, "application/json", jErr
}

// HTTPStatus implements the web.httpStatus interface so the code is used as
// the response status.
func (err *Error) HTTPStatus() int {
	code := err.Code
	if code == InternalOnlyLog {
		code = Internal
	}

	return httpStatus[code]
}

// Equal provides support for the go-cmp package and testing.
func (err *Error) Equal(err2 *Error) bool {
	return err.Code == err2.Code && err.Message == err2.Message && err.Reason == err2.Reason
}

// IsError tests the concrete error is of the Error type.
func IsError(err error) bool {
	var er *Error
	return errors.As(err, &er)
}

// GetError returns a copy of the Error pointer.
func GetError(err error) *Error {
	var er *Error
	if !errors.As(err, &er) {
		return &Error{}
	}

	return er
}
