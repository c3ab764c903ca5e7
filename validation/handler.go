// Package validation holds the value validators used by generated code and
// the failure sink they report to.
//
// Validators have two modes. RequireValidValue style methods are for
// arguments supplied by programs and return an *InvalidArgumentError on the
// first problem. ValidateValue style methods are for parsed data and report
// every problem to a Handler, typically a *restcodec.Session.
package validation

import "github.com/reoring/restcodec/i18n"

// Handler receives validation failure messages.
type Handler interface {
	HandleValidationFailure(msg string)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(msg string)

func (f HandlerFunc) HandleValidationFailure(msg string) { f(msg) }

// Collector is a Handler that keeps messages in order.
type Collector struct {
	Messages []string
}

func (c *Collector) HandleValidationFailure(msg string) {
	c.Messages = append(c.Messages, msg)
}

// InvalidArgumentError reports an invalid argument passed by a program.
type InvalidArgumentError struct {
	Parameter string
	Message   string
}

func (e *InvalidArgumentError) Error() string {
	return i18n.T(i18n.CodeInvalidArgument, map[string]string{
		"parameter": e.Parameter,
		"message":   e.Message,
	})
}

func invalid(param, msg string) error {
	return &InvalidArgumentError{Parameter: param, Message: msg}
}
