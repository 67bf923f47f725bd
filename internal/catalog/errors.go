package catalog

// errors.go maps technical errors to user-facing messages with support codes.
//
// Error codes are grouped by category:
//
//	SRC001 - Sheet unreachable: the spreadsheet backend could not be reached
//	SRC002 - Sheet malformed: the spreadsheet response could not be parsed
//	SRC003 - Request cancelled or timed out
//	CAT001 - Product not found
//	ADM001 - Order not found
//	ADM002 - Invalid order status
//	RATE001 - Too many requests
//	ERR000 - Fallback for anything unmatched
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so specific patterns come before general ones.

import (
	"errors"
	"strings"
)

// ErrNotFound marks a lookup for a product id that has no active match.
// The web layer turns it into a 404.
var ErrNotFound = errors.New("product not found")

// UserMessage provides user-friendly error information with a support code.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference code
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "product not found",
		msg: UserMessage{
			Message: "Product not found",
			Action:  "Check the product id and try again",
			Code:    "CAT001",
		},
	},
	{
		pattern: "order not found",
		msg: UserMessage{
			Message: "Order not found",
			Action:  "Check the order id and try again",
			Code:    "ADM001",
		},
	},
	{
		pattern: "invalid order status",
		msg: UserMessage{
			Message: "Unknown order status",
			Action:  "Use one of: pending, processing, completed, cancelled",
			Code:    "ADM002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "SRC003",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again in a few moments",
			Code:    "SRC003",
		},
	},
	{
		pattern: "parse sheet",
		msg: UserMessage{
			Message: "The catalog source returned unreadable data",
			Action:  "Check the spreadsheet's structure and sharing settings",
			Code:    "SRC002",
		},
	},
	{
		pattern: "fetch sheet",
		msg: UserMessage{
			Message: "The catalog source is unavailable",
			Action:  "Please try again in a few moments",
			Code:    "SRC001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "The catalog source is unavailable",
			Action:  "Please try again in a few moments",
			Code:    "SRC001",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Unmatched errors map to the generic ERR000 fallback; check application logs
// for the original error when users report that code.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}
