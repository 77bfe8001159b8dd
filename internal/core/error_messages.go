package core

// error_messages.go maps technical errors onto user-facing messages
// with stable codes, so a support request can quote a code instead of
// a stack trace.
//
// Error codes are grouped by category:
//
//	FILE001 - No header: the file has no recognizable header row
//	FILE002 - Invalid CSV: the file could not be parsed as CSV
//	FILE003 - Empty file: the uploaded file contains no data rows
//	FILE004 - No file: no file was provided with the request
//
//	PLT001  - Unknown platform: the requested platform is not registered
//
//	CMB001  - Combination overflow: the option matrix exceeds the
//	          configured variant ceiling
//
//	VAL001  - Not finalized: a product reached building with no variants
//
//	DB001   - Connection failed: the conversion log is unreachable
//	DB002   - Timeout: a database operation timed out
//
//	RATE001 - Rate limited: too many requests from one client
//
//	ERR000  - Fallback when no pattern matches; check the logs for the
//	          original error
//
// Patterns are matched case-insensitively with strings.Contains; the
// first match wins, so specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// File errors (FILE001-FILE004)
	{
		pattern: "no header row",
		msg: UserMessage{
			Message: "The file has no header row",
			Action:  "Export the catalog again and keep the first row of column names",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "The file is not a valid CSV",
			Action:  "Ensure the file is comma-separated and saved as UTF-8",
			Code:    "FILE002",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Upload a catalog export with at least one product row",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Attach a catalog CSV to the request",
			Code:    "FILE004",
		},
	},

	// Platform errors (PLT001)
	{
		pattern: "unknown platform",
		msg: UserMessage{
			Message: "The requested platform is not supported",
			Action:  "List the supported platforms and pick one of their keys",
			Code:    "PLT001",
		},
	},

	// Combination errors (CMB001)
	{
		pattern: "exceeding the limit",
		msg: UserMessage{
			Message: "A product's options multiply into too many variants",
			Action:  "Reduce the option values or raise the combination ceiling",
			Code:    "CMB001",
		},
	},

	// Validation errors (VAL001)
	{
		pattern: "has no variants",
		msg: UserMessage{
			Message: "A product reached building without any variants",
			Action:  "Convert the file first, then build from the conversion result",
			Code:    "VAL001",
		},
	},

	// Database errors (DB001-DB002)
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "The conversion log database is unreachable",
			Action:  "Please try again in a few moments",
			Code:    "DB001",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "The operation timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "DB002",
		},
	},

	// Rate limiting (RATE001)
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and
// returns the first match, or the ERR000 fallback.
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

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether an error matches a known pattern, as
// opposed to falling through to the generic ERR000 message.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
