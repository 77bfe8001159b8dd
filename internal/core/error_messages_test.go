package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"catbridge/internal/builder"
	"catbridge/internal/catalog"
	"catbridge/internal/rowio"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"no header", rowio.ErrNoHeader, "FILE001"},
		{"wrapped no header", fmt.Errorf("read upload.csv: %w", rowio.ErrNoHeader), "FILE001"},
		{"unknown platform", fmt.Errorf("%w: %q", ErrUnknownPlatform, "bigcommerce"), "PLT001"},
		{"combination limit", &catalog.CombinationLimitError{Count: 500, Limit: 100}, "CMB001"},
		{"unfinalized product", &builder.ErrNoVariants{Handle: "tee"}, "VAL001"},
		{"db down", errors.New("dial tcp: connection refused"), "DB001"},
		{"rate limited", errors.New("rate limit exceeded"), "RATE001"},
		{"unmatched", errors.New("something exploded"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapError(tt.err).Code; got != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got, tt.wantCode)
			}
		})
	}
}

func TestMapErrorNil(t *testing.T) {
	if got := MapError(nil); got != (UserMessage{}) {
		t.Errorf("MapError(nil) = %+v, want zero value", got)
	}
}

func TestFormatUserError(t *testing.T) {
	out := FormatUserError(rowio.ErrNoHeader)
	if !strings.Contains(out, "FILE001") {
		t.Errorf("formatted error missing code: %q", out)
	}
	if !strings.Contains(out, "header row") {
		t.Errorf("formatted error missing message: %q", out)
	}
}

func TestIsUserFacing(t *testing.T) {
	if !IsUserFacing(rowio.ErrNoHeader) {
		t.Error("known pattern should be user facing")
	}
	if IsUserFacing(errors.New("segfault in module")) {
		t.Error("unknown error should not be user facing")
	}
	if IsUserFacing(nil) {
		t.Error("nil error should not be user facing")
	}
}
