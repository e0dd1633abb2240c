package errors

import (
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"plain registered error": {
			err:      ErrNotFound,
			wantCode: ErrNotFound.code,
			wantLog:  "not found",
		},
		"wrapped registered error": {
			err:      Wrap(ErrNotExpired, "box"),
			wantCode: ErrNotExpired.code,
			wantLog:  "box: deadline not reached",
		},
		"nil is empty message": {
			err:      nil,
			wantCode: 0,
			wantLog:  "",
		},
		"nil registered error is not an error": {
			err:      (*Error)(nil),
			wantCode: 0,
			wantLog:  "",
		},
		"stdlib is generic message": {
			err:      io.EOF,
			wantCode: 1,
			wantLog:  "internal error",
		},
		"wrapped stdlib is only a generic message": {
			err:      Wrap(io.EOF, "cannot read file"),
			wantCode: 1,
			wantLog:  "internal error",
		},
		"stdlib in debug mode keeps the message": {
			err:      io.EOF,
			debug:    true,
			wantCode: 1,
			wantLog:  "EOF",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := Info(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestInfoDebugStacktrace(t *testing.T) {
	_, log := Info(Wrap(ErrTransfer, "vault"), true)
	if !strings.HasPrefix(log, "vault: asset transfer failed") {
		t.Fatalf("unexpected log: %q", log)
	}
	if !strings.Contains(log, "info_test.go") {
		t.Fatalf("stack trace missing: %q", log)
	}
}

func TestRedact(t *testing.T) {
	cases := map[string]struct {
		err     error
		changed error
	}{
		"panic looks the same": {
			err:     ErrPanic,
			changed: fmt.Errorf(internalLog),
		},
		"registered error untouched": {
			err: ErrUnauthorized,
		},
		"wrapped registered error untouched": {
			err: Wrap(ErrPaused, "lockbox"),
		},
		"stdlib error redacted": {
			err:     fmt.Errorf("database path /var/lib/x"),
			changed: fmt.Errorf(internalLog),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			redacted := Redact(tc.err, false)
			if tc.changed == nil {
				if redacted != tc.err {
					t.Fatalf("error must not be changed, got %v", redacted)
				}
				return
			}
			if redacted.Error() != tc.changed.Error() {
				t.Fatalf("want %q, got %q", tc.changed, redacted)
			}
			if debug := Redact(tc.err, true); debug != tc.err {
				t.Fatal("debug mode must not redact")
			}
		})
	}
}
