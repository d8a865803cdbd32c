// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

// Package testcontext provides contexts for tests.
package testcontext

import (
	"context"
	"testing"

	"zombiezen.com/go/log/testlog"
)

// New returns a cancelable context derived from the test's context
// that routes package log output to the test's log.
func New(tb testing.TB) (context.Context, context.CancelFunc) {
	return context.WithCancel(testlog.WithTB(tb.Context(), tb))
}
