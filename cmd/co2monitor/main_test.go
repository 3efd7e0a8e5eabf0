package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c0pp3rdru1d/C02-Monitor/internal/cli"
	"github.com/c0pp3rdru1d/C02-Monitor/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		assert.NotNil(t, root)
		assert.NotEmpty(t, root.Use)
	})
}

func TestExtractExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error returns 0", err: nil, want: 0},
		{name: "fetch failure", err: &cli.FetchExitError{ExitCode: 2, Err: errors.New("network down")}, want: 2},
		{
			name: "wrapped fetch failure",
			err:  fmt.Errorf("outer: %w", &cli.FetchExitError{ExitCode: 2, Err: errors.New("parse")}),
			want: 2,
		},
		{
			name: "joined fetch failure",
			err:  errors.Join(errors.New("other"), &cli.FetchExitError{ExitCode: 3, Err: errors.New("custom")}),
			want: 3,
		},
		{name: "generic error falls through", err: errors.New("bad flag"), want: 1},
		{name: "config error", err: cli.ErrNotATerminal, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractExitCode(tt.err))
		})
	}
}
