package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStepID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		wantErr error
	}{
		{"apt:update", nil},
		{"apt:build-deps", nil},
		{"python:versions", nil},
		{"pipx:tool:ruff", nil},
		{"pipx:tool:zope.interface", nil},
		{"cargo:launcher", nil},
		{"  asdf:install  ", nil},
		{"", ErrEmptyStepID},
		{"   ", ErrEmptyStepID},
		{":apt", ErrInvalidStepID},
		{"apt:", ErrInvalidStepID},
		{"apt::update", ErrInvalidStepID},
		{"apt:up date", ErrInvalidStepID},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			id, err := NewStepID(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, id.IsZero())
				return
			}
			assert.NoError(t, err)
			assert.False(t, id.IsZero())
		})
	}
}

func TestStepID_Provider(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pipx", MustNewStepID("pipx:tool:ruff").Provider())
	assert.Equal(t, "apt", MustNewStepID("apt").Provider())
	assert.Equal(t, "asdf:install", MustNewStepID(" asdf:install").String())
}

func TestMustNewStepID_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustNewStepID("bad id") })
}
