package template

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&SyntaxError{Offset: 6, Msg: `unterminated "{{"`}, `template syntax error at offset 6: unterminated "{{"`},
		{&MissingVariableError{Name: "greet"}, "missing variable: greet"},
		{&UnknownFilterError{Name: "shout"}, "unknown filter: shout"},
		{&ContextDecodeError{Err: errors.New("bad")}, "context decode error: bad"},
	}
	for _, tt := range tests {
		assert.EqualError(t, tt.err, tt.want)
	}
}

func TestKind(t *testing.T) {
	cause := errors.New("cause")
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"syntax", &SyntaxError{}, KindSyntax},
		{"missing variable", &MissingVariableError{Name: "x"}, KindMissingVariable},
		{"unknown filter", &UnknownFilterError{Name: "f"}, KindUnknownFilter},
		{"context decode", &ContextDecodeError{Err: cause}, KindContextDecode},
		{"wrapped", fmt.Errorf("render: %w", &MissingVariableError{Name: "x"}), KindMissingVariable},
		{"foreign", cause, KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}

func TestContextDecodeError_Unwrap(t *testing.T) {
	cause := errors.New("cause")
	err := fmt.Errorf("execute: %w", &ContextDecodeError{Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrContextDecode)
	assert.NotErrorIs(t, err, ErrSyntax)
}
