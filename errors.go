package main

import (
	"errors"
	"fmt"

	"github.com/ponyatov/cons/internal/runeio"
)

// Every one of these is fatal to the run that raises it.
var (
	ErrLexical                = errors.New("lexical error")
	ErrNameNotFound           = errors.New("name not found")
	ErrStackUnderflow         = errors.New("stack underflow")
	ErrUnterminatedDefinition = errors.New("unterminated definition")
	ErrMissingName            = errors.New("missing name")
	ErrReservedName           = errors.New("reserved name")
	ErrTypeMismatch           = errors.New("type mismatch")
	ErrRetOverflow            = errors.New("return stack overflow")
)

// TokenError ties a run failure to the token that triggered it. Word names
// the definition being executed when the failure happened inside one.
type TokenError struct {
	Token Token
	Word  string
	Err   error
}

func (te *TokenError) Error() string {
	var prefix string
	if te.Token.Pos != (Pos{}) {
		prefix = te.Token.Pos.String() + ": "
	}
	if te.Word != "" {
		prefix += "in " + te.Word + ": "
	}
	if te.Token.Text == "" {
		return prefix + te.Err.Error()
	}
	return fmt.Sprintf("%v%v %q", prefix, te.Err, runeio.Printable(te.Token.Text))
}

func (te *TokenError) Unwrap() error { return te.Err }

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}

func (err haltError) Unwrap() error { return err.error }

type tagError Tag

func (tag tagError) Error() string { return fmt.Sprintf("invalid object tag %v", uint8(tag)) }
