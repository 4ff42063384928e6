package main

import (
	"context"
	"errors"
	"io"

	"github.com/ponyatov/cons/internal/panicerr"
)

// New returns a VM with a fresh dictionary and data stack.
func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	if vm.lex == nil {
		vm.lex = NewLexer("", "")
	}
	vm.init()
	return &vm
}

// Run interprets the whole source, returning the first failure. Panics are
// recovered, so a broken builtin fails only this run.
func (vm *VM) Run(ctx context.Context) error {
	err := panicerr.Recover("VM", func() error {
		vm.run(ctx)
		return nil
	})
	var halt haltError
	if errors.As(err, &halt) {
		err = halt.error
	}
	return err
}

// Eval runs src in a fresh VM writing into out, returning that VM for
// inspection along with any run failure.
func Eval(ctx context.Context, name, src string, out io.Writer, opts ...VMOption) (*VM, error) {
	vm := New(VMOptions(opts...), WithSource(name, src), WithOutput(out))
	return vm, vm.Run(ctx)
}

func WithSource(name, src string) VMOption { return withSource(name, src) }
func WithOutput(w io.Writer) VMOption      { return withOutput(w) }
func WithTee(w io.Writer) VMOption         { return withTee(w) }
func WithRetLimit(limit int) VMOption      { return withRetLimit(limit) }
func WithFoldCase(fold bool) VMOption      { return withFoldCase(fold) }
func WithPrelude(load bool) VMOption       { return withPrelude(load) }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
