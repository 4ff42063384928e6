package main

import (
	"io"

	"github.com/ponyatov/cons/internal/flushio"
)

// VMOption configures a VM under New.
type VMOption interface{ apply(vm *VM) }

var defaultOptions = VMOptions(
	withOutput(io.Discard),
)

// VMOptions combines any number of options into one, skipping nils.
func VMOptions(opts ...VMOption) VMOption {
	var res vmOptions
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case vmOptions:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

type vmOptions []VMOption

func (opts vmOptions) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type sourceOption struct{ name, src string }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type retLimitOption int
type foldCaseOption bool
type preludeOption bool

func withSource(name, src string) sourceOption { return sourceOption{name, src} }
func withOutput(w io.Writer) outputOption      { return outputOption{w} }
func withTee(w io.Writer) teeOption            { return teeOption{w} }
func withRetLimit(limit int) retLimitOption    { return retLimitOption(limit) }
func withFoldCase(fold bool) foldCaseOption    { return foldCaseOption(fold) }
func withPrelude(load bool) preludeOption      { return preludeOption(load) }

func (o sourceOption) apply(vm *VM) {
	vm.lex = NewLexer(o.name, o.src)
}

// Output and tee options may come in any order: the primary output is
// replaced by the last output option, while every tee is kept.
func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.primary = flushio.NewWriteFlusher(o.Writer)
	vm.out = flushio.WriteFlushers(append([]flushio.WriteFlusher{vm.primary}, vm.tees...)...)
}

func (o teeOption) apply(vm *VM) {
	vm.tees = append(vm.tees, flushio.NewWriteFlusher(o.Writer))
	vm.out = flushio.WriteFlushers(append([]flushio.WriteFlusher{vm.primary}, vm.tees...)...)
}

func (lim retLimitOption) apply(vm *VM) {
	vm.retLimit = int(lim)
}

func (fold foldCaseOption) apply(vm *VM) {
	vm.dict.FoldCase = bool(fold)
}

func (load preludeOption) apply(vm *VM) {
	vm.prelude = bool(load)
}
