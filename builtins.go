package main

import (
	"io"
	"math"

	"github.com/ponyatov/cons/internal/runeio"
)

type builtin struct {
	name string
	mode Mode
	fn   func(vm *VM)
}

// builtins are bound into every new VM, in this order.
var builtins = []builtin{
	// Symbol   Function
	//    .     clear the data stack
	//    ?     print the data stack, leaving it as is
	//    :     read a name and start compiling a word by that name
	//    ;     finish the word being compiled
	{".", Execute, (*VM).clear},
	{"?", Execute, (*VM).show},
	{":", Execute | Immediate, (*VM).define},
	{";", Execute | Immediate, (*VM).end},

	{"dup", Execute, (*VM).dup},
	{"drop", Execute, (*VM).drop},
	{"swap", Execute, (*VM).swap},
	{"over", Execute, (*VM).over},

	{"+", Execute, (*VM).add},
	{"-", Execute, (*VM).sub},
	{"mul", Execute, (*VM).mul},
	{"div", Execute, (*VM).div},

	{"text", Execute, (*VM).text},
	{"print", Execute, (*VM).print},
	{"emit", Execute, (*VM).emit},
	{"constant", Execute, (*VM).constant},
	{"words", Execute, (*VM).listWords},
}

func (vm *VM) clear() { vm.stack.Clear() }

func (vm *VM) show() { vmDumper{vm: vm, out: vm.out}.dumpStack() }

func (vm *VM) listWords() { vmDumper{vm: vm, out: vm.out}.dumpDict() }

// define fetches the next raw token as the name of a new word, and binds it
// before any of its body is compiled.
func (vm *VM) define() {
	tok, ok := vm.scan()
	if !ok {
		vm.halt(&TokenError{Token: vm.tok, Err: ErrUnterminatedDefinition})
	}
	vm.checkBindable(tok)
	id := vm.alloc(tok.Text, tok, nil)
	vm.dict.Set(tok.Text, Entry{
		Object: Object{Tag: TagVector, Value: tok.Text, Word: id},
		Mode:   Execute,
	})
	vm.logf(":", "define %v", tok.Text)
	vm.compiling = id
}

func (vm *VM) end() {
	if vm.compiling != 0 {
		vm.logf(":", "end %v", vm.word(vm.compiling).name)
	}
	vm.compiling = 0
}

func (vm *VM) dup() {
	obj := vm.pop()
	vm.push(obj)
	vm.push(obj)
}

func (vm *VM) drop() { vm.pop() }

func (vm *VM) swap() {
	b, a := vm.pop(), vm.pop()
	vm.push(b)
	vm.push(a)
}

func (vm *VM) over() {
	b, a := vm.pop(), vm.pop()
	vm.push(a)
	vm.push(b)
	vm.push(a)
}

func (vm *VM) add() {
	b, a := vm.pop(), vm.pop()
	if a.Tag == TagText && b.Tag == TagText {
		vm.push(Text(a.Value + b.Value))
		return
	}
	vm.push(NumberOf(vm.float(a) + vm.float(b)))
}

func (vm *VM) sub() { vm.arith(func(a, b float64) float64 { return a - b }) }
func (vm *VM) mul() { vm.arith(func(a, b float64) float64 { return a * b }) }
func (vm *VM) div() { vm.arith(func(a, b float64) float64 { return a / b }) }

func (vm *VM) arith(op func(a, b float64) float64) {
	b, a := vm.pop(), vm.pop()
	vm.push(NumberOf(op(vm.float(a), vm.float(b))))
}

func (vm *VM) float(obj Object) float64 {
	f, err := obj.Float()
	if err != nil {
		if obj.Tag == TagNumber {
			// out of range literals still parse to ±Inf
			return f
		}
		vm.halt(vm.errorf(Symbol(vm.native), ErrTypeMismatch))
	}
	return f
}

// text converts the top object into Text of its value.
func (vm *VM) text() { vm.push(Text(vm.pop().Value)) }

func (vm *VM) print() {
	_, err := io.WriteString(vm.out, vm.pop().Value+"\n")
	vm.haltif(err)
}

// emit writes the top number as a rune.
func (vm *VM) emit() {
	f := vm.float(vm.pop())
	r := rune(-1)
	if !math.IsNaN(f) && f >= 0 && f <= math.MaxInt32 {
		r = rune(f)
	}
	_, err := runeio.WriteANSIRune(vm.out, r)
	vm.haltif(err)
}

// constant reads a name and binds the top object to it as data.
func (vm *VM) constant() {
	obj := vm.pop()
	tok, ok := vm.scan()
	if !ok {
		vm.halt(vm.errorf(Symbol(vm.native), ErrMissingName))
	}
	vm.checkBindable(tok)
	vm.logf(":", "constant %v = %v", tok.Text, obj)
	vm.dict.Set(tok.Text, Entry{Object: obj})
}

// checkBindable refuses to rebind immediate words, since only they can end a
// definition once compiling starts.
func (vm *VM) checkBindable(tok Token) {
	if ent, err := vm.dict.Get(tok.Text); err == nil && ent.Mode&Immediate != 0 {
		vm.halt(&TokenError{Token: tok, Err: ErrReservedName})
	}
}
