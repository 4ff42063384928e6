package main

import (
	"context"
	"io"

	"github.com/ponyatov/cons/internal/flushio"
)

// VM interprets one source text. It is either interpreting, executing words
// as they are read, or compiling, appending every token to the body of the
// word named by the last ':' until the matching ';'.
type VM struct {
	logging

	lex *Lexer
	tok Token // last token read, for error positions
	out flushio.WriteFlusher

	primary flushio.WriteFlusher
	tees    []flushio.WriteFlusher

	// The data stack holds values between words.
	stack Seq

	// The dictionary binds names to words and data; the words themselves
	// live in an arena so that a definition can name itself.
	dict Dict
	words

	compiling WordID // definition target, 0 while interpreting
	native    string // builtin in progress, for stack errors

	// The return stack tracks words under execution, each with the index
	// of its next body object.
	rstack   []frame
	retLimit int

	prelude bool
	ready   bool
}

type frame struct {
	word WordID
	next int
}

func (vm *VM) init() {
	if vm.ready {
		return
	}
	vm.ready = true
	for _, bi := range builtins {
		id := vm.alloc(bi.name, Token{}, bi.fn)
		vm.dict.Set(bi.name, Entry{
			Object: Object{Tag: TagNative, Value: bi.name, Word: id},
			Mode:   bi.mode,
		})
	}
}

func (vm *VM) run(ctx context.Context) {
	vm.init()
	if vm.prelude {
		lex := vm.lex
		vm.lex = NewLexer("prelude", prelude)
		vm.interpretAll(ctx)
		vm.lex = lex
	}
	vm.interpretAll(ctx)
	vm.haltif(vm.out.Flush())
}

// interpretAll consumes every token of the current lexer.
func (vm *VM) interpretAll(ctx context.Context) {
	for {
		vm.haltif(ctx.Err())
		tok, ok := vm.scan()
		if !ok {
			break
		}
		vm.token(tok)
		vm.exec(ctx)
	}
	if vm.compiling != 0 {
		vm.halt(&TokenError{Token: vm.word(vm.compiling).at, Err: ErrUnterminatedDefinition})
	}
}

func (vm *VM) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if vm.out != nil {
			if ferr := vm.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()
	vm.logf("#", "halt error: %v", err)
	panic(haltError{err})
}

func (vm *VM) haltif(err error) {
	if err != nil {
		vm.halt(err)
	}
}

// scan reads the next raw token, without lookup or execution.
func (vm *VM) scan() (Token, bool) {
	tok, err := vm.lex.Next()
	if err == io.EOF {
		return Token{}, false
	}
	vm.haltif(err)
	vm.tok = tok
	vm.logf(">", "%v", tok)
	return tok, true
}

// token dispatches one token from the source.
func (vm *VM) token(tok Token) {
	obj := tok.Object()
	if vm.compiling == 0 {
		vm.interpret(obj)
		return
	}
	if obj.Tag == TagSymbol {
		if ent, err := vm.dict.Get(obj.Value); err == nil && ent.Mode&Immediate != 0 {
			vm.call(ent.Object)
			return
		}
	}
	def := vm.word(vm.compiling)
	vm.logf(":", "%v += %v", def.name, obj)
	def.body.Push(obj)
}

// interpret processes one object the same way for source tokens and for the
// body of an executing word.
func (vm *VM) interpret(obj Object) {
	switch obj.Tag {
	case TagNumber, TagText, TagVector, TagNative:
		vm.push(obj)
	case TagSymbol:
		ent, err := vm.dict.Get(obj.Value)
		if err != nil {
			vm.halt(vm.errorf(obj, err))
		}
		if ent.Mode&Execute != 0 {
			vm.call(ent.Object)
		} else {
			vm.push(ent.Object)
		}
	default:
		vm.halt(vm.errorf(obj, tagError(obj.Tag)))
	}
}

func (vm *VM) call(obj Object) {
	switch obj.Tag {
	case TagNative:
		vm.logf("@", "native %v", obj.Value)
		defer func(prior string) { vm.native = prior }(vm.native)
		vm.native = obj.Value
		vm.word(obj.Word).native(vm)
	case TagVector:
		if lim := vm.retLimit; lim != 0 && len(vm.rstack) >= lim {
			vm.halt(vm.errorf(Symbol(obj.Value), ErrRetOverflow))
		}
		vm.logf("@", "call %v", obj.Value)
		vm.rstack = append(vm.rstack, frame{word: obj.Word})
	default:
		vm.push(obj)
	}
}

// exec runs called words until the return stack is empty.
func (vm *VM) exec(ctx context.Context) {
	if len(vm.rstack) == 0 {
		return
	}
	if vm.logfn != nil {
		defer vm.withLogPrefix("	")()
	}
	for len(vm.rstack) > 0 {
		vm.step()
		vm.haltif(ctx.Err())
	}
}

func (vm *VM) step() {
	fr := &vm.rstack[len(vm.rstack)-1]
	body := &vm.word(fr.word).body
	if fr.next >= body.Len() {
		vm.rstack = vm.rstack[:len(vm.rstack)-1]
		return
	}
	obj := body.At(fr.next)
	fr.next++
	vm.interpret(obj)
}

// executing names the word whose body is running, if any.
func (vm *VM) executing() string {
	if i := len(vm.rstack) - 1; i >= 0 {
		return vm.word(vm.rstack[i].word).name
	}
	return ""
}

// errorf attributes err to obj: source tokens keep their position, body
// objects are reported at the source token that started the call.
func (vm *VM) errorf(obj Object, err error) error {
	tok := vm.tok
	tok.Text = obj.Value
	return &TokenError{Token: tok, Word: vm.executing(), Err: err}
}

func (vm *VM) push(obj Object) {
	vm.stack.Push(obj)
}

func (vm *VM) pop() Object {
	obj, err := vm.stack.Pop()
	if err != nil {
		vm.halt(vm.errorf(Symbol(vm.native), err))
	}
	return obj
}
