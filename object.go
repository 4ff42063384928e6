package main

import (
	"fmt"
	"strconv"
)

// Tag discriminates the variants of Object.
type Tag uint8

// Object variants.
const (
	TagNumber Tag = iota + 1 // numeric literal, Value holds the lexeme
	TagText                  // string payload
	TagVector                // user-defined word, Word is its arena handle
	TagNative                // builtin word, Word is its arena handle
	TagSymbol                // name not yet resolved against the dictionary
)

func (tag Tag) String() string {
	switch tag {
	case TagNumber:
		return "number"
	case TagText:
		return "text"
	case TagVector:
		return "vector"
	case TagNative:
		return "native"
	case TagSymbol:
		return "symbol"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(tag))
	}
}

// WordID is a handle into the word arena; 0 is no word.
type WordID uint

// Object is the single value type of the console: stack entries, word bodies,
// and dictionary bindings are all Objects.
type Object struct {
	Tag   Tag
	Value string
	Word  WordID
}

// Number returns a Number object holding the literal lexeme.
func Number(lexeme string) Object { return Object{Tag: TagNumber, Value: lexeme} }

// NumberOf returns a Number object for a computed value.
func NumberOf(f float64) Object {
	return Number(strconv.FormatFloat(f, 'g', -1, 64))
}

// Text returns a Text object.
func Text(s string) Object { return Object{Tag: TagText, Value: s} }

// Symbol returns an unresolved name.
func Symbol(name string) Object { return Object{Tag: TagSymbol, Value: name} }

func (obj Object) String() string {
	return fmt.Sprintf("<%v:%v>", obj.Tag, obj.Value)
}

// Float parses a Number object's lexeme.
func (obj Object) Float() (float64, error) {
	if obj.Tag != TagNumber {
		return 0, ErrTypeMismatch
	}
	return strconv.ParseFloat(obj.Value, 64)
}

// Seq is an ordered, append-only-with-pop sequence of objects: the data
// stack of a VM, and the body of every Vector word.
type Seq struct {
	objs []Object
}

// Push appends obj, returning the sequence for chaining.
func (seq *Seq) Push(obj Object) *Seq {
	seq.objs = append(seq.objs, obj)
	return seq
}

// Pop removes and returns the last object.
func (seq *Seq) Pop() (Object, error) {
	i := len(seq.objs) - 1
	if i < 0 {
		return Object{}, ErrStackUnderflow
	}
	obj := seq.objs[i]
	seq.objs = seq.objs[:i]
	return obj, nil
}

// Top returns the last object without removing it.
func (seq *Seq) Top() (Object, error) {
	i := len(seq.objs) - 1
	if i < 0 {
		return Object{}, ErrStackUnderflow
	}
	return seq.objs[i], nil
}

func (seq *Seq) Len() int { return len(seq.objs) }

// At returns the i-th object from the bottom.
func (seq *Seq) At(i int) Object { return seq.objs[i] }

// Clear drops every object.
func (seq *Seq) Clear() { seq.objs = seq.objs[:0] }

// Objects returns a copy of the sequence, bottom first.
func (seq *Seq) Objects() []Object {
	objs := make([]Object, len(seq.objs))
	copy(objs, seq.objs)
	return objs
}
