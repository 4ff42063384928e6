package main

import (
	"fmt"
	"io"
)

// vmDumper writes the tree form of a VM's stack and dictionary:
//
//	<stack:2>
//		0: <number:3>
//		1: <text:hi>
//	<dict:1>
//		double = <vector:double> execute
//			0: <symbol:dup>
//			1: <symbol:+>
type vmDumper struct {
	vm  *VM
	out io.Writer
}

func (dump vmDumper) dump() {
	dump.dumpStack()
	dump.dumpDict()
}

func (dump vmDumper) dumpStack() {
	fmt.Fprintf(dump.out, "<stack:%v>\n", dump.vm.stack.Len())
	for i := 0; i < dump.vm.stack.Len(); i++ {
		fmt.Fprintf(dump.out, "\t%v: %v\n", i, dump.vm.stack.At(i))
	}
}

func (dump vmDumper) dumpDict() {
	fmt.Fprintf(dump.out, "<dict:%v>\n", dump.vm.dict.Len())
	for _, name := range dump.vm.dict.Names() {
		ent, _ := dump.vm.dict.Get(name)
		fmt.Fprintf(dump.out, "\t%v = %v %v\n", name, ent.Object, ent.Mode)
		if ent.Tag != TagVector {
			continue
		}
		if def := dump.vm.word(ent.Word); def != nil {
			for i := 0; i < def.body.Len(); i++ {
				fmt.Fprintf(dump.out, "\t\t%v: %v\n", i, def.body.At(i))
			}
		}
	}
}

// Snapshot is a structured copy of a VM's state, as carried by reports.
type Snapshot struct {
	Stack []string            `yaml:"stack"`
	Words map[string][]string `yaml:"words,omitempty"`
}

// Snapshot captures the stack and every user-defined word body.
func (vm *VM) Snapshot() Snapshot {
	snap := Snapshot{Stack: make([]string, 0, vm.stack.Len())}
	for _, obj := range vm.stack.Objects() {
		snap.Stack = append(snap.Stack, obj.String())
	}
	for _, name := range vm.dict.Names() {
		ent, _ := vm.dict.Get(name)
		if ent.Tag != TagVector {
			continue
		}
		def := vm.word(ent.Word)
		body := make([]string, 0, def.body.Len())
		for _, obj := range def.body.Objects() {
			body = append(body, obj.String())
		}
		if snap.Words == nil {
			snap.Words = make(map[string][]string)
		}
		snap.Words[name] = body
	}
	return snap
}
