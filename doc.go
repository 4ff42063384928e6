/* Package main: cons -- an interactive stack console

cons interprets a small FORTH-like language. Source text is cut into
NUMBER and SYMBOL tokens; numbers are pushed onto the data stack, symbols are
looked up in the dictionary and either run (words) or pushed (data bound with
constant).

	3 4 + ?          ( prints the stack: one number, 7 )
	: double dup + ;
	21 double print  ( prints 42 )

Comments run from # or \ to the end of the line, or from ( to the next ).

Between ':' and ';' the console compiles: every token is appended to the body
of the word being defined, without being looked up, so a word may call words
defined later, and may call itself. Only ':' and ';' run while compiling.

Builtin words:

	.         clear the data stack
	?         print the data stack
	: name    start defining name
	;         end the definition
	dup drop swap over
	+ - mul div  arithmetic on numbers; + also joins two texts
	text      turn the top value into text
	print     pop and print a value
	emit      pop a number and print it as a character
	constant  pop a value and bind it to the next name
	words     print the dictionary

With -prelude (or "prelude: true" in the config file) every run first defines
a few words written in the language itself: nip tuck dup2 drop2 negate square
inc dec cr space and .. (print).

Every run starts from a fresh dictionary and stack, and any error ends it:
a lexical error, an unknown name, a stack underflow, or input ending inside a
definition.

The command line front end runs files, a line editing repl, or a watched
file; see "cons help".
*/
package main
