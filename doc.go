/* Command pluto runs programs written in Pluto, a small dynamically typed
scripting language.

Usage:

	pluto [flags] [file.pluto]
	pluto run FILE
	pluto tokens FILE
	pluto ast [--dot] FILE
	pluto repl
	pluto version

With a file, pluto runs it; without one it starts an interactive session
that keeps variables and functions between inputs. Settings come from a
TOML or YAML config file (see --config and $PLUTO_CONFIG) and are
overridden by flags. The exit status is 1 for usage, IO and tokenizing
errors, 2 for syntax errors and 3 for runtime errors.

Section 1: Values

Pluto has ints (64-bit; overflow is an OverflowError), floats, strings, bools, lists, function
records, and none, the result of statements that produce nothing. Lists are
shared by reference: after b = a, both names see a.add(x).

	x = 1
	name = "pluto"
	items = [1, "two", 3.0, true]

Strings are UTF-8 and len, indexing and array count characters, not
bytes. Source text must be valid UTF-8; input() reads each invalid byte as
U+FFFD.

Printing writes strings raw and everything else in a Python like form:
True, False, None, 2.0, [1, 'two'].

Section 2: Statements

A program is a sequence of statements with no separators; whitespace,
including newlines, is insignificant.

	x = 5 x++ print(x)
	arr = [1, 2, 3] arr[1] = 9
	arr.add(4)
	if (x > 3) { print("big") } else { print("small") }
	while (x > 0) { x-- }
	for(i = 0, i < 3) { print(i) i++ }

for runs its initializer once and then behaves exactly like while; it never
advances the loop variable by itself.

Assignment accepts any operator token in the place of =, so x := 1 and
x < 1 both assign 1. Comparisons do not chain: 1 < 2 < 3 is a syntax
error.

Section 3: Expressions

From loosest to tightest binding: one comparison (== != < > <= >= and or
xor), then + and -, then * and /, then atoms. / always yields a float.
+ also concatenates strings and lists, and * repeats them.

Built in forms:

	len(x)           length of a list or string
	type(x)          int, float, str, bool, list, function or NoneType
	int(x) str(x) bool(x) array(x)
	random(lo, hi)   uniform int in [lo, hi]
	input("prompt")  one line of input; the prompt must be a literal
	not x

Section 4: Functions

	func add(a:int, b:int) { return(a + b) }
	print(add(1, 2))

A function name must be declared before it is called in the program text,
though the body may call itself. Parameters may carry a type annotation,
checked on every call. A call sees every global binding, but when it
returns every name it bound or rebound is restored. Lists are shared, so
elements it added to or replaced in a list stay. The result is the value of a
return statement at the top of the body, else the value of the last
statement executed. A return nested inside an if or loop yields its value
without leaving the function.

Section 5: Inspecting

pluto tokens and pluto ast print the token stream and syntax tree of a
file; ast --dot writes a Graphviz graph. --debug logs both before running,
and --trace logs every evaluation step, marked > for statements, = for
values, @ for calls and ! for errors, with marks lengthened by call depth.
*/
package main
