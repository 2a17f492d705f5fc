package parser

// funcNames is the registry of function names declared so far, kept in
// declaration order so that a failed parse can be rolled back.
type funcNames struct {
	names []string
	index map[string]int
}

func (fn funcNames) known(name string) bool {
	_, defined := fn.index[name]
	return defined
}

func (fn *funcNames) declare(name string) {
	if fn.known(name) {
		return
	}
	if fn.index == nil {
		fn.index = make(map[string]int)
	}
	fn.index[name] = len(fn.names)
	fn.names = append(fn.names, name)
}

// truncate forgets every name declared after the first n.
func (fn *funcNames) truncate(n int) {
	for _, name := range fn.names[n:] {
		delete(fn.index, name)
	}
	fn.names = fn.names[:n]
}

func (fn funcNames) list() []string {
	return append([]string(nil), fn.names...)
}
