package interp

import (
	"fmt"
	"strings"

	"github.com/lamp100307/Pluto/ast"
)

// Trace marks prefixed to every log record.
const (
	markStmt  = ">"
	markValue = "="
	markCall  = "@"
	markError = "!"
)

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

// logf records one trace line; marks are padded by repetition so nested
// call depth reads as a longer mark.
func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		mark = strings.Repeat(mark[:1], n) + mark
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}

func nodeName(node ast.Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", node), "*ast.")
}
