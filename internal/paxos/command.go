// Package paxos implements the single-decree Paxos protocol's two state
// machines: Server (acceptor) and Client (proposer+learner). Both are purely
// reactive (see Node) and neither performs any I/O; they only read their
// Link's inbox and enqueue onto it.
package paxos

import "fmt"

// Command is the value proposers try to get the cluster to agree on. The
// zero value, Undefined, means "no command has ever been accepted" and is
// distinct from every Defined value.
type Command struct {
	defined bool
	value   bool
}

// Undefined is the initial command: no client has ever proposed anything
// the holder has heard about.
var Undefined = Command{}

// Defined wraps a boolean proposal value.
func Defined(v bool) Command {
	return Command{defined: true, value: v}
}

// IsDefined reports whether c carries a value, and if so what it is.
func (c Command) IsDefined() (bool, bool) {
	return c.value, c.defined
}

func (c Command) String() string {
	if !c.defined {
		return "⊥"
	}
	if c.value {
		return "1"
	}
	return "0"
}

var _ fmt.Stringer = Command{}
