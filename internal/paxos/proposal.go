package paxos

import "github.com/senutpal/paxosim/internal/trace"

// Ticket is a Paxos proposal number: non-negative, strictly increasing per
// client across entries to Client state 0. Acceptors always prefer the
// higher ticket.
type Ticket int

// Node is a single participant's reactive step function: drain whatever is
// currently in its inbox, process it, and return. Node never blocks and
// never initiates I/O outside of enqueuing onto its own Link.
type Node interface {
	// Exec processes the current round's inbox for this node, recording
	// every observed action to tr under the round/actor scope the caller
	// has already opened.
	Exec(tr trace.Trace)
	// Command returns this node's current command value.
	Command() Command
}
