package paxos

import (
	"fmt"

	"github.com/senutpal/paxosim/internal/network"
	"github.com/senutpal/paxosim/internal/trace"
)

// Server is the acceptor role: purely reactive, never times out, never
// retries. Its promise rule and acceptance rule together carry Paxos's
// entire safety argument.
type Server struct {
	id       int
	link     *network.Link[Message]
	tMax     Ticket
	tStore   Ticket
	command  Command
	decided  bool
}

// NewServer constructs an acceptor in its initial state: tMax=0, tStore=0,
// command=Undefined, decided=false.
func NewServer(id int, link *network.Link[Message]) *Server {
	return &Server{id: id, link: link, command: Undefined}
}

// Exec drains the server's inbox and processes every packet in arrival
// order. An acceptor is never supposed to receive Ok or Success (those flow
// only from acceptor to proposer); receiving one, or any other unrecognized
// variant, is a protocol violation and panics.
func (s *Server) Exec(tr trace.Trace) {
	for _, p := range s.link.DrainInbox() {
		tr.Record(trace.Action{Kind: trace.Receive, PeerID: p.Sender, Message: p.Content})

		switch p.Content.Kind {
		case Ask:
			s.handleAsk(tr, p.Sender, p.Content.Ticket)
		case Propose:
			s.handlePropose(tr, p.Sender, p.Content.ProposeTicket, p.Content.ProposeValue)
		case Execute:
			s.handleExecute(tr, p.Content.ExecuteValue)
		default:
			panic(fmt.Sprintf("paxos: server %d received unexpected message %s from %d", s.id, p.Content, p.Sender))
		}
	}
}

func (s *Server) handleAsk(tr trace.Trace, sender int, ticket Ticket) {
	ok := ticket > s.tMax
	tr.Record(trace.Action{
		Kind:      trace.Check,
		Condition: "received ticket > t_max",
		Values:    fmt.Sprintf("%d > %d", ticket, s.tMax),
		Result:    ok,
	})
	if !ok {
		return
	}
	s.tMax = ticket
	tr.Record(trace.Action{Kind: trace.Store, Var: "t_max", Value: fmt.Sprint(s.tMax)})

	reply := OkMsg(s.tStore, s.command)
	s.send(tr, sender, reply)
}

func (s *Server) handlePropose(tr trace.Trace, sender int, ticket Ticket, c Command) {
	ok := ticket == s.tMax
	tr.Record(trace.Action{
		Kind:      trace.Check,
		Condition: "received ticket == t_max",
		Values:    fmt.Sprintf("%d == %d", ticket, s.tMax),
		Result:    ok,
	})
	if !ok {
		return
	}
	s.command = c
	tr.Record(trace.Action{Kind: trace.Store, Var: "command", Value: c.String()})
	s.tStore = ticket
	tr.Record(trace.Action{Kind: trace.Store, Var: "t_store", Value: fmt.Sprint(s.tStore)})

	s.send(tr, sender, SuccessMsg())
}

func (s *Server) handleExecute(tr trace.Trace, c Command) {
	s.command = c
	s.decided = true
	tr.Record(trace.Action{Kind: trace.Decide, Command: c})
}

func (s *Server) send(tr trace.Trace, receiver int, m Message) {
	tr.Record(trace.Action{Kind: trace.Send, PeerID: receiver, Message: m})
	s.link.Enqueue(receiver, m)
}

// ID returns the server's node id.
func (s *Server) ID() int { return s.id }

// Command returns the acceptor's current command value.
func (s *Server) Command() Command { return s.command }

// Decided reports whether this server has received an Execute.
func (s *Server) Decided() bool { return s.decided }

// TMax exposes the highest ticket this server has promised, for tests
// checking property P4 (ticket monotonicity).
func (s *Server) TMax() Ticket { return s.tMax }

// TStore exposes the ticket this server last accepted under, for tests
// checking the t_store <= t_max invariant.
func (s *Server) TStore() Ticket { return s.tStore }

var _ Node = (*Server)(nil)
