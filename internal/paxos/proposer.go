package paxos

import (
	"fmt"

	"github.com/senutpal/paxosim/internal/network"
	"github.com/senutpal/paxosim/internal/rng"
	"github.com/senutpal/paxosim/internal/trace"
)

// WaitDuration is the client's retry timeout, in rounds, reset on every
// state transition.
const WaitDuration = 50

// Client state values. State 3 is terminal: the machine is still Exec'd
// every round (it drains its inbox) but emits no further actions. It stays
// reachable so a client keeps absorbing stray messages instead of leaving
// them stranded in its link's buffer.
const (
	StateAskTicket = iota
	StateCollectOks
	StateCollectSuccesses
	StateDone
)

// ServerList is the shared, read-only view of acceptor node ids every
// client addresses. It is populated once at construction and never
// mutated afterward, so every client can safely share the same backing
// array instead of holding its own copy.
type ServerList []int

// Client is the proposer+learner role: it drives the protocol forward
// through four states and discovers the outcome by observing majorities,
// rather than through a distinct learner process (see learner.go).
type Client struct {
	id           int
	link         *network.Link[Message]
	servers      ServerList
	state        int
	curTicket    Ticket
	command      Command
	waitDuration int
	inbox        []network.Packet[Message]
}

// NewClient constructs a proposer with an explicit initial command.
func NewClient(id int, link *network.Link[Message], servers ServerList, command Command) *Client {
	return &Client{id: id, link: link, servers: servers, command: command}
}

// NewClientRand constructs a proposer with a randomized initial command,
// drawn as Defined(rng.Bool()).
func NewClientRand(id int, link *network.Link[Message], servers ServerList, src rng.Source) *Client {
	return NewClient(id, link, servers, Defined(src.Bool()))
}

// ID returns the client's node id.
func (c *Client) ID() int { return c.id }

// Command returns the client's current command value.
func (c *Client) Command() Command { return c.command }

// Exec advances the client's state machine by one round. Any state value
// outside [0,3] is unreachable and indicates a programming error.
func (c *Client) Exec(tr trace.Trace) {
	c.inbox = append(c.inbox, c.link.DrainInbox()...)

	switch c.state {
	case StateAskTicket:
		c.execAskTicket(tr)
	case StateCollectOks:
		c.execCollect(tr, Ok, StateCollectSuccesses, c.proposeToQuorum)
	case StateCollectSuccesses:
		c.execCollect(tr, Success, StateDone, c.executeToAll)
	case StateDone:
		c.inbox = nil
	default:
		panic(fmt.Sprintf("paxos: client %d reached unreachable state %d", c.id, c.state))
	}
}

func (c *Client) execAskTicket(tr trace.Trace) {
	c.inbox = nil
	c.curTicket++
	tr.Record(trace.Action{Kind: trace.Store, Var: "t", Value: fmt.Sprint(c.curTicket)})

	for _, serverID := range c.servers {
		m := AskMsg(c.curTicket)
		c.send(tr, serverID, m)
	}
	c.transition(tr, StateAskTicket, StateCollectOks)
}

// execCollect implements the shared shape of states 1 and 2: filter the
// inbox to the expected message kind, check for a strict majority, and
// either advance (invoking onQuorum first) or apply the retry-on-timeout
// rule back to state 0.
func (c *Client) execCollect(tr trace.Trace, want Kind, next int, onQuorum func(tr trace.Trace)) {
	filtered := c.inbox[:0]
	for _, p := range c.inbox {
		if p.Content.Kind == want {
			filtered = append(filtered, p)
		}
	}
	c.inbox = filtered

	for _, p := range c.inbox {
		tr.Record(trace.Action{Kind: trace.Receive, PeerID: p.Sender, Message: p.Content})
	}

	serverCount := len(c.servers)
	quorum := hasQuorum(len(c.inbox), serverCount)
	tr.Record(trace.Action{
		Kind:      trace.Check,
		Condition: quorumCondition(want),
		Values:    fmt.Sprintf("%d > %d", len(c.inbox), serverCount/2),
		Result:    quorum,
	})

	if quorum {
		onQuorum(tr)
		c.transition(tr, c.state, next)
		return
	}

	if c.waitDuration == 0 {
		c.transition(tr, c.state, StateAskTicket)
		return
	}
	c.waitDuration--
}

func quorumCondition(want Kind) string {
	if want == Ok {
		return "#received ok's > #nr servers / 2"
	}
	return "#received successes > #nr servers / 2"
}

// proposeToQuorum implements the preservation rule: adopt the command from
// the highest-t_store Ok received with t_store > 0, if any, then Propose
// the (possibly adopted) command to every acceptor that answered Ok.
func (c *Client) proposeToQuorum(tr trace.Trace) {
	var maxTStore Ticket
	for _, p := range c.inbox {
		tStore, cmd := p.Content.TicketStore, p.Content.OkCommand
		if tStore > 0 && tStore > maxTStore {
			maxTStore = tStore
			tr.Record(trace.Action{Kind: trace.Store, Var: "command", Value: cmd.String()})
			c.command = cmd
		}
	}

	for _, p := range c.inbox {
		m := ProposeMsg(c.curTicket, c.command)
		c.send(tr, p.Sender, m)
	}
}

func (c *Client) executeToAll(tr trace.Trace) {
	for _, serverID := range c.servers {
		m := ExecuteMsg(c.command)
		c.send(tr, serverID, m)
	}
}

func (c *Client) transition(tr trace.Trace, from, to int) {
	tr.Record(trace.Action{Kind: trace.StateChange, From: from, To: to})
	c.state = to
	c.waitDuration = WaitDuration
}

func (c *Client) send(tr trace.Trace, receiver int, m Message) {
	tr.Record(trace.Action{Kind: trace.Send, PeerID: receiver, Message: m})
	c.link.Enqueue(receiver, m)
}

// State exposes the client's current state value, for tests.
func (c *Client) State() int { return c.state }

// CurTicket exposes the client's current ticket, for tests checking that a
// client's cur_ticket is strictly increasing across entries to state 0.
func (c *Client) CurTicket() Ticket { return c.curTicket }

var _ Node = (*Client)(nil)
