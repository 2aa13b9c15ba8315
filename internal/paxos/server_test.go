package paxos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senutpal/paxosim/internal/network"
	"github.com/senutpal/paxosim/internal/trace"
)

func newServerWithPeer() (*Server, *network.Link[Message]) {
	net := network.New[Message](false, 2, constZeroSource{}, network.MaxLatency)
	s := NewServer(0, net.Link(0))
	return s, net.Link(1)
}

// constZeroSource is a deterministic rng.Source stub for tests that don't
// exercise randomness.
type constZeroSource struct{}

func (constZeroSource) Intn(int) int { return 0 }
func (constZeroSource) Bool() bool   { return false }

func TestServerGrantsHigherTicket(t *testing.T) {
	s, _ := newServerWithPeer()
	deliver(s, 1, AskMsg(5))
	s.Exec(trace.Null{})

	assert.Equal(t, Ticket(5), s.TMax())
}

func TestServerRejectsStaleAsk(t *testing.T) {
	s, _ := newServerWithPeer()
	deliver(s, 1, AskMsg(5))
	s.Exec(trace.Null{})
	deliver(s, 1, AskMsg(3))
	s.Exec(trace.Null{})

	assert.Equal(t, Ticket(5), s.TMax(), "t_max must not regress on a stale Ask")
}

func TestServerAcceptsProposeAtTMax(t *testing.T) {
	s, _ := newServerWithPeer()
	deliver(s, 1, AskMsg(5))
	s.Exec(trace.Null{})
	deliver(s, 1, ProposeMsg(5, Defined(true)))
	s.Exec(trace.Null{})

	v, defined := s.Command().IsDefined()
	require.True(t, defined)
	assert.True(t, v)
	assert.Equal(t, Ticket(5), s.TStore())
}

func TestServerRejectsProposeAtStaleTicket(t *testing.T) {
	s, _ := newServerWithPeer()
	deliver(s, 1, AskMsg(5))
	s.Exec(trace.Null{})
	deliver(s, 1, ProposeMsg(3, Defined(true)))
	s.Exec(trace.Null{})

	_, defined := s.Command().IsDefined()
	assert.False(t, defined, "propose at a non-matching ticket must be dropped")
	assert.Equal(t, Ticket(0), s.TStore())
}

func TestServerExecuteSetsDecided(t *testing.T) {
	s, _ := newServerWithPeer()
	deliver(s, 1, ExecuteMsg(Defined(false)))
	s.Exec(trace.Null{})

	assert.True(t, s.Decided())
	v, defined := s.Command().IsDefined()
	require.True(t, defined)
	assert.False(t, v)
}

func TestServerPanicsOnUnexpectedMessage(t *testing.T) {
	s, _ := newServerWithPeer()
	deliver(s, 1, OkMsg(0, Undefined))
	assert.Panics(t, func() { s.Exec(trace.Null{}) })
}

func TestServerPanicsOnSuccessMessage(t *testing.T) {
	s, _ := newServerWithPeer()
	deliver(s, 1, SuccessMsg())
	assert.Panics(t, func() { s.Exec(trace.Null{}) })
}

// deliver injects a packet directly into s's inbox, bypassing Network, to
// isolate Server.Exec's behavior from network timing.
func deliver(s *Server, sender int, m Message) {
	s.link.InBuffer = append(s.link.InBuffer, network.Packet[Message]{Sender: sender, Receiver: s.id, Content: m})
}
