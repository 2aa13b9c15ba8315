package paxos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senutpal/paxosim/internal/network"
	"github.com/senutpal/paxosim/internal/trace"
)

func newClientWithServers(serverCount int, command Command) (*Client, *network.Network[Message]) {
	net := network.New[Message](false, serverCount+1, constZeroSource{}, network.MaxLatency)
	servers := make(ServerList, serverCount)
	for i := range servers {
		servers[i] = i
	}
	c := NewClient(serverCount, net.Link(serverCount), servers, command)
	return c, net
}

func deliverClient(c *Client, sender int, m Message) {
	c.link.InBuffer = append(c.link.InBuffer, network.Packet[Message]{Sender: sender, Receiver: c.id, Content: m})
}

func TestClientState0SendsAskToEveryServer(t *testing.T) {
	c, net := newClientWithServers(3, Defined(true))
	c.Exec(trace.Null{})
	net.ExchangeMessages()

	require.Equal(t, StateCollectOks, c.State())
	for i := 0; i < 3; i++ {
		require.Len(t, net.Link(i).InBuffer, 1, "server %d must receive exactly one Ask", i)
		assert.Equal(t, Ask, net.Link(i).InBuffer[0].Content.Kind)
	}
	assert.Equal(t, Ticket(1), c.curTicket)
}

func TestClientTicketStrictlyIncreasesAcrossRetries(t *testing.T) {
	c, _ := newClientWithServers(3, Defined(true))
	c.Exec(trace.Null{}) // state 0 -> 1, ticket 1
	c.waitDuration = 0
	c.Exec(trace.Null{}) // no quorum, timeout -> back to state 0
	require.Equal(t, StateAskTicket, c.State())
	c.Exec(trace.Null{}) // state 0 -> 1 again, ticket 2

	assert.Equal(t, Ticket(2), c.CurTicket())
}

// S6: with server_count = 4 (even), a client needs >= 3 Oks, not 2.
func TestClientQuorumArithmeticEvenServerCount(t *testing.T) {
	c, _ := newClientWithServers(4, Defined(true))
	c.Exec(trace.Null{}) // -> state 1

	deliverClient(c, 0, OkMsg(0, Undefined))
	deliverClient(c, 1, OkMsg(0, Undefined))
	c.Exec(trace.Null{})

	assert.Equal(t, StateCollectOks, c.State(), "2 Oks out of 4 servers must not be a quorum")
}

func TestClientQuorumReachedTransitionsToPropose(t *testing.T) {
	c, _ := newClientWithServers(4, Defined(true))
	c.Exec(trace.Null{})

	deliverClient(c, 0, OkMsg(0, Undefined))
	deliverClient(c, 1, OkMsg(0, Undefined))
	deliverClient(c, 2, OkMsg(0, Undefined))
	c.Exec(trace.Null{})

	assert.Equal(t, StateCollectSuccesses, c.State())
}

// P5: preservation rule, adopt the command from the highest-t_store Ok.
func TestClientAdoptsHighestTStoreCommand(t *testing.T) {
	c, _ := newClientWithServers(3, Defined(true))
	c.Exec(trace.Null{})

	deliverClient(c, 0, OkMsg(0, Undefined))
	deliverClient(c, 1, OkMsg(2, Defined(false)))
	deliverClient(c, 2, OkMsg(1, Defined(true)))
	c.Exec(trace.Null{})

	require.Equal(t, StateCollectSuccesses, c.State())
	v, defined := c.Command().IsDefined()
	require.True(t, defined)
	assert.False(t, v, "must adopt the command from t_store=2, not the client's own initial value")
}

func TestClientKeepsOwnCommandWhenNoPriorAccepts(t *testing.T) {
	c, _ := newClientWithServers(3, Defined(true))
	c.Exec(trace.Null{})

	deliverClient(c, 0, OkMsg(0, Undefined))
	deliverClient(c, 1, OkMsg(0, Undefined))
	c.Exec(trace.Null{})

	v, defined := c.Command().IsDefined()
	require.True(t, defined)
	assert.True(t, v)
}

func TestClientDoneStateDrainsInboxSilently(t *testing.T) {
	c, _ := newClientWithServers(1, Defined(true))
	c.state = StateDone
	deliverClient(c, 0, SuccessMsg())
	c.Exec(trace.Null{})

	assert.Empty(t, c.inbox)
	assert.Equal(t, StateDone, c.State())
}

func TestClientPanicsOnUnreachableState(t *testing.T) {
	c, _ := newClientWithServers(1, Defined(true))
	c.state = 99
	assert.Panics(t, func() { c.Exec(trace.Null{}) })
}
