// Package network implements the round-based packet router the simulator
// uses in place of a real transport: a fixed latency matrix over dense node
// ids, per-node in/out buffers, and a two-phase exchange that advances every
// in-flight packet by exactly one tick per call.
package network

import (
	"fmt"

	"github.com/senutpal/paxosim/internal/rng"
)

// MaxLatency is the exclusive upper bound on a per-pair latency draw in
// asynchronous mode.
const MaxLatency = 10

// Packet is an addressed message in transit. Sender and Receiver are dense
// node ids in [0, N). A correct caller never sets Sender == Receiver.
type Packet[M any] struct {
	Sender   int
	Receiver int
	Content  M
}

// Link holds the in/out buffers for a single node. Every packet enqueued
// through Enqueue carries the Link's own id as sender; Network is the only
// other writer: it appends to InBuffer on delivery and empties the outbound
// buffer on collection.
type Link[M any] struct {
	id        int
	InBuffer  []Packet[M]
	outBuffer []Packet[M]
}

func newLink[M any](id int) *Link[M] {
	return &Link[M]{id: id}
}

// Enqueue appends a packet to this link's outbound buffer. It is not
// delivered until at least the next Network.ExchangeMessages call.
func (l *Link[M]) Enqueue(receiver int, content M) {
	l.outBuffer = append(l.outBuffer, Packet[M]{Sender: l.id, Receiver: receiver, Content: content})
}

// DrainInbox returns and clears every packet currently in this link's
// inbound buffer, in arrival order.
func (l *Link[M]) DrainInbox() []Packet[M] {
	inbox := l.InBuffer
	l.InBuffer = nil
	return inbox
}

type inFlight[M any] struct {
	ttl    int
	packet Packet[M]
}

// Network owns every node's Link and routes packets between them according
// to a latency matrix fixed at construction.
type Network[M any] struct {
	links     []*Link[M]
	inFlight  []inFlight[M]
	latencies [][]int // nil in synchronous mode
}

// New builds a Network over n nodes. When async is true, every off-diagonal
// latency L[i][j] is drawn once from rng, uniformly in [0, maxLatency); the
// diagonal is always zero. When async is false, every latency is zero.
//
// The latency matrix is filled row by row, column by column, skipping the
// diagonal. This exact draw order must not change: it is what makes two
// runs built from the same seed draw identical latencies.
func New[M any](async bool, n int, src rng.Source, maxLatency int) *Network[M] {
	links := make([]*Link[M], n)
	for i := range links {
		links[i] = newLink[M](i)
	}

	var latencies [][]int
	if async {
		latencies = make([][]int, n)
		for i := range latencies {
			latencies[i] = make([]int, n)
			for j := range latencies[i] {
				if i == j {
					continue
				}
				latencies[i][j] = src.Intn(maxLatency)
			}
		}
	}

	return &Network[M]{links: links, latencies: latencies}
}

// Link returns the shared handle for node id. Panics on an out-of-range id:
// an invalid id here is a programming error.
func (n *Network[M]) Link(id int) *Link[M] {
	if id < 0 || id >= len(n.links) {
		panic(fmt.Sprintf("network: invalid link id %d", id))
	}
	return n.links[id]
}

func (n *Network[M]) latency(p Packet[M]) int {
	if n.latencies == nil {
		return 0
	}
	return n.latencies[p.Sender][p.Receiver]
}

// ExchangeMessages advances the network by exactly one round: every link's
// outbound buffer is drained into the transit list (collect), then every
// transit entry with zero remaining latency is appended to its receiver's
// inbox while the rest have their remaining latency decremented (deliver).
func (n *Network[M]) ExchangeMessages() {
	n.collect()
	n.deliver()
}

func (n *Network[M]) collect() {
	for _, link := range n.links {
		for _, p := range link.outBuffer {
			n.inFlight = append(n.inFlight, inFlight[M]{ttl: n.latency(p), packet: p})
		}
		link.outBuffer = nil
	}
}

func (n *Network[M]) deliver() {
	remaining := n.inFlight[:0]
	for _, entry := range n.inFlight {
		if entry.ttl == 0 {
			receiver := entry.packet.Receiver
			if receiver < 0 || receiver >= len(n.links) {
				panic(fmt.Sprintf("network: invalid receiver id %d", receiver))
			}
			n.links[receiver].InBuffer = append(n.links[receiver].InBuffer, entry.packet)
			continue
		}
		remaining = append(remaining, inFlight[M]{ttl: entry.ttl - 1, packet: entry.packet})
	}
	n.inFlight = remaining
}
