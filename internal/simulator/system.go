// Package simulator wires internal/rng, internal/network, and
// internal/paxos together into a round-based loop: construct a fixed
// population of servers and clients, then drive them to a decision (or a
// round budget) one synchronized round at a time.
package simulator

import (
	"fmt"

	"github.com/senutpal/paxosim/internal/metrics"
	"github.com/senutpal/paxosim/internal/network"
	"github.com/senutpal/paxosim/internal/paxos"
	"github.com/senutpal/paxosim/internal/rng"
	"github.com/senutpal/paxosim/internal/trace"
)

// nodeRole tags a System's nodes for the inspection helpers, since clients
// and servers are iterated together in id order but queried separately.
type nodeRole int

const (
	roleServer nodeRole = iota
	roleClient
)

type node struct {
	role    nodeRole
	paxos   paxos.Node
	server  *paxos.Server // non-nil iff role == roleServer
	client  *paxos.Client // non-nil iff role == roleClient
}

// System owns every node and the network connecting them, and runs the
// round loop.
type System struct {
	nodes   []node
	network *network.Network[paxos.Message]
	metrics *metrics.Registry
}

// NewRand builds a System with serverCount acceptors (ids [0,serverCount))
// followed by nodeCount-serverCount proposers (ids [serverCount,nodeCount)),
// connected by an asynchronous network with per-pair latency in
// [0, network.MaxLatency). seed, if non-nil, makes the run fully
// deterministic: the latency matrix and every client's initial command are
// drawn from the same seeded source, in a fixed order.
//
// Returns an error if serverCount > nodeCount or nodeCount == 0. These are
// caller configuration mistakes, not protocol violations, so unlike the
// rest of the simulator they are reported rather than panicked on.
func NewRand(nodeCount, serverCount int, seed *uint64) (*System, error) {
	if nodeCount == 0 {
		return nil, fmt.Errorf("simulator: node_count must be > 0")
	}
	if serverCount > nodeCount {
		return nil, fmt.Errorf("simulator: server_count (%d) must be <= node_count (%d)", serverCount, nodeCount)
	}

	src := rng.New(seed)
	net := network.New[paxos.Message](true, nodeCount, src, network.MaxLatency)

	servers := make(paxos.ServerList, serverCount)
	for i := range servers {
		servers[i] = i
	}

	nodes := make([]node, 0, nodeCount)
	for id := 0; id < serverCount; id++ {
		s := paxos.NewServer(id, net.Link(id))
		nodes = append(nodes, node{role: roleServer, paxos: s, server: s})
	}
	for id := serverCount; id < nodeCount; id++ {
		c := paxos.NewClientRand(id, net.Link(id), servers, src)
		nodes = append(nodes, node{role: roleClient, paxos: c, client: c})
	}

	return &System{nodes: nodes, network: net, metrics: metrics.NewRegistry()}, nil
}

// Simulate runs rounds until every server has decided or maxRounds is
// reached (nil means unbounded). Each round: exchange messages, then Exec
// every node in id order.
func (s *System) Simulate(maxRounds *int, tr trace.Trace) {
	if tr == nil {
		tr = trace.Null{}
	}

	round := 0
	for !s.Decided() && (maxRounds == nil || round < *maxRounds) {
		tr.BeginRound(round)

		s.network.ExchangeMessages()

		for _, n := range s.nodes {
			tr.BeginActor(idOf(n))
			n.paxos.Exec(tr)
			tr.EndActor()
		}

		tr.EndRound()
		s.metrics.ObserveRound()
		round++
	}

	if s.Decided() {
		s.metrics.ObserveDecision()
	}
}

func idOf(n node) int {
	if n.role == roleServer {
		return n.server.ID()
	}
	return n.client.ID()
}

// Decided reports whether every server has decided.
func (s *System) Decided() bool {
	for _, n := range s.nodes {
		if n.role == roleServer && !n.server.Decided() {
			return false
		}
	}
	return true
}

// ClientCommands returns every client's current command, in client id
// order.
func (s *System) ClientCommands() []paxos.Command {
	var cmds []paxos.Command
	for _, n := range s.nodes {
		if n.role == roleClient {
			cmds = append(cmds, n.client.Command())
		}
	}
	return cmds
}

// ServersAgree returns the common command held by every server, or
// (Undefined, false) if the servers disagree. It is (Undefined, true) iff
// no server has ever accepted anything.
func (s *System) ServersAgree() (paxos.Command, bool) {
	var any paxos.Command
	found := false
	for _, n := range s.nodes {
		if n.role != roleServer {
			continue
		}
		if !found {
			any = n.server.Command()
			found = true
			continue
		}
		if n.server.Command() != any {
			return paxos.Undefined, false
		}
	}
	return any, found
}

// Metrics exposes the prometheus registry backing this System's counters.
func (s *System) Metrics() *metrics.Registry { return s.metrics }
