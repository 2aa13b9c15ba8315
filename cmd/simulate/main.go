// Command simulate runs one Paxos round-simulation and prints its trace
// and outcome. It exists only as a thin demonstration harness, so it stays
// on stdlib flag and does not grow protocol logic of its own.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/senutpal/paxosim/internal/simulator"
	"github.com/senutpal/paxosim/internal/trace"
)

func main() {
	nodes := flag.Int("nodes", 5, "total node count (servers + clients)")
	servers := flag.Int("servers", 3, "server (acceptor) count, must be <= nodes")
	seed := flag.Uint64("seed", 0, "PRNG seed; pass -seed=0 with -random to use entropy instead")
	random := flag.Bool("random", false, "ignore -seed and use a non-deterministic run")
	rounds := flag.Int("rounds", 200, "round budget; <= 0 means unbounded")
	flag.Parse()

	var seedPtr *uint64
	if !*random {
		seedPtr = seed
	}

	sys, err := simulator.NewRand(*nodes, *servers, seedPtr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "simulate:", err)
		os.Exit(1)
	}

	var maxRounds *int
	if *rounds > 0 {
		maxRounds = rounds
	}

	rec := trace.NewRecorder()
	sys.Simulate(maxRounds, rec)

	fmt.Print(rec.String())

	if sys.Decided() {
		cmd, agree := sys.ServersAgree()
		fmt.Printf("decided: true, servers agree: %t, command: %s\n", agree, cmd)
	} else {
		fmt.Println("decided: false (round budget exhausted)")
	}
}
