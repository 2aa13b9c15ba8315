package paxos

// hasQuorum reports whether count constitutes a strict majority of
// serverCount acceptors (count > serverCount/2, integer division). Both of
// Client's collection states (1: Oks, 2: Successes) use this rule. A
// client observing a majority agree is itself the act of learning the
// outcome, so there is no separate learner process to notify.
func hasQuorum(count, serverCount int) bool {
	return count > serverCount/2
}
