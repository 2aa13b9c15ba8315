package trace

import (
	"fmt"
	"strings"
)

// ActorLog is every action recorded for one node during one round.
type ActorLog struct {
	NodeID  int
	Actions []Action
}

// RoundLog is every actor's log for one round.
type RoundLog struct {
	Round  int
	Actors []ActorLog
}

// Recorder buffers every round in memory. Its String method renders only
// rounds and actors that recorded at least one action; empty ones are
// skipped entirely.
type Recorder struct {
	rounds  []RoundLog
	current *RoundLog
	actor   *ActorLog
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) BeginRound(round int) {
	r.rounds = append(r.rounds, RoundLog{Round: round})
	r.current = &r.rounds[len(r.rounds)-1]
}

func (r *Recorder) BeginActor(nodeID int) {
	r.current.Actors = append(r.current.Actors, ActorLog{NodeID: nodeID})
	r.actor = &r.current.Actors[len(r.current.Actors)-1]
}

func (r *Recorder) Record(a Action) {
	r.actor.Actions = append(r.actor.Actions, a)
}

func (r *Recorder) EndActor() {
	r.actor = nil
}

func (r *Recorder) EndRound() {
	r.current = nil
}

// Rounds returns every recorded round, including actors with no actions.
func (r *Recorder) Rounds() []RoundLog {
	return r.rounds
}

func (r *Recorder) String() string {
	var b strings.Builder
	for _, round := range r.rounds {
		var body strings.Builder
		for _, actor := range round.Actors {
			if len(actor.Actions) == 0 {
				continue
			}
			fmt.Fprintf(&body, "    Actor: %d\n", actor.NodeID)
			for _, a := range actor.Actions {
				fmt.Fprintf(&body, "      %s\n", a)
			}
		}
		if body.Len() == 0 {
			continue
		}
		fmt.Fprintf(&b, "  Round: %d\n%s\n", round.Round, body.String())
	}
	return b.String()
}

var _ Trace = (*Recorder)(nil)
