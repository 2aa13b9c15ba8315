// Package tracelog adapts a go-kit log.Logger into a trace.Trace sink,
// rendering one structured log line per action via the usual
// logger.Log(keyvals...) idiom.
package tracelog

import (
	"github.com/go-kit/kit/log"

	"github.com/senutpal/paxosim/internal/trace"
)

// Sink renders every trace.Action as one structured log line, tagged with
// the round and actor it was recorded under.
type Sink struct {
	logger    log.Logger
	round     int
	currentID int
}

// New wraps logger. Callers that also want an in-memory trace.Recorder can
// run both sinks by passing a trace.Trace that fans out to each; this
// package only implements the logging half.
func New(logger log.Logger) *Sink {
	return &Sink{logger: logger}
}

func (s *Sink) BeginRound(round int) {
	s.round = round
}

func (s *Sink) BeginActor(nodeID int) {
	s.currentID = nodeID
}

func (s *Sink) Record(a trace.Action) {
	s.logger.Log(
		"msg", "action",
		"round", s.round,
		"node", s.currentID,
		"action", a.String(),
	)
}

func (s *Sink) EndActor() {}

func (s *Sink) EndRound() {}

var _ trace.Trace = (*Sink)(nil)
