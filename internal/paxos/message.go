package paxos

import "fmt"

// Message is the sum type carried by every Packet exchanged between
// clients and servers. Exactly one constructor is used per message; Kind
// discriminates which of the remaining fields are meaningful.
type Message struct {
	Kind Kind

	// Ask
	Ticket Ticket

	// Ok
	TicketStore Ticket
	OkCommand   Command

	// Propose
	ProposeTicket Ticket
	ProposeValue  Command

	// Execute
	ExecuteValue Command
}

// Kind discriminates the Message sum type's variants.
type Kind int

const (
	Ask Kind = iota
	Ok
	Propose
	Success
	Execute
)

// AskMsg is a proposer's request for a ticket.
func AskMsg(t Ticket) Message { return Message{Kind: Ask, Ticket: t} }

// OkMsg is an acceptor's grant of a ticket, reporting the highest ticket it
// previously accepted at (tStore, zero if never) and the associated command.
func OkMsg(tStore Ticket, c Command) Message {
	return Message{Kind: Ok, TicketStore: tStore, OkCommand: c}
}

// ProposeMsg is a proposer's proposal of command c under ticket t.
func ProposeMsg(t Ticket, c Command) Message {
	return Message{Kind: Propose, ProposeTicket: t, ProposeValue: c}
}

// SuccessMsg is an acceptor's acknowledgement of a proposal.
func SuccessMsg() Message { return Message{Kind: Success} }

// ExecuteMsg is a learner broadcast: adopt and decide c.
func ExecuteMsg(c Command) Message { return Message{Kind: Execute, ExecuteValue: c} }

func (m Message) String() string {
	switch m.Kind {
	case Ask:
		return fmt.Sprintf("Ask(%d)", m.Ticket)
	case Ok:
		return fmt.Sprintf("Ok(%d, %s)", m.TicketStore, m.OkCommand)
	case Propose:
		return fmt.Sprintf("Propose(%d, %s)", m.ProposeTicket, m.ProposeValue)
	case Success:
		return "Success"
	case Execute:
		return fmt.Sprintf("Execute(%s)", m.ExecuteValue)
	default:
		return "Unknown"
	}
}

var _ fmt.Stringer = Message{}
