package roster

import "time"

// Raw transaction shapes, append-only. A "modify" record captures the entry
// before and after the mutation; an "add" record captures the new entry.
// Records are never rewritten once appended.
const (
	RawActionModify = "modify"
	RawActionAdd    = "add"
)

// Classified actions, derived at read time from the gamer diff.
const (
	ActionAdd     = "add"
	ActionDrop    = "drop"
	ActionTrade   = "trade"
	ActionUnknown = "unknown"
)

// Transaction is one ledger record.
type Transaction struct {
	ID     string    `json:"transactionId"`
	Action string    `json:"action"`
	When   time.Time `json:"when"`
	Who    string    `json:"who"`
	Before *Entry    `json:"before,omitempty"`
	After  *Entry    `json:"after,omitempty"`
	Record *Entry    `json:"record,omitempty"`
}

// ParsedTransaction is the read-time classification of a raw record.
type ParsedTransaction struct {
	ID     string    `json:"transactionId"`
	Action string    `json:"action"`
	When   time.Time `json:"when"`
	Who    string    `json:"who"`
	Player Entry     `json:"player"`
	// FromGamer/ToGamer carry the ownership diff; empty means free agent.
	FromGamer string `json:"from_gamer,omitempty"`
	ToGamer   string `json:"to_gamer,omitempty"`
}

// Parse classifies the record by diffing ownership: free-agent to gamer is
// an add, gamer to free-agent a drop, gamer to gamer a trade. Anything that
// matches none of those is surfaced as unknown rather than dropped.
func (t Transaction) Parse() ParsedTransaction {
	out := ParsedTransaction{
		ID:   t.ID,
		When: t.When,
		Who:  t.Who,
	}

	switch t.Action {
	case RawActionAdd:
		out.Action = ActionAdd
		if t.Record != nil {
			out.Player = *t.Record
			out.ToGamer = t.Record.Gamer
		}
	case RawActionModify:
		if t.Before == nil || t.After == nil {
			out.Action = ActionUnknown
			break
		}
		out.Player = *t.After
		out.FromGamer = t.Before.Gamer
		out.ToGamer = t.After.Gamer

		switch {
		case t.Before.Gamer == "" && t.After.Gamer != "":
			out.Action = ActionAdd
		case t.Before.Gamer != "" && t.After.Gamer == "":
			out.Action = ActionDrop
		case t.Before.Gamer != "" && t.After.Gamer != "":
			out.Action = ActionTrade
		default:
			out.Action = ActionUnknown
		}
	default:
		out.Action = ActionUnknown
	}

	return out
}
