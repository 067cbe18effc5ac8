package world

import (
	"fmt"

	"github.com/nvandessel/hiveum/internal/symbols"
)

// IssueKind classifies a map defect found by Check.
type IssueKind string

const (
	IssueDangling         IssueKind = "dangling"
	IssueSelfLoop         IssueKind = "self-loop"
	IssueUnknownDirection IssueKind = "unknown-direction"
	IssueOneWay           IssueKind = "one-way"
)

// Issue is one map defect. The simulation tolerates all of them; they only
// make collisions leave unsevered tunnels behind.
type Issue struct {
	Kind      IssueKind `json:"kind"`
	Colony    string    `json:"colony"`
	Direction string    `json:"direction"`
	Dest      string    `json:"dest"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s %s=%s", i.Kind, i.Colony, i.Direction, i.Dest)
}

// Check reports tunnels that break the assumptions the collision resolver
// makes about a well-formed, bidirectional map.
func Check(m Map, tab *symbols.Table, opposites map[string]string) []Issue {
	var issues []Issue
	for _, t := range m.Tunnels() {
		issue := Issue{
			Colony:    tab.MustResolve(t.From),
			Direction: tab.MustResolve(t.Direction),
			Dest:      tab.MustResolve(t.To),
		}

		back, exists := m[t.To]
		switch {
		case !exists:
			issue.Kind = IssueDangling
		case t.From == t.To:
			issue.Kind = IssueSelfLoop
		default:
			opp, known := opposites[issue.Direction]
			if !known {
				issue.Kind = IssueUnknownDirection
				break
			}
			oppHandle, interned := tab.Lookup(opp)
			if dest, ok := back[oppHandle]; interned && ok && dest == t.From {
				continue
			}
			issue.Kind = IssueOneWay
		}
		issues = append(issues, issue)
	}
	return issues
}
