package domain

import "fmt"

type Team string

const (
	TeamGeral      Team = "Geral"
	TeamSupportTI  Team = "Support TI"
	TeamSistemasMV Team = "Sistemas MV"
)

// Teams lists every team. The order matches the board layout in the UI.
var Teams = []Team{TeamGeral, TeamSupportTI, TeamSistemasMV}

func ParseTeam(s string) (Team, error) {
	switch Team(s) {
	case TeamGeral, TeamSupportTI, TeamSistemasMV:
		return Team(s), nil
	}
	return "", fmt.Errorf("unknown team %q", s)
}
