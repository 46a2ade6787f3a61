// Package versus runs a local match of two or three boards on one
// keyboard, with CPU agents filling the seats humans leave empty.
package versus

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Board limits of a local match.
const (
	MinBoards = 2
	MaxBoards = 3
	MaxCPUs   = 2
)

// Seat is one board's owner.
type Seat struct {
	Player core.PlayerID
	Name   string
	CPU    bool
}

// Lineup describes who plays. Humans always take the first seats.
type Lineup struct {
	Players int      // Total boards, clamped to 2..3
	CPUs    int      // Clamped to 0..2 and to Players-1
	Names   []string // Human names by seat, blanks become "Player N"
}

// Normalize clamps the counts so at least one human plays.
func (l Lineup) Normalize() Lineup {
	l.Players = lo.Clamp(l.Players, MinBoards, MaxBoards)
	l.CPUs = lo.Clamp(l.CPUs, 0, min(MaxCPUs, l.Players-1))
	return l
}

// Humans returns the number of human seats after normalization.
func (l Lineup) Humans() int {
	n := l.Normalize()
	return n.Players - n.CPUs
}

// Seats assigns player ids and names, humans first then CPUs.
func (l Lineup) Seats() []Seat {
	l = l.Normalize()
	humans := l.Players - l.CPUs

	seats := make([]Seat, 0, l.Players)
	for i := range humans {
		name := ""
		if i < len(l.Names) {
			name = strings.TrimSpace(l.Names[i])
		}
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		seats = append(seats, Seat{Player: core.PlayerID(i + 1), Name: name})
	}
	for i := range l.CPUs {
		seats = append(seats, Seat{
			Player: core.PlayerID(humans + i + 1),
			Name:   fmt.Sprintf("CPU %d", i+1),
			CPU:    true,
		})
	}
	return seats
}
