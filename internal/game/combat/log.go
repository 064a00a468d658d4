package combat

import (
	"fmt"
	"strconv"
	"strings"
)

const turnHeaderPrefix = "--- Turn "

// Log is the append-only battle log.
type Log struct {
	lines []string
}

// Addf appends a formatted line.
func (l *Log) Addf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// Add appends a line as is.
func (l *Log) Add(line string) {
	l.lines = append(l.lines, line)
}

// turn appends a turn header.
func (l *Log) turn(n int) {
	l.Addf("%s%d ---", turnHeaderPrefix, n)
}

// Lines returns the log lines. The slice must not be modified.
func (l *Log) Lines() []string {
	return l.lines
}

// Len returns the number of lines.
func (l *Log) Len() int {
	return len(l.lines)
}

// TurnLog is the set of messages logged during one turn.
type TurnLog struct {
	Turn     int
	Messages []string
}

// GroupByTurn splits log lines at turn headers.
// Lines before the first header are dropped; lines after the last turn (end of
// battle notes, rewards) stay with the last turn.
func GroupByTurn(lines []string) []TurnLog {
	var (
		turns   []TurnLog
		current *TurnLog
	)
	for _, line := range lines {
		if n, ok := parseTurnHeader(line); ok {
			turns = append(turns, TurnLog{Turn: n})
			current = &turns[len(turns)-1]
			continue
		}
		if current == nil {
			continue
		}
		current.Messages = append(current.Messages, line)
	}
	return turns
}

func parseTurnHeader(line string) (int, bool) {
	rest, ok := strings.CutPrefix(line, turnHeaderPrefix)
	if !ok {
		return 0, false
	}
	rest, ok = strings.CutSuffix(rest, " ---")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}
