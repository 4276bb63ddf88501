package session

import (
	"strconv"
	"strings"
)

// Kind discriminates classified input.
type Kind int

const (
	// KindMessage forwards the whole line to the completion endpoint.
	KindMessage Kind = iota
	// KindExit ends the session.
	KindExit
	// KindHelp renders the static help text.
	KindHelp
	// KindHistory renders the transcript, optionally bounded.
	KindHistory
)

// Command is the classified form of one input line. Meta-commands
// never reach the remote model.
type Command struct {
	Kind Kind
	// Text is the original line for KindMessage.
	Text string
	// N and HasN carry the optional history count; BadArg marks a
	// count that failed to parse.
	N      int
	HasN   bool
	BadArg bool
}

// exitCommands are the synonyms that end the session when they appear
// as the first token.
var exitCommands = map[string]struct{}{
	"q": {}, "quit": {}, "exit": {}, "bye": {}, "close": {},
	"stop": {}, "end": {}, "terminate": {}, "leave": {},
}

// confirmationCommands are accepted as a "yes" to interactive prompts.
var confirmationCommands = map[string]struct{}{
	"yes": {}, "y": {}, "yeah": {}, "yep": {},
	"sure": {}, "ok": {}, "okay": {}, "fine": {},
}

// Classify maps one non-empty input line to a Command. Matching is on
// the first whitespace-delimited token, case-insensitively.
func Classify(line string) Command {
	tokens := strings.Fields(strings.ToLower(line))
	if len(tokens) == 0 {
		return Command{Kind: KindMessage, Text: line}
	}
	if _, ok := exitCommands[tokens[0]]; ok {
		return Command{Kind: KindExit}
	}
	switch tokens[0] {
	case "help":
		return Command{Kind: KindHelp}
	case "history":
		if len(tokens) < 2 {
			return Command{Kind: KindHistory}
		}
		n, err := strconv.Atoi(tokens[1])
		if err != nil {
			return Command{Kind: KindHistory, BadArg: true}
		}
		return Command{Kind: KindHistory, N: n, HasN: true}
	}
	return Command{Kind: KindMessage, Text: line}
}

// IsConfirmation reports whether the response counts as a yes.
func IsConfirmation(response string) bool {
	_, ok := confirmationCommands[strings.ToLower(strings.TrimSpace(response))]
	return ok
}
