// Package session runs the interactive read-eval loop: classify input,
// call the completion endpoint, render output, persist turns.
package session

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"electron/pkg/history"
	"electron/pkg/llm"
	loggerpkg "electron/pkg/logger"
	"electron/pkg/render"
	"electron/pkg/settings"
)

// sentinelContent is recorded for the assistant when a completion
// fails, so the log still shows that a turn was attempted and lost.
const sentinelContent = "null"

const helpMessage = "I am here to assist you with anything."

// Session end messages.
const (
	FarewellExit  = "Goodbye! See you later."
	FarewellEOF   = "Session ended. Goodbye!"
	FarewellNoKey = "Set your API key and try again."
)

// Options wires a Session; every collaborator is explicit.
type Options struct {
	Settings settings.Settings
	Client   llm.Client
	Log      *history.Log
	Window   *history.Window
	Console  *render.Console
	Logger   loggerpkg.Logger
	Scanner  *bufio.Scanner
	// InitialMessage, when non-empty, is consumed as the first user
	// input and echoed since it was never typed at the prompt.
	InitialMessage string
}

// Session is the single-threaded conversation loop. It owns the
// history append handle and the in-memory window for the process
// lifetime; there is no other writer.
type Session struct {
	settings      settings.Settings
	systemMessage string
	client        llm.Client
	log           *history.Log
	window        *history.Window
	console       *render.Console
	logger        loggerpkg.Logger
	scanner       *bufio.Scanner
	initial       string
}

// New builds a session from explicit collaborators.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = loggerpkg.NopLogger{}
	}
	return &Session{
		settings:      opts.Settings,
		systemMessage: opts.Settings.RenderedSystemMessage(),
		client:        opts.Client,
		log:           opts.Log,
		window:        opts.Window,
		console:       opts.Console,
		logger:        logger,
		scanner:       opts.Scanner,
		initial:       strings.TrimSpace(opts.InitialMessage),
	}
}

// Run blocks on the read-eval loop until the session ends and returns
// the process exit code. Every exit path prints its farewell here.
func (s *Session) Run(ctx context.Context) int {
	for {
		s.console.Prompt(s.settings.UserName)

		line, fromArgs, ok := s.nextLine()
		if !ok {
			s.logger.Info("session ended by user")
			s.console.Farewell(0, FarewellEOF)
			return 0
		}
		if fromArgs {
			s.console.Echo(line)
		}

		cmd := Classify(line)
		switch cmd.Kind {
		case KindExit:
			s.console.Farewell(0, FarewellExit)
			return 0
		case KindHelp:
			s.console.AssistantReply(s.settings.AssistantName, helpMessage)
		case KindHistory:
			if cmd.BadArg {
				s.console.Warn("Invalid argument for history. Please provide a number.")
				continue
			}
			s.console.History(s.settings.UserName, s.settings.AssistantName, s.log.All(), cmd.N, cmd.HasN)
		case KindMessage:
			if err := s.exchange(ctx, line); err != nil {
				loggerpkg.Errorf(s.logger, "unexpected error: %v", err)
				s.console.Farewell(1, fmt.Sprintf("Unexpected error: %v, see logs for more info.", err))
				return 1
			}
		}
	}
}

// nextLine yields the next non-empty input line. The startup message,
// when present, is consumed exactly once before reading the terminal.
// ok is false once input is exhausted.
func (s *Session) nextLine() (line string, fromArgs, ok bool) {
	if s.initial != "" {
		line = s.initial
		s.initial = ""
		return line, true, true
	}
	for {
		if !s.scanner.Scan() {
			return "", false, false
		}
		line = strings.TrimSpace(s.scanner.Text())
		if line != "" {
			return line, false, true
		}
	}
}

// exchange runs one message turn. Completion failures are absorbed:
// the user turn stays persisted, a sentinel assistant turn marks the
// loss, and the loop continues. Only persistence failures escape.
func (s *Session) exchange(ctx context.Context, line string) error {
	userTurn := history.Turn{Role: history.RoleUser, Content: line}
	s.window.Append(userTurn)
	if err := s.log.Append(userTurn); err != nil {
		return err
	}

	reply, err := s.client.Complete(ctx, s.systemMessage, s.window.Turns())
	if err != nil {
		loggerpkg.Errorf(s.logger, "error generating response: %v", err)
		s.console.ErrorLine(fmt.Sprintf("Error generating response: %v", err))
		return s.log.Append(history.Turn{Role: history.RoleAssistant, Content: sentinelContent})
	}

	s.console.AssistantReply(s.settings.AssistantName, reply)
	assistantTurn := history.Turn{Role: history.RoleAssistant, Content: reply}
	s.window.Append(assistantTurn)
	if err := s.log.Append(assistantTurn); err != nil {
		return err
	}
	// The window is trimmed only once an exchange has completed; a
	// failed completion leaves it untouched.
	s.window.Truncate()
	return nil
}
