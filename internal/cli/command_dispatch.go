package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
)

// shellCommands are handled by the TUI itself; everything else goes to
// the Cobra tree.
var shellCommands = []string{"add", "help", "clear", "exit", "quit"}

// viewCommands maps command names to the number key of their view.
var viewCommands = map[string]string{
	"calendar": "1",
	"gantt":    "2",
	"board":    "3",
	"list":     "4",
	"table":    "5",
}

// executeCommand dispatches a text command and returns a tea.Cmd.
// Commands may return cmdOutputMsg for display, navigation messages
// for view transitions, or quitMsg for exit.
func (c *commandBar) executeCommand(input string) tea.Cmd {
	parts, err := splitShellArgs(input)
	if err != nil {
		return outputCmd(shellError(err))
	}
	if len(parts) == 0 {
		return nil
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "exit", "quit":
		return func() tea.Msg { return quitMsg{} }
	case "clear":
		return nil
	case "tui":
		return outputCmd(formatter.Dim("Already in the TUI."))
	case "help":
		if len(args) > 0 {
			return c.runCobra(append([]string{"help"}, args...))
		}
		return outputCmd(shellHelp())
	case "add":
		if len(args) == 0 {
			c.Blur()
			return addItemWizard(c.state)
		}
		return c.runCobra(append([]string{"item", "add"}, args...))
	}

	// A bare view name switches views; with flags it prints the CLI rendering.
	if k, ok := viewCommands[cmd]; ok && len(args) == 0 {
		c.Blur()
		return replaceView(homeView(c.state, k))
	}
	return c.runCobra(parts)
}

// runCobra executes args through the Cobra tree and shows the output.
// Views reload after the command returns, since it may have changed data.
func (c *commandBar) runCobra(args []string) tea.Cmd {
	app := c.state.App
	return func() tea.Msg {
		return cmdOutputMsg{output: captureCobraOutput(app, args), refresh: true}
	}
}

// shellError formats an error for the output area.
func shellError(err error) string {
	return formatter.StyleRed.Render(fmt.Sprintf("Error: %v", err))
}

func shellHelp() string {
	rows := [][]string{
		{"1-5", "calendar, gantt, board, list, table"},
		{"a / add", "add an item"},
		{"add --name N --start D", "add an item without the form"},
		{"item move ITEM STATUS", "move an item to another status"},
		{"item reschedule ITEM --start D", "change an item's dates"},
		{"marker add LABEL --date D", "add a timeline marker"},
		{"import FILE / export -o FILE", "load or save roadmap data"},
		{"help COMMAND", "show a command's flags"},
		{"q / quit", "leave"},
	}
	return formatter.Header("Commands") + "\n" + formatter.RenderTable([]string{"Command", "Does"}, rows)
}

// splitShellArgs splits input into words, honouring single quotes,
// double quotes and backslash escapes.
func splitShellArgs(input string) ([]string, error) {
	var parts []string
	var cur strings.Builder

	inSingle := false
	inDouble := false
	escaped := false
	tokenStarted := false

	flush := func() {
		parts = append(parts, cur.String())
		cur.Reset()
		tokenStarted = false
	}

	for _, r := range input {
		if escaped {
			cur.WriteRune(r)
			tokenStarted = true
			escaped = false
			continue
		}

		if inSingle {
			if r == '\'' {
				inSingle = false
			} else {
				cur.WriteRune(r)
			}
			tokenStarted = true
			continue
		}

		if inDouble {
			switch r {
			case '"':
				inDouble = false
			case '\\':
				escaped = true
			default:
				cur.WriteRune(r)
			}
			tokenStarted = true
			continue
		}

		switch r {
		case '\\':
			escaped = true
			tokenStarted = true
		case '\'':
			inSingle = true
			tokenStarted = true
		case '"':
			inDouble = true
			tokenStarted = true
		case ' ', '\t', '\n', '\r':
			if tokenStarted {
				flush()
			}
		default:
			cur.WriteRune(r)
			tokenStarted = true
		}
	}

	if escaped {
		return nil, fmt.Errorf("unterminated escape sequence")
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quoted string")
	}
	if tokenStarted {
		flush()
	}

	return parts, nil
}
