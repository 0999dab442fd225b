package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
)

// commandBar is the text input at the bottom of the TUI. Enter runs the
// line as a command; up and down recall history; ctrl+n and ctrl+p cycle
// completions taken from the Cobra tree.
type commandBar struct {
	input   textinput.Model
	state   *SharedState
	history *shellHistory

	commands    []string
	subcommands map[string][]string
}

const commandPrompt = "roadmap ❯ "

func newCommandBar(state *SharedState) commandBar {
	ti := textinput.New()
	ti.Prompt = commandPrompt
	ti.PromptStyle = formatter.StylePurple
	ti.ShowSuggestions = true
	ti.CharLimit = 500
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	names, subs := commandTree(NewRootCmd(state.App))
	return commandBar{
		input:       ti,
		state:       state,
		history:     openShellHistory(),
		commands:    append(names, shellCommands...),
		subcommands: subs,
	}
}

func (c *commandBar) Focus()        { c.input.Focus() }
func (c *commandBar) Blur()         { c.input.Blur() }
func (c *commandBar) Focused() bool { return c.input.Focused() }

func (c *commandBar) SetWidth(w int) {
	c.input.Width = max(w-runewidth.StringWidth(commandPrompt)-1, 1)
}

// Update handles a key while the bar is focused.
func (c *commandBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		line := strings.TrimSpace(c.input.Value())
		c.input.Reset()
		c.input.SetSuggestions(nil)
		if line == "" {
			return nil
		}
		c.history.add(line)
		return c.executeCommand(line)

	case tea.KeyUp:
		if s, ok := c.history.prev(c.input.Value()); ok {
			c.recall(s)
		}
		return nil

	case tea.KeyDown:
		if s, ok := c.history.next(); ok {
			c.recall(s)
		}
		return nil

	case tea.KeyEsc:
		c.Blur()
		return nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	c.updateSuggestions()
	return cmd
}

func (c *commandBar) recall(s string) {
	c.input.SetValue(s)
	c.input.CursorEnd()
}

// UpdateNonKey passes cursor blinks and the like to the input.
func (c *commandBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *commandBar) View() string {
	if !c.Focused() {
		return formatter.StylePurple.Render(commandPrompt) + formatter.Dim("press : to type a command")
	}
	return c.input.View()
}

// ── suggestions ──────────────────────────────────────────────────────────────

func (c *commandBar) updateSuggestions() {
	text := c.input.Value()
	if text == "" {
		c.input.SetSuggestions(nil)
		return
	}

	parts := strings.Fields(text)
	trailingSpace := strings.HasSuffix(text, " ")

	if len(parts) <= 1 && !trailingSpace {
		c.input.SetSuggestions(filterSuggestions(c.commands, parts[0]))
		return
	}

	cmd := strings.ToLower(parts[0])
	if len(parts) <= 2 && (!trailingSpace || len(parts) == 1) {
		prefix := ""
		if len(parts) == 2 {
			prefix = parts[1]
		}
		if subs, ok := c.subcommands[cmd]; ok {
			// Suggestions replace the whole input, so keep the command word.
			full := make([]string, 0, len(subs))
			for _, s := range filterSuggestions(subs, prefix) {
				full = append(full, cmd+" "+s)
			}
			c.input.SetSuggestions(full)
			return
		}
	}

	c.input.SetSuggestions(nil)
}

// filterSuggestions returns items from pool that start with prefix (case-insensitive).
func filterSuggestions(pool []string, prefix string) []string {
	if prefix == "" {
		return pool
	}
	lp := strings.ToLower(prefix)
	var result []string
	for _, s := range pool {
		if strings.HasPrefix(strings.ToLower(s), lp) {
			result = append(result, s)
		}
	}
	return result
}
