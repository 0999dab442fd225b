package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// captureCobraOutput runs a command through the Cobra tree and captures
// everything it writes. Errors are appended in the shell error style.
func captureCobraOutput(app *App, args []string) string {
	var buf strings.Builder

	root := NewRootCmd(app)
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	root.SilenceUsage = true
	root.SilenceErrors = true

	if err := root.Execute(); err != nil {
		if buf.Len() > 0 && !strings.HasSuffix(buf.String(), "\n") {
			buf.WriteString("\n")
		}
		buf.WriteString(shellError(err))
		if strings.Contains(err.Error(), "unknown command") && len(args) > 0 {
			if hint := suggestAlternatives(root, args[0]); hint != "" {
				buf.WriteString("\n" + hint)
			}
		}
	}
	return buf.String()
}

// suggestAlternatives lists top-level commands that cobra considers close
// to input.
func suggestAlternatives(root *cobra.Command, input string) string {
	root.SuggestionsMinimumDistance = 2
	matches := root.SuggestionsFor(input)
	if len(matches) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(formatter.Dim("Did you mean:"))
	for _, m := range matches {
		short := ""
		if c, _, err := root.Find([]string{m}); err == nil {
			short = c.Short
		}
		b.WriteString(fmt.Sprintf("\n  %s  %s", formatter.StyleGreen.Render(m), formatter.Dim(short)))
	}
	return b.String()
}

// commandTree returns the visible top-level command names and, for each
// group command, its subcommand names.
func commandTree(root *cobra.Command) ([]string, map[string][]string) {
	var names []string
	subs := make(map[string][]string)
	for _, c := range root.Commands() {
		if c.Hidden || c.Name() == "help" || c.Name() == "completion" {
			continue
		}
		names = append(names, c.Name())
		for _, sc := range c.Commands() {
			if !sc.Hidden {
				subs[c.Name()] = append(subs[c.Name()], sc.Name())
			}
		}
	}
	sort.Strings(names)
	return names, subs
}
