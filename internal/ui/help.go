package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	line := func(key, desc string) string {
		return fmt.Sprintf("  %s %s\n", keyStyle.Render(fmt.Sprintf("%-12s", key)), descStyle.Render(desc))
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("carosearch Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Navigation"))
	help.WriteString("\n")
	help.WriteString(line("↑/↓, j/k", "Move up/down"))
	help.WriteString(line("PgUp/PgDn", "Page up/down"))
	help.WriteString(line("gg/G", "Go to top/bottom"))
	help.WriteString(line("Tab", "Switch between filters and results"))
	help.WriteString(line("Backspace", "Back to the previous page"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Filters"))
	help.WriteString("\n")
	help.WriteString(line("Enter", "Edit the filter under the cursor"))
	help.WriteString(line("x", "Clear the filter under the cursor"))
	help.WriteString(line("X", "Clear all filters"))
	help.WriteString(line("Ctrl+S", "Save the current search"))
	help.WriteString(line("'", "Load the next saved search"))
	help.WriteString("\n")

	filterStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString(filterStyle.Render("  Ranges: 2010-2015, 5000- or -80000. Lists: Petrol,Diesel. Empty resets."))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Results"))
	help.WriteString("\n")
	help.WriteString(line("Enter", "Show vehicle details"))
	help.WriteString(line("d", "Open the seller's dealer page"))
	help.WriteString(line("n/p", "Next/previous page"))
	help.WriteString(line("s", "Cycle sort order"))
	help.WriteString(line("r", "Search again"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(line("?", "Show this help"))
	help.WriteString(line("q", "Quit"))

	return help.String()
}

// Pager shows long text full screen
type Pager interface {
	Show(content string) error
}

// PagerOps shows content in the ov pager, handing the terminal over while
// it runs
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{program: program}
}

// Show runs ov on content until the user quits it
func (p *PagerOps) Show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Do not write the content back to our screen on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false

	root.SetConfig(config)
	return root.Run()
}
