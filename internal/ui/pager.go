package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// Pager shows long text in the ov pager, handing the terminal over while it
// runs
type Pager struct {
	program *tea.Program
	run     func(content string) error
}

// NewPager creates a pager backed by oviewer
func NewPager() *Pager {
	return &Pager{run: runOviewer}
}

// SetProgram sets the program reference for terminal management
func (p *Pager) SetProgram(program *tea.Program) {
	p.program = program
}

// Show pages content. It blocks until the pager exits.
func (p *Pager) Show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// give ov time to leave the alternate screen
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	return p.run(content)
}

func runOviewer(content string) error {
	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// showCmd runs the pager off the event loop
func (p *Pager) showCmd(content string) tea.Cmd {
	return func() tea.Msg {
		return pagerClosedMsg{err: p.Show(content)}
	}
}
