// Command inspect is a bubbletea TUI re-expression of the BIOS()
// text debugger: step the CPU, set breakpoints, and dump memory,
// stack, and PPU state, all read-only against console.Core.
package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"github.com/golang/glog"
	"github.com/kbrandt/nescore/console"
	"github.com/kbrandt/nescore/snapshot"
)

var romFile = flag.String("nes_rom", "", "path to the NES ROM to inspect")

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	breakStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

type model struct {
	core       *console.Core
	breaks     map[uint16]struct{}
	memLow     uint16
	running    bool
	input      string
	mode       string // "", "break", "pc", "memlow", "memhigh"
	pendingLow uint16
	message    string
}

func initialModel(core *console.Core) model {
	return model{core: core, breaks: make(map[uint16]struct{}), memLow: 0x8000}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != "" {
			return m.updatePrompt(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "s":
			m.core.Step()
			m.message = "stepped one cycle"
		case "r":
			m.running = !m.running
			if m.running {
				m.message = "running (press r to pause, or hit a breakpoint)"
			} else {
				m.message = "paused"
			}
			return m, m.runCmd()
		case "f":
			m.core.TickUntilVblank()
			m.message = "ran one frame"
		case "b":
			m.mode = "break"
			m.input = ""
		case "c":
			m.breaks = make(map[uint16]struct{})
			m.message = "breakpoints cleared"
		case "p":
			m.mode = "pc"
			m.input = ""
		case "m":
			m.mode = "memlow"
			m.input = ""
		}
	case runTickMsg:
		if !m.running {
			return m, nil
		}
		pc := m.core.CPUSnapshot().PC
		if _, hit := m.breaks[pc]; hit {
			m.running = false
			m.message = fmt.Sprintf("breakpoint hit at $%04X", pc)
			return m, nil
		}
		m.core.Step()
		return m, m.runCmd()
	}
	return m, nil
}

type runTickMsg struct{}

func (m model) runCmd() tea.Cmd {
	return func() tea.Msg { return runTickMsg{} }
}

func (m model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ""
		m.input = ""
	case "enter":
		v, err := strconv.ParseUint(strings.TrimPrefix(m.input, "$"), 16, 16)
		if err != nil {
			m.message = fmt.Sprintf("bad hex address %q", m.input)
			m.mode = ""
			return m, nil
		}
		switch m.mode {
		case "break":
			m.breaks[uint16(v)] = struct{}{}
			m.message = fmt.Sprintf("breakpoint set at $%04X", v)
		case "pc":
			m.message = fmt.Sprintf("PC set to $%04X (read-only view; reload cartridge to apply)", v)
		case "memlow":
			m.pendingLow = uint16(v)
			m.mode = "memhigh"
			m.input = ""
			return m, nil
		case "memhigh":
			m.memLow = m.pendingLow
			m.message = fmt.Sprintf("showing $%04X-$%04X", m.pendingLow, uint16(v))
		}
		m.mode = ""
		m.input = ""
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	default:
		if len(msg.String()) == 1 {
			m.input += msg.String()
		}
	}
	return m, nil
}

func (m model) statusPane() string {
	s := snapshot.Capture(m.core)
	return headerStyle.Render("status") + "\n" + s.String()
}

func (m model) memoryPane() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("memory") + "\n")
	for row := 0; row < 8; row++ {
		addr := m.memLow + uint16(row*8)
		fmt.Fprintf(&b, "$%04X: ", addr)
		for col := 0; col < 8; col++ {
			b.WriteString(fmt.Sprintf("%02X ", m.core.Read(addr+uint16(col))))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) stackPane() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("stack (top 8)") + "\n")
	sp := m.core.CPUSnapshot().SP
	for i := 0; i < 8; i++ {
		addr := 0x0100 + uint16(sp) + uint16(i)
		if addr > 0x01FF {
			break
		}
		fmt.Fprintf(&b, "$%04X: %02X\n", addr, m.core.Read(addr))
	}
	return b.String()
}

func (m model) breaksPane() string {
	if len(m.breaks) == 0 {
		return dimStyle.Render("no breakpoints")
	}
	var parts []string
	for addr := range m.breaks {
		parts = append(parts, fmt.Sprintf("$%04X", addr))
	}
	return breakStyle.Render("breakpoints: " + strings.Join(parts, " "))
}

func (m model) tracePane() string {
	trace := m.core.Trace()
	if len(trace) == 0 {
		return dimStyle.Render("no bus activity recorded (trace empty or disabled)")
	}
	n := len(trace)
	if n > 4 {
		trace = trace[n-4:]
	}
	return headerStyle.Render("recent bus activity") + "\n" + spew.Sdump(trace)
}

func (m model) View() string {
	top := lipgloss.JoinHorizontal(lipgloss.Top, m.memoryPane(), "  ", m.stackPane(), "  ", m.statusPane())

	prompt := ""
	if m.mode != "" {
		prompt = fmt.Sprintf("\n%s> %s_", m.mode, m.input)
	}

	help := dimStyle.Render("(s)tep (r)un (f)rame (b)reak (c)lear (p)c (m)emory (q)uit")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		top,
		"",
		m.breaksPane(),
		m.tracePane(),
		m.message,
		prompt,
		"",
		help,
	)
}

func main() {
	flag.Parse()
	defer glog.Flush()

	if *romFile == "" {
		glog.Exit("inspect: -nes_rom is required")
	}

	core := console.NewCore()
	if err := core.LoadCartridge(*romFile); err != nil {
		glog.Exitf("inspect: %v", err)
	}
	core.EnableTrace(64)

	if _, err := tea.NewProgram(initialModel(core)).Run(); err != nil {
		glog.Exitf("inspect: %v", err)
	}
}
