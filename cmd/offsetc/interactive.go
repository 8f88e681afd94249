package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	offset "github.com/wippyai/offset"
	"github.com/wippyai/offset/layout"
	"github.com/wippyai/offset/render"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	mem      offset.Memory
	filename string
	plans    []*layout.Plan
	values   []render.Value
	input    textinput.Model
	base     uint32
	selected int
	state    modelState
}

type modelState int

const (
	stateSelectStruct modelState = iota
	stateShowStruct
)

func newInteractiveModel(filename string, plans []*layout.Plan, mem offset.Memory, base uint32) *interactiveModel {
	ti := textinput.New()
	ti.Prompt = "base: "
	ti.Placeholder = "0x0"
	ti.Width = 20

	return &interactiveModel{
		filename: filename,
		plans:    plans,
		mem:      mem,
		base:     base,
		input:    ti,
		state:    stateSelectStruct,
	}
}

type renderedMsg struct {
	err    error
	values []render.Value
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) renderSelected() tea.Msg {
	if m.mem == nil {
		return renderedMsg{}
	}
	values, err := renderValues(m.plans[m.selected], m.mem, m.base)
	return renderedMsg{values: values, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state == stateSelectStruct {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectStruct && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectStruct && m.selected < len(m.plans)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectStruct:
				if len(m.plans) == 0 {
					return m, nil
				}
				m.state = stateShowStruct
				m.values, m.err = nil, nil
				if m.mem != nil {
					m.input.SetValue(fmt.Sprintf("%#x", m.base))
					m.input.Focus()
				}
				return m, m.renderSelected

			case stateShowStruct:
				base, err := strconv.ParseUint(strings.TrimSpace(m.input.Value()), 0, 32)
				if err != nil {
					m.err = fmt.Errorf("invalid base address %q", m.input.Value())
					return m, nil
				}
				m.base = uint32(base)
				return m, m.renderSelected
			}

		case "esc":
			if m.state == stateShowStruct {
				m.state = stateSelectStruct
				m.input.Blur()
				m.values, m.err = nil, nil
			}
		}

	case renderedMsg:
		m.values = msg.values
		m.err = msg.err
	}

	if m.state == stateShowStruct && m.mem != nil {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Layout Viewer"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectStruct:
		if len(m.plans) == 0 {
			b.WriteString("No structures declared.\n\n")
			b.WriteString(helpStyle.Render("q quit"))
			return b.String()
		}
		b.WriteString("Select a structure:\n\n")
		for i, plan := range m.plans {
			line := fmt.Sprintf("%s size=%#x fields=%d padding=%d", plan.Name, plan.Size, len(plan.Fields()), plan.Padding())
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter show • q quit"))

	case stateShowStruct:
		plan := m.plans[m.selected]
		b.WriteString(planHeader(plan))
		b.WriteString("\n")
		for _, seg := range plan.Segments {
			b.WriteString(segmentLine(seg))
			b.WriteString("\n")
		}
		b.WriteString("\n")

		if m.mem != nil {
			b.WriteString(m.input.View())
			b.WriteString("\n\n")
			switch {
			case m.err != nil:
				b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			case m.values != nil:
				b.WriteString(resultStyle.Render(render.Format(plan.Name, m.values)))
			}
			b.WriteString("\n\n")
			b.WriteString(helpStyle.Render("enter render at base • esc back • ctrl+c quit"))
		} else {
			b.WriteString(helpStyle.Render("esc back • ctrl+c quit"))
		}
	}

	return b.String()
}

func planHeader(plan *layout.Plan) string {
	return titleStyle.Render(plan.Name) + " " + helpStyle.Render(fmt.Sprintf("size=%#x extent=%#x", plan.Size, plan.Extent))
}

func segmentLine(seg layout.Segment) string {
	off := fmt.Sprintf("  %#04x ", seg.Offset)
	if seg.IsPadding() {
		return off + helpStyle.Render(fmt.Sprintf("padding (%d)", seg.Length))
	}
	return off + fieldStyle.Render(seg.Field.Name) + " " + typeStyle.Render(seg.Field.Type.Name) +
		helpStyle.Render(fmt.Sprintf(" (%d)", seg.Length))
}

func runInteractive(filename string, plans []*layout.Plan, mem offset.Memory, base uint32) error {
	p := tea.NewProgram(newInteractiveModel(filename, plans, mem, base), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
