package main

import (
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wippyai/octet/decode"
	"github.com/wippyai/octet/derive"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
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

	markStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Interactively decode pasted hex as a scenario type",
		RunE: func(*cobra.Command, []string) error {
			p := tea.NewProgram(newInspectModel(), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}

type inspectState int

const (
	stateChooseType inspectState = iota
	stateEnterHex
	stateShowDecode
)

type inspectModel struct {
	scenarios []scenario
	samples   []string // hex of each scenario's sample encoding
	selected  int
	input     textinput.Model
	state     inspectState

	value string   // rendered value on success
	chain []string // error chain, outermost first
	dump  string
	note  string
}

func newInspectModel() *inspectModel {
	scs := scenarios()
	samples := make([]string, len(scs))
	for i, s := range scs {
		if data, err := derive.Marshal(s.value); err == nil {
			samples[i] = hex.EncodeToString(data)
		}
	}

	ti := textinput.New()
	ti.Prompt = "hex: "
	ti.Width = 64

	return &inspectModel{
		scenarios: scs,
		samples:   samples,
		input:     ti,
		state:     stateChooseType,
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateEnterHex {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateChooseType && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateChooseType && m.selected < len(m.scenarios)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateChooseType:
				m.input.SetValue("")
				m.input.Placeholder = m.samples[m.selected]
				m.input.Focus()
				m.state = stateEnterHex
			case stateEnterHex:
				m.runDecode()
				m.state = stateShowDecode
			case stateShowDecode:
				m.state = stateEnterHex
			}
			return m, nil

		case "esc":
			switch m.state {
			case stateEnterHex:
				m.input.Blur()
				m.state = stateChooseType
			case stateShowDecode:
				m.state = stateEnterHex
			}
			return m, nil
		}
	}

	if m.state == stateEnterHex {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// runDecode parses the entered hex and decodes it as the selected scenario
// type. An empty input decodes the sample encoding shown as the placeholder.
func (m *inspectModel) runDecode() {
	m.value, m.chain, m.dump, m.note = "", nil, "", ""

	raw := stripSpace(m.input.Value())
	if raw == "" {
		raw = m.samples[m.selected]
	}
	data, err := hex.DecodeString(raw)
	if err != nil {
		m.note = "bad hex: " + err.Error()
		return
	}

	s := m.scenarios[m.selected]
	in := decode.NewInput(data)
	target := s.fresh()
	derr := derive.Decode(in, target)

	mark := -1
	switch {
	case derr != nil:
		mark = in.Position()
		m.note = fmt.Sprintf("decoding stopped at offset %d", in.Position())
		for e := derr; e != nil; e = stderrors.Unwrap(e) {
			m.chain = append(m.chain, e.Error())
		}
	case in.Remaining() > 0:
		mark = in.Position()
		m.value = fmt.Sprintf("%+v", reflect.ValueOf(target).Elem().Interface())
		m.note = fmt.Sprintf("%d trailing bytes not consumed", in.Remaining())
	default:
		m.value = fmt.Sprintf("%+v", reflect.ValueOf(target).Elem().Interface())
	}
	m.dump = dumpHex(data, mark)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// dumpHex renders data sixteen bytes per line. The byte at mark, when in
// range, is highlighted.
func dumpHex(data []byte, mark int) string {
	if len(data) == 0 {
		return helpStyle.Render("(no bytes)")
	}
	var b strings.Builder
	for base := 0; base < len(data); base += 16 {
		if base > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%04x  ", base)
		end := min(base+16, len(data))
		for i := base; i < end; i++ {
			cell := fmt.Sprintf("%02x", data[i])
			if i == mark {
				cell = markStyle.Render(cell)
			}
			b.WriteString(cell)
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func (m *inspectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("octet inspector"))
	b.WriteString("\n\n")

	switch m.state {
	case stateChooseType:
		b.WriteString("Decode bytes as:\n\n")
		for i, s := range m.scenarios {
			line := fmt.Sprintf("%s  %s", s.name,
				typeStyle.Render(fmt.Sprintf("%d bytes", s.size)))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteByte('\n')
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter choose • q quit"))

	case stateEnterHex:
		b.WriteString(fmt.Sprintf("Scenario %s\n\n", nameStyle.Render(m.scenarios[m.selected].name)))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter decode (empty decodes the sample) • esc back • ctrl+c quit"))

	case stateShowDecode:
		b.WriteString(fmt.Sprintf("Scenario %s\n\n", nameStyle.Render(m.scenarios[m.selected].name)))
		if m.dump != "" {
			b.WriteString(m.dump)
			b.WriteString("\n\n")
		}
		if m.value != "" {
			b.WriteString(resultStyle.Render(m.value))
			b.WriteByte('\n')
		}
		if m.note != "" {
			b.WriteString(errorStyle.Render(m.note))
			b.WriteByte('\n')
		}
		for i, line := range m.chain {
			if i == 0 {
				b.WriteString(errorStyle.Render(line))
			} else {
				b.WriteString(helpStyle.Render("  └ " + line))
			}
			b.WriteByte('\n')
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter edit • esc choose type • q quit"))
	}

	return b.String()
}
