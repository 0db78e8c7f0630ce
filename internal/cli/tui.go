package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sawitlabs/petamap/pkg/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// Editor movement steps in normalized page coordinates.
const (
	stepCoarse = 0.01
	stepFine   = 0.002
)

// Preview canvas dimensions in terminal cells. The aspect roughly matches an
// A3 landscape page when cells are twice as tall as wide.
const (
	previewCols = 56
	previewRows = 20
)

// editorMode tracks which keymap is active.
type editorMode int

const (
	modeNormal editorMode = iota
	modeAdd               // waiting for a kind key after "a"
	modeQuit              // waiting for quit confirmation with unsaved changes
)

// =============================================================================
// EditorModel - Interactive layout editing
// =============================================================================

// EditorModel is the bubbletea model for the layout editor. It owns one
// layout.Model and mutates it through the same operations the CLI exposes,
// so editor state can never diverge from what a layout file allows.
type EditorModel struct {
	Path   string
	Layout *layout.Model

	names  []string // stable display order, rebuilt after add/delete/reset
	cursor int
	mode   editorMode
	status string
	fine   bool // fine-grained movement toggle

	Dirty bool
	Saved bool
}

// NewEditorModel creates an editor for the given layout.
func NewEditorModel(path string, m *layout.Model) EditorModel {
	em := EditorModel{Path: path, Layout: m}
	em.refreshNames("")
	return em
}

// refreshNames rebuilds the display order, keeping the cursor on keep when
// it still exists.
func (m *EditorModel) refreshNames(keep string) {
	els := m.Layout.Elements()
	m.names = make([]string, len(els))
	for i, el := range els {
		m.names[i] = el.Name
		if el.Name == keep {
			m.cursor = i
		}
	}
	if m.cursor >= len(m.names) {
		m.cursor = len(m.names) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// current returns the element under the cursor.
func (m *EditorModel) current() (*layout.Element, bool) {
	if len(m.names) == 0 {
		return nil, false
	}
	return m.Layout.Get(m.names[m.cursor])
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	key := keyMsg.String()

	switch m.mode {
	case modeQuit:
		return m.updateQuit(key)
	case modeAdd:
		return m.updateAdd(key)
	}
	return m.updateNormal(key)
}

// updateQuit handles the unsaved-changes confirmation.
func (m EditorModel) updateQuit(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "y":
		return m, tea.Quit
	default:
		m.mode = modeNormal
		m.status = ""
	}
	return m, nil
}

// updateAdd handles the kind selection after "a".
func (m EditorModel) updateAdd(key string) (tea.Model, tea.Cmd) {
	var kind layout.Kind
	switch key {
	case "c":
		kind = layout.KindCompass
	case "s":
		kind = layout.KindScaleBar
	case "t":
		kind = layout.KindTextBox
	default:
		m.mode = modeNormal
		m.status = ""
		return m, nil
	}

	// New elements land mid-page where they are easy to grab.
	el, err := m.Layout.Create(kind, layout.Rect{Left: 0.40, Bottom: 0.45, Width: 0.15, Height: 0.10})
	m.mode = modeNormal
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.refreshNames(el.Name)
	m.Dirty = true
	m.status = fmt.Sprintf("added %s", el.Name)
	return m, nil
}

// updateNormal handles the main keymap.
func (m EditorModel) updateNormal(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		if m.Dirty && !m.Saved {
			m.mode = modeQuit
			m.status = "unsaved changes, q again to discard"
			return m, nil
		}
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case "tab":
		if len(m.names) > 0 {
			m.cursor = (m.cursor + 1) % len(m.names)
		}

	case "left", "right", "h", "l":
		m.nudge(key, 0)
	case "shift+up", "K":
		m.nudge("up", 0)
	case "shift+down", "J":
		m.nudge("down", 0)
	case "shift+left", "H":
		m.nudge("left", 1)
	case "shift+right", "L":
		m.nudge("right", 1)
	case "+", "=":
		m.resize(1)
	case "-":
		m.resize(-1)

	case "f":
		m.fine = !m.fine
		if m.fine {
			m.status = "fine movement"
		} else {
			m.status = "coarse movement"
		}

	case "v":
		if el, ok := m.current(); ok {
			visible := !el.Visible
			if err := m.Layout.Update(el.Name, layout.Patch{Visible: &visible}); err == nil {
				m.Dirty = true
				m.status = fmt.Sprintf("%s visible=%v", el.Name, visible)
			}
		}

	case "a":
		m.mode = modeAdd
		m.status = "add: c compass  s scale bar  t text box  (any other key cancels)"

	case "d":
		if el, ok := m.current(); ok {
			if err := m.Layout.Delete(el.Name); err != nil {
				m.status = err.Error()
			} else {
				m.refreshNames("")
				m.Dirty = true
				m.status = fmt.Sprintf("deleted %s", el.Name)
			}
		}

	case "r":
		if el, ok := m.current(); ok {
			if err := m.Layout.Reset(el.Name); err != nil {
				m.status = err.Error()
			} else {
				m.Dirty = true
				m.status = fmt.Sprintf("reset %s to default", el.Name)
			}
		}
	case "R":
		m.Layout.ResetAll()
		m.refreshNames("")
		m.Dirty = true
		m.status = "reset all elements to defaults"

	case "w", "ctrl+s":
		if err := m.Layout.Save(m.Path); err != nil {
			m.status = "save failed: " + err.Error()
		} else {
			m.Saved = true
			m.Dirty = false
			m.status = "saved " + m.Path
		}
	}
	return m, nil
}

// step returns the active movement increment.
func (m *EditorModel) step() float64 {
	if m.fine {
		return stepFine
	}
	return stepCoarse
}

// nudge moves (axis ignored) or resizes the selected element. For movement
// the direction key shifts Left/Bottom; for resize (axis 1) it grows or
// shrinks Width/Height.
func (m *EditorModel) nudge(key string, axis int) {
	el, ok := m.current()
	if !ok {
		return
	}
	pos := el.Position
	d := m.step()

	if axis == 0 {
		switch key {
		case "left", "h":
			pos.Left -= d
		case "right", "l":
			pos.Left += d
		case "up":
			pos.Bottom += d
		case "down":
			pos.Bottom -= d
		}
	} else {
		switch key {
		case "left":
			pos.Width -= d
		case "right":
			pos.Width += d
		}
	}

	if err := m.Layout.Update(el.Name, layout.Patch{Position: &pos}); err != nil {
		m.status = err.Error()
		return
	}
	m.Dirty = true
	m.status = ""
}

// resize grows (dir > 0) or shrinks the selected element uniformly.
func (m *EditorModel) resize(dir int) {
	el, ok := m.current()
	if !ok {
		return
	}
	pos := el.Position
	d := m.step() * float64(dir)
	pos.Width += d
	pos.Height += d

	if err := m.Layout.Update(el.Name, layout.Patch{Position: &pos}); err != nil {
		m.status = err.Error()
		return
	}
	m.Dirty = true
	m.status = ""
}

func (m EditorModel) View() string {
	var b strings.Builder

	title := "Layout Editor"
	if m.Dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title) + "  " + listDimStyle.Render(m.Path))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ select  ←/→/K/J move  H/L width  +/- size  v visibility  a add  d delete  r/R reset  w save  q quit"))
	b.WriteString("\n\n")

	preview := m.renderPreview()
	list := m.renderList()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, preview, "  ", list))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n" + StyleWarning.Render(m.status) + "\n")
	}
	return b.String()
}

// renderList draws the element table with the cursor row highlighted.
func (m EditorModel) renderList() string {
	var b strings.Builder
	for i, name := range m.names {
		el, ok := m.Layout.Get(name)
		if !ok {
			continue
		}
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		marker := " "
		if el.Protected {
			marker = "●"
		}
		visibility := " "
		if !el.Visible {
			visibility = "hidden"
		}

		line := fmt.Sprintf("%s%s %-14s [%.2f %.2f %.2f %.2f] %s",
			cursor, marker, name,
			el.Position.Left, el.Position.Bottom, el.Position.Width, el.Position.Height,
			visibility)

		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case !el.Visible:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + listDimStyle.Render("● protected"))
	return b.String()
}

// renderPreview draws a character-cell sketch of the page. Each element
// paints its label letter over its rectangle; the selected element paints
// last so it always shows on top.
func (m EditorModel) renderPreview() string {
	grid := make([][]rune, previewRows)
	for r := range grid {
		grid[r] = make([]rune, previewCols)
		for c := range grid[r] {
			grid[r][c] = '·'
		}
	}

	paint := func(el *layout.Element, selected bool) {
		ch := previewRune(el.Kind)
		if selected {
			ch = '█'
		}
		c0 := int(el.Position.Left * previewCols)
		c1 := int((el.Position.Left + el.Position.Width) * previewCols)
		// Rows grow downward, page coordinates upward.
		r1 := previewRows - 1 - int(el.Position.Bottom*previewRows)
		r0 := previewRows - 1 - int((el.Position.Bottom+el.Position.Height)*previewRows)
		for r := r0; r <= r1; r++ {
			if r < 0 || r >= previewRows {
				continue
			}
			for c := c0; c < c1; c++ {
				if c < 0 || c >= previewCols {
					continue
				}
				grid[r][c] = ch
			}
		}
	}

	var selectedName string
	if len(m.names) > 0 {
		selectedName = m.names[m.cursor]
	}
	for _, name := range m.names {
		if name == selectedName {
			continue
		}
		if el, ok := m.Layout.Get(name); ok && el.Visible {
			paint(el, false)
		}
	}
	if el, ok := m.Layout.Get(selectedName); ok && el.Visible {
		paint(el, true)
	}

	var b strings.Builder
	border := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	for r, row := range grid {
		b.WriteString(string(row))
		if r < previewRows-1 {
			b.WriteString("\n")
		}
	}
	return border.Render(b.String())
}

// previewRune maps a kind to its preview letter.
func previewRune(k layout.Kind) rune {
	switch k {
	case layout.KindMainMap:
		return 'M'
	case layout.KindTitle:
		return 'T'
	case layout.KindLegend:
		return 'L'
	case layout.KindOverview:
		return 'O'
	case layout.KindLogoInfo:
		return 'I'
	case layout.KindCompass:
		return 'C'
	case layout.KindScaleBar:
		return 'S'
	case layout.KindTextBox:
		return 'X'
	}
	return '?'
}
