package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/scenekit/gltf"
	"github.com/scenekit/gltf/validate"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F87AF")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F87AF"))

	violationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSections modelState = iota
	stateDetail
)

type section struct {
	title string
	lines []string
}

type inspectorModel struct {
	err      error
	filename string
	sections []section
	selected int
	state    modelState
	viewport viewport.Model
	width    int
	height   int
	ready    bool
	complete bool
}

type loadedMsg struct {
	err      error
	sections []section
}

func runInteractive(file string, complete bool) error {
	m := &inspectorModel{filename: file, complete: complete}
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(*inspectorModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

func (m *inspectorModel) Init() tea.Cmd {
	file, complete := m.filename, m.complete
	return func() tea.Msg {
		sections, err := inspect(file, complete)
		return loadedMsg{sections: sections, err: err}
	}
}

func (m *inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.sections = msg.sections
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = viewport.New(msg.Width, msg.Height-4)
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.state == stateSections && m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.state == stateSections && m.selected < len(m.sections)-1 {
				m.selected++
			}
		case "enter":
			if m.state == stateSections && m.ready && len(m.sections) > 0 {
				m.viewport.SetContent(strings.Join(m.sections[m.selected].lines, "\n"))
				m.viewport.GotoTop()
				m.state = stateDetail
			}
		case "esc":
			if m.state == stateDetail {
				m.state = stateSections
			}
		}
	}

	if m.state == stateDetail {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *inspectorModel) View() string {
	if m.err != nil {
		return violationStyle.Render(m.err.Error()) + "\n"
	}
	if m.sections == nil {
		return "Loading " + m.filename + "...\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("gltfcheck: "+m.filename) + "\n\n")

	switch m.state {
	case stateSections:
		for i, s := range m.sections {
			line := fmt.Sprintf("%s (%d)", s.title, len(s.lines))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> "+line) + "\n")
			} else {
				b.WriteString(sectionStyle.Render("  "+line) + "\n")
			}
		}
		b.WriteString("\n" + helpStyle.Render("up/down: select  enter: open  q: quit"))
	case stateDetail:
		b.WriteString(m.viewport.View() + "\n")
		b.WriteString(helpStyle.Render("up/down: scroll  esc: back  q: quit"))
	}
	return b.String()
}

// inspect loads a document and renders every collection into displayable
// sections, including validation results and decoded animation previews.
func inspect(file string, complete bool) ([]section, error) {
	asset, err := gltf.Open(file)
	if err != nil {
		return nil, err
	}

	raw := asset.JSON()
	var sections []section

	violations := section{title: "Validation"}
	var verr error
	pass := "minimal"
	if complete {
		pass = "complete"
		_, verr = asset.ValidateCompletely()
	} else {
		_, verr = asset.ValidateMinimally()
	}
	if verr == nil {
		violations.lines = []string{okStyle.Render(pass + " pass: no violations")}
	} else {
		var errs validate.Errors
		if !errors.As(verr, &errs) {
			return nil, verr
		}
		for _, v := range errs {
			violations.lines = append(violations.lines,
				violationStyle.Render(fmt.Sprintf("%s  %s: %s", v.Kind, v.Path, v.Detail)))
		}
	}
	sections = append(sections, violations)

	buffers := section{title: "Buffers"}
	for i, b := range raw.Buffers {
		uri := b.URI
		if uri == "" {
			uri = "(embedded)"
		} else if len(uri) > 40 {
			uri = uri[:40] + "..."
		}
		buffers.lines = append(buffers.lines, fmt.Sprintf("[%d] %d bytes  %s", i, b.ByteLength, uri))
	}
	sections = append(sections, buffers)

	views := section{title: "BufferViews"}
	for i, v := range raw.BufferViews {
		stride := "tight"
		if v.ByteStride != nil {
			stride = fmt.Sprintf("stride %d", *v.ByteStride)
		}
		views.lines = append(views.lines,
			fmt.Sprintf("[%d] buffer %d  [%d, %d)  %s", i, v.Buffer, v.ByteOffset, v.ByteOffset+v.ByteLength, stride))
	}
	sections = append(sections, views)

	accessors := section{title: "Accessors"}
	for i, a := range raw.Accessors {
		norm := ""
		if a.Normalized {
			norm = " normalized"
		}
		accessors.lines = append(accessors.lines,
			fmt.Sprintf("[%d] %s/%s x%d%s  %s", i, a.Type, a.ComponentType, a.Count, norm, a.Name))
	}
	sections = append(sections, accessors)

	doc := asset.SkipValidation()
	resolver := doc.Resolver()

	animations := section{title: "Animations"}
	for _, anim := range doc.Animations() {
		for i, ch := range anim.Channels() {
			animations.lines = append(animations.lines,
				describeChannel(anim, i, ch, resolver))
		}
	}
	sections = append(sections, animations)

	skins := section{title: "Skins"}
	for _, skin := range doc.Skins() {
		line := fmt.Sprintf("[%d] %d joints", skin.Index(), skin.Joints().Count())
		res, err := skin.Reader(resolver).ReadInverseBindMatrices()
		switch {
		case err != nil:
			line += violationStyle.Render("  ibm error: " + err.Error())
		case res.State == gltf.IBMNoAccessor:
			line += "  ibm: identity"
		case res.State == gltf.IBMUnresolved:
			line += "  ibm: unresolved"
		default:
			line += fmt.Sprintf("  ibm: %d matrices", res.Matrices.Count())
		}
		skins.lines = append(skins.lines, line)
	}
	sections = append(sections, skins)

	return sections, nil
}

func describeChannel(anim gltf.Animation, i int, ch gltf.Channel, resolver gltf.Resolver) string {
	target := ch.Target()
	prefix := fmt.Sprintf("[%d.%d] %s", anim.Index(), i, target.Path)

	reader := ch.Reader(resolver)
	times, err := reader.ReadInputs()
	if err != nil {
		return prefix + violationStyle.Render("  "+err.Error())
	}
	if times == nil {
		return prefix + "  (buffer unresolved)"
	}

	preview := make([]string, 0, 4)
	for t, ok := times.Next(); ok && len(preview) < 4; t, ok = times.Next() {
		preview = append(preview, fmt.Sprintf("%.3f", t))
	}
	suffix := ""
	if times.Count() > len(preview) {
		suffix = ", ..."
	}
	return fmt.Sprintf("%s  %d keyframes  t=[%s%s]", prefix, times.Count(), strings.Join(preview, ", "), suffix)
}
