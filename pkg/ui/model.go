package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mindweave/mindweave/pkg/export"
	"github.com/mindweave/mindweave/pkg/gesture"
	"github.com/mindweave/mindweave/pkg/layout"
	"github.com/mindweave/mindweave/pkg/mindmap"
	"github.com/mindweave/mindweave/pkg/view"
)

const (
	// panStep is how far one arrow key press moves the view, in layout
	// units.
	panStep = 60.0

	// keyZoomFactor is applied per +/- press.
	keyZoomFactor = 1.1

	// wheelDelta is the synthetic deltaY fed to the gesture controller
	// per wheel tick.
	wheelDelta = 100.0
)

// ReloadMsg carries a freshly parsed tree after the source file
// changed on disk.
type ReloadMsg struct {
	Tree *mindmap.Node
}

// ModelOptions configures a new Model.
type ModelOptions struct {
	Tree      *mindmap.Node
	Title     string
	Theme     Theme
	Reloads   <-chan *mindmap.Node
	ExportDir string
	PNGScale  float64
}

// Model is the top-level bubbletea model for the diagram viewer.
type Model struct {
	theme Theme
	title string
	keys  keyMap

	tree       *mindmap.Node
	identified *mindmap.IdentifiedNode
	collapse   *view.CollapseStore
	transform  *view.TransformStore
	gestures   *gesture.Controller

	// nodes is the current flattened layout, recomputed after every
	// state change.
	nodes    []layout.Node
	selected int

	reloads   <-chan *mindmap.Node
	exportDir string
	pngScale  float64

	width  int
	height int
	ready  bool

	showHelp  bool
	statusMsg string

	// Mouse press tracking distinguishes a click from a drag.
	pressed bool
	dragged bool
	pressX  int
	pressY  int
}

// NewModel builds the viewer model around a tree.
func NewModel(opts ModelOptions) Model {
	transform := view.NewTransformStore()
	m := Model{
		theme:     opts.Theme,
		title:     opts.Title,
		keys:      defaultKeyMap(),
		tree:      opts.Tree,
		collapse:  view.NewCollapseStore(),
		transform: transform,
		gestures:  gesture.NewController(transform),
		reloads:   opts.Reloads,
		exportDir: opts.ExportDir,
		pngScale:  opts.PNGScale,
	}
	if m.title == "" && opts.Tree != nil {
		m.title = opts.Tree.Label
	}
	if m.theme.Name == "" {
		m.theme = DarkTheme()
	}
	m.rebuild()
	return m
}

// rebuild re-identifies the tree and recomputes the flat layout.
func (m *Model) rebuild() {
	if m.tree == nil {
		m.identified = nil
		m.nodes = nil
		return
	}
	m.identified = mindmap.Identify(m.tree)
	m.relayout()
}

func (m *Model) relayout() {
	m.nodes = layout.Compute(m.identified, m.collapse.Current())
	if m.selected >= len(m.nodes) {
		m.selected = 0
	}
}

func waitForReload(ch <-chan *mindmap.Node) tea.Cmd {
	return func() tea.Msg {
		tree, ok := <-ch
		if !ok {
			return nil
		}
		return ReloadMsg{Tree: tree}
	}
}

func (m Model) Init() tea.Cmd {
	if m.reloads != nil {
		return waitForReload(m.reloads)
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case ReloadMsg:
		// Collapse state survives a reload: identifiers are positional,
		// so unchanged regions keep their fold state and ids pointing at
		// removed nodes are simply inert.
		m.tree = msg.Tree
		m.rebuild()
		m.statusMsg = "reloaded"
		return m, waitForReload(m.reloads)

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit), msg.String() == "esc":
			m.showHelp = false
		}
		return m, nil
	}

	m.statusMsg = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Reset):
		// Reset restores both the transform and the fold state.
		m.transform.Reset()
		m.collapse.ResetAll()
		m.relayout()

	case key.Matches(msg, m.keys.PanLeft):
		m.transform.Pan(panStep, 0)
	case key.Matches(msg, m.keys.PanRight):
		m.transform.Pan(-panStep, 0)
	case key.Matches(msg, m.keys.PanUp):
		m.transform.Pan(0, panStep)
	case key.Matches(msg, m.keys.PanDown):
		m.transform.Pan(0, -panStep)

	case key.Matches(msg, m.keys.ZoomIn):
		m.transform.ZoomBy(keyZoomFactor)
	case key.Matches(msg, m.keys.ZoomOut):
		m.transform.ZoomBy(1 / keyZoomFactor)

	case key.Matches(msg, m.keys.Next):
		if len(m.nodes) > 0 {
			m.selected = (m.selected + 1) % len(m.nodes)
		}
	case key.Matches(msg, m.keys.Prev):
		if len(m.nodes) > 0 {
			m.selected = (m.selected + len(m.nodes) - 1) % len(m.nodes)
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.selected < len(m.nodes) && m.nodes[m.selected].HasChildren {
			m.toggle(m.nodes[m.selected].ID)
		}

	case key.Matches(msg, m.keys.Export):
		paths, err := export.ExportAll(context.Background(), m.tree, export.AllOptions{
			Dir:       m.exportDir,
			Title:     m.title,
			Collapsed: m.collapse.Current(),
			Theme:     export.ThemeByName(m.theme.Name),
			PNGScale:  m.pngScale,
		})
		if err != nil {
			m.statusMsg = fmt.Sprintf("export failed: %v", err)
		} else {
			m.statusMsg = fmt.Sprintf("exported %d files", len(paths))
		}

	case key.Matches(msg, m.keys.Clipboard):
		doc, err := export.GenerateMarkdown(m.tree, m.title)
		if err == nil {
			err = clipboard.WriteAll(doc)
		}
		if err != nil {
			m.statusMsg = fmt.Sprintf("copy failed: %v", err)
		} else {
			m.statusMsg = "copied outline to clipboard"
		}
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	px := float64(msg.X) * CellUnitX
	py := float64(msg.Y) * CellUnitY

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.gestures.Wheel(-wheelDelta)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.gestures.Wheel(wheelDelta)
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.gestures.PointerDown(0, px, py)
			m.pressed = true
			m.dragged = false
			m.pressX, m.pressY = msg.X, msg.Y
		}

	case tea.MouseActionMotion:
		if m.pressed {
			if msg.X != m.pressX || msg.Y != m.pressY {
				m.dragged = true
			}
			m.gestures.PointerMove(0, px, py)
		}

	case tea.MouseActionRelease:
		if !m.pressed {
			break
		}
		m.gestures.PointerUp(0)
		m.pressed = false
		if !m.dragged {
			// An unmoved press-release is a click: toggle exactly the
			// node under it, or nothing.
			if n, ok := NodeAt(m.nodes, m.transform.Current(), msg.X, msg.Y); ok && n.HasChildren {
				m.toggle(n.ID)
			}
		}
	}
	return m, nil
}

// toggle flips the fold state of one node and keeps the selection on
// it when possible.
func (m *Model) toggle(id string) {
	m.collapse.Toggle(id)
	m.relayout()
	for i, n := range m.nodes {
		if n.ID == id {
			m.selected = i
			break
		}
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.showHelp {
		return m.helpView()
	}

	canvasHeight := m.height - 1
	canvas := NewCanvas(m.width, canvasHeight, m.theme)
	selectedID := ""
	if m.selected < len(m.nodes) {
		selectedID = m.nodes[m.selected].ID
	}
	canvas.Draw(m.nodes, m.transform.Current(), selectedID)

	return lipgloss.JoinVertical(lipgloss.Left, canvas.Render(), m.renderFooter())
}

func (m *Model) renderFooter() string {
	tf := m.transform.Current()
	left := m.theme.Title.Render(" "+m.title+" ") +
		m.theme.Footer.Render(fmt.Sprintf(" %d nodes · %.0f%% ", len(m.nodes), tf.Scale*100))

	keys := "drag: pan · wheel: zoom · click/space: fold · r: reset · e: export · ?: help · q: quit"
	if m.statusMsg != "" {
		keys = m.statusMsg
	}
	right := m.theme.FooterKey.Render(keys + " ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}

// SelectedID returns the id of the currently selected node, if any.
func (m Model) SelectedID() (string, bool) {
	if m.selected < len(m.nodes) {
		return m.nodes[m.selected].ID, true
	}
	return "", false
}

// Transform exposes the current view transform.
func (m Model) Transform() view.Transform {
	return m.transform.Current()
}

// Collapsed exposes the current collapse set.
func (m Model) Collapsed() view.CollapseSet {
	return m.collapse.Current()
}

// VisibleNodes returns the current flattened layout.
func (m Model) VisibleNodes() []layout.Node {
	return m.nodes
}
