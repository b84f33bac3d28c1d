package preview

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SengdowJones/portfolio/internal/starfield"
)

const (
	frameRate = 250 * time.Millisecond
	countStep = 10

	defaultWidth  = 80
	defaultHeight = 24
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is an interactive star field preview.
type Model struct {
	initCount int
	initSeed  int64

	count  int
	seed   int64
	stars  []starfield.Star
	frame  int
	width  int
	height int
	err    error
}

// NewModel returns a preview of count stars generated from seed.
func NewModel(count int, seed int64) Model {
	m := Model{
		initCount: count,
		initSeed:  seed,
		count:     count,
		seed:      seed,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	return m.regenerate()
}

func (m Model) regenerate() Model {
	m.stars, m.err = starfield.Generate(m.count, m.seed)
	return m
}

// Stars returns the current layout.
func (m Model) Stars() []starfield.Star { return m.stars }

// Count returns the current star count.
func (m Model) Count() int { return m.count }

// Seed returns the current seed.
func (m Model) Seed() int64 { return m.seed }

// Init starts the animation clock.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles key presses, resizes and animation ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=":
			m.count += countStep
			return m.regenerate(), nil
		case "-", "_":
			m.count -= countStep
			if m.count < 0 {
				m.count = 0
			}
			return m.regenerate(), nil
		case "n", "right":
			m.seed++
			return m.regenerate(), nil
		case "p", "left":
			m.seed--
			return m.regenerate(), nil
		case "r":
			m.count, m.seed = m.initCount, m.initSeed
			return m.regenerate(), nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		// Leave room for the status line.
		m.height = msg.Height - 2
		if m.height < 1 {
			m.height = 1
		}

	case tickMsg:
		m.frame++
		return m, tick()
	}

	return m, nil
}

// View renders the field and a status line.
func (m Model) View() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}
	status := dim.Render(fmt.Sprintf("stars %d  seed %d  grid %dx%d   +/- count  n/p seed  r reset  q quit",
		m.count, m.seed, starfield.GridSize(m.count), starfield.GridSize(m.count)))
	return Render(m.stars, m.width, m.height, m.frame) + "\n\n" + status
}
