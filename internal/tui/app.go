package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tyl-create/elec-n/internal/scene"
)

// sceneInfo gives the picker a one-line description per preset.
var sceneInfo = map[string]string{
	"dipole":    "bound pair, damped collapse",
	"mirror":    "equal charges repelling",
	"orbit":     "satellite circling a fixed nucleus",
	"shell":     "conducting sphere, inside vs outside",
	"ring-axis": "charged ring with an axial satellite",
	"lattice":   "alternating grid relaxing",
	"scatter":   "noise-seeded charge cloud",
}

const (
	statePicker = iota
	stateLive
)

// App is the entry TUI: a preset picker that hands off to the live view.
type App struct {
	state  int
	cursor int
	names  []string
	live   Model
}

func NewApp() App {
	return App{names: scene.ListPresets()}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.state == stateLive {
		next, cmd := a.live.Update(msg)
		a.live = next.(Model)
		return a, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "up", "k":
			if a.cursor > 0 {
				a.cursor--
			}
		case "down", "j":
			if a.cursor < len(a.names)-1 {
				a.cursor++
			}
		case "enter", " ":
			live, err := NewLive(scene.GetPreset(a.names[a.cursor]))
			if err != nil {
				return a, tea.Quit
			}
			a.live = live
			a.state = stateLive
			return a, a.live.Init()
		}
	}
	return a, nil
}

func (a App) View() string {
	if a.state == stateLive {
		return a.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render("ELEC-N") + "\n")
	b.WriteString("    " + subtitleStyle.Render("electrostatic field sandbox") + "\n")
	b.WriteString("    " + subtitleStyle.Render("───────────────────────────") + "\n\n")

	for i, name := range a.names {
		desc := sceneInfo[name]
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				cursorStyle.Render("▸"),
				selectedStyle.Render(fmt.Sprintf("%-12s", name)),
				descStyle.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n",
				itemStyle.Render(fmt.Sprintf("%-12s", name)),
				dimDescStyle.Render(desc)))
		}
	}

	b.WriteString("\n    " + keyStyle.Render("j/k") + itemStyle.Render(" navigate  ") +
		keyStyle.Render("enter") + itemStyle.Render(" run  ") +
		keyStyle.Render("q") + itemStyle.Render(" quit") + "\n")
	return b.String()
}

// RunPicker opens the preset menu.
func RunPicker() error {
	_, err := tea.NewProgram(NewApp(), tea.WithAltScreen()).Run()
	return err
}

// RunLive starts the live view directly on one scene.
func RunLive(cfg *scene.Config) error {
	m, err := NewLive(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
