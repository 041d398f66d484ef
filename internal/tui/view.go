package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/strandwm/strand/internal/ipc"
	"github.com/strandwm/strand/internal/layout"
)

var (
	outputStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	activeWorkspaceStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42"))

	workspaceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	focusedTileStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// renderState renders the layout tree: outputs, workspace stacks, columns,
// tiles, floating windows, and the detached pool.
func renderState(st *layout.State) string {
	var b strings.Builder

	for _, out := range st.Outputs {
		fmt.Fprintln(&b, outputStyle.Render(out.Name)+dimStyle.Render(fmt.Sprintf(
			"  %.0fx%.0f@%.0f,%.0f scale %.2g",
			out.WorkArea.Width, out.WorkArea.Height, out.WorkArea.X, out.WorkArea.Y, out.Scale)))
		for _, ws := range out.Workspaces {
			renderWorkspace(&b, ws, st.Focus, "  ")
		}
	}

	for _, d := range st.Detached {
		fmt.Fprintln(&b, dimStyle.Render("detached ("+d.Origin+")"))
		for _, ws := range d.Workspaces {
			renderWorkspace(&b, ws, st.Focus, "  ")
		}
	}

	if len(st.Outputs) == 0 && len(st.Detached) == 0 {
		fmt.Fprintln(&b, dimStyle.Render("no outputs connected"))
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderWorkspace(b *strings.Builder, ws layout.WorkspaceState, focus layout.FocusState, indent string) {
	label := fmt.Sprintf("workspace %d", ws.Idx)
	if ws.Name != "" {
		label += " (" + ws.Name + ")"
	}
	style := workspaceStyle
	if ws.IsActive {
		label = "* " + label
		style = activeWorkspaceStyle
	} else {
		label = "  " + label
	}
	fmt.Fprintln(b, indent+style.Render(label))

	for ci, col := range ws.Columns {
		fmt.Fprintln(b, indent+"    "+dimStyle.Render(fmt.Sprintf("col %d [%s]", ci, col.Width)))
		for _, t := range col.Tiles {
			fmt.Fprintln(b, indent+"      "+renderTile(t, focus))
		}
	}
	for _, t := range ws.Floating {
		fmt.Fprintln(b, indent+"    "+renderTile(t, focus)+dimStyle.Render(" (floating)"))
	}
}

func renderTile(t layout.TileState, focus layout.FocusState) string {
	label := fmt.Sprintf("tile %d win %d", t.ID, t.Window)
	if t.Fullscreen {
		label += " [fullscreen]"
	}
	if t.ID == focus.Tile && focus.Tile != 0 {
		return focusedTileStyle.Render("> " + label)
	}
	return "  " + label
}

// renderStatusBar renders the daemon connection status bar.
func renderStatusBar(connected bool, status *ipc.StatusData, width int) string {
	var text string
	if connected && status != nil {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
		text = fmt.Sprintf("%s strand  outputs:%d workspaces:%d tiles:%d",
			dot, status.Outputs, status.Workspaces, status.Tiles)
		if status.Animating {
			text += "  animating"
		}
	} else {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("●")
		text = dot + " daemon not running"
	}

	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(text)
}

func renderDisconnected(lastError string, width, height int) string {
	msg := "cannot reach the daemon"
	if lastError != "" {
		msg += "\n" + lastError
	}
	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Foreground(lipgloss.Color("241")).
		Align(lipgloss.Center, lipgloss.Center)
	return style.Render(msg)
}

// renderHelpBar renders the bottom help/keybinding bar.
func renderHelpBar(width int) string {
	help := "r: refresh  q/ctrl-c: quit"
	style := lipgloss.NewStyle().
		Width(width).
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	return style.Render(help)
}
