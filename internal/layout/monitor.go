package layout

import "time"

// Monitor is the per-output workspace stack: an ordered set of workspaces
// with an active index and the vertical switch animation between them.
//
// Invariant: the stack always ends in exactly one empty workspace, so the
// user can always scroll down to fresh space. Adjacent trailing empties
// collapse; an empty workspace that is neither trailing nor active is
// destroyed.
type Monitor struct {
	output     OutputID
	workspaces []WorkspaceID
	active     int

	// switchPos is the stack's vertical position in workspace units. At
	// rest it equals float64(active); during a workspace switch it animates
	// between the old and new index.
	switchPos animated
}

// Output returns the output this stack belongs to.
func (m *Monitor) Output() OutputID { return m.output }

// Workspaces returns the stack order.
func (m *Monitor) Workspaces() []WorkspaceID { return m.workspaces }

// ActiveIndex returns the index of the active workspace.
func (m *Monitor) ActiveIndex() int { return m.active }

// ActiveWorkspace returns the active workspace's id, or 0 for an empty
// stack (which only occurs transiently during hotplug).
func (m *Monitor) ActiveWorkspace() WorkspaceID {
	if m.active < 0 || m.active >= len(m.workspaces) {
		return 0
	}
	return m.workspaces[m.active]
}

// workspaceIndex returns the stack position of id, or -1.
func (m *Monitor) workspaceIndex(id WorkspaceID) int {
	for i, ws := range m.workspaces {
		if ws == id {
			return i
		}
	}
	return -1
}

// setActive clamps idx into the stack and retargets the switch animation.
func (m *Monitor) setActive(idx int, p AnimationParams) {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.workspaces) {
		idx = len(m.workspaces) - 1
	}
	if idx < 0 {
		idx = 0
	}
	m.active = idx
	m.switchPos.Set(float64(idx), p)
}

// removeWorkspace drops id from the stack, keeping the active index on the
// same workspace where possible. The switch position snaps along with the
// index shift so removal of an off-screen workspace causes no visible
// motion.
func (m *Monitor) removeWorkspace(id WorkspaceID) {
	i := m.workspaceIndex(id)
	if i < 0 {
		return
	}
	m.workspaces = append(m.workspaces[:i], m.workspaces[i+1:]...)
	if m.active > i || m.active >= len(m.workspaces) {
		m.active--
	}
	if m.active < 0 {
		m.active = 0
	}
	if !m.switchPos.Running() {
		m.switchPos.Snap(float64(m.active))
	}
}

// tick advances the workspace-switch animation.
func (m *Monitor) tick(dt time.Duration) {
	m.switchPos.Tick(dt)
}
