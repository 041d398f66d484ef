package layout

// The engine never holds pointers between entities. Columns reference tiles
// by TileID, workspaces reference columns by ColumnID, and so on, with every
// lookup going through the Engine's arena maps. Ownership stays a strict
// tree (output → workspace → column → tile) while focus and hit-testing hold
// non-owning identifiers only.

// TileID identifies one placed window within the engine.
type TileID uint64

// ColumnID identifies one column within the engine.
type ColumnID uint64

// WorkspaceID identifies one workspace. It stays constant as the workspace
// moves between outputs and through the detached pool.
type WorkspaceID uint64

// OutputID is the stable identity of an output, normally the connector name
// ("DP-1", "HDMI-A-2"). It must survive disconnect/reconnect cycles so
// detached workspaces can find their way home.
type OutputID string

// WindowID is the opaque handle the protocol layer uses for a client window.
// The engine caches nothing about the window beyond this identifier and its
// last-known content size.
type WindowID uint64
