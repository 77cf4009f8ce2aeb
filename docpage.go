// Package docpage implements the interactive pieces of a generated
// documentation page: relative timestamps that keep themselves current and
// a quick finder for jumping to any exported identifier on the page.
//
// This package contains domain types, the two state machines, and the
// interfaces they depend on, following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, http/, bubbletea/).
package docpage
