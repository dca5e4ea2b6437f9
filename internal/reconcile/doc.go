// Package reconcile keeps the editor model and an external host surface in
// agreement.
//
// The host surface is whatever displays the document and collects input:
// a browser DOM, a terminal widget or the in-memory MemoryHost used by
// tests and the replay command. The package talks to it only through the
// Host interface: probing host nodes for the leaf they render, requesting
// rebuilds, re-applying selections and watching for structural mutation.
//
// Three pieces live here:
//
//   - DeriveSelection and SyncSelection map host selections onto the model
//     and decide whether the model must force its selection back.
//   - Surface tracks what the host currently displays and issues rebuild
//     and selection commands only when a state requires them.
//   - Composer is the composition (IME) state machine. A session moves
//     Idle -> Composing -> Committing -> Idle, and every session ends in a
//     commit, possibly one that changes no text.
//
// None of these types are safe for concurrent use; host events are
// processed one at a time.
package reconcile
