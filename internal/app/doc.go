// Package app wires the editing core into an editor.
//
// Editor receives host events, routes them through a fixed table indexed
// by input mode and event kind, and renders each resulting state on the
// host surface. The package also provides the logger and Prometheus
// metrics shared by the other components.
package app
