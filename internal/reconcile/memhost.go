package reconcile

import (
	"github.com/dshills/inkwell/internal/engine/blocktree"
	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/selection"
)

// CommandKind identifies a command received by a MemoryHost.
type CommandKind uint8

const (
	CommandRebuild CommandKind = iota + 1
	CommandApplySelection
)

// String returns the command name.
func (k CommandKind) String() string {
	switch k {
	case CommandRebuild:
		return "rebuild"
	case CommandApplySelection:
		return "apply-selection"
	default:
		return "unknown"
	}
}

// Command is one recorded host command.
type Command struct {
	Kind      CommandKind
	Content   *content.Content
	Selection selection.Selection
}

// MemoryHost is an in-memory Host. Its nodes are the rendered leaves,
// identified by their offset keys. Mutations are queued per watcher and
// delivered by Flush or Deliver.
type MemoryHost struct {
	decorator blocktree.Decorator

	content   *content.Content
	trees     map[string]blocktree.Tree
	selection selection.Selection
	log       []Command

	watchers map[int]*memWatch
	nextID   int
}

// NewMemoryHost creates a host already displaying c.
func NewMemoryHost(c *content.Content, d blocktree.Decorator) *MemoryHost {
	h := &MemoryHost{decorator: d, watchers: make(map[int]*memWatch)}
	h.Sync(c)
	return h
}

// Sync updates the host's rendering to c without recording a command. It
// models the host editing its own rendering, as it does for natively
// rendered input.
func (h *MemoryHost) Sync(c *content.Content) {
	h.content = c
	h.trees = make(map[string]blocktree.Tree, c.Len())
	for _, b := range c.Blocks() {
		h.trees[b.Key()] = blocktree.Generate(c, b, h.decorator)
	}
}

// Probe implements Prober.
func (h *MemoryHost) Probe(node string) (string, bool) {
	key, err := blocktree.ParseOffsetKey(node)
	if err != nil {
		return "", false
	}
	tree, ok := h.trees[key.BlockKey]
	if !ok {
		return "", false
	}
	if _, ok := tree.Leaf(key.SetIndex, key.LeafIndex); !ok {
		return "", false
	}
	return node, true
}

// Rebuild implements Host.
func (h *MemoryHost) Rebuild(c *content.Content) {
	h.Sync(c)
	h.log = append(h.log, Command{Kind: CommandRebuild, Content: c})
}

// ApplySelection implements Host.
func (h *MemoryHost) ApplySelection(sel selection.Selection) {
	h.selection = sel
	h.log = append(h.log, Command{Kind: CommandApplySelection, Selection: sel})
}

// WatchMutations implements Host.
func (h *MemoryHost) WatchMutations(fn func()) MutationWatch {
	h.nextID++
	w := &memWatch{host: h, id: h.nextID, fn: fn}
	h.watchers[w.id] = w
	return w
}

// Mutate queues one structural mutation record for every active watcher.
func (h *MemoryHost) Mutate() {
	for _, w := range h.watchers {
		w.pending++
	}
}

// Deliver hands every queued record to its watcher, as a host event loop
// would on a later turn.
func (h *MemoryHost) Deliver() {
	for _, w := range h.watchers {
		w.Flush()
	}
}

// ActiveWatches returns the number of open watches.
func (h *MemoryHost) ActiveWatches() int { return len(h.watchers) }

// Content returns the content the host displays.
func (h *MemoryHost) Content() *content.Content { return h.content }

// Selection returns the last selection applied by the model.
func (h *MemoryHost) Selection() selection.Selection { return h.selection }

// Log returns the recorded commands, oldest first.
func (h *MemoryHost) Log() []Command {
	out := make([]Command, len(h.log))
	copy(out, h.log)
	return out
}

// ResetLog forgets recorded commands.
func (h *MemoryHost) ResetLog() { h.log = nil }

// Point returns the host point rendering the model position key/offset.
// ok is false when the block is not displayed.
func (h *MemoryHost) Point(key string, offset int) (HostPoint, bool) {
	tree, ok := h.trees[key]
	if !ok {
		return HostPoint{}, false
	}
	si, li := tree.Locate(offset)
	leaf, _ := tree.Leaf(si, li)
	node := blocktree.OffsetKey{BlockKey: key, SetIndex: si, LeafIndex: li}
	return HostPoint{Node: node.String(), Offset: offset - leaf.Start}, true
}

// Caret returns a collapsed host range at key/offset.
func (h *MemoryHost) Caret(key string, offset int) HostRange {
	p, _ := h.Point(key, offset)
	return HostCaret(p)
}

// Range returns a host range from the anchor to the focus position.
func (h *MemoryHost) Range(anchorKey string, anchorOffset int, focusKey string, focusOffset int) HostRange {
	a, _ := h.Point(anchorKey, anchorOffset)
	f, _ := h.Point(focusKey, focusOffset)
	return HostRange{Anchor: a, Focus: f}
}

type memWatch struct {
	host    *MemoryHost
	id      int
	fn      func()
	pending int
	closed  bool
}

func (w *memWatch) Flush() {
	if w.closed || w.pending == 0 {
		return
	}
	w.pending = 0
	w.fn()
}

func (w *memWatch) Close() {
	if w.closed {
		return
	}
	w.closed = true
	delete(w.host.watchers, w.id)
}
