package script

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/inkwell/internal/app"
	"github.com/dshills/inkwell/internal/input/mode"
)

func quiet() Runner {
	return Runner{EditorOptions: []app.Option{app.WithLogger(app.NullLogger())}}
}

func replay(t *testing.T, doc string) *Result {
	t.Helper()
	sc, err := Parse([]byte(doc))
	require.NoError(t, err)
	res, err := quiet().Run(sc)
	require.NoError(t, err)
	require.NoError(t, res.Check(sc.Expect))
	return res
}

func TestReplayComposition(t *testing.T) {
	res := replay(t, `
name: compose hello
blocks:
  - key: a
    text: Hel
selection:
  anchor: {key: a, offset: 3}
events:
  - kind: compositionstart
  - kind: compositionupdate
    text: Hel
  - kind: compositionupdate
    text: Hello
  - kind: compositionend
    text: Hello
expect:
  blocks: [Hello]
  mode: edit
  undo: 1
  rebuilds: 0
`)
	assert.Equal(t, mode.Edit, res.Mode)
}

func TestReplayNativeTypingKeepsHostInSync(t *testing.T) {
	res := replay(t, `
blocks:
  - key: a
    text: x
selection:
  anchor: {key: a, offset: 1}
events:
  - kind: beforeinput
    input: insertText
    text: "y"
  - kind: select
    at:
      anchor: {key: a, offset: 0}
      focus: {key: a, offset: 2}
  - kind: command
    command: toggle-style
    arg: BOLD
expect:
  blocks: [xy]
  undo: 2
  rebuilds: 1
`)
	b := res.State.Content().First()
	assert.True(t, b.StyleAt(1).Has("BOLD"))
}

func TestReplayCommands(t *testing.T) {
	replay(t, `
blocks:
  - {key: a, text: hello}
  - {key: b, text: world}
selection:
  anchor: {key: a, offset: 5}
events:
  - kind: command
    command: merge
    arg: a
  - kind: command
    command: replace
    arg: " "
    at:
      anchor: {key: a, offset: 5}
  - kind: command
    command: undo
  - kind: command
    command: redo
expect:
  blocks: [hello world]
  undo: 2
`)
}

func TestReplayTickCommitsComposition(t *testing.T) {
	replay(t, `
blocks:
  - {key: a, text: Hel}
selection:
  anchor: {key: a, offset: 3}
events:
  - kind: compositionstart
  - kind: compositionupdate
    text: lo
  - kind: tick
    advance: 500ms
  - kind: tick
    advance: 2s
expect:
  blocks: [Hello]
  mode: edit
`)
}

func TestReplayRawDocument(t *testing.T) {
	res := replay(t, `
raw: |
  {"blocks":[{"key":"k","text":"hi","type":"header-one","depth":0,"inlineStyleRanges":[],"entityRanges":[],"data":{}}],"entityMap":{}}
selection:
  anchor: {key: k, offset: 2}
events:
  - kind: command
    command: insert-text
    arg: "!"
expect:
  blocks: [hi!]
`)
	assert.Equal(t, "header-one", string(res.State.Content().First().Type()))
}

func TestReplayExpectedFailure(t *testing.T) {
	res := replay(t, `
blocks:
  - {key: a, text: hi}
events:
  - kind: paste
    error: true
  - kind: select
    at:
      anchor: {node: nowhere, offset: 0}
`)
	assert.Equal(t, 1, res.Failed)
	assert.True(t, res.State.MustForceSelection(), "unknown host node forces the model selection")
}

func TestReplayStepErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "unexpected failure",
			doc:  "blocks: [{key: a}]\nevents:\n  - kind: paste\n",
			want: app.ErrNothingToPaste,
		},
		{
			name: "missing failure",
			doc:  "blocks: [{key: a}]\nevents:\n  - kind: tick\n    error: true\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			_, err = quiet().Run(sc)

			var se *StepError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, 0, se.Index)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty", doc: ""},
		{name: "no content", doc: "events: []\n"},
		{name: "unknown field", doc: "blocks: [{key: a}]\ncolour: red\n"},
		{name: "unknown kind", doc: "blocks: [{key: a}]\nevents:\n  - kind: keypress\n"},
		{name: "unknown command", doc: "blocks: [{key: a}]\nevents:\n  - kind: command\n    command: shout\n"},
		{name: "missing arg", doc: "blocks: [{key: a}]\nevents:\n  - kind: command\n    command: toggle-style\n"},
		{name: "select without position", doc: "blocks: [{key: a}]\nevents:\n  - kind: select\n"},
		{name: "bad advance", doc: "blocks: [{key: a}]\nevents:\n  - kind: tick\n    advance: soon\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidScript), "got %v", err)
		})
	}
}

func TestCheckReportsMismatches(t *testing.T) {
	sc, err := Parse([]byte("blocks: [{key: a, text: hi}]\n"))
	require.NoError(t, err)
	res, err := quiet().Run(sc)
	require.NoError(t, err)

	undo := 3
	err = res.Check(&Expectation{Blocks: []string{"bye"}, Mode: "cut", Undo: &undo})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocks")
	assert.Contains(t, err.Error(), "mode")
	assert.Contains(t, err.Error(), "undo depth")

	assert.Error(t, res.Check(&Expectation{Mode: "sideways"}))
	assert.NoError(t, res.Check(nil))
}

func TestCommands(t *testing.T) {
	names := Commands()
	assert.Contains(t, names, "undo")
	assert.IsIncreasing(t, names)
}
