package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestConvert(t *testing.T) {
	out, err := execute(t, "first\nsecond", "convert", "--compact")
	require.NoError(t, err)

	doc := gjson.Parse(out)
	assert.Equal(t, int64(2), doc.Get("blocks.#").Int())
	assert.Equal(t, "second", doc.Get("blocks.1.text").String())
	assert.Equal(t, "unstyled", doc.Get("blocks.0.type").String())
}

func TestConvertValidateRoundTrip(t *testing.T) {
	in := writeFile(t, "note.txt", "héllo\nworld")
	doc, err := execute(t, "", "convert", in)
	require.NoError(t, err)
	assert.Contains(t, doc, "\n  ", "indented by default")

	out, err := execute(t, doc, "validate", "-")
	require.NoError(t, err)
	assert.Equal(t, "ok: 2 blocks, 0 entities\n", out)
}

func TestValidateRejectsBadDocument(t *testing.T) {
	path := writeFile(t, "bad.json", `{"blocks":[{"key":"a","text":"hi","inlineStyleRanges":[{"offset":1,"length":5,"style":"BOLD"}]}]}`)
	_, err := execute(t, "", "validate", path)
	assert.Error(t, err)
}

func TestReplay(t *testing.T) {
	path := writeFile(t, "hello.yaml", `
blocks:
  - {key: a, text: Hel}
selection:
  anchor: {key: a, offset: 3}
events:
  - kind: compositionstart
  - kind: compositionupdate
    text: Hello
  - kind: compositionend
    text: Hello
expect:
  blocks: [Hello]
`)
	out, err := execute(t, "", "replay", path)
	require.NoError(t, err)
	assert.Equal(t, "Hello\n", out)

	out, err = execute(t, "", "replay", "--raw", path)
	require.NoError(t, err)
	assert.Equal(t, "Hello", gjson.Get(out, "blocks.0.text").String())
}

func TestReplayUnmetExpectation(t *testing.T) {
	path := writeFile(t, "fail.yaml", "name: wrong\nblocks: [{key: a, text: x}]\nexpect:\n  blocks: [y]\n")
	_, err := execute(t, "", "replay", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong: expectations not met")
}

func TestConfigFlag(t *testing.T) {
	cfg := writeFile(t, "inkwell.toml", "[editor]\nread_only = true\n")
	path := writeFile(t, "type.yaml", `
blocks: [{key: a, text: x}]
events:
  - kind: command
    command: insert-text
    arg: "y"
    error: true
expect:
  blocks: [x]
`)
	_, err := execute(t, "", "--config", cfg, "replay", path)
	assert.NoError(t, err)

	_, err = execute(t, "", "--log-level", "loud", "convert")
	assert.Error(t, err)
}
