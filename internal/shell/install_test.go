package shell

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallWritesPlugin(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	for _, sh := range []string{"zsh", "bash"} {
		t.Run(sh, func(t *testing.T) {
			assert.False(t, IsInstalled(sh))

			var out bytes.Buffer
			require.NoError(t, Install(sh, "/run/user/1000/ctimer.fifo", &out))
			assert.True(t, IsInstalled(sh))

			path, err := PluginPath(sh)
			require.NoError(t, err)
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), "_ctimer_pipe='/run/user/1000/ctimer.fifo'")
			assert.Contains(t, string(data), "ctimer_watch()")
			assert.Contains(t, string(data), "ctimer_status()")
			assert.NotContains(t, string(data), "@PIPE@")

			assert.Contains(t, out.String(), "source "+path)
			assert.Contains(t, out.String(), "Plugin written to "+path)
		})
	}
}

func TestInstallReportsUpdate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, Install("zsh", "/tmp/old.fifo", new(bytes.Buffer)))

	var out bytes.Buffer
	require.NoError(t, Install("zsh", "/tmp/new.fifo", &out))

	path, err := PluginPath("zsh")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Plugin updated at "+path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "_ctimer_pipe='/tmp/new.fifo'")
	assert.NotContains(t, string(data), "/tmp/old.fifo")
}

func TestRenderQuotesPipePath(t *testing.T) {
	src, err := Render("bash", "/tmp/it's here/ctimer.fifo")
	require.NoError(t, err)
	assert.True(t, strings.Contains(src, `_ctimer_pipe='/tmp/it'\''s here/ctimer.fifo'`), src)
}

func TestUnsupportedShell(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	err := Install("fish", "/tmp/ctimer.fifo", new(bytes.Buffer))
	assert.ErrorContains(t, err, "unsupported shell")
	assert.False(t, IsInstalled("fish"))
}
