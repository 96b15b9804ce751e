package commands

import (
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("docsidebar"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestCLI_ParseGenerate(t *testing.T) {
	cli, ctx := parse(t, "generate", "./site", "--titles", "-f", "yaml", "--exclude", "drafts", "--concurrency", "4")

	assert.Equal(t, "generate <root>", ctx.Command())
	assert.Equal(t, "docsidebar.yaml", cli.Config)
	assert.Equal(t, "./site", cli.Generate.Root)
	assert.True(t, cli.Generate.Titles)
	assert.Equal(t, "yaml", cli.Generate.Format)
	assert.Equal(t, []string{"drafts"}, cli.Generate.Exclude)
	assert.Equal(t, 4, cli.Generate.Concurrency)
}

func TestCLI_ParseWatch(t *testing.T) {
	cli, ctx := parse(t, "-c", "site.yaml", "-v", "watch", "--interval", "500ms", "--listen", ":9464", "--no-touch")

	assert.Equal(t, "watch", ctx.Command())
	assert.Equal(t, "site.yaml", cli.Config)
	assert.True(t, cli.Verbose)
	assert.Equal(t, 500*time.Millisecond, cli.Watch.Interval)
	assert.Equal(t, ":9464", cli.Watch.Listen)
	assert.True(t, cli.Watch.NoTouch)
}

func TestCLI_ParseRedact(t *testing.T) {
	cli, _ := parse(t, "redact", "-i", "a.md", "b.md", "--mask", "x")

	assert.True(t, cli.Redact.InPlace)
	assert.Equal(t, []string{"a.md", "b.md"}, cli.Redact.Files)
	assert.Equal(t, []string{"x"}, cli.Redact.Mask)
}
