package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsidebar/internal/sidebar"
)

func sampleMap() sidebar.Map {
	guide := sidebar.NewGroup("guide")
	deep := sidebar.NewGroup("deep")
	deep.Items = append(deep.Items, sidebar.NewLeaf("x", "", "guide/deep/x.md"))
	guide.Items = append(guide.Items,
		sidebar.NewLeaf("index", "Guide", "guide/index.md"),
		sidebar.NewLeaf("setup", "", "guide/setup.md"),
		deep,
	)
	return sidebar.Map{
		sidebar.GroupKey("guide"): guide.Items,
		sidebar.GroupKey("api"):   {},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{" YAML ", FormatYAML, false},
		{"tree", FormatTree, false},
		{"toml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			require.ErrorIs(t, err, ErrUnknownFormat, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleMap()))

	assert.JSONEq(t, `{
		"/api/": [],
		"/guide/": [
			{"text": "Guide", "link": "/guide/index"},
			{"text": "setup", "link": "/guide/setup"},
			{"text": "deep", "collapsed": true, "items": [
				{"text": "x", "link": "/guide/deep/x"}
			]}
		]
	}`, buf.String())
}

func TestJSON_NilMap(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, nil))
	assert.Equal(t, "{}\n", buf.String())
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAML(&buf, sampleMap()))

	var decoded map[string][]map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded["/guide/"], 3)
	assert.Equal(t, "Guide", decoded["/guide/"][0]["text"])
	assert.Equal(t, "/guide/index", decoded["/guide/"][0]["link"])
	assert.Equal(t, true, decoded["/guide/"][2]["collapsed"])
	assert.Empty(t, decoded["/api/"])
}

func TestTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Tree(&buf, sampleMap(), false))

	want := "/api/\n" +
		"\n" +
		"/guide/\n" +
		"├── Guide /guide/index\n" +
		"├── setup /guide/setup\n" +
		"└── deep/\n" +
		"    └── x /guide/deep/x\n"
	assert.Equal(t, want, buf.String())
}

func TestTree_Colorized(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Tree(&buf, sampleMap(), true))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, sampleMap(), Format("xml"), false)
	require.ErrorIs(t, err, ErrUnknownFormat)
}
