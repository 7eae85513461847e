package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

// setupEnv points the configuration at a temporary site layout
func setupEnv(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "content", "tech", "agents.md"),
		"---\ntitle: Agents\ndate: 2024-05-01\n---\nBody")
	writeFile(t, filepath.Join(root, "content", "life", "draft.md"),
		"---\ntitle: Draft\ndate: 2024-05-02\ndraft: true\n---\nTBD")
	writeFile(t, filepath.Join(root, "public", "index.html"), "<h1>home</h1>")
	writeFile(t, filepath.Join(root, "public", "_astro", "app.js"), "console.log(1)")

	t.Setenv("CONTENT_DIR", filepath.Join(root, "content"))
	t.Setenv("STATIC_DIR", filepath.Join(root, "public"))
	t.Setenv("SITE_CONFIG", filepath.Join(root, "site.yaml"))
	t.Setenv("LOG_LEVEL", "error")
	return root
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"site"}, args...))
	return out.String(), err
}

func TestExportCommand(t *testing.T) {
	root := setupEnv(t)
	out := filepath.Join(root, "dist")

	stdout, err := runApp(t, "export", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "exported 6 feeds")

	tests := []struct {
		file     string
		contains string
	}{
		{file: "index.html", contains: "<h1>home</h1>"},
		{file: "_astro/app.js", contains: "console.log"},
		{file: "rss.xml", contains: "https://chixitown.com/tech/agents/"},
		{file: "atom.xml", contains: "https://chixitown.com/tech/agents/"},
		{file: "tech/atom.xml", contains: "https://chixitown.com/tech/agents/"},
		{file: "books/atom.xml", contains: "<feed"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(tt.file)))
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.contains)
		})
	}

	rss, err := os.ReadFile(filepath.Join(out, "rss.xml"))
	require.NoError(t, err)
	assert.NotContains(t, string(rss), "Draft")
}

func TestExportCommand_InvalidContent(t *testing.T) {
	root := setupEnv(t)
	writeFile(t, filepath.Join(root, "content", "games", "broken.md"), "---\ndate: 2024-01-01\n---\nno title")

	_, err := runApp(t, "export", "--out", filepath.Join(root, "dist"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")
}

func TestSummaryCommand(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/v1/analytics/summary":
			assert.Equal(t, "prj_flag", r.URL.Query().Get("projectId"))
			_, _ = w.Write([]byte(`{"visits":7,"pageviews":9}`))
		default:
			_, _ = w.Write([]byte(`{"pages":[{"path":"/"}]}`))
		}
	}))
	defer upstream.Close()

	setupEnv(t)
	t.Setenv("VERCEL_API_BASE_URL", upstream.URL)
	t.Setenv("VERCEL_TOKEN", "tok")
	t.Setenv("VERCEL_PROJECT_ID", "")

	stdout, err := runApp(t, "summary", "--project", "prj_flag")
	require.NoError(t, err)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(stdout), &body))
	assert.Equal(t, `"prj_flag"`, string(body["projectId"]))
	assert.Equal(t, "7", string(body["visits"]))
	assert.JSONEq(t, `[{"path":"/"}]`, string(body["topPages"]))
}

func TestSummaryCommand_MissingToken(t *testing.T) {
	setupEnv(t)
	t.Setenv("VERCEL_TOKEN", "")

	stdout, err := runApp(t, "summary", "--project", "prj")
	require.Error(t, err)
	assert.Contains(t, stdout, `"error": "missing_token"`)
}

func TestLoadEnv_InvalidConfig(t *testing.T) {
	setupEnv(t)
	t.Setenv("PORT", "70000")

	_, err := runApp(t, "export")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT must be between")
}
