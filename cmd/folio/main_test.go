package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupContent writes a small content tree and points the environment at it.
func setupContent(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"posts/hello.md":  "---\ntitle: Hello\npublished: 2024-05-01\ntags: [go]\n---\nHello there.\n",
		"posts/draft.md":  "---\ntitle: Draft\npublished: 2024-06-01\ndraft: true\n---\nWIP.\n",
		"music/jam.md":    "---\ntitle: Jam\npublished: 2024-05-02\nyoutube:\n  id: abc\n---\n",
		"series.yaml":     "- id: intro\n  status: ongoing\n",
		"tabs/.gitignore": "",
	}
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	for _, key := range []string{"APP_ENV", "SITE_URL", "PAGE_SIZE", "HOME_PAGE_SIZE", "CACHE_TTL", "VALKEY_HOST", "OUTPUT_DIR"} {
		t.Setenv(key, "")
	}
	t.Setenv("CONTENT_DIR", dir)
	t.Setenv("BASE_PATH", "/blog-site")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	err := cmd.Execute()
	return out.String(), err
}

func TestIndexCommand(t *testing.T) {
	setupContent(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("SITE_URL", "https://example.com")
	outDir := t.TempDir()

	if _, err := run(t, "index", "--out", outDir); err != nil {
		t.Fatalf("index: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, indexFile))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	var manifest struct {
		BuildID string `json:"build_id"`
		Mode    string `json:"mode"`
		Posts   []struct {
			ID  string `json:"id"`
			URL string `json:"url"`
		} `json:"posts"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("decode index: %v", err)
	}
	if manifest.BuildID == "" || manifest.Mode != "production" {
		t.Errorf("manifest header: %+v", manifest)
	}
	if len(manifest.Posts) != 1 || manifest.Posts[0].URL != "/blog-site/posts/hello/" {
		t.Errorf("posts: %+v", manifest.Posts)
	}

	sitemap, err := os.ReadFile(filepath.Join(outDir, sitemapFile))
	if err != nil {
		t.Fatalf("read sitemap: %v", err)
	}
	if !strings.Contains(string(sitemap), "https://example.com/blog-site/posts/hello/") {
		t.Errorf("sitemap: %s", sitemap)
	}
	if strings.Contains(string(sitemap), "/music/") {
		t.Error("sitemap must not list music pages")
	}
}

func TestIndexCommandDrafts(t *testing.T) {
	setupContent(t)
	outDir := t.TempDir()

	if _, err := run(t, "index", "--out", outDir, "--drafts"); err != nil {
		t.Fatalf("index: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(outDir, indexFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"id": "draft"`) {
		t.Error("drafts should be indexed with --drafts")
	}
	if _, err := os.Stat(filepath.Join(outDir, sitemapFile)); !os.IsNotExist(err) {
		t.Error("no sitemap without SITE_URL")
	}
}

func TestIndexCommandInvalidContent(t *testing.T) {
	dir := setupContent(t)
	bad := filepath.Join(dir, "posts", "broken.md")
	if err := os.WriteFile(bad, []byte("---\npublished: 2024-01-01\n---\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := run(t, "index", "--out", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "broken.md") {
		t.Errorf("error = %v, want it to name broken.md", err)
	}
}

func TestRoutesCommand(t *testing.T) {
	setupContent(t)

	out, err := run(t, "routes")
	if err != nil {
		t.Fatalf("routes: %v", err)
	}
	if !strings.Contains(out, "/blog-site/posts/hello/") {
		t.Errorf("output missing post route:\n%s", out)
	}
	if strings.Contains(out, "/blog-site/music/jam/") {
		t.Error("hidden routes need --all")
	}

	out, err = run(t, "routes", "--all")
	if err != nil {
		t.Fatalf("routes --all: %v", err)
	}
	if !strings.Contains(out, "/blog-site/music/jam/") {
		t.Errorf("--all should list music routes:\n%s", out)
	}
}

func TestPublishRequiresStorage(t *testing.T) {
	setupContent(t)
	t.Setenv("SITE_URL", "https://example.com")
	for _, key := range []string{"S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY"} {
		t.Setenv(key, "")
	}

	_, err := run(t, "publish")
	if err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Errorf("error = %v", err)
	}
}

func TestProductionRequiresSiteURL(t *testing.T) {
	setupContent(t)
	t.Setenv("APP_ENV", "production")

	if _, err := run(t, "routes"); err == nil {
		t.Error("expected configuration error")
	}
}
