package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boundary-cli/boundary/internal/adapters/outbound/scanner"
	"github.com/boundary-cli/boundary/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	fp := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0o755))
	require.NoError(t, os.WriteFile(fp, []byte(content), 0o644))
}

func paths(files []domain.SourceFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func TestScan_DetectsLanguagesAndModule(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/multi\n")
	writeFile(t, dir, "internal/domain/user.go", "package user\n")
	writeFile(t, dir, "src/domain/user.rs", "pub struct User;\n")
	writeFile(t, dir, "web/user.ts", "export class User {}\n")
	writeFile(t, dir, "jvm/User.java", "class User {}\n")
	writeFile(t, dir, "README.md", "# readme\n")

	res, err := scanner.New().Scan(dir, domain.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "example.com/multi", res.GoModulePath)
	got := paths(res.Files)
	assert.Contains(t, got, "internal/domain/user.go")
	assert.Contains(t, got, "src/domain/user.rs")
	assert.Contains(t, got, "web/user.ts")
	assert.Contains(t, got, "jvm/User.java")
	assert.NotContains(t, got, "README.md")
	assert.NotContains(t, got, "go.mod")
}

func TestScan_SkipsVendorAndBuildDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vendor/dep/dep.go", "package dep\n")
	writeFile(t, dir, "node_modules/pkg/index.ts", "export {}\n")
	writeFile(t, dir, "target/debug/build.rs", "fn main() {}\n")
	writeFile(t, dir, "app/main.go", "package main\n")

	res, err := scanner.New().Scan(dir, domain.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"app/main.go"}, paths(res.Files))
}

func TestScan_ExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "internal/generated/api.go", "package generated\n")
	writeFile(t, dir, "internal/app/service.go", "package app\n")

	cfg := domain.DefaultConfig()
	cfg.ExcludePatterns = []string{"**/generated/**"}

	res, err := scanner.New().Scan(dir, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"internal/app/service.go"}, paths(res.Files))
}

func TestScan_LanguageFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package a\n")
	writeFile(t, dir, "b.rs", "fn main() {}\n")

	cfg := domain.DefaultConfig()
	cfg.Languages = []domain.Language{domain.LangGo}

	res, err := scanner.New().Scan(dir, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go"}, paths(res.Files))
}

func TestScan_MissingRoot(t *testing.T) {
	_, err := scanner.New().Scan(filepath.Join(t.TempDir(), "nope"), domain.DefaultConfig())
	assert.Error(t, err)
}
