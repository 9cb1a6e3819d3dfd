package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boundary-cli/boundary/internal/adapters/inbound/cli"
	"github.com/boundary-cli/boundary/internal/domain"
)

func writeProject(t *testing.T, dir string, withViolation bool) {
	t.Helper()
	files := map[string]string{
		"go.mod": "module example.com/tiny\n\ngo 1.24\n",
		"internal/domain/user/entity.go": `package user

type User struct {
	ID string
}

func (u *User) Rename(name string) {}

type UserRepository interface {
	Save(u *User) error
}
`,
		"internal/infrastructure/pg/repo.go": `package pg

import (
	"example.com/tiny/internal/domain/user"
)

type PgUserRepository struct{}

func (r *PgUserRepository) Save(u *user.User) error { return nil }
`,
	}
	if withViolation {
		files["internal/domain/user/bad.go"] = `package user

import "example.com/tiny/internal/infrastructure/pg"

func Warm() any {
	return pg.PgUserRepository{}
}
`
	}
	for name, content := range files {
		fp := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0o755))
		require.NoError(t, os.WriteFile(fp, []byte(content), 0o644))
	}
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheck_CleanProjectExitsZero(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, false)

	out, err := runCommand(t, "check", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "CHECK PASSED")
}

func TestCheck_ViolationFailsWithCheckError(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, true)

	out, err := runCommand(t, "check", dir)
	require.Error(t, err)
	assert.True(t, domain.IsCheckFailed(err))
	assert.Contains(t, out, "CHECK FAILED")
}

func TestAnalyze_JSONContract(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, false)

	out, err := runCommand(t, "analyze", dir, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"score"`)
	assert.Contains(t, out, `"structural_presence"`)
	assert.Contains(t, out, `"violations"`)
	assert.Contains(t, out, `"components"`)
	assert.Contains(t, out, `"dependencies"`)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "boundary")
}
