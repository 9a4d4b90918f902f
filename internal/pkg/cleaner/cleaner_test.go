package cleaner

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	return p
}

func TestCleanOrphans(t *testing.T) {
	dir := t.TempDir()
	keep := touch(t, dir, "AST-2025-0001.png")
	orphan := touch(t, dir, "AST-2025-0002.png")

	report := CleanOrphans([]string{dir}, map[string]struct{}{"AST-2025-0001": {}})

	assert.Equal(t, []string{orphan}, report.Deleted)
	assert.Empty(t, report.Errors)
	assert.FileExists(t, keep)
	assert.NoFileExists(t, orphan)
}

func TestCleanOrphans_MultipleDirsAndExtensions(t *testing.T) {
	root := t.TempDir()
	qrDir := filepath.Join(root, "qr_codes")
	labelDir := filepath.Join(root, "labels")

	touch(t, qrDir, "AST-2025-0001.png")
	touch(t, labelDir, "AST-2025-0001.pdf")
	touch(t, labelDir, "AST-2025-0001.wdfx")
	pdf := touch(t, labelDir, "AST-2025-0005.pdf")
	wdfx := touch(t, labelDir, "AST-2025-0005.wdfx")
	hidden := touch(t, labelDir, ".AST-2025-0009.pdf.tmp-123")
	require.NoError(t, os.MkdirAll(filepath.Join(labelDir, "nested"), 0o755))

	report := CleanOrphans(
		[]string{qrDir, labelDir, filepath.Join(root, "missing")},
		map[string]struct{}{"AST-2025-0001": {}},
	)

	assert.ElementsMatch(t, []string{pdf, wdfx}, report.Deleted)
	assert.Empty(t, report.Errors)
	assert.FileExists(t, hidden)
	assert.DirExists(t, filepath.Join(labelDir, "nested"))
}

func TestCleanOrphans_ContinuesPastErrors(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	open := filepath.Join(root, "open")
	touch(t, locked, "AST-2025-0007.png")
	orphan := touch(t, open, "AST-2025-0008.png")

	require.NoError(t, os.Chmod(locked, 0o555))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	report := CleanOrphans([]string{locked, open}, map[string]struct{}{})

	assert.Equal(t, []string{orphan}, report.Deleted)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, filepath.Join(locked, "AST-2025-0007.png"), report.Errors[0].Path)
}

func TestCleanOrphansBefore_SparesRecentFiles(t *testing.T) {
	dir := t.TempDir()
	old := touch(t, dir, "AST-2025-0002.png")
	fresh := touch(t, dir, "AST-2025-0003.png")

	now := time.Now()
	require.NoError(t, os.Chtimes(old, now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(fresh, now, now))

	report := CleanOrphansBefore([]string{dir}, map[string]struct{}{}, now.Add(-time.Minute))

	assert.Equal(t, []string{old}, report.Deleted)
	assert.FileExists(t, fresh)
}

func TestPurgeStale(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	old := touch(t, dir, "batch_a_1.pdf")
	fresh := touch(t, dir, "batch_b_2.pdf")
	require.NoError(t, os.Chtimes(old, now.Add(-25*time.Hour), now.Add(-25*time.Hour)))
	require.NoError(t, os.Chtimes(fresh, now.Add(-time.Hour), now.Add(-time.Hour)))

	report := PurgeStale(dir, 24*time.Hour, now)

	assert.Equal(t, []string{old}, report.Deleted)
	assert.Empty(t, report.Errors)
	assert.FileExists(t, fresh)
}

func TestIdentifierOf(t *testing.T) {
	assert.Equal(t, "AST-2025-0001", IdentifierOf("AST-2025-0001.png"))
	assert.Equal(t, "AST-2025-0001", IdentifierOf("AST-2025-0001.wdfx"))
	assert.Equal(t, "README", IdentifierOf("README"))
}
