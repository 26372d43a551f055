package organizer_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileorg/internal/testutil"
	"fileorg/pkg/fsys"
	"fileorg/pkg/operation"
	"fileorg/pkg/organizer"
)

func TestCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		extension string
		want      string
	}{
		{".pdf", "documents"},
		{".csv", "documents"},
		{".jpg", "images"},
		{".webp", "images"},
		{".mp4", "videos"},
		{".flac", "audio"},
		{".zip", "archives"},
		{".go", "code"},
		{".yml", "code"},
		{".xyz", "other"},
		{"", "other"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, organizer.Category(tc.extension), tc.extension)
	}
}

func TestCategory_CaseInsensitive(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "documents", organizer.Category(".PDF"))
	assert.Equal(t, "images", organizer.Category(".Jpg"))
}

func TestByType_PlansMovesIntoCategoryFolders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	org := organizer.New(fsys.New())

	files := []string{
		filepath.Join(dir, "report.pdf"),
		filepath.Join(dir, "photo.JPG"),
		filepath.Join(dir, "mystery.xyz"),
	}

	ops := org.ByType(files, dir)

	require.Len(t, ops, 3)
	assert.Equal(t, filepath.Join(dir, "documents", "report.pdf"), ops[0].Dest)
	assert.Equal(t, filepath.Join(dir, "images", "photo.JPG"), ops[1].Dest)
	assert.Equal(t, filepath.Join(dir, "other", "mystery.xyz"), ops[2].Dest)
	for _, op := range ops {
		assert.Equal(t, operation.KindOrganizeType, op.Kind)
	}
}

func TestByDate_SlashFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	org := organizer.New(fsys.New())

	file := filepath.Join(dir, "photo.jpg")
	testutil.CreateFileWithModTime(t, file, "", time.Date(2023, 5, 15, 12, 0, 0, 0, time.UTC))

	ops, err := org.ByDate([]string{file}, dir, organizer.FormatSlash)
	require.NoError(t, err)

	require.Len(t, ops, 1)
	assert.Equal(t, filepath.Join(dir, "2023", "05", "photo.jpg"), ops[0].Dest)
	assert.Equal(t, operation.KindOrganizeDate, ops[0].Kind)
}

func TestByDate_DashFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	org := organizer.New(fsys.New())

	file := filepath.Join(dir, "photo.jpg")
	testutil.CreateFileWithModTime(t, file, "", time.Date(2023, 5, 15, 12, 0, 0, 0, time.UTC))

	ops, err := org.ByDate([]string{file}, dir, organizer.FormatDash)
	require.NoError(t, err)

	require.Len(t, ops, 1)
	assert.Equal(t, filepath.Join(dir, "2023-05", "photo.jpg"), ops[0].Dest)
}

func TestByDate_UnknownFormatFallsBackToSlash(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	org := organizer.New(fsys.New())

	file := filepath.Join(dir, "photo.jpg")
	testutil.CreateFileWithModTime(t, file, "", time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC))

	ops, err := org.ByDate([]string{file}, dir, "MM/YYYY")
	require.NoError(t, err)

	require.Len(t, ops, 1)
	assert.Equal(t, filepath.Join(dir, "2024", "12", "photo.jpg"), ops[0].Dest)
}

func TestByDate_MissingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	org := organizer.New(fsys.New())

	_, err := org.ByDate([]string{filepath.Join(dir, "missing.jpg")}, dir, organizer.FormatSlash)

	require.Error(t, err)
	assert.ErrorIs(t, err, fsys.ErrNotFound)
}
