package images

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	name string
	args []string
}

func newTestImage(t *testing.T, calls *[]recordedCall, fail error) (*Document, string, string) {
	t.Helper()
	sourceBase, targetBase := t.TempDir(), t.TempDir()
	src := filepath.Join(sourceBase, "photo.png")
	require.NoError(t, os.WriteFile(src, []byte("png"), 0o600))

	d := New(sourceBase, targetBase, "photo.png")
	d.run = func(_ context.Context, name string, args ...string) error {
		*calls = append(*calls, recordedCall{name: name, args: args})
		return fail
	}
	return d, src, targetBase
}

func TestConvert_InvokesConvertWithSourceAndTarget(t *testing.T) {
	var calls []recordedCall
	d, src, targetBase := newTestImage(t, &calls, nil)

	require.NoError(t, d.Convert(context.Background(), "img/photo.jpg", false))

	require.Len(t, calls, 1)
	require.Equal(t, "convert", calls[0].name)
	require.Equal(t, []string{src, filepath.Join(targetBase, "img", "photo.jpg")}, calls[0].args)
}

func TestConvert_SkipsFreshTarget(t *testing.T) {
	var calls []recordedCall
	d, src, targetBase := newTestImage(t, &calls, nil)

	// Make the target newer than the source.
	dst := filepath.Join(targetBase, "photo.jpg")
	require.NoError(t, os.WriteFile(dst, []byte("jpg"), 0o600))
	info, err := os.Stat(src)
	require.NoError(t, err)
	require.NoError(t, os.Chtimes(dst, info.ModTime().Add(time.Second), info.ModTime().Add(time.Second)))

	require.NoError(t, d.Convert(context.Background(), "photo.jpg", false))
	require.Empty(t, calls)

	// force bypasses the freshness check.
	require.NoError(t, d.Convert(context.Background(), "photo.jpg", true))
	require.Len(t, calls, 1)
}

func TestResize_PassesGeometry(t *testing.T) {
	var calls []recordedCall
	d, src, targetBase := newTestImage(t, &calls, nil)

	require.NoError(t, d.Resize(context.Background(), "thumb.png", 120, 80, false))

	require.Len(t, calls, 1)
	require.Equal(t, []string{src, "-resize", "120x80", filepath.Join(targetBase, "thumb.png")}, calls[0].args)
}

func TestResize_RejectsNonPositiveDimensions(t *testing.T) {
	var calls []recordedCall
	d, _, _ := newTestImage(t, &calls, nil)

	require.Error(t, d.Resize(context.Background(), "thumb.png", 0, 80, false))
	require.Error(t, d.Resize(context.Background(), "thumb.png", 120, -1, false))
	require.Empty(t, calls)
}

func TestConvert_PropagatesCommandFailure(t *testing.T) {
	boom := errors.New("convert exploded")
	var calls []recordedCall
	d, _, _ := newTestImage(t, &calls, boom)

	err := d.Convert(context.Background(), "photo.jpg", false)
	require.ErrorIs(t, err, boom)
}
