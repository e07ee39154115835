package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) FileService {
	t.Helper()
	s, err := storage.NewLocalStorage(t.TempDir(), "http://files.test")
	require.NoError(t, err)
	return NewFileService(s)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadReceipt_PDF(t *testing.T) {
	svc := newTestService(t)

	key, err := svc.UploadReceipt(context.Background(), "exp-1", strings.NewReader("%PDF-1.4"), "Fuel Bill.PDF")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "receipts/exp-1/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.Equal(t, "http://files.test/"+key, svc.URL(key))
}

func TestUploadReceipt_ImageBecomesJPEG(t *testing.T) {
	svc := newTestService(t)

	key, err := svc.UploadReceipt(context.Background(), "exp-2", bytes.NewReader(pngBytes(t, 64, 48)), "photo.png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	rc, err := svc.Open(context.Background(), key)
	require.NoError(t, err)
	defer rc.Close()
	_, format, err := image.Decode(rc)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestUploadReceipt_RejectsOtherTypes(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.UploadReceipt(context.Background(), "exp-3", strings.NewReader("MZ"), "virus.exe")
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestUploadReceipt_BrokenImage(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.UploadReceipt(context.Background(), "exp-4", strings.NewReader("not a png"), "scan.png")
	assert.Error(t, err)
}
