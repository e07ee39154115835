package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding for receipt photos
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

var ErrUnsupportedFileType = errors.New("invalid file type: only jpg, jpeg, png, pdf allowed")

const (
	receiptMaxSize    = 300 * 1024
	receiptMinWidth   = 800
	receiptMinQuality = 50
)

type FileService interface {
	// UploadReceipt stores an expense receipt and returns its storage key.
	// Photos are re-encoded as JPEG and shrunk; PDFs are stored as sent.
	UploadReceipt(ctx context.Context, expenseID string, file io.Reader, filename string) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, key string) error
	URL(key string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

func (s *fileServiceImpl) UploadReceipt(ctx context.Context, expenseID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		body        io.Reader
		contentType string
	)
	switch ext {
	case ".pdf":
		body, contentType = file, "application/pdf"
	case ".jpg", ".jpeg", ".png":
		buffer, err := io.ReadAll(file)
		if err != nil {
			return "", fmt.Errorf("failed to read image: %w", err)
		}
		compressed, err := compressImage(buffer, receiptMaxSize)
		if err != nil {
			return "", fmt.Errorf("failed to compress image: %w", err)
		}
		body, contentType, ext = bytes.NewReader(compressed), "image/jpeg", ".jpg"
	default:
		return "", ErrUnsupportedFileType
	}

	key := fmt.Sprintf("receipts/%s/%s%s", expenseID, uuid.New().String(), ext)
	uploaded, err := s.storage.Upload(ctx, body, key, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt: %w", err)
	}
	return uploaded, nil
}

func (s *fileServiceImpl) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.storage.Download(ctx, key)
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

func (s *fileServiceImpl) URL(key string) string {
	return s.storage.URL(key)
}

// compressImage re-encodes an image as JPEG no larger than maxSize where it can,
// lowering quality first and then scaling down.
func compressImage(buffer []byte, maxSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var compressed []byte
	for quality := 85; quality >= receiptMinQuality; quality -= 10 {
		compressed, err = encodeJPEG(img, quality)
		if err != nil {
			return nil, err
		}
		if len(compressed) <= maxSize {
			return compressed, nil
		}
	}

	bounds := img.Bounds()
	ratio := math.Sqrt(float64(maxSize) / float64(len(compressed)))
	width := int(float64(bounds.Dx()) * ratio)
	if width < receiptMinWidth {
		width = receiptMinWidth
	}
	if width >= bounds.Dx() {
		return compressed, nil
	}
	height := bounds.Dy() * width / bounds.Dx()

	return encodeJPEG(resizeImage(img, width, height), 70)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// resizeImage scales src with CatmullRom interpolation.
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
