package storage_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/perezbrayan/tienda/internal/storage"
	"github.com/stretchr/testify/assert"
)

var pngData = append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 64)...)

func newFileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("failed to create part: %v", err)
	}
	part.Write(data)
	w.Close()

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, fh, err := req.FormFile("file")
	if err != nil {
		t.Fatalf("failed to parse multipart form: %v", err)
	}
	return fh
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0
	}
	assert.NoError(t, err)
	return len(entries)
}

func TestSaveValidImage(t *testing.T) {
	s := &storage.Store{BaseDir: t.TempDir()}
	assert.NoError(t, s.EnsureDirs())

	fh := newFileHeader(t, "receipt.png", "image/png", pngData)
	path, err := s.Save(fh, storage.CategoryPaymentProofs, "proof", storage.ProofImagePolicy)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/uploads/payment_proofs/proof-"))
	assert.True(t, strings.HasSuffix(path, ".png"))
	assert.True(t, s.Exists(path))
	assert.Equal(t, 1, countFiles(t, filepath.Join(s.BaseDir, "payment_proofs")))
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	s := &storage.Store{BaseDir: t.TempDir()}
	assert.NoError(t, s.EnsureDirs())

	first, err := s.Save(newFileHeader(t, "a.png", "image/png", pngData), storage.CategoryRoblox, "roblox", storage.ProductImagePolicy)
	assert.NoError(t, err)
	second, err := s.Save(newFileHeader(t, "a.png", "image/png", pngData), storage.CategoryRoblox, "roblox", storage.ProductImagePolicy)
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, countFiles(t, filepath.Join(s.BaseDir, "roblox")))
}

func TestSaveRejectsDeclaredType(t *testing.T) {
	s := &storage.Store{BaseDir: t.TempDir()}
	assert.NoError(t, s.EnsureDirs())

	fh := newFileHeader(t, "doc.pdf", "application/pdf", []byte("%PDF-1.4"))
	_, err := s.Save(fh, storage.CategoryPaymentProofs, "proof", storage.ProofImagePolicy)
	assert.ErrorIs(t, err, storage.ErrUnsupportedType)
	assert.Equal(t, 0, countFiles(t, filepath.Join(s.BaseDir, "payment_proofs")))
}

func TestSaveRejectsSpoofedContent(t *testing.T) {
	s := &storage.Store{BaseDir: t.TempDir()}
	assert.NoError(t, s.EnsureDirs())

	// Declared as png but the bytes are an executable header.
	fh := newFileHeader(t, "fake.png", "image/png", []byte("MZ\x90\x00\x03\x00\x00\x00"))
	_, err := s.Save(fh, storage.CategoryPaymentProofs, "proof", storage.ProofImagePolicy)
	assert.ErrorIs(t, err, storage.ErrUnsupportedType)
	assert.Equal(t, 0, countFiles(t, filepath.Join(s.BaseDir, "payment_proofs")))
}

func TestSaveRejectsGifForProofs(t *testing.T) {
	s := &storage.Store{BaseDir: t.TempDir()}
	assert.NoError(t, s.EnsureDirs())

	gif := append([]byte("GIF89a"), make([]byte, 32)...)
	fh := newFileHeader(t, "anim.gif", "image/gif", gif)

	// Proof uploads only allow jpeg/png.
	_, err := s.Save(fh, storage.CategoryPaymentProofs, "proof", storage.ProofImagePolicy)
	assert.ErrorIs(t, err, storage.ErrUnsupportedType)

	// The same file is fine as a product image.
	fh = newFileHeader(t, "anim.gif", "image/gif", gif)
	_, err = s.Save(fh, storage.CategoryExtras, "extra", storage.ProductImagePolicy)
	assert.NoError(t, err)
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	s := &storage.Store{BaseDir: t.TempDir()}
	assert.NoError(t, s.EnsureDirs())

	big := append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 6*1024*1024)...)
	fh := newFileHeader(t, "big.png", "image/png", big)
	_, err := s.Save(fh, storage.CategoryPaymentProofs, "proof", storage.ProofImagePolicy)
	assert.ErrorIs(t, err, storage.ErrFileTooLarge)
	assert.Equal(t, 0, countFiles(t, filepath.Join(s.BaseDir, "payment_proofs")))
}

func TestSetMaxUploadSize(t *testing.T) {
	t.Cleanup(func() { storage.SetMaxUploadSize(storage.DefaultMaxUploadSize) })

	s := &storage.Store{BaseDir: t.TempDir()}
	assert.NoError(t, s.EnsureDirs())

	// A file well under the default cap gets rejected once the configured
	// cap drops below its size.
	storage.SetMaxUploadSize(16)
	fh := newFileHeader(t, "a.png", "image/png", pngData)
	_, err := s.Save(fh, storage.CategoryPaymentProofs, "proof", storage.ProofImagePolicy)
	assert.ErrorIs(t, err, storage.ErrFileTooLarge)
	_, err = s.Save(newFileHeader(t, "a.png", "image/png", pngData), storage.CategoryExtras, "extra", storage.ProductImagePolicy)
	assert.ErrorIs(t, err, storage.ErrFileTooLarge)

	// Zero and negative values keep the current cap.
	storage.SetMaxUploadSize(storage.DefaultMaxUploadSize)
	storage.SetMaxUploadSize(0)
	_, err = s.Save(newFileHeader(t, "a.png", "image/png", pngData), storage.CategoryPaymentProofs, "proof", storage.ProofImagePolicy)
	assert.NoError(t, err)
}

func TestRemove(t *testing.T) {
	s := &storage.Store{BaseDir: t.TempDir()}
	assert.NoError(t, s.EnsureDirs())

	path, err := s.Save(newFileHeader(t, "a.png", "image/png", pngData), storage.CategoryExtras, "extra", storage.ProductImagePolicy)
	assert.NoError(t, err)
	assert.True(t, s.Exists(path))

	s.Remove(path)
	assert.False(t, s.Exists(path))

	// Removing again must not panic; the failure is logged, not fatal.
	s.Remove(path)

	// Paths outside /uploads are ignored.
	s.Remove("/etc/passwd")
	s.Remove("/uploads/../outside.txt")
}
