// Package storage persists uploaded images on local disk and hands back the
// relative /uploads path that gets stored on the owning record.
package storage

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/perezbrayan/tienda/pkg/logger"
	"go.uber.org/zap"
)

// PlaceholderImage is served for products that have no uploaded image.
const PlaceholderImage = "/public/placeholder.png"

// Category selects the subdirectory an upload is stored under.
type Category string

const (
	CategoryProducts      Category = "products"
	CategoryGames         Category = "games"
	CategoryRoblox        Category = "roblox"
	CategoryPaymentProofs Category = "payment_proofs"
	CategoryExtras        Category = "extras"
)

var categories = []Category{
	CategoryProducts,
	CategoryGames,
	CategoryRoblox,
	CategoryPaymentProofs,
	CategoryExtras,
}

// Policy is the validation applied to an upload. Policies differ per call
// site: payment proofs only accept jpeg/png, product images also accept
// gif/webp.
type Policy struct {
	AllowedTypes []string
	MaxSize      int64
}

// DefaultMaxUploadSize caps uploads when UPLOAD_MAX_SIZE is not configured.
const DefaultMaxUploadSize = 5 * 1024 * 1024

var (
	ProductImagePolicy = Policy{
		AllowedTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		MaxSize:      DefaultMaxUploadSize,
	}
	ProofImagePolicy = Policy{
		AllowedTypes: []string{"image/jpeg", "image/png"},
		MaxSize:      DefaultMaxUploadSize,
	}
)

// SetMaxUploadSize applies the configured upload cap to every policy.
// Called once at startup; non-positive values keep the current cap.
func SetMaxUploadSize(n int64) {
	if n <= 0 {
		return
	}
	ProductImagePolicy.MaxSize = n
	ProofImagePolicy.MaxSize = n
}

var (
	ErrNoFile          = errors.New("no file provided")
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedType = errors.New("unsupported file type")
)

type Store struct {
	BaseDir string
}

// Default is the store used by the handlers. Assigned by Init at startup and
// by tests pointing at a temp dir.
var Default *Store

// Init creates the store rooted at baseDir and ensures every category
// directory exists. Safe to call repeatedly.
func Init(baseDir string) error {
	s := &Store{BaseDir: baseDir}
	if err := s.EnsureDirs(); err != nil {
		return err
	}
	Default = s
	return nil
}

func (s *Store) EnsureDirs() error {
	for _, c := range categories {
		if err := os.MkdirAll(filepath.Join(s.BaseDir, string(c)), 0o755); err != nil {
			return err
		}
	}
	return nil
}

func (p Policy) allows(contentType string) bool {
	for _, t := range p.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

// Save validates the upload against the policy and writes it under the
// category directory with a collision-free name. It returns the relative
// URL path (/uploads/{category}/{filename}) to store on the owning record.
// Validation failures happen before anything touches disk; write failures
// never leave a partial file behind.
func (s *Store) Save(file *multipart.FileHeader, category Category, prefix string, policy Policy) (string, error) {
	if file == nil {
		return "", ErrNoFile
	}
	if policy.MaxSize > 0 && file.Size > policy.MaxSize {
		return "", ErrFileTooLarge
	}

	declared := file.Header.Get("Content-Type")
	if !policy.allows(declared) {
		return "", ErrUnsupportedType
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Sniff the actual content; the declared MIME type is client-controlled.
	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return "", err
	}
	head = head[:n]
	if !policy.allows(http.DetectContentType(head)) {
		return "", ErrUnsupportedType
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := prefix + "-" + uuid.New().String() + ext

	dir := filepath.Join(s.BaseDir, string(category))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}

	if _, err := dst.Write(head); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", err
	}

	return "/uploads/" + string(category) + "/" + name, nil
}

// Remove deletes the file referenced by a stored /uploads path. Failures are
// logged and swallowed: a leaked file is acceptable, a failed request is not.
func (s *Store) Remove(relPath string) {
	if relPath == "" {
		return
	}

	trimmed := strings.TrimPrefix(relPath, "/uploads/")
	if trimmed == relPath || strings.Contains(trimmed, "..") {
		if logger.Log != nil {
			logger.Log.Warn("refusing to remove path outside uploads", zap.String("path", relPath))
		}
		return
	}

	full := filepath.Join(s.BaseDir, filepath.FromSlash(trimmed))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		if logger.Log != nil {
			logger.Log.Warn("failed to remove upload", zap.String("path", full), zap.Error(err))
		}
	}
}

// Exists reports whether the file referenced by a stored /uploads path is
// still on disk.
func (s *Store) Exists(relPath string) bool {
	trimmed := strings.TrimPrefix(relPath, "/uploads/")
	if trimmed == relPath {
		return false
	}
	_, err := os.Stat(filepath.Join(s.BaseDir, filepath.FromSlash(trimmed)))
	return err == nil
}
