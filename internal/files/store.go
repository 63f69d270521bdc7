package files

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PunithVT/livekit-voice-agent/pkg/logger"
)

// MaxUploadSize caps a single upload at 10 MB.
const MaxUploadSize = 10 << 20

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".txt":  {},
	".md":   {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".doc":  {},
	".docx": {},
	".ppt":  {},
	".pptx": {},
	".csv":  {},
}

var (
	ErrFileTooLarge   = fmt.Errorf("file exceeds %d bytes", MaxUploadSize)
	ErrUnsupportedExt = fmt.Errorf("unsupported file type")
	ErrNotFound       = fmt.Errorf("file not found")
)

// FileInfo describes a stored upload.
type FileInfo struct {
	Name       string    `json:"name"`
	Original   string    `json:"original_name"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mime_type"`
	SHA256     string    `json:"sha256"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Store saves uploads on disk under one directory per user.
type Store struct {
	root string
	logg logger.Logger
	now  func() time.Time
}

func NewStore(root string, logg logger.Logger, now func() time.Time) (*Store, error) {
	if now == nil {
		now = time.Now
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{root: root, logg: logg.WithModule("files"), now: now}, nil
}

// userDir sanitizes the user id into a directory name.
func (s *Store) userDir(userID string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, userID)
	return filepath.Join(s.root, clean)
}

// Save writes the upload to disk and returns its stored metadata. The
// original name is only kept as metadata, the on-disk name is generated.
func (s *Store) Save(userID, originalName string, size int64, r io.Reader) (FileInfo, error) {
	if size > MaxUploadSize {
		return FileInfo{}, ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return FileInfo{}, ErrUnsupportedExt
	}

	dir := s.userDir(userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return FileInfo{}, fmt.Errorf("create user dir: %w", err)
	}

	now := s.now()
	name := fmt.Sprintf("%d_%s%s", now.Unix(), strings.ReplaceAll(uuid.NewString(), "-", "")[:12], ext)
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	hash := sha256.New()
	written, err := io.Copy(io.MultiWriter(f, hash), io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		os.Remove(path)
		return FileInfo{}, fmt.Errorf("write file: %w", err)
	}
	if written > MaxUploadSize {
		os.Remove(path)
		return FileInfo{}, ErrFileTooLarge
	}

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	info := FileInfo{
		Name:       name,
		Original:   filepath.Base(originalName),
		Size:       written,
		MimeType:   mimeType,
		SHA256:     hex.EncodeToString(hash.Sum(nil)),
		UploadedAt: now.UTC(),
	}
	s.logg.Infof("stored %s for user %s (%d bytes)", name, userID, written)
	return info, nil
}

// List returns the user's stored files, newest first.
func (s *Store) List(userID string) ([]FileInfo, error) {
	entries, err := os.ReadDir(s.userDir(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return []FileInfo{}, nil
		}
		return nil, fmt.Errorf("read user dir: %w", err)
	}

	var out []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		mimeType := mime.TypeByExtension(ext)
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		out = append(out, FileInfo{
			Name:       e.Name(),
			Size:       fi.Size(),
			MimeType:   mimeType,
			UploadedAt: fi.ModTime().UTC(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

// Open returns a reader for the named file.
func (s *Store) Open(userID, name string) (io.ReadCloser, error) {
	path, err := s.resolve(userID, name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// Delete removes the named file.
func (s *Store) Delete(userID, name string) error {
	path, err := s.resolve(userID, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	s.logg.Infof("deleted %s for user %s", name, userID)
	return nil
}

// resolve rejects names that escape the user's directory.
func (s *Store) resolve(userID, name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrNotFound
	}
	return filepath.Join(s.userDir(userID), name), nil
}
