package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

var (
	ErrTooLarge        = errors.New("file too large")
	ErrUnsupportedType = errors.New("only jpeg, png, gif and webp images are allowed")
	ErrEmpty           = errors.New("empty file")
)

type Config struct {
	Dir     string `yaml:"dir" envconfig:"UPLOAD_DIR" default:"uploads"`
	MaxSize int64  `yaml:"maxSize" envconfig:"UPLOAD_MAX_SIZE" default:"5242880"`
	// URLPrefix is where the router serves Dir.
	URLPrefix string `yaml:"urlPrefix" envconfig:"UPLOAD_URL_PREFIX" default:"/uploads"`
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type File struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

type Store struct {
	cfg Config
}

func NewStore(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload dir: %w", err)
	}
	return &Store{cfg: cfg}, nil
}

func (s *Store) Dir() string {
	return s.cfg.Dir
}

func (s *Store) URLPrefix() string {
	return s.cfg.URLPrefix
}

// Save sniffs the content type from the first bytes rather than trusting the
// client header, then writes the part under a random name.
func (s *Store) Save(fh *multipart.FileHeader) (File, error) {
	if fh.Size == 0 {
		return File{}, ErrEmpty
	}
	if s.cfg.MaxSize > 0 && fh.Size > s.cfg.MaxSize {
		return File{}, ErrTooLarge
	}
	src, err := fh.Open()
	if err != nil {
		return File{}, err
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return File{}, err
	}
	ext, ok := extensions[http.DetectContentType(head[:n])]
	if !ok {
		return File{}, ErrUnsupportedType
	}

	return s.write(uuid.NewString()+ext, head[:n], src)
}

// write stores head followed by the rest of src as name. A partially written
// file is removed.
func (s *Store) write(name string, head []byte, src io.Reader) (_ File, err error) {
	full := filepath.Join(s.cfg.Dir, name)
	dst, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return File{}, err
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(full)
		}
	}()

	if _, err := dst.Write(head); err != nil {
		return File{}, err
	}
	if _, err := io.Copy(dst, src); err != nil {
		return File{}, err
	}
	return File{Filename: name, Path: path.Join(s.cfg.URLPrefix, name)}, nil
}
