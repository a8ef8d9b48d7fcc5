package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// DefaultMaxUploadBytes is the per-file upload limit.
const DefaultMaxUploadBytes int64 = 10 << 20

// AllowedMIMETypes lists the accepted MIME types; entries ending in "/"
// are prefixes.
var AllowedMIMETypes = []string{"image/", "video/", "application/pdf"}

// UploadCheck is the outcome of validating one file before upload.
type UploadCheck struct {
	MIME string
	Type MediaType
}

// CheckUpload sniffs the file's content type from head and enforces the size
// limit. Files failing either check must not reach storage.
func CheckUpload(name string, size int64, head []byte, maxBytes int64) (UploadCheck, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if size > maxBytes {
		return UploadCheck{}, fmt.Errorf("%s is %s, larger than the %s limit",
			name, humanize.Bytes(uint64(size)), humanize.Bytes(uint64(maxBytes)))
	}

	mime := mimetype.Detect(head).String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}

	mediaType, ok := mediaTypeForMIME(mime)
	if !ok {
		return UploadCheck{}, fmt.Errorf("%s has unsupported type %s; upload images, videos or PDFs", name, mime)
	}
	return UploadCheck{MIME: mime, Type: mediaType}, nil
}

func mediaTypeForMIME(mime string) (MediaType, bool) {
	allowed := false
	for _, a := range AllowedMIMETypes {
		if strings.HasSuffix(a, "/") && strings.HasPrefix(mime, a) || mime == a {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", false
	}

	switch {
	case strings.HasPrefix(mime, "image/"):
		return MediaPhoto, true
	case strings.HasPrefix(mime, "video/"):
		return MediaVideo, true
	default:
		return MediaDocument, true
	}
}

// DisplayName derives a media name from an uploaded file name.
func DisplayName(filename string) string {
	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = SanitizeText(name)
	if name == "" || name == "." {
		return "Untitled"
	}
	return name
}

// UploadState is the state of one file in an upload batch: Pending,
// Uploading, Uploaded or Failed.
type UploadState interface {
	Status() string
}

type Pending struct{}

type Uploading struct{}

type Uploaded struct{ ID string }

type Failed struct{ Reason string }

func (Pending) Status() string   { return "pending" }
func (Uploading) Status() string { return "uploading" }
func (Uploaded) Status() string  { return "uploaded" }
func (Failed) Status() string    { return "failed" }

// UploadResult is the completion message of one file's upload. A nil Err
// means the file was stored under ID.
type UploadResult struct {
	Key string
	ID  string
	Err error
}

// FileStatus is the JSON view of one file's state.
type FileStatus struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Status string `json:"status"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// UploadTracker follows the files of one upload batch.
type UploadTracker struct {
	order  []string
	names  map[string]string
	states map[string]UploadState
}

// NewUploadTracker returns an empty tracker.
func NewUploadTracker() *UploadTracker {
	return &UploadTracker{
		names:  make(map[string]string),
		states: make(map[string]UploadState),
	}
}

// Add registers a file as Pending and returns its key.
func (t *UploadTracker) Add(name string) string {
	key := uuid.NewString()
	t.order = append(t.order, key)
	t.names[key] = name
	t.states[key] = Pending{}
	return key
}

// Begin moves a pending file to Uploading.
func (t *UploadTracker) Begin(key string) {
	if _, ok := t.states[key].(Pending); ok {
		t.states[key] = Uploading{}
	}
}

// Reject fails a file before it is uploaded.
func (t *UploadTracker) Reject(key, reason string) {
	if _, ok := t.states[key]; ok {
		t.states[key] = Failed{Reason: reason}
	}
}

// Resolve applies a completion message to an uploading file. Messages for
// files that are not uploading are ignored.
func (t *UploadTracker) Resolve(res UploadResult) {
	if _, ok := t.states[res.Key].(Uploading); !ok {
		return
	}
	if res.Err != nil {
		t.states[res.Key] = Failed{Reason: res.Err.Error()}
		return
	}
	t.states[res.Key] = Uploaded{ID: res.ID}
}

// State returns the current state of key.
func (t *UploadTracker) State(key string) UploadState {
	return t.states[key]
}

// Counts returns how many files were uploaded and how many failed.
func (t *UploadTracker) Counts() (uploaded, failed int) {
	for _, s := range t.states {
		switch s.(type) {
		case Uploaded:
			uploaded++
		case Failed:
			failed++
		}
	}
	return uploaded, failed
}

// Snapshot returns every file's state in the order added.
func (t *UploadTracker) Snapshot() []FileStatus {
	out := make([]FileStatus, 0, len(t.order))
	for _, key := range t.order {
		fs := FileStatus{Key: key, Name: t.names[key]}
		switch s := t.states[key].(type) {
		case Uploaded:
			fs.ID = s.ID
		case Failed:
			fs.Reason = s.Reason
		}
		fs.Status = t.states[key].Status()
		out = append(out, fs)
	}
	return out
}
