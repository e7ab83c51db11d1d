// Package uploads validates and stores the images users attach to their
// profile and projects.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gobwas/glob"

	"codecrew/models"
)

// Policy describes one kind of upload: the form field it arrives in, where it
// is stored and what is accepted.
type Policy struct {
	Field   string
	Dir     string
	Prefix  string
	MaxSize int64
	accept  []glob.Glob
}

func NewPolicy(field, dir, prefix string, maxSize int64, patterns ...string) Policy {
	p := Policy{Field: field, Dir: dir, Prefix: prefix, MaxSize: maxSize}
	for _, pattern := range patterns {
		p.accept = append(p.accept, glob.MustCompile(pattern, '/'))
	}
	return p
}

var (
	ProfilePhoto     = NewPolicy("profilePhoto", "profiles", "profile-", 2<<20, "image/*")
	ProjectThumbnail = NewPolicy("thumbnail", "projects", "project-", 5<<20, "image/*")
)

const (
	ReasonNotImage = "Only image files are allowed"
	reasonTooLarge = "File too large"
)

// Decision is the outcome of checking an upload against a Policy.
type Decision struct {
	Accepted bool
	Reason   string
}

func accept() Decision              { return Decision{Accepted: true} }
func reject(reason string) Decision { return Decision{Reason: reason} }

// Check inspects the declared content type, the size and the first bytes of
// the file. Nothing is written anywhere.
func (p Policy) Check(fh *multipart.FileHeader) Decision {
	if fh == nil {
		return reject("no file")
	}
	if p.MaxSize > 0 && fh.Size > p.MaxSize {
		return reject(fmt.Sprintf("%s (max %s)", reasonTooLarge, humanize.IBytes(uint64(p.MaxSize))))
	}

	declared, _, err := mime.ParseMediaType(fh.Header.Get("Content-Type"))
	if err != nil || !p.accepts(declared) {
		return reject(ReasonNotImage)
	}

	f, err := fh.Open()
	if err != nil {
		return reject("unreadable file")
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return reject("unreadable file")
	}
	sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(head[:n]))
	if !p.accepts(sniffed) {
		return reject(ReasonNotImage)
	}
	return accept()
}

func (p Policy) accepts(mediaType string) bool {
	for _, g := range p.accept {
		if g.Match(mediaType) {
			return true
		}
	}
	return false
}

// File is an upload that passed its Policy and is waiting to be stored.
type File struct {
	Policy Policy
	Header *multipart.FileHeader
}

// FromRequest extracts the policy's form field from a parsed multipart
// request. A missing file yields (nil, nil).
func (p Policy) FromRequest(r *http.Request) (*File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	files := r.MultipartForm.File[p.Field]
	if len(files) == 0 {
		return nil, nil
	}
	fh := files[0]
	if d := p.Check(fh); !d.Accepted {
		return nil, models.NewUnsupportedMediaError(d.Reason)
	}
	return &File{Policy: p, Header: fh}, nil
}
