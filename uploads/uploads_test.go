package uploads

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codecrew/models"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

func multipartBody(t *testing.T, field, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.WriteField("name", "demo"))
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	body, ct := multipartBody(t, "file", filename, contentType, content)
	_, params, _ := strings.Cut(ct, "boundary=")
	form, err := multipart.NewReader(body, params).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["file"][0]
}

func TestPolicy_Check(t *testing.T) {
	small := NewPolicy("file", "misc", "misc-", 16, "image/*")

	tests := []struct {
		name        string
		policy      Policy
		contentType string
		content     []byte
		accepted    bool
		reason      string
	}{
		{"png accepted", ProjectThumbnail, "image/png", pngBytes, true, ""},
		{"declared text rejected", ProjectThumbnail, "text/plain", pngBytes, false, ReasonNotImage},
		{"spoofed image rejected", ProjectThumbnail, "image/png", []byte("just some text"), false, ReasonNotImage},
		{"missing content type rejected", ProjectThumbnail, "", pngBytes, false, ReasonNotImage},
		{"too large rejected", small, "image/png", pngBytes, false, "File too large (max 16 B)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.policy.Check(fileHeader(t, "shot.png", tt.contentType, tt.content))
			assert.Equal(t, tt.accepted, d.Accepted)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestPolicy_Limits(t *testing.T) {
	assert.EqualValues(t, 2*1024*1024, ProfilePhoto.MaxSize)
	assert.EqualValues(t, 5*1024*1024, ProjectThumbnail.MaxSize)
}

func TestPolicy_FromRequest(t *testing.T) {
	parse := func(t *testing.T, body *bytes.Buffer, ct string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/projects", body)
		req.Header.Set("Content-Type", ct)
		require.NoError(t, req.ParseMultipartForm(1<<20))
		return req
	}

	t.Run("accepted", func(t *testing.T) {
		body, ct := multipartBody(t, "thumbnail", "shot.PNG", "image/png", pngBytes)
		f, err := ProjectThumbnail.FromRequest(parse(t, body, ct))
		require.NoError(t, err)
		require.NotNil(t, f)
		assert.Equal(t, "shot.PNG", f.Header.Filename)
	})

	t.Run("absent field", func(t *testing.T) {
		body, ct := multipartBody(t, "other", "shot.png", "image/png", pngBytes)
		f, err := ProjectThumbnail.FromRequest(parse(t, body, ct))
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("rejected", func(t *testing.T) {
		body, ct := multipartBody(t, "thumbnail", "notes.txt", "text/plain", []byte("hello"))
		_, err := ProjectThumbnail.FromRequest(parse(t, body, ct))
		assert.ErrorIs(t, err, models.ErrUnsupportedMedia)
	})

	t.Run("not multipart", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(`{}`))
		f, err := ProjectThumbnail.FromRequest(req)
		require.NoError(t, err)
		assert.Nil(t, f)
	})
}

func TestStore_Save(t *testing.T) {
	root := t.TempDir()
	store, err := NewStore(root)
	require.NoError(t, err)

	for _, dir := range []string{"profiles", "projects"} {
		info, err := os.Stat(filepath.Join(root, dir))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	name, err := store.Save(&File{Policy: ProfilePhoto, Header: fileHeader(t, "Me.JPG", "image/png", pngBytes)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "profile-"))
	assert.True(t, strings.HasSuffix(name, ".jpg"))

	ok, err := store.Exists("profiles/" + name)
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := os.ReadFile(filepath.Join(root, "profiles", name))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, stored)
}

func TestStore_PathsStayUnderRoot(t *testing.T) {
	root := t.TempDir()
	store, err := NewStore(root)
	require.NoError(t, err)

	_, err = store.Put("../../escape.txt", strings.NewReader("x"))
	require.NoError(t, err)

	ok, err := store.Exists("escape.txt")
	require.NoError(t, err)
	assert.True(t, ok, "traversal is clamped to the root")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".png", extension("a.PNG"))
	assert.Equal(t, "", extension("noext"))
	assert.Equal(t, "", extension("weird.p$g"))
	assert.Equal(t, "", extension("long.abcdefgh"))
}
