package filestorage

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pioneer/admissions/internal/pkg/apperrors"
)

var (
	pngBytes = encodePNG()
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
	txtBytes = []byte("just some plain text, not a document")
)

func encodePNG() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(2, 2, color.RGBA{G: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

type part struct {
	field    string
	filename string
	data     []byte
}

func buildForm(t *testing.T, parts ...part) *multipart.Form {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, p := range parts {
		fw, err := w.CreateFormFile(p.field, p.filename)
		require.NoError(t, err)
		_, err = fw.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form
}

func newResolver(t *testing.T, policy UploadPolicy) (*Resolver, *LocalStorage) {
	t.Helper()
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewResolver(storage, policy), storage
}

func storedCount(t *testing.T, ls *LocalStorage) int {
	t.Helper()
	entries, err := os.ReadDir(ls.BasePath())
	require.NoError(t, err)
	return len(entries)
}

func TestUploadKind_Accepts(t *testing.T) {
	assert.True(t, KindStudentPhoto.Accepts(MimePNG))
	assert.True(t, KindStudentPhoto.Accepts(MimeJPEG))
	assert.False(t, KindStudentPhoto.Accepts(MimePDF))

	assert.True(t, KindDOBCertificate.Accepts(MimePDF))
	assert.True(t, KindDOBCertificate.Accepts(MimePNG))

	assert.True(t, KindSyllabusPDF.Accepts(MimePDF))
	assert.False(t, KindSyllabusPDF.Accepts(MimeJPEG))

	assert.False(t, UploadKind(99).Accepts(MimePDF))
	assert.Equal(t, "studentPhoto", KindStudentPhoto.FieldName())
	assert.Equal(t, "unknown", UploadKind(0).String())
}

func TestResolver_Resolve(t *testing.T) {
	r, ls := newResolver(t, UploadPolicy{MaxBytes: 1 << 20})

	form := buildForm(t,
		part{"studentPhoto", "me.PNG", pngBytes},
		part{"dobCertificate", "dob.pdf", pdfBytes},
	)
	files := FilesFromForm(form, RegistrationKinds...)
	require.Len(t, files, 2)

	stored, err := r.Resolve(files, RegistrationKinds)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	photo := stored[KindStudentPhoto]
	assert.Equal(t, MimePNG, photo.MimeType)
	assert.True(t, strings.HasPrefix(photo.Path, PublicPrefix+"/"))
	assert.True(t, strings.HasSuffix(photo.Path, ".png"))
	assert.FileExists(t, ls.FullPath(photo.Path))

	assert.Equal(t, MimePDF, stored[KindDOBCertificate].MimeType)
	assert.NotEqual(t, photo.Path, stored[KindDOBCertificate].Path)
}

func TestResolver_RejectsPDFAsPhoto(t *testing.T) {
	r, ls := newResolver(t, UploadPolicy{MaxBytes: 1 << 20})

	form := buildForm(t,
		part{"dobCertificate", "dob.pdf", pdfBytes},
		part{"studentPhoto", "photo.pdf", pdfBytes},
	)
	_, err := r.Resolve(FilesFromForm(form, RegistrationKinds...), RegistrationKinds)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidFileType))
	assert.Equal(t, 0, storedCount(t, ls), "no file should remain after a rejected upload")
}

func TestResolver_RejectsUnknownContent(t *testing.T) {
	r, _ := newResolver(t, UploadPolicy{MaxBytes: 1 << 20})

	form := buildForm(t, part{"bloodReport", "report.pdf", txtBytes})
	_, err := r.Store(KindBloodReport, form.File["bloodReport"][0])

	assert.True(t, errors.Is(err, apperrors.ErrInvalidFileType))
}

func TestResolver_RejectsTruncatedImage(t *testing.T) {
	r, ls := newResolver(t, UploadPolicy{MaxBytes: 1 << 20})

	truncated := pngBytes[:len(pngBytes)-20]
	form := buildForm(t, part{"studentPhoto", "me.png", truncated})
	_, err := r.Store(KindStudentPhoto, form.File["studentPhoto"][0])

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidFileType))
	assert.Equal(t, 0, storedCount(t, ls))
}

func TestResolver_ExtensionFollowsContent(t *testing.T) {
	r, ls := newResolver(t, UploadPolicy{MaxBytes: 1 << 20})

	disguised := append(append([]byte{}, pngBytes...), []byte("<script>alert(1)</script>")...)
	form := buildForm(t,
		part{"studentPhoto", "evil.html", disguised},
		part{"dobCertificate", "dob.JPEG", pdfBytes},
		part{"bloodReport", "report", pdfBytes},
	)

	photo, err := r.Store(KindStudentPhoto, form.File["studentPhoto"][0])
	require.NoError(t, err)
	assert.Equal(t, MimePNG, photo.MimeType)
	assert.True(t, strings.HasSuffix(photo.Path, ".png"), photo.Path)
	assert.Equal(t, "evil.html", photo.OriginalName)
	assert.FileExists(t, ls.FullPath(photo.Path))

	dob, err := r.Store(KindDOBCertificate, form.File["dobCertificate"][0])
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(dob.Path, ".pdf"), dob.Path)

	report, err := r.Store(KindBloodReport, form.File["bloodReport"][0])
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(report.Path, ".pdf"), report.Path)
}

func TestResolver_SizeLimits(t *testing.T) {
	r, ls := newResolver(t, UploadPolicy{
		MaxBytes:  16,
		Overrides: map[UploadKind]int64{KindSyllabusPDF: 1 << 20},
	})

	form := buildForm(t, part{"pdf", "big.pdf", pdfBytes})
	fh := form.File["pdf"][0]

	_, err := r.Store(KindDatesheetPDF, fh)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrFileTooLarge))
	assert.False(t, errors.Is(err, apperrors.ErrInvalidFileType))
	assert.Equal(t, 0, storedCount(t, ls))

	sf, err := r.Store(KindSyllabusPDF, fh)
	require.NoError(t, err)
	assert.FileExists(t, ls.FullPath(sf.Path))
}

func TestResolver_UnknownKind(t *testing.T) {
	r, _ := newResolver(t, UploadPolicy{})
	form := buildForm(t, part{"pdf", "a.pdf", pdfBytes})

	_, err := r.Store(UploadKind(42), form.File["pdf"][0])
	assert.True(t, errors.Is(err, apperrors.ErrUploadKind))
}

func TestResolver_Replace(t *testing.T) {
	r, ls := newResolver(t, UploadPolicy{})
	form := buildForm(t, part{"pdf", "a.pdf", pdfBytes}, part{"attachment", "b.pdf", pdfBytes})

	oldFile, err := r.Store(KindSyllabusPDF, form.File["pdf"][0])
	require.NoError(t, err)
	newFile, err := r.Store(KindMessageAttachment, form.File["attachment"][0])
	require.NoError(t, err)

	r.Replace(oldFile.Path, newFile.Path)

	assert.NoFileExists(t, ls.FullPath(oldFile.Path))
	assert.FileExists(t, ls.FullPath(newFile.Path))
}

func TestLocalStorage_DeleteIsIdempotent(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	stored, err := ls.Save(bytes.NewReader(pdfBytes), "x.pdf")
	require.NoError(t, err)

	require.NoError(t, ls.Delete(stored))
	assert.NoError(t, ls.Delete(stored))
	assert.NoError(t, ls.Delete(""))
}

func TestLocalStorage_FullPathStaysInBase(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(base)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "passwd"), ls.FullPath("../../etc/passwd"))
	assert.Equal(t, "", ls.FullPath(PublicPrefix))
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/uploads/1-a.pdf", PublicURL("http", "localhost:8080", "uploads/1-a.pdf"))
	assert.Equal(t, "https://school.example/uploads/1-a.pdf", PublicURL("https", "school.example", "1-a.pdf"))
	assert.Equal(t, "", PublicURL("http", "h", ""))
}
