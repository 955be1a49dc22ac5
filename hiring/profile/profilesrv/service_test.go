package profilesrv

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirestack/beacon/hiring/profile"
	"github.com/hirestack/beacon/internal/ai/completion"
	"github.com/hirestack/beacon/internal/ai/cvparser"
	"github.com/hirestack/beacon/internal/document"
	"github.com/hirestack/beacon/pkg/kernel"
)

type fakeRepo struct {
	upserted  *profile.CandidateProfile
	upsertErr error
	stored    *profile.CandidateProfile
	getErr    error
	deleteErr error
}

func (f *fakeRepo) Upsert(_ context.Context, p *profile.CandidateProfile) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = p
	return nil
}

func (f *fakeRepo) GetByCandidateID(_ context.Context, _ kernel.CandidateID) (*profile.CandidateProfile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.stored, nil
}

func (f *fakeRepo) Delete(_ context.Context, _ kernel.CandidateID) error {
	return f.deleteErr
}

type fakeFiles struct {
	writtenPath string
	writtenData []byte
	writeErr    error
}

func (f *fakeFiles) WriteFile(_ context.Context, path string, data []byte, _ string) (string, error) {
	if f.writeErr != nil {
		return "", f.writeErr
	}
	f.writtenPath = path
	f.writtenData = data
	return "s3://bucket/" + path, nil
}

func (f *fakeFiles) ReadFile(_ context.Context, _ string) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeFiles) DeleteFile(_ context.Context, _ string) error {
	return nil
}

type fakeCompletion struct {
	response string
	err      error
}

func (f *fakeCompletion) Complete(_ context.Context, _ completion.Request) (string, error) {
	return f.response, f.err
}

func docxFixture(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document><w:body><w:p><w:r><w:t>` + body + `</w:t></w:r></w:p></w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func uploadRequest(t *testing.T) profile.UploadCVRequest {
	return profile.UploadCVRequest{
		CandidateID: kernel.NewCandidateID("cand-1"),
		FileName:    "cv.docx",
		MIMEType:    document.MIMETypeDOCX,
		Data:        docxFixture(t, "Jane Doe, backend engineer with Go and SQL"),
	}
}

func newService(repo *fakeRepo, files *fakeFiles, client *fakeCompletion) *Service {
	parser := cvparser.NewParser(client, cvparser.DefaultConfig())
	return NewService(repo, parser, files)
}

func TestUploadCV_FullPipeline(t *testing.T) {
	repo := &fakeRepo{}
	files := &fakeFiles{}
	client := &fakeCompletion{response: `{
		"name": "Jane Doe",
		"contact": {"email": "jane@example.com", "phone": ""},
		"skills": ["Go", "SQL"],
		"experience_summary": "Backend engineer.",
		"education_summary": "",
		"work_history": []
	}`}
	svc := newService(repo, files, client)

	resp, err := svc.UploadCV(context.Background(), uploadRequest(t))
	require.NoError(t, err)

	assert.Equal(t, kernel.NewCandidateID("cand-1"), resp.CandidateID)
	assert.Equal(t, "Jane Doe", resp.Name)
	assert.Equal(t, []string{"Go", "SQL"}, resp.Skills)
	assert.Equal(t, "cv.docx", resp.FileName)
	assert.Contains(t, resp.CVURL, "s3://bucket/cvs/cand-1/")

	require.NotNil(t, repo.upserted)
	assert.False(t, repo.upserted.ID.IsEmpty())
	assert.Equal(t, files.writtenData, uploadRequest(t).Data)
	assert.Contains(t, files.writtenPath, "cvs/cand-1/")
	assert.Contains(t, files.writtenPath, ".docx")
}

func TestUploadCV_UnsupportedFormat(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &fakeFiles{}, &fakeCompletion{response: "{}"})

	req := uploadRequest(t)
	req.MIMEType = "text/plain"

	_, err := svc.UploadCV(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, document.ErrUnsupportedFormat()))
	assert.Nil(t, repo.upserted)
}

func TestUploadCV_CorruptDocument(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &fakeFiles{}, &fakeCompletion{response: "{}"})

	req := uploadRequest(t)
	req.Data = []byte("not a zip archive")

	_, err := svc.UploadCV(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, document.ErrCorruptDocument()))
	assert.Nil(t, repo.upserted)
}

func TestUploadCV_FileStoreFailure(t *testing.T) {
	repo := &fakeRepo{}
	files := &fakeFiles{writeErr: errors.New("s3 unavailable")}
	svc := newService(repo, files, &fakeCompletion{response: "{}"})

	_, err := svc.UploadCV(context.Background(), uploadRequest(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, profile.ErrFileStoreFailed()))
	assert.Nil(t, repo.upserted)
}

func TestUploadCV_ExtractionFailure(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &fakeFiles{}, &fakeCompletion{err: errors.New("model down")})

	_, err := svc.UploadCV(context.Background(), uploadRequest(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, profile.ErrExtractionFailed()))
	assert.Nil(t, repo.upserted)
}

func TestUploadCV_EmptyExtractionStillSucceeds(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &fakeFiles{}, &fakeCompletion{response: "no structure here at all"})

	resp, err := svc.UploadCV(context.Background(), uploadRequest(t))
	require.NoError(t, err)

	assert.NotNil(t, resp.Skills)
	assert.Empty(t, resp.Skills)
	require.NotNil(t, repo.upserted)
	assert.True(t, repo.upserted.IsEmpty())
}

func TestUploadCV_SaveFailure(t *testing.T) {
	repo := &fakeRepo{upsertErr: errors.New("db gone")}
	svc := newService(repo, &fakeFiles{}, &fakeCompletion{response: `{"skills": ["Go"]}`})

	_, err := svc.UploadCV(context.Background(), uploadRequest(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, profile.ErrProfileSaveFailed()))
}

func TestGetProfile(t *testing.T) {
	stored := &profile.CandidateProfile{
		ID:          kernel.NewProfileID("prof-1"),
		CandidateID: kernel.NewCandidateID("cand-1"),
		Skills:      []string{"Go"},
	}
	svc := newService(&fakeRepo{stored: stored}, &fakeFiles{}, &fakeCompletion{})

	resp, err := svc.GetProfile(context.Background(), kernel.NewCandidateID("cand-1"))
	require.NoError(t, err)
	assert.Equal(t, kernel.NewProfileID("prof-1"), resp.ID)
	assert.Equal(t, []string{"Go"}, resp.Skills)
}

func TestGetProfile_NotFound(t *testing.T) {
	svc := newService(&fakeRepo{getErr: errors.New("no rows")}, &fakeFiles{}, &fakeCompletion{})

	_, err := svc.GetProfile(context.Background(), kernel.NewCandidateID("missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, profile.ErrProfileNotFound()))
}

func TestDeleteProfile_NotFound(t *testing.T) {
	svc := newService(&fakeRepo{deleteErr: errors.New("no rows")}, &fakeFiles{}, &fakeCompletion{})

	err := svc.DeleteProfile(context.Background(), kernel.NewCandidateID("missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, profile.ErrProfileNotFound()))
}
