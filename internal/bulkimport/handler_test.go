package bulkimport

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	preview    *PreviewResponse
	previewErr error
	result     *Result
	commitErr  error
	workbook   []byte
}

func (s *stubService) Preview(ctx context.Context, fileBytes []byte) (*PreviewResponse, error) {
	return s.preview, s.previewErr
}

func (s *stubService) Commit(ctx context.Context, payload *CommitPayload) (*Result, error) {
	return s.result, s.commitErr
}

func (s *stubService) Template(ctx context.Context) ([]byte, error) {
	return s.workbook, nil
}

func (s *stubService) Export(ctx context.Context) ([]byte, error) {
	return s.workbook, nil
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["detail"]
}

func TestPreviewHandlerRejectsNonXlsx(t *testing.T) {
	handler := NewHandler(&stubService{})

	body, contentType := multipartUpload(t, "content.csv", []byte("a,b,c"))
	req := httptest.NewRequest(http.MethodPost, "/preview", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Preview(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Upload an Excel .xlsx workbook.", decodeDetail(t, rec))
}

func TestPreviewHandlerRejectsEmptyFile(t *testing.T) {
	handler := NewHandler(&stubService{})

	body, contentType := multipartUpload(t, "empty.xlsx", nil)
	req := httptest.NewRequest(http.MethodPost, "/preview", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Preview(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "File is empty.", decodeDetail(t, rec))
}

func TestPreviewHandlerMapsMalformedWorkbook(t *testing.T) {
	handler := NewHandler(&stubService{
		previewErr: ErrMalformedWorkbook,
	})

	body, contentType := multipartUpload(t, "bad.xlsx", []byte("zip?"))
	req := httptest.NewRequest(http.MethodPost, "/preview", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Preview(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreviewHandlerReturnsPreview(t *testing.T) {
	handler := NewHandler(&stubService{
		preview: &PreviewResponse{
			Categories: []CategoryPreview{{Name: "Science", Slug: "science", Action: ActionCreate, Errors: []string{}}},
			Quizzes:    []QuizPreview{},
			Questions:  []QuestionPreview{},
			Warnings:   []string{},
		},
	})

	body, contentType := multipartUpload(t, "ok.xlsx", []byte("content"))
	req := httptest.NewRequest(http.MethodPost, "/preview", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Preview(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response PreviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Categories, 1)
	assert.Equal(t, ActionCreate, response.Categories[0].Action)
}

func TestCommitHandlerMapsCommitError(t *testing.T) {
	handler := NewHandler(&stubService{
		commitErr: conflict("A conflicting record was written concurrently."),
	})

	req := httptest.NewRequest(http.MethodPost, "/commit", bytes.NewBufferString(`{"categories":[],"quizzes":[],"questions":[]}`))
	rec := httptest.NewRecorder()

	handler.Commit(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decodeDetail(t, rec), "conflicting record")
}

func TestCommitHandlerReturnsCounts(t *testing.T) {
	handler := NewHandler(&stubService{
		result: &Result{CategoriesCreated: 1, QuestionsCreated: 2},
	})

	req := httptest.NewRequest(http.MethodPost, "/commit", bytes.NewBufferString(`{"categories":[{"name":"Science"}]}`))
	rec := httptest.NewRecorder()

	handler.Commit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.CategoriesCreated)
	assert.Equal(t, 2, result.QuestionsCreated)
}

func TestTemplateHandlerServesWorkbook(t *testing.T) {
	handler := NewHandler(&stubService{workbook: []byte("xlsx-bytes")})

	req := httptest.NewRequest(http.MethodGet, "/template", nil)
	rec := httptest.NewRecorder()

	handler.Template(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, excelMediaType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "bulk-import-template.xlsx")
	assert.Equal(t, "xlsx-bytes", rec.Body.String())
}
