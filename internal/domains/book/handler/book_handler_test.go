package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// The handler validates before touching the service, so a nil service is
// enough to exercise the rejection paths.
func postBooks(t *testing.T, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/books", body)
	req.Header.Set("Content-Type", contentType)
	c.Request = req

	NewBookHandler(nil).Create(c)
	return rec
}

func TestCreateRejectsTimestampsInJSONBody(t *testing.T) {
	payload, err := json.Marshal(map[string]string{
		"title":      "Dune",
		"created_at": "2024-01-01T00:00:00Z",
	})
	require.NoError(t, err)

	rec := postBooks(t, bytes.NewBuffer(payload), "application/json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "created_at")
}

func TestCreateRejectsTimestampsInMultipartForm(t *testing.T) {
	for _, field := range []string{"created_at", "updated_at"} {
		t.Run(field, func(t *testing.T) {
			body := &bytes.Buffer{}
			form := multipart.NewWriter(body)
			require.NoError(t, form.WriteField("title", "Dune"))
			require.NoError(t, form.WriteField(field, "2024-01-01T00:00:00Z"))
			require.NoError(t, form.Close())

			rec := postBooks(t, body, form.FormDataContentType())
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), field)
		})
	}
}
