package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/itrgo/internal/advisor"
	"github.com/rgehrsitz/itrgo/internal/breakeven"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/extract"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioA = `{
  "income": 1200000,
  "standardDeduction": true,
  "rentPaid": 20000,
  "hraReceived": 12500,
  "basicSalary": 50000,
  "deductions": {
    "80C": 150000, "80D": 25000, "80DDB": 40000,
    "80G": 10000, "HomeLoanInterest": 200000, "TTA": 10000
  }
}`

type stubText struct{ text string }

func (s stubText) ExtractText([]byte) (string, error) { return s.text, nil }

type stubGenerator struct{ reply string }

func (s stubGenerator) Generate(context.Context, string) (string, error) { return s.reply, nil }

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	s, err := New(opts)
	require.NoError(t, err)
	return s
}

func doJSON(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := doJSON(s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.Contains(t, rec.Body.String(), `"advice":false`)
}

func TestCompare(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := doJSON(s, http.MethodPost, "/api/v1/compare", scenarioA)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result domain.TaxResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.True(t, decimal.NewFromInt(20500).Equal(result.OldRegimeTax))
	assert.True(t, decimal.NewFromInt(52500).Equal(result.NewRegimeTax))
	assert.True(t, decimal.NewFromInt(150000).Equal(result.HRAExemption))
	assert.Equal(t, domain.OldRegime, result.Recommended)
	assert.Equal(t, 1, s.cache.Len())

	// a repeat is served from the cache
	rec = doJSON(s, http.MethodPost, "/api/v1/compare", scenarioA)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, s.cache.Len())
}

func TestCompare_InvalidInput(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := doJSON(s, http.MethodPost, "/api/v1/compare", `{"income": -1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
	assert.Contains(t, rec.Body.String(), "income must not be negative")

	rec = doJSON(s, http.MethodPost, "/api/v1/compare", `{"income": 1000, "deductions": {"80C": -5}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "deductions.80C")

	rec = doJSON(s, http.MethodPost, "/api/v1/compare", `{"income": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_REQUEST")
	assert.Equal(t, 0, s.cache.Len())
}

func TestBreakEven(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := doJSON(s, http.MethodPost, "/api/v1/breakeven", `{"income": 1200000, "standardDeduction": true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result breakeven.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, breakeven.StatusFound, result.Status)
	assert.True(t, decimal.NewFromInt(425001).Equal(result.Threshold), result.Threshold.String())

	rec = doJSON(s, http.MethodPost, "/api/v1/breakeven", `{"income": -5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func multipartUpload(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="file"; filename="` + filename + `"`}
	h["Content-Type"] = []string{contentType}
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestExtractDeductions(t *testing.T) {
	s := newTestServer(t, Options{
		Extractor: &extract.Extractor{Text: stubText{text: "Section 80C PPF 1,50,000\nSection 80D 25,000\n"}},
	})

	body, ct := multipartUpload(t, "proofs.pdf", "application/pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deductions/extract", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var ex extract.Extraction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ex))
	assert.True(t, decimal.NewFromInt(150000).Equal(ex.Deductions["80C"]))
	assert.True(t, decimal.NewFromInt(25000).Equal(ex.Deductions["80D"]))
}

func TestExtractDeductions_Rejects(t *testing.T) {
	s := newTestServer(t, Options{})

	body, ct := multipartUpload(t, "photo.png", "image/png", []byte("png"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deductions/extract", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = doJSON(s, http.MethodPost, "/api/v1/deductions/extract", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "NO_FILE")

	body, ct = multipartUpload(t, "broken.pdf", "application/pdf", []byte("not a pdf"))
	req = httptest.NewRequest(http.MethodPost, "/api/v1/deductions/extract", body)
	req.Header.Set("Content-Type", ct)
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestReport(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := doJSON(s, http.MethodPost, "/api/v1/report", scenarioA)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestAdvice(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := doJSON(s, http.MethodPost, "/api/v1/advice", scenarioA)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "ADVICE_UNAVAILABLE")

	s = newTestServer(t, Options{
		Advisor: advisor.NewWithGenerator(stubGenerator{reply: "Stay with the old regime."}, time.Second),
	})
	rec = doJSON(s, http.MethodPost, "/api/v1/advice", scenarioA)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp AdviceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Stay with the old regime.", resp.Advice)
	assert.Equal(t, domain.OldRegime, resp.Result.Recommended)
}

func TestResultCache(t *testing.T) {
	cache, err := NewResultCache(0)
	require.NoError(t, err)

	input := domain.TaxInput{Name: "a", Income: decimal.NewFromInt(100)}
	cache.Add(input, domain.TaxResult{Name: "a", OldRegimeTax: decimal.NewFromInt(5)})

	input.Name = "b"
	got, ok := cache.Get(input)
	require.True(t, ok)
	assert.Equal(t, "b", got.Name)
	assert.True(t, decimal.NewFromInt(5).Equal(got.OldRegimeTax))

	_, ok = cache.Get(domain.TaxInput{Income: decimal.NewFromInt(200)})
	assert.False(t, ok)
}
