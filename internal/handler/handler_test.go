package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniquecreditos/taxsim-service/internal/documents"
	"github.com/uniquecreditos/taxsim-service/internal/integrations/ai"
	"github.com/uniquecreditos/taxsim-service/internal/letterhead"
	"github.com/uniquecreditos/taxsim-service/internal/models"
	"github.com/uniquecreditos/taxsim-service/internal/report"
	"github.com/uniquecreditos/taxsim-service/internal/repository"
	"github.com/uniquecreditos/taxsim-service/internal/service"
)

type stubMailer struct {
	sent     int
	lastTo   string
	lastFile string
}

func (m *stubMailer) SendReport(to, companyName, fileName string, content []byte, contentType string) error {
	m.sent++
	m.lastTo = to
	m.lastFile = fileName
	return nil
}

type testServer struct {
	router     *mux.Router
	letterhead *letterhead.Store
	documents  *documents.Store
	aiConfig   *ai.ConfigStore
	mailer     *stubMailer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})

	mem := repository.NewMemory()
	lh := letterhead.NewStore(mem, log)
	docs := documents.NewStore(mem, log)
	aiCfg := ai.NewConfigStore(mem, log)
	client := ai.NewClient(aiCfg, log)
	renderer := report.NewRenderer(lh, "test-secret", log)
	mailer := &stubMailer{}

	svc := service.NewService(aiCfg, client, renderer, mailer, log)
	h := NewHandler(svc, lh, docs, aiCfg, log)

	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return &testServer{router: router, letterhead: lh, documents: docs, aiConfig: aiCfg, mailer: mailer}
}

func (ts *testServer) do(t *testing.T, method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func simulateBody() []byte {
	return []byte(`{
		"company_name": "Teste Ltda",
		"tax_types": ["PIS/COFINS"],
		"monthly_tax_amount": "100000",
		"period_months": 12,
		"credit_usage_percent": "95",
		"fee_percent": "70"
	}`)
}

func TestSimulateEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/simulate", simulateBody(), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.SimulationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.MonthlySavings.Equal(decimal.NewFromInt(28500)))
	assert.True(t, result.TotalSavings.Equal(decimal.NewFromInt(342000)))
	assert.True(t, result.SavingsPercentDefined)
}

func TestSimulateRejectsBadInput(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/simulate",
		[]byte(`{"monthly_tax_amount": "100000", "period_months": 0, "credit_usage_percent": "95", "fee_percent": "70"}`),
		"application/json")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope["error"])
}

func TestGenerateReportEndpoint(t *testing.T) {
	ts := newTestServer(t)

	body := []byte(`{"input": ` + string(simulateBody()) + `}`)
	rec := ts.do(t, http.MethodPost, "/reports/executive", body, "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "_executive_")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestGenerateReportUnknownKind(t *testing.T) {
	ts := newTestServer(t)

	body := []byte(`{"input": ` + string(simulateBody()) + `}`)
	rec := ts.do(t, http.MethodPost, "/reports/quarterly", body, "application/json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCustomReportRequiresEnabledAI(t *testing.T) {
	ts := newTestServer(t)

	body := []byte(`{"input": ` + string(simulateBody()) + `, "prompt": "foque em caixa"}`)
	rec := ts.do(t, http.MethodPost, "/reports/custom", body, "application/json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmailReportEndpoint(t *testing.T) {
	ts := newTestServer(t)

	body := []byte(`{"to": "cliente@empresa.com.br", "kind": "executive", "input": ` + string(simulateBody()) + `}`)
	rec := ts.do(t, http.MethodPost, "/reports/email", body, "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 1, ts.mailer.sent)
	assert.Equal(t, "cliente@empresa.com.br", ts.mailer.lastTo)
	assert.Contains(t, ts.mailer.lastFile, "_executive_")
}

func TestLetterheadRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/letterhead", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var cfg models.LetterheadConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, "Unique Assessoria Empresarial", cfg.LegalName)

	rec = ts.do(t, http.MethodPut, "/letterhead",
		[]byte(`{"legal_name": "Nova Assessoria", "report_prefix": "NA"}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, "Nova Assessoria", cfg.LegalName)
	assert.Equal(t, "NA", cfg.ReportPrefix)
	assert.Equal(t, "00.000.000/0001-00", cfg.TaxID, "unset fields keep their value")
}

func TestLogoUploadAndDelete(t *testing.T) {
	ts := newTestServer(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="logo"; filename="logo.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	part.Write([]byte("\x89PNG\r\n\x1a\nfake-image-bytes"))
	require.NoError(t, writer.Close())

	rec := ts.do(t, http.MethodPost, "/letterhead/logo", buf.Bytes(), writer.FormDataContentType())
	require.Equal(t, http.StatusOK, rec.Code)

	var cfg models.LetterheadConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	require.NotNil(t, cfg.Logo)
	assert.Equal(t, "logo.png", cfg.Logo.FileName)

	rec = ts.do(t, http.MethodDelete, "/letterhead/logo", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Nil(t, cfg.Logo)
}

func TestLetterheadExportImport(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPut, "/letterhead", []byte(`{"legal_name": "Exportada SA"}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/letterhead/export", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "timbrado.json")
	exported := rec.Body.Bytes()

	rec = ts.do(t, http.MethodPost, "/letterhead/reset", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/letterhead/import", exported, "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	var cfg models.LetterheadConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, "Exportada SA", cfg.LegalName)
}

func TestAIConfigRedactsKey(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPut, "/ai-config",
		[]byte(`{"enabled": true, "api_key": "sk-secret", "provider": "anthropic"}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		models.AIConfig
		APIKeySet bool `json:"api_key_set"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.APIKey)
	assert.True(t, resp.APIKeySet)
	assert.Equal(t, models.ProviderAnthropic, resp.Provider)
	assert.Equal(t, models.DefaultModels[models.ProviderAnthropic][0], resp.Model)

	rec = ts.do(t, http.MethodGet, "/ai-config", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "sk-secret")
}

func TestAIConnectionTestWhenDisabled(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/ai-config/test", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDocumentLifecycle(t *testing.T) {
	ts := newTestServer(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="contrato.pdf"`)
	header.Set("Content-Type", "application/pdf")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	part.Write([]byte("%PDF-1.4 fake contract"))
	require.NoError(t, writer.WriteField("category", "contract"))
	require.NoError(t, writer.Close())

	rec := ts.do(t, http.MethodPost, "/documents", buf.Bytes(), writer.FormDataContentType())
	require.Equal(t, http.StatusCreated, rec.Code)

	var doc models.UploadedDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "contrato.pdf", doc.FileName)
	assert.Equal(t, models.CategoryContract, doc.Category)

	rec = ts.do(t, http.MethodGet, "/documents", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list models.DocumentConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Documents, 1)
	require.NotNil(t, list.Templates.ContractDraft)

	rec = ts.do(t, http.MethodGet, "/documents/"+doc.ID+"/download", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-1.4"))

	rec = ts.do(t, http.MethodDelete, "/documents/"+doc.ID, nil, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, "/documents/"+doc.ID+"/download", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvalidJSONBody(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/simulate", []byte("{nope"), "application/json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
