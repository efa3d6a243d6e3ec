package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indicamais/internal/authz"
	"indicamais/internal/models"
	"indicamais/internal/services"
)

type stubLeadRepo struct {
	leads   map[string]*models.Lead
	settled []*models.Settlement
}

func (s *stubLeadRepo) Create(lead *models.Lead) error { return nil }

func (s *stubLeadRepo) GetByID(id string) (*models.Lead, error) { return s.leads[id], nil }

func (s *stubLeadRepo) ListByStatus(status models.Status, limit, offset int) ([]*models.Lead, error) {
	return nil, nil
}

func (s *stubLeadRepo) UpdateStatus(id string, status models.Status, attendedAt, aguardandoEm, canceladoEm *time.Time) error {
	return nil
}

func (s *stubLeadRepo) CountsByStatus() (map[models.Status]int, error) { return nil, nil }

func (s *stubLeadRepo) Settle(ctx context.Context, st *models.Settlement) error {
	s.settled = append(s.settled, st)
	return nil
}

type stubUserRepo struct{}

func (stubUserRepo) Create(u *models.User) error                   { return nil }
func (stubUserRepo) GetByID(id string) (*models.User, error)       { return nil, nil }
func (stubUserRepo) GetByEmail(e string) (*models.User, error)     { return nil, nil }
func (stubUserRepo) GetByPromoCode(c string) (*models.User, error) { return nil, nil }
func (stubUserRepo) EmailInUse(e string) (bool, error)             { return false, nil }
func (stubUserRepo) Update(u *models.User) error                   { return nil }
func (stubUserRepo) List(l, o int) ([]*models.User, error)         { return nil, nil }
func (stubUserRepo) IncrementBonus(id string) error                { return nil }

func (stubUserRepo) GetByProvider(e, p, pid string) (*models.User, error) { return nil, nil }

type stubReceiptRepo struct {
	receipt *models.LeadReceipt
}

func (s *stubReceiptRepo) GetByLeadID(leadID string) (*models.LeadReceipt, error) {
	if s.receipt != nil && s.receipt.LeadID == leadID {
		return s.receipt, nil
	}
	return nil, nil
}

func financeRouter(leads *stubLeadRepo, receipts *stubReceiptRepo, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)

	settlements := services.NewSettlementService(leads, stubUserRepo{}, nil, nil)
	handler := NewFinanceHandler(settlements, services.NewLeadService(leads, stubUserRepo{}), receipts)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if user != nil {
			c.Set("user", user)
		}
	})
	r.POST("/financeiro/status", handler.UpdateStatus)
	r.GET("/financeiro/comprovante/:id", handler.GetReceipt)
	return r
}

func multipartStatus(t *testing.T, leadID, status string, file []byte, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("id", leadID))
	require.NoError(t, w.WriteField("status", status))
	if file != nil {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="comprovante"; filename="comprovante.png"`)
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestUpdateStatusRequiresUser(t *testing.T) {
	r := financeRouter(&stubLeadRepo{leads: map[string]*models.Lead{}}, &stubReceiptRepo{}, nil)

	form := url.Values{"id": {"lead1"}, "status": {"Pago"}}
	req := httptest.NewRequest(http.MethodPost, "/financeiro/status", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
}

func TestUpdateStatusMissingReceipt(t *testing.T) {
	user := &models.User{ID: "fin1", Name: "Marina", Job: authz.RoleFinanceiro}
	r := financeRouter(&stubLeadRepo{leads: map[string]*models.Lead{}}, &stubReceiptRepo{}, user)

	body, contentType := multipartStatus(t, "lead1", "Pago", nil, "")
	req := httptest.NewRequest(http.MethodPost, "/financeiro/status", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Comprovante é obrigatório para pagamentos", resp["message"])
}

func TestUpdateStatusPaysLead(t *testing.T) {
	user := &models.User{ID: "fin1", Name: "Marina", Job: authz.RoleFinanceiro}
	leads := &stubLeadRepo{leads: map[string]*models.Lead{
		"lead1": {ID: "lead1", FullName: "João Silva", Status: models.StatusAguardandoPagamento},
	}}
	r := financeRouter(leads, &stubReceiptRepo{}, user)

	body, contentType := multipartStatus(t, "lead1", "Pago", []byte("png-bytes"), "image/png")
	req := httptest.NewRequest(http.MethodPost, "/financeiro/status", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Status atualizado para Pago com sucesso", resp["message"])
	assert.Equal(t, "Pago", resp["newStatus"])

	require.Len(t, leads.settled, 1)
	require.NotNil(t, leads.settled[0].Receipt)
	assert.True(t, strings.HasPrefix(leads.settled[0].Receipt.Comprovante, "data:image/png;base64,"))
}

func TestGetReceiptFound(t *testing.T) {
	user := &models.User{ID: "fin1", Job: authz.RoleFinanceiro}
	receipts := &stubReceiptRepo{receipt: &models.LeadReceipt{
		ID: "r1", LeadID: "lead1", Comprovante: "data:image/png;base64,aGVsbG8=",
	}}
	r := financeRouter(&stubLeadRepo{leads: map[string]*models.Lead{}}, receipts, user)

	req := httptest.NewRequest(http.MethodGet, "/financeiro/comprovante/lead1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", resp["comprovante"])
}

func TestGetReceiptNotFound(t *testing.T) {
	user := &models.User{ID: "fin1", Job: authz.RoleFinanceiro}
	r := financeRouter(&stubLeadRepo{leads: map[string]*models.Lead{}}, &stubReceiptRepo{}, user)

	req := httptest.NewRequest(http.MethodGet, "/financeiro/comprovante/lead1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Comprovante não encontrado", resp["error"])
}
