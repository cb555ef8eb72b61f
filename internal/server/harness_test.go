package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/bobmcallan/arvest/internal/app"
	"github.com/bobmcallan/arvest/internal/common"
	"github.com/bobmcallan/arvest/internal/interfaces"
	"github.com/bobmcallan/arvest/internal/models"
	"github.com/bobmcallan/arvest/internal/services/advisor"
	"github.com/bobmcallan/arvest/internal/services/analysis"
	"github.com/bobmcallan/arvest/internal/services/audit"
	"github.com/bobmcallan/arvest/internal/services/investment"
	"github.com/bobmcallan/arvest/internal/services/product"
)

// --- In-memory storage for handler tests ---

type memUserStore struct {
	users    map[string]*models.User
	profiles map[string]*models.RiskProfile
}

func (s *memUserStore) GetUser(_ context.Context, userID string) (*models.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user not found: %s", userID)
	}
	return u, nil
}

func (s *memUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found: %s", email)
}

func (s *memUserStore) SaveUser(_ context.Context, user *models.User) error {
	s.users[user.UserID] = user
	return nil
}

func (s *memUserStore) DeleteUser(_ context.Context, userID string) error {
	delete(s.users, userID)
	return nil
}

func (s *memUserStore) GetProfile(_ context.Context, userID string) (*models.RiskProfile, error) {
	return s.profiles[userID], nil
}

func (s *memUserStore) SaveProfile(_ context.Context, profile *models.RiskProfile) error {
	s.profiles[profile.UserID] = profile
	return nil
}

type memProductStore struct {
	products map[string]*models.Product
}

func (s *memProductStore) GetProduct(_ context.Context, id string) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product not found: %s", id)
	}
	return p, nil
}

func (s *memProductStore) SaveProduct(_ context.Context, p *models.Product) error {
	s.products[p.ID] = p
	return nil
}

func (s *memProductStore) ListProducts(_ context.Context, activeOnly bool) ([]*models.Product, error) {
	var out []*models.Product
	for _, p := range s.products {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memProductStore) DeactivateProduct(_ context.Context, id string) error {
	p, ok := s.products[id]
	if !ok {
		return fmt.Errorf("product not found: %s", id)
	}
	p.IsActive = false
	return nil
}

type memInvestmentStore struct {
	investments  map[string]*models.Investment
	transactions []*models.Transaction
}

func (s *memInvestmentStore) GetInvestment(_ context.Context, id string) (*models.Investment, error) {
	inv, ok := s.investments[id]
	if !ok {
		return nil, fmt.Errorf("investment not found: %s", id)
	}
	return inv, nil
}

func (s *memInvestmentStore) SaveInvestment(_ context.Context, inv *models.Investment) error {
	s.investments[inv.ID] = inv
	return nil
}

func (s *memInvestmentStore) ListActive(_ context.Context, userID string) ([]*models.Investment, error) {
	var out []*models.Investment
	for _, inv := range s.investments {
		if inv.UserID == userID && inv.Status == models.InvestmentStatusActive {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (s *memInvestmentStore) ListAll(_ context.Context, userID string) ([]*models.Investment, error) {
	var out []*models.Investment
	for _, inv := range s.investments {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (s *memInvestmentStore) SaveTransaction(_ context.Context, tx *models.Transaction) error {
	s.transactions = append(s.transactions, tx)
	return nil
}

func (s *memInvestmentStore) ListTransactions(_ context.Context, userID string, limit int) ([]*models.Transaction, error) {
	var out []*models.Transaction
	for i := len(s.transactions) - 1; i >= 0; i-- {
		if s.transactions[i].UserID != userID {
			continue
		}
		out = append(out, s.transactions[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

type memAuditStore struct {
	entries   []*models.AuditLogEntry
	appendErr error
}

func (s *memAuditStore) Append(_ context.Context, entry *models.AuditLogEntry) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memAuditStore) List(_ context.Context, opts interfaces.AuditListOptions) ([]*models.AuditLogEntry, int, error) {
	var out []*models.AuditLogEntry
	for _, e := range s.entries {
		if opts.UserID != "" && e.UserID != opts.UserID {
			continue
		}
		if opts.Endpoint != "" && !strings.HasPrefix(e.Endpoint, opts.Endpoint) {
			continue
		}
		if opts.StatusCode != 0 && e.StatusCode != opts.StatusCode {
			continue
		}
		out = append(out, e)
	}
	return out, len(out), nil
}

type memStorage struct {
	users       *memUserStore
	products    *memProductStore
	investments *memInvestmentStore
	audits      *memAuditStore
}

func newMemStorage() *memStorage {
	return &memStorage{
		users:       &memUserStore{users: map[string]*models.User{}, profiles: map[string]*models.RiskProfile{}},
		products:    &memProductStore{products: map[string]*models.Product{}},
		investments: &memInvestmentStore{investments: map[string]*models.Investment{}},
		audits:      &memAuditStore{},
	}
}

func (m *memStorage) UserStore() interfaces.UserStore             { return m.users }
func (m *memStorage) ProductStore() interfaces.ProductStore       { return m.products }
func (m *memStorage) InvestmentStore() interfaces.InvestmentStore { return m.investments }
func (m *memStorage) AuditStore() interfaces.AuditStore           { return m.audits }
func (m *memStorage) Ping(context.Context) error                  { return nil }
func (m *memStorage) Close() error                                { return nil }

var _ interfaces.StorageManager = (*memStorage)(nil)

// cannedTextGen is a text client that always succeeds with fixed output.
type cannedTextGen struct {
	text    string
	prompts []string
}

func (c *cannedTextGen) GenerateText(_ context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	return c.text, nil
}
func (c *cannedTextGen) Ping(context.Context) error { return nil }
func (c *cannedTextGen) Close() error               { return nil }

// --- Test server ---

// newTestServer creates a server backed by in-memory storage and no
// generative client, so all AI paths take their deterministic fallbacks.
func newTestServer(t *testing.T) (*Server, *memStorage) {
	t.Helper()
	logger := common.NewSilentLogger()
	cfg := common.NewDefaultConfig()
	mem := newMemStorage()

	a := &app.App{
		Config:      cfg,
		Logger:      logger,
		Storage:     mem,
		Analysis:    analysis.NewService(mem, nil, logger),
		Advisor:     advisor.NewService(nil, logger),
		Products:    product.NewService(mem, nil, logger),
		Investments: investment.NewService(mem, logger),
		Audit:       audit.NewService(mem, logger),
		StartupTime: time.Now(),
	}
	return NewServer(a), mem
}

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal JSON: %v", err)
	}
	return bytes.NewBuffer(data)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

// seedUser saves a user directly and returns a bearer token for them.
func seedUser(t *testing.T, srv *Server, mem *memStorage, userID, email, role string) string {
	t.Helper()
	user := &models.User{
		UserID:    userID,
		Email:     email,
		Name:      "Test User",
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := mem.users.SaveUser(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	token, err := signJWT(user, &srv.app.Config.Auth)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

// doRequest runs a request through the full middleware stack.
func doRequest(srv *Server, method, path, token string, body *bytes.Buffer) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

// seedProduct saves an active product directly.
func seedProduct(t *testing.T, mem *memStorage, id, name string, minInvestment float64) *models.Product {
	t.Helper()
	p := &models.Product{
		ID:            id,
		Name:          name,
		ProductType:   models.ProductTypeFixedDeposit,
		RiskLevel:     models.RiskLow,
		AnnualYield:   7.5,
		TenureMonths:  12,
		MinInvestment: minInvestment,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	if err := mem.products.SaveProduct(context.Background(), p); err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return p
}
