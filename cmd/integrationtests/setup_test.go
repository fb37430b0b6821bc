package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"auction-ledger/internal/catalog"
	"auction-ledger/internal/config"
	"auction-ledger/internal/directory"
	"auction-ledger/internal/ledger"
	model "auction-ledger/internal/models"
	"auction-ledger/internal/server"
	"auction-ledger/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testAdminToken = "integration-admin-token"

// SetupTestRouter wires the full stack over a temp data directory for
// integration testing. Datasets start empty and are created on first open.
func SetupTestRouter(t *testing.T) (*gin.Engine, *store.LotStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dataDir := t.TempDir()
	lockTimeout := 2 * time.Second

	lots, err := store.NewLotStore(dataDir, lockTimeout, time.UTC)
	require.NoError(t, err)
	bids, err := store.NewBidStore(dataDir, lockTimeout, time.UTC)
	require.NoError(t, err)
	employees, err := store.NewEmployeeStore(dataDir, lockTimeout)
	require.NoError(t, err)
	seedEmployees(t, dataDir)

	cfg := &config.Config{Port: "0", DataDir: dataDir, LockTimeout: lockTimeout, AdminToken: testAdminToken}
	router := server.SetupRouter(cfg, ledger.New(lots, bids), catalog.New(lots), directory.New(employees))
	return router, lots
}

// SetupTestRouterWithLots seeds the lot dataset before wiring the stack.
func SetupTestRouterWithLots(t *testing.T, seed ...model.Lot) (*gin.Engine, *store.LotStore) {
	t.Helper()
	router, lots := SetupTestRouter(t)

	existing, tok, err := lots.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, lots.Commit(tok, append(existing, seed...)))
	return router, lots
}

func seedEmployees(t *testing.T, dataDir string) {
	t.Helper()
	rows := "\xef\xbb\xbfid,employeeId,name,department,admin,pwd\r\n" +
		"1,emp1,Alice Chen,Procurement,0,\r\n" +
		"2,emp2,Bob Lin,Finance,1,\r\n"
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "employees.csv"), []byte(rows), 0o644))
}

// openLot returns a lot whose bidding window spans the current wall clock.
func openLot(id int64, name string, startPrice int64, endsIn time.Duration) model.Lot {
	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(endsIn)
	return model.Lot{
		ID:           id,
		Name:         name,
		StartPrice:   startPrice,
		CurrentPrice: startPrice,
		Status:       model.StatusOpen,
		StartTime:    &start,
		EndTime:      &end,
	}
}

// ExecuteRequest executes an HTTP request and returns the response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()
	return executeWithHeaders(t, router, method, url, body, nil)
}

// ExecuteAdminRequest is ExecuteRequestAndParse with the admin token attached.
func ExecuteAdminRequest(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()
	return executeWithHeaders(t, router, method, url, body, map[string]string{"X-Admin-Token": testAdminToken})
}

func executeWithHeaders(t *testing.T, router *gin.Engine, method, url string, body any, headers map[string]string) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := ExecuteRequest(t, router, method, url, reqBody, headers)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}
