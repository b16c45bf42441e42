package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/scopetrack/scopetrack-go/src/cache"
	"github.com/scopetrack/scopetrack-go/src/db"
	"github.com/scopetrack/scopetrack-go/src/events"
	"github.com/scopetrack/scopetrack-go/src/internal/testutils"
	"github.com/scopetrack/scopetrack-go/src/routes"
)

var router *gin.Engine

func TestMain(m *testing.M) {
	sqlDB, cleanup, err := testutils.SetupPostgresForIntegration()
	if err != nil {
		fmt.Println("skipping integration tests, no database available:", err)
		os.Exit(0)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		cleanup()
		fmt.Println("failed to wrap test database:", err)
		os.Exit(1)
	}
	db.InitWithGormDB(gormDB)

	store, err := cache.Open("", nil)
	if err != nil {
		cleanup()
		fmt.Println("failed to open cache:", err)
		os.Exit(1)
	}

	gin.SetMode(gin.TestMode)
	router = gin.New()
	routes.RegisterRoutes(router, store, events.NewHub())

	code := m.Run()

	store.Close()
	cleanup()
	os.Exit(code)
}

func doRequest(t *testing.T, method, path string, body interface{}, expectStatus int) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != expectStatus {
		t.Fatalf("%s %s: expected status %d, got %d (body: %s)", method, path, expectStatus, w.Code, w.Body.String())
	}
	return w
}

// decodeData unmarshals the "data" envelope of a success response into out.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode envelope: %v (body: %s)", err, w.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("failed to decode data: %v (body: %s)", err, w.Body.String())
	}
}
