package integration

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"expenses/internal/handlers"
	"expenses/internal/logger"
	"expenses/internal/middleware"
	"expenses/internal/models"
	"expenses/internal/services"
	"expenses/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Account{},
		&models.Category{},
		&models.Payee{},
		&models.Project{},
		&models.Transaction{},
		&models.TransactionSplit{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	accountService := services.NewAccountService(db)
	categoryService := services.NewCategoryService(db)
	payeeService := services.NewPayeeService(db)
	projectService := services.NewProjectService(db)
	transactionService := services.NewTransactionService(db, accountService)
	restoreService := services.NewRestoreService(db, nil)

	// Handlers
	accountHandler := handlers.NewAccountHandler(accountService, transactionService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	payeeHandler := handlers.NewPayeeHandler(payeeService)
	projectHandler := handlers.NewProjectHandler(projectService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	restoreHandler := handlers.NewRestoreHandler(restoreService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	accounts := v1.Group("/accounts")
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:id", accountHandler.GetAccountByID)
	accounts.GET("/:id/transactions", accountHandler.GetAccountTransactions)

	transactions := v1.Group("/transactions")
	transactions.GET("/:id", transactionHandler.GetTransactionByID)

	categories := v1.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)

	v1.GET("/payees", payeeHandler.GetPayees)
	v1.GET("/projects", projectHandler.GetProjects)

	restore := v1.Group("/restore")
	restore.POST("/financisto", restoreHandler.StartFinancistoImport)
	restore.GET("/jobs/:id", restoreHandler.GetJob)
	v1.POST("/integrity/fix", restoreHandler.FixIntegrity)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}
