// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/concilia/backend/internal/application/usecase/company"
	"github.com/concilia/backend/internal/application/usecase/movement"
	"github.com/concilia/backend/internal/application/usecase/reconciliation"
	"github.com/concilia/backend/internal/infra/server/router"
	"github.com/concilia/backend/internal/integration/entrypoint/controller"
	"github.com/concilia/backend/internal/integration/entrypoint/middleware"
	"github.com/concilia/backend/internal/integration/persistence"
	"github.com/concilia/backend/internal/integration/persistence/cache"
	"github.com/concilia/backend/internal/integration/persistence/model"
	"github.com/concilia/backend/test/integration/mock"
)

// testContext holds the state of one scenario.
type testContext struct {
	uri        string
	headers    map[string]string
	client     *http.Client
	response   *response
	db         *mock.Db
	timeMock   *mock.Time
	serverPort int

	currentCompanyID  uuid.UUID
	companyIDs        map[string]uuid.UUID
	documentIDs       map[string]uuid.UUID
	lastMovementID    uuid.UUID
	lastDocumentID    uuid.UUID
	lastRunID         string
	movementIDsByDesc map[string]uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var testDB *mock.Db
var testClock *mock.Time
var testServerPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	if testClock == nil {
		testClock = mock.NewTime()
	}

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		timeMock:   testClock,
		serverPort: testServerPort,
		db: mock.NewDb("concilia", map[string]any{
			"companies":               &model.CompanyModel{},
			"fiscal_documents":        &model.FiscalDocumentModel{},
			"payment_complements":     &model.PaymentComplementModel{},
			"bank_movements":          &model.BankMovementModel{},
			"reconciliation_outcomes": &model.ReconciliationOutcomeModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)

	// Seeding steps
	ctx.Given(`^a company "([^"]*)" exists with tax id "([^"]*)"$`, test.aCompanyExistsWithTaxID)
	ctx.Given(`^an immediate invoice "([^"]*)" of "([^"]*)" issued on "([^"]*)" to "([^"]*)"$`, test.anImmediateInvoice)
	ctx.Given(`^a deferred invoice "([^"]*)" of "([^"]*)" issued on "([^"]*)" to "([^"]*)"$`, test.aDeferredInvoice)
	ctx.Given(`^a cancelled invoice "([^"]*)" of "([^"]*)" issued on "([^"]*)" to "([^"]*)"$`, test.aCancelledInvoice)
	ctx.Given(`^a payment complement of "([^"]*)" paid on "([^"]*)" for invoice "([^"]*)"$`, test.aPaymentComplementFor)
	ctx.Given(`^a bank deposit of "([^"]*)" on "([^"]*)" described as "([^"]*)"$`, test.aBankDeposit)
	ctx.Given(`^a bank charge of "([^"]*)" on "([^"]*)" described as "([^"]*)"$`, test.aBankCharge)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^the movement described as "([^"]*)" should have status "([^"]*)"$`, test.theMovementShouldHaveStatus)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.response = nil
	t.currentCompanyID = uuid.Nil
	t.companyIDs = make(map[string]uuid.UUID)
	t.documentIDs = make(map[string]uuid.UUID)
	t.movementIDsByDesc = make(map[string]uuid.UUID)
	t.lastMovementID = uuid.Nil
	t.lastDocumentID = uuid.Nil
	t.lastRunID = ""

	t.timeMock.Reset()

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	_ = mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			companyRepo := persistence.NewCompanyRepository(testDB.DbConn)
			movementRepo := persistence.NewMovementRepository(testDB.DbConn)
			documentRepo := persistence.NewDocumentRepository(testDB.DbConn)
			outcomeRepo := persistence.NewOutcomeRepository(testDB.DbConn)
			reportCache := cache.NewReportCache(mock.NewRedis())

			triggerRunUseCase := reconciliation.NewTriggerRunUseCase(
				companyRepo,
				movementRepo,
				documentRepo,
				outcomeRepo,
				reportCache,
				testClock,
				time.Hour,
			)
			getReportUseCase := reconciliation.NewGetReportUseCase(reportCache)
			getAmountGroupsUseCase := reconciliation.NewGetAmountGroupsUseCase(movementRepo, documentRepo)
			listMovementsUseCase := movement.NewListMovementsUseCase(movementRepo)
			listCompaniesUseCase := company.NewListCompaniesUseCase(companyRepo)

			healthController := controller.NewHealthController(
				func() bool {
					return testDB != nil && testDB.DbConn != nil
				},
				func() bool {
					return mock.NewRedis().Ping(context.Background()).Err() == nil
				},
			)
			reconciliationController := controller.NewReconciliationController(
				triggerRunUseCase,
				getReportUseCase,
				getAmountGroupsUseCase,
			)
			movementController := controller.NewMovementController(listMovementsUseCase)
			companyController := controller.NewCompanyController(listCompaniesUseCase)

			triggerRateLimiter := middleware.NewRateLimiterWithConfig(1000, time.Minute)

			r := router.NewRouter(
				healthController,
				companyController,
				movementController,
				reconciliationController,
				triggerRateLimiter,
			)
			engine := r.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}

			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) theCurrentTimeIs(value string) error {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	t.timeMock.SetCurrentTime(parsed.UTC())
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path = t.replacePlaceholders(path)
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{company_id}}", t.currentCompanyID.String())
	content = strings.ReplaceAll(content, "{{movement_id}}", t.lastMovementID.String())
	content = strings.ReplaceAll(content, "{{document_id}}", t.lastDocumentID.String())
	content = strings.ReplaceAll(content, "{{run_id}}", t.lastRunID)

	for name, id := range t.companyIDs {
		content = strings.ReplaceAll(content, "{{company_id:"+name+"}}", id.String())
	}
	for folio, id := range t.documentIDs {
		content = strings.ReplaceAll(content, "{{invoice_id:"+folio+"}}", id.String())
	}

	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	url := t.uri + path

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	// Capture the run identifier so later steps can reference it
	if runID, ok := responseBody["run_id"].(string); ok && runID != "" {
		t.lastRunID = runID
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	raw, err := json.Marshal(t.response.body)
	if err != nil {
		return err
	}
	if !strings.Contains(string(raw), expected) {
		return fmt.Errorf("response does not contain %q: %s", expected, string(raw))
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

		result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
		if result.Error != nil {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

		query := t.db.DbConn.Unscoped()
		for key, value := range criteria {
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		}

		result := query.Find(entitySlicePtr.Interface())
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theMovementShouldHaveStatus(description, status string) error {
	movementID, ok := t.movementIDsByDesc[description]
	if !ok {
		return fmt.Errorf("no seeded movement described as %q", description)
	}

	var movementModel model.BankMovementModel
	if err := t.db.DbConn.First(&movementModel, "id = ?", movementID).Error; err != nil {
		return err
	}
	if movementModel.Status != status {
		return fmt.Errorf("movement %q expected status %q, got %q", description, status, movementModel.Status)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
