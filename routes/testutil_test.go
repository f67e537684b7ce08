package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tourlink-server/config"
	"tourlink-server/database"
	"tourlink-server/models"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.Load()
	os.Exit(m.Run())
}

// setupTestDB points the global connection at a fresh in-memory database.
// TranslateError matches production so duplicate-key handling is testable.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A pooled connection to :memory: would open a second, empty database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))
	database.DB = db
}

// testContext builds a gin context carrying an optional JSON body
func testContext(t *testing.T, method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

// asUser attaches the identity the auth middleware would have set
func asUser(c *gin.Context, user models.User) {
	c.Set("user_id", user.ID)
	c.Set("role", string(user.Role))
}

func intPtr(v int) *int {
	return &v
}

func setParam(c *gin.Context, key string, value interface{}) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: fmt.Sprintf("%v", value)})
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func createTestUser(t *testing.T, email string, role models.UserRole) models.User {
	t.Helper()
	user := models.User{
		FullName:     "Test " + string(role),
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func createTestGuide(t *testing.T, email string) (models.User, models.GuideProfile) {
	t.Helper()
	user := createTestUser(t, email, models.RoleGuide)
	guide := models.GuideProfile{
		UserID: user.ID,
		School: "Istanbul Tourism Academy",
	}
	require.NoError(t, database.DB.Create(&guide).Error)
	return user, guide
}

func createTestOrganization(t *testing.T, email string) (models.User, models.Organization) {
	t.Helper()
	user := createTestUser(t, email, models.RoleOrganization)
	org := models.Organization{
		UserID: user.ID,
		TaxID:  123456789,
	}
	require.NoError(t, database.DB.Create(&org).Error)
	return user, org
}

func createTestTour(t *testing.T, orgID uint, guideID *uint) models.Tour {
	t.Helper()
	tour := models.Tour{
		Name:           "Old Town Walking Tour",
		Price:          45,
		Location:       "Istanbul",
		Date:           time.Now().AddDate(0, 1, 0),
		Status:         models.TourStatusCurrent,
		OrganizationID: orgID,
		GuideID:        guideID,
	}
	require.NoError(t, database.DB.Create(&tour).Error)
	return tour
}

func createTestPreviousTour(t *testing.T, tour models.Tour, orgID, guideID uint) models.PreviousTour {
	t.Helper()
	previousTour := models.PreviousTour{
		TourID:         tour.ID,
		OrganizationID: orgID,
		GuideID:        guideID,
		TourName:       tour.Name,
		Location:       tour.Location,
		Date:           tour.Date,
		CompletedAt:    time.Now(),
		TotalTravelers: 12,
	}
	require.NoError(t, database.DB.Create(&previousTour).Error)
	return previousTour
}
