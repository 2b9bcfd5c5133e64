package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"linkup/backend/internal/database"
	"linkup/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// setupHandlerTest wires the package-level services against a fresh
// in-memory database and returns it for direct seeding.
func setupHandlerTest(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handlertest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	Setup(db, nil)
	return db
}

func itoa(id uint) string {
	return fmt.Sprintf("%d", id)
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Profile: models.Profile{
			Email:        username + "@example.com",
			PasswordHash: "not-a-real-hash",
			Username:     username,
			FirstName:    username,
		},
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// newAuthedContext builds a test context carrying an authenticated user, the
// way AuthMiddleware would leave it.
func newAuthedContext(t *testing.T, userID uint, method, target string, body any) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("userID", userID)
	return w, c
}
