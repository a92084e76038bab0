package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"voting-service/internal/config"
	"voting-service/internal/database"
	"voting-service/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SetupTestDB opens a fresh sqlite database in a temporary directory with the
// full schema migrated.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "votes.db"),
	})
	require.NoError(t, err, "open test database")
	require.NoError(t, database.Migrate(db), "migrate test database")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// SetupTestRedis starts an in-process redis server for the test.
func SetupTestRedis(t *testing.T) (*database.RedisClient, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return database.NewRedisClientFrom(client), mr
}

// CreateTestUser inserts a user with the password "password".
func CreateTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Email: email, Password: string(hash), Role: role}
	require.NoError(t, db.Create(user).Error, "create test user")
	return user
}

func CreateTestCandidate(t *testing.T, db *gorm.DB, name string) *models.Candidate {
	t.Helper()

	candidate := &models.Candidate{Name: name, Description: name + " description"}
	require.NoError(t, db.Create(candidate).Error, "create test candidate")
	return candidate
}

// InsertVotes writes n raw vote rows, bypassing the ledger.
func InsertVotes(t *testing.T, db *gorm.DB, userID, candidateID uint, voteType string, n int, at time.Time) {
	t.Helper()

	for i := 0; i < n; i++ {
		vote := models.Vote{UserID: userID, CandidateID: candidateID, Type: voteType, CreatedAt: at.UTC()}
		require.NoError(t, db.Create(&vote).Error, "insert vote")
	}
}

func CountVotes(t *testing.T, db *gorm.DB, query string, args ...interface{}) int64 {
	t.Helper()

	var n int64
	q := db.Model(&models.Vote{})
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

// MakeRequest creates an HTTP test request with an optional JSON body
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// DecodeJSON decodes the response body into v
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v), "decode response: %s", w.Body.String())
}

// FixedClock returns a clock function that always reports at.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func MustParse(t *testing.T, value string) time.Time {
	t.Helper()
	at, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return at
}
