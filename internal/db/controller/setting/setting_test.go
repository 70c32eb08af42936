package setting

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/adcu-admin/adcu-admin/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")
	require.NoError(t, db.AutoMigrate(&models.Setting{}), "failed to migrate test database")

	return db
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Setting{Name: "present", Value: []byte("v")}).Error)

	testCases := []struct {
		name          string
		db            *gorm.DB
		settingName   string
		expectedError error
		expectedValue []byte
	}{
		{name: "nil database", db: nil, settingName: "present", expectedError: ErrDBNil},
		{name: "empty name", db: db, settingName: "", expectedError: ErrSettingNameEmpty},
		{name: "missing", db: db, settingName: "absent", expectedError: ErrSettingNotFound},
		{name: "found", db: db, settingName: "present", expectedValue: []byte("v")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Get(tc.db, tc.settingName)
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, s)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedValue, s.Value)
		})
	}
}

func TestSet(t *testing.T) {
	db := setupTestDB(t)

	created, err := Set(db, "a", []byte("1"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	updated, err := Set(db, "a", []byte("2"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, []byte("2"), updated.Value)

	_, err = Set(db, "", []byte("x"))
	assert.ErrorIs(t, err, ErrSettingNameEmpty)

	_, err = Set(nil, "a", nil)
	assert.ErrorIs(t, err, ErrDBNil)

	var count int64
	require.NoError(t, db.Model(&models.Setting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetAll(t *testing.T) {
	db := setupTestDB(t)

	for _, name := range []string{"b", "a", "c"} {
		_, err := Set(db, name, []byte(name))
		require.NoError(t, err)
	}

	all, err := GetAll(db)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Name)
	assert.Equal(t, "c", all[2].Name)

	_, err = GetAll(nil)
	assert.ErrorIs(t, err, ErrDBNil)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	_, err := Set(db, "a", []byte("1"))
	require.NoError(t, err)

	require.NoError(t, Delete(db, "a"))
	assert.ErrorIs(t, Delete(db, "a"), ErrSettingNotFound)
	assert.ErrorIs(t, Delete(db, ""), ErrSettingNameEmpty)
	assert.ErrorIs(t, Delete(nil, "a"), ErrDBNil)
}

func TestJSON(t *testing.T) {
	db := setupTestDB(t)

	type payload struct {
		URL  string `json:"url"`
		Port int    `json:"port"`
	}

	require.NoError(t, SaveJSON(db, "p", payload{URL: "http://x", Port: 1}))

	var got payload
	require.NoError(t, LoadJSON(db, "p", &got))
	assert.Equal(t, payload{URL: "http://x", Port: 1}, got)

	assert.ErrorIs(t, LoadJSON(db, "missing", &got), ErrSettingNotFound)

	_, err := Set(db, "broken", []byte("{"))
	require.NoError(t, err)
	assert.Error(t, LoadJSON(db, "broken", &got))
}
