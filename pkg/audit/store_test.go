package audit

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStoreWithDB(db)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	event := ImageEvent{
		User:      "alice",
		ClientIP:  "10.0.0.1",
		Operation: OpDelete,
		ImageID:   7,
		Success:   true,
	}

	mock.ExpectExec(`INSERT INTO audit_messages`).
		WithArgs(
			FacilityLocal0,    // facility
			int(SeverityInfo), // severity
			at,                // timestamp
			"web01",           // hostname
			AppName,           // appname
			"42",              // procid
			"image",           // msgid
			sqlmock.AnyArg(),  // sdata (JSON)
			"alice deleted image 7",
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Save(event, at, "web01", 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreSaveNil(t *testing.T) {
	var store *Store
	assert.NoError(t, store.Save(AuthenticateEvent{}, time.Now(), "", 0))
}

func TestLoggerPersistsAndSurvivesStoreErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	logger := fixedLogger(&buf).WithStore(NewStoreWithDB(db))

	mock.ExpectExec(`INSERT INTO audit_messages`).
		WillReturnError(errors.New("connection reset"))

	logger.Log(AuthenticateEvent{Username: "mallory", AuthenticatorName: "authn", ErrorMessage: "invalid credentials"})

	assert.Contains(t, buf.String(), "mallory failed to authenticate")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"facility", "severity", "timestamp", "hostname", "appname", "procid", "msgid", "sdata", "message"}).
		AddRow(FacilityAuthPriv, int(SeverityInfo), at, "web01", AppName, "42", "authn", `{"auth@32473":{"user":"alice"}}`, "alice successfully authenticated")

	mock.ExpectQuery(`SELECT facility, severity, timestamp`).
		WithArgs(50).
		WillReturnRows(rows)

	messages, err := NewStoreWithDB(db).Recent(0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "authn", messages[0].Msgid)
	assert.Equal(t, at, messages[0].Timestamp)
	assert.Equal(t, map[string]any{"user": "alice"}, messages[0].Sdata[SDIDAuth])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewStoreDisabled(t *testing.T) {
	store, err := NewStore("")
	assert.NoError(t, err)
	assert.Nil(t, store)
}
