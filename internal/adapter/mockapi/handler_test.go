package mockapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "github.com/ItsmeMIGUEL/sample-crud-app/internal/domain/user"
)

func setupTestServer(t *testing.T) *httptest.Server {
	log := zaptest.NewLogger(t)
	store := NewStore(SeedUsers())
	router := SetupRouter(NewUserHandler(store, log), log)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func decodeUsers(t *testing.T, resp *http.Response) []domain.User {
	t.Helper()
	defer resp.Body.Close()
	var users []domain.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	return users
}

func TestListUsers(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Get(server.URL + "/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	users := decodeUsers(t, resp)
	require.Len(t, users, 3)
	assert.Equal(t, "Leanne Graham", users[0].Name)
}

func TestCreateUser_AssignsNextID(t *testing.T) {
	server := setupTestServer(t)

	body, _ := json.Marshal(domain.User{Name: "Bob", Username: "bob1", Email: "bob@x.com"})
	resp, err := http.Post(server.URL+"/users", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Equal(t, int64(4), created.ID)
	assert.Equal(t, "Bob", created.Name)

	resp, err = http.Get(server.URL + "/users")
	require.NoError(t, err)
	assert.Len(t, decodeUsers(t, resp), 4)
}

func TestUpdateUser(t *testing.T) {
	server := setupTestServer(t)

	body, _ := json.Marshal(domain.User{Name: "Robert", Username: "Antonette", Email: "Shanna@melissa.tv"})
	req, _ := http.NewRequest(http.MethodPut, server.URL+"/users/2", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated domain.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	resp.Body.Close()
	assert.Equal(t, int64(2), updated.ID)
	assert.Equal(t, "Robert", updated.Name)
}

func TestUpdateUser_MissingIDReturns404(t *testing.T) {
	server := setupTestServer(t)

	body, _ := json.Marshal(domain.User{Name: "Ghost"})
	req, _ := http.NewRequest(http.MethodPut, server.URL+"/users/99", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteUser(t *testing.T) {
	server := setupTestServer(t)

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/users/2", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(server.URL + "/users")
	require.NoError(t, err)
	users := decodeUsers(t, resp)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotEqual(t, int64(2), u.ID)
	}
}

func TestDeleteUser_MissingIDStillSucceeds(t *testing.T) {
	server := setupTestServer(t)

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/users/99", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInvalidIDReturns400(t *testing.T) {
	server := setupTestServer(t)

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/users/abc", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
