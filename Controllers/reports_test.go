package Controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"Vigil/Cache"
	"Vigil/Models"
	"Vigil/middleware"
)

type orgEnv struct {
	app        *fiber.App
	owner      Models.User
	branch     Models.User
	branchZone Models.Zone
}

func setupOrgEnv(t *testing.T) orgEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	// A pooled second connection would see a different in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&Models.User{}, &Models.StaffMember{}, &Models.Zone{},
		&Models.Task{}, &Models.Evidence{},
	))
	Models.DB = db

	owner := Models.User{Name: "HQ", Email: "hq@org.test", Permission: 4}
	require.NoError(t, db.Create(&owner).Error)
	branch := Models.User{Name: "Branch North", Email: "north@org.test", Permission: 3, ParentID: &owner.ID}
	require.NoError(t, db.Create(&branch).Error)

	allDays := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

	hqZone := Models.Zone{UserID: owner.ID, Name: "HQ Vault"}
	require.NoError(t, db.Create(&hqZone).Error)
	hqTask := Models.Task{ZoneID: hqZone.ID, Title: "Audit vault"}
	hqTask.SetDays(allDays)
	require.NoError(t, db.Create(&hqTask).Error)

	manager := Models.StaffMember{UserID: branch.ID, Name: "Noa", IsActive: true}
	require.NoError(t, db.Create(&manager).Error)
	branchZone := Models.Zone{UserID: branch.ID, Name: "North Lobby", StaffID: &manager.ID}
	require.NoError(t, db.Create(&branchZone).Error)
	branchTask := Models.Task{ZoneID: branchZone.ID, Title: "Sweep lobby"}
	branchTask.SetDays(allDays)
	require.NoError(t, db.Create(&branchTask).Error)

	app := fiber.New()
	app.Get("/api/dashboard", middleware.Verify(3), GetDashboard)
	app.Put("/api/zones/:id", middleware.Verify(3), UpdateZone)

	// Account ids repeat across the per-test databases.
	Cache.Views.Invalidate(owner.ID)
	Cache.Views.Invalidate(branch.ID)

	return orgEnv{app: app, owner: owner, branch: branch, branchZone: branchZone}
}

func (e orgEnv) send(t *testing.T, userID uint, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	token, err := issueToken(userID, "")
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: token})

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e orgEnv) dashboard(t *testing.T, userID uint) string {
	t.Helper()

	resp := e.send(t, userID, "GET", "/api/dashboard", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestGetDashboardScopedToBranchAccount(t *testing.T) {
	env := setupOrgEnv(t)

	body := env.dashboard(t, env.branch.ID)
	assert.Contains(t, body, "North Lobby")
	assert.NotContains(t, body, "HQ Vault")
	assert.NotContains(t, body, "Audit vault")
}

func TestGetDashboardOwnerSpansBranches(t *testing.T) {
	env := setupOrgEnv(t)

	body := env.dashboard(t, env.owner.ID)
	assert.Contains(t, body, "HQ Vault")
	assert.Contains(t, body, "North Lobby")
}

func TestGetDashboardCacheIsolation(t *testing.T) {
	env := setupOrgEnv(t)

	// Prime the owner's cached view first, then read as the branch.
	ownerBody := env.dashboard(t, env.owner.ID)
	assert.Contains(t, ownerBody, "HQ Vault")

	branchBody := env.dashboard(t, env.branch.ID)
	assert.NotContains(t, branchBody, "HQ Vault")
	assert.Contains(t, branchBody, "North Lobby")
}

func TestUpdateZoneValidatesBody(t *testing.T) {
	env := setupOrgEnv(t)

	path := fmt.Sprintf("/api/zones/%d", env.branchZone.ID)
	resp := env.send(t, env.branch.ID, "PUT", path, map[string]string{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var stored Models.Zone
	require.NoError(t, Models.DB.First(&stored, env.branchZone.ID).Error)
	assert.Equal(t, "North Lobby", stored.Name)
	require.NotNil(t, stored.StaffID)
	assert.Equal(t, *env.branchZone.StaffID, *stored.StaffID)
}

func TestUpdateZoneAppliesValidBody(t *testing.T) {
	env := setupOrgEnv(t)

	path := fmt.Sprintf("/api/zones/%d", env.branchZone.ID)
	resp := env.send(t, env.branch.ID, "PUT", path, ZoneRequest{
		Name:    "North Lobby Annex",
		StaffID: env.branchZone.StaffID,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored Models.Zone
	require.NoError(t, Models.DB.First(&stored, env.branchZone.ID).Error)
	assert.Equal(t, "North Lobby Annex", stored.Name)
	require.NotNil(t, stored.StaffID)
	assert.Equal(t, *env.branchZone.StaffID, *stored.StaffID)
}
