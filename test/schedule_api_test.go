package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/pharos-media/pharos/internal/http/api"
	adminEndpoints "github.com/pharos-media/pharos/internal/http/api/admin/endpoints"
	"github.com/pharos-media/pharos/internal/model"
)

var (
	router *gin.Engine
	store  *fakeStore
)

// TestMain runs once for the whole package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	store = newFakeStore()

	router = gin.New()
	api.MountGroup(router, api.GroupConfig{
		Prefix: "/api/admin",
		Middleware: []gin.HandlerFunc{func(c *gin.Context) {
			c.Set("currentUser", &model.User{ID: 1, TenantID: 1, Email: "admin@example.com"})
		}},
	},
		adminEndpoints.ScheduleModule(store),
	)

	os.Exit(m.Run())
}

func resetStore() {
	store.schedules = nil
	store.nextID = 1
	store.playlists = map[int]model.Playlist{
		4: {ID: 4, TenantID: 1, Name: "lobby"},
		9: {ID: 9, TenantID: 2, Name: "other tenant"},
	}
}

func postSchedule(t *testing.T, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshaling payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/admin/schedules", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func schedulePayload(name string) map[string]any {
	return map[string]any{
		"name":        name,
		"playlist_id": 4,
		"start_time":  "09:00",
		"end_time":    "17:00",
		"priority":    5,
	}
}

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return body
}

func TestCreateSchedule_Success(t *testing.T) {
	resetStore()

	w := postSchedule(t, schedulePayload("lobby loop"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var created model.Schedule
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if created.ID == 0 || created.TenantID != 1 || created.Name != "lobby loop" {
		t.Errorf("unexpected created schedule: %+v", created)
	}
}

func TestCreateSchedule_ConflictReturns409(t *testing.T) {
	resetStore()

	if w := postSchedule(t, schedulePayload("first")); w.Code != http.StatusOK {
		t.Fatalf("seeding first schedule: %d %s", w.Code, w.Body.String())
	}

	overlap := schedulePayload("second")
	overlap["start_time"] = "16:00"
	overlap["end_time"] = "18:00"
	w := postSchedule(t, overlap)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body = %s", w.Code, w.Body.String())
	}

	body := decodeErrorBody(t, w)
	details, ok := body["details"].(map[string]any)
	if !ok {
		t.Fatalf("details missing from %v", body)
	}
	ids, ok := details["conflict_ids"].([]any)
	if !ok || len(ids) != 1 {
		t.Fatalf("conflict_ids missing from %v", details)
	}
}

func TestCreateSchedule_TouchingIsAllowed(t *testing.T) {
	resetStore()

	if w := postSchedule(t, schedulePayload("first")); w.Code != http.StatusOK {
		t.Fatalf("seeding first schedule: %d", w.Code)
	}

	touching := schedulePayload("evening")
	touching["start_time"] = "17:00"
	touching["end_time"] = "18:00"
	if w := postSchedule(t, touching); w.Code != http.StatusOK {
		t.Fatalf("back-to-back schedule rejected: %d %s", w.Code, w.Body.String())
	}
}

func TestCreateSchedule_StructuralFailureReturns422(t *testing.T) {
	resetStore()

	w := postSchedule(t, map[string]any{
		"start_time": "08:00",
		"end_time":   "08:04",
		"priority":   "abc",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body = %s", w.Code, w.Body.String())
	}

	body := decodeErrorBody(t, w)
	details, ok := body["details"].(map[string]any)
	if !ok {
		t.Fatalf("details missing from %v", body)
	}
	errs, ok := details["errors"].([]any)
	if !ok || len(errs) < 3 {
		t.Fatalf("expected aggregated field errors, got %v", details)
	}
	fields := map[string]bool{}
	for _, e := range errs {
		fe := e.(map[string]any)
		fields[fe["field"].(string)] = true
	}
	for _, want := range []string{"name", "playlist_id", "end_time", "priority"} {
		if !fields[want] {
			t.Errorf("missing field error for %s in %v", want, errs)
		}
	}
}

func TestCreateSchedule_ForeignPlaylistForbidden(t *testing.T) {
	resetStore()

	payload := schedulePayload("sneaky")
	payload["playlist_id"] = 9
	w := postSchedule(t, payload)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403; body = %s", w.Code, w.Body.String())
	}
}

func TestUpdateSchedule_SelfOverlapAllowed(t *testing.T) {
	resetStore()

	w := postSchedule(t, schedulePayload("editable"))
	if w.Code != http.StatusOK {
		t.Fatalf("seeding schedule: %d", w.Code)
	}
	var created model.Schedule
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	update := schedulePayload("editable")
	update["priority"] = 7
	body, _ := json.Marshal(update)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/admin/schedules/%d", created.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("updating over the same window must not self-conflict: %d %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteSchedule_DeactivatesAndFreesWindow(t *testing.T) {
	resetStore()

	w := postSchedule(t, schedulePayload("short lived"))
	if w.Code != http.StatusOK {
		t.Fatalf("seeding schedule: %d", w.Code)
	}
	var created model.Schedule
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/admin/schedules/%d", created.ID), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}

	// the window is free again
	if w := postSchedule(t, schedulePayload("replacement")); w.Code != http.StatusOK {
		t.Fatalf("deactivated schedule still blocks the window: %d %s", w.Code, w.Body.String())
	}
}

func TestSchedules_RequireAuthentication(t *testing.T) {
	bare := gin.New()
	api.MountGroup(bare, api.GroupConfig{Prefix: "/api/admin"},
		adminEndpoints.ScheduleModule(newFakeStore()),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/schedules", nil)
	rec := httptest.NewRecorder()
	bare.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
