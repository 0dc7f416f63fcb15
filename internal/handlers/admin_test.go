package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/jadralna-sola/sailing-school-web/internal/catalog"
	"github.com/jadralna-sola/sailing-school-web/internal/content"
	"github.com/jadralna-sola/sailing-school-web/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAdmin(t *testing.T) (*AdminHandler, *catalog.Store, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Signup{}, &content.Document{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	catalogStore := catalog.NewStore(content.NewStore(db, zerolog.Nop()))
	handler := NewAdminHandler(db, catalogStore, t.TempDir(), zerolog.Nop())
	return handler, catalogStore, db
}

func postAdminForm(t *testing.T, handle http.HandlerFunc, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handle(rr, req)
	return rr
}

func assertDashboardRedirect(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d: %s", rr.Code, rr.Body.String())
	}
	if loc := rr.Header().Get("Location"); loc != "/admin/dashboard" {
		t.Errorf("expected redirect to /admin/dashboard, got %q", loc)
	}
}

func TestHandleAddDate(t *testing.T) {
	handler, store, _ := setupAdmin(t)

	rr := postAdminForm(t, handler.HandleAddDate, "/admin/add-course-date", url.Values{
		"courseId": {"osnovni-tecaj"},
		"label":    {"6.–10. julij"},
		"spots":    {"8"},
	})
	assertDashboardRedirect(t, rr)

	courses, _, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(courses) != 1 || len(courses[0].Dates) != 1 {
		t.Fatalf("expected exactly one new date, got %+v", courses)
	}
	d := courses[0].Dates[0]
	if d.Label != "6.–10. julij" || d.Capacity != 8 || d.Spots != 8 {
		t.Errorf("unexpected date %+v", d)
	}
	if courses[0].Name != "Osnovni tečaj jadranja" {
		t.Errorf("expected dictionary name, got %q", courses[0].Name)
	}
}

func TestHandleUpdateDateClamp(t *testing.T) {
	handler, store, _ := setupAdmin(t)
	ctx := context.Background()

	if err := store.AddDate(ctx, "osnovni-tecaj", "julij", 8); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	courses, _, _ := store.Load(ctx)
	dateID := courses[0].Dates[0].ID

	rr := postAdminForm(t, handler.HandleUpdateDate, "/admin/update-course-date", url.Values{
		"courseId": {"osnovni-tecaj"},
		"dateId":   {dateID},
		"label":    {"julij, drugi termin"},
		"capacity": {"6"},
		"spots":    {"15"},
	})
	assertDashboardRedirect(t, rr)

	courses, _, _ = store.Load(ctx)
	d := courses[0].Dates[0]
	if d.Label != "julij, drugi termin" || d.Capacity != 6 {
		t.Errorf("label/capacity not applied: %+v", d)
	}
	if d.Spots != 6 {
		t.Errorf("spots must be clamped to capacity, got %d", d.Spots)
	}
}

func TestHandleUpdateDateMissingRedirects(t *testing.T) {
	handler, store, _ := setupAdmin(t)

	rr := postAdminForm(t, handler.HandleUpdateDate, "/admin/update-course-date", url.Values{
		"courseId": {"osnovni-tecaj"},
		"dateId":   {"no-such-date"},
		"label":    {"x"},
		"capacity": {"5"},
		"spots":    {"5"},
	})
	// Not-found is a soft failure: same redirect as success.
	assertDashboardRedirect(t, rr)

	courses, _, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(courses) != 0 {
		t.Errorf("no-op update must not create anything, got %+v", courses)
	}
}

func TestHandleDeleteDate(t *testing.T) {
	handler, store, _ := setupAdmin(t)
	ctx := context.Background()

	if err := store.AddDate(ctx, "osnovni-tecaj", "julij", 8); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := store.AddDate(ctx, "osnovni-tecaj", "avgust", 8); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	courses, _, _ := store.Load(ctx)
	target := courses[0].Dates[0].ID

	rr := postAdminForm(t, handler.HandleDeleteDate, "/admin/delete-course-date", url.Values{
		"courseId": {"osnovni-tecaj"},
		"dateId":   {target},
	})
	assertDashboardRedirect(t, rr)

	courses, _, _ = store.Load(ctx)
	if len(courses[0].Dates) != 1 {
		t.Fatalf("expected 1 remaining date, got %d", len(courses[0].Dates))
	}
	if courses[0].Dates[0].ID == target {
		t.Error("delete removed the wrong date")
	}

	// Deleting it again is a silent no-op.
	rr = postAdminForm(t, handler.HandleDeleteDate, "/admin/delete-course-date", url.Values{
		"courseId": {"osnovni-tecaj"},
		"dateId":   {target},
	})
	assertDashboardRedirect(t, rr)
}

func TestHandleSaveCoursesOverwrites(t *testing.T) {
	handler, store, _ := setupAdmin(t)
	ctx := context.Background()

	if err := store.AddDate(ctx, "izpit-za-voditelja", "september", 4); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	rr := postAdminForm(t, handler.HandleSaveCourses, "/admin/save-courses", url.Values{
		"id":    {"osnovni-tecaj", "osnovni-tecaj", "vikend-tecaj"},
		"date":  {"6.–10. julij", "20.–24. julij", "4.–5. oktober"},
		"spots": {"8", "10", "12"},
	})
	assertDashboardRedirect(t, rr)

	courses, _, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("bulk save must replace the catalog wholesale, got %+v", courses)
	}
	if courses[0].ID != "osnovni-tecaj" || len(courses[0].Dates) != 2 {
		t.Errorf("rows not grouped by course: %+v", courses[0])
	}
	if courses[1].ID != "vikend-tecaj" || len(courses[1].Dates) != 1 {
		t.Errorf("unexpected second course %+v", courses[1])
	}
}

func TestHandleSignupList(t *testing.T) {
	handler, store, db := setupAdmin(t)
	ctx := context.Background()

	db.Create(&models.Signup{Course: "osnovni-tecaj", FullName: "Ana Novak",
		Phone: "040 123 456", Email: "ana@example.com", Participants: 2})
	if err := store.AddDate(ctx, "osnovni-tecaj", "julij", 10); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	courses, _, _ := store.Load(ctx)
	if err := store.UpdateDate(ctx, "osnovni-tecaj", courses[0].Dates[0].ID, "julij", 10, 3); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/admin", nil)
	rr := httptest.NewRecorder()
	handler.HandleSignupList(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Ana Novak") {
		t.Error("listing must include the signup")
	}
	if !strings.Contains(body, "70 %") {
		t.Errorf("listing must show the occupancy percent, got:\n%s", body)
	}
}
