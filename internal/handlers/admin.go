package handlers

import (
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/jadralna-sola/sailing-school-web/internal/catalog"
	"github.com/jadralna-sola/sailing-school-web/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const dashboardPath = "/admin/dashboard"

type AdminHandler struct {
	db      *gorm.DB
	catalog *catalog.Store
	webDir  string
	log     zerolog.Logger
}

func NewAdminHandler(db *gorm.DB, catalogStore *catalog.Store, webDir string, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{db: db, catalog: catalogStore, webDir: webDir, log: log}
}

var signupListTmpl = template.Must(template.New("signups").Funcs(template.FuncMap{
	"percent": catalog.OccupancyPercent,
}).Parse(`<!DOCTYPE html>
<html lang="sl">
<head><meta charset="utf-8"><title>Prijave</title></head>
<body>
<h1>Vse prijave</h1>
<ul>
{{range .Signups}}  <li>{{.FullName}} – {{.Email}} – {{.Phone}} – {{.Course}} – {{.Participants}} oseb – {{.CreatedAt.Format "2.1.2006 15:04"}}</li>
{{else}}  <li>Ni prijav.</li>
{{end}}</ul>
<h2>Zasedenost tečajev</h2>
{{range .Courses}}<h3>{{.Name}}</h3>
<ul>
{{range .Dates}}  <li>{{.Label}}: {{percent .Capacity .Spots}} % ({{.Spots}} prostih od {{.Capacity}})</li>
{{end}}</ul>
{{else}}<p>Trenutno ni razpisanih tečajev.</p>
{{end}}<p><a href="/admin/dashboard">Urejanje tečajev</a> · <a href="/">Nazaj na stran</a></p>
</body>
</html>
`))

// HandleSignupList renders GET /admin: every signup, newest first, plus an
// occupancy overview of the current catalog.
func (h *AdminHandler) HandleSignupList(w http.ResponseWriter, r *http.Request) {
	var signups []models.Signup
	if err := h.db.WithContext(r.Context()).Order("created_at DESC").Find(&signups).Error; err != nil {
		h.log.Error().Err(err).Msg("failed to list signups")
		http.Error(w, "Napaka pri branju prijav", http.StatusInternalServerError)
		return
	}

	courses, _, err := h.catalog.Load(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to load catalog for admin listing")
		http.Error(w, "Napaka pri branju tečajev", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Signups []models.Signup
		Courses []catalog.Course
	}{signups, courses}
	if err := signupListTmpl.Execute(w, data); err != nil {
		h.log.Error().Err(err).Msg("failed to render signup listing")
	}
}

// HandleDashboard serves the static admin UI.
func (h *AdminHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.webDir, "admin", "dashboard.html"))
}

// HandleSaveCourses handles POST /admin/save-courses. The body carries the
// bulk editor's parallel arrays (id, date, spots); the stored catalog is
// replaced wholesale with whatever they describe.
func (h *AdminHandler) HandleSaveCourses(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Neveljaven obrazec", http.StatusBadRequest)
		return
	}

	courses := catalog.BuildFromRows(r.Form["id"], r.Form["date"], r.Form["spots"])
	if err := h.catalog.Replace(r.Context(), courses); err != nil {
		h.storageError(w, err)
		return
	}

	http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
}

// HandleAddDate handles POST /admin/add-course-date.
func (h *AdminHandler) HandleAddDate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Neveljaven obrazec", http.StatusBadRequest)
		return
	}

	courseID := r.PostFormValue("courseId")
	if courseID == "" {
		http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
		return
	}

	spots, _ := strconv.Atoi(r.PostFormValue("spots"))
	if err := h.catalog.AddDate(r.Context(), courseID, r.PostFormValue("label"), spots); err != nil {
		h.storageError(w, err)
		return
	}

	http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
}

// HandleUpdateDate handles POST /admin/update-course-date. A course or date
// that no longer exists is a silent no-op; the admin still lands back on
// the dashboard.
func (h *AdminHandler) HandleUpdateDate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Neveljaven obrazec", http.StatusBadRequest)
		return
	}

	capacity, _ := strconv.Atoi(r.PostFormValue("capacity"))
	spots, _ := strconv.Atoi(r.PostFormValue("spots"))
	err := h.catalog.UpdateDate(r.Context(),
		r.PostFormValue("courseId"), r.PostFormValue("dateId"),
		r.PostFormValue("label"), capacity, spots)
	if err != nil {
		h.storageError(w, err)
		return
	}

	http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
}

// HandleDeleteDate handles POST /admin/delete-course-date.
func (h *AdminHandler) HandleDeleteDate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Neveljaven obrazec", http.StatusBadRequest)
		return
	}

	err := h.catalog.DeleteDate(r.Context(), r.PostFormValue("courseId"), r.PostFormValue("dateId"))
	if err != nil {
		h.storageError(w, err)
		return
	}

	http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
}

func (h *AdminHandler) storageError(w http.ResponseWriter, err error) {
	h.log.Error().Err(err).Msg("catalog mutation failed")
	http.Error(w, "Napaka pri shranjevanju", http.StatusInternalServerError)
}
