package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jadralna-sola/sailing-school-web/internal/models"
	"github.com/jadralna-sola/sailing-school-web/internal/notifier"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var validate = validator.New()

type SignupHandler struct {
	db        *gorm.DB
	notifiers []notifier.Notifier
	log       zerolog.Logger
}

func NewSignupHandler(db *gorm.DB, log zerolog.Logger, notifiers ...notifier.Notifier) *SignupHandler {
	return &SignupHandler{db: db, notifiers: notifiers, log: log}
}

// signupForm carries only the required fields; the optional ones go straight
// into the record.
type signupForm struct {
	FullName     string `validate:"required"`
	Phone        string `validate:"required"`
	Email        string `validate:"required"`
	Participants int    `validate:"required,gte=1"`
}

// HandleSignup handles POST /signup. The body is a urlencoded form from the
// course pages. On success one Signup record is stored and a small HTML
// confirmation fragment is returned for the SPA to show.
func (h *SignupHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Manjkajo obvezna polja", http.StatusBadRequest)
		return
	}

	participants, _ := strconv.Atoi(strings.TrimSpace(r.PostFormValue("participants")))
	form := signupForm{
		FullName:     strings.TrimSpace(r.PostFormValue("fullName")),
		Phone:        strings.TrimSpace(r.PostFormValue("phone")),
		Email:        strings.TrimSpace(r.PostFormValue("email")),
		Participants: participants,
	}
	if err := validate.Struct(form); err != nil {
		http.Error(w, "Manjkajo obvezna polja", http.StatusBadRequest)
		return
	}

	signup := models.Signup{
		Course:       r.PostFormValue("course"),
		FullName:     form.FullName,
		Address:      r.PostFormValue("address"),
		PostalCode:   r.PostFormValue("postalCode"),
		City:         r.PostFormValue("city"),
		Phone:        form.Phone,
		Email:        form.Email,
		Participants: form.Participants,
		Notes:        r.PostFormValue("notes"),
	}

	if err := h.db.WithContext(r.Context()).Create(&signup).Error; err != nil {
		h.log.Error().Err(err).Msg("failed to store signup")
		http.Error(w, "Napaka pri shranjevanju", http.StatusInternalServerError)
		return
	}

	h.log.Info().Str("course", signup.Course).Str("email", signup.Email).
		Int("participants", signup.Participants).Msg("signup stored")

	// Notifications are best effort and never fail the signup.
	for _, n := range h.notifiers {
		if err := n.NotifySignup(r.Context(), signup); err != nil {
			h.log.Warn().Err(err).Msg("signup notification failed")
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<h1>Prijava uspešna</h1><a href="/">Nazaj</a>`)
}
