package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/karanvs/se-portal/internal/auth"
	"github.com/karanvs/se-portal/internal/models"
	"github.com/karanvs/se-portal/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles signup, login, logout and the session-gated pages.
type AuthHandler struct {
	users    services.UserServiceProvider
	sessions *auth.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, sessions *auth.Manager) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

// LoginForm handles GET /login. The homepage renders the login form, so this
// always redirects there, authenticated or not.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}

// Login handles POST /login: authenticates the submitted credentials and
// establishes a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	remember := r.PostFormValue("remember") != ""

	user, err := h.users.AuthenticateUser(email, password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			log.Error().Err(err).Msg("Login lookup failed")
		} else {
			log.Warn().Str("email", email).Msg("Failed authentication attempt")
		}
		// Same message whether the email is unknown or the password is wrong
		SetFlash(w, msgBadCredentials)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if err := h.sessions.Issue(w, user, remember); err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to issue session")
		SetFlash(w, msgInternal)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// SignupForm handles GET /signup.
func (h *AuthHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "signup", map[string]any{
		"EducationLevels": models.SignupEducationLevels,
	})
}

// Signup handles POST /signup: validates the form and creates the account.
// A new user is not logged in automatically; they land back on the homepage
// login form.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	input := services.NewUser{
		FullName:       strings.TrimSpace(r.PostFormValue("full_name")),
		Username:       strings.TrimSpace(r.PostFormValue("username")),
		Email:          strings.TrimSpace(r.PostFormValue("email")),
		Password:       strings.TrimSpace(r.PostFormValue("password")),
		EducationLevel: strings.TrimSpace(r.PostFormValue("education_level")),
	}
	cPassword := strings.TrimSpace(r.PostFormValue("c_password"))

	if input.FullName == "" || input.Username == "" || input.Email == "" ||
		input.Password == "" || cPassword == "" || input.EducationLevel == "" {
		SetFlash(w, msgEmptyFields)
		http.Redirect(w, r, "/signup", http.StatusFound)
		return
	}

	if input.Password != cPassword {
		SetFlash(w, msgPasswordMismatch)
		http.Redirect(w, r, "/signup", http.StatusFound)
		return
	}

	if _, err := h.users.CreateUser(input); err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			SetFlash(w, msgEmailTaken)
		case errors.Is(err, services.ErrUsernameTaken):
			SetFlash(w, msgUsernameTaken)
		default:
			log.Error().Err(err).Str("email", input.Email).Msg("Failed to create user")
			SetFlash(w, msgInternal)
		}
		http.Redirect(w, r, "/signup", http.StatusFound)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout handles GET /logout. The route is session-guarded, so there is
// always a session to clear.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Dashboard handles GET /dashboard and renders the current user's profile.
func (h *AuthHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r.Context())
	renderPage(w, r, "dashboard", map[string]any{
		"EducationLabel": models.LabelFor(models.SignupEducationLevels, user.EducationLevel),
	})
}

// Game handles GET /game. It only displays the fixed option sets; starting
// an actual game session is not implemented.
func (h *AuthHandler) Game(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "game", map[string]any{
		"EducationLevels": models.SignupEducationLevels,
		"GameExperiences": models.GameExperiences,
		"GameModes":       models.GameModes,
	})
}

// Analytics handles GET /analytics and renders the current user's analytics
// document with the five-tier education scale.
func (h *AuthHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r.Context())

	// A missing or malformed blob renders as an empty report rather than
	// failing the request.
	report := map[string]any{}
	if user.Analytics != "" {
		if err := json.Unmarshal([]byte(user.Analytics), &report); err != nil {
			log.Warn().Err(err).Int64("user_id", user.ID).Msg("Malformed analytics document")
			report = map[string]any{}
		}
	}

	renderPage(w, r, "analytics", map[string]any{
		"Report":         report,
		"EducationLabel": models.LabelFor(models.AnalyticsEducationLevels, user.EducationLevel),
	})
}
