package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/karanvs/se-portal/internal/models"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

// Sentinel errors surfaced to handlers; each maps to a user-facing flash
// message there.
var (
	// ErrUserNotFound is returned by lookups when no row matches.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email address already exists")
	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so callers cannot tell which one occurred.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// NewUser carries the validated signup form fields into CreateUser.
type NewUser struct {
	FullName       string
	Username       string
	Email          string
	Password       string
	EducationLevel string
}

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(id int64) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	GetUserByUsername(username string) (models.User, error)
	CreateUser(input NewUser) (models.User, error)
	AuthenticateUser(email, password string) (models.User, error)
}

// UserService provides business logic for user accounts.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

const userColumns = "id, full_name, username, email, password_hash, education_level, phone, birthday, profile, usage_reminder, analytics, created_at"

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	var phone, birthday, profile, reminder sql.NullString
	err := row.Scan(&user.ID, &user.FullName, &user.Username, &user.Email, &user.PasswordHash,
		&user.EducationLevel, &phone, &birthday, &profile, &reminder, &user.Analytics, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	user.Phone = phone.String
	user.Birthday = birthday.String
	user.Profile = profile.String
	user.UsageReminder = reminder.String
	return user, nil
}

// GetUserByID retrieves a single user by their primary key.
func (s *UserService) GetUserByID(id int64) (models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

// GetUserByEmail retrieves a single user by their email, including the password hash.
func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", email)
	return scanUser(row)
}

// GetUserByUsername retrieves a single user by their username.
func (s *UserService) GetUserByUsername(username string) (models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE username = ?", username)
	return scanUser(row)
}

// CreateUser registers a new account, hashing the password before it is
// stored. The email is checked before the username so duplicate-email wins
// when both are taken.
//
// The pre-checks exist purely for friendly error messages; two concurrent
// signups can both pass them, in which case the UNIQUE constraints reject
// the second insert and the violation is mapped back to the same sentinels.
func (s *UserService) CreateUser(input NewUser) (models.User, error) {
	if _, err := s.GetUserByEmail(input.Email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return models.User{}, err
	}

	if _, err := s.GetUserByUsername(input.Username); err == nil {
		return models.User{}, ErrUsernameTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return models.User{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	stmt, err := s.db.Prepare("INSERT INTO users(full_name, username, email, password_hash, education_level, analytics) VALUES(?, ?, ?, ?, ?, '{}')")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(input.FullName, input.Username, input.Email, string(hashedPassword), input.EducationLevel)
	if err != nil {
		return models.User{}, mapUniqueViolation(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}

	return s.GetUserByID(id)
}

// AuthenticateUser verifies a user's credentials.
//
// An unknown email and a mismatched password both return
// ErrInvalidCredentials to prevent account enumeration.
func (s *UserService) AuthenticateUser(email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// mapUniqueViolation converts a sqlite unique-constraint failure on the
// users table into the matching sentinel. Anything else passes through.
func mapUniqueViolation(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		msg := sqliteErr.Error()
		switch {
		case strings.Contains(msg, "users.email"):
			return ErrEmailTaken
		case strings.Contains(msg, "users.username"):
			return ErrUsernameTaken
		}
	}
	return err
}
