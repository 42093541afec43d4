package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUserExists         = errors.New("user with this email or username already exists")
)

// hashCost is lowered by tests.
var hashCost = bcrypt.DefaultCost

// demoUser is present in every new directory.
var demoUser = struct {
	Username, Email, Password string
}{"vasupriya", "vasp@gmail.com", "pass@123"}

// User is the public identity of an account.
type User struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
}

type account struct {
	User         `yaml:",inline"`
	PasswordHash string `yaml:"password_hash"`
}

type directoryFile struct {
	Users []account `yaml:"users"`
}

// Directory is the local user list behind the mocked login.
type Directory struct {
	mu    sync.RWMutex
	path  string // empty keeps the directory in memory only
	users []account
}

// OpenDirectory loads the user list from path, seeding it with the demo
// user when the file does not exist yet.
func OpenDirectory(path string) (*Directory, error) {
	d := &Directory{path: path}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var file directoryFile
			if err := yaml.Unmarshal(data, &file); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
			d.users = file.Users
			return d, nil
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoUser.Password), hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	d.users = []account{{
		User:         User{Username: demoUser.Username, Email: demoUser.Email},
		PasswordHash: string(hash),
	}}

	if err := d.save(); err != nil {
		return nil, err
	}
	return d, nil
}

// Login returns the user whose email and password match.
func (d *Directory) Login(form LoginState) (User, error) {
	if err := form.Validate(); err != nil {
		return User{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, a := range d.users {
		if a.Email != strings.TrimSpace(form.Email) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(form.Password)) == nil {
			return a.User, nil
		}
	}
	return User{}, ErrInvalidCredentials
}

// Signup adds a new user. Passwords must match and neither the email nor
// the username may already be taken.
func (d *Directory) Signup(form SignupState) (User, error) {
	if err := form.Validate(); err != nil {
		return User{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if form.Password != form.ConfirmPassword {
		return User{}, ErrPasswordMismatch
	}

	user := User{Username: strings.TrimSpace(form.Username), Email: strings.TrimSpace(form.Email)}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, a := range d.users {
		if a.Email == user.Email || a.Username == user.Username {
			return User{}, ErrUserExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), hashCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	d.users = append(d.users, account{User: user, PasswordHash: string(hash)})

	if err := d.save(); err != nil {
		d.users = d.users[:len(d.users)-1]
		return User{}, err
	}
	return user, nil
}

// Users lists every known user.
func (d *Directory) Users() []User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]User, len(d.users))
	for i, a := range d.users {
		out[i] = a.User
	}
	return out
}

// save must be called with the lock held (or before d is shared).
func (d *Directory) save() error {
	if d.path == "" {
		return nil
	}
	data, err := yaml.Marshal(directoryFile{Users: d.users})
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	return writeFile(d.path, data)
}

// writeFile writes data through a temp file so a crash never leaves a torn file.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
