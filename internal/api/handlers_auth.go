package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gadgetd/internal/auth"
	"gadgetd/internal/models"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		respondError(w, http.StatusBadRequest, errors.New("all fields are required"))
		return
	}

	role := models.Role(req.Role)
	if !role.Valid() {
		respondError(w, http.StatusBadRequest, errors.New("invalid role"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	orm := a.db.WithContext(ctx)

	var existing models.User
	err := orm.Where("email = ?", req.Email).First(&existing).Error
	switch {
	case err == nil:
		respondError(w, http.StatusBadRequest, errors.New("user already exists"))
		return
	case !errors.Is(err, gorm.ErrRecordNotFound):
		respondServerError(w, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondServerError(w, err)
		return
	}

	user := models.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := orm.Create(&user).Error; err != nil {
		respondServerError(w, err)
		return
	}

	// The created record is deliberately not echoed back.
	respondJSON(w, http.StatusCreated, map[string]any{"message": "user registered successfully"})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	// Unknown email and wrong password must be indistinguishable to the
	// caller to avoid account enumeration.
	var user models.User
	err := a.db.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	case err != nil:
		respondServerError(w, err)
		return
	}

	if err := auth.ComparePasswordAndHash(req.Password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrMismatchedHashAndPassword) {
			respondError(w, http.StatusUnauthorized, errors.New("invalid credentials"))
			return
		}
		respondServerError(w, err)
		return
	}

	token, err := a.tokens.Issue(user.ID, user.Role)
	if err != nil {
		respondServerError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"token": token})
}
