// Package httpapi exposes the REST surface consumed by the client: email
// and password auth, the current-user endpoint, a per-user item CRUD and a
// demo OAuth entry point.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"itemvault/internal/common"
	"itemvault/internal/logging"
	"itemvault/internal/server/auth"
	"itemvault/internal/server/models"
	"itemvault/internal/server/storage"
)

// demoOAuthEmail identifies the account the stand-in OAuth provider signs
// everyone into.
const demoOAuthEmail = "demo.google@example.com"

type Handler struct {
	store     storage.Store
	log       logging.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewHandler(store storage.Store, log logging.Logger, jwtSecret []byte, tokenTTL time.Duration) *Handler {
	if log == nil {
		log = logging.Discard()
	}
	return &Handler{store: store, log: log, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type itemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// writeError emits the {"message": ...} body the client's error contract
// is built on.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.Error(ctx, "hashing password", "error", err)
		writeError(w, http.StatusInternalServerError, common.ErrInternal.Error())
		return
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	}
	if user.Name == "" {
		user.Name = req.Email
	}

	if err := h.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			writeError(w, http.StatusConflict, common.ErrEmailTaken.Error())
			return
		}
		h.log.Error(ctx, "creating user", "error", err)
		writeError(w, http.StatusInternalServerError, common.ErrInternal.Error())
		return
	}

	h.issueToken(w, r, user)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := h.store.UserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, common.ErrInvalidCredentials.Error())
			return
		}
		h.log.Error(ctx, "looking up user", "error", err)
		writeError(w, http.StatusInternalServerError, common.ErrInternal.Error())
		return
	}
	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, common.ErrInvalidCredentials.Error())
		return
	}

	h.issueToken(w, r, user)
}

// issueToken signs a bearer token for the user and writes the {token,user}
// auth payload.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request, user *models.User) {
	token, err := auth.GenerateToken(user.ID, h.jwtSecret, h.tokenTTL)
	if err != nil {
		h.log.Error(r.Context(), "signing token", "error", err)
		writeError(w, http.StatusInternalServerError, common.ErrInternal.Error())
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

func (h *Handler) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.store.UserByID(ctx, userIDFrom(ctx))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, common.ErrInvalidToken.Error())
			return
		}
		h.log.Error(ctx, "loading current user", "error", err)
		writeError(w, http.StatusInternalServerError, common.ErrInternal.Error())
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) handleListItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.store.ListItems(ctx, userIDFrom(ctx))
	if err != nil {
		h.log.Error(ctx, "listing items", "error", err)
		writeError(w, http.StatusInternalServerError, common.ErrInternal.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, common.ErrEmptyName.Error())
		return
	}

	item := &models.Item{
		ID:          uuid.NewString(),
		UserID:      userIDFrom(ctx),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.store.SaveItem(ctx, item); err != nil {
		h.log.Error(ctx, "saving item", "error", err)
		writeError(w, http.StatusInternalServerError, common.ErrInternal.Error())
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, common.ErrEmptyName.Error())
		return
	}

	item, err := h.store.GetItem(ctx, userIDFrom(ctx), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusNotFound, common.ErrNotFound.Error())
			return
		}
		h.log.Error(ctx, "loading item for update", "error", err)
		writeError(w, http.StatusInternalServerError, common.ErrInternal.Error())
		return
	}

	item.Name = req.Name
	item.Description = req.Description
	if err := h.store.SaveItem(ctx, item); err != nil {
		h.log.Error(ctx, "updating item", "error", err)
		writeError(w, http.StatusInternalServerError, common.ErrInternal.Error())
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	if err := h.store.DeleteItem(ctx, userIDFrom(ctx), id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusNotFound, common.ErrNotFound.Error())
			return
		}
		h.log.Error(ctx, "deleting item", "error", err)
		writeError(w, http.StatusInternalServerError, common.ErrInternal.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleOAuthLogin stands in for a real OAuth provider. It signs the caller
// into a shared demo account and redirects back to redirect_uri with the
// token in the query string, the same shape a production provider callback
// would use.
func (h *Handler) handleOAuthLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	redirectURI := r.URL.Query().Get("redirect_uri")
	if redirectURI == "" {
		writeError(w, http.StatusBadRequest, "redirect_uri is required")
		return
	}
	target, err := url.Parse(redirectURI)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid redirect_uri")
		return
	}

	user, err := h.store.UserByEmail(ctx, demoOAuthEmail)
	if errors.Is(err, common.ErrNotFound) {
		user = &models.User{
			ID:    uuid.NewString(),
			Email: demoOAuthEmail,
			Name:  "Demo Google User",
		}
		err = h.store.CreateUser(ctx, user)
	}
	if err != nil {
		h.log.Error(ctx, "resolving oauth user", "error", err)
		writeError(w, http.StatusInternalServerError, common.ErrInternal.Error())
		return
	}

	token, err := auth.GenerateToken(user.ID, h.jwtSecret, h.tokenTTL)
	if err != nil {
		h.log.Error(ctx, "signing oauth token", "error", err)
		writeError(w, http.StatusInternalServerError, common.ErrInternal.Error())
		return
	}

	q := target.Query()
	q.Set(common.TokenQueryParam, token)
	target.RawQuery = q.Encode()
	http.Redirect(w, r, target.String(), http.StatusFound)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
