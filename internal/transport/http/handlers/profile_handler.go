package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/mvidal0/nexo/internal/service"
	"github.com/mvidal0/nexo/internal/transport/http/middleware"
	"github.com/mvidal0/nexo/pkg/validator"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())

	var input service.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateProfileUpdate(input.FirstName, input.LastName, input.Username); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	user, err := h.profileService.UpdateProfile(r.Context(), ident.Subject, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, service.ErrUsernameTaken):
			writeError(w, http.StatusConflict, "USERNAME_TAKEN", "Username is already taken")
		default:
			log.Printf("ERROR update profile: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

type customFieldInput struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

func (h *ProfileHandler) AddField(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())

	var input customFieldInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateCustomField(input.Title, input.Value); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	field, err := h.profileService.AddCustomField(r.Context(), ident.Subject, input.Title, input.Value)
	if err != nil {
		if errors.Is(err, service.ErrFieldLimit) {
			writeError(w, http.StatusBadRequest, "FIELD_LIMIT", "You can have at most 5 custom fields")
		} else {
			log.Printf("ERROR add custom field: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, field)
}

func (h *ProfileHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	fieldID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid field ID")
		return
	}

	var input customFieldInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateCustomField(input.Title, input.Value); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	field, err := h.profileService.UpdateCustomField(r.Context(), ident.Subject, fieldID, input.Title, input.Value)
	if err != nil {
		if errors.Is(err, service.ErrFieldNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Custom field not found")
		} else {
			log.Printf("ERROR update custom field: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, field)
}

func (h *ProfileHandler) DeleteField(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	fieldID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid field ID")
		return
	}

	deleted, err := h.profileService.DeleteCustomField(r.Context(), ident.Subject, fieldID)
	if err != nil {
		log.Printf("ERROR delete custom field: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

type badgeInput struct {
	Title string `json:"title"`
	Theme string `json:"theme"`
}

func (h *ProfileHandler) UpsertBadge(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())

	var input badgeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateBadge(input.Title, input.Theme); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	badge, err := h.profileService.UpsertBadge(r.Context(), ident.Subject, input.Title, input.Theme)
	if err != nil {
		log.Printf("ERROR upsert badge: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, badge)
}
