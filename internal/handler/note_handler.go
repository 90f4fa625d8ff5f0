package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"inotebook-server/internal/domain"
	"inotebook-server/internal/middleware"
	"inotebook-server/internal/service"
	"inotebook-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type NoteHandler struct {
	service  *service.NoteService
	validate *validator.Validate
}

func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *NoteHandler) FetchAll(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	notes, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.Printf("fetchallnotes failed: %v", err)
		response.InternalError(w)
		return
	}

	if notes == nil {
		notes = []*domain.Note{}
	}

	response.Success(w, notes)
}

func (h *NoteHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.ValidationError(w, err)
		return
	}

	userID := middleware.GetUserID(r)

	note, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		log.Printf("addnote failed: %v", err)
		response.InternalError(w)
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	var req domain.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	userID := middleware.GetUserID(r)

	note, err := h.service.Update(r.Context(), userID, noteID, &req)
	if err != nil {
		h.writeNoteError(w, "updatenote", err)
		return
	}

	response.Success(w, domain.UpdateNoteResponse{Note: note})
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r)

	note, err := h.service.Delete(r.Context(), userID, noteID)
	if err != nil {
		h.writeNoteError(w, "deletenote", err)
		return
	}

	response.Success(w, domain.DeleteNoteResponse{
		Success: "Note has been deleted",
		Note:    note,
	})
}

func (h *NoteHandler) writeNoteError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNoteNotFound):
		response.NotFound(w, "Not Found")
	case errors.Is(err, domain.ErrNotOwner):
		response.Unauthorized(w, "Not Allowed")
	default:
		log.Printf("%s failed: %v", op, err)
		response.InternalError(w)
	}
}
