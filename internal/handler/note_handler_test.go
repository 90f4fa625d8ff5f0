package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"inotebook-server/internal/domain"

	"github.com/gorilla/mux"
)

func addNote(t *testing.T, r *mux.Router, token string, body map[string]string) *domain.Note {
	t.Helper()

	rec := doJSON(t, r, http.MethodPost, "/api/notes/addnote", token, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("addnote status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var note domain.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &note); err != nil {
		t.Fatalf("failed to decode note: %v", err)
	}
	return &note
}

func fetchAll(t *testing.T, r *mux.Router, token string) []*domain.Note {
	t.Helper()

	rec := doJSON(t, r, http.MethodGet, "/api/notes/fetchallnotes", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("fetchallnotes status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var notes []*domain.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &notes); err != nil {
		t.Fatalf("failed to decode notes: %v", err)
	}
	return notes
}

func TestAddNoteDefaultsTag(t *testing.T) {
	r := newTestRouter()
	token := register(t, r, "Ann Lee", "ann@example.com", "pass1")

	note := addNote(t, r, token, map[string]string{
		"title":       "Shop",
		"description": "Milk",
	})

	if note.Tag != domain.DefaultTag {
		t.Errorf("tag = %q, want %q", note.Tag, domain.DefaultTag)
	}
	if note.Title != "Shop" || note.Description != "Milk" {
		t.Errorf("unexpected note contents: %+v", note)
	}
}

func TestAddNoteValidation(t *testing.T) {
	r := newTestRouter()
	token := register(t, r, "Ann Lee", "ann@example.com", "pass1")

	rec := doJSON(t, r, http.MethodPost, "/api/notes/addnote", token, map[string]string{
		"title": "No description",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestNotesRequireAuth(t *testing.T) {
	r := newTestRouter()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/notes/fetchallnotes"},
		{http.MethodPost, "/api/notes/addnote"},
		{http.MethodPut, "/api/notes/updatenote/some-id"},
		{http.MethodDelete, "/api/notes/deletenote/some-id"},
	}

	for _, p := range paths {
		rec := doJSON(t, r, p.method, p.path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s status = %d, want 401", p.method, p.path, rec.Code)
		}
	}
}

func TestFetchAllNotesIsOwnerScoped(t *testing.T) {
	r := newTestRouter()
	annToken := register(t, r, "Ann Lee", "ann@example.com", "pass1")
	bobToken := register(t, r, "Bob Roe", "bob@example.com", "pass2")

	annNote := addNote(t, r, annToken, map[string]string{"title": "Shop", "description": "Milk"})

	bobNotes := fetchAll(t, r, bobToken)
	for _, n := range bobNotes {
		if n.ID == annNote.ID {
			t.Error("another user's note visible in fetchallnotes")
		}
	}

	annNotes := fetchAll(t, r, annToken)
	if len(annNotes) != 1 || annNotes[0].ID != annNote.ID {
		t.Errorf("owner fetch returned %d notes", len(annNotes))
	}
	if annNotes[0].Title != "Shop" || annNotes[0].Description != "Milk" || annNotes[0].Tag != domain.DefaultTag {
		t.Errorf("fetched note differs from created note: %+v", annNotes[0])
	}
}

func TestUpdateNotePartial(t *testing.T) {
	r := newTestRouter()
	token := register(t, r, "Ann Lee", "ann@example.com", "pass1")

	note := addNote(t, r, token, map[string]string{
		"title":       "Shop",
		"description": "Milk",
		"tag":         "errands",
	})

	rec := doJSON(t, r, http.MethodPut, "/api/notes/updatenote/"+note.ID, token, map[string]string{
		"description": "Milk and eggs",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("updatenote status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp domain.UpdateNoteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode update response: %v", err)
	}

	if resp.Note.Description != "Milk and eggs" {
		t.Errorf("description = %q", resp.Note.Description)
	}
	if resp.Note.Title != "Shop" || resp.Note.Tag != "errands" {
		t.Errorf("partial update changed other fields: %+v", resp.Note)
	}
}

func TestUpdateNoteNotFound(t *testing.T) {
	r := newTestRouter()
	token := register(t, r, "Ann Lee", "ann@example.com", "pass1")

	rec := doJSON(t, r, http.MethodPut, "/api/notes/updatenote/missing-id", token, map[string]string{
		"title": "anything",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// Full lifecycle: Ann registers and creates a note, a stranger's update and
// delete are refused, Ann deletes, and the note is gone.
func TestNoteLifecycleAcrossUsers(t *testing.T) {
	r := newTestRouter()
	annToken := register(t, r, "Ann Lee", "ann@example.com", "pass1")
	bobToken := register(t, r, "Bob Roe", "bob@example.com", "pass2")

	note := addNote(t, r, annToken, map[string]string{"title": "Shop", "description": "Milk"})
	if note.Tag != domain.DefaultTag {
		t.Errorf("tag = %q, want %q", note.Tag, domain.DefaultTag)
	}

	hijack := doJSON(t, r, http.MethodPut, "/api/notes/updatenote/"+note.ID, bobToken, map[string]string{
		"title": "Hijacked",
	})
	if hijack.Code != http.StatusUnauthorized {
		t.Errorf("cross-user update status = %d, want 401", hijack.Code)
	}

	annNotes := fetchAll(t, r, annToken)
	if len(annNotes) != 1 || annNotes[0].Title != "Shop" {
		t.Error("note mutated by rejected cross-user update")
	}

	hijackDelete := doJSON(t, r, http.MethodDelete, "/api/notes/deletenote/"+note.ID, bobToken, nil)
	if hijackDelete.Code != http.StatusUnauthorized {
		t.Errorf("cross-user delete status = %d, want 401", hijackDelete.Code)
	}

	del := doJSON(t, r, http.MethodDelete, "/api/notes/deletenote/"+note.ID, annToken, nil)
	if del.Code != http.StatusOK {
		t.Fatalf("deletenote status = %d, body = %s", del.Code, del.Body.String())
	}

	var delResp domain.DeleteNoteResponse
	if err := json.Unmarshal(del.Body.Bytes(), &delResp); err != nil {
		t.Fatalf("failed to decode delete response: %v", err)
	}
	if delResp.Note == nil || delResp.Note.ID != note.ID {
		t.Error("delete response missing the deleted note")
	}
	if delResp.Success == "" {
		t.Error("delete response missing success indicator")
	}

	gone := doJSON(t, r, http.MethodDelete, "/api/notes/deletenote/"+note.ID, annToken, nil)
	if gone.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", gone.Code)
	}

	if left := fetchAll(t, r, annToken); len(left) != 0 {
		t.Errorf("expected no notes after delete, got %d", len(left))
	}
}
