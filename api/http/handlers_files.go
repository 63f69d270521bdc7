package http

import (
	"errors"
	"net/http"

	"github.com/PunithVT/livekit-voice-agent/internal/files"
)

// upload accepts one multipart file under the "file" field. The user comes
// from the "user" form value.
func (h *handlers) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, files.MaxUploadSize+4096)
	if err := r.ParseMultipartForm(files.MaxUploadSize); err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, "upload too large")
		return
	}

	user := r.FormValue("user")
	if user == "" {
		respondError(w, http.StatusBadRequest, "user is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	info, err := h.cfg.Files.Save(user, header.Filename, header.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, files.ErrFileTooLarge):
			respondError(w, http.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, files.ErrUnsupportedExt):
			respondError(w, http.StatusUnsupportedMediaType, err.Error())
		default:
			h.logg.Errorf("upload failed for %s: %v", user, err)
			respondError(w, http.StatusInternalServerError, "failed to store file")
		}
		return
	}

	uploadsTotal.Inc()
	respondJSON(w, http.StatusCreated, info)
}

func (h *handlers) listFiles(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		respondError(w, http.StatusBadRequest, "user is required")
		return
	}

	list, err := h.cfg.Files.List(user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list files")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"files": list, "count": len(list)})
}

func (h *handlers) deleteFile(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		respondError(w, http.StatusBadRequest, "user is required")
		return
	}

	name := r.PathValue("name")
	if err := h.cfg.Files.Delete(user, name); err != nil {
		if errors.Is(err, files.ErrNotFound) {
			respondError(w, http.StatusNotFound, "file not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete file")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": name})
}
