package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/averyk/creator-onboard/internal/server/middleware"
	"github.com/averyk/creator-onboard/internal/types"
	"github.com/averyk/creator-onboard/internal/wizard"
)

// maxUploadSize limits uploaded documents to 5 MB.
const maxUploadSize = 5 << 20

// sessionState is the wire representation of a wizard session.
type sessionState struct {
	ID             string            `json:"id"`
	Mode           string            `json:"mode"`
	CurrentStep    int               `json:"current_step"`
	StepName       string            `json:"step_name"`
	Steps          []string          `json:"steps"`
	CompletedSteps []int             `json:"completed_steps"`
	Draft          types.Draft       `json:"draft"`
	OtherInputs    map[string]string `json:"other_inputs,omitempty"`
	BlockingError  string            `json:"blocking_error,omitempty"`
	FieldErrors    map[string]string `json:"field_errors,omitempty"`
}

// snapshotState reads the controller into a sessionState. Callers must hold
// the session lock.
func snapshotState(session *Session, ctrl *wizard.Controller) sessionState {
	steps := ctrl.Steps()
	names := make([]string, len(steps))
	for i, step := range steps {
		names[i] = step.Name
	}

	state := sessionState{
		ID:             session.ID.String(),
		Mode:           string(session.Mode),
		CurrentStep:    ctrl.CurrentStep(),
		StepName:       names[ctrl.CurrentStep()],
		Steps:          names,
		CompletedSteps: ctrl.Completed(),
		Draft:          ctrl.Draft(),
		BlockingError:  ctrl.BlockingError(),
	}

	others := make(map[string]string)
	fieldErrors := make(map[string]string)
	for _, spec := range types.Fields() {
		if text := ctrl.OtherInput(spec.Name); text != "" {
			others[string(spec.Name)] = text
		}
		if msg := ctrl.FieldError(spec.Name); msg != "" {
			fieldErrors[string(spec.Name)] = msg
		}
	}
	if len(others) > 0 {
		state.OtherInputs = others
	}
	if len(fieldErrors) > 0 {
		state.FieldErrors = fieldErrors
	}

	return state
}

// sessionFromRequest resolves the {id} path value to a session owned by the
// authenticated user. Writes the error response itself when resolution fails.
func (s *Server) sessionFromRequest(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	creatorID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return nil, false
	}

	session := s.sessions.Get(id)
	if session == nil {
		s.errorResponse(w, http.StatusNotFound, "Session not found")
		return nil, false
	}
	if session.CreatorID != creatorID {
		// Do not reveal whether the session exists.
		s.errorResponse(w, http.StatusNotFound, "Session not found")
		return nil, false
	}

	return session, true
}

// handleCreateSession starts a new onboarding session for the authenticated
// creator. Mode "edit" loads the stored profile; mode "create" (the default)
// rehydrates any locally persisted draft.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	creatorID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Mode string `json:"mode"`
	}
	if r.Body != nil {
		// An empty body means create mode.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	mode := wizard.ModeCreate
	switch req.Mode {
	case "", string(wizard.ModeCreate):
	case string(wizard.ModeEdit):
		mode = wizard.ModeEdit
	default:
		s.errorResponse(w, http.StatusBadRequest, "Invalid mode: must be \"create\" or \"edit\"")
		return
	}

	ctrl := wizard.New(wizard.Config{
		Mode:       mode,
		SessionKey: creatorID.String(),
		Store:      s.snapshots,
		Profiles:   s.db.ForCreator(creatorID),
		Parser:     s.parser,
		Search:     s.search,
		OnStepComplete: func(step int, name string) {
			log.Printf("[wizard] creator=%s completed step %d (%s)", creatorID, step, name)
		},
	})

	if err := ctrl.Start(r.Context()); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	session := s.sessions.Add(creatorID, mode, ctrl)
	s.jsonResponse(w, http.StatusCreated, snapshotState(session, ctrl))
}

// handleGetSession returns the current session state.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	ctrl := session.Lock()
	defer session.Unlock()
	s.jsonResponse(w, http.StatusOK, snapshotState(session, ctrl))
}

// handleSetFields applies field mutations to the draft. Scalar and sequence
// writes go through "fields", membership toggles through "toggles", and
// custom "Other" text through "other_inputs".
func (s *Server) handleSetFields(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req struct {
		Fields  map[string]any `json:"fields"`
		Toggles []struct {
			Field    string `json:"field"`
			Item     string `json:"item"`
			Included bool   `json:"included"`
		} `json:"toggles"`
		OtherInputs map[string]string `json:"other_inputs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctrl := session.Lock()
	defer session.Unlock()

	for name, value := range req.Fields {
		if err := ctrl.SetField(types.FieldName(name), value); err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	for _, toggle := range req.Toggles {
		if err := ctrl.SetArrayField(types.FieldName(toggle.Field), toggle.Item, toggle.Included); err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	for name, text := range req.OtherInputs {
		ctrl.SetOtherInput(types.FieldName(name), text)
	}

	s.jsonResponse(w, http.StatusOK, snapshotState(session, ctrl))
}

// handleAdvance validates the current step and moves forward. A validation
// failure returns 422 with the blocking error in the session state.
func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	ctrl := session.Lock()
	defer session.Unlock()

	if err := ctrl.Advance(); err != nil {
		s.jsonResponse(w, HTTPStatus(err), snapshotState(session, ctrl))
		return
	}
	s.jsonResponse(w, http.StatusOK, snapshotState(session, ctrl))
}

// handleRetreat moves back one step. Never fails.
func (s *Server) handleRetreat(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	ctrl := session.Lock()
	defer session.Unlock()

	ctrl.Retreat()
	s.jsonResponse(w, http.StatusOK, snapshotState(session, ctrl))
}

// handleJump moves directly to a step, subject to linear access rules in
// create mode.
func (s *Server) handleJump(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req struct {
		Step int `json:"step"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctrl := session.Lock()
	defer session.Unlock()

	if req.Step < 0 || req.Step >= len(ctrl.Steps()) {
		s.errorResponse(w, http.StatusBadRequest, "Step out of range")
		return
	}

	if err := ctrl.JumpTo(req.Step); err != nil {
		s.jsonResponse(w, HTTPStatus(err), snapshotState(session, ctrl))
		return
	}
	s.jsonResponse(w, http.StatusOK, snapshotState(session, ctrl))
}

// handleImport accepts a multipart document upload, extracts fields from it,
// and merges them into the draft without overwriting existing entries.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("document")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing \"document\" file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read upload")
		return
	}

	ctrl := session.Lock()
	defer session.Unlock()

	extracted, err := ctrl.ImportDocument(r.Context(), data, header.Filename)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"extracted": extracted,
		"session":   snapshotState(session, ctrl),
	})
}

// handleSearch looks up the creator's public presence and merges discovered
// fields into the draft.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	if s.search == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Profile search is not configured")
		return
	}

	var req struct {
		Query string `json:"query"`
		Kind  string `json:"kind"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	kind := types.SearchKind(req.Kind)
	switch kind {
	case types.SearchByName, types.SearchByHandle, types.SearchByWebsite:
	case "":
		kind = types.SearchByName
	default:
		s.errorResponse(w, http.StatusBadRequest, "Invalid search kind")
		return
	}

	ctrl := session.Lock()
	defer session.Unlock()

	found, err := ctrl.SearchProfile(r.Context(), req.Query, kind)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"found":   found,
		"session": snapshotState(session, ctrl),
	})
}

// handleSubmit validates and persists the finished profile.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	ctrl := session.Lock()
	defer session.Unlock()

	if err := ctrl.Submit(r.Context()); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "submitted"})
}

// handleReset discards the draft and any persisted snapshot, returning the
// session to a blank first step.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	ctrl := session.Lock()
	defer session.Unlock()

	if err := ctrl.Reset(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, snapshotState(session, ctrl))
}

// handleDeleteSession removes the session from the registry. The persisted
// snapshot survives so an abandoned create-mode session can resume later.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	s.sessions.Remove(session.ID)
	w.WriteHeader(http.StatusNoContent)
}
