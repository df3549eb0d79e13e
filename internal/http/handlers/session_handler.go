// README: Session handlers (create/get/credential/end/download).
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/http/middleware"
	"tripplanner/internal/modules/session"
	"tripplanner/internal/service"
)

type SessionHandler struct {
	sessions *session.Service
	planner  *service.TripPlanner
}

func NewSessionHandler(sessions *session.Service, planner *service.TripPlanner) *SessionHandler {
	return &SessionHandler{sessions: sessions, planner: planner}
}

// sessionView never exposes the stored credential.
type sessionView struct {
	ID                string    `json:"id"`
	AIMode            string    `json:"ai_mode"`
	HasCredential     bool      `json:"has_credential"`
	Research          string    `json:"research,omitempty"`
	Itinerary         string    `json:"itinerary,omitempty"`
	ItineraryFilename string    `json:"itinerary_filename,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (h *SessionHandler) view(st *session.State) sessionView {
	return sessionView{
		ID:                st.ID,
		AIMode:            string(h.planner.Mode(st.Credential)),
		HasCredential:     st.Credential != "",
		Research:          st.Research,
		Itinerary:         st.Itinerary,
		ItineraryFilename: st.ItineraryFilename,
		CreatedAt:         st.CreatedAt,
		UpdatedAt:         st.UpdatedAt,
	}
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(c *gin.Context) {
	st, err := h.sessions.Create(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, h.view(st))
}

// Get handles GET /api/sessions/:id.
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	st, err := h.sessions.Get(c.Request.Context(), id, middleware.CallerUID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, h.view(st))
}

type credentialReq struct {
	APIKey string `json:"api_key"`
}

// SetCredential handles PUT /api/sessions/:id/credential. An empty key clears the override.
func (h *SessionHandler) SetCredential(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req credentialReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	st, err := h.sessions.SetCredential(c.Request.Context(), id, middleware.CallerUID(c), req.APIKey)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, h.view(st))
}

// End handles DELETE /api/sessions/:id.
func (h *SessionHandler) End(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.sessions.End(c.Request.Context(), id, middleware.CallerUID(c)); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DownloadItinerary handles GET /api/sessions/:id/itinerary/download.
func (h *SessionHandler) DownloadItinerary(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	st, err := h.sessions.Get(c.Request.Context(), id, middleware.CallerUID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if st.Itinerary == "" {
		writeError(c, http.StatusNotFound, "no itinerary generated yet")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", st.ItineraryFilename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(st.Itinerary))
}

func sessionID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return "", false
	}
	return id, true
}
