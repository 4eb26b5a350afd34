// Package handlers exposes the administrative REST surface: guild config,
// template and schedule management. Every route is scoped under a guild id
// and gated by the Authorizer.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/ComputerEndProgram/locutus/internal/domain"
	"github.com/ComputerEndProgram/locutus/internal/domain/contract"
	"github.com/ComputerEndProgram/locutus/internal/domain/entity"
)

const userIDHeader = "X-User-ID"

type Handler struct {
	admin contract.AdminService
	auth  contract.Authorizer
	log   zerolog.Logger
}

func New(admin contract.AdminService, auth contract.Authorizer, log zerolog.Logger) *Handler {
	return &Handler{
		admin: admin,
		auth:  auth,
		log:   log.With().Str("component", "http").Logger(),
	}
}

// Register mounts all admin routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("PUT /api/guilds/{guildID}/config", h.authorized(h.upsertGuildConfig))
	mux.HandleFunc("GET /api/guilds/{guildID}/config", h.authorized(h.getGuildConfig))

	mux.HandleFunc("POST /api/guilds/{guildID}/templates", h.authorized(h.createTemplate))
	mux.HandleFunc("GET /api/guilds/{guildID}/templates", h.authorized(h.listTemplates))
	mux.HandleFunc("PUT /api/guilds/{guildID}/templates/{id}", h.authorized(h.updateTemplate))
	mux.HandleFunc("DELETE /api/guilds/{guildID}/templates/{id}", h.authorized(h.deleteTemplate))
	mux.HandleFunc("POST /api/guilds/{guildID}/templates/{id}/default", h.authorized(h.setDefaultTemplate))

	mux.HandleFunc("POST /api/guilds/{guildID}/schedules", h.authorized(h.createSchedule))
	mux.HandleFunc("GET /api/guilds/{guildID}/schedules", h.authorized(h.listSchedules))
	mux.HandleFunc("PATCH /api/guilds/{guildID}/schedules/{id}", h.authorized(h.updateSchedule))
	mux.HandleFunc("DELETE /api/guilds/{guildID}/schedules/{id}", h.authorized(h.deleteSchedule))
}

// authorized wraps a route with the management permission check for the
// guild in the path. The caller identifies itself with the X-User-ID header.
func (h *Handler) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(userIDHeader)
		if userID == "" {
			h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing " + userIDHeader + " header"})
			return
		}

		guildID := r.PathValue("guildID")
		ok, err := h.auth.CanManage(r.Context(), userID, guildID)
		if err != nil {
			h.log.Error().Err(err).Str("guild_id", guildID).Msg("authorization check failed")
			h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "authorization check failed"})
			return
		}
		if !ok {
			h.writeJSON(w, http.StatusForbidden, errorResponse{Error: "not allowed to manage this guild"})
			return
		}

		next(w, r)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type guildConfigRequest struct {
	Timezone         string `json:"timezone"`
	RoleID           string `json:"role_id"`
	DefaultChannelID string `json:"default_channel_id"`
}

type guildConfigResponse struct {
	GuildID          string `json:"guild_id"`
	Timezone         string `json:"timezone"`
	RoleID           string `json:"role_id,omitempty"`
	DefaultChannelID string `json:"default_channel_id,omitempty"`
}

type templateRequest struct {
	Name      string `json:"name"`
	Content   string `json:"content"`
	IsDefault bool   `json:"is_default"`
}

type templateResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Content   string `json:"content"`
	IsDefault bool   `json:"is_default"`
}

type scheduleRequest struct {
	TemplateID     int64  `json:"template_id"`
	SystemName     string `json:"system_name"`
	Weekday        int    `json:"weekday"`
	TimeLocal      string `json:"time_local"`
	Timezone       string `json:"timezone,omitempty"`
	AdvanceMinutes int    `json:"advance_minutes"`
	ChannelID      string `json:"channel_id,omitempty"`
}

type scheduleUpdateRequest struct {
	TemplateID     *int64  `json:"template_id,omitempty"`
	SystemName     *string `json:"system_name,omitempty"`
	Weekday        *int    `json:"weekday,omitempty"`
	TimeLocal      *string `json:"time_local,omitempty"`
	Timezone       *string `json:"timezone,omitempty"`
	AdvanceMinutes *int    `json:"advance_minutes,omitempty"`
	ChannelID      *string `json:"channel_id,omitempty"`
	Enabled        *bool   `json:"enabled,omitempty"`
}

type scheduleResponse struct {
	ID                int64     `json:"id"`
	TemplateID        int64     `json:"template_id"`
	SystemName        string    `json:"system_name"`
	Weekday           int       `json:"weekday"`
	TimeLocal         string    `json:"time_local"`
	Timezone          string    `json:"timezone"`
	AdvanceMinutes    int       `json:"advance_minutes"`
	ChannelID         string    `json:"channel_id,omitempty"`
	Enabled           bool      `json:"enabled"`
	NextRunUTC        time.Time `json:"next_run_utc"`
	EffectiveFireTime time.Time `json:"effective_fire_time"`
}

func (h *Handler) upsertGuildConfig(w http.ResponseWriter, r *http.Request) {
	var req guildConfigRequest
	if !h.decode(w, r, &req) {
		return
	}

	cfg, err := h.admin.UpsertGuildConfig(r.Context(), r.PathValue("guildID"), req.Timezone, req.RoleID, req.DefaultChannelID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toGuildConfigResponse(cfg))
}

func (h *Handler) getGuildConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.admin.GetGuildConfig(r.Context(), r.PathValue("guildID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toGuildConfigResponse(cfg))
}

func (h *Handler) createTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if !h.decode(w, r, &req) {
		return
	}

	tpl, err := h.admin.CreateTemplate(r.Context(), r.PathValue("guildID"), req.Name, req.Content, req.IsDefault)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toTemplateResponse(tpl))
}

func (h *Handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.admin.ListTemplates(r.Context(), r.PathValue("guildID"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := make([]templateResponse, 0, len(templates))
	for _, tpl := range templates {
		resp = append(resp, toTemplateResponse(tpl))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) updateTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req templateRequest
	if !h.decode(w, r, &req) {
		return
	}

	tpl, err := h.admin.UpdateTemplate(r.Context(), r.PathValue("guildID"), id, req.Name, req.Content)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toTemplateResponse(tpl))
}

func (h *Handler) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.admin.DeleteTemplate(r.Context(), r.PathValue("guildID"), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setDefaultTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.admin.SetDefaultTemplate(r.Context(), r.PathValue("guildID"), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if !h.decode(w, r, &req) {
		return
	}

	in := contract.ScheduleInput{
		TemplateID:      req.TemplateID,
		SystemName:      req.SystemName,
		Weekday:         req.Weekday,
		TimeLocal:       req.TimeLocal,
		Timezone:        req.Timezone,
		AdvanceMinutes:  req.AdvanceMinutes,
		ChannelID:       req.ChannelID,
		CreatedByUserID: r.Header.Get(userIDHeader),
	}

	sched, err := h.admin.CreateSchedule(r.Context(), r.PathValue("guildID"), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toScheduleResponse(sched))
}

func (h *Handler) listSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.admin.ListSchedules(r.Context(), r.PathValue("guildID"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := make([]scheduleResponse, 0, len(schedules))
	for _, sched := range schedules {
		resp = append(resp, toScheduleResponse(sched))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) updateSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req scheduleUpdateRequest
	if !h.decode(w, r, &req) {
		return
	}

	in := contract.ScheduleUpdate{
		TemplateID:     req.TemplateID,
		SystemName:     req.SystemName,
		Weekday:        req.Weekday,
		TimeLocal:      req.TimeLocal,
		Timezone:       req.Timezone,
		AdvanceMinutes: req.AdvanceMinutes,
		ChannelID:      req.ChannelID,
		Enabled:        req.Enabled,
	}

	sched, err := h.admin.UpdateSchedule(r.Context(), r.PathValue("guildID"), id, in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toScheduleResponse(sched))
}

func (h *Handler) deleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.admin.DeleteSchedule(r.Context(), r.PathValue("guildID"), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toGuildConfigResponse(cfg *entity.GuildConfig) guildConfigResponse {
	return guildConfigResponse{
		GuildID:          cfg.GuildID,
		Timezone:         cfg.Timezone,
		RoleID:           cfg.RoleID,
		DefaultChannelID: cfg.DefaultChannelID,
	}
}

func toTemplateResponse(tpl *entity.Template) templateResponse {
	return templateResponse{
		ID:        tpl.ID,
		Name:      tpl.Name,
		Content:   tpl.Content,
		IsDefault: tpl.IsDefault,
	}
}

func toScheduleResponse(sched *entity.Schedule) scheduleResponse {
	return scheduleResponse{
		ID:                sched.ID,
		TemplateID:        sched.TemplateID,
		SystemName:        sched.SystemName,
		Weekday:           sched.Weekday,
		TimeLocal:         sched.TimeLocal,
		Timezone:          sched.Timezone,
		AdvanceMinutes:    sched.AdvanceMinutes,
		ChannelID:         sched.ChannelID,
		Enabled:           sched.Enabled,
		NextRunUTC:        sched.NextRunUTC,
		EffectiveFireTime: domain.EffectiveFireTime(sched.NextRunUTC, sched.AdvanceMinutes),
	}
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id in path"})
		return 0, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// writeError maps the typed domain errors onto HTTP statuses. Anything
// unclassified is a 500 with a generic body; details stay in the log.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case domain.IsNotFound(err):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case domain.IsConflict(err):
		h.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		h.log.Error().Err(err).Msg("internal error")
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("failed to encode response")
	}
}
