package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	access "parceltrack/contexts/identity-access/access-service"
	accesserrors "parceltrack/contexts/identity-access/access-service/domain/errors"
	accesshttp "parceltrack/contexts/identity-access/access-service/transport/http"
	tracking "parceltrack/contexts/shipment-tracking/tracking-service"
	trackingerrors "parceltrack/contexts/shipment-tracking/tracking-service/domain/errors"
	trackinghttp "parceltrack/contexts/shipment-tracking/tracking-service/transport/http"
	"parceltrack/internal/platform/identity"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "parceltrack/internal/platform/httpserver/docs"
)

type Server struct {
	mux            *http.ServeMux
	logger         *slog.Logger
	addr           string
	identity       *identity.Resolver
	bootstrapToken string
	tracking       tracking.Module
	access         access.Module
}

func New(
	trackingModule tracking.Module,
	accessModule access.Module,
	resolver *identity.Resolver,
	bootstrapToken string,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:            http.NewServeMux(),
		logger:         logger,
		addr:           addr,
		identity:       resolver,
		bootstrapToken: bootstrapToken,
		tracking:       trackingModule,
		access:         accessModule,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /v1/shipments/{tracking_number}", s.handleGetShipment)
	s.mux.HandleFunc("GET /v1/shipments/{tracking_number}/latest-event", s.handleGetLatestEvent)
	s.mux.HandleFunc("GET /v1/shipments", s.handleListShipments)
	s.mux.HandleFunc("POST /v1/shipments", s.handleCreateShipment)
	s.mux.HandleFunc("POST /v1/shipments/{tracking_number}/events", s.handleAddTrackingEvent)
	s.mux.HandleFunc("POST /v1/tracking-numbers", s.handleGenerateTrackingNumber)
	s.mux.HandleFunc("POST /v1/shipments/seed", s.handleSeedShipments)

	s.mux.HandleFunc("GET /v1/me/role", s.handleCallerRole)
	s.mux.HandleFunc("GET /v1/me/admin", s.handleCallerAdmin)
	s.mux.HandleFunc("GET /v1/me/profile", s.handleGetOwnProfile)
	s.mux.HandleFunc("PUT /v1/me/profile", s.handleSaveOwnProfile)
	s.mux.HandleFunc("GET /v1/users/{identity}/profile", s.handleGetProfile)
	s.mux.HandleFunc("POST /v1/users/{identity}/role", s.handleAssignRole)
	s.mux.HandleFunc("POST /v1/bootstrap/initial-admin", s.handleBootstrapInitialAdmin)
}

// resolveIdentity yields the caller identity or writes a 401 and reports false.
func (s *Server) resolveIdentity(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller, err := s.identity.Resolve(r)
	if err != nil {
		writeAccessError(w, http.StatusUnauthorized, "invalid_credential", "caller credential could not be verified")
		return "", false
	}
	return caller, true
}

func (s *Server) handleGetShipment(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveIdentity(w, r)
	if !ok {
		return
	}
	resp, err := s.tracking.Handler.GetShipmentHandler(r.Context(), caller, r.PathValue("tracking_number"))
	if err != nil {
		writeTrackingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetLatestEvent(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveIdentity(w, r)
	if !ok {
		return
	}
	resp, err := s.tracking.Handler.GetLatestTrackingEventHandler(r.Context(), caller, r.PathValue("tracking_number"))
	if err != nil {
		writeTrackingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListShipments(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveIdentity(w, r)
	if !ok {
		return
	}
	resp, err := s.tracking.Handler.ListShipmentsHandler(r.Context(), caller)
	if err != nil {
		writeTrackingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateShipment(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveIdentity(w, r)
	if !ok {
		return
	}
	var req trackinghttp.CreateShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTrackingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.tracking.Handler.CreateShipmentHandler(r.Context(), caller, req)
	if err != nil {
		writeTrackingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleAddTrackingEvent(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveIdentity(w, r)
	if !ok {
		return
	}
	var req trackinghttp.AddTrackingEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTrackingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.tracking.Handler.AddTrackingEventHandler(r.Context(), caller, r.PathValue("tracking_number"), req); err != nil {
		writeTrackingDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGenerateTrackingNumber(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveIdentity(w, r)
	if !ok {
		return
	}
	resp, err := s.tracking.Handler.GenerateTrackingNumberHandler(r.Context(), caller)
	if err != nil {
		writeTrackingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSeedShipments(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveIdentity(w, r)
	if !ok {
		return
	}
	resp, err := s.tracking.Handler.SeedShipmentsHandler(r.Context(), caller)
	if err != nil {
		writeTrackingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCallerRole(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveIdentity(w, r)
	if !ok {
		return
	}
	resp, err := s.access.Handler.CallerRoleHandler(r.Context(), caller)
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCallerAdmin(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveIdentity(w, r)
	if !ok {
		return
	}
	resp, err := s.access.Handler.CallerAdminHandler(r.Context(), caller)
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetOwnProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveIdentity(w, r)
	if !ok {
		return
	}
	resp, err := s.access.Handler.GetOwnProfileHandler(r.Context(), caller)
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSaveOwnProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveIdentity(w, r)
	if !ok {
		return
	}
	var req accesshttp.SaveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccessError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.access.Handler.SaveOwnProfileHandler(r.Context(), caller, req); err != nil {
		writeAccessDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveIdentity(w, r)
	if !ok {
		return
	}
	resp, err := s.access.Handler.GetProfileHandler(r.Context(), caller, r.PathValue("identity"))
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAssignRole(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveIdentity(w, r)
	if !ok {
		return
	}
	var req accesshttp.AssignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccessError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.access.Handler.AssignRoleHandler(r.Context(), caller, r.PathValue("identity"), req); err != nil {
		writeAccessDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBootstrapInitialAdmin(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveIdentity(w, r)
	if !ok {
		return
	}
	var req accesshttp.BootstrapInitialAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccessError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.access.Handler.BootstrapInitialAdminHandler(r.Context(), caller, req.Token, s.bootstrapToken); err != nil {
		writeAccessDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeTrackingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, trackingerrors.ErrShipmentNotFound):
		writeTrackingError(w, http.StatusNotFound, "shipment_not_found", err.Error())
	case errors.Is(err, trackingerrors.ErrNoTrackingEvents):
		writeTrackingError(w, http.StatusNotFound, "no_tracking_events", err.Error())
	case errors.Is(err, trackingerrors.ErrTrackingNumberConflict):
		writeTrackingError(w, http.StatusConflict, "tracking_number_conflict", err.Error())
	case errors.Is(err, trackingerrors.ErrInvalidShipmentInput),
		errors.Is(err, trackingerrors.ErrInvalidTrackingEvent):
		writeTrackingError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, trackingerrors.ErrForbidden):
		writeTrackingError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, accesserrors.ErrForbidden):
		writeTrackingError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, accesserrors.ErrIdentityRequired):
		writeTrackingError(w, http.StatusUnauthorized, "identity_required", err.Error())
	default:
		writeTrackingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAccessDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accesserrors.ErrForbidden):
		writeAccessError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, accesserrors.ErrIdentityRequired):
		writeAccessError(w, http.StatusUnauthorized, "identity_required", err.Error())
	case errors.Is(err, accesserrors.ErrInvalidRole),
		errors.Is(err, accesserrors.ErrInvalidProfile):
		writeAccessError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, accesserrors.ErrProfileNotFound):
		writeAccessError(w, http.StatusNotFound, "profile_not_found", err.Error())
	case errors.Is(err, accesserrors.ErrInvalidToken):
		writeAccessError(w, http.StatusUnauthorized, "invalid_bootstrap_token", err.Error())
	case errors.Is(err, accesserrors.ErrAlreadyBootstrapped):
		writeAccessError(w, http.StatusConflict, "already_bootstrapped", err.Error())
	default:
		writeAccessError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeTrackingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, trackinghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeAccessError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, accesshttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
