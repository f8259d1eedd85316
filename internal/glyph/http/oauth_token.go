package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/glyphkit/glyph/internal/glyph/domain"
	"github.com/glyphkit/glyph/internal/glyph/epic"
	"github.com/glyphkit/glyph/internal/glyph/service"
	"github.com/glyphkit/glyph/pkg/httpx"
	"github.com/glyphkit/glyph/pkg/slogx"
)

// TokenHandler serves POST /account/api/oauth/token.
// Accepts application/x-www-form-urlencoded, the only body shape the
// platform launcher sends.
type TokenHandler struct {
	TokenService *service.TokenService
}

func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// The client identity rides in the Authorization header, not the
	// body. Every header failure mode collapses to the same envelope.
	clientID, err := epic.ExtractClientID(r.Header.Get("Authorization"))
	if err != nil {
		epic.ErrInvalidClient.WriteError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		epic.ErrInvalidRequestBody.WriteError(w)
		return
	}

	// The launcher always sends token_type=eg1. Other values work the
	// same but are worth noticing in the logs.
	if tt := r.Form.Get("token_type"); tt != "" && tt != epic.TokenType {
		log.Warn("unexpected token_type", slog.String("token_type", tt))
	}

	grant := r.Form.Get("grant_type")
	switch domain.GrantType(grant) {
	case domain.GrantClientCredentials:
		h.handleClientCredentials(w, r, clientID)
	case domain.GrantExchangeCode:
		h.handleExchangeCode(w, r, clientID, r.Form)
	case domain.GrantRefreshToken:
		h.handleRefreshToken(w, r, clientID, r.Form)
	case domain.GrantPassword:
		// Deliberately rejected: password auth never leaves the launcher.
		epic.ErrUnsupportedGrantType.WriteError(w)
	default:
		epic.UnsupportedGrantError(grant).WriteError(w)
	}
}

func (h *TokenHandler) handleClientCredentials(w http.ResponseWriter, r *http.Request, clientID string) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	session, err := h.TokenService.ClientCredentials(ctx, clientID)
	if err != nil {
		log.Error("client_credentials grant failed", "err", err)
		epic.ErrInternalServerError.WriteError(w)
		return
	}

	response := epic.ClientCredentialsResponse{
		AccessToken:    session.Token,
		ExpiresIn:      epic.ClientCredentialsExpiresIn,
		ExpiresAt:      epic.Timestamp(session.ExpiresAt),
		TokenType:      "bearer",
		ClientID:       session.ClientID,
		InternalClient: true,
		ClientService:  epic.ClientService,
	}
	httpx.WriteJSON(w, http.StatusOK, response)
}

func (h *TokenHandler) handleExchangeCode(w http.ResponseWriter, r *http.Request, clientID string, form url.Values) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	code := strings.TrimSpace(form.Get("exchange_code"))
	if code == "" {
		epic.ErrExchangeCodeRequired.WriteError(w)
		return
	}

	session, err := h.TokenService.RedeemExchangeCode(ctx, clientID, code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCodeNotFound):
			epic.ErrExchangeCodeNotFound.WriteError(w)
		default:
			log.Error("exchange_code grant failed", "err", err)
			epic.ErrInternalServerError.WriteError(w)
		}
		return
	}

	writeAuthResponse(w, session)
}

func (h *TokenHandler) handleRefreshToken(w http.ResponseWriter, r *http.Request, clientID string, form url.Values) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	refresh := strings.TrimSpace(form.Get("refresh_token"))
	if refresh == "" {
		epic.ErrRefreshTokenRequired.WriteError(w)
		return
	}

	session, err := h.TokenService.Refresh(ctx, clientID, refresh)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRefreshNotFound):
			epic.ErrInvalidRefreshToken.WriteError(w)
		default:
			log.Error("refresh_token grant failed", "err", err)
			epic.ErrInternalServerError.WriteError(w)
		}
		return
	}

	writeAuthResponse(w, session)
}

func writeAuthResponse(w http.ResponseWriter, session domain.UserSession) {
	response := epic.AuthResponse{
		AccessToken:      epic.PrefixToken(session.AccessToken.Token),
		ExpiresIn:        int64(session.AccessToken.ExpiresAt.Sub(session.AccessToken.CreatedAt).Seconds()),
		ExpiresAt:        epic.Timestamp(session.AccessToken.ExpiresAt),
		TokenType:        "bearer",
		RefreshToken:     epic.PrefixToken(session.RefreshToken.Token),
		RefreshExpires:   int64(session.RefreshToken.ExpiresAt.Sub(session.RefreshToken.CreatedAt).Seconds()),
		RefreshExpiresAt: epic.Timestamp(session.RefreshToken.ExpiresAt),
		AccountID:        session.User.AccountID,
		ClientID:         session.ClientID,
		InternalClient:   true,
		ClientService:    epic.ClientService,
		DisplayName:      session.User.DisplayName,
		App:              epic.App,
		InAppID:          session.User.AccountID,
		DeviceID:         session.DeviceID,
	}
	httpx.WriteJSON(w, http.StatusOK, response)
}
