package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/event-ops-api/internal/application/auth"
	"github.com/event-ops-api/internal/application/session"
	"github.com/event-ops-api/internal/domain"
	"github.com/event-ops-api/internal/pkg/validate"
	"github.com/event-ops-api/internal/transport/http/middleware"
)

// genericLoginError is returned for every request-code failure that could
// reveal whether an account exists.
const genericLoginError = "you cannot sign in, contact an administrator"

// AuthHandler handles the OTP login endpoints.
type AuthHandler struct {
	otp      auth.Service
	sessions session.Service
	secure   bool // Secure cookie flag, on in production
}

func NewAuthHandler(otp auth.Service, sessions session.Service, secure bool) *AuthHandler {
	return &AuthHandler{otp: otp, sessions: sessions, secure: secure}
}

// RequestCode issues a login code for the given email.
func (h *AuthHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req auth.RequestChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	issued, err := h.otp.RequestChallenge(r.Context(), req.Email)
	if err != nil {
		// Unknown identity and delivery failure collapse into the same
		// message; distinguishing them would allow account probing.
		if errors.Is(err, domain.ErrUnknownIdentity) || errors.Is(err, domain.ErrDeliveryDegraded) {
			writeError(w, http.StatusUnauthorized, genericLoginError)
			return
		}
		writeDomainError(w, err)
		return
	}
	msg := "code sent"
	if issued.DeliveryDegraded {
		msg = "code issued, delivery delayed"
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: msg})
}

// VerifyCode exchanges a correct code for a session cookie.
func (h *AuthHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req auth.SubmitChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	vi, err := h.otp.SubmitChallenge(r.Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoChallenge):
			writeError(w, http.StatusUnauthorized, "no active code, request a new one")
		case errors.Is(err, domain.ErrChallengeExpired):
			writeError(w, http.StatusUnauthorized, "code expired, request a new one")
		case errors.Is(err, domain.ErrCodeMismatch):
			writeError(w, http.StatusUnauthorized, "incorrect code")
		case errors.Is(err, domain.ErrUnknownIdentity):
			writeError(w, http.StatusUnauthorized, genericLoginError)
		default:
			writeDomainError(w, err)
		}
		return
	}

	result, err := h.sessions.Issue(r.Context(), vi)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.setSessionCookie(w, result.Artifact, time.Until(time.Unix(result.Session.ExpiresAt, 0)))
	writeJSON(w, http.StatusOK, SessionEnvelope{
		Session: &SessionInfo{UID: vi.UserID, Email: vi.Email, Name: vi.Name, Role: vi.Role},
	})
}

// Current returns the authenticated session, or 401 via middleware.
func (h *AuthHandler) Current(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	sess, err := h.sessions.Current(r.Context(), claims.SessionID)
	if err != nil {
		// A revoked or expired record is "not authenticated": clear the
		// cookie and let the client log in again.
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNotFound) {
			h.clearSessionCookie(w)
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SessionEnvelope{
		Session: &SessionInfo{
			UID:   sess.User.UserID,
			Email: sess.User.Email,
			Name:  sess.User.Name,
			Role:  sess.User.Role,
		},
	})
}

// Logout revokes the session and clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if ok {
		if err := h.sessions.End(r.Context(), claims.SessionID); err != nil {
			writeDomainError(w, err)
			return
		}
	}
	h.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "logged out"})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, artifact string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    artifact,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
