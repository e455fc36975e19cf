package http_handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/researcher10001-hub/bytecity-accounting/internal/application/credentials"
	"github.com/researcher10001-hub/bytecity-accounting/internal/domain"
	"github.com/researcher10001-hub/bytecity-accounting/internal/logger"
	"github.com/researcher10001-hub/bytecity-accounting/internal/transport/http/dto"
	"github.com/researcher10001-hub/bytecity-accounting/internal/transport/http/middleware"
	"github.com/researcher10001-hub/bytecity-accounting/internal/transport/http/response"
)

type PasswordUpdater interface {
	Update(ctx context.Context, req credentials.UpdateRequest) credentials.Result
}

type PasswordHandler struct {
	updater PasswordUpdater
}

func NewPasswordHandler(updater PasswordUpdater) *PasswordHandler {
	return &PasswordHandler{updater: updater}
}

// Change handles POST /auth/v1/password/change
func (h *PasswordHandler) Change(w http.ResponseWriter, r *http.Request) {
	var req *dto.PasswordChangeRequest
	err := response.DecodeJSON(r, &req)
	if err == nil && req == nil {
		err = domain.ErrInvalidJSON(errors.New("request body is null"))
	}
	if err != nil {
		middleware.PasswordUpdatesTotal.WithLabelValues("invalid_json").Inc()
		cause := errors.Unwrap(err)
		if cause == nil {
			cause = err
		}
		response.Error(w, http.StatusBadRequest, "Server error: "+cause.Error())
		return
	}
	if err := req.Validate(); err != nil {
		middleware.PasswordUpdatesTotal.WithLabelValues(string(credentials.KindValidation)).Inc()
		response.WriteError(w, err)
		return
	}

	res := h.updater.Update(r.Context(), credentials.UpdateRequest{
		Email:       req.Email,
		NewPassword: req.NewPassword,
	})
	middleware.PasswordUpdatesTotal.WithLabelValues(string(res.Kind)).Inc()

	if res.OK() {
		logger.WithCtx(r.Context()).Info().
			Str("email", req.Email).
			Msg("password_updated")
		response.Success(w, res.Message)
		return
	}

	evt := logger.WithCtx(r.Context()).Warn()
	if res.Kind == credentials.KindInternal {
		evt = logger.WithCtx(r.Context()).Error()
	}
	evt.Err(res.Cause).
		Str("email", req.Email).
		Str("result", string(res.Kind)).
		Msg("password_update_failed")

	response.Error(w, response.StatusFromKind(domain.ErrKind(res.Kind)), res.Message)
}
