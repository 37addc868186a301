package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	. "taskapp/internal/adapter/http/helper"
	. "taskapp/internal/adapter/http/middleware"
	. "taskapp/internal/adapter/http/validation"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/port"
	"taskapp/internal/core/util"
	"taskapp/internal/telemetry"
	"taskapp/pkg/logging"
	. "taskapp/pkg/tracing"
)

type UserHandler struct {
	svc     port.AccountService
	Logger  *logging.Logger
	metrics *telemetry.AppMetrics
}

func NewUserHandler(accountUseCase port.AccountService, logger *logging.Logger, metrics *telemetry.AppMetrics) *UserHandler {
	return &UserHandler{
		svc:     accountUseCase,
		Logger:  logger,
		metrics: metrics,
	}
}

func (u *UserHandler) Register(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.user.Register", []attribute.KeyValue{
		attribute.String("handler.operation", "Register"),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	params, err := util.ParamsToMap[request.SignUpRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	user, token, err := u.svc.Register(ctx, &params)

	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			SendBadRequestError(c, "email", err.Error())
			return
		}

		AddSpanError(span, err)

		u.Logger.ErrorWithTrace(ctx, "Failed to register user", zap.Error(err))

		SendInternalError(c, "Error creating account")
		return
	}

	u.metrics.RecordUserOperation("register")

	c.JSON(http.StatusCreated, response.AuthResponse{
		User:  response.NewUserResponse(user),
		Token: token,
	})
}

func (u *UserHandler) Login(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.user.Login", []attribute.KeyValue{
		attribute.String("handler.operation", "Login"),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	params, err := util.ParamsToMap[request.LoginRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	user, token, err := u.svc.Login(ctx, &params)

	if err != nil {
		// Wrong email and wrong password answer identically.
		if errors.Is(err, domain.ErrInvalidCredentials) {
			SendBadRequestError(c, "credentials", err.Error())
			return
		}

		AddSpanError(span, err)

		u.Logger.ErrorWithTrace(ctx, "Failed to log user in", zap.Error(err))

		SendInternalError(c, "Error logging in")
		return
	}

	u.metrics.RecordUserOperation("login")

	c.JSON(http.StatusOK, response.AuthResponse{
		User:  response.NewUserResponse(user),
		Token: token,
	})
}

func (u *UserHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	user, _ := CurrentUser(c)
	token := CurrentToken(c)

	if err := u.svc.Logout(ctx, user.ID, token); err != nil {
		u.Logger.ErrorWithTrace(ctx, "Failed to log user out", zap.Error(err))

		SendInternalError(c, "Error logging out")
		return
	}

	u.metrics.RecordUserOperation("logout")

	SendSuccess(c, http.StatusOK, nil, "logged out")
}

func (u *UserHandler) LogoutAll(c *gin.Context) {
	ctx := c.Request.Context()

	user, _ := CurrentUser(c)

	if err := u.svc.LogoutAll(ctx, user.ID); err != nil {
		u.Logger.ErrorWithTrace(ctx, "Failed to revoke user sessions", zap.Error(err))

		SendInternalError(c, "Error logging out")
		return
	}

	u.metrics.RecordUserOperation("logout_all")

	SendSuccess(c, http.StatusOK, nil, "logged out everywhere")
}

func (u *UserHandler) GetProfile(c *gin.Context) {
	user, _ := CurrentUser(c)

	c.JSON(http.StatusOK, response.NewUserResponse(user))
}

func (u *UserHandler) UpdateProfile(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.user.UpdateProfile", []attribute.KeyValue{
		attribute.String("handler.operation", "UpdateProfile"),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	user, _ := CurrentUser(c)

	params, err := util.StrictParams[request.UpdateUserRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid updates!")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	updated, err := u.svc.UpdateProfile(ctx, user, &params)

	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			SendBadRequestError(c, "email", err.Error())
			return
		}

		AddSpanError(span, err)

		u.Logger.ErrorWithTrace(ctx, "Failed to update profile", zap.Error(err))

		SendInternalError(c, "Error updating account")
		return
	}

	u.metrics.RecordUserOperation("update_profile")

	c.JSON(http.StatusOK, response.NewUserResponse(updated))
}

func (u *UserHandler) DeleteAccount(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.user.DeleteAccount", []attribute.KeyValue{
		attribute.String("handler.operation", "DeleteAccount"),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	user, _ := CurrentUser(c)

	if err := u.svc.DeleteAccount(ctx, user); err != nil {
		AddSpanError(span, err)

		u.Logger.ErrorWithTrace(ctx, "Failed to delete account", zap.Error(err))

		SendInternalError(c, "Error deleting account")
		return
	}

	u.metrics.RecordUserOperation("delete_account")

	c.JSON(http.StatusOK, response.NewUserResponse(user))
}

func (u *UserHandler) UploadAvatar(c *gin.Context) {
	ctx := c.Request.Context()

	user, _ := CurrentUser(c)

	fileHeader, err := c.FormFile("avatar")

	if err != nil {
		SendBadRequestError(c, "avatar", "Please upload an avatar")
		return
	}

	file, err := fileHeader.Open()

	if err != nil {
		SendBadRequestError(c, "avatar", "Please upload an avatar")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)

	if err != nil {
		u.Logger.ErrorWithTrace(ctx, "Failed to read avatar upload", zap.Error(err))

		SendInternalError(c, "Error uploading avatar")
		return
	}

	if err := u.svc.SetAvatar(ctx, user, fileHeader.Filename, data); err != nil {
		if errors.Is(err, domain.ErrAvatarTooLarge) || errors.Is(err, domain.ErrAvatarUnsupported) {
			SendBadRequestError(c, "avatar", err.Error())
			return
		}

		u.Logger.ErrorWithTrace(ctx, "Failed to store avatar", zap.Error(err))

		SendInternalError(c, "Error uploading avatar")
		return
	}

	u.metrics.RecordUserOperation("upload_avatar")

	SendSuccess(c, http.StatusOK, nil, "avatar uploaded")
}

func (u *UserHandler) DeleteAvatar(c *gin.Context) {
	ctx := c.Request.Context()

	user, _ := CurrentUser(c)

	if err := u.svc.ClearAvatar(ctx, user); err != nil {
		u.Logger.ErrorWithTrace(ctx, "Failed to clear avatar", zap.Error(err))

		SendInternalError(c, "Error deleting avatar")
		return
	}

	u.metrics.RecordUserOperation("delete_avatar")

	SendSuccess(c, http.StatusOK, nil, "avatar deleted")
}

// GetAvatar serves any user's avatar by uuid without authentication. Stored
// avatars are already normalized to PNG.
func (u *UserHandler) GetAvatar(c *gin.Context) {
	ctx := c.Request.Context()

	data, err := u.svc.GetAvatarByUUID(ctx, c.Param("uuid"))

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			SendNotFoundError(c, "avatar not found")
			return
		}

		u.Logger.ErrorWithTrace(ctx, "Failed to fetch avatar", zap.Error(err))

		SendInternalError(c, "Error fetching avatar")
		return
	}

	c.Data(http.StatusOK, "image/png", data)
}
