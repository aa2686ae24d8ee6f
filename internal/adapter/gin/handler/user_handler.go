package handler

import (
	"errors"
	"net/http"

	"user-avatar-service/internal/usecase/user"
	pkgerrors "user-avatar-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// createUserJSON represents the JSON request body for creating a user.
// Required-field checks happen in the usecase, not at bind time.
type createUserJSON struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// CreateUser handles POST /user. A JSON body carries name and email only;
// a multipart form may additionally carry an avatar file.
func (h *UserHandler) CreateUser(c *gin.Context) {
	ucReq := user.CreateUserRequest{}

	if c.ContentType() == "application/json" {
		var req createUserJSON
		if err := c.ShouldBindJSON(&req); err != nil {
			h.log.Warn("invalid create user body", zap.Error(err))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON"})
			return
		}
		ucReq.Name = req.Name
		ucReq.Email = req.Email
	} else {
		ucReq.Name = c.PostForm("name")
		ucReq.Email = c.PostForm("email")

		if fh, err := c.FormFile("avatar"); err == nil {
			f, err := fh.Open()
			if err != nil {
				h.log.Error("failed to open uploaded avatar", zap.String("filename", fh.Filename), zap.Error(err))
				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Error:   "Failed to store avatar",
					Details: err.Error(),
				})
				return
			}
			defer f.Close()

			ucReq.Avatar = &user.AvatarUpload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Content:     f,
			}
		}
	}

	h.log.Info("create user request",
		zap.String("name", ucReq.Name),
		zap.String("email", ucReq.Email),
		zap.Bool("has_avatar", ucReq.Avatar != nil),
	)

	resp, err := h.uc.CreateUser(c.Request.Context(), ucReq)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "User created successfully",
		"id":         resp.ID,
		"avatar_url": resp.AvatarURL,
	})
}

// ListUsers handles GET /users. The full store contents are returned as a
// flat array in scan order.
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.log.Error("list users failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = UserResponse{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			AvatarURL: u.AvatarURL,
		}
	}

	c.JSON(http.StatusOK, users)
}

// handleError converts usecase errors to appropriate HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var vErr *pkgerrors.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: vErr.Message})
		return
	}

	var pErr *pkgerrors.PersistenceError
	if errors.As(err, &pErr) {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   pErr.Message,
			Details: pErr.Details(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}
