package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewOKResp returns a new OK response with the given data.
func NewOKResp(data any) Resp {
	return Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	}
}

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Error sends 400 with the error's message and optional field details.
func Error(c *gin.Context, err error, data map[string]interface{}) {
	if data == nil {
		data = make(map[string]interface{})
	}
	fail(c, http.StatusBadRequest, 1, err.Error(), data)
}

// InternalError sends 500 without leaking the underlying error to the caller.
func InternalError(c *gin.Context, err error) {
	fail(c, http.StatusInternalServerError, InternalServerErrorCode, DefaultErrorMessage, nil)
}

// Unauthorized sends 401 response.
func Unauthorized(c *gin.Context) {
	fail(c, http.StatusUnauthorized, http.StatusUnauthorized, "Unauthorized", nil)
}

// Forbidden sends 403 response.
func Forbidden(c *gin.Context) {
	fail(c, http.StatusForbidden, http.StatusForbidden, "Forbidden", nil)
}

func fail(c *gin.Context, status, code int, message string, data map[string]interface{}) {
	resp := Resp{
		ErrorCode: code,
		Message:   message,
	}
	if data != nil {
		resp.Data = data
	}
	c.JSON(status, resp)
}
