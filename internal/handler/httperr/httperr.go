package httperr

import (
	"github.com/gin-gonic/gin"

	"rentcar-backend/internal/pkg/errs"
)

type Message struct {
	Message string `json:"message"`
}

type Response struct {
	Status int     `json:"-"`
	Error  Message `json:"error"`
	Detail any     `json:"detail,omitempty"`
}

// AbortWithError writes the public message and keeps err on the gin context
// so the logging middleware can report the cause.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		err = errs.New(msg)
	}

	resp := Response{Status: status, Error: Message{Message: msg}, Detail: detail}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
