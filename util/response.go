package util

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"ClinicCore/apperr"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

/*
* Build the error envelope for a failed request
* Field-validation failures render as {errors: [...]}
* Everything else renders as {message}
* Underlying causes are exposed only in debug mode
 */
func FailedResponse(err error) gin.H {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
		}
		return gin.H{"errors": fields}
	}

	var e *apperr.Error
	if errors.As(err, &e) {
		body := gin.H{"message": e.Message}
		if e.Cause != nil && gin.Mode() == gin.DebugMode {
			body["detail"] = e.Cause.Error()
		}
		return body
	}
	return gin.H{"message": err.Error()}
}

/*
* Write the error with its mapped status code
 */
func RespondError(c *gin.Context, err error) {
	if apperr.IsKind(err, apperr.KindServer) {
		log.Println("Server error: ", err)
	}
	c.JSON(apperr.Status(err), FailedResponse(err))
}

/*
* Binding failures are always a 400 regardless of the underlying error
 */
func RespondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FailedResponse(err))
}
