// internal/handler/errors.go
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"escp-service/internal/discovery"
	"escp-service/internal/repository"
	"escp-service/internal/service"
	"escp-service/internal/utils"
	"escp-service/pkg/escp"
	"escp-service/pkg/escp/charset"
)

// errorMapping ties a sentinel error to an HTTP status and error code
type errorMapping struct {
	target error
	status int
	code   string
}

// order matters: the charset errors are aliased by escp
var errorMappings = []errorMapping{
	{escp.ErrInvalidParameter, http.StatusBadRequest, "INVALID_PARAMETER"},
	{escp.ErrUnsupportedVariant, http.StatusBadRequest, "UNSUPPORTED_VARIANT"},
	{escp.ErrUnsupportedDirective, http.StatusBadRequest, "UNSUPPORTED_DIRECTIVE"},
	{escp.ErrUnsupportedSpacing, http.StatusBadRequest, "UNSUPPORTED_SPACING"},
	{charset.ErrInvalidEncoding, http.StatusBadRequest, "INVALID_ENCODING"},
	{charset.ErrEncodingRange, http.StatusBadRequest, "ENCODING_RANGE"},
	{charset.ErrUnknownCodePage, http.StatusBadRequest, "UNKNOWN_CODE_PAGE"},
	{repository.ErrJobNotFound, http.StatusNotFound, "JOB_NOT_FOUND"},
	{discovery.ErrUnknownScanner, http.StatusBadRequest, "UNKNOWN_SCANNER"},
	{service.ErrNoTransports, http.StatusServiceUnavailable, "NO_TRANSPORTS"},
	{service.ErrTransport, http.StatusBadGateway, "TRANSPORT_FAILURE"},
	{escp.ErrProtocolTable, http.StatusInternalServerError, "PROTOCOL_TABLE"},
}

// classifyError returns the HTTP status and error code for err
func classifyError(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"
}

// respondError writes err as a coded error response
func respondError(c *gin.Context, message string, err error) {
	status, code := classifyError(err)
	utils.CodedErrorResponse(c, status, code, message, err)
}

// respondBindError reports request binding failures, field by field when possible
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Namespace()] = validationMessage(fe)
		}
		utils.ValidationErrorResponse(c, fields)
		return
	}
	utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	case "min":
		return "must have at least " + fe.Param() + " entries"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
