// Package response writes the wire shapes the HRMS Lite API contract
// defines: success bodies are plain resources, failures carry a "detail"
// field holding either a message string or a list of field errors.
package response

import (
	"github.com/gin-gonic/gin"

	"github.com/aadesh1214/hrms-lite/internal/shared/apperror"
)

type detailEnvelope struct {
	Detail any `json:"detail"`
}

// JSON writes a success body as-is.
func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// Detail writes a business-rule rejection: {"detail": "<message>"}.
func Detail(c *gin.Context, status int, detail string) {
	c.JSON(status, detailEnvelope{Detail: detail})
}

// FieldErrors writes a schema-validation rejection:
// {"detail": [{"loc": ["body", "<field>"], "msg": "..."}, ...]}.
func FieldErrors(c *gin.Context, status int, errs []apperror.FieldError) {
	c.JSON(status, detailEnvelope{Detail: errs})
}
