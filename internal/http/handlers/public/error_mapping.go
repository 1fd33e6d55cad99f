package public

import (
	"errors"

	handlershared "github.com/lepanier/lepanier-api/internal/http/handlers/shared"
	"github.com/lepanier/lepanier-api/internal/http/response"
	"github.com/lepanier/lepanier-api/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a business error onto an API error response.
type mappedHandlerError struct {
	target  error
	code    int
	message string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			handlershared.RespondError(c, rule.code, rule.message, nil)
			return
		}
	}
	handlershared.RespondError(c, fallbackCode, fallbackMsg, err)
}

var deliveryQueryErrorRules = []mappedHandlerError{
	{target: service.ErrDeliveryMethodInvalid, code: response.CodeBadRequest, message: "delivery method invalid"},
	{target: service.ErrCartTotalInvalid, code: response.CodeBadRequest, message: "cart total invalid"},
	{target: service.ErrZoneNotFound, code: response.CodeNotFound, message: "delivery zone not found"},
}

var orderCreateErrorRules = []mappedHandlerError{
	{target: service.ErrDeliveryMethodInvalid, code: response.CodeBadRequest, message: "delivery method invalid"},
	{target: service.ErrDeliveryDateInvalid, code: response.CodeBadRequest, message: "delivery date invalid"},
	{target: service.ErrDeliveryMinimumNotReached, code: response.CodeBadRequest, message: "minimum order not reached"},
	{target: service.ErrAddressIncomplete, code: response.CodeBadRequest, message: "delivery address incomplete"},
	{target: service.ErrStationNotFound, code: response.CodeNotFound, message: "railway station not found"},
	{target: service.ErrStoreNotFound, code: response.CodeNotFound, message: "store not found"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, message: "cart is empty"},
	{target: service.ErrInvalidOrderItem, code: response.CodeBadRequest, message: "order item invalid"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, message: "quantity invalid"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, message: "product not found"},
}

var userAuthErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, message: "email address invalid"},
	{target: service.ErrPasswordTooShort, code: response.CodeBadRequest, message: "password too short"},
	{target: service.ErrEmailTaken, code: response.CodeBadRequest, message: "email already registered"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, message: "invalid credentials"},
	{target: service.ErrUserDisabled, code: response.CodeForbidden, message: "account disabled"},
}

func respondDeliveryQueryError(c *gin.Context, err error) {
	respondWithMappedError(c, err, deliveryQueryErrorRules, response.CodeInternal, "delivery lookup failed")
}

func respondOrderCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderCreateErrorRules, response.CodeInternal, "order create failed")
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart operation failed")
}

func respondUserAuthError(c *gin.Context, err error) {
	respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "authentication failed")
}
