package routing

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lloydmeta/esversions/internal/api/models/common"
	"github.com/lloydmeta/esversions/internal/config"
)

var RequestIdHeaderKey = "X-Request-Id"

var requestIdContextKey = "request_id"

var notFoundErr = common.ApiError{
	StatusCode: http.StatusNotFound,
	Body: common.Body{
		Message: "No such route.",
	},
}

var noMethodErr = common.ApiError{
	StatusCode: http.StatusMethodNotAllowed,
	Body: common.Body{
		Message: "No such route.",
	},
}

func NewTopLevelRoutesGroup(auth *config.Auth, ginEngine *gin.Engine) *gin.RouterGroup {

	accounts := make(gin.Accounts)
	if auth != nil {
		for _, bAuthUser := range auth.BasicAuth {
			accounts[bAuthUser.Name] = bAuthUser.Password
		}
	}

	var routerGroup *gin.RouterGroup
	if len(accounts) > 0 {
		routerGroup = ginEngine.Group("", gin.BasicAuth(accounts))
	} else {
		routerGroup = ginEngine.Group("")
	}

	return routerGroup
}

// RequestId makes sure every request has an id, reusing the one sent by the client if there is one,
// and echoes it back in the response headers
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader(RequestIdHeaderKey)
		if len(requestId) == 0 {
			requestId = uuid.New().String()
		}
		c.Set(requestIdContextKey, requestId)
		c.Header(RequestIdHeaderKey, requestId)
		c.Next()
	}
}

func NoRoute(c *gin.Context) {
	HandleApiErr(c, &notFoundErr)
}

func NoMethod(c *gin.Context) {
	HandleApiErr(c, &noMethodErr)
}

func HandleApiErr(c *gin.Context, apiError *common.ApiError) {
	body := apiError.Body
	body.RequestId = c.GetString(requestIdContextKey)
	c.JSON(apiError.StatusCode, body)
}

func HandleJsonSerdesErr(c *gin.Context, err error) {
	HandleBadRequest(c, err)
}

func HandleBadRequest(c *gin.Context, err error) {
	errResp := common.ApiError{
		StatusCode: http.StatusBadRequest,
		Body: common.Body{
			Message: err.Error(),
		},
	}
	HandleApiErr(c, &errResp)
}
