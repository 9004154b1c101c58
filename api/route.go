package api

import (
	"fmt"

	"github.com/aws/aws-lambda-go/events"
)

// Route keys recognised by the handler. Matching is on the API Gateway
// resource template, not the resolved path.
const (
	RouteListUsers  = "GET /users"
	RouteGetUser    = "GET /users/{id}"
	RouteDeleteUser = "DELETE /users/{id}"
	RouteCreateUser = "POST /users"
	RouteUpdateUser = "PUT /users/{id}"
)

// PathParamID is the path parameter holding the userid in /users/{id}.
const PathParamID = "id"

// RouteKey returns "<METHOD> <resource-template>" for a request.
func RouteKey(req events.APIGatewayProxyRequest) string {
	return req.HTTPMethod + " " + req.Resource
}

// pathParam returns a non-empty path parameter or ErrMissingPathParameter.
func pathParam(req events.APIGatewayProxyRequest, name string) (string, error) {
	v := req.PathParameters[name]
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingPathParameter, name)
	}
	return v, nil
}
