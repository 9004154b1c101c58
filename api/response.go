package api

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// reply is the status and JSON body of a response before encoding.
type reply struct {
	status int
	body   any
}

// unknownRoute is the state every request starts in. A matched route
// replaces it; an unmatched one is returned as is.
func unknownRoute() reply {
	return reply{
		status: http.StatusBadRequest,
		body:   map[string]string{"Message": "Unknown route"},
	}
}

// errorReply is the single shape used for every failure.
func errorReply(err error) reply {
	return reply{
		status: http.StatusBadRequest,
		body:   map[string]string{"Error:": err.Error()},
	}
}

// success wraps a successful body.
func success(body any) reply {
	return reply{status: http.StatusOK, body: body}
}

// headers returns the headers sent with every response.
func headers() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}

// encode serializes r into an API Gateway proxy response.
func (r reply) encode() (events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(r.body)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: r.status,
		Body:       string(body),
		Headers:    headers(),
	}, nil
}
