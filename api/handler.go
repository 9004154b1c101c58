// Package api provides the API Gateway Lambda handler for the users resource.
package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/usersapi/internal/stamp"
	"github.com/jacentio/usersapi/store"
)

// UserStore is the storage the handler reads and writes.
// *store.Store and *memory.Store both implement it.
type UserStore interface {
	Get(ctx context.Context, id string) (store.Record, error)
	Put(ctx context.Context, rec store.Record) error
	Delete(ctx context.Context, id string) error
	ScanAll(ctx context.Context) ([]store.Record, error)
}

// Handler routes API Gateway proxy requests to user store operations.
type Handler struct {
	users  UserStore
	logger *slog.Logger
	now    func() time.Time
	newID  func() (string, error)
}

// Option configures a Handler.
type Option func(*Handler)

// WithClock sets the time source for the timestamp field.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

// WithIDGenerator sets the generator for userids on create.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(h *Handler) {
		h.newID = newID
	}
}

// NewHandler creates a new users handler.
func NewHandler(users UserStore, logger *slog.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		users:  users,
		logger: logger,
		now:    time.Now,
		newID:  stamp.UserID,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle processes one API Gateway proxy request.
// This function is designed to be used as an AWS Lambda handler. Failures are
// reported in the response, so the returned error is always nil.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	routeKey := RouteKey(req)
	h.logger.Debug("handling request", "routeKey", routeKey)

	res := unknownRoute()
	if err := h.dispatch(ctx, routeKey, req, &res); err != nil {
		h.logger.Error("request failed",
			"routeKey", routeKey,
			"error", err,
		)
		res = errorReply(err)
	}

	resp, err := res.encode()
	if err != nil {
		h.logger.Error("failed to encode response",
			"routeKey", routeKey,
			"error", err,
		)
		// The error body is a map of strings and always encodes.
		resp, _ = errorReply(fmt.Errorf("encode response: %w", err)).encode()
	}
	return resp, nil
}

// dispatch runs the operation for routeKey and stores its result in res.
// An unmatched route leaves res untouched.
func (h *Handler) dispatch(ctx context.Context, routeKey string, req events.APIGatewayProxyRequest, res *reply) error {
	switch routeKey {
	case RouteListUsers:
		records, err := h.users.ScanAll(ctx)
		if err != nil {
			return err
		}
		*res = success(records)

	case RouteGetUser:
		id, err := pathParam(req, PathParamID)
		if err != nil {
			return err
		}
		rec, err := h.users.Get(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			rec = store.Record{}
		} else if err != nil {
			return err
		}
		*res = success(rec)

	case RouteDeleteUser:
		id, err := pathParam(req, PathParamID)
		if err != nil {
			return err
		}
		if err := h.users.Delete(ctx, id); err != nil {
			return err
		}
		*res = success(store.Record{})

	case RouteCreateUser:
		rec, err := decodeBody(req)
		if err != nil {
			return err
		}
		rec[store.KeyTimestamp] = stamp.Timestamp(h.now())
		// Generate unique id if it isn't present in the request
		if !rec.HasUserID() {
			id, err := h.newID()
			if err != nil {
				return fmt.Errorf("generate userid: %w", err)
			}
			rec[store.KeyUserID] = id
		}
		if err := h.users.Put(ctx, rec); err != nil {
			return err
		}
		*res = success(rec)

	case RouteUpdateUser:
		rec, err := decodeBody(req)
		if err != nil {
			return err
		}
		id, err := pathParam(req, PathParamID)
		if err != nil {
			return err
		}
		rec[store.KeyTimestamp] = stamp.Timestamp(h.now())
		rec[store.KeyUserID] = id
		if err := h.users.Put(ctx, rec); err != nil {
			return err
		}
		*res = success(rec)
	}

	return nil
}

// decodeBody parses the request body as a JSON object.
func decodeBody(req events.APIGatewayProxyRequest) (store.Record, error) {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return nil, fmt.Errorf("decode base64 body: %w", err)
		}
		body = decoded
	}

	var rec store.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrBodyNotObject
	}
	return rec, nil
}
