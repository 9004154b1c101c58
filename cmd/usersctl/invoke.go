package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spf13/cobra"

	"github.com/jacentio/usersapi/api"
	"github.com/jacentio/usersapi/internal/config"
	"github.com/jacentio/usersapi/store"
	"github.com/jacentio/usersapi/store/memory"
)

type invokeOptions struct {
	method   string
	resource string
	params   map[string]string
	body     string
	table    string
	memory   bool
	verbose  bool
}

func newInvokeCmd() *cobra.Command {
	opts := &invokeOptions{}

	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Send one API Gateway proxy request through the handler",
		Example: `  usersctl invoke --method GET --resource /users
  usersctl invoke --method PUT --resource '/users/{id}' --param id=abc123 --body '{"name":"Bob"}'
  usersctl invoke --memory --method POST --resource /users --body @user.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := opts.userStore(cmd.Context())
			if err != nil {
				return err
			}
			return runInvoke(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), users, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.method, "method", "GET", "HTTP method")
	f.StringVar(&opts.resource, "resource", "/users", "resource path template, e.g. /users/{id}")
	f.StringToStringVar(&opts.params, "param", nil, "path parameter as name=value (repeatable)")
	f.StringVar(&opts.body, "body", "", "request body, or @file to read it from a file")
	f.StringVar(&opts.table, "table", "", "DynamoDB table (default: USERS_TABLE)")
	f.BoolVar(&opts.memory, "memory", false, "use an empty in-memory store instead of DynamoDB")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log handler activity to stderr")

	return cmd
}

// userStore builds the store the request runs against.
func (o *invokeOptions) userStore(ctx context.Context) (api.UserStore, error) {
	if o.memory {
		return memory.New(), nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	storeCfg := cfg.StoreConfig()
	if o.table != "" {
		storeCfg.Table = o.table
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	client := dynamodb.NewFromConfig(awsCfg, func(opt *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			opt.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
	return store.New(client, storeCfg), nil
}

// request builds the proxy request described by the flags.
func (o *invokeOptions) request() (events.APIGatewayProxyRequest, error) {
	body := o.body
	if strings.HasPrefix(body, "@") {
		data, err := os.ReadFile(strings.TrimPrefix(body, "@"))
		if err != nil {
			return events.APIGatewayProxyRequest{}, fmt.Errorf("read body: %w", err)
		}
		body = string(data)
	}

	path := o.resource
	for name, value := range o.params {
		path = strings.ReplaceAll(path, "{"+name+"}", value)
	}

	return events.APIGatewayProxyRequest{
		HTTPMethod:     strings.ToUpper(o.method),
		Resource:       o.resource,
		Path:           path,
		PathParameters: o.params,
		Body:           body,
	}, nil
}

func runInvoke(ctx context.Context, out, errOut io.Writer, users api.UserStore, opts *invokeOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := opts.request()
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))

	resp, err := api.NewHandler(users, logger).Handle(ctx, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
