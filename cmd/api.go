package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/cloudflix/flixctl/internal/shared"
)

// APIGet performs a raw GET against the API and prints the response body.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path is required", shared.ErrMissingArgument)
	}

	resp, err := r.client.Get(ctx, path)
	if err != nil {
		return err
	}

	return r.writeRawBody(resp.Body, cmd.Bool("pretty"))
}

// APIPost performs a raw POST with a JSON body from --data or stdin.
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path is required", shared.ErrMissingArgument)
	}

	data := []byte(cmd.String("data"))
	if len(data) == 0 {
		stdin, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read request body: %w", err)
		}
		data = stdin
	}

	if len(data) > 0 && !json.Valid(data) {
		return fmt.Errorf("%w: request body is not valid JSON", shared.ErrInvalidInput)
	}

	resp, err := r.client.Post(ctx, path, json.RawMessage(data))
	if err != nil {
		return err
	}

	return r.writeRawBody(resp.Body, cmd.Bool("pretty"))
}

func (r *Runner) writeRawBody(body []byte, pretty bool) error {
	if pretty && json.Valid(body) {
		var buf bytes.Buffer
		if err := json.Indent(&buf, body, "", "  "); err == nil {
			body = buf.Bytes()
		}
	}

	if _, err := r.output.Write(body); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	_, err := r.output.Write([]byte("\n"))
	return err
}
