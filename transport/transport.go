// Package transport implements the line-delimited JSON-RPC 2.0 adapter:
// one request read, dispatched, and answered per line, strictly in
// receipt order. A line that isn't valid JSON is a malformed payload
// and gets an error envelope, not a crash; a read failure on the
// underlying stream and a failure to encode or write a response are the
// only fatal conditions.
//
// The request/response/error shapes mirror standard JSON-RPC 2.0.
package transport

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/jsphweid/scoretool/model"
)

// Handler dispatches one named tool call to its typed arguments.
type Handler interface {
	Dispatch(tool string, params json.RawMessage) (any, error)
}

// Request is one JSON-RPC request line.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is one JSON-RPC response line; exactly one of Result or Error
// is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is a JSON-RPC error object. Code uses the JSON-RPC "server
// error" range for every domain failure; the specific kind travels in
// Data["code"] so clients can branch on it without parsing Message.
type RPCError struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

const parseErrorCode = -32700
const internalErrorCode = -32603
const applicationErrorCode = -32000

const maxLineSize = 10 * 1024 * 1024

// Serve reads newline-delimited JSON-RPC requests from r, dispatches
// each to h, and writes newline-delimited responses to w. Exactly one
// request is in flight at a time. It returns nil at EOF and a non-nil
// error only on a transport-level fault: a read failure on r or a
// failure to encode or write a response to w.
func Serve(r io.Reader, w io.Writer, h Handler, logger *slog.Logger) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := handleLine(line, w, h, logger); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}
	return scanner.Err()
}

// handleLine processes one request line. Its only possible error is a
// failure to encode or write the response to w, which terminates the
// server; a malformed payload is reported back to the client instead of
// propagated.
func handleLine(line []byte, w io.Writer, h Handler, logger *slog.Logger) error {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		logger.Warn("malformed request payload", "error", err)
		return writeResponse(w, Response{
			JSONRPC: "2.0",
			Error:   &RPCError{Code: parseErrorCode, Message: fmt.Sprintf("parse error: %v", err)},
		}, logger)
	}

	result, err := h.Dispatch(req.Method, req.Params)
	if err != nil {
		logger.Info("tool call failed", "method", req.Method, "error", err)
		return writeResponse(w, Response{JSONRPC: "2.0", ID: req.ID, Error: toRPCError(err)}, logger)
	}

	logger.Debug("tool call succeeded", "method", req.Method)
	return writeResponse(w, Response{JSONRPC: "2.0", ID: req.ID, Result: result}, logger)
}

func toRPCError(err error) *RPCError {
	if e, ok := model.AsError(err); ok {
		data := map[string]any{"code": string(e.Code)}
		for k, v := range e.Data {
			data[k] = v
		}
		return &RPCError{Code: applicationErrorCode, Message: e.Message, Data: data}
	}
	return &RPCError{Code: internalErrorCode, Message: err.Error()}
}

func writeResponse(w io.Writer, resp Response, logger *slog.Logger) error {
	encoded, err := json.Marshal(resp)
	if err != nil {
		logger.Error("failed to encode response", "error", err)
		return err
	}
	encoded = append(encoded, '\n')
	_, err = w.Write(encoded)
	return err
}
