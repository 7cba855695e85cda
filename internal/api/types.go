package api

import (
	"errors"
	"fmt"
)

// Container is one entry of GET /api/containers
type Container struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Command     string `json:"command"`
	Status      string `json:"status"`
	PID         string `json:"pid"` // "-" when nothing is running
	Uptime      string `json:"uptime"`
	Resources   string `json:"resources"` // "100MB/50%"
	CPU         string `json:"cpu"`
	LastStarted string `json:"last_started"`
	LatestLog   string `json:"latest_log"`
}

// CreateSpec is the body of POST /api/containers
type CreateSpec struct {
	Name     string            `json:"name"`
	Command  string            `json:"command"`
	MemLimit int               `json:"mem_limit,omitempty"` // MB
	CPULimit int               `json:"cpu_limit,omitempty"` // percent
	Volumes  []string          `json:"volumes,omitempty"`
	EnvVars  map[string]string `json:"env_vars,omitempty"`
}

type createResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

type actionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type logsResponse struct {
	Logs string `json:"logs"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ============================================================================
// Errors
// ============================================================================

// TransportError means the request never produced a usable answer
// (connection refused, timeout, undecodable body).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RejectionError is a structured refusal from the server. Message is shown as-is.
type RejectionError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *RejectionError) Error() string {
	return e.Message
}

func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func IsRejection(err error) bool {
	var re *RejectionError
	return errors.As(err, &re)
}
