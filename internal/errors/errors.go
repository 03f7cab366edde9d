// Package errors holds Shield's structured error type. An Error names the
// failing operation and a coarse Kind; gateway failures also carry the
// endpoint and, for non-2xx replies, the HTTP status. Kinds are recorded in
// the log. Feature code shows one notice for any gateway failure.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Op names an operation as "package.Function".
type Op string

// Kind is the failure category.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInvalid      // bad input, before anything was sent
	KindNetwork      // the request never got a reply
	KindStatus       // the server replied with a non-2xx status
	KindDecode       // the reply body did not match the schema
	KindConfig       // the config file could not be read or written
)

var kindNames = [...]string{
	KindUnknown: "unknown",
	KindInvalid: "invalid input",
	KindNetwork: "network",
	KindStatus:  "bad status",
	KindDecode:  "malformed reply",
	KindConfig:  "config",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// Endpoint is the gateway endpoint a request was made to, e.g. "chat".
type Endpoint string

// Error is the structured error used across Shield.
type Error struct {
	Op       Op
	Kind     Kind
	Endpoint Endpoint // empty outside the gateway
	Status   int      // HTTP status for KindStatus
	Detail   string
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Op))
	if e.Endpoint != "" {
		fmt.Fprintf(&b, " %s", e.Endpoint)
	}
	if e.Status != 0 {
		fmt.Fprintf(&b, " (%d)", e.Status)
	}
	for _, part := range []string{e.Detail, e.cause()} {
		if part == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(part)
	}
	return b.String()
}

func (e *Error) cause() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// E builds an Error from its parts in any order: an Op, a Kind, an
// Endpoint, a string detail and an underlying error.
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case Endpoint:
			e.Endpoint = a
		case string:
			e.Detail = a
		case error:
			e.Err = a
		default:
			panic(fmt.Sprintf("errors.E: unexpected argument %T", arg))
		}
	}
	return e
}

// Is reports whether err, or anything it wraps, is an Error of kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind && err != nil
}

// GetKind returns the Kind of the outermost Error in err's chain.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

const gatewayPost Op = "gateway.Post"

func GatewayEncode(endpoint string, err error) error {
	return E(gatewayPost, KindInvalid, Endpoint(endpoint), "encode request", err)
}

func GatewayTransport(endpoint string, err error) error {
	return E(gatewayPost, KindNetwork, Endpoint(endpoint), err)
}

// GatewayStatus records a non-2xx reply. body is the start of the reply,
// kept for the log.
func GatewayStatus(endpoint string, status int, body string) error {
	e := E(gatewayPost, KindStatus, Endpoint(endpoint), strings.TrimSpace(body)).(*Error)
	e.Status = status
	return e
}

func GatewayDecode(endpoint string, err error) error {
	return E(gatewayPost, KindDecode, Endpoint(endpoint), "decode reply", err)
}

func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, path, err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, path, err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}
