package node

import "errors"

// The package distinguishes two failure taxonomies. Malformed external input
// (dependency strings, expression templates, function sources) is reported
// through error values so callers can reject the offending declaration or
// abort construction. Local invariant breaks, such as supplying the wrong
// number of arguments to a function evaluator or attaching a non-void entry
// point, indicate a bug in a node implementation or in the caller's wiring
// and panic instead; they are never retried or silently patched.

// ErrDepParse indicates a dependency string did not match the
// "<name> = <source>" form expected by ParseDep.
var ErrDepParse = errors.New("malformed dependency descriptor")

// ErrBadExpr indicates an expression template could not be parsed as a Go
// expression once its input placeholders were substituted.
var ErrBadExpr = errors.New("malformed expression template")

// ErrUnknownKind indicates a Definition named a node kind with no decoder
// registered in the Registry.
var ErrUnknownKind = errors.New("unknown node kind")

// ErrDuplicateKind indicates an attempt to register a node kind that the
// Registry already has a decoder for.
var ErrDuplicateKind = errors.New("node kind already registered")

// ErrNotSerializable indicates Encode was given a node whose kind does not
// implement Marshaler and therefore has no serial form.
var ErrNotSerializable = errors.New("node kind is not serializable")
