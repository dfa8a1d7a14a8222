// Package logx configures hwidctl's structured logging.
//
// This repo uses a small wrapper (logx.Logger) on top of zerolog to keep:
//   - Console output readable (short timestamp + short caller)
//   - File output JSON-structured
//
// The plain-text operation log the tool writes for operators is a separate
// concern (internal/oplog); logx carries the structured debug trail.
package logx
