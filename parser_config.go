package sdf

import (
	"log/slog"

	"github.com/robosim/sdf/errors"
)

// EnforcementPolicy decides what happens to a recoverable problem found
// while reading a document.
type EnforcementPolicy int

const (
	// PolicyErr promotes the problem to an entry in the error list.
	PolicyErr EnforcementPolicy = iota
	// PolicyWarn logs the problem at warning level and continues.
	PolicyWarn
	// PolicyLog logs the problem at debug level and continues.
	PolicyLog
)

// ParserConfig carries the options for reading documents. The zero value
// promotes every recoverable problem to an error; DefaultParserConfig
// relaxes warnings and unrecognized content to logging.
type ParserConfig struct {
	// WarningsPolicy governs recoverable warnings in general.
	WarningsPolicy EnforcementPolicy
	// UnrecognizedElementsPolicy governs elements and attributes the
	// schema does not describe. Such content is preserved in the tree
	// unless this policy promotes it to an error.
	UnrecognizedElementsPolicy EnforcementPolicy
	// Logger receives warnings under the logging policies. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// DefaultParserConfig returns the standard reading options.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		WarningsPolicy:             PolicyWarn,
		UnrecognizedElementsPolicy: PolicyLog,
		Logger:                     slog.Default(),
	}
}

func (c ParserConfig) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// addRecoverableWarning routes a recoverable problem according to policy:
// appended to the error list under PolicyErr, logged otherwise. It
// returns the possibly extended error list.
func addRecoverableWarning(policy EnforcementPolicy, cfg ParserConfig, err errors.Error, errs errors.Errors) errors.Errors {
	switch policy {
	case PolicyErr:
		return errors.Append(errs, err)
	case PolicyWarn:
		cfg.logger().Warn(err.Message, warningAttrs(err)...)
	default:
		cfg.logger().Debug(err.Message, warningAttrs(err)...)
	}
	return errs
}

func warningAttrs(err errors.Error) []any {
	attrs := []any{slog.String("code", string(err.Code))}
	if err.FilePath != "" {
		attrs = append(attrs, slog.String("file", err.FilePath))
	}
	if err.LineNumber > 0 {
		attrs = append(attrs, slog.Int("line", err.LineNumber))
	}
	if err.XMLPath != "" {
		attrs = append(attrs, slog.String("xmlPath", err.XMLPath))
	}
	return attrs
}
