// Package logger provides the module's structured logging wrapper over
// Uber's Zap. All packages log through the Logger's msg/err/fields
// convention; NewNop supplies a silent default for embedders that wire no
// logging.
package logger
