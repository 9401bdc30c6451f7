// Package logging configures log/slog for the daily CLI.
//
// Records go to stderr so that stdout carries only resolved paths. The
// default text handler prints a compact colored line on terminals; JSON is
// available with --log-format json, and --log-file adds a JSON sink.
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(2),
//		Format: logging.FormatText,
//	})
//	logger.Debug("resolved root", "path", root)
//
// Commands retrieve the configured logger with [FromContext].
package logging
