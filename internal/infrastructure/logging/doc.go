// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing, optionally sampled
//   - Development: colored console output, debug level
//
// Components take a *zap.Logger and pass it through Component, which names
// it after them (window, sandbox, remote, assets, render, canvas) and
// tolerates nil. Generated script text is only logged at debug level.
//
// Example Usage:
//
//	logger, err := logging.New(logging.Config{Level: "info", OnEntry: metrics.RecordLogEntry})
//	if err != nil {
//		return err
//	}
//	log := logging.Component(logger.Logger, "render")
//	log.Error("Frame aborted", zap.Error(err))
package logging
