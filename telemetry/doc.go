// Package telemetry provides an OpenTelemetry TracerProvider backed by
// structured logging. It is intended for development and single-process
// deployments where a full trace collector is not available: spans recorded
// by the registry show up directly in the process log.
package telemetry
