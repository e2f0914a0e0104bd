// Package logging builds the agent's slog logger from the logging section of
// the configuration: JSON lines for collectors, or a colourised console
// format for people.
package logging
