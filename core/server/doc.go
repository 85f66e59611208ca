// Package server holds the HTTP server configuration and constants.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structures and the public paths that bypass
// API key authentication.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key and the request body
// limit used for catalog refresh uploads.
package server
