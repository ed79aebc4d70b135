// Package config loads the application settings from a .env file and the
// process environment, and provides the interactive setup that writes the
// file.
//
// Values from the process environment take precedence over the file. Only
// the two API keys are required; every other setting has a default.
package config
