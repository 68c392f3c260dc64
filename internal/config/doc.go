// Package config builds the critic configuration value object.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (OPENAI_API_KEY, CRITIC_MODEL, MAX_CONTEXT_CHARS, etc.)
//  3. A .env file in the working directory (loaded via godotenv)
//  4. Built-in defaults
//
// The resulting [Config] is constructed once at process start and passed into
// each component; no component reads the environment afterwards.
package config
