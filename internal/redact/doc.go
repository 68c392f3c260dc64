// Package redact strips secrets from diff and snapshot text before any of it
// is sent to a remote model endpoint.
//
// Detection is regex-heuristic: key/secret/token assignments, AWS access key
// IDs, bearer tokens, JWTs, private key blocks, and GitHub/OpenAI/Slack
// tokens. Whole files can be withheld by path pattern (e.g. **/.env).
package redact
