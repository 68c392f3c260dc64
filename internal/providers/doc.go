// Package providers implements the Reviewer interface for each supported
// model endpoint.
//
// Supported providers: OpenAI (default) and Ollama / LM Studio for local
// models, both speaking the chat-completions wire format. Endpoints are
// overridable via CRITIC_BASE_URL so tests can redirect calls to local
// httptest servers.
//
// Every provider makes exactly one attempt per run. Failures surface as
// [*RemoteError]; a missing credential surfaces as [config.ErrMissingAPIKey]
// before any I/O happens.
package providers
