/*
Package generator talks to the remote PDF rendering backend.

# Overview

The backend compiles documents to PDF and may need 10-30 seconds to
cold-start after idling. The client absorbs that in two ways:

  - Warmup (warmup): a cheap GET /api/health probe with a short
    timeout, issued when the editor starts. Its only job is to trigger
    backend initialization early; its outcome is ignored. Concurrent
    warmups collapse into a single request.
  - Export: POST /api/generate-pdf with the serialized document and a
    long request timeout. The request is cancellable via context.

# Failure classification

  - ErrBackendUnreachable: transport errors, timeouts and aborts.
    Retryable; the backend may simply still be starting.
  - BackendError: the backend answered with a non-success status.
    Carries the backend's message and detail when it sent any.

Each export request moves through IDLE -> IN_FLIGHT -> SUCCESS or
FAILURE; the last state is observable through State for callers and
tests. The client holds no server-side session state, so exporting the
same document twice is safe and yields independent artifacts.
*/
package generator
