/*
Package observability provides Prometheus metrics for validation and merge runs.

Collectors live on a private registry rather than the global default, so
embedding dictshape never collides with a host's own metrics. Short-lived
CLI runs export the registry through WriteTextfile instead of serving it.
*/
package observability
