/*
Package observability provides tools for monitoring model builds and submissions.

It turns the lifecycle hooks emitted by the assembler and the committer into
Prometheus metrics and structured log lines, and combines several hook sets into one.
*/
package observability
