/*
Package observability turns simulation lifecycle hooks into Prometheus
metrics and structured log records.

A Collector registers its metrics against a prometheus.Registerer and exposes
domain.LifecycleHooks that count every dispatched pulse by level and every
settled trigger. Hooks from several sources can be merged with Combine.
*/
package observability
