/*
Package ports defines the driven ports (interfaces) of the compartments toolkit.

These interfaces decouple model assembly from external implementations, allowing
the engine to work with various rate analyzers, storage backends and submission
targets.

# Key Interfaces

  - BlockResolver: Resolves a block name into transitions (see package catalog).
  - RateAnalyzer: Extracts identifiers from a rate expression (see package rate).
  - ModelSink: Receives built models, one at a time.
  - ModelStore: Persists built models by key (memory, redis, loam).
  - DistributedLocker: Serializes commit batches across processes.
*/
package ports
