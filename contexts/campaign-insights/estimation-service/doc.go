// Package estimationservice contains the Sherpa campaign performance
// estimation engine: deterministic forecast, budget allocation, and match
// quality calculators behind a snapshot-persisting application service.
//
// The module keeps domain/application logic decoupled from runtime/platform
// concerns through ports and adapter composition.
package estimationservice
