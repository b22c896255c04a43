// Package core defines the shared language of the leapodbc system.
//
// This package contains:
//   - Result-set entities (ColumnDescriptor, RawRow, TypedRow)
//   - Driver constants (TypeCode, InfoKey, IdentifierCase)
//   - Collaborator interfaces (Executor, InfoSource, Reconnector)
//   - Configuration types (ConnectionConfig)
//   - The error taxonomy shared by coercion, dialects and the adapter
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
