// Package shared provides common utilities and test helpers used
// across the SleepPulse codebase. It holds only generic functionality
// that belongs to no specific domain layer; business logic stays in
// the domain packages.
package shared
