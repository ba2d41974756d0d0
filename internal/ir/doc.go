// Package ir provides the constrained value types shared by the event codec
// and the query layer.
//
// ir imports nothing internal; every other package may import it.
//
// Key design constraints:
//   - NO float types anywhere - every number in this domain is an int64 key
//   - Empty string and zero int are "unset" (see IsZero); filters and
//     optional record keys rely on that
//   - All object keys are snake_case column or field names
package ir
