// Package records reads user record sets and looks records up by identifier.
//
// A record set is a JSON array of objects read fresh from its Source on every
// call. Records keep their raw JSON so field order survives into every
// representation built from them.
package records
