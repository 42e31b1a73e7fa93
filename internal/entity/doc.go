// Package entity defines the business records managed by clerk and the
// denormalized views materialized from them.
//
// RECORDS:
//
// Every record carries an immutable identifier (uuid.UUID) assigned at
// creation and never reused. Records reference each other by id only:
//
//	Person
//	Location ──outer──▶ Location
//	Organization ──location──▶ Location
//	Employee ──organization──▶ Organization, ──person──▶ Person
//	Job ──client──▶ Organization
//	Job.Timesheets[i] ──employee──▶ Employee
//	Contact(address) ──location──▶ Location
//
// VIEWS:
//
// A view replaces each foreign key with the referenced record's own view,
// so an EmployeeView embeds an OrganizationView which embeds a LocationView
// chain. Views are produced by the records package; this package only
// declares their shape.
//
// NORMALIZATION:
//
// Strings are NFC-normalized and times are truncated to the second in UTC
// before they are persisted, so equality predicates over stored records are
// stable regardless of how the input was typed.
package entity
