// Package opday computes property-local operational days.
//
// A property's business day does not start at local midnight: it runs from
// 06:00:00.000 local time to 05:59:59.999 local time on the following
// calendar date. Night counts, arrival/departure sheets and the night audit
// are all keyed by this operational date rather than the civil date.
//
// Everything in this package is a pure function of its inputs. The only
// collaborator is a Resolver that turns an IANA timezone name into a
// *time.Location; the default resolves against the IANA database embedded in
// the binary, and tests can substitute fixed tables.
package opday
