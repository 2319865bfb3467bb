// Package domain models the garden planner's location, advisory and planting data.
//
// # Locations
//
// A location is an Australian state or territory plus a city. States are
// identified by their postal abbreviation:
//
//	NSW  New South Wales         VIC  Victoria
//	QLD  Queensland              WA   Western Australia
//	SA   South Australia         TAS  Tasmania
//	ACT  Australian Capital Territory
//	NT   Northern Territory
//
// Every [Location] carries a [ClimateZone] derived from its state and city by
// the location resolver. The zone is never supplied by a caller.
//
// # Climate zones
//
// Six coarse classifications select default plant candidates:
//
//	tropical | subtropical | arid | warm temperate | cool temperate | alpine
//
// "cool temperate" is the fallback for a state with no recorded zone.
//
// # Months
//
// Months are lower-case English names ("january" .. "december"). Reference
// tables are keyed by the same names. [ParseMonth] accepts full names and
// three-letter abbreviations in any case.
//
// # Advisories
//
// An [AdvisoryRecord] holds three lists of free text: mistakes, warnings and
// common errors. Entries may follow a "title - detail" layout; splitting them
// is a presentation concern. The lists are never nil. An empty list means the
// table has nothing to say for that category.
//
// # Weekly plans
//
// A [WeeklyPlan] always has four [WeekBucket] values. When a month has at least
// one sow candidate, every bucket holds at least the configured minimum of sow
// items, padded by repeating candidates if the pool is small. The same holds for
// plant items only when plant candidates exist at all. An empty plant list in
// every bucket is the "not recommended" signal.
package domain
