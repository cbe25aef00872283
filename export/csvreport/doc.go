// Package csvreport is a periodic CSV snapshot writer, the reporter
// collaborator spec.md §6 describes and §1 calls out as out of scope for
// the core engine. It is patterned on the original Python implementation's
// reporter.CSVReporter: one file per (name, kind) pair, appended to on
// every tick, with the header written once on file creation.
//
// encoding/csv from the standard library is used deliberately: no repo in
// the example pack reaches for a third-party CSV encoder, and the format
// here is a single flat table with no external encoding or streaming
// concerns a library would meaningfully help with.
package csvreport
