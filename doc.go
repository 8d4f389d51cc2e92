// Package smacread reads the output artifacts written by SMAC, the
// sequential model-based algorithm configuration tool, into plain Go data.
//
// A SMAC state-run folder holds several file formats:
//
//   - live-rundata-xx.json: a stream of JSON objects concatenated
//     back-to-back, read incrementally by DocumentParser
//   - runs_and_results-*.csv: a numeric run log, read by ReadRunsAndResults
//   - paramstrings-*.txt: one configuration per line, read by
//     ReadParamStrings
//   - validationCallStrings-*.csv: quoted call strings, read by
//     ReadValidationCallStrings
//   - validationObjectiveMatrix-*.csv: per-configuration objective values,
//     read by ReadValidationObjectiveMatrix
//   - instance and instance feature lists, read by ReadInstances and
//     ReadInstanceFeatures
//
// Files with a ".gz" suffix are decompressed transparently.
//
// The package is organized into several sub-packages:
//
//   - encoding/json: incremental JSON decoder producing token streams
//   - token: JSON token types and stream abstractions
//   - iterator: value-based iteration over token streams
//
// The CLI utility in cmd/smacread dumps any of these artifacts as JSON. You
// can install it with:
//
//	go install github.com/mfeurer/smacread/cmd/smacread
package smacread
