// Package writers turns clustering results into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (FASTA headers, line wrapping).
//   - The clusterer stays domain-only; the app stays orchestration-only.
//   - Output is written in one pass after clustering, so a failed run never
//     leaves a partial file behind.
package writers
