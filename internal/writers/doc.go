// Package writers turns annotation and inference results into
// serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (TSV columns, JSON shape).
//   - Core packages stay domain-only; the app stays orchestration-only.
//   - Formats dispatch through a registry so commands share one
//     format-name vocabulary.
package writers
