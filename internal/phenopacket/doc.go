// Package phenopacket loads and validates per-sample phenopacket JSON
// documents: the sample identifier under subject.id and the VCF file name
// referenced by the first htsFiles entry.
//
// Validation is fail-fast by design: one malformed record aborts the whole
// cohort rather than silently processing an incomplete one.
package phenopacket
