// Package jobs turns a resolved cohort table into per-sample job
// descriptors: the container image, command lines, localized inputs and
// output destinations a batch execution service needs to run LIRICAL on
// each sample. Descriptors are emitted, never executed here.
package jobs
