// Package checksum computes stable digests of run inputs. The cohort digest
// stamped on job descriptors lets reruns over an identical sample → VCF
// mapping be recognized as such.
package checksum
