package jobs

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/seqops/liribatch/internal/checksum"
	"github.com/seqops/liribatch/pkg/liribatch"
)

const (
	// LiricalImage is the pinned container image LIRICAL runs in.
	LiricalImage = "weisburd/lirical@sha256:8f056f67153e4d873c27508fb9effda9c8fa0a1f2dc87777a58266fed4f8c82b"

	// Per-sample resource requests for the execution service.
	DefaultCPU     = 2
	DefaultMemory  = "highmem"
	DefaultStorage = "70Gi"

	// localInputDir is where the execution service localizes cloud inputs
	// inside the container.
	localInputDir = "/io/inputs"
)

// phenopacketSuffixRe strips the metadata-file suffix when deriving the
// output prefix, so S1.phenopacket.json and S1.json both yield S1.
var phenopacketSuffixRe = regexp.MustCompile(`(\.phenopacket)?\.json$`)

// vcfCompressedSuffixRe strips the compression extension when deriving the
// in-container VCF name.
var vcfCompressedSuffixRe = regexp.MustCompile(`(\.bgz|\.gz)$`)

// OutputPrefix derives the deterministic output-path prefix for a
// phenopacket: its basename with the metadata-file suffix stripped.
func OutputPrefix(phenopacketPath string) string {
	return phenopacketSuffixRe.ReplaceAllString(path.Base(phenopacketPath), "")
}

// Input is one cloud object the execution service localizes before the
// job's commands run.
type Input struct {
	CloudPath string `json:"cloud_path"`
	LocalPath string `json:"local_path"`
}

// Output is one file the execution service delocalizes after the job's
// commands finish.
type Output struct {
	LocalPath string `json:"local_path"`
	CloudPath string `json:"cloud_path"`
}

// Descriptor fully describes one per-sample LIRICAL job.
type Descriptor struct {
	RunID        string   `json:"run_id"`
	CohortDigest string   `json:"cohort_digest"`
	SampleID     string   `json:"sample_id"`
	Name         string   `json:"name"`
	Image        string   `json:"image"`
	CPU          int      `json:"cpu"`
	Memory       string   `json:"memory"`
	Storage      string   `json:"storage"`
	Inputs       []Input  `json:"inputs"`
	Commands     []string `json:"commands"`
	Outputs      []Output `json:"outputs"`
}

// Options are the run-level settings shared by every descriptor.
type Options struct {
	OutputDir       string
	LiricalDataDir  string
	ExomiserDataDir string
	MinDiff         *int
	Threshold       *float64
	TranscriptDB    string
	Orphanet        bool
	UseGlobal       bool
}

// Builder emits descriptors for one resolved cohort. The run id and cohort
// digest are fixed at construction so every descriptor of a run carries the
// same identifiers.
type Builder struct {
	opts   Options
	runID  string
	digest string
}

// NewBuilder creates a Builder for the given cohort table.
func NewBuilder(opts Options, entries []liribatch.ResolvedEntry) *Builder {
	return &Builder{
		opts:   opts,
		runID:  uuid.NewString(),
		digest: CohortDigest(entries),
	}
}

// CohortDigest fingerprints a resolved table: the digest changes whenever a
// sample, phenopacket path or VCF path changes, and is stable otherwise.
func CohortDigest(entries []liribatch.ResolvedEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.SampleID+"\t"+e.PhenopacketPath+"\t"+e.VCFPath)
	}
	return checksum.New().SumLines(lines)
}

// BuildAll emits one descriptor per entry, in table order.
func (b *Builder) BuildAll(entries []liribatch.ResolvedEntry) []Descriptor {
	descriptors := make([]Descriptor, 0, len(entries))
	for _, entry := range entries {
		descriptors = append(descriptors, b.Build(entry))
	}
	return descriptors
}

// Build emits the job descriptor for one resolved sample.
func (b *Builder) Build(entry liribatch.ResolvedEntry) Descriptor {
	phenopacketLocal := localize(entry.PhenopacketPath)
	vcfLocal := localize(entry.VCFPath)
	liricalDataLocal := localize(b.opts.LiricalDataDir)
	exomiserDataLocal := localize(b.opts.ExomiserDataDir)

	commands := []string{
		"cd /io/",
		"set -ex",
		fmt.Sprintf("ln -s %s data", liricalDataLocal),
	}
	commands = append(commands, vcfCommand(entry.VCFPath, vcfLocal))
	commands = append(commands, b.liricalCommand(phenopacketLocal, exomiserDataLocal))

	outputPrefix := joinCloudPath(b.opts.OutputDir, OutputPrefix(entry.PhenopacketPath)+".lirical")

	return Descriptor{
		RunID:        b.runID,
		CohortDigest: b.digest,
		SampleID:     entry.SampleID,
		Name:         "LIRICAL: " + entry.SampleID,
		Image:        LiricalImage,
		CPU:          DefaultCPU,
		Memory:       DefaultMemory,
		Storage:      DefaultStorage,
		Inputs: []Input{
			{CloudPath: entry.PhenopacketPath, LocalPath: phenopacketLocal},
			{CloudPath: entry.VCFPath, LocalPath: vcfLocal},
			{CloudPath: b.opts.LiricalDataDir, LocalPath: liricalDataLocal},
			{CloudPath: b.opts.ExomiserDataDir, LocalPath: exomiserDataLocal},
		},
		Commands: commands,
		Outputs: []Output{
			{LocalPath: "lirical.html", CloudPath: outputPrefix + ".html"},
			{LocalPath: "lirical.tsv", CloudPath: outputPrefix + ".tsv"},
		},
	}
}

// vcfCommand places the VCF at the container root under the name the
// phenopacket's file:/// uri expects. Compressed VCFs are decompressed and
// rows with DP="NA" fields are filtered out to work around a LIRICAL parse
// failure on such rows.
func vcfCommand(vcfPath, vcfLocal string) string {
	base := path.Base(vcfPath)
	if strings.HasSuffix(vcfPath, "gz") {
		unzipped := vcfCompressedSuffixRe.ReplaceAllString(base, "")
		return fmt.Sprintf("gunzip -c %s | grep -v :NA: > /%s", vcfLocal, unzipped)
	}
	return fmt.Sprintf("ln -s %s /%s", vcfLocal, base)
}

// liricalCommand renders the LIRICAL invocation with the run's options.
func (b *Builder) liricalCommand(phenopacketLocal, exomiserDataLocal string) string {
	cmd := fmt.Sprintf("java -jar /LIRICAL.jar P -p %s -e %s --tsv", phenopacketLocal, exomiserDataLocal)
	if b.opts.UseGlobal {
		cmd += " --global"
	}
	if b.opts.Orphanet {
		cmd += " --orphanet"
	}
	if b.opts.Threshold != nil {
		cmd += " --threshold " + strconv.FormatFloat(*b.opts.Threshold, 'g', -1, 64)
	}
	if b.opts.MinDiff != nil {
		cmd += " --mindiff " + strconv.Itoa(*b.opts.MinDiff)
	}
	if b.opts.TranscriptDB != "" {
		cmd += " --transcriptdb " + b.opts.TranscriptDB
	}
	return cmd
}

// localize maps a cloud path to its in-container location.
func localize(cloudPath string) string {
	return localInputDir + "/" + path.Base(cloudPath)
}

// joinCloudPath joins a cloud directory and a name without collapsing the
// scheme's double slash the way path.Join would.
func joinCloudPath(dir, name string) string {
	return strings.TrimSuffix(dir, "/") + "/" + name
}
