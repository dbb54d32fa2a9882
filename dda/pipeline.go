package dda

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// PassOptions bundles the kernel, density and threshold parameters for one
// DDA pass. The two passes are parameterised independently; pass 2
// typically uses a wider kernel and a more permissive threshold.
type PassOptions struct {
	Kernel    KernelOptions
	Density   DensityOptions
	Threshold ThresholdOptions
}

// DefaultPassOptions returns the ATL09 method-B defaults for a single pass.
func DefaultPassOptions() PassOptions {
	return PassOptions{
		Kernel:    DefaultKernelOptions(),
		Density:   DefaultDensityOptions(),
		Threshold: DefaultThresholdOptions(),
	}
}

// Options configures a two-pass Pipeline.
type Options struct {
	// Pass1 and Pass2 parameterise the two DDA passes.
	Pass1, Pass2 PassOptions

	// MinClusterSize is the minimum connected-cluster size for cloudy
	// cells to survive mask combination.
	MinClusterSize int
	// RemoveClustersInPass also declusters each per-pass mask before
	// combination, not just the combined mask.
	RemoveClustersInPass bool
	// Connectivity is the adjacency rule for declustering.
	Connectivity Connectivity

	// FillCloudsWithNoise backfills pass-1 clouds with synthetic noise
	// before the pass-2 density calculation, instead of masking them out.
	FillCloudsWithNoise bool
	// NoiseAltitude is the height above the DEM from which the noise
	// spectrum is sampled.
	NoiseAltitude float64
	// Noise parameterises the synthetic noise generator.
	Noise NoiseOptions

	// GroundWidth is the ground-return band width in bins.
	GroundWidth int

	// Log receives stage diagnostics; nil stays silent.
	Log *zap.Logger
}

// DefaultOptions returns the full-threading defaults from the ATL09
// processing description.
func DefaultOptions() Options {
	return Options{
		Pass1:               DefaultPassOptions(),
		Pass2:               DefaultPassOptions(),
		MinClusterSize:      300,
		FillCloudsWithNoise: true,
		NoiseAltitude:       10000,
		Noise:               DefaultNoiseOptions(),
		GroundWidth:         3,
	}
}

// PassResult holds the intermediate products of one DDA pass.
type PassResult struct {
	Kernel     *mat.Dense
	Density    *mat.Dense
	Thresholds []float64
	CloudMask  *BoolGrid
	DataMask   *BoolGrid
}

// Result holds the products of a full pipeline run.
type Result struct {
	Pass1, Pass2 *PassResult
	// CombinedMask is the OR of the two pass masks after declustering,
	// before ground removal.
	CombinedMask *BoolGrid
	// CloudMaskNoGround is CombinedMask with the ground band zeroed.
	CloudMaskNoGround *BoolGrid
	// GroundMask carries the combined-mask values that fell in the ground
	// band.
	GroundMask *BoolGrid
	// GroundStats summarises the ground-removal step.
	GroundStats GroundStats
}

// Pipeline runs the two-pass DDA-Atmos threading over a backscatter field.
// Construct with NewPipeline; a Pipeline is safe for concurrent use since
// all state lives in the per-call results.
type Pipeline struct {
	opts Options
	log  *zap.Logger
}

// NewPipeline returns a pipeline for the given options.
func NewPipeline(opts Options) *Pipeline {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{opts: opts, log: log}
}

// FirstPass runs the pass-1 density, threshold and cloud-mask calculation
// on the raw backscatter field. NaN cells in data are treated as invalid.
func (p *Pipeline) FirstPass(ctx context.Context, data *mat.Dense) (*PassResult, error) {
	p.log.Debug("starting pass 1")
	return p.runPass(ctx, data, InvalidData(data), p.opts.Pass1)
}

// SecondPass runs pass 2 using the pass-1 result. With FillCloudsWithNoise
// the pass-1 clouds are replaced by synthetic noise drawn from the clear-air
// spectrum above NoiseAltitude (heights and dem required); otherwise the
// pass-1 clouds are simply added to the invalid-data mask.
func (p *Pipeline) SecondPass(ctx context.Context, data *mat.Dense, heights, dem []float64, first *PassResult) (*PassResult, error) {
	if first == nil || first.CloudMask == nil {
		return nil, fmt.Errorf("dda: second pass requires a first-pass result")
	}
	p.log.Debug("starting pass 2", zap.Bool("fill_clouds_with_noise", p.opts.FillCloudsWithNoise))

	if p.opts.FillCloudsWithNoise {
		means, sds, err := NoiseStats(data, first.CloudMask, heights, dem, p.opts.NoiseAltitude)
		if err != nil {
			return nil, fmt.Errorf("dda: noise stats: %w", err)
		}
		noisy, err := ReplaceWithNoise(data, first.CloudMask, means, sds, p.opts.Noise)
		if err != nil {
			return nil, fmt.Errorf("dda: noise backfill: %w", err)
		}
		return p.runPass(ctx, noisy, first.DataMask, p.opts.Pass2)
	}

	// Without noise backfill, pass-1 clouds are excluded from the pass-2
	// density rather than overwritten.
	dataMask := first.DataMask.Clone()
	dataMask.orInto(first.CloudMask)
	return p.runPass(ctx, data, dataMask, p.opts.Pass2)
}

func (p *Pipeline) runPass(ctx context.Context, data *mat.Dense, dataMask *BoolGrid, po PassOptions) (*PassResult, error) {
	kernel, err := NewGaussianKernel(po.Kernel)
	if err != nil {
		return nil, err
	}
	density, err := CalcDensity(ctx, data, dataMask, kernel, po.Density)
	if err != nil {
		return nil, err
	}
	thresholds, err := CalcThresholds(density, dataMask, po.Threshold)
	if err != nil {
		return nil, err
	}
	inPassMin := 0
	if p.opts.RemoveClustersInPass {
		inPassMin = p.opts.MinClusterSize
	}
	cloudMask, err := CalcCloudMask(density, thresholds, dataMask, CloudMaskOptions{
		MinClusterSize: inPassMin,
		Connectivity:   p.opts.Connectivity,
	})
	if err != nil {
		return nil, err
	}
	return &PassResult{
		Kernel:     kernel,
		Density:    density,
		Thresholds: thresholds,
		CloudMask:  cloudMask,
		DataMask:   dataMask,
	}, nil
}

// Run executes the full threading: two passes, mask combination, and ground
// removal. Ground bins come from the caller (typically an external
// DEM-guided detector); profiles without a detected ground pass through the
// removal step unchanged.
func (p *Pipeline) Run(ctx context.Context, data *mat.Dense, heights, dem []float64, groundBins []GroundBin) (*Result, error) {
	// Fail on a malformed height coordinate before doing any heavy work.
	if _, err := HeightOrdering(heights); err != nil {
		return nil, err
	}

	first, err := p.FirstPass(ctx, data)
	if err != nil {
		return nil, err
	}
	second, err := p.SecondPass(ctx, data, heights, dem, first)
	if err != nil {
		return nil, err
	}

	combined, err := CombineMasks([]*BoolGrid{first.CloudMask, second.CloudMask}, p.opts.MinClusterSize, p.opts.Connectivity)
	if err != nil {
		return nil, err
	}

	p.log.Debug("removing ground from signal")
	// Layer consolidation is upstream scope; the remover takes the combined
	// mask in the layer-mask slot and in any case only gates on bin validity.
	remover := NewGroundRemover(p.opts.GroundWidth)
	remover.Log = p.opts.Log
	noGround, groundMask, err := remover.RemoveGround(combined, groundBins, combined, heights)
	if err != nil {
		return nil, err
	}

	return &Result{
		Pass1:             first,
		Pass2:             second,
		CombinedMask:      combined,
		CloudMaskNoGround: noGround,
		GroundMask:        groundMask,
		GroundStats:       remover.Stats(),
	}, nil
}
