package port

import "context"

// VideoProcessor turns a source video into a set of output files in outDir
type VideoProcessor interface {
	Process(ctx context.Context, input string, outDir string) error
}
