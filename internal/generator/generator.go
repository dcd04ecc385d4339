// Package generator converts batches of metadata files.
package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/OpenEnergyPlatform/omi/internal/conversion"
	"github.com/OpenEnergyPlatform/omi/internal/document"
	omiio "github.com/OpenEnergyPlatform/omi/internal/io"
	"github.com/OpenEnergyPlatform/omi/internal/render"
	"github.com/OpenEnergyPlatform/omi/internal/version"
)

// Result is the outcome for one input file.
type Result struct {
	Path   string
	Output string // written file, empty when OutDir is unset
	From   string
	To     string
	Doc    *document.Dict
	Text   string
	Err    error
}

// Options configures ConvertFiles.
type Options struct {
	// Target is the version every file is converted to.
	Target string
	// OutDir receives one JSON file per input. Nothing is written when empty.
	OutDir string
	// Converter defaults to conversion.Default().
	Converter  *conversion.Converter
	OnProgress ProgressCallback
}

// ConvertFiles reads, converts and renders every path. A failing file does
// not stop the batch; its error is recorded in its Result. Only
// cancellation of ctx ends the batch early.
func ConvertFiles(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	if strings.TrimSpace(opts.Target) == "" {
		return nil, fmt.Errorf("no target version given")
	}
	conv := opts.Converter
	if conv == nil {
		conv = conversion.Default()
	}
	progress := opts.OnProgress
	if progress == nil {
		progress = func(ProgressEvent) {} // no-op
	}

	results := make([]Result, 0, len(paths))
	for i, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}

		// Check for cancellation
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		res := convertFile(conv, path, i, len(paths), opts, progress)
		if res.Err != nil {
			logf(path, "failed: %v", res.Err)
			progress(ProgressEvent{Type: EventError, Path: path, Index: i, Total: len(paths), Error: res.Err})
		} else {
			progress(ProgressEvent{Type: EventFileComplete, Path: path, Index: i, Total: len(paths)})
		}
		results = append(results, res)
	}
	return results, nil
}

func convertFile(conv *conversion.Converter, path string, i, total int, opts Options, progress ProgressCallback) Result {
	res := Result{Path: path}
	progress(ProgressEvent{Type: EventReadStart, Path: path, Index: i, Total: total})

	doc, err := omiio.ReadDocument(path, "auto")
	if err != nil {
		res.Err = err
		return res
	}
	if v, err := version.Of(doc); err == nil {
		res.From = v.String()
	}
	progress(ProgressEvent{Type: EventReadComplete, Path: path, Message: res.From})

	out, err := conv.Convert(doc, opts.Target)
	if err != nil {
		res.Err = err
		return res
	}
	res.Doc = out
	if v, err := version.Of(out); err == nil {
		res.To = v.String()
	}
	logf(path, "converted %s -> %s", res.From, res.To)
	progress(ProgressEvent{Type: EventConvertComplete, Path: path, Message: res.To})

	text, err := render.JSON{}.Render(out)
	if err != nil {
		res.Err = fmt.Errorf("render %s: %w", path, err)
		return res
	}
	res.Text = text
	progress(ProgressEvent{Type: EventRenderComplete, Path: path})

	if opts.OutDir == "" {
		return res
	}
	dest := omiio.OutputPath(path, opts.OutDir, "")
	if err := omiio.WriteText(dest, text, ""); err != nil {
		res.Err = err
		return res
	}
	res.Output = dest
	progress(ProgressEvent{Type: EventWriteComplete, Path: path, Message: dest})
	return res
}

// Failed counts results with an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
