package main

import (
	"context"
	"fmt"
	"io"

	"github.com/reusee/scone/datasets"
	"github.com/reusee/scone/logs"
)

// SummarizeDataset reads every example of a dataset and writes the counts to w.
type SummarizeDataset func(ctx context.Context, path string, w io.Writer) error

func (Module) SummarizeDataset(
	logger logs.Logger,
	newSpan logs.NewSpan,
	newReader datasets.NewReader,
) SummarizeDataset {
	return func(ctx context.Context, path string, w io.Writer) error {
		ctx, _ = newSpan(ctx, "")
		reader, err := newReader(path)
		if err != nil {
			return err
		}
		var examples, utterances int
		for example, err := range reader.Examples() {
			if err != nil {
				return logs.WrapSpan(ctx, err)
			}
			examples++
			utterances += len(example.Utterances)
			logger.DebugContext(ctx, "example",
				"id", example.ID,
				"offset", example.Offset,
				"utterances", len(example.Utterances),
			)
		}
		logger.InfoContext(ctx, "dataset",
			"path", path,
			"domain", reader.Domain,
			"examples", examples,
		)
		_, err = fmt.Fprintf(w, "examples\t%d\nutterances\t%d\n", examples, utterances)
		return err
	}
}
