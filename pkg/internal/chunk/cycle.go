package chunk

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat"

	"github.com/joeydtaylor/exametl/pkg/internal/types"
)

// Run executes chunk cycles until the source is exhausted or a chunk fails.
func (o *Orchestrator) Run(ctx context.Context) error {
	for {
		done, err := o.Next(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Next executes one chunk cycle. done is true once the source reported end of input
// and nothing is left to write.
func (o *Orchestrator) Next(ctx context.Context) (done bool, err error) {
	if o.state == StateDone {
		return true, nil
	}

	o.state = StateReading
	eof, err := o.read(ctx)
	if err != nil {
		return false, o.rollback(err)
	}
	if len(o.lines) == 0 {
		o.state = StateDone
		return true, nil
	}

	o.state = StateProcessing
	chunk, filtered, err := o.process(ctx)
	if err != nil {
		return false, o.rollback(err)
	}

	o.state = StateWriting
	if err := o.sink.Write(ctx, chunk); err != nil {
		return false, o.rollback(err)
	}
	o.commit(chunk, filtered)

	if eof {
		o.state = StateDone
		return true, nil
	}
	o.state = StateReading
	return false, nil
}

// read fills o.lines with up to chunkSize lines. eof reports that the source is exhausted.
func (o *Orchestrator) read(ctx context.Context) (eof bool, err error) {
	o.lines = o.lines[:0]
	for len(o.lines) < o.chunkSize {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		line, err := o.source.Next(ctx)
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		if err != nil {
			return false, err
		}
		o.lines = append(o.lines, line)
	}
	return false, nil
}

func (o *Orchestrator) process(ctx context.Context) (types.Chunk, int, error) {
	chunk := types.Chunk{
		Index:     o.chunkIndex,
		FirstLine: o.lines[0].Number,
		LastLine:  o.lines[len(o.lines)-1].Number,
		Items:     make([]types.ExamResult, 0, len(o.lines)),
	}
	filtered := 0
	for _, line := range o.lines {
		if err := ctx.Err(); err != nil {
			return chunk, 0, err
		}
		rec, err := o.parser.Parse(line)
		if err != nil {
			return chunk, 0, err
		}
		out, keep, err := o.transformer.Transform(rec)
		if err != nil {
			return chunk, 0, err
		}
		if !keep {
			filtered++
			o.NotifyLoggers(types.DebugLevel, "Record filtered",
				"component", o.componentMetadata,
				"event", "Filter",
				"result", "SUCCESS",
				"record", out,
			)
			continue
		}
		chunk.Items = append(chunk.Items, out)
	}
	return chunk, filtered, nil
}

func (o *Orchestrator) commit(chunk types.Chunk, filtered int) {
	read := len(o.lines)
	o.step.ReadCount += read
	o.step.FilterCount += filtered
	o.step.WriteCount += chunk.Len()
	o.step.CommitCount++
	o.step.LastCommittedLine = chunk.LastLine
	o.chunkIndex++

	if o.meter != nil {
		o.meter.AddCount(types.MetricLinesRead, uint64(read))
		o.meter.AddCount(types.MetricRecordsFiltered, uint64(filtered))
		o.meter.AddCount(types.MetricRecordsWritten, uint64(chunk.Len()))
		o.meter.IncrementCount(types.MetricChunksCommitted)
		o.meter.SampleHost()
	}

	mean, stdDev := scoreStats(chunk.Items)
	o.NotifyLoggers(types.DebugLevel, "Chunk committed",
		"component", o.componentMetadata,
		"event", "Commit",
		"result", "SUCCESS",
		"chunk", chunk.Index,
		"firstLine", chunk.FirstLine,
		"lastLine", chunk.LastLine,
		"read", read,
		"filtered", filtered,
		"written", chunk.Len(),
		"scoreMean", mean,
		"scoreStdDev", stdDev,
	)
}

func (o *Orchestrator) rollback(cause error) error {
	failedState := o.state
	o.step.RollbackCount++
	if o.meter != nil {
		o.meter.IncrementCount(types.MetricChunksRolledBack)
		o.meter.IncrementCount(types.MetricErrors)
	}
	o.NotifyLoggers(types.ErrorLevel, "Chunk rolled back",
		"component", o.componentMetadata,
		"event", "Rollback",
		"result", "FAILURE",
		"chunk", o.chunkIndex,
		"state", failedState.String(),
		"linesInFlight", len(o.lines),
		"error", cause,
	)
	o.lines = o.lines[:0]
	return fmt.Errorf("chunk %d: %w", o.chunkIndex, cause)
}

// scoreStats returns the mean and sample standard deviation of the chunk's scores.
func scoreStats(items []types.ExamResult) (mean, stdDev float64) {
	switch len(items) {
	case 0:
		return 0, 0
	case 1:
		return items[0].Score, 0
	}
	scores := make([]float64, len(items))
	for i, rec := range items {
		scores[i] = rec.Score
	}
	return stat.MeanStdDev(scores, nil)
}
