// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cosnicolaou/wallclock/internal/logging"
)

type LogFlags struct {
	Task   string `subcmd:"task,,display log info for the specific task"`
	Sensor string `subcmd:"sensor,,display log info for the specific sensor"`
}

type LogStatusFlags struct {
	LogFlags
}

type Log struct {
	out io.Writer
}

type logEntryHandler func(logging.Entry) error

func (l *Log) processLog(rd io.Reader, fv *LogStatusFlags, lh logEntryHandler) error {
	sc := logging.NewScanner(rd)
	for le := range sc.Entries() {
		if len(fv.Task) > 0 && le.Task != fv.Task {
			continue
		}
		if len(fv.Sensor) > 0 && le.Sensor != fv.Sensor {
			continue
		}
		if err := lh(le); err != nil {
			return err
		}
	}
	return sc.Err()
}

func (l *Log) Status(_ context.Context, flags any, args []string) error {
	fv := flags.(*LogStatusFlags)
	srh := statusRecorder{
		StatusRecorder: logging.NewStatusRecorder(),
		pending:        make(map[int64]*logging.TickRecord),
	}
	if len(args) == 0 {
		if err := l.processLog(os.Stdin, fv, srh.process); err != nil {
			return err
		}
		srh.print(l.out)
		return nil
	}
	for _, logfile := range args {
		fi, err := os.OpenFile(logfile, os.O_RDONLY, 0)
		if err != nil {
			return err
		}
		err = l.processLog(fi, fv, srh.process)
		fi.Close()
		if err != nil {
			return err
		}
	}
	srh.print(l.out)
	return nil
}

type statusRecorder struct {
	*logging.StatusRecorder
	pending map[int64]*logging.TickRecord
}

func (sr *statusRecorder) print(out io.Writer) {
	tm := newTableManager()
	fmt.Fprintln(out, tm.Completed(sr.StatusRecorder).Render())
	for range sr.PendingRecords() {
		fmt.Fprintln(out, tm.Pending(sr.StatusRecorder).Render())
		break
	}
}

func (sr *statusRecorder) process(le logging.Entry) error {
	if le.Mod != "sampler" {
		return nil
	}
	switch le.Msg {
	case logging.LogTick:
		rec := le.TickRecord()
		rec = sr.NewPending(rec, le.Now)
		sr.pending[le.ID] = rec
	case logging.LogSample, logging.LogFailed:
		pending, ok := sr.pending[le.ID]
		if !ok {
			return nil
		}
		sr.PendingDone(pending, le.Values, le.Err, le.Now)
		delete(sr.pending, le.ID)
	default: // ignore all other messages.
	}
	return nil
}
