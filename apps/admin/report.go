package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/kalashala/kalashala/core/report"
)

func (cli *commandLine) report(ctx context.Context, periodSpec, classID string, year int, outPath string) error {
	q := report.Query{Period: periodSpec, ClassID: classID, Year: year}
	q.Clean()
	if q.ClassID != report.AllClasses {
		if _, err := cli.svcs.Schools.GetClass(ctx, q.ClassID); err != nil {
			return err
		}
	}

	rows, err := cli.svcs.Reports.Build(ctx, q.Period, q.ClassID, q.Year)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(outPath, cli.out)
	if err != nil {
		return errors.Wrap(err, "opening output")
	}
	if err = report.WriteCSV(out, rows); err != nil {
		_ = closeOut()
		return errors.Wrap(err, "writing report")
	}
	if err = closeOut(); err != nil {
		return err
	}
	if outPath != "" {
		fmt.Fprintf(cli.out, "Wrote %d row(s) to %s (suggested name %s).\n", len(rows), outPath, report.FileName(q.Period, nowFunc()))
	}
	return nil
}
