package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/kalashala/kalashala/apps"
	"github.com/kalashala/kalashala/apps/shared"
	"github.com/kalashala/kalashala/core"
	"github.com/kalashala/kalashala/storage/database"
)

var (
	migrateFunc = database.Migrate // mockable
	nowFunc     = time.Now         // mockable

	errHelp = errors.New("help provided")
	errNoDB = apps.NewArgumentError("migrate requires the postgres database engine")

	seedClasses   = []string{"Bharatanatyam", "Singing", "Slokha"}
	seedLocations = []string{"JP Nagar", "Pride Apartment"}
)

type commandLine struct {
	conf    *core.Config
	db      *sqlx.DB // nil with the memory engine
	svcs    *shared.Services
	mailSvc core.EmailService
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS...] - run a goose command (up, down, status, redo...)")
	fmt.Fprintln(cli.out, "  seed - create the default classes and locations")
	fmt.Fprintln(cli.out, "  recordpayment -student ID -amount AMOUNT [-period YYYY-MM] - mark a student's fee as paid")
	fmt.Fprintln(cli.out, "  feereminder [-period YYYY-MM] - email the office the students with unpaid fees")
	fmt.Fprintln(cli.out, "  report [-period WEEKLY|MONTHLY|YEARLY|0-11] [-year YYYY] [-class ID] [-out FILE] - export attendance as CSV")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	paymentCmd := flag.NewFlagSet("recordpayment", flag.ContinueOnError)
	paymentStudent := paymentCmd.String("student", "", "The student's ID.")
	paymentAmount := paymentCmd.String("amount", "", "The amount paid.")
	paymentPeriod := paymentCmd.String("period", "", "The billing month (YYYY-MM). Defaults to the current one.")

	reminderCmd := flag.NewFlagSet("feereminder", flag.ContinueOnError)
	reminderPeriod := reminderCmd.String("period", "", "The billing month (YYYY-MM). Defaults to the current one.")

	reportCmd := flag.NewFlagSet("report", flag.ContinueOnError)
	reportPeriod := reportCmd.String("period", "WEEKLY", "WEEKLY, MONTHLY, YEARLY or a month index (0 = January).")
	reportYear := reportCmd.Int("year", 0, "The year of a month index. Defaults to the current year.")
	reportClass := reportCmd.String("class", "ALL", "The class ID, or ALL.")
	reportOut := reportCmd.String("out", "", "The output file. Defaults to stdout.")

	for _, fs := range []*flag.FlagSet{paymentCmd, reminderCmd, reportCmd} {
		fs.SetOutput(cli.out)
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seed":
		return cli.seed(ctx)
	case "recordpayment":
		if err := paymentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *paymentStudent == "" || *paymentAmount == "" {
			paymentCmd.Usage()
			return errHelp
		}
		return cli.recordPayment(ctx, *paymentStudent, *paymentAmount, *paymentPeriod)
	case "feereminder":
		if err := reminderCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.feeReminder(ctx, *reminderPeriod)
	case "report":
		if err := reportCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.report(ctx, *reportPeriod, *reportClass, *reportYear, *reportOut)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errNoDB
	}
	return migrateFunc(cli.db, args[0], args[1:]...)
}

func (cli *commandLine) seed(ctx context.Context) error {
	for _, name := range seedClasses {
		if _, err := cli.svcs.Schools.EnsureClass(ctx, name); err != nil {
			return err
		}
	}
	for _, name := range seedLocations {
		if _, err := cli.svcs.Schools.EnsureLocation(ctx, name); err != nil {
			return err
		}
	}
	fmt.Fprintln(cli.out, "Seed data created.")
	return nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
